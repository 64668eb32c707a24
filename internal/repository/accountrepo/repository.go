// Package accountrepo persiste contas (users) e credenciais de senha (credentials).
package accountrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/database"
	"catalogo/internal/pkg/logger"
)

// Código SQLSTATE de unique_violation no PostgreSQL.
const uniqueViolation = "23505"

type AccountRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewAccountRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *AccountRepository {
	return &AccountRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Create grava a conta e a credencial na mesma transação.
// Email repetido devolve domain.ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account, passwordHash string) (domain.Account, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	account.ID = uuid.NewString()

	err := database.RunInTx(ctxTimeout, r.DB, func(ctx context.Context, tx *sql.Tx) error {
		const userSQL = `
			INSERT INTO users (id, name, email, email_verified, image)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err := tx.QueryRowContext(ctx, userSQL,
			account.ID,
			nullable(account.Name),
			account.Email,
			account.EmailVerified,
			nullable(account.Image),
		).Scan(&account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("inserir conta: %w", err)
		}

		const credentialSQL = `INSERT INTO credentials (user_id, password_hash) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, credentialSQL, account.ID, passwordHash); err != nil {
			return fmt.Errorf("inserir credencial: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	r.logger.Debug("Conta inserida no DB.", map[string]interface{}{"user_id": account.ID})
	return account, nil
}

// FindByEmail devolve a conta e o hash da senha, ou (nil, "", nil) se não existir.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.name, u.image, u.email, u.email_verified, u.created_at, u.updated_at, c.password_hash
		FROM users u
		INNER JOIN credentials c ON c.user_id = u.id
		WHERE u.email = $1`

	var (
		a           domain.Account
		name, image sql.NullString
		hash        string
	)
	err := r.DB.QueryRowContext(ctxTimeout, query, email).Scan(
		&a.ID, &name, &image, &a.Email, &a.EmailVerified, &a.CreatedAt, &a.UpdatedAt, &hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("buscar conta por email: %w", err)
	}
	if name.Valid {
		a.Name = &name.String
	}
	if image.Valid {
		a.Image = &image.String
	}
	return &a, hash, nil
}

// Delete remove a conta; credenciais e perfil caem por ON DELETE CASCADE.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remover conta %s: %w", id, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
