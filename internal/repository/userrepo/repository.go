package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/database"
	"catalogo/internal/pkg/logger"
)

const selectProfile = `
	SELECT u.id, u.name, u.image, u.email, u.email_verified, u.created_at, u.updated_at,
	       p.first_name, p.last_name, p.phone, p.role, p.status, p.last_login_at
	FROM users u
	INNER JOIN user_profiles p ON p.user_id = u.id`

// UserRepository implementa a interface domain.UserRepository sobre as tabelas
// users (contas) e user_profiles (dados da aplicação).
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (domain.UserProfile, error) {
	var (
		p                          domain.UserProfile
		name, image                sql.NullString
		firstName, lastName, phone sql.NullString
		role, status               sql.NullString
	)
	err := row.Scan(
		&p.ID, &name, &image, &p.Email, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt,
		&firstName, &lastName, &phone, &role, &status, &p.LastLoginAt,
	)
	if err != nil {
		return domain.UserProfile{}, err
	}

	p.Name = stringPtr(name)
	p.Image = stringPtr(image)
	p.FirstName = stringPtr(firstName)
	p.LastName = stringPtr(lastName)
	p.Phone = stringPtr(phone)
	if role.Valid {
		r := domain.UserRole(role.String)
		p.Role = &r
	}
	if status.Valid {
		s := domain.UserStatus(status.String)
		p.Status = &s
	}
	return p, nil
}

// Create grava o perfil de uma conta já existente e devolve a visão combinada.
// last_login_at recebe o instante da criação.
func (r *UserRepository) Create(ctx context.Context, input domain.CreateUserProfileInput) (domain.UserProfile, error) {
	r.logger.Debug("Inserindo perfil no repositório.", map[string]interface{}{"user_id": input.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `
		INSERT INTO user_profiles (user_id, first_name, last_name, phone, role, status, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		input.ID,
		nullable(input.FirstName),
		nullable(input.LastName),
		nullable(input.Phone),
		nullableRole(input.Role),
		nullableStatus(input.Status),
	)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("inserir perfil %s: %w", input.ID, err)
	}

	profile, err := r.findOne(ctxTimeout, r.DB, "u.id", input.ID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if profile == nil {
		return domain.UserProfile{}, fmt.Errorf("perfil %s não encontrado após inserção", input.ID)
	}
	return *profile, nil
}

// FindByID devolve (nil, nil) quando a conta não existe ou ainda não tem perfil.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()
	return r.findOne(ctxTimeout, r.DB, "u.id", id)
}

// FindByEmail busca o perfil pelo email da conta.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()
	return r.findOne(ctxTimeout, r.DB, "u.email", email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectProfile+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listar perfis: %w", err)
	}
	defer rows.Close()

	profiles := []domain.UserProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("ler perfil: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar perfis: %w", err)
	}
	return profiles, nil
}

// Update aplica as alterações do perfil e da conta na mesma transação.
func (r *UserRepository) Update(ctx context.Context, id string, input domain.UpdateUserProfileInput) (domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var profile *domain.UserProfile
	err := database.RunInTx(ctxTimeout, r.DB, func(ctx context.Context, tx *sql.Tx) error {
		if input.HasProfileFields() {
			u := newUpdate()
			if input.FirstName != nil {
				u.add("first_name", nullable(input.FirstName))
			}
			if input.LastName != nil {
				u.add("last_name", nullable(input.LastName))
			}
			if input.Phone != nil {
				u.add("phone", nullable(input.Phone))
			}
			if input.Role != nil {
				u.add("role", string(*input.Role))
			}
			if input.Status != nil {
				u.add("status", string(*input.Status))
			}
			if input.LastLoginAt != nil {
				u.add("last_login_at", *input.LastLoginAt)
			}
			if err := u.exec(ctx, tx, "user_profiles", "user_id", id); err != nil {
				return fmt.Errorf("atualizar perfil %s: %w", id, err)
			}
		}

		if input.HasAccountFields() {
			u := newUpdate()
			if input.Name != nil {
				u.add("name", nullable(input.Name))
			}
			if input.Image != nil {
				u.add("image", nullable(input.Image))
			}
			if input.Email != nil {
				u.add("email", *input.Email)
			}
			if input.EmailVerified != nil {
				u.add("email_verified", *input.EmailVerified)
			}
			if err := u.exec(ctx, tx, "users", "id", id); err != nil {
				return fmt.Errorf("atualizar conta %s: %w", id, err)
			}
		}

		var err error
		profile, err = r.findOne(ctx, tx, "u.id", id)
		return err
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	if profile == nil {
		return domain.UserProfile{}, fmt.Errorf("perfil %s não encontrado após atualização", id)
	}
	return *profile, nil
}

// Delete remove apenas o perfil. A conta em users permanece intacta.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM user_profiles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("remover perfil %s: %w", id, err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *UserRepository) findOne(ctx context.Context, q querier, column, value string) (*domain.UserProfile, error) {
	row := q.QueryRowContext(ctx, selectProfile+` WHERE `+column+` = $1`, value)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar perfil por %s: %w", column, err)
	}
	return &p, nil
}

// update monta um UPDATE parcial com placeholders posicionais.
type update struct {
	sets []string
	args []interface{}
}

func newUpdate() *update { return &update{} }

func (u *update) add(column string, value interface{}) {
	u.args = append(u.args, value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *update) exec(ctx context.Context, tx *sql.Tx, table, key, id string) error {
	u.sets = append(u.sets, "updated_at = NOW()")
	u.args = append(u.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(u.sets, ", "), key, len(u.args))
	_, err := tx.ExecContext(ctx, query, u.args...)
	return err
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nullable converte nil ou "" em NULL; string vazia limpa a coluna.
func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableRole(r *domain.UserRole) sql.NullString {
	if r == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*r), Valid: true}
}

func nullableStatus(s *domain.UserStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
