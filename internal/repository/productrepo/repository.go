package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/cache"
	"catalogo/internal/pkg/logger"
)

// Define a chave de cache para produtos.
const productCacheKey = "product:%s"

const selectColumns = `id, name, description, price_cents, currency, stock, is_active, created_at, updated_at`

// ProductRepository implementa a interface domain.ProductRepository.
// Ela contém as conexões necessárias para acessar dados.
type ProductRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente para operações de cache (Redis); nil desativa o cache
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.PriceCents,
		&p.Currency,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return p, nil
}

// Create insere o produto aplicando os padrões (moeda, estoque, ativo).
// O ID é gerado aqui; os timestamps vêm do banco.
func (r *ProductRepository) Create(ctx context.Context, input domain.CreateProductInput) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	currency := domain.DefaultCurrency
	if input.Currency != nil {
		currency = *input.Currency
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `INSERT INTO products (id, name, description, price_cents, currency, stock, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING ` + selectColumns

	row := r.DB.QueryRowContext(ctxTimeout, query,
		uuid.NewString(),
		input.Name,
		nullableString(input.Description),
		input.PriceCents,
		currency,
		stock,
		isActive,
	)

	product, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("inserir produto: %w", err)
	}

	r.logger.Debug("Produto inserido no DB.", map[string]interface{}{"id": product.ID})
	return product, nil
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
// Devolve (nil, nil) quando não há linha.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)

	// --- Cache-Aside (READ) ---
	if r.Cache != nil {
		cachedData, err := r.Cache.Get(ctxTimeout, key)
		if err == nil {
			var product domain.Product
			if json.Unmarshal([]byte(cachedData), &product) == nil {
				return &product, nil
			}
			r.logger.Warn("Entrada de cache inválida, consultando o DB.", map[string]interface{}{"key": key})
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// Falha real de cache (ex: conexão perdida): seguimos para o DB.
			r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+selectColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar produto %s: %w", id, err)
	}

	// --- Cache-Aside (WRITE) ---
	r.storeInCache(ctxTimeout, key, product)

	return &product, nil
}

// FindAll lista todos os produtos, do mais recente para o mais antigo.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+selectColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar produtos: %w", err)
	}
	return products, nil
}

// Update aplica somente os campos presentes e invalida o cache do produto.
// Sem campos, devolve o estado atual lido do banco.
func (r *ProductRepository) Update(ctx context.Context, id string, input domain.UpdateProductInput) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Description != nil {
		add("description", nullableString(input.Description))
	}
	if input.PriceCents != nil {
		add("price_cents", *input.PriceCents)
	}
	if input.Currency != nil {
		add("currency", *input.Currency)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}

	var query string
	if len(sets) == 0 {
		query = `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
		args = []interface{}{id}
	} else {
		sets = append(sets, "updated_at = NOW()")
		args = append(args, id)
		query = fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), selectColumns)
	}

	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query, args...))
	if err != nil {
		return domain.Product{}, fmt.Errorf("atualizar produto %s: %w", id, err)
	}

	r.invalidate(ctxTimeout, id)
	return product, nil
}

// Delete remove fisicamente o produto e invalida o cache.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remover produto %s: %w", id, err)
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

func (r *ProductRepository) storeInCache(ctx context.Context, key string, product domain.Product) {
	if r.Cache == nil {
		return
	}
	productJSON, err := json.Marshal(product)
	if err != nil {
		r.logger.Warn("Falha ao serializar produto para cache.", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := r.Cache.Set(ctx, key, productJSON, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(productCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do produto.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}

// nullableString converte nil ou "" em NULL.
func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
