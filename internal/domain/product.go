package domain

import (
	"context"
	"time"
)

// DefaultCurrency é aplicada quando a criação não informa a moeda.
const DefaultCurrency = "EUR"

// Product representa o item principal do catálogo (a Entidade).
// O preço é mantido em centavos para evitar erros de arredondamento.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"` // Definido pela camada de persistência
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProductInput é o payload de criação. Campos opcionais nulos recebem os padrões do repositório.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	PriceCents  int64   `json:"priceCents"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Stock       *int    `json:"stock,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateProductInput contém apenas os campos presentes na requisição (nil = não alterar).
// Description vazia ("") limpa a coluna.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"priceCents,omitempty"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Stock       *int    `json:"stock,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// IsEmpty informa se nenhum campo foi enviado.
func (in UpdateProductInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.PriceCents == nil &&
		in.Currency == nil && in.Stock == nil && in.IsActive == nil
}

// --- Interfaces de Contrato ---

// ProductRepository é a porta de persistência do catálogo.
// FindByID devolve (nil, nil) quando o produto não existe.
// Implementações retornam apenas erros de baixo nível, nunca erros da taxonomia.
type ProductRepository interface {
	Create(ctx context.Context, input CreateProductInput) (Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id string) error
}
