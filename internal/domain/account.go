package domain

import (
	"context"
	"errors"
	"time"
)

// Account é o registro de identidade mantido pelo subsistema de autenticação.
// O núcleo apenas lê esses dados.
type Account struct {
	ID            string    `json:"id"`
	Name          *string   `json:"name,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SignUpInput representa o payload de cadastro por email e senha.
type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Image    string `json:"image,omitempty"`
}

// SignInInput representa o payload de login.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session é devolvida após um login bem-sucedido.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Account   `json:"user"`
}

// AccountRepository é a porta de persistência do subsistema de contas.
// FindByEmail devolve (nil, "", nil) quando a conta não existe.
type AccountRepository interface {
	Create(ctx context.Context, account Account, passwordHash string) (Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, string, error)
	Delete(ctx context.Context, id string) error
}

// AccountCreated é o evento entregue, de forma síncrona, aos hooks registrados no
// subsistema de contas logo após a conta ser gravada.
type AccountCreated struct {
	ID            string
	Name          *string
	Email         string
	Image         *string
	EmailVerified bool
}

// ErrDuplicateEmail é devolvido pelo AccountRepository quando o email já está cadastrado.
var ErrDuplicateEmail = errors.New("email já cadastrado")
