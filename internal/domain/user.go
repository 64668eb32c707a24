package domain

import (
	"context"
	"time"
)

// UserRole é o papel do usuário dentro da aplicação.
type UserRole string

// Constantes para os papéis de usuário
const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYE"
	RoleDirector UserRole = "DIRECTEUR"
)

// Valid informa se o papel pertence à enumeração.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleDirector:
		return true
	}
	return false
}

// UserStatus é a situação do perfil.
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// Valid informa se o status pertence à enumeração.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// UserProfile estende a conta (Account) com os campos da aplicação.
// O ID do perfil é sempre o ID da conta dona (relação 1:1).
type UserProfile struct {
	Account
	FirstName   *string     `json:"firstName,omitempty"`
	LastName    *string     `json:"lastName,omitempty"`
	Phone       *string     `json:"phone,omitempty"`
	Role        *UserRole   `json:"role,omitempty"`
	Status      *UserStatus `json:"status,omitempty"`
	LastLoginAt time.Time   `json:"lastLoginAt"`
}

// CreateUserProfileInput é montado pelo hook de provisionamento a partir da conta recém-criada.
type CreateUserProfileInput struct {
	ID            string // ID da conta (obrigatório)
	Name          *string
	Image         *string
	Email         string
	EmailVerified bool
	FirstName     *string
	LastName      *string
	Phone         *string
	Role          *UserRole
	Status        *UserStatus
}

// UpdateUserProfileInput pode tocar campos da conta (name, image, email, emailVerified)
// e campos do perfil. Apenas os campos não-nil são aplicados; string vazia limpa a coluna.
type UpdateUserProfileInput struct {
	Name          *string     `json:"name,omitempty"`
	Image         *string     `json:"image,omitempty"`
	Email         *string     `json:"email,omitempty" validate:"omitempty,email"`
	EmailVerified *bool       `json:"emailVerified,omitempty"`
	FirstName     *string     `json:"firstName,omitempty"`
	LastName      *string     `json:"lastName,omitempty"`
	Phone         *string     `json:"phone,omitempty"`
	Role          *UserRole   `json:"role,omitempty"`
	Status        *UserStatus `json:"status,omitempty"`
	LastLoginAt   *time.Time  `json:"lastLoginAt,omitempty"`
}

// HasAccountFields informa se a atualização toca a tabela de contas.
func (in UpdateUserProfileInput) HasAccountFields() bool {
	return in.Name != nil || in.Image != nil || in.Email != nil || in.EmailVerified != nil
}

// HasProfileFields informa se a atualização toca a tabela de perfis.
func (in UpdateUserProfileInput) HasProfileFields() bool {
	return in.FirstName != nil || in.LastName != nil || in.Phone != nil ||
		in.Role != nil || in.Status != nil || in.LastLoginAt != nil
}

// UserRepository define o contrato de persistência para perfis de usuário.
// FindByID e FindByEmail devolvem (nil, nil) quando não há perfil.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserProfileInput) (UserProfile, error)
	FindByID(ctx context.Context, id string) (*UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)
	FindAll(ctx context.Context) ([]UserProfile, error)
	Update(ctx context.Context, id string, input UpdateUserProfileInput) (UserProfile, error)
	Delete(ctx context.Context, id string) error
}
