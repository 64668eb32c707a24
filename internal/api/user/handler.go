package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/response"
)

// UserService define as operações de perfil expostas pela API.
// A criação de perfis não é exposta: ela ocorre apenas pelo hook de provisionamento.
type UserService interface {
	FindByID(ctx context.Context, id string) (*domain.UserProfile, error)
	FindAll(ctx context.Context) ([]domain.UserProfile, error)
	Update(ctx context.Context, id string, input domain.UpdateUserProfileInput) (domain.UserProfile, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListUsersHandler lida com GET /api/users.
// @Summary Lista os perfis de usuário
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.UserProfile
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Service.FindAll(r.Context())
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, profiles)
}

// GetUserHandler lida com GET /api/users/{id}.
// @Summary Busca um perfil pelo ID da conta
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da conta"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /api/users/{id} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	if profile == nil {
		response.Error(w, h.Logger, apperror.NewNotFoundError(fmt.Sprintf("Usuário não encontrado: %s", id), id))
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

// UpdateUserHandler lida com PATCH /api/users/{id}.
// @Summary Atualiza parcialmente conta e perfil
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da conta"
// @Param profile body domain.UpdateUserProfileInput true "Campos a alterar"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Email já em uso"
// @Router /api/users/{id} [patch]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.UpdateUserProfileInput
	if err := response.DecodeJSON(w, r, &input); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	profile, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

// DeleteUserHandler lida com DELETE /api/users/{id}. Apenas o perfil é removido.
// @Summary Remove o perfil de usuário
// @Tags users
// @Security BearerAuth
// @Param id path string true "ID da conta"
// @Success 204 "Perfil removido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /api/users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
