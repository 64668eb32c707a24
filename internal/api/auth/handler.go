package auth

import (
	"context"
	"net/http"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/response"
)

// AuthService define o contrato de cadastro e login por email.
type AuthService interface {
	SignUp(ctx context.Context, input domain.SignUpInput) (domain.Account, error)
	SignIn(ctx context.Context, input domain.SignInInput) (domain.Session, error)
}

type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SignUpHandler lida com POST /api/auth/sign-up/email.
// @Summary Cria uma conta por email e senha
// @Description Cria a conta e, na mesma requisição, o perfil de usuário associado.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.SignUpInput true "Nome, email e senha (mínimo 8 caracteres)"
// @Success 201 {object} domain.Account "Conta criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/sign-up/email [post]
func (h *Handler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.SignUpInput
	if err := response.DecodeJSON(w, r, &input); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	account, err := h.Service.SignUp(r.Context(), input)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, account)
}

// SignInHandler lida com POST /api/auth/sign-in/email.
// @Summary Autentica uma conta e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.SignInInput true "Email e senha"
// @Success 200 {object} domain.Session "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/sign-in/email [post]
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.SignInInput
	if err := response.DecodeJSON(w, r, &input); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	session, err := h.Service.SignIn(r.Context(), input)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}
