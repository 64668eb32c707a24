// Package authservice implementa o cadastro e o login por email e senha.
// Depois de gravar uma conta, entrega domain.AccountCreated a cada hook registrado
// e só conclui o cadastro quando todos retornam sem erro.
package authservice

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/token"
	"catalogo/internal/pkg/validation"
)

const (
	msgSignUpFailed       = "Erro ao criar conta."
	msgSignInFailed       = "Erro ao autenticar."
	msgInvalidCredentials = "Email ou senha inválidos."

	compensateTimeout = 5 * time.Second
)

// AccountCreatedHook é chamado de forma síncrona após a conta ser persistida.
type AccountCreatedHook interface {
	OnAccountCreated(ctx context.Context, event domain.AccountCreated) error
}

// Service é o subsistema de contas.
type Service struct {
	repo   domain.AccountRepository
	tokens token.TokenService
	hooks  []AccountCreatedHook
	logger logger.Logger
	cost   int

	compensateTimeout time.Duration
}

func NewService(repo domain.AccountRepository, tokens token.TokenService, logger logger.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		cost:   bcrypt.DefaultCost,

		compensateTimeout: compensateTimeout,
	}
}

// RegisterHook adiciona um hook; a ordem de registro é a ordem de execução.
func (s *Service) RegisterHook(h AccountCreatedHook) {
	s.hooks = append(s.hooks, h)
}

// SignUp cria a conta e aguarda todos os hooks. Se um hook falha, a conta é removida
// e o erro do hook é devolvido ao chamador.
func (s *Service) SignUp(ctx context.Context, input domain.SignUpInput) (domain.Account, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(input); err != nil {
		return domain.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		s.logger.Error("Falha ao gerar hash de senha.", err)
		return domain.Account{}, apperror.NewInternalError(msgSignUpFailed, err)
	}

	account := domain.Account{Email: input.Email}
	if name := strings.TrimSpace(input.Name); name != "" {
		account.Name = &name
	}
	if input.Image != "" {
		image := input.Image
		account.Image = &image
	}

	created, err := s.repo.Create(ctx, account, string(hash))
	if err != nil {
		if stderrors.Is(err, domain.ErrDuplicateEmail) {
			return domain.Account{}, apperror.NewConflictError(fmt.Sprintf("Já existe uma conta com o email %s", input.Email))
		}
		s.logger.Error("Falha ao gravar conta.", err)
		return domain.Account{}, apperror.NewDatabaseError(msgSignUpFailed, err)
	}

	event := domain.AccountCreated{
		ID:            created.ID,
		Name:          created.Name,
		Email:         created.Email,
		Image:         created.Image,
		EmailVerified: created.EmailVerified,
	}
	for _, h := range s.hooks {
		if err := h.OnAccountCreated(ctx, event); err != nil {
			s.compensate(ctx, created.ID)
			return domain.Account{}, err
		}
	}

	s.logger.Info("Conta criada.", map[string]interface{}{"user_id": created.ID, "email": created.Email})
	return created, nil
}

// compensate desfaz a criação da conta. Roda desligada do cancelamento da requisição,
// com prazo próprio. Uma falha aqui é apenas registrada.
func (s *Service) compensate(ctx context.Context, id string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.compensateTimeout)
	defer cancel()

	if err := s.repo.Delete(cctx, id); err != nil {
		s.logger.Error(fmt.Sprintf("Falha ao remover conta %s após erro de provisionamento.", id), err)
		return
	}
	s.logger.Warn("Conta removida após falha em hook de criação.", map[string]interface{}{"user_id": id})
}

// SignIn confere a senha e emite um JWT para a conta.
func (s *Service) SignIn(ctx context.Context, input domain.SignInInput) (domain.Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(input); err != nil {
		return domain.Session{}, err
	}

	account, hash, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Falha ao buscar conta para login.", err)
		return domain.Session{}, apperror.NewDatabaseError(msgSignInFailed, err)
	}
	if account == nil {
		return domain.Session{}, apperror.NewUnauthorizedError(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		s.logger.Warn("Senha incorreta.", map[string]interface{}{"user_id": account.ID})
		return domain.Session{}, apperror.NewUnauthorizedError(msgInvalidCredentials)
	}

	tok, expiresAt, err := s.tokens.GenerateToken(account.ID, account.Email)
	if err != nil {
		s.logger.Error("Falha ao emitir token.", err)
		return domain.Session{}, apperror.NewInternalError(msgSignInFailed, err)
	}

	return domain.Session{Token: tok, ExpiresAt: expiresAt, User: *account}, nil
}
