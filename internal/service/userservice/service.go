package userservice

import (
	"context"
	"fmt"
	"strings"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
)

const (
	msgCreateProfileFailed = "Erro ao criar perfil de usuário."
	msgFindFailed          = "Erro ao buscar usuário."
	msgFindByEmailFailed   = "Erro ao buscar usuário por email."
	msgListFailed          = "Erro ao listar usuários."
	msgUpdateFailed        = "Erro inesperado ao atualizar usuário."
	msgDeleteFailed        = "Erro inesperado ao remover perfil de usuário."
)

// UserService define o serviço de lógica de negócio para perfis de usuário.
type UserService struct {
	UserRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		logger:   logger,
	}
}

// CreateProfile cria o perfil de uma conta recém-criada.
// A unicidade do ID é garantida pelo subsistema de contas, então não há validação extra.
func (s *UserService) CreateProfile(ctx context.Context, input domain.CreateUserProfileInput) (domain.UserProfile, error) {
	s.logger.Debug("Criando perfil de usuário.", map[string]interface{}{"user_id": input.ID})

	profile, err := s.UserRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error("Falha ao criar perfil de usuário no repositório.", err)
		return domain.UserProfile{}, apperror.NewDatabaseError(msgCreateProfileFailed, err)
	}

	s.logger.Info("Perfil de usuário criado.", map[string]interface{}{"user_id": profile.ID, "email": profile.Email})
	return profile, nil
}

// FindByID devolve (nil, nil) quando não há perfil para o ID.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	profile, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário por ID.", err)
		return nil, apperror.NewDatabaseError(msgFindFailed, err)
	}
	return profile, nil
}

// FindByEmail devolve (nil, nil) quando nenhum perfil usa o email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	profile, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário por email.", err)
		return nil, apperror.NewDatabaseError(msgFindByEmailFailed, err)
	}
	return profile, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.UserProfile, error) {
	profiles, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar usuários.", err)
		return nil, apperror.NewDatabaseError(msgListFailed, err)
	}
	if profiles == nil {
		profiles = []domain.UserProfile{}
	}
	return profiles, nil
}

// Update aplica uma atualização parcial em conta e perfil.
//
// Ordem: normalização do email, validação (email vazio, enums), sonda de existência (NotFound), sonda de conflito de email
// quando o email muda (Conflict) e só então a escrita. As sondas não são atômicas com a
// escrita; a constraint UNIQUE do banco continua sendo a garantia real.
func (s *UserService) Update(ctx context.Context, id string, input domain.UpdateUserProfileInput) (domain.UserProfile, error) {
	s.logger.Debug("Iniciando atualização de usuário.", map[string]interface{}{"user_id": id})

	// Mesmo formato usado no cadastro e no login.
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
	}
	if input.Email != nil && *input.Email == "" {
		return domain.UserProfile{}, apperror.NewValidationError("O email não pode ser vazio.")
	}
	if input.Role != nil && !input.Role.Valid() {
		return domain.UserProfile{}, apperror.NewValidationError(fmt.Sprintf("Papel inválido: %s", *input.Role))
	}
	if input.Status != nil && !input.Status.Valid() {
		return domain.UserProfile{}, apperror.NewValidationError(fmt.Sprintf("Status inválido: %s", *input.Status))
	}

	profile, err := s.update(ctx, id, input)
	if err != nil {
		return domain.UserProfile{}, s.normalize(err, msgUpdateFailed)
	}

	s.logger.Info("Usuário atualizado com sucesso.", map[string]interface{}{"user_id": profile.ID})
	return profile, nil
}

func (s *UserService) update(ctx context.Context, id string, input domain.UpdateUserProfileInput) (domain.UserProfile, error) {
	existing, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if existing == nil {
		return domain.UserProfile{}, notFound(id)
	}

	if input.Email != nil && *input.Email != existing.Email {
		owner, err := s.UserRepo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return domain.UserProfile{}, err
		}
		if owner != nil && owner.ID != id {
			s.logger.Warn("Email já pertence a outro usuário.", map[string]interface{}{"user_id": id, "email": *input.Email})
			return domain.UserProfile{}, apperror.NewConflictError(fmt.Sprintf("Já existe um usuário com o email %s", *input.Email))
		}
	}

	return s.UserRepo.Update(ctx, id, input)
}

// Delete remove apenas o perfil; a conta permanece.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando remoção de perfil.", map[string]interface{}{"user_id": id})

	if err := s.delete(ctx, id); err != nil {
		return s.normalize(err, msgDeleteFailed)
	}

	s.logger.Info("Perfil removido.", map[string]interface{}{"user_id": id})
	return nil
}

func (s *UserService) delete(ctx context.Context, id string) error {
	existing, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound(id)
	}
	return s.UserRepo.Delete(ctx, id)
}

func (s *UserService) normalize(err error, msg string) error {
	if apperror.IsTaxonomy(err) {
		return err
	}
	s.logger.Error(msg, err)
	return apperror.NewDatabaseError(msg, err)
}

func notFound(id string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Usuário não encontrado: %s", id), id)
}
