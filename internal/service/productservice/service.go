package productservice

import (
	"context"
	"fmt"
	"strings"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
)

// Mensagens fixas exibidas ao usuário quando o repositório falha.
const (
	msgCreateFailed = "Erro ao criar produto."
	msgFindFailed   = "Erro ao buscar produto."
	msgListFailed   = "Erro ao listar produtos."
	msgUpdateFailed = "Erro inesperado ao atualizar produto."
	msgDeleteFailed = "Erro inesperado ao remover produto."
)

// Service orquestra as operações do catálogo sobre um domain.ProductRepository.
type Service struct {
	repo   domain.ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo domain.ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create valida as regras de negócio e delega a criação ao repositório.
func (s *Service) Create(ctx context.Context, input domain.CreateProductInput) (domain.Product, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": input.Name})

	// 1. Validação (sempre antes de tocar o repositório)
	if strings.TrimSpace(input.Name) == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if err := validateAmounts(&input.PriceCents, input.Stock); err != nil {
		s.logger.Warn("Produto rejeitado na validação.", map[string]interface{}{"name": input.Name, "error": err.Error()})
		return domain.Product{}, err
	}

	// 2. Persistência
	product, err := s.repo.Create(ctx, input)
	if err != nil {
		s.logger.Error("Falha ao criar produto no repositório.", err)
		return domain.Product{}, apperror.NewDatabaseError(msgCreateFailed, err)
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": product.ID, "name": product.Name})
	return product, nil
}

// FindByID devolve (nil, nil) quando o produto não existe; cabe ao chamador decidir a resposta.
func (s *Service) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar produto no repositório.", err)
		return nil, apperror.NewDatabaseError(msgFindFailed, err)
	}
	return product, nil
}

// FindAll lista os produtos na ordem definida pelo repositório.
func (s *Service) FindAll(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar produtos no repositório.", err)
		return nil, apperror.NewDatabaseError(msgListFailed, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Update valida os campos enviados, confirma a existência do produto e só então o altera.
// A sonda e a escrita não são atômicas: duas atualizações concorrentes podem passar pela sonda.
func (s *Service) Update(ctx context.Context, id string, input domain.UpdateProductInput) (domain.Product, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": id})

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if err := validateAmounts(input.PriceCents, input.Stock); err != nil {
		s.logger.Warn("Atualização de produto rejeitada na validação.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Product{}, err
	}

	product, err := s.update(ctx, id, input)
	if err != nil {
		return domain.Product{}, s.normalize(err, msgUpdateFailed)
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": product.ID})
	return product, nil
}

func (s *Service) update(ctx context.Context, id string, input domain.UpdateProductInput) (domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, notFound(id)
	}
	return s.repo.Update(ctx, id, input)
}

// Delete remove o produto (remoção física) após a sonda de existência.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando remoção de produto no serviço.", map[string]interface{}{"id": id})

	if err := s.delete(ctx, id); err != nil {
		return s.normalize(err, msgDeleteFailed)
	}

	s.logger.Info("Produto removido com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound(id)
	}
	return s.repo.Delete(ctx, id)
}

// normalize propaga erros da taxonomia sem alteração e encapsula o restante uma única vez.
func (s *Service) normalize(err error, msg string) error {
	if apperror.IsTaxonomy(err) {
		return err
	}
	s.logger.Error(msg, err)
	return apperror.NewDatabaseError(msg, err)
}

// validateAmounts aplica o invariante priceCents >= 0 && stock >= 0 aos campos presentes.
func validateAmounts(priceCents *int64, stock *int) error {
	if priceCents != nil && *priceCents < 0 {
		return apperror.NewValidationError("O preço deve ser positivo ou zero.")
	}
	if stock != nil && *stock < 0 {
		return apperror.NewValidationError("O estoque deve ser positivo ou zero.")
	}
	return nil
}

func notFound(id string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Produto não encontrado: %s", id), id)
}
