package product

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/middleware"
	"catalogo/internal/pkg/response"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	Create(ctx context.Context, input domain.CreateProductInput) (domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id string, input domain.UpdateProductInput) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateProductHandler lida com a requisição POST /api/products.
// @Summary Cria um novo produto
// @Description Cria um produto no catálogo. Moeda padrão EUR, estoque padrão 0, ativo por padrão.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.CreateProductInput true "Dados do produto"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou preço/estoque negativos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateProductInput
	if err := response.DecodeJSON(w, r, &input); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Debug("Criação de produto solicitada.", map[string]interface{}{"user_id": claims.UserID})
	}

	product, err := h.Service.Create(r.Context(), input)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, product)
}

// ListProductsHandler lida com GET /api/products.
// @Summary Lista os produtos
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.FindAll(r.Context())
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

// GetProductByIDHandler lida com GET /api/products/{id}.
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	// Ausência não é erro no serviço; aqui ela vira 404.
	if product == nil {
		response.Error(w, h.Logger, apperror.NewNotFoundError(fmt.Sprintf("Produto não encontrado: %s", id), id))
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// UpdateProductHandler lida com PATCH /api/products/{id}.
// @Summary Atualiza parcialmente um produto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param product body domain.UpdateProductInput true "Campos a alterar"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/products/{id} [patch]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.UpdateProductInput
	if err := response.DecodeJSON(w, r, &input); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	product, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// DeleteProductHandler lida com DELETE /api/products/{id}.
// @Summary Remove um produto
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204 "Produto removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
