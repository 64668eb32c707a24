package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind enumera as categorias fechadas de erro que os serviços podem produzir.
// Os adaptadores de entrada decidem a resposta apenas com base no Kind.
type Kind int

const (
	KindInternal Kind = iota // Falha fora da taxonomia (nunca deveria sair de um serviço)
	KindValidation
	KindNotFound
	KindConflict
	KindDatabase
	KindUnauthorized // Usado apenas pelo subsistema de contas
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindDatabase:
		return "DATABASE_ERROR"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}

// AppError é a interface central para todos os erros customizados.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Kind() Kind       // Variante da taxonomia
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa a violação de uma regra de negócio na entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Kind() Kind       { return KindValidation }
func (e *ValidationError) Category() string { return KindValidation.String() }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError indica que a sonda de existência não encontrou a entidade antes de uma mutação.
type NotFoundError struct {
	Msg string
	ID  string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Kind() Kind       { return KindNotFound }
func (e *NotFoundError) Category() string { return KindNotFound.String() }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string, id string) AppError {
	return &NotFoundError{Msg: msg, ID: id}
}

// ConflictError representa um conflito de unicidade (e.g., email já em uso).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Kind() Kind       { return KindConflict }
func (e *ConflictError) Category() string { return KindConflict.String() }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Kind() Kind       { return KindUnauthorized }
func (e *UnauthorizedError) Category() string { return KindUnauthorized.String() }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// DatabaseError representa qualquer falha inesperada vinda de uma porta de repositório.
// A mensagem é fixa e pode ser exibida ao usuário; a causa fica em Err.
type DatabaseError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}
func (e *DatabaseError) Kind() Kind       { return KindDatabase }
func (e *DatabaseError) Category() string { return KindDatabase.String() }
func (e *DatabaseError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *DatabaseError) Unwrap() error    { return e.Err }

// NewDatabaseError encapsula uma falha de repositório com uma mensagem fixa.
func NewDatabaseError(msg string, err error) AppError {
	return &DatabaseError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas fora do acesso a dados (hash, token).
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return e.Msg }
func (e *InternalError) Kind() Kind       { return KindInternal }
func (e *InternalError) Category() string { return KindInternal.String() }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helpers ---

// KindOf devolve o Kind do primeiro AppError encontrado na cadeia de err.
// Erros que não pertencem à taxonomia são KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// IsTaxonomy informa se err já é um erro de domínio e deve ser propagado sem novo encapsulamento.
func IsTaxonomy(err error) bool {
	var appErr AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	switch appErr.Kind() {
	case KindValidation, KindNotFound, KindConflict, KindDatabase, KindUnauthorized:
		return true
	}
	return false
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if !stderrors.As(err, &appErr) {
		// Erro não tipado: nunca expomos a mensagem bruta ao cliente.
		return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
	}

	switch appErr.Kind() {
	case KindValidation, KindNotFound, KindConflict, KindUnauthorized:
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	case KindDatabase:
		// Apenas a mensagem fixa; a causa do driver fica nos logs.
		var dbErr *DatabaseError
		stderrors.As(err, &dbErr)
		return appErr.HTTPStatus(), appErr.Category(), dbErr.Msg
	default:
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}
}
