package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "catalogo/internal/errors"
)

// Instância global reutilizada; o validator mantém cache das structs.
var validate = validator.New()

// Struct valida v pelas tags `validate` e converte a primeira violação em um
// erro de validação da taxonomia, com mensagem legível.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.NewValidationError("Dados de entrada inválidos.")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, " "))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um email válido.", field)
	case "min":
		return fmt.Sprintf("O campo %s deve ter no mínimo %s caracteres.", field, fe.Param())
	case "len":
		return fmt.Sprintf("O campo %s deve ter exatamente %s caracteres.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("O campo %s deve ser maior ou igual a %s.", field, fe.Param())
	default:
		return fmt.Sprintf("O campo %s é inválido.", field)
	}
}
