package response

import (
	"encoding/json"
	"net/http"

	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/validation"
)

// Limite do corpo das requisições JSON.
const maxBodyBytes = 1 << 20

// DecodeJSON lê o corpo em v e aplica as regras `validate`. JSON malformado é um erro de validação.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return validation.Struct(v)
}
