// Package response concentra a escrita de respostas JSON da API.
package response

import (
	"encoding/json"
	"net/http"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
)

// JSON escreve payload com o status informado.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error traduz err pela taxonomia e escreve domain.ErrorResponse.
// Respostas 5xx são registradas com a causa completa; o corpo leva apenas a mensagem fixa.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	status, category, msg := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error(msg, err)
	}
	JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  msg,
	})
}
