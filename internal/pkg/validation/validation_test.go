package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "catalogo/internal/errors"
)

type payload struct {
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,min=8"`
	Currency *string `validate:"omitempty,len=3"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(payload{Email: "a@b.com", Password: "12345678"}))
}

func TestStruct_Violations(t *testing.T) {
	eur := "EURO"
	cases := map[string]struct {
		in       payload
		contains string
	}{
		"email ausente":  {payload{Password: "12345678"}, "O campo Email é obrigatório."},
		"email inválido": {payload{Email: "x", Password: "12345678"}, "email válido"},
		"senha curta":    {payload{Email: "a@b.com", Password: "123"}, "no mínimo 8"},
		"moeda com 4":    {payload{Email: "a@b.com", Password: "12345678", Currency: &eur}, "exatamente 3"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Struct(tc.in)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
