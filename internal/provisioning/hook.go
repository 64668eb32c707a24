// Package provisioning liga o subsistema de contas ao módulo de usuários:
// toda conta criada recebe o seu perfil antes de o cadastro ser concluído.
package provisioning

import (
	"context"
	"fmt"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/logger"
)

// ProfileCreator é o recorte do UserService que o hook utiliza.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, input domain.CreateUserProfileInput) (domain.UserProfile, error)
}

// Recorder recebe o resultado de cada provisionamento (métricas).
type Recorder interface {
	RecordProvisioning(success bool)
}

// Hook cria o perfil de usuário a partir de um evento domain.AccountCreated.
type Hook struct {
	profiles ProfileCreator
	recorder Recorder
	logger   logger.Logger
}

// NewHook cria o hook. recorder pode ser nil.
func NewHook(profiles ProfileCreator, recorder Recorder, logger logger.Logger) *Hook {
	return &Hook{profiles: profiles, recorder: recorder, logger: logger}
}

// OnAccountCreated chama CreateProfile exatamente uma vez. Role, status, telefone e nomes
// ficam vazios até uma atualização explícita do perfil. O erro nunca é engolido:
// ele sobe para quem aguarda a criação da conta.
func (h *Hook) OnAccountCreated(ctx context.Context, event domain.AccountCreated) error {
	h.logger.Debug("Provisionando perfil para nova conta.", map[string]interface{}{"user_id": event.ID, "email": event.Email})

	input := domain.CreateUserProfileInput{
		ID:            event.ID,
		Name:          event.Name,
		Image:         event.Image,
		Email:         event.Email,
		EmailVerified: event.EmailVerified,
	}

	if _, err := h.profiles.CreateProfile(ctx, input); err != nil {
		h.record(false)
		h.logger.Error("Falha ao provisionar perfil da nova conta.", err)
		return fmt.Errorf("provisionamento do perfil %s: %w", event.ID, err)
	}

	h.record(true)
	h.logger.Info("Perfil provisionado.", map[string]interface{}{"user_id": event.ID})
	return nil
}

func (h *Hook) record(success bool) {
	if h.recorder != nil {
		h.recorder.RecordProvisioning(success)
	}
}
