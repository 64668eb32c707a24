// Package app é a raiz de composição: recebe os adaptadores concretos e devolve
// os serviços já ligados entre si. Não há estado global.
package app

import (
	"catalogo/internal/domain"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/token"
	"catalogo/internal/provisioning"
	"catalogo/internal/service/authservice"
	"catalogo/internal/service/productservice"
	"catalogo/internal/service/userservice"
)

// Adapters são as implementações das portas de saída. ProvisioningRecorder é opcional.
type Adapters struct {
	Products             domain.ProductRepository
	Users                domain.UserRepository
	Accounts             domain.AccountRepository
	ProvisioningRecorder provisioning.Recorder
}

// Services agrupa as instâncias prontas para os adaptadores de entrada.
type Services struct {
	Products *productservice.Service
	Users    *userservice.UserService
	Auth     *authservice.Service
}

// NewServices monta os serviços e registra o hook que cria o perfil de cada nova conta.
func NewServices(adapters Adapters, tokens token.TokenService, log logger.Logger) *Services {
	products := productservice.NewService(adapters.Products, log)
	users := userservice.NewService(adapters.Users, log)

	auth := authservice.NewService(adapters.Accounts, tokens, log)
	auth.RegisterHook(provisioning.NewHook(users, adapters.ProvisioningRecorder, log))

	return &Services{
		Products: products,
		Users:    users,
		Auth:     auth,
	}
}
