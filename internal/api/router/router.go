package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"catalogo/internal/api/auth"
	"catalogo/internal/api/product"
	"catalogo/internal/api/user"
	_ "catalogo/internal/docs" // registra a especificação OpenAPI
	"catalogo/internal/pkg/cache"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/metrics"
	"catalogo/internal/pkg/middleware"
)

// Deps reúne tudo o que o roteador monta. RateLimitCache e Metrics são opcionais.
type Deps struct {
	Product *product.Handler
	User    *user.Handler
	Auth    *auth.Handler

	Tokens         middleware.TokenService
	RateLimitCache cache.Client
	RateLimit      int
	RateWindow     time.Duration
	TrustedOrigins []string
	// TrustProxyHeaders aceita X-Forwarded-For/X-Real-IP como IP do cliente.
	// Só deve ser ligado atrás de um proxy que reescreve esses headers.
	TrustProxyHeaders bool
	Metrics           *metrics.Collector
	MetricsHandler    http.Handler
	Logger            logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RequestID)
	if d.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewCORSMiddleware(d.TrustedOrigins))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	// --- 2. Health check, métricas e documentação ---
	r.Get("/ping", PingHandler)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	requireAuth := middleware.NewAuthMiddleware(d.Tokens, d.Logger)

	r.Route("/api", func(r chi.Router) {
		// Limite por IP apenas na API; /ping e /metrics ficam de fora.
		if d.RateLimitCache != nil {
			var recorder middleware.LimitRecorder
			if d.Metrics != nil {
				recorder = d.Metrics
			}
			r.Use(middleware.RateLimiter(d.RateLimitCache, d.RateLimit, d.RateWindow, recorder, d.Logger))
		}

		// --- 3. Contas ---
		r.Post("/auth/sign-up/email", d.Auth.SignUpHandler)
		r.Post("/auth/sign-in/email", d.Auth.SignInHandler)

		// --- 4. Produtos: leitura pública, mutações autenticadas ---
		r.Route("/products", func(r chi.Router) {
			r.Get("/", d.Product.ListProductsHandler)
			r.Get("/{id}", d.Product.GetProductByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", d.Product.CreateProductHandler)
				r.Patch("/{id}", d.Product.UpdateProductHandler)
				r.Delete("/{id}", d.Product.DeleteProductHandler)
			})
		})

		// --- 5. Usuários: tudo autenticado ---
		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", d.User.ListUsersHandler)
			r.Get("/{id}", d.User.GetUserHandler)
			r.Patch("/{id}", d.User.UpdateUserHandler)
			r.Delete("/{id}", d.User.DeleteUserHandler)
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
