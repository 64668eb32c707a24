package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	// Nossos pacotes de infraestrutura e utilitários
	"catalogo/config"
	"catalogo/internal/pkg/cache"
	"catalogo/internal/pkg/database"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/metrics"
	"catalogo/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"catalogo/internal/api/auth"
	"catalogo/internal/api/product"
	"catalogo/internal/api/router"
	"catalogo/internal/api/user"
	"catalogo/internal/app"
	"catalogo/internal/repository/accountrepo"
	"catalogo/internal/repository/productrepo"
	"catalogo/internal/repository/userrepo"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos apenas com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis o serviço segue sem cache e sem limitador.
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis indisponível; cache e rate limit desativados.", map[string]interface{}{"error": err.Error()})
	} else {
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Conexão Redis estabelecida.", nil)
	}

	// C. Métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry, cfg.AuthBaseURL)

	services := app.NewServices(app.Adapters{
		Products:             productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log),
		Users:                userrepo.NewUserRepository(db, cfg.DBTimeout, log),
		Accounts:             accountrepo.NewAccountRepository(db, cfg.DBTimeout, log),
		ProvisioningRecorder: collector,
	}, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Deps{
		Product:        product.NewHandler(services.Products, log),
		User:           user.NewHandler(services.Users, log),
		Auth:           auth.NewHandler(services.Auth, log),
		Tokens:         tokenSvc,
		RateLimitCache: cacheClient,
		RateLimit:      cfg.RateLimitMaxRequests,
		RateWindow:     cfg.RateLimitPeriod,
		TrustedOrigins: cfg.AuthTrustedOrigins,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),
		Logger:         log,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
