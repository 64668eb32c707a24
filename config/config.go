package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config armazena todas as configurações do serviço de catálogo.
// É lida uma única vez na inicialização e tratada como imutável.
type Config struct {
	// Geral
	Port        string `validate:"required,numeric"`
	Environment string `validate:"oneof=development staging production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `validate:"required"`
	DBTimeout   time.Duration `validate:"gt=0"`

	// Cache (Redis)
	RedisAddr string        `validate:"required,hostname_port"`
	CacheTTL  time.Duration `validate:"gt=0"`

	// Segurança (JWT)
	JWTSecretKey string        `validate:"required,min=16"`
	TokenExpiry  time.Duration `validate:"gt=0"`

	// Rate Limiting
	RateLimitMaxRequests int           `validate:"min=1"`
	RateLimitPeriod      time.Duration `validate:"gt=0"`
	TrustProxyHeaders    bool

	// Subsistema de contas
	AuthBaseURL        string   `validate:"required,url"`
	AuthTrustedOrigins []string `validate:"min=1,dive,url"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente e as valida.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),

		// 2. Banco de Dados (PostgreSQL)
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 3. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second, // 5 min padrão

		// 4. Segurança (JWT)
		JWTSecretKey: os.Getenv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute, // 60 min padrão

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_SEC", 60) * time.Second,
		TrustProxyHeaders:    getBoolEnv("TRUST_PROXY_HEADERS", false),

		// 6. Contas
		AuthBaseURL:        getEnv("AUTH_BASE_URL", "http://localhost:3000"),
		AuthTrustedOrigins: splitList(getEnv("AUTH_TRUSTED_ORIGINS", "http://localhost:5173")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate aplica as regras das tags `validate` e lista todos os campos inválidos.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("configuração inválida: %s", strings.Join(fields, ", "))
}

// DatabaseURL lê apenas DATABASE_URL; usado pelo comando de migração.
func DatabaseURL() (string, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", fmt.Errorf("a variável de ambiente DATABASE_URL deve ser definida")
	}
	return url, nil
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv aceita os formatos de strconv.ParseBool ("true", "1", "false"...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um booleano válido. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
