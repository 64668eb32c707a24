package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"catalogo/internal/pkg/cache"
	"catalogo/internal/pkg/logger"
)

// LimitRecorder recebe as rejeições do limitador (métricas). Pode ser nil.
type LimitRecorder interface {
	RecordRateLimited()
}

// RateLimiter aplica uma janela fixa de `limit` requisições por `period` para cada IP.
// Se o Redis falhar, a requisição segue (fail-open) e o erro é registrado.
func RateLimiter(client cache.Client, limit int, period time.Duration, recorder LimitRecorder, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.IncrWindow(r.Context(), key, period)
			if err != nil {
				log.Warn("Limitador indisponível, requisição liberada.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				if recorder != nil {
					recorder.RecordRateLimited()
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
