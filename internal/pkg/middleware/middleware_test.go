package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/domain"
	"catalogo/internal/pkg/logger"
	"catalogo/internal/pkg/token"
)

// fakeCache implementa cache.Client em memória.
type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
	err      error
}

func newFakeCache() *fakeCache { return &fakeCache{counters: map[string]int64{}} }

func (f *fakeCache) Get(context.Context, string) (string, error) { return "", errors.New("não usado") }
func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(context.Context, ...string) error { return nil }
func (f *fakeCache) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.counters[key]++
	return f.counters[key], nil
}

type countingLimitRecorder struct{ n int }

func (c *countingLimitRecorder) RecordRateLimited() { c.n++ }

type captureRecorder struct {
	route  string
	status int
}

func (c *captureRecorder) RecordRequest(route, _ string, status int, _ time.Duration) {
	c.route, c.status = route, status
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour, "iss")
	valid, _, err := tokens.GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	var seen UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := NewAuthMiddleware(tokens, logger.NewNopLogger())(next)

	cases := map[string]struct {
		header string
		status int
	}{
		"sem header":     {"", http.StatusUnauthorized},
		"sem Bearer":     {"Token " + valid, http.StatusUnauthorized},
		"token inválido": {"Bearer abc.def.ghi", http.StatusUnauthorized},
		"token válido":   {"Bearer " + valid, http.StatusOK},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				var body domain.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "UNAUTHORIZED", body.Category)
			}
		})
	}
	assert.Equal(t, "u1", seen.UserID)
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rec := &countingLimitRecorder{}
	handler := RateLimiter(newFakeCache(), 2, time.Minute, rec, logger.NewNopLogger())(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, 1, rec.n)
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	handler := RateLimiter(newFakeCache(), 1, time.Minute, nil, logger.NewNopLogger())(okHandler)

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_FailOpen(t *testing.T) {
	c := newFakeCache()
	c.err = errors.New("redis down")
	handler := RateLimiter(c, 1, time.Minute, nil, logger.NewNopLogger())(okHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	handler := NewCORSMiddleware([]string{"http://localhost:5173"})(okHandler)

	t.Run("origem confiável", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &captureRecorder{}
	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/abc", nil))

	assert.Equal(t, "/api/products/{id}", rec.route)
	assert.Equal(t, http.StatusNotFound, rec.status)
}
