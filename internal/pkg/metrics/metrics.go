// Package metrics expõe as métricas Prometheus da API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrega os contadores de requisições e de provisionamento de perfis.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	provisioned  prometheus.Counter
	provisionErr prometheus.Counter
	rateLimited  prometheus.Counter
}

// NewCollector cria o Collector e registra as métricas em reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogo_http_requests_total",
			Help: "Total de requisições HTTP por rota, método e status",
		}, []string{"route", "method", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalogo_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP (segundos)",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		provisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalogo_profile_provisioning_success_total",
			Help: "Perfis criados pelo hook de provisionamento",
		}),
		provisionErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalogo_profile_provisioning_failure_total",
			Help: "Falhas do hook de provisionamento",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalogo_rate_limited_total",
			Help: "Requisições rejeitadas pelo limitador",
		}),
	}

	reg.MustRegister(c.requests, c.latency, c.provisioned, c.provisionErr, c.rateLimited)
	return c
}

// RecordRequest registra uma requisição concluída.
func (c *Collector) RecordRequest(route, method string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordProvisioning registra o resultado de um provisionamento de perfil.
func (c *Collector) RecordProvisioning(success bool) {
	if success {
		c.provisioned.Inc()
		return
	}
	c.provisionErr.Inc()
}

func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler devolve o handler de scrape para o gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
