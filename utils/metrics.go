package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики HTTP-запросов
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_http_requests_total",
		Help: "Total HTTP requests processed, labeled by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})
)

// Метрики леджера
var (
	DebtsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_debts_recorded_total",
		Help: "Total debt records created at checkout",
	})

	DebtPaymentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_debt_payments_total",
		Help: "Total debt payments applied",
	})
)
