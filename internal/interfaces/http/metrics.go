package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del motor de stock expuestas en /metrics.
var (
	stockOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_total",
		Help: "Operaciones del motor de stock por tipo y resultado.",
	}, []string{"operation", "outcome"})

	insufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_insufficient_rejections_total",
		Help: "Salidas rechazadas por stock insuficiente.",
	})

	lockTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_lock_timeouts_total",
		Help: "Operaciones rechazadas por timeout del candado de producto.",
	})
)

func recordOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	stockOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
