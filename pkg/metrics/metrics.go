package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics.
var (
	ShiftsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "shifts_opened_total",
		Help:      "Turnos de caja iniciados.",
	})
	ShiftsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "shifts_closed_total",
		Help:      "Turnos de caja cerrados.",
	})
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "orders_created_total",
		Help:      "Órdenes de venta creadas.",
	})
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "order_status_transitions_total",
		Help:      "Cambios de estado de órdenes de venta por estado destino.",
	}, []string{"status"})
	PaymentsAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "payments_amount_total",
		Help:      "Monto cobrado por medio de pago.",
	}, []string{"method"})
	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "inventory_movements_total",
		Help:      "Movimientos de inventario por tipo.",
	}, []string{"type"})
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optica",
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP por método, ruta y código.",
	}, []string{"method", "route", "status"})
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "optica",
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
