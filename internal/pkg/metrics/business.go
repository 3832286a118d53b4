package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacare_orders_placed_total",
			Help: "Total number of sales orders placed",
		},
		[]string{"payment_method"},
	)

	orderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacare_order_transitions_total",
			Help: "Total number of orders moved out of pending",
		},
		[]string{"status"},
	)

	salesAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jacare_sales_amount_total",
			Help: "Total amount of placed orders in BRL",
		},
	)

	stockReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jacare_stock_units_received_total",
			Help: "Total number of units received from suppliers",
		},
	)

	returnsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacare_returns_registered_total",
			Help: "Total number of product returns",
		},
		[]string{"condition", "restocked"},
	)

	lowStockProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jacare_low_stock_products",
			Help: "Number of active products at or below their minimum stock",
		},
	)

	overdueExpenses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jacare_overdue_expenses",
			Help: "Number of pending expenses past their due date",
		},
	)

	exportsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacare_exports_written_total",
			Help: "Total number of CSV exports written to object storage",
		},
		[]string{"dataset"},
	)
)

// RecordOrderPlaced records a placed order and its total in BRL
func RecordOrderPlaced(paymentMethod string, total float64) {
	ordersPlaced.WithLabelValues(paymentMethod).Inc()
	salesAmount.Add(total)
}

// RecordOrderTransition records orders moved to a final status
func RecordOrderTransition(status string, count int) {
	orderTransitions.WithLabelValues(status).Add(float64(count))
}

// RecordStockReceived records units received from a supplier
func RecordStockReceived(units int) {
	stockReceived.Add(float64(units))
}

// RecordReturn records a registered return
func RecordReturn(condition string, restocked bool) {
	label := "false"
	if restocked {
		label = "true"
	}
	returnsRegistered.WithLabelValues(condition, label).Inc()
}

// SetLowStockProducts sets the low stock gauge
func SetLowStockProducts(count int) {
	lowStockProducts.Set(float64(count))
}

// SetOverdueExpenses sets the overdue expenses gauge
func SetOverdueExpenses(count int) {
	overdueExpenses.Set(float64(count))
}

// RecordExportWritten records a finished export
func RecordExportWritten(dataset string) {
	exportsWritten.WithLabelValues(dataset).Inc()
}
