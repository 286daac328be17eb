package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	CreditsCreatedTotal   prometheus.Counter
	CreditsRejectedTotal  *prometheus.CounterVec
}

var Business = BusinessMetrics{
	CustomersCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	),
	CreditsCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_credits_created_total",
			Help: "Total number of credits successfully created.",
		},
	),
	CreditsRejectedTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_engine_credits_rejected_total",
			Help: "Total number of credit requests rejected before persistence.",
		},
		[]string{"reason"},
	),
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCreditCreated() {
	Business.CreditsCreatedTotal.Inc()
}

func RecordCreditRejected(reason string) {
	Business.CreditsRejectedTotal.WithLabelValues(reason).Inc()
}
