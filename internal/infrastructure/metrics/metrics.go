package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the payments service
type Metrics struct {
	// Webhook metrics
	WebhookEvents        *prometheus.CounterVec
	WebhookEventsIgnored prometheus.Counter
	WebhookErrors        *prometheus.CounterVec
	WebhookDuration      prometheus.Histogram

	// Reconciliation metrics
	SubscriptionsCreated  prometheus.Counter
	SubscriptionsCanceled prometheus.Counter
	PaymentFailures       prometheus.Counter
	PaymentRecoveries     prometheus.Counter
	PayoutRecords         prometheus.Counter
	ActiveSubscriptions   prometheus.Gauge

	// Initiation metrics
	CheckoutSessions prometheus.Counter
	PortalSessions   prometheus.Counter

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaProduceDuration  prometheus.Histogram
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance with all counters and gauges
func NewMetrics() *Metrics {
	return &Metrics{
		WebhookEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_service_webhook_events_total",
				Help: "Total number of webhook events processed, by event type",
			},
			[]string{"type"},
		),
		WebhookEventsIgnored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_webhook_events_ignored_total",
			Help: "Total number of webhook events acknowledged and dropped",
		}),
		WebhookErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_service_webhook_errors_total",
				Help: "Total number of webhook handling errors",
			},
			[]string{"error_type"},
		),
		WebhookDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payments_service_webhook_duration_seconds",
			Help:    "Duration of webhook handling in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		SubscriptionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_subscriptions_created_total",
			Help: "Total number of subscriptions activated from checkout",
		}),
		SubscriptionsCanceled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_subscriptions_canceled_total",
			Help: "Total number of subscriptions canceled",
		}),
		PaymentFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_payment_failures_total",
			Help: "Total number of failed recurring payments",
		}),
		PaymentRecoveries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_payment_recoveries_total",
			Help: "Total number of subscriptions recovered after a failed payment",
		}),
		PayoutRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_payout_records_total",
			Help: "Total number of payout records appended",
		}),
		ActiveSubscriptions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "payments_service_active_subscriptions",
			Help: "Current number of active subscriptions",
		}),

		CheckoutSessions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_checkout_sessions_total",
			Help: "Total number of checkout sessions created",
		}),
		PortalSessions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_portal_sessions_total",
			Help: "Total number of billing portal sessions created",
		}),

		KafkaMessagesProduced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payments_service_kafka_messages_produced_total",
			Help: "Total number of messages produced to Kafka",
		}),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_service_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"error_type"},
		),
		KafkaProduceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payments_service_kafka_produce_duration_seconds",
			Help:    "Duration of Kafka produce operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}
