package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MembersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_members_created_total",
			Help: "Total number of members registered",
		},
	)

	RenewalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_renewals_total",
			Help: "Total number of membership renewals",
		},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"type", "status"},
	)

	CheckinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_checkins_total",
			Help: "Total number of member check-ins",
		},
	)

	InsightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_insight_requests_total",
			Help: "Total number of at-risk insight requests to the AI service",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordMemberCreated() {
	MembersCreatedTotal.Inc()
}

func RecordRenewal() {
	RenewalsTotal.Inc()
}

func RecordPayment(paymentType, status string) {
	PaymentsRecordedTotal.WithLabelValues(paymentType, status).Inc()
}

func RecordCheckin() {
	CheckinsTotal.Inc()
}

func RecordInsightRequest(status string) {
	InsightRequestsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
