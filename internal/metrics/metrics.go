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

	InvoicesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_invoices_created_total",
			Help: "Total number of invoices created",
		},
		[]string{"type"},
	)

	InvoiceNumberFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_invoice_number_fallbacks_total",
			Help: "Total number of invoice numbers issued via the timestamp fallback",
		},
	)

	PDFGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_pdf_generated_total",
			Help: "Total number of invoice PDFs rendered",
		},
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

func RecordInvoice(invoiceType string) {
	InvoicesCreatedTotal.WithLabelValues(invoiceType).Inc()
}

func RecordInvoiceNumberFallback() {
	InvoiceNumberFallbacksTotal.Inc()
}

func RecordPDF() {
	PDFGeneratedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
