package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Clinical domain metrics
	CasesCreated        prometheus.Counter
	CasesByRiskLevel    *prometheus.CounterVec
	AppointmentsBooked  prometheus.Counter
	VaccinationsLogged  prometheus.Counter
	AuditRowsWritten    *prometheus.CounterVec
	AuditRowsStored     *prometheus.GaugeVec

	// Notification dispatch metrics
	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	NotificationLatency  prometheus.Histogram
	NotificationsPending prometheus.Gauge
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		CasesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_created_total",
			Help:      "Total number of exposure cases created",
		}),
		CasesByRiskLevel: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_by_risk_level_total",
			Help:      "Exposure cases broken down by classified risk level",
		}, []string{"risk_level"}),
		AppointmentsBooked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Total number of appointments booked",
		}),
		VaccinationsLogged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vaccinations_logged_total",
			Help:      "Total number of vaccination doses recorded",
		}),
		AuditRowsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_rows_written_total",
			Help:      "Medical audit log rows written, by action",
		}, []string{"action"}),
		AuditRowsStored: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_rows_stored",
			Help:      "Medical audit log rows currently stored, by action",
		}, []string{"action"}),

		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications delivered",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Total number of notification deliveries that failed",
		}),
		NotificationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_dispatch_duration_seconds",
			Help:      "Time spent delivering a notification",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		NotificationsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_pending",
			Help:      "Unsent notifications waiting on the dispatcher",
		}),
	}
}
