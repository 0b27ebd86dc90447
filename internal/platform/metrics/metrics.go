package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated   prometheus.Counter
	ActiveSessions prometheus.Gauge
	AuthFailures   prometheus.Counter

	UnitsCreated     prometheus.Counter
	TenantsAssigned  prometheus.Counter
	TenantsReleased  prometheus.Counter
	OccupancyRepairs prometheus.Counter
	PaymentsRecorded prometheus.Counter
	RemindersSent    *prometheus.CounterVec
	ReportsExported  *prometheus.CounterVec

	EndpointLatency *prometheus.HistogramVec
	ReportAssembly  prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_users_created_total",
			Help: "Total number of manager accounts created",
		}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "propertyhub_active_sessions",
			Help: "Current number of active sessions",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
		UnitsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_units_created_total",
			Help: "Total number of units created",
		}),
		TenantsAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_tenants_assigned_total",
			Help: "Total number of tenants assigned to units",
		}),
		TenantsReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_tenants_released_total",
			Help: "Total number of tenants released from units",
		}),
		OccupancyRepairs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_occupancy_repairs_total",
			Help: "Total number of units whose status was corrected by the reconcile sweep",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyhub_payments_recorded_total",
			Help: "Total number of payments marked Paid",
		}),
		RemindersSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propertyhub_reminders_sent_total",
			Help: "Total number of reminders sent, labeled by type",
		}, []string{"type"}),
		ReportsExported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propertyhub_reports_exported_total",
			Help: "Total number of report exports, labeled by format",
		}, []string{"format"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "propertyhub_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		ReportAssembly: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propertyhub_report_assembly_seconds",
			Help:    "Duration of report summary assembly",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementUsersCreated() { m.UsersCreated.Inc() }

func (m *Metrics) IncrementActiveSessions() { m.ActiveSessions.Inc() }
func (m *Metrics) DecrementActiveSessions() { m.ActiveSessions.Dec() }
func (m *Metrics) IncrementAuthFailures()   { m.AuthFailures.Inc() }

func (m *Metrics) IncrementUnitsCreated()     { m.UnitsCreated.Inc() }
func (m *Metrics) IncrementTenantsAssigned()  { m.TenantsAssigned.Inc() }
func (m *Metrics) IncrementTenantsReleased()  { m.TenantsReleased.Inc() }
func (m *Metrics) IncrementPaymentsRecorded() { m.PaymentsRecorded.Inc() }

func (m *Metrics) AddOccupancyRepairs(count int) {
	m.OccupancyRepairs.Add(float64(count))
}

func (m *Metrics) IncrementRemindersSent(reminderType string) {
	m.RemindersSent.WithLabelValues(reminderType).Inc()
}

func (m *Metrics) IncrementReportsExported(format string) {
	m.ReportsExported.WithLabelValues(format).Inc()
}

// ObserveEndpointLatency records the latency for a given endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

// ObserveReportAssembly records the duration of a report summary build.
func (m *Metrics) ObserveReportAssembly(start time.Time) {
	m.ReportAssembly.Observe(time.Since(start).Seconds())
}
