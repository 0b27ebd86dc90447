// Package httptransport assembles the HTTP surface: middleware stack, public
// auth routes, the authenticated API, and the operational endpoints. Business
// logic stays in the internal services; this package only wires them.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "propertyhub/internal/auth/handler"
	paymenthandler "propertyhub/internal/payment/handler"
	"propertyhub/internal/platform/health"
	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/platform/middleware"
	reminderhandler "propertyhub/internal/reminder/handler"
	reporthandler "propertyhub/internal/report/handler"
	settingshandler "propertyhub/internal/settings/handler"
	tenanthandler "propertyhub/internal/tenant/handler"
	unithandler "propertyhub/internal/unit/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	TokenValidator middleware.TokenValidator
	Sessions       middleware.SessionChecker

	Auth      *authhandler.Handler
	Units     *unithandler.Handler
	Tenants   *tenanthandler.Handler
	Payments  *paymenthandler.Handler
	Reminders *reminderhandler.Handler
	Settings  *settingshandler.Handler
	Reports   *reporthandler.Handler
	Health    *health.Handler
}

// NewRouter wires all endpoints with the middleware stack. Everything except
// signup, signin, health and metrics sits behind the session token check.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	if d.Metrics != nil {
		r.Use(endpointLatency(d.Metrics))
	}

	d.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	d.Auth.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.TokenValidator, d.Sessions, d.Logger))

		d.Auth.RegisterProtected(r)
		d.Units.Register(r)
		d.Tenants.Register(r)
		d.Payments.Register(r)
		d.Reminders.Register(r)
		d.Settings.Register(r)
		d.Reports.Register(r)
	})

	return r
}

// endpointLatency records per-route latency, labelled by the chi route
// pattern so path parameters don't explode the cardinality.
func endpointLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveEndpointLatency(pattern, time.Since(start).Seconds())
		})
	}
}
