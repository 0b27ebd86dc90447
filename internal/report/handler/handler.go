package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	paymentmodels "propertyhub/internal/payment/models"
	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/report/service"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/platform/httputil"
)

// Service defines the interface for report assembly operations.
type Service interface {
	Summary(ctx context.Context, month time.Month, year int) (*service.PeriodSummary, error)
	Overview(ctx context.Context) (*service.Dashboard, error)
	Export(ctx context.Context, month time.Month, year int) ([]byte, string, error)
}

// Handler handles the report and dashboard endpoints.
type Handler struct {
	reports Service
	logger  *slog.Logger
}

func New(reports Service, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, logger: logger}
}

// Register registers the report routes with the chi router. All routes
// require an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/reports/summary", h.HandleSummary)
	r.Get("/reports/export", h.HandleExport)
}

// HandleSummary implements GET /reports/summary with optional "month" (1-12)
// and "year" query parameters. Omitting both selects the current month.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	month, year, err := periodParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.reports.Summary(ctx, month, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble report",
			"error", err,
			"request_id", requestID,
			"month", int(month),
			"year", year,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleExport implements GET /reports/export, serving the period report as
// a CSV attachment.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	month, year, err := periodParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	data, filename, err := h.reports.Export(ctx, month, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export report",
			"error", err,
			"request_id", requestID,
			"month", int(month),
			"year", year,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report exported",
		"request_id", requestID,
		"filename", filename,
	)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// DashboardResponse is the public view of the landing-page overview.
type DashboardResponse struct {
	TotalUnits     int                     `json:"total_units"`
	TotalTenants   int                     `json:"total_tenants"`
	MonthlyRevenue decimal.Decimal         `json:"monthly_revenue"`
	OccupancyRate  int                     `json:"occupancy_rate"`
	RecentPayments []RecentPaymentResponse `json:"recent_payments"`
}

// RecentPaymentResponse is the public view of a recent ledger entry.
type RecentPaymentResponse struct {
	ID           string          `json:"id"`
	TenantName   string          `json:"tenant_name"`
	Unit         string          `json:"unit"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month"`
	Status       string          `json:"status"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toRecentPaymentResponse(p *paymentmodels.Payment) RecentPaymentResponse {
	return RecentPaymentResponse{
		ID:           p.ID.String(),
		TenantName:   p.TenantName,
		Unit:         p.Unit,
		Amount:       p.Amount,
		BillingMonth: p.BillingMonth,
		Status:       p.Status.String(),
		PaymentDate:  p.PaymentDate,
		CreatedAt:    p.CreatedAt,
	}
}

// HandleDashboard implements GET /dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	dashboard, err := h.reports.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble dashboard",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	recent := make([]RecentPaymentResponse, 0, len(dashboard.RecentPayments))
	for _, p := range dashboard.RecentPayments {
		recent = append(recent, toRecentPaymentResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, DashboardResponse{
		TotalUnits:     dashboard.TotalUnits,
		TotalTenants:   dashboard.TotalTenants,
		MonthlyRevenue: dashboard.MonthlyRevenue,
		OccupancyRate:  dashboard.OccupancyRate,
		RecentPayments: recent,
	})
}

// periodParams reads the month and year query parameters. Both empty means
// "current period", signalled downstream by zero values.
func periodParams(r *http.Request) (time.Month, int, error) {
	monthRaw := r.URL.Query().Get("month")
	yearRaw := r.URL.Query().Get("year")
	if monthRaw == "" && yearRaw == "" {
		return 0, 0, nil
	}

	month, err := strconv.Atoi(monthRaw)
	if err != nil {
		return 0, 0, dErrors.New(dErrors.CodeBadRequest, "month must be a number between 1 and 12")
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return 0, 0, dErrors.New(dErrors.CodeBadRequest, "year must be a number")
	}
	return time.Month(month), year, nil
}
