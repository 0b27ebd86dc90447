package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/tenant/models"
	"propertyhub/internal/tenant/service"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/platform/httputil"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// Service defines the interface for tenant operations.
type Service interface {
	Assign(ctx context.Context, cmd *service.AssignCommand) (*models.Tenant, error)
	Release(ctx context.Context, tenantID id.TenantID) error
	List(ctx context.Context, query service.ListQuery) ([]*models.Tenant, error)
	Summarize(ctx context.Context) (*service.Summary, error)
}

// Handler handles the tenant management endpoints.
type Handler struct {
	tenants Service
	logger  *slog.Logger
}

func New(tenants Service, logger *slog.Logger) *Handler {
	return &Handler{tenants: tenants, logger: logger}
}

// Register registers the tenant routes with the chi router. All routes
// require an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tenants", h.HandleList)
	r.Post("/tenants", h.HandleAssign)
	r.Get("/tenants/summary", h.HandleSummary)
	r.Delete("/tenants/{tenant_id}", h.HandleRelease)
}

// AssignTenantRequest is the payload for POST /tenants.
type AssignTenantRequest struct {
	Name       string `json:"name" validate:"required,notblank,max=120"`
	Unit       string `json:"unit" validate:"required,notblank,max=20"`
	Phone      string `json:"phone" validate:"max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
	LeaseStart string `json:"lease_start" validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status" validate:"omitempty,oneof=Active Pending Inactive"`
	Notes      string `json:"notes" validate:"max=2000"`
}

func (r *AssignTenantRequest) Normalize() {
	strutil.TrimStrings(&r.Name, &r.Unit, &r.Phone, &r.Email, &r.Status, &r.Notes)
}

func (r *AssignTenantRequest) Validate() error {
	return validation.Validate(r)
}

// TenantResponse is the public view of a tenant.
type TenantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	LeaseStart string    `json:"lease_start,omitempty"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toTenantResponse(t *models.Tenant) TenantResponse {
	resp := TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Unit:      t.Unit,
		Phone:     t.Phone,
		Email:     t.Email,
		Status:    t.Status.String(),
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
	if !t.LeaseStart.IsZero() {
		resp.LeaseStart = t.LeaseStart.Format("2006-01-02")
	}
	return resp
}

// HandleList implements GET /tenants with optional "status" and "search"
// query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	query := service.ListQuery{
		Status: models.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	tenants, err := h.tenants.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tenants",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		responses = append(responses, toTenantResponse(t))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tenants": responses})
}

// HandleAssign implements POST /tenants. Creating a tenant also marks the
// matching unit occupied.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AssignTenantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var leaseStart time.Time
	if req.LeaseStart != "" {
		parsed, err := time.Parse("2006-01-02", req.LeaseStart)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "lease_start must be a valid date (2006-01-02)"))
			return
		}
		leaseStart = parsed
	}

	tenant, err := h.tenants.Assign(ctx, &service.AssignCommand{
		Name:       req.Name,
		Unit:       req.Unit,
		Phone:      req.Phone,
		Email:      req.Email,
		LeaseStart: leaseStart,
		Status:     models.Status(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assign tenant",
			"error", err,
			"request_id", requestID,
			"unit_number", req.Unit,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant assigned",
		"request_id", requestID,
		"tenant_id", tenant.ID,
		"unit_number", tenant.Unit,
	)
	httputil.WriteJSON(w, http.StatusCreated, toTenantResponse(tenant))
}

// HandleRelease implements DELETE /tenants/{tenant_id}. Releasing a tenant
// also marks the matching unit vacant.
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenant_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return
	}

	if err := h.tenants.Release(ctx, tenantID); err != nil {
		h.logger.ErrorContext(ctx, "failed to release tenant",
			"error", err,
			"request_id", requestID,
			"tenant_id", tenantID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant released",
		"request_id", requestID,
		"tenant_id", tenantID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary implements GET /tenants/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	summary, err := h.tenants.Summarize(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to summarize tenants",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
