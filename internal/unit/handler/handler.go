package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/unit/models"
	"propertyhub/internal/unit/service"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/platform/httputil"
)

// Service defines the interface for unit operations.
type Service interface {
	Create(ctx context.Context, cmd *service.CreateCommand) (*models.Unit, error)
	List(ctx context.Context, query service.ListQuery) ([]*models.Unit, error)
	Update(ctx context.Context, unitID id.UnitID, cmd *service.UpdateCommand) (*models.Unit, error)
	Delete(ctx context.Context, unitID id.UnitID) error
	Summarize(ctx context.Context) (*service.Summary, error)
	ReconcileOccupancy(ctx context.Context) (int, error)
}

// Handler handles the unit management endpoints.
type Handler struct {
	units  Service
	logger *slog.Logger
}

func New(units Service, logger *slog.Logger) *Handler {
	return &Handler{units: units, logger: logger}
}

// Register registers the unit routes with the chi router. All routes require
// an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/units", h.HandleList)
	r.Post("/units", h.HandleCreate)
	r.Get("/units/summary", h.HandleSummary)
	r.Post("/units/reconcile", h.HandleReconcile)
	r.Put("/units/{unit_id}", h.HandleUpdate)
	r.Delete("/units/{unit_id}", h.HandleDelete)
}

// UnitResponse is the public view of a unit.
type UnitResponse struct {
	ID          string          `json:"id"`
	UnitNumber  string          `json:"unit_number"`
	Floor       int             `json:"floor"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status"`
	TenantName  string          `json:"tenant_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toUnitResponse(u *models.Unit) UnitResponse {
	return UnitResponse{
		ID:          u.ID.String(),
		UnitNumber:  u.UnitNumber,
		Floor:       u.Floor,
		Bedrooms:    u.Bedrooms,
		Bathrooms:   u.Bathrooms,
		MonthlyRent: u.MonthlyRent,
		Status:      u.Status.String(),
		TenantName:  u.TenantName,
		CreatedAt:   u.CreatedAt,
	}
}

// HandleList implements GET /units. Supports the page filter via the
// "status" and "search" query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	query := service.ListQuery{
		Status: models.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	units, err := h.units.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list units",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		responses = append(responses, toUnitResponse(u))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"units": responses})
}

// HandleCreate implements POST /units.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UnitPayload](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	unit, err := h.units.Create(ctx, &service.CreateCommand{
		UnitNumber:  req.UnitNumber,
		Floor:       req.Floor,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MonthlyRent: req.MonthlyRent,
		Status:      req.ModelStatus(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create unit",
			"error", err,
			"request_id", requestID,
			"unit_number", req.UnitNumber,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "unit created",
		"request_id", requestID,
		"unit_id", unit.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toUnitResponse(unit))
}

// HandleUpdate implements PUT /units/{unit_id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	unitID, ok := h.unitIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UnitPayload](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.Status == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "status is required"))
		return
	}

	unit, err := h.units.Update(ctx, unitID, &service.UpdateCommand{
		UnitNumber:  req.UnitNumber,
		Floor:       req.Floor,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MonthlyRent: req.MonthlyRent,
		Status:      req.ModelStatus(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update unit",
			"error", err,
			"request_id", requestID,
			"unit_id", unitID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toUnitResponse(unit))
}

// HandleDelete implements DELETE /units/{unit_id}. Occupied units are
// rejected with a validation error.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	unitID, ok := h.unitIDParam(w, r)
	if !ok {
		return
	}

	if err := h.units.Delete(ctx, unitID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete unit",
			"error", err,
			"request_id", requestID,
			"unit_id", unitID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "unit deleted",
		"request_id", requestID,
		"unit_id", unitID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary implements GET /units/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	summary, err := h.units.Summarize(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to summarize units",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleReconcile implements POST /units/reconcile, the occupancy repair sweep.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	repaired, err := h.units.ReconcileOccupancy(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "occupancy reconcile failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "occupancy reconciled",
		"request_id", requestID,
		"repaired", repaired,
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"repaired": repaired})
}

func (h *Handler) unitIDParam(w http.ResponseWriter, r *http.Request) (id.UnitID, bool) {
	unitID, err := id.ParseUnitID(chi.URLParam(r, "unit_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid unit id"))
		return id.UnitID{}, false
	}
	return unitID, true
}
