package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/settings/models"
	"propertyhub/internal/settings/service"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/platform/httputil"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// Service defines the interface for settings operations.
type Service interface {
	Get(ctx context.Context, userID id.UserID) (*models.Settings, error)
	Update(ctx context.Context, userID id.UserID, cmd *service.UpdateCommand) (*models.Settings, error)
}

// Handler handles the per-user settings endpoints.
type Handler struct {
	settings Service
	logger   *slog.Logger
}

func New(settings Service, logger *slog.Logger) *Handler {
	return &Handler{settings: settings, logger: logger}
}

// Register registers the settings routes with the chi router. All routes
// require an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/settings", h.HandleGet)
	r.Put("/settings", h.HandleUpdate)
}

// UpdateSettingsRequest is the payload for PUT /settings.
type UpdateSettingsRequest struct {
	PreferredMethod     string `json:"preferred_method" validate:"required,oneof=email sms both"`
	EmailNotifications  bool   `json:"email_notifications"`
	SMSNotifications    bool   `json:"sms_notifications"`
	PaymentReminders    bool   `json:"payment_reminders"`
	MaintenanceAlerts   bool   `json:"maintenance_alerts"`
	PaymentInstructions string `json:"payment_instructions" validate:"max=2000"`
	DefaultDueDay       int    `json:"default_due_day" validate:"gte=1,lte=28"`
}

func (r *UpdateSettingsRequest) Normalize() {
	strutil.TrimStrings(&r.PreferredMethod, &r.PaymentInstructions)
}

func (r *UpdateSettingsRequest) Validate() error {
	return validation.Validate(r)
}

// SettingsResponse is the public view of a user's settings.
type SettingsResponse struct {
	PreferredMethod     string `json:"preferred_method"`
	EmailNotifications  bool   `json:"email_notifications"`
	SMSNotifications    bool   `json:"sms_notifications"`
	PaymentReminders    bool   `json:"payment_reminders"`
	MaintenanceAlerts   bool   `json:"maintenance_alerts"`
	PaymentInstructions string `json:"payment_instructions,omitempty"`
	DefaultDueDay       int    `json:"default_due_day"`
}

func toSettingsResponse(s *models.Settings) SettingsResponse {
	return SettingsResponse{
		PreferredMethod:     s.PreferredMethod.String(),
		EmailNotifications:  s.EmailNotifications,
		SMSNotifications:    s.SMSNotifications,
		PaymentReminders:    s.PaymentReminders,
		MaintenanceAlerts:   s.MaintenanceAlerts,
		PaymentInstructions: s.PaymentInstructions,
		DefaultDueDay:       s.DefaultDueDay,
	}
}

// HandleGet implements GET /settings. Users who never saved settings get
// the defaults.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	settings, err := h.settings.Get(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load settings",
			"error", err,
			"request_id", requestID,
			"user_id", userID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// HandleUpdate implements PUT /settings as an upsert.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateSettingsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	settings, err := h.settings.Update(ctx, userID, &service.UpdateCommand{
		PreferredMethod:     models.Method(req.PreferredMethod),
		EmailNotifications:  req.EmailNotifications,
		SMSNotifications:    req.SMSNotifications,
		PaymentReminders:    req.PaymentReminders,
		MaintenanceAlerts:   req.MaintenanceAlerts,
		PaymentInstructions: req.PaymentInstructions,
		DefaultDueDay:       req.DefaultDueDay,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save settings",
			"error", err,
			"request_id", requestID,
			"user_id", userID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "settings saved",
		"request_id", requestID,
		"user_id", userID,
	)
	httputil.WriteJSON(w, http.StatusOK, toSettingsResponse(settings))
}
