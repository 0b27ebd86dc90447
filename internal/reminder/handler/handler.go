package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/reminder/models"
	"propertyhub/internal/reminder/service"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/platform/httputil"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// Service defines the interface for reminder operations.
type Service interface {
	Send(ctx context.Context, userID id.UserID, cmd *service.SendCommand) (*models.Reminder, error)
	History(ctx context.Context) ([]*models.Reminder, error)
}

// Handler handles the payment reminder endpoints.
type Handler struct {
	reminders Service
	logger    *slog.Logger
}

func New(reminders Service, logger *slog.Logger) *Handler {
	return &Handler{reminders: reminders, logger: logger}
}

// Register registers the reminder routes with the chi router. All routes
// require an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reminders", h.HandleHistory)
	r.Post("/reminders", h.HandleSend)
}

// SendReminderRequest is the payload for POST /reminders.
type SendReminderRequest struct {
	Type               string   `json:"type" validate:"required,oneof=upcoming due-today overdue"`
	Audience           string   `json:"audience" validate:"required,oneof=all overdue specific"`
	Tenants            []string `json:"tenants" validate:"max=200,dive,notblank,max=120"`
	Message            string   `json:"message" validate:"max=2000"`
	IncludePaymentLink bool     `json:"include_payment_link"`
}

func (r *SendReminderRequest) Normalize() {
	strutil.TrimStrings(&r.Type, &r.Audience, &r.Message)
	for i := range r.Tenants {
		strutil.TrimStrings(&r.Tenants[i])
	}
}

func (r *SendReminderRequest) Validate() error {
	return validation.Validate(r)
}

// ReminderResponse is the public view of a history entry.
type ReminderResponse struct {
	ID         string    `json:"id"`
	SentAt     time.Time `json:"sent_at"`
	Recipients string    `json:"recipients"`
	Count      int       `json:"count"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Opened     int       `json:"opened"`
	Message    string    `json:"message"`
}

func toReminderResponse(r *models.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         r.ID.String(),
		SentAt:     r.SentAt,
		Recipients: r.Recipients,
		Count:      r.Count,
		Type:       r.Type.String(),
		Status:     r.Status,
		Opened:     r.Opened,
		Message:    r.Message,
	}
}

// HandleSend implements POST /reminders.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SendReminderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	reminder, err := h.reminders.Send(ctx, userID, &service.SendCommand{
		Type:               models.Type(req.Type),
		Audience:           service.Audience(req.Audience),
		Tenants:            req.Tenants,
		Message:            req.Message,
		IncludePaymentLink: req.IncludePaymentLink,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to send reminder",
			"error", err,
			"request_id", requestID,
			"type", req.Type,
			"audience", req.Audience,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "reminder sent",
		"request_id", requestID,
		"reminder_id", reminder.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toReminderResponse(reminder))
}

// HandleHistory implements GET /reminders, newest first.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	history, err := h.reminders.History(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list reminders",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]ReminderResponse, 0, len(history))
	for _, reminder := range history {
		responses = append(responses, toReminderResponse(reminder))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reminders": responses})
}
