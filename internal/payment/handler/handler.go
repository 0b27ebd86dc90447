package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"propertyhub/internal/payment/models"
	"propertyhub/internal/payment/service"
	"propertyhub/internal/platform/middleware"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/platform/httputil"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// Service defines the interface for payment ledger operations.
type Service interface {
	Create(ctx context.Context, cmd *service.CreateCommand) (*models.Payment, error)
	List(ctx context.Context, query service.ListQuery) ([]*models.Payment, error)
	Record(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	Summarize(ctx context.Context) (*service.Summary, error)
}

// Handler handles the rent payment endpoints.
type Handler struct {
	payments Service
	logger   *slog.Logger
}

func New(payments Service, logger *slog.Logger) *Handler {
	return &Handler{payments: payments, logger: logger}
}

// Register registers the payment routes with the chi router. All routes
// require an authenticated session, applied by the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/payments", h.HandleList)
	r.Post("/payments", h.HandleCreate)
	r.Get("/payments/summary", h.HandleSummary)
	r.Post("/payments/{payment_id}/record", h.HandleRecord)
}

// CreatePaymentRequest is the payload for POST /payments.
type CreatePaymentRequest struct {
	TenantName   string          `json:"tenant_name" validate:"required,notblank,max=120"`
	Unit         string          `json:"unit" validate:"required,notblank,max=20"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month" validate:"required,datetime=January 2006"`
	Status       string          `json:"status" validate:"omitempty,oneof=Paid Pending Overdue"`
	Notes        string          `json:"notes" validate:"max=2000"`
}

func (r *CreatePaymentRequest) Normalize() {
	strutil.TrimStrings(&r.TenantName, &r.Unit, &r.BillingMonth, &r.Status, &r.Notes)
}

func (r *CreatePaymentRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	return nil
}

// PaymentResponse is the public view of a ledger entry.
type PaymentResponse struct {
	ID           string          `json:"id"`
	TenantName   string          `json:"tenant_name"`
	Unit         string          `json:"unit"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month"`
	Status       string          `json:"status"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID.String(),
		TenantName:   p.TenantName,
		Unit:         p.Unit,
		Amount:       p.Amount,
		BillingMonth: p.BillingMonth,
		Status:       p.Status.String(),
		PaymentDate:  p.PaymentDate,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

// HandleList implements GET /payments with optional "status" and "search"
// query parameters. The ledger is returned newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	query := service.ListQuery{
		Status: models.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	payments, err := h.payments.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list payments",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"payments": responses})
}

// HandleCreate implements POST /payments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreatePaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	payment, err := h.payments.Create(ctx, &service.CreateCommand{
		TenantName:   req.TenantName,
		Unit:         req.Unit,
		Amount:       req.Amount,
		BillingMonth: req.BillingMonth,
		Status:       models.Status(req.Status),
		Notes:        req.Notes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create payment",
			"error", err,
			"request_id", requestID,
			"unit", req.Unit,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment created",
		"request_id", requestID,
		"payment_id", payment.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

// HandleRecord implements POST /payments/{payment_id}/record, marking the
// payment paid as of now.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "payment_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment id"))
		return
	}

	payment, err := h.payments.Record(ctx, paymentID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to record payment",
			"error", err,
			"request_id", requestID,
			"payment_id", paymentID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment recorded",
		"request_id", requestID,
		"payment_id", payment.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, toPaymentResponse(payment))
}

// HandleSummary implements GET /payments/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	summary, err := h.payments.Summarize(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to summarize payments",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
