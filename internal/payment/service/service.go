package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"propertyhub/internal/payment/models"
	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/report"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/sentinel"
)

// PaymentStore defines the persistence interface consumed by the service.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
}

// Service implements the rent payment ledger.
type Service struct {
	store   PaymentStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store PaymentStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("payment store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// CreateCommand carries validated payment creation input.
type CreateCommand struct {
	TenantName   string
	Unit         string
	Amount       decimal.Decimal
	BillingMonth string
	Status       models.Status
	Notes        string
}

// Create bills one month of rent. An empty status defaults to Pending; a
// payment created directly as Paid gets its payment date stamped now.
func (s *Service) Create(ctx context.Context, cmd *CreateCommand) (*models.Payment, error) {
	status := cmd.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown payment status %q", cmd.Status))
	}

	payment := &models.Payment{
		ID:           id.NewPaymentID(),
		TenantName:   cmd.TenantName,
		Unit:         cmd.Unit,
		Amount:       cmd.Amount,
		BillingMonth: cmd.BillingMonth,
		Status:       status,
		Notes:        cmd.Notes,
		CreatedAt:    s.now(),
	}
	if status == models.StatusPaid {
		paidAt := s.now()
		payment.PaymentDate = &paidAt
	}

	if err := s.store.Create(ctx, payment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create payment")
	}

	s.logger.InfoContext(ctx, "payment created",
		"payment_id", payment.ID,
		"unit", payment.Unit,
		"billing_month", payment.BillingMonth,
		"status", payment.Status,
	)
	return payment, nil
}

// ListQuery narrows the payment list the way the payments page filters it.
type ListQuery struct {
	Status models.Status
	Search string // matches tenant name or unit, case-insensitive
}

// List returns payments newest first, optionally narrowed by status and
// search term.
func (s *Service) List(ctx context.Context, query ListQuery) ([]*models.Payment, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown payment status %q", query.Status))
	}

	payments, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list payments")
	}

	if query.Status == "" && query.Search == "" {
		return payments, nil
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := make([]*models.Payment, 0, len(payments))
	for _, payment := range payments {
		if query.Status != "" && payment.Status != query.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(payment.TenantName), search) &&
			!strings.Contains(strings.ToLower(payment.Unit), search) {
			continue
		}
		filtered = append(filtered, payment)
	}
	return filtered, nil
}

// Record marks a payment as paid and stamps the payment date.
func (s *Service) Record(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	payment, err := s.store.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "payment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load payment")
	}
	if payment.Status == models.StatusPaid {
		return nil, dErrors.New(dErrors.CodeConflict, "payment is already recorded as paid")
	}

	paidAt := s.now()
	payment.Status = models.StatusPaid
	payment.PaymentDate = &paidAt
	if err := s.store.Update(ctx, payment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not record payment")
	}

	if s.metrics != nil {
		s.metrics.IncrementPaymentsRecorded()
	}
	s.logger.InfoContext(ctx, "payment recorded",
		"payment_id", payment.ID,
		"unit", payment.Unit,
		"billing_month", payment.BillingMonth,
	)
	return payment, nil
}

// Summary is the overview shown at the top of the payments page. The
// collection rate here covers the whole ledger; the reports page computes a
// period-scoped one.
type Summary struct {
	Collected      decimal.Decimal `json:"collected"`
	PendingCount   int             `json:"pending_count"`
	OverdueCount   int             `json:"overdue_count"`
	CollectionRate float64         `json:"collection_rate"`
}

// Summarize computes the ledger overview.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	payments, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list payments")
	}

	summary := &Summary{
		Collected:      report.TotalCollected(payments),
		CollectionRate: report.CollectionRate(payments),
	}
	for _, payment := range payments {
		switch payment.Status {
		case models.StatusPending:
			summary.PendingCount++
		case models.StatusOverdue:
			summary.OverdueCount++
		}
	}
	return summary, nil
}
