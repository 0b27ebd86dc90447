package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	paymentmodels "propertyhub/internal/payment/models"
	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/reminder/models"
	settingsmodels "propertyhub/internal/settings/models"
	tenantmodels "propertyhub/internal/tenant/models"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// ReminderStore defines the persistence interface for the send history.
type ReminderStore interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	List(ctx context.Context) ([]*models.Reminder, error)
}

// TenantSource supplies the tenant list for audience resolution.
type TenantSource interface {
	List(ctx context.Context) ([]*tenantmodels.Tenant, error)
}

// PaymentSource supplies the payment ledger for the overdue audience.
type PaymentSource interface {
	List(ctx context.Context) ([]*paymentmodels.Payment, error)
}

// SettingsSource supplies the sender's preferences, used to attach payment
// instructions to the message.
type SettingsSource interface {
	Get(ctx context.Context, userID id.UserID) (*settingsmodels.Settings, error)
}

// Audience selects who a reminder goes to.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceOverdue  Audience = "overdue"
	AudienceSpecific Audience = "specific"
)

// Valid reports whether the audience is one of the known selections.
func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceOverdue, AudienceSpecific:
		return true
	}
	return false
}

var defaultMessages = map[models.Type]string{
	models.TypeUpcoming: "Friendly reminder: your rent payment is due soon.",
	models.TypeDueToday: "Reminder: your rent payment is due today.",
	models.TypeOverdue:  "Our records show your rent payment is overdue. Please settle the balance as soon as possible.",
}

// Service implements reminder sending and history. Sending is a ledger
// operation: the audience is resolved, the message composed, and a
// write-once history row appended. Actual delivery is out of scope.
type Service struct {
	store    ReminderStore
	tenants  TenantSource
	payments PaymentSource
	settings SettingsSource
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
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

func New(store ReminderStore, tenants TenantSource, payments PaymentSource, settings SettingsSource, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("reminder store is required")
	}
	if tenants == nil || payments == nil {
		return nil, errors.New("tenant and payment sources are required")
	}
	if settings == nil {
		return nil, errors.New("settings source is required")
	}
	svc := &Service{
		store:    store,
		tenants:  tenants,
		payments: payments,
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// SendCommand carries validated reminder input.
type SendCommand struct {
	Type               models.Type
	Audience           Audience
	Tenants            []string // tenant names, for the specific audience
	Message            string   // empty uses the default for the type
	IncludePaymentLink bool
}

// Send resolves the audience, composes the message, and appends the history
// row. The row records a recipient summary and count, not the addresses.
func (s *Service) Send(ctx context.Context, userID id.UserID, cmd *SendCommand) (*models.Reminder, error) {
	if !cmd.Type.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown reminder type %q", cmd.Type))
	}
	if !cmd.Audience.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown audience %q", cmd.Audience))
	}

	recipients, summary, err := s.resolveAudience(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no recipients match the selected audience")
	}

	message := cmd.Message
	if message == "" {
		message = defaultMessages[cmd.Type]
	}
	if cmd.IncludePaymentLink {
		prefs, err := s.settings.Get(ctx, userID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load payment instructions")
		}
		if prefs.PaymentInstructions != "" {
			message = message + "\n\n" + prefs.PaymentInstructions
		}
	}

	now := s.now()
	reminder := &models.Reminder{
		ID:         id.NewReminderID(),
		SentAt:     now,
		Recipients: summary,
		Count:      len(recipients),
		Type:       cmd.Type,
		Status:     "Sent",
		Message:    message,
		CreatedAt:  now,
	}
	if err := s.store.Create(ctx, reminder); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not record reminder")
	}

	if s.metrics != nil {
		s.metrics.IncrementRemindersSent(cmd.Type.String())
	}
	s.logger.InfoContext(ctx, "reminder sent",
		"reminder_id", reminder.ID,
		"type", reminder.Type,
		"recipients", reminder.Recipients,
	)
	return reminder, nil
}

func (s *Service) resolveAudience(ctx context.Context, cmd *SendCommand) ([]string, string, error) {
	switch cmd.Audience {
	case AudienceAll:
		tenants, err := s.tenants.List(ctx)
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "could not resolve recipients")
		}
		var names []string
		for _, tenant := range tenants {
			if tenant.Status == tenantmodels.StatusActive {
				names = append(names, tenant.Name)
			}
		}
		return names, fmt.Sprintf("All Tenants (%d)", len(names)), nil

	case AudienceOverdue:
		payments, err := s.payments.List(ctx)
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "could not resolve recipients")
		}
		seen := make(map[string]bool)
		var names []string
		for _, payment := range payments {
			if payment.Status == paymentmodels.StatusPaid || payment.TenantName == "" {
				continue
			}
			if !seen[payment.TenantName] {
				seen[payment.TenantName] = true
				names = append(names, payment.TenantName)
			}
		}
		sort.Strings(names)
		return names, fmt.Sprintf("Overdue Tenants (%d)", len(names)), nil

	case AudienceSpecific:
		names := make([]string, 0, len(cmd.Tenants))
		seen := make(map[string]bool)
		for _, name := range cmd.Tenants {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		if len(names) == 1 {
			return names, names[0], nil
		}
		return names, fmt.Sprintf("Selected Tenants (%d)", len(names)), nil
	}
	return nil, "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown audience %q", cmd.Audience))
}

// History returns the full send history, newest first.
func (s *Service) History(ctx context.Context) ([]*models.Reminder, error) {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list reminders")
	}
	return reminders, nil
}
