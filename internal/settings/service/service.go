package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"propertyhub/internal/settings/models"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/sentinel"
)

// SettingsStore defines the persistence interface consumed by the service.
type SettingsStore interface {
	Upsert(ctx context.Context, settings *models.Settings) error
	FindByUser(ctx context.Context, userID id.UserID) (*models.Settings, error)
}

// Service implements per-user preference management.
type Service struct {
	store  SettingsStore
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store SettingsStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("settings store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// Get returns the user's settings, falling back to defaults when the user
// has never saved any.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.Settings, error) {
	settings, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Defaults(userID), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load settings")
	}
	return settings, nil
}

// UpdateCommand carries validated settings input.
type UpdateCommand struct {
	PreferredMethod     models.Method
	EmailNotifications  bool
	SMSNotifications    bool
	PaymentReminders    bool
	MaintenanceAlerts   bool
	PaymentInstructions string
	DefaultDueDay       int
}

// Update replaces the user's settings row.
func (s *Service) Update(ctx context.Context, userID id.UserID, cmd *UpdateCommand) (*models.Settings, error) {
	if !cmd.PreferredMethod.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown contact method %q", cmd.PreferredMethod))
	}
	if cmd.DefaultDueDay < 1 || cmd.DefaultDueDay > 28 {
		return nil, dErrors.New(dErrors.CodeValidation, "default_due_day must be between 1 and 28")
	}

	settings := &models.Settings{
		UserID:              userID,
		PreferredMethod:     cmd.PreferredMethod,
		EmailNotifications:  cmd.EmailNotifications,
		SMSNotifications:    cmd.SMSNotifications,
		PaymentReminders:    cmd.PaymentReminders,
		MaintenanceAlerts:   cmd.MaintenanceAlerts,
		PaymentInstructions: cmd.PaymentInstructions,
		DefaultDueDay:       cmd.DefaultDueDay,
	}
	if err := s.store.Upsert(ctx, settings); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save settings")
	}

	s.logger.InfoContext(ctx, "settings saved", "user_id", userID)
	return settings, nil
}
