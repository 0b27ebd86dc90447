package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propertyhub/internal/settings/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// PostgresStore persists settings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed settings store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, settings *models.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings are required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, preferred_method, email_notifications, sms_notifications,
		                      payment_reminders, maintenance_alerts, payment_instructions, default_due_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_method = EXCLUDED.preferred_method,
			email_notifications = EXCLUDED.email_notifications,
			sms_notifications = EXCLUDED.sms_notifications,
			payment_reminders = EXCLUDED.payment_reminders,
			maintenance_alerts = EXCLUDED.maintenance_alerts,
			payment_instructions = EXCLUDED.payment_instructions,
			default_due_day = EXCLUDED.default_due_day`,
		uuid.UUID(settings.UserID), string(settings.PreferredMethod),
		settings.EmailNotifications, settings.SMSNotifications,
		settings.PaymentReminders, settings.MaintenanceAlerts,
		settings.PaymentInstructions, settings.DefaultDueDay,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUser(ctx context.Context, userID id.UserID) (*models.Settings, error) {
	var settings models.Settings
	var rawID uuid.UUID
	var method string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_method, email_notifications, sms_notifications,
		       payment_reminders, maintenance_alerts, payment_instructions, default_due_day
		FROM settings WHERE user_id = $1`, uuid.UUID(userID)).
		Scan(&rawID, &method, &settings.EmailNotifications, &settings.SMSNotifications,
			&settings.PaymentReminders, &settings.MaintenanceAlerts,
			&settings.PaymentInstructions, &settings.DefaultDueDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	settings.UserID = id.UserID(rawID)
	settings.PreferredMethod = models.Method(method)
	return &settings, nil
}
