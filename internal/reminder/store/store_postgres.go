package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"propertyhub/internal/reminder/models"
	id "propertyhub/pkg/domain"
)

// PostgresStore persists the reminder history in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed reminder store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reminderColumns = `id, sent_at, recipients, recipient_count, type, status, opened, message, created_at`

func (s *PostgresStore) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder == nil {
		return fmt.Errorf("reminder is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(reminder.ID), reminder.SentAt, reminder.Recipients, reminder.Count,
		string(reminder.Type), reminder.Status, reminder.Opened, reminder.Message, reminder.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reminderColumns+` FROM reminders ORDER BY sent_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		var reminder models.Reminder
		var rawID uuid.UUID
		var reminderType string
		if err := rows.Scan(&rawID, &reminder.SentAt, &reminder.Recipients, &reminder.Count,
			&reminderType, &reminder.Status, &reminder.Opened, &reminder.Message, &reminder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminder.ID = id.ReminderID(rawID)
		reminder.Type = models.Type(reminderType)
		reminders = append(reminders, &reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}
