package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertyhub/internal/payment/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// PostgresStore persists payments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed payment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const paymentColumns = `id, tenant_name, unit, amount, billing_month, status, payment_date, notes, created_at`

func (s *PostgresStore) Create(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(payment.ID), payment.TenantName, payment.Unit, payment.Amount.String(),
		payment.BillingMonth, string(payment.Status), payment.PaymentDate, payment.Notes, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, payment *models.Payment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payments
		SET tenant_name = $2, unit = $3, amount = $4, billing_month = $5,
		    status = $6, payment_date = $7, notes = $8
		WHERE id = $1`,
		uuid.UUID(payment.ID), payment.TenantName, payment.Unit, payment.Amount.String(),
		payment.BillingMonth, string(payment.Status), payment.PaymentDate, payment.Notes,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	return scanPayment(s.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = $1`, uuid.UUID(paymentID)))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	var rawID uuid.UUID
	var amount string
	var status string
	var paymentDate sql.NullTime
	err := row.Scan(&rawID, &payment.TenantName, &payment.Unit, &amount,
		&payment.BillingMonth, &status, &paymentDate, &payment.Notes, &payment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	payment.ID = id.PaymentID(rawID)
	payment.Status = models.Status(status)
	if paymentDate.Valid {
		t := paymentDate.Time
		payment.PaymentDate = &t
	}
	payment.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payment amount: %w", err)
	}
	return &payment, nil
}
