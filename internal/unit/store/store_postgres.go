package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// PostgresStore persists units in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed unit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const unitColumns = `id, unit_number, floor, bedrooms, bathrooms, monthly_rent, status, tenant_name, created_at`

func (s *PostgresStore) Create(ctx context.Context, unit *models.Unit) error {
	if unit == nil {
		return fmt.Errorf("unit is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO units (`+unitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(unit.ID), unit.UnitNumber, unit.Floor, unit.Bedrooms, unit.Bathrooms,
		unit.MonthlyRent.String(), string(unit.Status), nullableString(unit.TenantName), unit.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("unit number %q: %w", unit.UnitNumber, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create unit: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, unit *models.Unit) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE units
		SET unit_number = $2, floor = $3, bedrooms = $4, bathrooms = $5,
		    monthly_rent = $6, status = $7, tenant_name = $8
		WHERE id = $1`,
		uuid.UUID(unit.ID), unit.UnitNumber, unit.Floor, unit.Bedrooms, unit.Bathrooms,
		unit.MonthlyRent.String(), string(unit.Status), nullableString(unit.TenantName),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("unit number %q: %w", unit.UnitNumber, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update unit: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update unit rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, unitID id.UnitID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, uuid.UUID(unitID))
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete unit rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, unitID id.UnitID) (*models.Unit, error) {
	return scanUnit(s.db.QueryRowContext(ctx, `
		SELECT `+unitColumns+` FROM units WHERE id = $1`, uuid.UUID(unitID)))
}

func (s *PostgresStore) FindByUnitNumber(ctx context.Context, unitNumber string) (*models.Unit, error) {
	return scanUnit(s.db.QueryRowContext(ctx, `
		SELECT `+unitColumns+` FROM units WHERE unit_number = $1`, unitNumber))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+unitColumns+` FROM units ORDER BY unit_number`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*models.Unit, error) {
	var unit models.Unit
	var rawID uuid.UUID
	var rent string
	var status string
	var tenantName sql.NullString
	err := row.Scan(&rawID, &unit.UnitNumber, &unit.Floor, &unit.Bedrooms, &unit.Bathrooms,
		&rent, &status, &tenantName, &unit.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find unit: %w", err)
	}

	unit.ID = id.UnitID(rawID)
	unit.Status = models.Status(status)
	unit.TenantName = tenantName.String
	unit.MonthlyRent, err = decimal.NewFromString(rent)
	if err != nil {
		return nil, fmt.Errorf("parse monthly rent: %w", err)
	}
	return &unit, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
