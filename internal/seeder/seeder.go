// Package seeder populates the stores with demo data for local development.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	paymentmodels "propertyhub/internal/payment/models"
	tenantmodels "propertyhub/internal/tenant/models"
	unitmodels "propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
)

// UnitStore defines methods for seeding units.
type UnitStore interface {
	Create(ctx context.Context, unit *unitmodels.Unit) error
}

// TenantStore defines methods for seeding tenants.
type TenantStore interface {
	Create(ctx context.Context, tenant *tenantmodels.Tenant) error
}

// PaymentStore defines methods for seeding payments.
type PaymentStore interface {
	Create(ctx context.Context, payment *paymentmodels.Payment) error
}

// Seeder populates the stores with demo data.
type Seeder struct {
	units    UnitStore
	tenants  TenantStore
	payments PaymentStore
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new seeder.
func New(units UnitStore, tenants TenantStore, payments PaymentStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		units:    units,
		tenants:  tenants,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// SeedAll populates all stores with demo data.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	units, err := s.seedUnits(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed units: %w", err)
	}

	tenants, err := s.seedTenants(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed tenants: %w", err)
	}

	payments, err := s.seedPayments(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed payments: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		"units", units,
		"tenants", tenants,
		"payments", payments,
	)
	return nil
}

func (s *Seeder) seedUnits(ctx context.Context) (int, error) {
	demoUnits := []struct {
		number     string
		floor      int
		bedrooms   int
		bathrooms  int
		rent       int64
		status     unitmodels.Status
		tenantName string
	}{
		{"101", 1, 2, 1, 1200, unitmodels.StatusOccupied, "John Smith"},
		{"102", 1, 1, 1, 950, unitmodels.StatusVacant, ""},
		{"201", 2, 3, 2, 1800, unitmodels.StatusOccupied, "Sarah Johnson"},
		{"202", 2, 2, 1, 1200, unitmodels.StatusMaintenance, ""},
		{"301", 3, 2, 2, 1500, unitmodels.StatusOccupied, "Mike Davis"},
		{"302", 3, 1, 1, 900, unitmodels.StatusVacant, ""},
	}

	for _, u := range demoUnits {
		unit := &unitmodels.Unit{
			ID:          id.NewUnitID(),
			UnitNumber:  u.number,
			Floor:       u.floor,
			Bedrooms:    u.bedrooms,
			Bathrooms:   u.bathrooms,
			MonthlyRent: decimal.NewFromInt(u.rent),
			Status:      u.status,
			TenantName:  u.tenantName,
			CreatedAt:   s.now(),
		}
		if err := s.units.Create(ctx, unit); err != nil {
			return 0, err
		}
	}
	return len(demoUnits), nil
}

func (s *Seeder) seedTenants(ctx context.Context) (int, error) {
	demoTenants := []struct {
		name       string
		unit       string
		phone      string
		email      string
		leaseStart string
		status     tenantmodels.Status
	}{
		{"John Smith", "101", "(555) 123-4567", "john@example.com", "2024-01-15", tenantmodels.StatusActive},
		{"Sarah Johnson", "201", "(555) 234-5678", "sarah@example.com", "2024-02-01", tenantmodels.StatusActive},
		{"Mike Davis", "301", "(555) 345-6789", "mike@example.com", "2024-03-10", tenantmodels.StatusActive},
		{"Emily Wilson", "102", "(555) 456-7890", "emily@example.com", "2024-03-20", tenantmodels.StatusPending},
		{"David Brown", "202", "(555) 567-8901", "david@example.com", "2023-12-01", tenantmodels.StatusInactive},
	}

	for _, t := range demoTenants {
		leaseStart, err := time.Parse("2006-01-02", t.leaseStart)
		if err != nil {
			return 0, err
		}
		tenant := &tenantmodels.Tenant{
			ID:         id.NewTenantID(),
			Name:       t.name,
			Unit:       t.unit,
			Phone:      t.phone,
			Email:      t.email,
			LeaseStart: leaseStart,
			Status:     t.status,
			CreatedAt:  s.now(),
		}
		if err := s.tenants.Create(ctx, tenant); err != nil {
			return 0, err
		}
	}
	return len(demoTenants), nil
}

func (s *Seeder) seedPayments(ctx context.Context) (int, error) {
	now := s.now()

	// Billing for the three occupied units: the previous two months fully
	// paid, the current month in mixed states so every dashboard figure has
	// something to show.
	demoPayments := []struct {
		tenant      string
		unit        string
		amount      int64
		monthOffset int
		status      paymentmodels.Status
		paidDay     int // 0 means unpaid
	}{
		{"John Smith", "101", 1200, -2, paymentmodels.StatusPaid, 3},
		{"Sarah Johnson", "201", 1800, -2, paymentmodels.StatusPaid, 1},
		{"Mike Davis", "301", 1500, -2, paymentmodels.StatusPaid, 5},
		{"John Smith", "101", 1200, -1, paymentmodels.StatusPaid, 2},
		{"Sarah Johnson", "201", 1800, -1, paymentmodels.StatusPaid, 4},
		{"Mike Davis", "301", 1500, -1, paymentmodels.StatusOverdue, 0},
		{"John Smith", "101", 1200, 0, paymentmodels.StatusPaid, 2},
		{"Sarah Johnson", "201", 1800, 0, paymentmodels.StatusPending, 0},
		{"Mike Davis", "301", 1500, 0, paymentmodels.StatusPending, 0},
	}

	for i, p := range demoPayments {
		billing := now.AddDate(0, p.monthOffset, 0)
		payment := &paymentmodels.Payment{
			ID:           id.NewPaymentID(),
			TenantName:   p.tenant,
			Unit:         p.unit,
			Amount:       decimal.NewFromInt(p.amount),
			BillingMonth: billing.Format("January 2006"),
			Status:       p.status,
			CreatedAt:    now.Add(time.Duration(i) * time.Second),
		}
		if p.paidDay > 0 {
			paidAt := time.Date(billing.Year(), billing.Month(), p.paidDay, 10, 0, 0, 0, time.UTC)
			payment.PaymentDate = &paidAt
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return 0, err
		}
	}
	return len(demoPayments), nil
}
