// Package service assembles the report and dashboard figures from the unit,
// tenant and payment stores. The arithmetic lives in internal/report; this
// package is the orchestration around it: concurrent fetches, period
// filtering and tracing.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	paymentmodels "propertyhub/internal/payment/models"
	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/report"
	"propertyhub/internal/report/tracer"
	tenantmodels "propertyhub/internal/tenant/models"
	unitmodels "propertyhub/internal/unit/models"
	dErrors "propertyhub/pkg/domain-errors"
)

// UnitSource supplies the unit rows a report is computed over.
type UnitSource interface {
	List(ctx context.Context) ([]*unitmodels.Unit, error)
}

// PaymentSource supplies the payment ledger, newest first.
type PaymentSource interface {
	List(ctx context.Context) ([]*paymentmodels.Payment, error)
}

// TenantSource supplies the tenant roster.
type TenantSource interface {
	List(ctx context.Context) ([]*tenantmodels.Tenant, error)
}

// Service assembles period reports and the dashboard overview.
type Service struct {
	units    UnitSource
	payments PaymentSource
	tenants  TenantSource
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer overrides the span source. Production wires the OTel adapter;
// the default is a no-op.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(units UnitSource, payments PaymentSource, tenants TenantSource, opts ...Option) (*Service, error) {
	if units == nil || payments == nil || tenants == nil {
		return nil, errors.New("unit, payment and tenant sources are required")
	}
	svc := &Service{units: units, payments: payments, tenants: tenants, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc, nil
}

// PeriodSummary is the report for one billing month.
type PeriodSummary struct {
	Month          string                    `json:"month"` // e.g. "March"
	Year           int                       `json:"year"`
	Collected      decimal.Decimal           `json:"collected"`
	Expected       decimal.Decimal           `json:"expected"`
	Outstanding    decimal.Decimal           `json:"outstanding"`
	CollectionRate float64                   `json:"collection_rate"`
	Trend          []report.MonthTotal       `json:"trend"`
	Occupancy      report.OccupancyBreakdown `json:"occupancy"`
	OccupancyRate  int                       `json:"occupancy_rate"`
}

// Summary builds the report for the given billing period. Zero month and
// year select the current calendar month. The money figures and collection
// rate cover only payments billed for that period; the trend covers the six
// months ending at it.
func (s *Service) Summary(ctx context.Context, month time.Month, year int) (summary *PeriodSummary, err error) {
	month, year, err = s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanReportSummary,
		tracer.String(tracer.AttrMonth, month.String()),
		tracer.Int(tracer.AttrYear, year),
	)
	defer func() { span.End(err) }()

	start := s.now()
	units, payments, err := s.fetchTables(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		tracer.Int(tracer.AttrUnitCount, len(units)),
		tracer.Int(tracer.AttrPaymentCount, len(payments)),
	)

	period := filterPeriod(payments, month, year)
	summary = &PeriodSummary{
		Month:          month.String(),
		Year:           year,
		Collected:      report.TotalCollected(period),
		Expected:       report.ExpectedRevenue(period),
		Outstanding:    report.OutstandingBalance(period),
		CollectionRate: report.CollectionRate(period),
		Trend:          report.SixMonthTrend(payments, year, month),
		Occupancy:      report.StatusCounts(units),
		OccupancyRate:  report.OccupancyRate(units),
	}

	if s.metrics != nil {
		s.metrics.ObserveReportAssembly(start)
	}
	s.logger.InfoContext(ctx, "report assembled",
		"month", summary.Month,
		"year", summary.Year,
		"period_payments", len(period),
	)
	return summary, nil
}

// Dashboard is the landing-page overview. The handler maps it to its wire
// shape; the raw payment models never marshal directly.
type Dashboard struct {
	TotalUnits     int
	TotalTenants   int
	MonthlyRevenue decimal.Decimal
	OccupancyRate  int
	RecentPayments []*paymentmodels.Payment
}

const recentPaymentCount = 4

// Overview assembles the dashboard figures, fetching all three tables
// concurrently.
func (s *Service) Overview(ctx context.Context) (dashboard *Dashboard, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReportDashboard)
	defer func() { span.End(err) }()

	var (
		units    []*unitmodels.Unit
		payments []*paymentmodels.Payment
		tenants  []*tenantmodels.Tenant
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		units, err = s.units.List(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		payments, err = s.payments.List(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		tenants, err = s.tenants.List(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load dashboard tables")
	}

	recent := payments
	if len(recent) > recentPaymentCount {
		recent = recent[:recentPaymentCount]
	}
	return &Dashboard{
		TotalUnits:     len(units),
		TotalTenants:   len(tenants),
		MonthlyRevenue: report.MonthlyRevenue(units),
		OccupancyRate:  report.OccupancyRate(units),
		RecentPayments: recent,
	}, nil
}

// fetchTables loads units and payments concurrently.
func (s *Service) fetchTables(ctx context.Context) ([]*unitmodels.Unit, []*paymentmodels.Payment, error) {
	var (
		units    []*unitmodels.Unit
		payments []*paymentmodels.Payment
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		units, err = s.units.List(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		payments, err = s.payments.List(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load report tables")
	}
	return units, payments, nil
}

func (s *Service) resolvePeriod(month time.Month, year int) (time.Month, int, error) {
	if month == 0 && year == 0 {
		now := s.now()
		return now.Month(), now.Year(), nil
	}
	if month < time.January || month > time.December {
		return 0, 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if year < 2000 || year > 2100 {
		return 0, 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("year %d is out of range", year))
	}
	return month, year, nil
}

// filterPeriod keeps payments billed for the given month. Rows whose billing
// label does not parse are left out of the period figures.
func filterPeriod(payments []*paymentmodels.Payment, month time.Month, year int) []*paymentmodels.Payment {
	period := make([]*paymentmodels.Payment, 0, len(payments))
	for _, p := range payments {
		y, m, ok := p.BillingPeriod()
		if ok && y == year && m == month {
			period = append(period, p)
		}
	}
	return period
}

// ExportFilename names the CSV download for a period, e.g. "report-march-2026.csv".
func ExportFilename(month time.Month, year int) string {
	return fmt.Sprintf("report-%s-%d.csv", strings.ToLower(month.String()), year)
}
