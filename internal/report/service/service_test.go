package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	paymentmodels "propertyhub/internal/payment/models"
	paymentstore "propertyhub/internal/payment/store"
	tenantmodels "propertyhub/internal/tenant/models"
	tenantstore "propertyhub/internal/tenant/store"
	unitmodels "propertyhub/internal/unit/models"
	unitstore "propertyhub/internal/unit/store"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

type ReportServiceSuite struct {
	suite.Suite
	ctx      context.Context
	units    *unitstore.InMemoryStore
	payments *paymentstore.InMemoryStore
	tenants  *tenantstore.InMemoryStore
	service  *Service
	clock    time.Time
}

func (s *ReportServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.units = unitstore.NewInMemory()
	s.payments = paymentstore.NewInMemory()
	s.tenants = tenantstore.NewInMemory()
	s.clock = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	svc, err := New(s.units, s.payments, s.tenants, WithClock(func() time.Time {
		return s.clock
	}))
	s.Require().NoError(err)
	s.service = svc
}

func (s *ReportServiceSuite) addUnit(number string, status unitmodels.Status, rent int64) {
	err := s.units.Create(s.ctx, &unitmodels.Unit{
		ID:          id.NewUnitID(),
		UnitNumber:  number,
		Floor:       1,
		Bedrooms:    2,
		Bathrooms:   1,
		MonthlyRent: decimal.NewFromInt(rent),
		Status:      status,
		CreatedAt:   s.clock,
	})
	s.Require().NoError(err)
}

func (s *ReportServiceSuite) addTenant(name, unit string) {
	err := s.tenants.Create(s.ctx, &tenantmodels.Tenant{
		ID:        id.NewTenantID(),
		Name:      name,
		Unit:      unit,
		Status:    tenantmodels.StatusActive,
		CreatedAt: s.clock,
	})
	s.Require().NoError(err)
}

func (s *ReportServiceSuite) addPayment(billingMonth string, amount int64, status paymentmodels.Status, paidAt *time.Time, createdAt time.Time) {
	err := s.payments.Create(s.ctx, &paymentmodels.Payment{
		ID:           id.NewPaymentID(),
		TenantName:   "Sarah Johnson",
		Unit:         "201",
		Amount:       decimal.NewFromInt(amount),
		BillingMonth: billingMonth,
		Status:       status,
		PaymentDate:  paidAt,
		CreatedAt:    createdAt,
	})
	s.Require().NoError(err)
}

func paidOn(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	return &t
}

// Justification: the money figures on the reports page must cover only the
// selected billing period, while the trend looks back six months across the
// whole ledger.
func (s *ReportServiceSuite) TestSummaryIsPeriodScoped() {
	s.addUnit("201", unitmodels.StatusOccupied, 1200)
	s.addUnit("202", unitmodels.StatusOccupied, 1300)
	s.addUnit("203", unitmodels.StatusVacant, 1100)
	s.addUnit("204", unitmodels.StatusMaintenance, 1000)

	base := s.clock
	s.addPayment("March 2026", 1500, paymentmodels.StatusPaid, paidOn(2026, time.March, 3), base)
	s.addPayment("March 2026", 500, paymentmodels.StatusPending, nil, base.Add(time.Second))
	// A different billing period and an unparseable label stay out of the
	// period figures.
	s.addPayment("February 2026", 999, paymentmodels.StatusPaid, paidOn(2026, time.February, 5), base.Add(2*time.Second))
	s.addPayment("sometime", 777, paymentmodels.StatusOverdue, nil, base.Add(3*time.Second))

	summary, err := s.service.Summary(s.ctx, time.March, 2026)
	s.Require().NoError(err)

	s.Equal("March", summary.Month)
	s.Equal(2026, summary.Year)
	s.True(summary.Collected.Equal(decimal.NewFromInt(1500)))
	s.True(summary.Expected.Equal(decimal.NewFromInt(2000)))
	s.True(summary.Outstanding.Equal(decimal.NewFromInt(500)))
	s.InDelta(50.0, summary.CollectionRate, 0.001)

	s.Equal(2, summary.Occupancy.Occupied)
	s.Equal(1, summary.Occupancy.Vacant)
	s.Equal(1, summary.Occupancy.Maintenance)
	s.Equal(50, summary.OccupancyRate)

	s.Require().Len(summary.Trend, 6)
	s.Equal("Oct 2025", summary.Trend[0].Month)
	s.Equal("Mar 2026", summary.Trend[5].Month)
	// The trend buckets on payment date over the whole ledger, so the
	// February payment shows up there even though it is outside the period.
	s.True(summary.Trend[4].Amount.Equal(decimal.NewFromInt(999)))
	s.True(summary.Trend[5].Amount.Equal(decimal.NewFromInt(1500)))
}

func (s *ReportServiceSuite) TestSummaryDefaultsToCurrentPeriod() {
	summary, err := s.service.Summary(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Equal("March", summary.Month)
	s.Equal(2026, summary.Year)
}

func (s *ReportServiceSuite) TestSummaryEmptyPortfolio() {
	summary, err := s.service.Summary(s.ctx, time.March, 2026)
	s.Require().NoError(err)
	s.True(summary.Collected.IsZero())
	s.Zero(summary.CollectionRate)
	s.Zero(summary.OccupancyRate)
	s.Len(summary.Trend, 6)
}

func (s *ReportServiceSuite) TestSummaryRejectsBadPeriod() {
	_, err := s.service.Summary(s.ctx, 13, 2026)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Summary(s.ctx, time.March, 1800)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ReportServiceSuite) TestOverview() {
	s.addUnit("201", unitmodels.StatusOccupied, 1200)
	s.addUnit("202", unitmodels.StatusVacant, 1300)
	s.addTenant("Sarah Johnson", "201")

	base := s.clock
	for i := 0; i < 6; i++ {
		s.addPayment("March 2026", int64(1000+i), paymentmodels.StatusPending, nil, base.Add(time.Duration(i)*time.Second))
	}

	dashboard, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)

	s.Equal(2, dashboard.TotalUnits)
	s.Equal(1, dashboard.TotalTenants)
	s.True(dashboard.MonthlyRevenue.Equal(decimal.NewFromInt(1200)))
	s.Equal(50, dashboard.OccupancyRate)

	s.Require().Len(dashboard.RecentPayments, 4)
	// Newest first.
	s.True(dashboard.RecentPayments[0].Amount.Equal(decimal.NewFromInt(1005)))
	s.True(dashboard.RecentPayments[3].Amount.Equal(decimal.NewFromInt(1002)))
}

func (s *ReportServiceSuite) TestExportCSV() {
	s.addUnit("201", unitmodels.StatusOccupied, 1200)
	s.addPayment("March 2026", 1500, paymentmodels.StatusPaid, paidOn(2026, time.March, 3), s.clock)

	data, filename, err := s.service.Export(s.ctx, time.March, 2026)
	s.Require().NoError(err)
	s.Equal("report-march-2026.csv", filename)

	body := string(data)
	s.Contains(body, "Metric,Value")
	s.Contains(body, "Period,March 2026")
	s.Contains(body, "Collected,1500.00")
	s.Contains(body, "Occupancy Rate (%),100")
	s.Contains(body, "Month,Revenue")
	s.Contains(body, "Mar 2026,1500.00")
}

func (s *ReportServiceSuite) TestExportDefaultsToCurrentPeriod() {
	_, filename, err := s.service.Export(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Equal("report-march-2026.csv", filename)
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}
