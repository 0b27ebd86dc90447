package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	paymentmodels "propertyhub/internal/payment/models"
	paymentstore "propertyhub/internal/payment/store"
	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/report/service"
	tenantstore "propertyhub/internal/tenant/store"
	unitmodels "propertyhub/internal/unit/models"
	unitstore "propertyhub/internal/unit/store"
	id "propertyhub/pkg/domain"
)

type ReportHandlerSuite struct {
	suite.Suite
	ctx      context.Context
	router   chi.Router
	units    *unitstore.InMemoryStore
	payments *paymentstore.InMemoryStore
}

func (s *ReportHandlerSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.units = unitstore.NewInMemory()
	s.payments = paymentstore.NewInMemory()
	tenants := tenantstore.NewInMemory()

	clock := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, err := service.New(s.units, s.payments, tenants,
		service.WithLogger(logger),
		service.WithClock(func() time.Time { return clock }),
	)
	s.Require().NoError(err)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	New(svc, logger).Register(router)
	s.router = router
}

func (s *ReportHandlerSuite) seed() {
	err := s.units.Create(s.ctx, &unitmodels.Unit{
		ID:          id.NewUnitID(),
		UnitNumber:  "201",
		Floor:       2,
		Bedrooms:    2,
		Bathrooms:   1,
		MonthlyRent: decimal.NewFromInt(1500),
		Status:      unitmodels.StatusOccupied,
		CreatedAt:   time.Now(),
	})
	s.Require().NoError(err)

	paidAt := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	err = s.payments.Create(s.ctx, &paymentmodels.Payment{
		ID:           id.NewPaymentID(),
		TenantName:   "Sarah Johnson",
		Unit:         "201",
		Amount:       decimal.NewFromInt(1500),
		BillingMonth: "March 2026",
		Status:       paymentmodels.StatusPaid,
		PaymentDate:  &paidAt,
		CreatedAt:    time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ReportHandlerSuite) do(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReportHandlerSuite) TestSummary() {
	s.seed()

	rec := s.do("/reports/summary?month=3&year=2026")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Month          string  `json:"month"`
		Year           int     `json:"year"`
		Collected      string  `json:"collected"`
		CollectionRate float64 `json:"collection_rate"`
		OccupancyRate  int     `json:"occupancy_rate"`
		Trend          []struct {
			Month string `json:"month"`
		} `json:"trend"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("March", body.Month)
	s.Equal(2026, body.Year)
	s.Equal("1500", body.Collected)
	s.InDelta(100.0, body.CollectionRate, 0.001)
	s.Equal(100, body.OccupancyRate)
	s.Require().Len(body.Trend, 6)
	s.Equal("Mar 2026", body.Trend[5].Month)
}

func (s *ReportHandlerSuite) TestSummaryBadParams() {
	rec := s.do("/reports/summary?month=abc&year=2026")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do("/reports/summary?month=13&year=2026")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ReportHandlerSuite) TestExport() {
	s.seed()

	rec := s.do("/reports/export?month=3&year=2026")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	s.Equal("text/csv", rec.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="report-march-2026.csv"`, rec.Header().Get("Content-Disposition"))
	s.Contains(rec.Body.String(), "Metric,Value")
	s.Contains(rec.Body.String(), "Collected,1500.00")
}

// Justification: the dashboard embeds ledger rows, so its payload must use
// the same snake_case field names and string UUIDs as the payments endpoints
// rather than leaking raw model marshalling.
func (s *ReportHandlerSuite) TestDashboard() {
	s.seed()

	rec := s.do("/dashboard")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		TotalUnits     int `json:"total_units"`
		TotalTenants   int `json:"total_tenants"`
		OccupancyRate  int `json:"occupancy_rate"`
		RecentPayments []struct {
			ID           string `json:"id"`
			TenantName   string `json:"tenant_name"`
			Unit         string `json:"unit"`
			BillingMonth string `json:"billing_month"`
			Status       string `json:"status"`
		} `json:"recent_payments"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(1, body.TotalUnits)
	s.Equal(0, body.TotalTenants)
	s.Equal(100, body.OccupancyRate)

	s.Require().Len(body.RecentPayments, 1)
	recent := body.RecentPayments[0]
	s.Equal("Sarah Johnson", recent.TenantName)
	s.Equal("201", recent.Unit)
	s.Equal("March 2026", recent.BillingMonth)
	s.Equal("Paid", recent.Status)

	parsed, err := uuid.Parse(recent.ID)
	s.NoError(err)
	s.NotEqual(uuid.Nil, parsed)
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerSuite))
}
