package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"propertyhub/internal/tenant/models"
	tenantstore "propertyhub/internal/tenant/store"
	unitmodels "propertyhub/internal/unit/models"
	unitstore "propertyhub/internal/unit/store"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// flakyUnitStore injects a failure into the unit-side write of the
// assign/release flow.
type flakyUnitStore struct {
	*unitstore.InMemoryStore
	failNextUpdate error
}

func (f *flakyUnitStore) Update(ctx context.Context, unit *unitmodels.Unit) error {
	if f.failNextUpdate != nil {
		err := f.failNextUpdate
		f.failNextUpdate = nil
		return err
	}
	return f.InMemoryStore.Update(ctx, unit)
}

type TenantServiceSuite struct {
	suite.Suite
	ctx     context.Context
	tenants *tenantstore.InMemoryStore
	units   *flakyUnitStore
	service *Service
}

func (s *TenantServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.tenants = tenantstore.NewInMemory()
	s.units = &flakyUnitStore{InMemoryStore: unitstore.NewInMemory()}

	svc, err := New(s.tenants, s.units)
	s.Require().NoError(err)
	s.service = svc
}

func (s *TenantServiceSuite) addUnit(unitNumber string, status unitmodels.Status) *unitmodels.Unit {
	unit := &unitmodels.Unit{
		ID:          id.NewUnitID(),
		UnitNumber:  unitNumber,
		MonthlyRent: decimal.NewFromInt(1200),
		Status:      status,
		CreatedAt:   time.Now(),
	}
	s.Require().NoError(s.units.Create(s.ctx, unit))
	return unit
}

func (s *TenantServiceSuite) assign(name, unitNumber string, status models.Status) *models.Tenant {
	tenant, err := s.service.Assign(s.ctx, &AssignCommand{
		Name:       name,
		Unit:       unitNumber,
		Email:      "tenant@example.com",
		LeaseStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:     status,
	})
	s.Require().NoError(err)
	return tenant
}

// TestAssignMarksUnitOccupied verifies both writes of the assign flow.
func (s *TenantServiceSuite) TestAssignMarksUnitOccupied() {
	unit := s.addUnit("201", unitmodels.StatusVacant)

	s.assign("Sarah Johnson", "201", models.StatusActive)

	got, err := s.units.FindByID(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Equal(unitmodels.StatusOccupied, got.Status)
	s.Equal("Sarah Johnson", got.TenantName)
}

// TestAssignPendingLeavesUnitAlone verifies that only active leases occupy.
func (s *TenantServiceSuite) TestAssignPendingLeavesUnitAlone() {
	unit := s.addUnit("201", unitmodels.StatusVacant)

	s.assign("Lisa Chen", "201", models.StatusPending)

	got, err := s.units.FindByID(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Equal(unitmodels.StatusVacant, got.Status)
}

// TestAssignUnknownUnit verifies that a unit number with no matching unit is
// accepted; the unit side has nothing to update.
func (s *TenantServiceSuite) TestAssignUnknownUnit() {
	tenant := s.assign("Sarah Johnson", "999", models.StatusActive)

	got, err := s.tenants.FindByID(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal("999", got.Unit)
}

// TestAssignPartialFailure verifies the redesigned two-write behavior: the
// tenant row lands, the unit write fails, and the caller is told about the
// drift instead of it being swallowed.
// Justification: the two writes are not transactional, so the error must
// carry the inconsistent-state code that points at the repair path.
func (s *TenantServiceSuite) TestAssignPartialFailure() {
	unit := s.addUnit("201", unitmodels.StatusVacant)
	s.units.failNextUpdate = errors.New("connection reset")

	tenant, err := s.service.Assign(s.ctx, &AssignCommand{
		Name:   "Sarah Johnson",
		Unit:   "201",
		Status: models.StatusActive,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInconsistentState))
	s.Contains(err.Error(), "201")

	// The tenant row exists even though the unit write failed.
	s.Require().NotNil(tenant)
	_, findErr := s.tenants.FindByID(s.ctx, tenant.ID)
	s.NoError(findErr)

	// Unit still shows the stale state until the sweep runs.
	got, err := s.units.FindByID(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Equal(unitmodels.StatusVacant, got.Status)
}

// TestReleaseMarksUnitVacant verifies both writes of the release flow.
func (s *TenantServiceSuite) TestReleaseMarksUnitVacant() {
	unit := s.addUnit("201", unitmodels.StatusVacant)
	tenant := s.assign("Sarah Johnson", "201", models.StatusActive)

	s.Require().NoError(s.service.Release(s.ctx, tenant.ID))

	_, err := s.tenants.FindByID(s.ctx, tenant.ID)
	s.Require().Error(err)

	got, err := s.units.FindByID(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Equal(unitmodels.StatusVacant, got.Status)
	s.Empty(got.TenantName)
}

// TestReleasePartialFailure verifies the release side of the partial-failure
// contract: tenant row deleted, unit write failed, drift reported.
func (s *TenantServiceSuite) TestReleasePartialFailure() {
	unit := s.addUnit("201", unitmodels.StatusVacant)
	tenant := s.assign("Sarah Johnson", "201", models.StatusActive)

	s.units.failNextUpdate = errors.New("connection reset")
	err := s.service.Release(s.ctx, tenant.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInconsistentState))

	// Tenant is gone, unit still says occupied.
	_, findErr := s.tenants.FindByID(s.ctx, tenant.ID)
	s.Require().Error(findErr)
	got, err := s.units.FindByID(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Equal(unitmodels.StatusOccupied, got.Status)
}

func (s *TenantServiceSuite) TestReleaseMissingTenant() {
	err := s.service.Release(s.ctx, id.NewTenantID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *TenantServiceSuite) TestListFilters() {
	s.addUnit("201", unitmodels.StatusVacant)
	s.assign("Sarah Johnson", "201", models.StatusActive)
	s.assign("Mike Peterson", "202", models.StatusInactive)

	all, err := s.service.List(s.ctx, ListQuery{})
	s.Require().NoError(err)
	s.Len(all, 2)

	active, err := s.service.List(s.ctx, ListQuery{Status: models.StatusActive})
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("Sarah Johnson", active[0].Name)

	byName, err := s.service.List(s.ctx, ListQuery{Search: "peterson"})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Mike Peterson", byName[0].Name)

	byUnit, err := s.service.List(s.ctx, ListQuery{Search: "201"})
	s.Require().NoError(err)
	s.Require().Len(byUnit, 1)
	s.Equal("Sarah Johnson", byUnit[0].Name)
}

func (s *TenantServiceSuite) TestSummarize() {
	s.assign("Sarah Johnson", "201", models.StatusActive)
	s.assign("Lisa Chen", "202", models.StatusPending)
	s.assign("Mike Peterson", "203", models.StatusInactive)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, summary.Total)
	s.Equal(1, summary.ActiveLeases)
}

func (s *TenantServiceSuite) TestActiveTenantsByUnit() {
	s.assign("Sarah Johnson", "201", models.StatusActive)
	s.assign("Lisa Chen", "202", models.StatusPending)
	s.assign("Mike Peterson", "", models.StatusActive)

	active, err := s.service.ActiveTenantsByUnit(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string]string{"201": "Sarah Johnson"}, active)
}

func TestTenantServiceSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceSuite))
}
