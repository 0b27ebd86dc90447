package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/report"
	"propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/sentinel"
)

// UnitStore defines the persistence interface consumed by the service.
// Error Contract: Find methods return sentinel.ErrNotFound when the entity
// doesn't exist; Create/Update return sentinel.ErrAlreadyUsed for duplicate
// unit numbers.
type UnitStore interface {
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, unitID id.UnitID) error
	FindByID(ctx context.Context, unitID id.UnitID) (*models.Unit, error)
	List(ctx context.Context) ([]*models.Unit, error)
}

// TenantDirectory reports which units currently have an active tenant, as a
// map from unit number to tenant name. Used by the reconcile sweep, which
// treats the tenants table as the source of truth for occupancy.
type TenantDirectory interface {
	ActiveTenantsByUnit(ctx context.Context) (map[string]string, error)
}

// Service implements unit management for the property.
type Service struct {
	store   UnitStore
	tenants TenantDirectory
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTenantDirectory enables the occupancy reconcile sweep.
func WithTenantDirectory(tenants TenantDirectory) Option {
	return func(s *Service) { s.tenants = tenants }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store UnitStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("unit store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// CreateCommand carries validated unit creation input.
type CreateCommand struct {
	UnitNumber  string
	Floor       int
	Bedrooms    int
	Bathrooms   int
	MonthlyRent decimal.Decimal
	Status      models.Status
}

// Create adds a unit. An empty status defaults to Vacant.
func (s *Service) Create(ctx context.Context, cmd *CreateCommand) (*models.Unit, error) {
	status := cmd.Status
	if status == "" {
		status = models.StatusVacant
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown unit status %q", cmd.Status))
	}

	unit := &models.Unit{
		ID:          id.NewUnitID(),
		UnitNumber:  cmd.UnitNumber,
		Floor:       cmd.Floor,
		Bedrooms:    cmd.Bedrooms,
		Bathrooms:   cmd.Bathrooms,
		MonthlyRent: cmd.MonthlyRent,
		Status:      status,
		CreatedAt:   s.now(),
	}

	if err := s.store.Create(ctx, unit); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("unit %s already exists", cmd.UnitNumber))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create unit")
	}

	if s.metrics != nil {
		s.metrics.IncrementUnitsCreated()
	}
	s.logger.InfoContext(ctx, "unit created", "unit_id", unit.ID, "unit_number", unit.UnitNumber)
	return unit, nil
}

// ListQuery narrows the unit list the way the units page filters it.
type ListQuery struct {
	Status models.Status // empty means all statuses
	Search string        // matches unit number or tenant name, case-insensitive
}

// List returns all units, optionally narrowed by status and search term.
func (s *Service) List(ctx context.Context, query ListQuery) ([]*models.Unit, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown unit status %q", query.Status))
	}

	units, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list units")
	}

	if query.Status == "" && query.Search == "" {
		return units, nil
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := make([]*models.Unit, 0, len(units))
	for _, unit := range units {
		if query.Status != "" && unit.Status != query.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(unit.UnitNumber), search) &&
			!strings.Contains(strings.ToLower(unit.TenantName), search) {
			continue
		}
		filtered = append(filtered, unit)
	}
	return filtered, nil
}

// Get returns a single unit by ID.
func (s *Service) Get(ctx context.Context, unitID id.UnitID) (*models.Unit, error) {
	unit, err := s.store.FindByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "unit not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load unit")
	}
	return unit, nil
}

// UpdateCommand carries validated unit update input.
type UpdateCommand struct {
	UnitNumber  string
	Floor       int
	Bedrooms    int
	Bathrooms   int
	MonthlyRent decimal.Decimal
	Status      models.Status
}

// Update replaces the editable fields of a unit.
func (s *Service) Update(ctx context.Context, unitID id.UnitID, cmd *UpdateCommand) (*models.Unit, error) {
	if !cmd.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown unit status %q", cmd.Status))
	}

	unit, err := s.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}

	unit.UnitNumber = cmd.UnitNumber
	unit.Floor = cmd.Floor
	unit.Bedrooms = cmd.Bedrooms
	unit.Bathrooms = cmd.Bathrooms
	unit.MonthlyRent = cmd.MonthlyRent
	unit.Status = cmd.Status
	if unit.Status != models.StatusOccupied {
		unit.TenantName = ""
	}

	if err := s.store.Update(ctx, unit); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("unit %s already exists", cmd.UnitNumber))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update unit")
	}
	return unit, nil
}

// Delete removes a unit. Occupied units are rejected before any write; the
// tenant has to be released first.
func (s *Service) Delete(ctx context.Context, unitID id.UnitID) error {
	unit, err := s.Get(ctx, unitID)
	if err != nil {
		return err
	}
	if unit.Status == models.StatusOccupied {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("unit %s is occupied; release the tenant before deleting it", unit.UnitNumber))
	}

	if err := s.store.Delete(ctx, unitID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "unit not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete unit")
	}
	s.logger.InfoContext(ctx, "unit deleted", "unit_id", unitID, "unit_number", unit.UnitNumber)
	return nil
}

// Summary is the occupancy overview shown at the top of the units page.
type Summary struct {
	Total          int                       `json:"total"`
	Breakdown      report.OccupancyBreakdown `json:"breakdown"`
	OccupancyRate  int                       `json:"occupancy_rate"`
	MonthlyRevenue decimal.Decimal           `json:"monthly_revenue"`
}

// Summarize computes the occupancy overview from the full unit list.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	units, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list units")
	}
	return &Summary{
		Total:          len(units),
		Breakdown:      report.StatusCounts(units),
		OccupancyRate:  report.OccupancyRate(units),
		MonthlyRevenue: report.MonthlyRevenue(units),
	}, nil
}

// ReconcileOccupancy re-derives each unit's occupancy from the tenants
// table. A unit becomes Occupied when an active tenant references its unit
// number, and Vacant when none does. Units under maintenance without an
// active tenant are left alone. Returns the number of units repaired.
func (s *Service) ReconcileOccupancy(ctx context.Context) (int, error) {
	if s.tenants == nil {
		return 0, dErrors.New(dErrors.CodeInternal, "tenant directory is not configured")
	}

	active, err := s.tenants.ActiveTenantsByUnit(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "could not load active tenants")
	}
	units, err := s.store.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "could not list units")
	}

	repaired := 0
	for _, unit := range units {
		tenantName, occupied := active[unit.UnitNumber]

		var want models.Status
		switch {
		case occupied:
			want = models.StatusOccupied
		case unit.Status == models.StatusMaintenance:
			want = models.StatusMaintenance
		default:
			want = models.StatusVacant
		}
		if want != models.StatusOccupied {
			tenantName = ""
		}

		if unit.Status == want && unit.TenantName == tenantName {
			continue
		}

		unit.Status = want
		unit.TenantName = tenantName
		if err := s.store.Update(ctx, unit); err != nil {
			return repaired, dErrors.Wrap(err, dErrors.CodeInternal,
				fmt.Sprintf("could not repair unit %s", unit.UnitNumber))
		}
		repaired++
		s.logger.InfoContext(ctx, "occupancy repaired",
			"unit_number", unit.UnitNumber,
			"status", unit.Status,
		)
	}

	if repaired > 0 && s.metrics != nil {
		s.metrics.AddOccupancyRepairs(repaired)
	}
	return repaired, nil
}
