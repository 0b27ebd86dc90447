package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"propertyhub/internal/platform/metrics"
	"propertyhub/internal/tenant/models"
	unitmodels "propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/sentinel"
)

// TenantStore defines the persistence interface consumed by the service.
type TenantStore interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
}

// UnitStore is the slice of the unit store needed to keep occupancy in step
// with tenant changes. The link is exact equality on the unit number.
type UnitStore interface {
	FindByUnitNumber(ctx context.Context, unitNumber string) (*unitmodels.Unit, error)
	Update(ctx context.Context, unit *unitmodels.Unit) error
}

// Service implements tenant management. Assigning and releasing a tenant are
// two sequential writes against two tables with no transaction spanning them;
// when the second write fails the error carries the inconsistent-state code
// so callers know the occupancy reconcile sweep is needed.
type Service struct {
	store   TenantStore
	units   UnitStore
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

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store TenantStore, units UnitStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("tenant store is required")
	}
	if units == nil {
		return nil, errors.New("unit store is required")
	}
	svc := &Service{store: store, units: units, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// AssignCommand carries validated tenant creation input.
type AssignCommand struct {
	Name       string
	Unit       string
	Phone      string
	Email      string
	LeaseStart time.Time
	Status     models.Status
	Notes      string
}

// Assign creates the tenant row, then marks the matching unit occupied.
// An active tenant whose unit number matches no unit is accepted; the unit
// side simply has nothing to update. A failure on the unit write after the
// tenant row exists is surfaced with the inconsistent-state code.
func (s *Service) Assign(ctx context.Context, cmd *AssignCommand) (*models.Tenant, error) {
	status := cmd.Status
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown tenant status %q", cmd.Status))
	}

	tenant := &models.Tenant{
		ID:         id.NewTenantID(),
		Name:       cmd.Name,
		Unit:       cmd.Unit,
		Phone:      cmd.Phone,
		Email:      cmd.Email,
		LeaseStart: cmd.LeaseStart,
		Status:     status,
		Notes:      cmd.Notes,
		CreatedAt:  s.now(),
	}

	if err := s.store.Create(ctx, tenant); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create tenant")
	}

	if status == models.StatusActive {
		if err := s.occupyUnit(ctx, tenant.Unit, tenant.Name); err != nil {
			return tenant, err
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementTenantsAssigned()
	}
	s.logger.InfoContext(ctx, "tenant assigned",
		"tenant_id", tenant.ID,
		"unit_number", tenant.Unit,
		"status", tenant.Status,
	)
	return tenant, nil
}

// Release deletes the tenant row, then marks the matching unit vacant.
// A failure on the unit write after the tenant row is gone is surfaced with
// the inconsistent-state code.
func (s *Service) Release(ctx context.Context, tenantID id.TenantID) error {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not load tenant")
	}

	if err := s.store.Delete(ctx, tenantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete tenant")
	}

	if err := s.vacateUnit(ctx, tenant.Unit); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementTenantsReleased()
	}
	s.logger.InfoContext(ctx, "tenant released",
		"tenant_id", tenantID,
		"unit_number", tenant.Unit,
	)
	return nil
}

func (s *Service) occupyUnit(ctx context.Context, unitNumber, tenantName string) error {
	unit, err := s.units.FindByUnitNumber(ctx, unitNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// No unit carries this number; nothing to update.
			s.logger.WarnContext(ctx, "tenant assigned to unknown unit", "unit_number", unitNumber)
			return nil
		}
		return s.inconsistent(ctx, err, unitNumber,
			"tenant row was created but the unit status could not be read")
	}

	unit.Status = unitmodels.StatusOccupied
	unit.TenantName = tenantName
	if err := s.units.Update(ctx, unit); err != nil {
		return s.inconsistent(ctx, err, unitNumber,
			"tenant row was created but the unit was not marked occupied")
	}
	return nil
}

func (s *Service) vacateUnit(ctx context.Context, unitNumber string) error {
	unit, err := s.units.FindByUnitNumber(ctx, unitNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return s.inconsistent(ctx, err, unitNumber,
			"tenant row was deleted but the unit status could not be read")
	}
	if unit.Status != unitmodels.StatusOccupied {
		return nil
	}

	unit.Status = unitmodels.StatusVacant
	unit.TenantName = ""
	if err := s.units.Update(ctx, unit); err != nil {
		return s.inconsistent(ctx, err, unitNumber,
			"tenant row was deleted but the unit was not marked vacant")
	}
	return nil
}

// inconsistent reports a partial failure: the tenant write landed but the
// unit write did not. The reconcile sweep repairs the drift.
func (s *Service) inconsistent(ctx context.Context, err error, unitNumber, message string) error {
	s.logger.ErrorContext(ctx, "occupancy update failed after tenant write",
		"error", err,
		"unit_number", unitNumber,
	)
	return dErrors.Wrap(err, dErrors.CodeInconsistentState,
		fmt.Sprintf("%s; run the occupancy reconcile for unit %s", message, unitNumber))
}

// ListQuery narrows the tenant list the way the tenants page filters it.
type ListQuery struct {
	Status models.Status
	Search string // matches tenant name or unit number, case-insensitive
}

// List returns all tenants, optionally narrowed by status and search term.
func (s *Service) List(ctx context.Context, query ListQuery) ([]*models.Tenant, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown tenant status %q", query.Status))
	}

	tenants, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list tenants")
	}

	if query.Status == "" && query.Search == "" {
		return tenants, nil
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := make([]*models.Tenant, 0, len(tenants))
	for _, tenant := range tenants {
		if query.Status != "" && tenant.Status != query.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tenant.Name), search) &&
			!strings.Contains(strings.ToLower(tenant.Unit), search) {
			continue
		}
		filtered = append(filtered, tenant)
	}
	return filtered, nil
}

// Summary is the overview shown at the top of the tenants page.
type Summary struct {
	Total        int `json:"total"`
	ActiveLeases int `json:"active_leases"`
}

// Summarize counts tenants and active leases.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	tenants, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list tenants")
	}
	summary := &Summary{Total: len(tenants)}
	for _, tenant := range tenants {
		if tenant.Status == models.StatusActive {
			summary.ActiveLeases++
		}
	}
	return summary, nil
}

// ActiveTenantsByUnit maps unit numbers to the name of their active tenant.
// It backs the occupancy reconcile sweep.
func (s *Service) ActiveTenantsByUnit(ctx context.Context) (map[string]string, error) {
	tenants, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	active := make(map[string]string)
	for _, tenant := range tenants {
		if tenant.Status == models.StatusActive && tenant.Unit != "" {
			active[tenant.Unit] = tenant.Name
		}
	}
	return active, nil
}
