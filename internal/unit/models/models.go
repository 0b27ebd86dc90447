package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "propertyhub/pkg/domain"
)

// Status is the occupancy state of a unit.
type Status string

const (
	StatusOccupied    Status = "Occupied"
	StatusVacant      Status = "Vacant"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) String() string { return string(s) }

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusOccupied, StatusVacant, StatusMaintenance:
		return true
	}
	return false
}

// Unit is a rentable apartment in the managed property.
// TenantName is denormalized from the tenants table and kept in step by the
// assign/release flow and the reconcile sweep.
type Unit struct {
	ID          id.UnitID
	UnitNumber  string
	Floor       int
	Bedrooms    int
	Bathrooms   int
	MonthlyRent decimal.Decimal
	Status      Status
	TenantName  string
	CreatedAt   time.Time
}
