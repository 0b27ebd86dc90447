package models

import (
	"time"

	id "propertyhub/pkg/domain"
)

// Status is the lease state of a tenant.
type Status string

const (
	StatusActive   Status = "Active"
	StatusPending  Status = "Pending"
	StatusInactive Status = "Inactive"
)

func (s Status) String() string { return string(s) }

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	}
	return false
}

// Tenant is a leaseholder. Unit holds the unit number as a plain string; the
// link to the units table is by exact equality on that value, not a foreign key.
type Tenant struct {
	ID         id.TenantID
	Name       string
	Unit       string
	Phone      string
	Email      string
	LeaseStart time.Time
	Status     Status
	Notes      string
	CreatedAt  time.Time
}
