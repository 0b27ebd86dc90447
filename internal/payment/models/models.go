package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "propertyhub/pkg/domain"
)

// Status is the collection state of a billed payment.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
	StatusOverdue Status = "Overdue"
)

func (s Status) String() string { return string(s) }

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// Payment is one billed month of rent for a tenant. Tenant and unit are
// denormalized as display strings, matching how the ledger presents them.
// PaymentDate is nil until the payment is recorded as Paid.
type Payment struct {
	ID           id.PaymentID
	TenantName   string
	Unit         string
	Amount       decimal.Decimal
	BillingMonth string // e.g. "January 2026"
	Status       Status
	PaymentDate  *time.Time
	Notes        string
	CreatedAt    time.Time
}

// BillingPeriod returns the payment's billing month parsed into year and
// month, or false when the label does not parse.
func (p *Payment) BillingPeriod() (int, time.Month, bool) {
	t, err := time.Parse("January 2006", p.BillingMonth)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
