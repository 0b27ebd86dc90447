// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "propertyhub/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UnitID where a TenantID is expected.
type (
	UserID     uuid.UUID
	SessionID  uuid.UUID
	UnitID     uuid.UUID
	TenantID   uuid.UUID
	PaymentID  uuid.UUID
	ReminderID uuid.UUID
)

// New functions - use when creating entities.

func NewUserID() UserID         { return UserID(uuid.New()) }
func NewSessionID() SessionID   { return SessionID(uuid.New()) }
func NewUnitID() UnitID         { return UnitID(uuid.New()) }
func NewTenantID() TenantID     { return TenantID(uuid.New()) }
func NewPaymentID() PaymentID   { return PaymentID(uuid.New()) }
func NewReminderID() ReminderID { return ReminderID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParseUnitID(s string) (UnitID, error) {
	id, err := parseUUID(s, "unit ID")
	return UnitID(id), err
}

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParsePaymentID(s string) (PaymentID, error) {
	id, err := parseUUID(s, "payment ID")
	return PaymentID(id), err
}

func ParseReminderID(s string) (ReminderID, error) {
	id, err := parseUUID(s, "reminder ID")
	return ReminderID(id), err
}

// String methods - for logging and debugging.

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id SessionID) String() string  { return uuid.UUID(id).String() }
func (id UnitID) String() string     { return uuid.UUID(id).String() }
func (id TenantID) String() string   { return uuid.UUID(id).String() }
func (id PaymentID) String() string  { return uuid.UUID(id).String() }
func (id ReminderID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UnitID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ReminderID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. Nil UUIDs are allowed here so
// store lookups can return proper "not found" errors; use IsNil() at the
// service layer for business validation.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return parsed, nil
}
