package models

import (
	"time"

	id "propertyhub/pkg/domain"
)

// Type is the kind of payment reminder being sent.
type Type string

const (
	TypeUpcoming Type = "upcoming"
	TypeDueToday Type = "due-today"
	TypeOverdue  Type = "overdue"
)

func (t Type) String() string { return string(t) }

// Valid reports whether the type is one of the known kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeUpcoming, TypeDueToday, TypeOverdue:
		return true
	}
	return false
}

// Reminder is one entry of the write-once send history. Recipients is a
// display summary like "All Tenants (89)"; the individual addresses are not
// retained.
type Reminder struct {
	ID         id.ReminderID
	SentAt     time.Time
	Recipients string
	Count      int
	Type       Type
	Status     string
	Opened     int
	Message    string
	CreatedAt  time.Time
}
