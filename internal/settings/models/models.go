package models

import (
	id "propertyhub/pkg/domain"
)

// Method is the preferred channel for tenant communication.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
	MethodBoth  Method = "both"
)

func (m Method) String() string { return string(m) }

// Valid reports whether the method is one of the known channels.
func (m Method) Valid() bool {
	switch m {
	case MethodEmail, MethodSMS, MethodBoth:
		return true
	}
	return false
}

// Settings holds one manager's notification and billing preferences.
// Exactly one row per user, written by upsert.
type Settings struct {
	UserID              id.UserID
	PreferredMethod     Method
	EmailNotifications  bool
	SMSNotifications    bool
	PaymentReminders    bool
	MaintenanceAlerts   bool
	PaymentInstructions string
	DefaultDueDay       int
}

// Defaults returns the settings a user has before saving any.
func Defaults(userID id.UserID) *Settings {
	return &Settings{
		UserID:             userID,
		PreferredMethod:    MethodEmail,
		EmailNotifications: true,
		PaymentReminders:   true,
		MaintenanceAlerts:  true,
		DefaultDueDay:      5,
	}
}
