// Package models defines the data structures for the submission routing engine.
package models

import (
	"time"
)

// SocialContext carries the client's free-text availability and constraints.
// Empty strings mean the field was not captured.
type SocialContext struct {
	AvailabilityNotes    string `json:"availability_notes,omitempty"`
	PreferredContactTime string `json:"preferred_contact_time,omitempty"`
	PersonalConstraints  string `json:"personal_constraints,omitempty"`
	ContactRestrictions  string `json:"contact_restrictions,omitempty"`
}

// IsEmpty reports whether no availability text was captured.
func (s SocialContext) IsEmpty() bool {
	return s.AvailabilityNotes == "" &&
		s.PreferredContactTime == "" &&
		s.PersonalConstraints == "" &&
		s.ContactRestrictions == ""
}

// AvailabilityResult is the parsed form of a SocialContext.
type AvailabilityResult struct {
	AvailableAfter time.Time `json:"available_after"`
	Restrictions   []string  `json:"restrictions"`
	Notes          string    `json:"notes"`
}

// ScheduledAction is the recommended follow-up slot.
type ScheduledAction struct {
	ScheduledTime       time.Time `json:"scheduled_time"`
	Reason              string    `json:"reason"`
	RespectedConstraint string    `json:"respects_constraint"`
}
