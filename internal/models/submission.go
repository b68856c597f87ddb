// Package models defines the data structures for the submission routing engine.
package models

import (
	"time"
)

// SubmissionState tracks a submission through the pipeline.
type SubmissionState string

const (
	StateReceived     SubmissionState = "received"
	StateExtracted    SubmissionState = "extracted"
	StateMapped       SubmissionState = "mapped"
	StateRouted       SubmissionState = "routed"
	StateReadyToSend  SubmissionState = "ready_to_send"
	StateScheduled    SubmissionState = "scheduled"
	StateSent         SubmissionState = "sent"
	StateAcknowledged SubmissionState = "acknowledged"
)

// SubmissionStates returns the lifecycle in order.
func SubmissionStates() []SubmissionState {
	return []SubmissionState{
		StateReceived,
		StateExtracted,
		StateMapped,
		StateRouted,
		StateReadyToSend,
		StateScheduled,
		StateSent,
		StateAcknowledged,
	}
}

// Ordinal returns the lifecycle position, or -1 for unknown states.
func (s SubmissionState) Ordinal() int {
	for i, state := range SubmissionStates() {
		if s == state {
			return i
		}
	}
	return -1
}

// IsValid checks if the state is part of the lifecycle.
func (s SubmissionState) IsValid() bool {
	return s.Ordinal() >= 0
}

// CanTransition reports whether moving from s to next goes forward.
func (s SubmissionState) CanTransition(next SubmissionState) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return next.Ordinal() > s.Ordinal()
}

// StateChange is one entry in a submission's history.
type StateChange struct {
	State     SubmissionState `json:"state"`
	Timestamp time.Time       `json:"timestamp"`
	Notes     string          `json:"notes"`
}

// SubmissionStatus is the tracked state of one submission.
type SubmissionStatus struct {
	SubmissionID           string          `json:"submission_id" db:"submission_id"`
	BusinessName           string          `json:"business_name" db:"business_name"`
	CurrentState           SubmissionState `json:"current_state" db:"current_state"`
	StateHistory           []StateChange   `json:"state_history" db:"state_history"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at" db:"updated_at"`
	ScheduledSendTime      *time.Time      `json:"scheduled_send_time,omitempty" db:"scheduled_send_time"`
	RecommendedUnderwriter string          `json:"recommended_underwriter,omitempty" db:"recommended_underwriter"`
	BrokerTasksPending     int             `json:"broker_tasks_pending" db:"broker_tasks_pending"`
}

// Transition moves the submission forward and records the change.
func (s *SubmissionStatus) Transition(next SubmissionState, notes string, at time.Time) error {
	if !s.CurrentState.CanTransition(next) {
		return ErrInvalidTransition
	}
	s.CurrentState = next
	s.UpdatedAt = at
	s.StateHistory = append(s.StateHistory, StateChange{
		State:     next,
		Timestamp: at,
		Notes:     notes,
	})
	return nil
}

// IsDue reports whether a scheduled submission's send time has passed.
func (s *SubmissionStatus) IsDue(now time.Time) bool {
	return s.CurrentState == StateScheduled &&
		s.ScheduledSendTime != nil &&
		!s.ScheduledSendTime.After(now)
}

// PendingAction is a scheduled submission whose send time has arrived.
type PendingAction struct {
	SubmissionID           string    `json:"submission_id"`
	BusinessName           string    `json:"business_name"`
	ScheduledTime          time.Time `json:"scheduled_time"`
	RecommendedUnderwriter string    `json:"recommended_underwriter"`
	Action                 string    `json:"action"`
}

// ExecutiveSummary is the broker-facing one-page summary.
type ExecutiveSummary struct {
	Headline          string    `json:"headline"`
	BusinessSnapshot  string    `json:"business_snapshot"`
	RoutingRationale  string    `json:"routing_rationale"`
	NextAction        string    `json:"next_action"`
	BrokerTasks       []string  `json:"broker_tasks"`
	ClientContextNote string    `json:"client_context_note"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// SubmissionPackage is everything produced for one processed submission.
type SubmissionPackage struct {
	Status          *SubmissionStatus        `json:"status"`
	Summary         *ExecutiveSummary        `json:"summary"`
	Extraction      *DiscoveryCallExtraction `json:"extraction"`
	MappedForm      *MappedForm              `json:"mapped_form"`
	RiskProfile     RiskProfile              `json:"risk_profile"`
	Recommendations []RoutingRecommendation  `json:"recommendations"`
	Schedule        ScheduledAction          `json:"schedule"`
}
