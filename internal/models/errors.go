// Package models defines the data structures for the submission routing engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrEmptyUnderwriterName  = errors.New("underwriter name cannot be empty")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidAcceptanceRate = errors.New("acceptance rate must be between 0 and 1")
	ErrInvalidTurnaround     = errors.New("turnaround days must be greater than 0 and at most 30")
	ErrInvalidWorkload       = errors.New("invalid workload level")
	ErrUnknownRegion         = errors.New("unknown region")
	ErrContradictoryAppetite = errors.New("entry listed in both risk appetite and risk aversions")

	ErrInvalidTransition  = errors.New("invalid submission state transition")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// MaxTurnaroundDays bounds an underwriter's average turnaround.
const MaxTurnaroundDays = 30

// NormalizeWorkload converts various workload spellings to standard values.
func NormalizeWorkload(level string) Workload {
	normalized := strings.ToLower(strings.TrimSpace(level))

	workloadMap := map[string]Workload{
		"low":      WorkloadLow,
		"light":    WorkloadLow,
		"medium":   WorkloadMedium,
		"moderate": WorkloadMedium,
		"normal":   WorkloadMedium,
		"high":     WorkloadHigh,
		"heavy":    WorkloadHigh,
		"full":     WorkloadHigh,
	}

	if mapped, ok := workloadMap[normalized]; ok {
		return mapped
	}

	// Return as-is if no mapping found (will fail validation)
	return Workload(normalized)
}

// ValidateUnderwriter validates reference data before it reaches the scorer.
func ValidateUnderwriter(u *Underwriter) error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUnderwriterName
	}

	if u.Email != "" && !isValidEmail(u.Email) {
		return ErrInvalidEmail
	}

	if u.AcceptanceRate < 0 || u.AcceptanceRate > 1 {
		return ErrInvalidAcceptanceRate
	}

	if u.AvgTurnaroundDays <= 0 || u.AvgTurnaroundDays > MaxTurnaroundDays {
		return ErrInvalidTurnaround
	}

	if !u.CurrentWorkload.IsValid() {
		return ErrInvalidWorkload
	}

	for _, r := range u.Regions {
		if !r.IsValid() {
			return ErrUnknownRegion
		}
	}

	for _, entry := range u.RiskAppetite {
		if u.Avoids(entry) {
			return ErrContradictoryAppetite
		}
	}

	return nil
}

// isValidEmail performs basic email validation.
func isValidEmail(email string) bool {
	// Basic check: must contain @ and have content before and after
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Must have a dot after @
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}

	return true
}
