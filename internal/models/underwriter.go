// Package models defines the data structures for the submission routing engine.
package models

import (
	"strings"
	"time"
)

// Region is one of the fixed US macro-regions used for underwriter coverage.
type Region string

const (
	RegionNortheast Region = "Northeast"
	RegionSoutheast Region = "Southeast"
	RegionMidwest   Region = "Midwest"
	RegionSouthwest Region = "Southwest"
	RegionWest      Region = "West"
)

// ValidRegions returns all macro-regions.
func ValidRegions() []Region {
	return []Region{
		RegionNortheast,
		RegionSoutheast,
		RegionMidwest,
		RegionSouthwest,
		RegionWest,
	}
}

// IsValid checks if the region is one of the fixed macro-regions.
func (r Region) IsValid() bool {
	for _, valid := range ValidRegions() {
		if r == valid {
			return true
		}
	}
	return false
}

// NormalizeRegion matches a region name case-insensitively.
// Unknown names are returned as-is and fail IsValid.
func NormalizeRegion(name string) Region {
	trimmed := strings.TrimSpace(name)
	for _, r := range ValidRegions() {
		if strings.EqualFold(trimmed, string(r)) {
			return r
		}
	}
	return Region(trimmed)
}

// Workload represents an underwriter's current capacity.
type Workload string

const (
	WorkloadLow    Workload = "low"
	WorkloadMedium Workload = "medium"
	WorkloadHigh   Workload = "high"
)

// ValidWorkloads returns all workload levels, lightest first.
func ValidWorkloads() []Workload {
	return []Workload{WorkloadLow, WorkloadMedium, WorkloadHigh}
}

// IsValid checks if the workload level is valid.
func (w Workload) IsValid() bool {
	return w.Level() > 0
}

// Level orders workloads: low=1, medium=2, high=3, unknown=0.
func (w Workload) Level() int {
	switch w {
	case WorkloadLow:
		return 1
	case WorkloadMedium:
		return 2
	case WorkloadHigh:
		return 3
	default:
		return 0
	}
}

// Underwriter is read-only reference data describing a carrier underwriter.
type Underwriter struct {
	ID                int64     `json:"id,omitempty" db:"id"`
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email" db:"email"`
	Phone             string    `json:"phone,omitempty" db:"phone"`
	Carrier           string    `json:"carrier,omitempty" db:"carrier"`
	Regions           []Region  `json:"regions" db:"regions"`
	NAICSSpecialties  []string  `json:"naics_specialties" db:"naics_specialties"`
	RiskAppetite      []string  `json:"risk_appetite" db:"risk_appetite"`
	RiskAversions     []string  `json:"risk_aversions" db:"risk_aversions"`
	AvgTurnaroundDays float64   `json:"avg_turnaround_days" db:"avg_turnaround_days"`
	AcceptanceRate    float64   `json:"acceptance_rate" db:"acceptance_rate"`
	CurrentWorkload   Workload  `json:"current_workload" db:"current_workload"`
	Notes             string    `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CoversRegion reports whether the underwriter lists the region.
func (u *Underwriter) CoversRegion(region Region) bool {
	for _, r := range u.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// HasSpecialty reports whether the NAICS code is an exact specialty.
func (u *Underwriter) HasSpecialty(code string) bool {
	return containsString(u.NAICSSpecialties, code)
}

// HasAppetite reports whether the entry is in the appetite set.
func (u *Underwriter) HasAppetite(entry string) bool {
	return containsString(u.RiskAppetite, entry)
}

// Avoids reports whether the entry is in the aversion set.
func (u *Underwriter) Avoids(entry string) bool {
	return containsString(u.RiskAversions, entry)
}

// UnderwriterSummary is a lightweight view for API listings.
type UnderwriterSummary struct {
	ID                int64    `json:"id,omitempty"`
	Name              string   `json:"name"`
	Carrier           string   `json:"carrier,omitempty"`
	Regions           []Region `json:"regions"`
	AvgTurnaroundDays float64  `json:"avg_turnaround_days"`
	AcceptanceRate    float64  `json:"acceptance_rate"`
	CurrentWorkload   Workload `json:"current_workload"`
}

// ToSummary converts an Underwriter to UnderwriterSummary.
func (u *Underwriter) ToSummary() UnderwriterSummary {
	return UnderwriterSummary{
		ID:                u.ID,
		Name:              u.Name,
		Carrier:           u.Carrier,
		Regions:           u.Regions,
		AvgTurnaroundDays: u.AvgTurnaroundDays,
		AcceptanceRate:    u.AcceptanceRate,
		CurrentWorkload:   u.CurrentWorkload,
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
