// Package region maps US states to the macro-regions used for underwriter coverage.
package region

import (
	"strings"

	"submission-routing-engine/internal/models"
)

var stateNameToAbbrev = map[string]string{
	"ALABAMA": "AL", "ALASKA": "AK", "ARIZONA": "AZ", "ARKANSAS": "AR",
	"CALIFORNIA": "CA", "COLORADO": "CO", "CONNECTICUT": "CT", "DELAWARE": "DE",
	"FLORIDA": "FL", "GEORGIA": "GA", "HAWAII": "HI", "IDAHO": "ID",
	"ILLINOIS": "IL", "INDIANA": "IN", "IOWA": "IA", "KANSAS": "KS",
	"KENTUCKY": "KY", "LOUISIANA": "LA", "MAINE": "ME", "MARYLAND": "MD",
	"MASSACHUSETTS": "MA", "MICHIGAN": "MI", "MINNESOTA": "MN", "MISSISSIPPI": "MS",
	"MISSOURI": "MO", "MONTANA": "MT", "NEBRASKA": "NE", "NEVADA": "NV",
	"NEW HAMPSHIRE": "NH", "NEW JERSEY": "NJ", "NEW MEXICO": "NM", "NEW YORK": "NY",
	"NORTH CAROLINA": "NC", "NORTH DAKOTA": "ND", "OHIO": "OH", "OKLAHOMA": "OK",
	"OREGON": "OR", "PENNSYLVANIA": "PA", "RHODE ISLAND": "RI", "SOUTH CAROLINA": "SC",
	"SOUTH DAKOTA": "SD", "TENNESSEE": "TN", "TEXAS": "TX", "UTAH": "UT",
	"VERMONT": "VT", "VIRGINIA": "VA", "WASHINGTON": "WA", "WEST VIRGINIA": "WV",
	"WISCONSIN": "WI", "WYOMING": "WY",
}

// Each state belongs to exactly one region.
var regionStates = map[models.Region][]string{
	models.RegionNortheast: {"ME", "NH", "VT", "MA", "RI", "CT", "NY", "NJ", "PA"},
	models.RegionSoutheast: {"DE", "MD", "VA", "WV", "NC", "SC", "GA", "FL", "KY", "TN", "AL", "MS", "AR", "LA"},
	models.RegionMidwest:   {"OH", "MI", "IN", "IL", "WI", "MN", "IA", "MO", "ND", "SD", "NE", "KS"},
	models.RegionSouthwest: {"TX", "OK", "NM", "AZ"},
	models.RegionWest:      {"CO", "WY", "MT", "ID", "UT", "NV", "CA", "OR", "WA", "AK", "HI"},
}

var adjacency = map[models.Region][]models.Region{
	models.RegionNortheast: {models.RegionSoutheast, models.RegionMidwest},
	models.RegionSoutheast: {models.RegionNortheast, models.RegionMidwest, models.RegionSouthwest},
	models.RegionMidwest:   {models.RegionNortheast, models.RegionSoutheast, models.RegionSouthwest, models.RegionWest},
	models.RegionSouthwest: {models.RegionSoutheast, models.RegionMidwest, models.RegionWest},
	models.RegionWest:      {models.RegionMidwest, models.RegionSouthwest},
}

var stateToRegion = buildStateIndex()

func buildStateIndex() map[string]models.Region {
	index := make(map[string]models.Region, 50)
	for r, states := range regionStates {
		for _, s := range states {
			index[s] = r
		}
	}
	return index
}

// Resolve maps a state name or two-letter abbreviation to its macro-region.
// Matching is case-insensitive. Unrecognized input returns false.
func Resolve(state string) (models.Region, bool) {
	key := strings.ToUpper(strings.TrimSpace(state))
	if key == "" {
		return "", false
	}

	if abbrev, ok := stateNameToAbbrev[key]; ok {
		key = abbrev
	}

	r, ok := stateToRegion[key]
	return r, ok
}

// ResolvePtr is Resolve for nullable fields: nil in, nil out, nil on miss.
func ResolvePtr(state *string) *models.Region {
	if state == nil {
		return nil
	}
	r, ok := Resolve(*state)
	if !ok {
		return nil
	}
	return &r
}

// States returns the abbreviations belonging to a region.
func States(r models.Region) []string {
	states := regionStates[r]
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// Adjacent returns the declared neighbors of a region.
func Adjacent(r models.Region) []models.Region {
	neighbors := adjacency[r]
	out := make([]models.Region, len(neighbors))
	copy(out, neighbors)
	return out
}

// IsAdjacent reports whether b is a declared neighbor of a.
func IsAdjacent(a, b models.Region) bool {
	for _, n := range adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}
