// Package underwriters holds the read-only underwriter reference collection.
package underwriters

import (
	"context"
	"fmt"
	"strings"

	"submission-routing-engine/internal/models"
)

// Store is an immutable, validated collection of underwriters.
// It is safe for concurrent use.
type Store struct {
	underwriters []*models.Underwriter
}

// NewStore validates every underwriter and builds a store.
// The entries are copied; later changes to the input do not affect the store.
func NewStore(list []*models.Underwriter) (*Store, error) {
	copied := make([]*models.Underwriter, 0, len(list))
	for i, u := range list {
		if u == nil {
			return nil, fmt.Errorf("underwriter %d: nil entry", i)
		}
		if err := models.ValidateUnderwriter(u); err != nil {
			return nil, fmt.Errorf("underwriter %d (%s): %w", i, u.Name, err)
		}
		copied = append(copied, cloneUnderwriter(u))
	}
	return &Store{underwriters: copied}, nil
}

// MustSeedStore returns a store of the default underwriters.
func MustSeedStore() *Store {
	store, err := NewStore(Seed())
	if err != nil {
		panic(fmt.Sprintf("invalid seed underwriters: %v", err))
	}
	return store
}

// Len returns the number of underwriters.
func (s *Store) Len() int {
	return len(s.underwriters)
}

// All returns a copy of every underwriter, in load order.
func (s *Store) All() []*models.Underwriter {
	return s.filter(func(*models.Underwriter) bool { return true })
}

// ListUnderwriters returns every underwriter for a routing call.
func (s *Store) ListUnderwriters(_ context.Context) ([]*models.Underwriter, error) {
	return s.All(), nil
}

// ByRegion returns underwriters covering the region.
func (s *Store) ByRegion(r models.Region) []*models.Underwriter {
	return s.filter(func(u *models.Underwriter) bool { return u.CoversRegion(r) })
}

// ByNAICS returns underwriters with the exact NAICS specialty.
func (s *Store) ByNAICS(code string) []*models.Underwriter {
	return s.filter(func(u *models.Underwriter) bool { return u.HasSpecialty(code) })
}

// ByAppetite returns underwriters whose appetite mentions the risk type,
// matched as a case-insensitive substring.
func (s *Store) ByAppetite(riskType string) []*models.Underwriter {
	needle := strings.ToLower(strings.TrimSpace(riskType))
	if needle == "" {
		return []*models.Underwriter{}
	}
	return s.filter(func(u *models.Underwriter) bool {
		for _, a := range u.RiskAppetite {
			if strings.Contains(strings.ToLower(a), needle) {
				return true
			}
		}
		return false
	})
}

// Available returns underwriters at or below the workload level.
func (s *Store) Available(maxWorkload models.Workload) []*models.Underwriter {
	maxLevel := maxWorkload.Level()
	return s.filter(func(u *models.Underwriter) bool {
		return u.CurrentWorkload.Level() <= maxLevel
	})
}

func (s *Store) filter(keep func(*models.Underwriter) bool) []*models.Underwriter {
	out := make([]*models.Underwriter, 0, len(s.underwriters))
	for _, u := range s.underwriters {
		if keep(u) {
			out = append(out, cloneUnderwriter(u))
		}
	}
	return out
}

func cloneUnderwriter(u *models.Underwriter) *models.Underwriter {
	c := *u
	c.Regions = append([]models.Region(nil), u.Regions...)
	c.NAICSSpecialties = append([]string(nil), u.NAICSSpecialties...)
	c.RiskAppetite = append([]string(nil), u.RiskAppetite...)
	c.RiskAversions = append([]string(nil), u.RiskAversions...)
	return &c
}
