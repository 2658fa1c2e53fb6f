package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
)

// Default projection window. PivotYear is the first projected year; the
// year before it is seeded from the baseline values.
const (
	StartYear = 1990
	PivotYear = 2024
	EndYear   = 2050
)

// ErrNoData is returned for year lookups outside a timeline's range.
var ErrNoData = errors.New("no data for year")

// Range is the inclusive year window a snapshot covers.
type Range struct {
	Start int `json:"start"`
	Pivot int `json:"pivot"`
	End   int `json:"end"`
}

// DefaultRange returns 1990..2050 with 2024 as the first projected year.
func DefaultRange() Range {
	return Range{Start: StartYear, Pivot: PivotYear, End: EndYear}
}

// NewRange checks that start < pivot <= end.
func NewRange(start, pivot, end int) (Range, error) {
	if start >= pivot {
		return Range{}, fmt.Errorf("start year %d must be before pivot year %d", start, pivot)
	}
	if pivot > end {
		return Range{}, fmt.Errorf("pivot year %d must not be after end year %d", pivot, end)
	}
	return Range{Start: start, Pivot: pivot, End: end}, nil
}

// Contains reports whether year falls inside the window.
func (r Range) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Years is the number of calendar years in the window.
func (r Range) Years() int {
	return r.End - r.Start + 1
}

// YearPoint is one entity's state for one calendar year.
type YearPoint struct {
	Year        int     `json:"year"`
	Consumption float64 `json:"consumption"`
	Reserves    float64 `json:"reserves"`
	IsDepleted  bool    `json:"is_depleted"`
}

// EntityTimeline is one entity's trajectory across the whole range.
// History is ordered by year with exactly one point per year.
type EntityTimeline struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	GrowthRate         float64     `json:"growth_rate"`
	History            []YearPoint `json:"history"`
	FirstDepletionYear *int        `json:"first_depletion_year"`
}

// At returns the point for year, or false when the year is outside the history.
func (tl *EntityTimeline) At(year int) (YearPoint, bool) {
	if tl == nil || len(tl.History) == 0 {
		return YearPoint{}, false
	}
	i := year - tl.History[0].Year
	if i < 0 || i >= len(tl.History) {
		return YearPoint{}, false
	}
	return tl.History[i], true
}

// Lookup is At with ErrNoData in place of the boolean.
func (tl *EntityTimeline) Lookup(year int) (YearPoint, error) {
	p, ok := tl.At(year)
	if !ok {
		return YearPoint{}, fmt.Errorf("%s %d: %w", tl.ID, year, ErrNoData)
	}
	return p, nil
}

// DepletionYear returns FirstDepletionYear as a value pair.
func (tl *EntityTimeline) DepletionYear() (int, bool) {
	if tl.FirstDepletionYear == nil {
		return 0, false
	}
	return *tl.FirstDepletionYear, true
}

// WorldSnapshot holds every entity's timeline for one resource selection.
// A snapshot is never mutated after Generate returns it.
type WorldSnapshot struct {
	Resource seed.Resource              `json:"resource"`
	Range    Range                      `json:"range"`
	Entities map[string]*EntityTimeline `json:"entities"`
}

// IDs returns the entity ids in sorted order.
func (s *WorldSnapshot) IDs() []string {
	ids := make([]string, 0, len(s.Entities))
	for id := range s.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entity returns the timeline for id.
func (s *WorldSnapshot) Entity(id string) (*EntityTimeline, bool) {
	tl, ok := s.Entities[id]
	return tl, ok
}
