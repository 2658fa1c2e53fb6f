package aggregate

import "github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"

// ColorRatio is reserves at year over reserves at the first year of the
// history, clamped to [0,1]. A zero or missing denominator, or a year with no
// data, gives 0.
func ColorRatio(tl *timeline.EntityTimeline, year int) float64 {
	if tl == nil || len(tl.History) == 0 {
		return 0
	}
	initial := tl.History[0].Reserves
	if initial <= 0 {
		return 0
	}
	p, ok := tl.At(year)
	if !ok {
		return 0
	}
	// Back-cast reserves can peak after the first year.
	return min(1, max(0, p.Reserves/initial))
}

// Tier classifies an entity for display. threshold is the ratio below which a
// non-depleted entity counts as critical.
func Tier(tl *timeline.EntityTimeline, year int, threshold float64) DisplayTier {
	p, ok := tl.At(year)
	switch {
	case !ok:
		return TierNoData
	case p.IsDepleted:
		return TierDepleted
	case ColorRatio(tl, year) < threshold:
		return TierCritical
	default:
		return TierHealthy
	}
}

// CriticalCount is the number of entities in the critical tier at year.
func CriticalCount(s *timeline.WorldSnapshot, year int, threshold float64) int {
	n := 0
	for _, tl := range s.Entities {
		if Tier(tl, year, threshold) == TierCritical {
			n++
		}
	}
	return n
}

// Inspect returns the display view of one entity at year.
func Inspect(tl *timeline.EntityTimeline, year int, threshold float64) EntityView {
	v := EntityView{
		ID:    tl.ID,
		Name:  tl.Name,
		Year:  year,
		Ratio: ColorRatio(tl, year),
		Tier:  Tier(tl, year, threshold),
	}
	if p, ok := tl.At(year); ok {
		v.Point = &p
	}
	return v
}
