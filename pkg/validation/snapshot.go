package validation

import (
	"fmt"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// ValidateSnapshot re-checks the projection invariants on a generated
// snapshot: full year coverage, non-negative reserves, terminal depletion and
// a FirstDepletionYear that matches the history.
func ValidateSnapshot(s *timeline.WorldSnapshot) *Report {
	r := NewReport()
	for _, id := range s.IDs() {
		validateTimeline(s.Entities[id], s.Range, r)
	}
	return r
}

func validateTimeline(tl *timeline.EntityTimeline, rng timeline.Range, r *Report) {
	if len(tl.History) != rng.Years() {
		r.AddError(Result{
			Level:       LevelProjection,
			Message:     fmt.Sprintf("%s: history has %d years", tl.ID, len(tl.History)),
			EntityID:    tl.ID,
			ActualValue: len(tl.History),
			Expected:    fmt.Sprintf("%d (%d-%d)", rng.Years(), rng.Start, rng.End),
		})
		return
	}

	first := 0
	depleted := false
	for i, p := range tl.History {
		if p.Year != rng.Start+i {
			r.AddError(Result{
				Level:       LevelProjection,
				Message:     fmt.Sprintf("%s: history out of order at index %d", tl.ID, i),
				EntityID:    tl.ID,
				Year:        p.Year,
				ActualValue: p.Year,
				Expected:    fmt.Sprint(rng.Start + i),
			})
			return
		}
		if p.Reserves < 0 {
			r.AddError(Result{
				Level:       LevelProjection,
				Message:     fmt.Sprintf("%s: negative reserves in %d", tl.ID, p.Year),
				EntityID:    tl.ID,
				Year:        p.Year,
				ActualValue: p.Reserves,
				Expected:    ">= 0",
			})
		}
		if p.IsDepleted && p.Reserves != 0 {
			r.AddError(Result{
				Level:       LevelProjection,
				Message:     fmt.Sprintf("%s: depleted in %d with reserves left", tl.ID, p.Year),
				EntityID:    tl.ID,
				Year:        p.Year,
				ActualValue: p.Reserves,
				Expected:    "0",
			})
		}
		if p.Year < rng.Pivot {
			continue
		}
		if depleted && !p.IsDepleted {
			r.AddError(Result{
				Level:    LevelProjection,
				Message:  fmt.Sprintf("%s: recovers from depletion in %d", tl.ID, p.Year),
				EntityID: tl.ID,
				Year:     p.Year,
			})
		}
		if p.IsDepleted && first == 0 {
			first = p.Year
		}
		depleted = p.IsDepleted
	}

	got, ok := tl.DepletionYear()
	switch {
	case first == 0 && ok:
		r.AddError(Result{
			Level:       LevelProjection,
			Message:     fmt.Sprintf("%s: first depletion year set but never depleted", tl.ID),
			EntityID:    tl.ID,
			ActualValue: got,
			Expected:    "none",
		})
	case first != 0 && (!ok || got != first):
		r.AddError(Result{
			Level:       LevelProjection,
			Message:     fmt.Sprintf("%s: first depletion year does not match history", tl.ID),
			EntityID:    tl.ID,
			ActualValue: tl.FirstDepletionYear,
			Expected:    fmt.Sprint(first),
		})
	}
}
