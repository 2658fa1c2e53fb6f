package validation

import (
	"fmt"
	"math"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// ValidateTable checks a seed table before any projection runs.
func ValidateTable(t seed.Table) *Report {
	r := NewReport()

	if t.Len() == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "seed table must contain at least one entity",
			Path:     "entities",
			Expected: "at least 1 entity",
		})
		return r
	}

	seen := make(map[string]int, t.Len())
	for i, e := range t.Entities {
		validateID(i, e, seen, r)
		validateParams(i, e, r)
	}

	r.AddInfo(Result{
		Level:   LevelSchema,
		Message: fmt.Sprintf("%d entities in seed table", t.Len()),
		Path:    "entities",
	})
	return r
}

func validateID(i int, e seed.Entry, seen map[string]int, r *Report) {
	path := fmt.Sprintf("entities[%d].id", i)
	if e.ID == "" {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("entities[%d]: id must not be empty", i),
			Path:     path,
			Expected: "ISO-3166 alpha-3 code",
		})
		return
	}
	if prev, dup := seen[e.ID]; dup {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("duplicate id %s (first at entities[%d])", e.ID, prev),
			Path:        path,
			EntityID:    e.ID,
			ActualValue: e.ID,
		})
		return
	}
	seen[e.ID] = i

	if len(e.ID) != 3 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("id %q is not a three-letter code", e.ID),
			Path:        path,
			EntityID:    e.ID,
			ActualValue: e.ID,
			Expected:    "ISO-3166 alpha-3 code",
		})
	}
}

func validateParams(i int, e seed.Entry, r *Report) {
	if e.BaselineReserves < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: reserves must be non-negative", e.ID),
			Path:        fmt.Sprintf("entities[%d].reserves", i),
			EntityID:    e.ID,
			ActualValue: e.BaselineReserves,
			Expected:    ">= 0",
		})
	}
	if e.BaselineConsumption < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: consumption must be non-negative", e.ID),
			Path:        fmt.Sprintf("entities[%d].consumption", i),
			EntityID:    e.ID,
			ActualValue: e.BaselineConsumption,
			Expected:    ">= 0",
		})
	}

	g := e.AnnualGrowthRate
	path := fmt.Sprintf("entities[%d].growth", i)
	switch {
	case math.IsNaN(g) || math.IsInf(g, 0):
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: growth must be a finite number", e.ID),
			Path:        path,
			EntityID:    e.ID,
			ActualValue: fmt.Sprint(g),
		})
	case g <= -1:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: growth %.4f would make back-cast consumption undefined", e.ID, g),
			Path:        path,
			EntityID:    e.ID,
			ActualValue: g,
			Expected:    "> -1",
		})
	case g-timeline.NoiseAmplitude <= -1:
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: growth %.4f can cross -1 once noise is applied", e.ID, g),
			Path:        path,
			EntityID:    e.ID,
			ActualValue: g,
			Expected:    fmt.Sprintf("> %.1f", -1+timeline.NoiseAmplitude),
			Suggestions: []string{"Run with a fixed seed or raise the growth rate"},
		})
	}

	if e.BaselineReserves == 0 && e.BaselineConsumption > 0 {
		r.AddInfo(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s has no reserves and is depleted from the first projected year", e.ID),
			Path:     fmt.Sprintf("entities[%d].reserves", i),
			EntityID: e.ID,
		})
	}
}
