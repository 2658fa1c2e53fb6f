package aggregate

import (
	"testing"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

func TestColorRatio(t *testing.T) {
	s := snapshotOf(entry("AAA", 100, 10, 0))
	tl := s.Entities["AAA"]

	if r := ColorRatio(tl, timeline.StartYear); r != 1 {
		t.Errorf("ratio at start = %v, want 1", r)
	}
	initial := 100 + 10*float64(timeline.PivotYear-timeline.StartYear)
	if r := ColorRatio(tl, timeline.PivotYear); r != 90/initial {
		t.Errorf("ratio at pivot = %v, want %v", r, 90/initial)
	}
	if r := ColorRatio(tl, timeline.EndYear); r != 0 {
		t.Errorf("ratio after depletion = %v, want 0", r)
	}
	if r := ColorRatio(tl, timeline.EndYear+5); r != 0 {
		t.Errorf("ratio outside range = %v, want 0", r)
	}
}

func TestColorRatioZeroStart(t *testing.T) {
	s := snapshotOf(entry("ZZZ", 0, 0, 0))
	tl := s.Entities["ZZZ"]

	if start, _ := tl.At(timeline.StartYear); start.Reserves != 0 {
		t.Fatalf("start reserves = %v, want 0", start.Reserves)
	}
	for year := timeline.StartYear; year <= timeline.EndYear; year++ {
		if r := ColorRatio(tl, year); r != 0 {
			t.Errorf("ratio at %d = %v, want 0", year, r)
		}
	}
	if r := ColorRatio(nil, timeline.PivotYear); r != 0 {
		t.Errorf("nil timeline ratio = %v, want 0", r)
	}
}

func TestColorRatioBounded(t *testing.T) {
	for _, res := range seed.Resources {
		rng, _ := timeline.NewSeededRNG(21)
		s := timeline.Generate(seed.Default(), res, rng)
		for _, id := range s.IDs() {
			for year := s.Range.Start; year <= s.Range.End; year++ {
				r := ColorRatio(s.Entities[id], year)
				if r < 0 || r > 1 {
					t.Errorf("%s %s %d ratio = %v outside [0,1]", res, id, year, r)
				}
			}
		}
	}
}

func TestTier(t *testing.T) {
	s := snapshotOf(entry("AAA", 100, 10, 0), entry("CCC", 1000, 1, 0))
	aaa := s.Entities["AAA"]
	ccc := s.Entities["CCC"]

	tests := []struct {
		name string
		tl   *timeline.EntityTimeline
		year int
		want DisplayTier
	}{
		{"out of range", aaa, timeline.EndYear + 1, TierNoData},
		{"depleted", aaa, timeline.EndYear, TierDepleted},
		{"critical", aaa, timeline.PivotYear + 1, TierCritical},
		{"healthy", ccc, timeline.PivotYear, TierHealthy},
	}
	for _, tt := range tests {
		if got := Tier(tt.tl, tt.year, DefaultCriticalThreshold); got != tt.want {
			t.Errorf("%s: Tier = %s, want %s", tt.name, got, tt.want)
		}
	}

	if n := CriticalCount(s, timeline.PivotYear+1, DefaultCriticalThreshold); n != 1 {
		t.Errorf("CriticalCount = %d, want 1", n)
	}
}

func TestInspect(t *testing.T) {
	s := snapshotOf(entry("AAA", 100, 10, 0))
	tl := s.Entities["AAA"]

	v := Inspect(tl, timeline.PivotYear, DefaultCriticalThreshold)
	if v.Point == nil || v.Point.Reserves != 90 {
		t.Errorf("point = %+v, want reserves 90", v.Point)
	}
	if v.ID != "AAA" || v.Name != "AAA" {
		t.Errorf("id/name = %q/%q", v.ID, v.Name)
	}

	v = Inspect(tl, 1700, DefaultCriticalThreshold)
	if v.Point != nil || v.Tier != TierNoData || v.Ratio != 0 {
		t.Errorf("out-of-range view = %+v, want no data", v)
	}
}
