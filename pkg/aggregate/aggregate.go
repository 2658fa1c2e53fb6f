package aggregate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// ComputeGlobalStats sums every entity's point at year. Entities with no
// point for that year contribute nothing.
func ComputeGlobalStats(s *timeline.WorldSnapshot, year int) Stats {
	ids := s.IDs()
	reserves := make([]float64, 0, len(ids))
	consumption := make([]float64, 0, len(ids))
	depleted := 0

	for _, id := range ids {
		p, ok := s.Entities[id].At(year)
		if !ok {
			continue
		}
		reserves = append(reserves, p.Reserves)
		consumption = append(consumption, p.Consumption)
		if p.IsDepleted {
			depleted++
		}
	}

	return Stats{
		Year:             year,
		TotalReserves:    floats.Sum(reserves),
		TotalConsumption: floats.Sum(consumption),
		DepletedCount:    depleted,
	}
}

// ComputeGlobalSeries returns one aggregate per year of the snapshot's range,
// ascending and without gaps.
func ComputeGlobalSeries(s *timeline.WorldSnapshot) []GlobalYearAggregate {
	series := make([]GlobalYearAggregate, 0, s.Range.Years())
	for year := s.Range.Start; year <= s.Range.End; year++ {
		st := ComputeGlobalStats(s, year)
		series = append(series, GlobalYearAggregate{
			Year:             year,
			TotalReserves:    st.TotalReserves,
			TotalConsumption: st.TotalConsumption,
		})
	}
	return series
}

// GlobalDepletionYear is the first year whose summed reserves reach zero.
// It is a property of the aggregate curve, not of any single entity, and can
// be absent while individual entities are already depleted.
func GlobalDepletionYear(series []GlobalYearAggregate) (int, bool) {
	for _, a := range series {
		if a.TotalReserves <= 0 {
			return a.Year, true
		}
	}
	return 0, false
}

// AverageDepletionYear is the mean first-depletion year over the entities
// that deplete inside the range.
func AverageDepletionYear(s *timeline.WorldSnapshot) (float64, bool) {
	var years []float64
	for _, id := range s.IDs() {
		if y, ok := s.Entities[id].DepletionYear(); ok {
			years = append(years, float64(y))
		}
	}
	if len(years) == 0 {
		return 0, false
	}
	return stat.Mean(years, nil), true
}

// Summarize collects the statistics a dashboard shows for one year.
func Summarize(s *timeline.WorldSnapshot, year int, threshold float64) Summary {
	sum := Summary{
		Stats:         ComputeGlobalStats(s, year),
		Resource:      string(s.Resource),
		Unit:          s.Resource.Unit(),
		CriticalCount: CriticalCount(s, year, threshold),
		EntityCount:   len(s.Entities),
	}
	if y, ok := GlobalDepletionYear(ComputeGlobalSeries(s)); ok {
		sum.GlobalDepletionYear = &y
	}
	if avg, ok := AverageDepletionYear(s); ok {
		sum.AverageDepletionYear = &avg
	}
	return sum
}
