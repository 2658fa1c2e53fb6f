package timeline

import (
	"math"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
)

// Option adjusts a Generate call.
type Option func(*options)

type options struct {
	rng Range
}

// WithRange projects over r instead of DefaultRange. r must come from NewRange
// or satisfy the same ordering.
func WithRange(r Range) Option {
	return func(o *options) { o.rng = r }
}

// Generate builds a snapshot for every entity in table. Baselines are scaled
// for resource, then each entity gets one growth perturbation drawn from
// noise in table order. The result depends only on the arguments.
func Generate(table seed.Table, resource seed.Resource, noise Noise, opts ...Option) *WorldSnapshot {
	o := options{rng: DefaultRange()}
	for _, opt := range opts {
		opt(&o)
	}

	snap := &WorldSnapshot{
		Resource: resource,
		Range:    o.rng,
		Entities: make(map[string]*EntityTimeline, table.Len()),
	}
	for _, e := range table.Entities {
		p := e.Params.Scaled(resource)
		growth := p.AnnualGrowthRate + perturbation(noise)
		tl := Project(p, growth, o.rng)
		tl.ID = e.ID
		tl.Name = e.DisplayName()
		snap.Entities[e.ID] = tl
	}
	return snap
}

// level is the state carried from one projected year into the next.
type level struct {
	reserves    float64
	consumption float64
	depleted    bool
}

// advance applies one year of compound growth and draws the year's
// consumption from reserves. Reserves are stored clamped at zero and the
// next year continues from the clamped value. Once depleted, an entity stays
// at zero whatever the sign of its growth rate.
func (l level) advance(growth float64) level {
	consumption := l.consumption * (1 + growth)
	remaining := l.reserves - consumption
	if l.depleted || remaining <= 0 {
		return level{consumption: consumption, depleted: true}
	}
	return level{reserves: remaining, consumption: consumption}
}

func (l level) point(year int) YearPoint {
	return YearPoint{
		Year:        year,
		Consumption: l.consumption,
		Reserves:    l.reserves,
		IsDepleted:  l.depleted,
	}
}

// Project computes one entity's history from already-scaled params and an
// effective growth rate. ID and Name are left for the caller to fill.
func Project(p seed.Params, growth float64, rng Range) *EntityTimeline {
	tl := &EntityTimeline{
		GrowthRate: growth,
		History:    make([]YearPoint, 0, rng.Years()),
	}

	for year := rng.Start; year < rng.Pivot-1; year++ {
		tl.History = append(tl.History, backcast(p, growth, rng.Pivot-year, year))
	}

	cur := level{
		reserves:    math.Max(0, p.BaselineReserves),
		consumption: p.BaselineConsumption,
		depleted:    p.BaselineReserves <= 0,
	}
	tl.History = append(tl.History, cur.point(rng.Pivot-1))

	for year := rng.Pivot; year <= rng.End; year++ {
		cur = cur.advance(growth)
		tl.History = append(tl.History, cur.point(year))
		if cur.depleted && tl.FirstDepletionYear == nil {
			y := year
			tl.FirstDepletionYear = &y
		}
	}
	return tl
}

// backcast reconstructs a historical year by compounding baseline
// consumption backwards and adding back a flat-rate estimate of what was
// consumed since. Consumption is never clamped; under negative growth it can
// exceed anything physically plausible in the deep past.
func backcast(p seed.Params, growth float64, yearsAgo, year int) YearPoint {
	consumption := p.BaselineConsumption
	if d := math.Pow(1+growth, float64(yearsAgo)); d != 0 {
		consumption = p.BaselineConsumption / d
	}
	return YearPoint{
		Year:        year,
		Consumption: consumption,
		Reserves:    math.Max(0, p.BaselineReserves+consumption*float64(yearsAgo)),
		IsDepleted:  false,
	}
}
