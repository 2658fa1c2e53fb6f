package seed

import (
	"fmt"
	"strings"
)

// Resource selects the seed-parameter scaling applied before projection.
type Resource string

const (
	Oil  Resource = "Oil"
	Coal Resource = "Coal"
	Gas  Resource = "Gas"
)

// Resources lists every resource in display order.
var Resources = []Resource{Oil, Coal, Gas}

// ParseResource accepts a resource name in any letter case.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q (want oil, coal or gas)", s)
}

// Scale returns the multipliers applied to baseline reserves and consumption.
// Coal and gas are measured in larger units than oil.
func (r Resource) Scale() (reserves, consumption float64) {
	switch r {
	case Coal:
		return 15, 5
	case Gas:
		return 3, 2
	default:
		return 1, 1
	}
}

// Unit is the display unit for reserves and consumption.
func (r Resource) Unit() string {
	switch r {
	case Coal:
		return "Million Tonnes"
	case Gas:
		return "Trillion Cubic Meters"
	default:
		return "Billion Barrels"
	}
}

// Params are the present-day values one entity is projected from.
type Params struct {
	BaselineReserves    float64 `yaml:"reserves" json:"baseline_reserves"`
	BaselineConsumption float64 `yaml:"consumption" json:"baseline_consumption"`
	AnnualGrowthRate    float64 `yaml:"growth" json:"annual_growth_rate"`
}

// Scaled returns the params with reserves and consumption multiplied by the
// resource factors. The growth rate is unit-free and left alone.
func (p Params) Scaled(r Resource) Params {
	rm, cm := r.Scale()
	return Params{
		BaselineReserves:    p.BaselineReserves * rm,
		BaselineConsumption: p.BaselineConsumption * cm,
		AnnualGrowthRate:    p.AnnualGrowthRate,
	}
}

// Entry is one row of the seed table, keyed by an ISO-3166 alpha-3 code.
type Entry struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Params `yaml:",inline"`
}

// DisplayName falls back to the id when no name is set.
func (e Entry) DisplayName() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}

// Table is the reference dataset shared by all projections. Entries keep
// their file order; the engine draws noise in that order.
type Table struct {
	Version  string  `yaml:"version" json:"version"`
	Entities []Entry `yaml:"entities" json:"entities"`
}

// Lookup returns the entry with the given id.
func (t Table) Lookup(id string) (Entry, bool) {
	for _, e := range t.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len is the number of entities in the table.
func (t Table) Len() int { return len(t.Entities) }
