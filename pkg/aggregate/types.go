package aggregate

import "github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"

// Stats are the cross-entity totals for one year.
type Stats struct {
	Year             int     `json:"year"`
	TotalReserves    float64 `json:"total_reserves"`
	TotalConsumption float64 `json:"total_consumption"`
	DepletedCount    int     `json:"depleted_count"`
}

// GlobalYearAggregate is one point of the global trend series.
type GlobalYearAggregate struct {
	Year             int     `json:"year"`
	TotalReserves    float64 `json:"total_reserves"`
	TotalConsumption float64 `json:"total_consumption"`
}

// DisplayTier is the map-style state of one entity in one year.
type DisplayTier string

const (
	TierNoData   DisplayTier = "no_data"
	TierDepleted DisplayTier = "depleted"
	TierCritical DisplayTier = "critical"
	TierHealthy  DisplayTier = "healthy"
)

// DefaultCriticalThreshold is the ratio below which a non-depleted entity is
// styled as critical.
const DefaultCriticalThreshold = 0.2

// Summary bundles the panel statistics for one year of a snapshot.
type Summary struct {
	Stats
	Resource             string   `json:"resource"`
	Unit                 string   `json:"unit"`
	GlobalDepletionYear  *int     `json:"global_depletion_year"`
	AverageDepletionYear *float64 `json:"average_depletion_year"`
	CriticalCount        int      `json:"critical_count"`
	EntityCount          int      `json:"entity_count"`
}

// EntityView is one entity's state for one year as the presentation layer
// needs it. Point is nil when the year has no data.
type EntityView struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Year  int                 `json:"year"`
	Point *timeline.YearPoint `json:"point"`
	Ratio float64             `json:"ratio"`
	Tier  DisplayTier         `json:"tier"`
}
