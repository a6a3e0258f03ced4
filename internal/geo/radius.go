package geo

import (
	"sort"

	"github.com/ozleads/lead-engine/internal/gazetteer"
)

// SuburbDistance is a suburb annotated with its distance from a query base.
type SuburbDistance struct {
	gazetteer.Suburb
	DistanceKm float64 `json:"distance_km"`
}

// RadiusOptions filters and truncates a radius query.
type RadiusOptions struct {
	State  string
	Region string
	Limit  int
}

// Engine answers distance and aggregation queries over a gazetteer. All
// queries are read-only scans and safe for concurrent callers.
type Engine struct {
	gaz *gazetteer.Gazetteer
}

// NewEngine creates an Engine over the given gazetteer.
func NewEngine(gaz *gazetteer.Gazetteer) *Engine {
	return &Engine{gaz: gaz}
}

// SuburbsInRadius returns every suburb within radiusKm of base (inclusive
// boundary), sorted ascending by distance. The limit, when set, truncates
// the sorted result; sorting the full filtered set first keeps truncation
// from dropping nearer suburbs.
func (e *Engine) SuburbsInRadius(base gazetteer.Suburb, radiusKm float64, opts RadiusOptions) ([]SuburbDistance, error) {
	suburbs, err := e.gaz.Suburbs()
	if err != nil {
		return nil, err
	}

	var results []SuburbDistance
	for _, s := range suburbs {
		if opts.State != "" && s.State != opts.State {
			continue
		}
		if opts.Region != "" && s.Region != opts.Region {
			continue
		}

		distance := Haversine(base.Lat, base.Lng, s.Lat, s.Lng)
		if distance <= radiusKm {
			results = append(results, SuburbDistance{Suburb: s, DistanceKm: round1(distance)})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}
