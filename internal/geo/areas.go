package geo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ozleads/lead-engine/internal/gazetteer"
)

// maxSampleSuburbs caps the sample names returned per area.
const maxSampleSuburbs = 5

// Center is an area centroid.
type Center struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RegionArea summarizes one area within a region.
type RegionArea struct {
	Area          string   `json:"area"`
	SuburbCount   int      `json:"suburb_count"`
	SampleSuburbs []string `json:"sample_suburbs"`
	Center        Center   `json:"center"`
}

// AreaBreakdown summarizes one area within a radius query.
type AreaBreakdown struct {
	Area          string   `json:"area"`
	SuburbCount   int      `json:"suburb_count"`
	AvgDistanceKm float64  `json:"avg_distance_km"`
	Suburbs       []string `json:"suburbs"`
}

// AreasInRegion groups a region's suburbs by area. The region match is
// case-insensitive. Each area's center is the unweighted mean of its
// member coordinates; up to five member names are sampled in dataset
// order. Areas are sorted by descending suburb count.
func (e *Engine) AreasInRegion(region string) ([]RegionArea, error) {
	suburbs, err := e.gaz.Suburbs()
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(region)
	byArea := make(map[string][]gazetteer.Suburb)
	var order []string
	for _, s := range suburbs {
		if strings.ToLower(s.Region) != want {
			continue
		}
		if _, seen := byArea[s.Area]; !seen {
			order = append(order, s.Area)
		}
		byArea[s.Area] = append(byArea[s.Area], s)
	}

	results := make([]RegionArea, 0, len(order))
	for _, area := range order {
		members := byArea[area]

		var sumLat, sumLng float64
		for _, s := range members {
			sumLat += s.Lat
			sumLng += s.Lng
		}
		n := float64(len(members))

		samples := make([]string, 0, maxSampleSuburbs)
		for _, s := range members[:min(len(members), maxSampleSuburbs)] {
			samples = append(samples, s.Name)
		}

		results = append(results, RegionArea{
			Area:          area,
			SuburbCount:   len(members),
			SampleSuburbs: samples,
			Center:        Center{Lat: round3(sumLat / n), Lng: round3(sumLng / n)},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SuburbCount > results[j].SuburbCount
	})
	return results, nil
}

// AreaBreakdownInRadius groups the radius result set by area, with the
// mean member distance per area. Areas are sorted by ascending mean
// distance; each suburb entry is rendered as "Name (X.Xkm)".
func (e *Engine) AreaBreakdownInRadius(base gazetteer.Suburb, radiusKm float64) ([]AreaBreakdown, error) {
	nearby, err := e.SuburbsInRadius(base, radiusKm, RadiusOptions{})
	if err != nil {
		return nil, err
	}

	byArea := make(map[string][]SuburbDistance)
	var order []string
	for _, s := range nearby {
		if _, seen := byArea[s.Area]; !seen {
			order = append(order, s.Area)
		}
		byArea[s.Area] = append(byArea[s.Area], s)
	}

	results := make([]AreaBreakdown, 0, len(order))
	for _, area := range order {
		members := byArea[area]

		var sum float64
		names := make([]string, 0, len(members))
		for _, s := range members {
			sum += s.DistanceKm
			names = append(names, fmt.Sprintf("%s (%.1fkm)", s.Name, s.DistanceKm))
		}

		results = append(results, AreaBreakdown{
			Area:          area,
			SuburbCount:   len(members),
			AvgDistanceKm: round1(sum / float64(len(members))),
			Suburbs:       names,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AvgDistanceKm < results[j].AvgDistanceKm
	})
	return results, nil
}
