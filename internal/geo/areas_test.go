package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreasInRegion(t *testing.T) {
	engine, _ := testEngine(t)

	got, err := engine.AreasInRegion("testland")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Counts tie at two members each; insertion order breaks the tie.
	assert.Equal(t, "Central", got[0].Area)
	assert.Equal(t, 2, got[0].SuburbCount)
	assert.Equal(t, []string{"Basewick", "Northam"}, got[0].SampleSuburbs)
	assert.Equal(t, Center{Lat: 0.005, Lng: 0}, got[0].Center)

	assert.Equal(t, "North", got[1].Area)
	assert.Equal(t, Center{Lat: 0.275, Lng: 0}, got[1].Center)
}

func TestAreasInRegionUnknown(t *testing.T) {
	engine, _ := testEngine(t)

	got, err := engine.AreasInRegion("Atlantis")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAreaBreakdownInRadius(t *testing.T) {
	engine, base := testEngine(t)

	got, err := engine.AreaBreakdownInRadius(base, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Sorted by ascending mean distance.
	assert.Equal(t, "Central", got[0].Area)
	assert.Equal(t, 0.6, got[0].AvgDistanceKm)
	assert.Equal(t, []string{"Basewick (0.0km)", "Northam (1.1km)"}, got[0].Suburbs)

	assert.Equal(t, "East", got[1].Area)
	assert.Equal(t, 2.2, got[1].AvgDistanceKm)

	assert.Equal(t, "North", got[2].Area)
	assert.Equal(t, 5.6, got[2].AvgDistanceKm)
	assert.Equal(t, []string{"Midfield (5.6km)"}, got[2].Suburbs)
}
