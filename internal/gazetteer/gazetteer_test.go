package gazetteer

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGazetteer(t *testing.T) *Gazetteer {
	t.Helper()
	return New(filepath.Join("testdata", "suburbs.csv"))
}

func TestFindSuburbExactBeatsPrefix(t *testing.T) {
	g := testGazetteer(t)

	// Manly Vale appears before Manly in the dataset; the exact pass must
	// still win over the earlier prefix match.
	got, err := g.FindSuburb("manly", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Manly", got.Name)
	assert.Equal(t, "NSW", got.State)
}

func TestFindSuburbStateFilter(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindSuburb("manly", "QLD")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "QLD", got.State)
	assert.Equal(t, "4179", got.Postcode)
}

func TestFindSuburbPrefix(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindSuburb("manly v", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Manly Vale", got.Name)
}

func TestFindSuburbContains(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindSuburb("wood", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chatswood", got.Name)
}

func TestFindSuburbNoMatch(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindSuburb("Wagga Wagga", "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindSuburbEmptyQuery(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindSuburb("   ", "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindByPostcode(t *testing.T) {
	g := testGazetteer(t)

	got, err := g.FindByPostcode("2095")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Manly", got.Name)

	missing, err := g.FindByPostcode("9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSuburbsQuotedRegion(t *testing.T) {
	g := testGazetteer(t)

	suburbs, err := g.Suburbs()
	require.NoError(t, err)
	require.Len(t, suburbs, 6)
	assert.Equal(t, "Hunter, Central & Northern NSW", suburbs[5].Region)
}

func TestSuburbsMissingFile(t *testing.T) {
	g := New(filepath.Join("testdata", "nope.csv"))

	_, err := g.Suburbs()
	assert.Error(t, err)

	// A failed load is not cached; the next call retries and fails again.
	_, err = g.Suburbs()
	assert.Error(t, err)
}

func TestSuburbsConcurrentLoad(t *testing.T) {
	g := testGazetteer(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suburbs, err := g.Suburbs()
			assert.NoError(t, err)
			assert.Len(t, suburbs, 6)
		}()
	}
	wg.Wait()
}
