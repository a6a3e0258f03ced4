// Package gazetteer loads the static suburb dataset and answers name and
// postcode lookups. The dataset is read once, lazily, and held in memory
// for the process lifetime.
package gazetteer

import (
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Suburb is one row of the suburb dataset. Records are immutable after load.
type Suburb struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	State    string  `json:"state"`
	Postcode string  `json:"postcode"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Area     string  `json:"area"`
	Region   string  `json:"region"`
}

// Gazetteer memoizes the suburb dataset behind a single-flight guard so
// concurrent first callers trigger exactly one load.
type Gazetteer struct {
	path string

	group   singleflight.Group
	mu      sync.RWMutex
	suburbs []Suburb // nil until first successful load
}

// New creates a Gazetteer for the dataset at path. The file is not read
// until the first query.
func New(path string) *Gazetteer {
	return &Gazetteer{path: path}
}

// Suburbs returns the full dataset, loading it on first use. A load failure
// is returned to every waiting caller and retried on the next call; a
// partial dataset is never cached.
func (g *Gazetteer) Suburbs() ([]Suburb, error) {
	if s := g.cached(); s != nil {
		return s, nil
	}

	v, err, _ := g.group.Do("load", func() (any, error) {
		if s := g.cached(); s != nil {
			return s, nil
		}
		suburbs, err := loadDataset(g.path)
		if err != nil {
			return nil, err
		}
		zap.L().Info("gazetteer: dataset loaded",
			zap.String("path", g.path),
			zap.Int("suburbs", len(suburbs)),
		)
		g.mu.Lock()
		g.suburbs = suburbs
		g.mu.Unlock()
		return suburbs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Suburb), nil
}

func (g *Gazetteer) cached() []Suburb {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.suburbs
}

// FindSuburb resolves a suburb by name, case-insensitively, in three
// decreasing-specificity passes: exact, prefix, contains. Each pass is
// optionally filtered by state and returns the first dataset-order match.
// Returns nil when no pass matches.
func (g *Gazetteer) FindSuburb(query, state string) (*Suburb, error) {
	suburbs, err := g.Suburbs()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	passes := []func(name string) bool{
		func(name string) bool { return name == q },
		func(name string) bool { return strings.HasPrefix(name, q) },
		func(name string) bool { return strings.Contains(name, q) },
	}

	for _, match := range passes {
		for i := range suburbs {
			s := &suburbs[i]
			if state != "" && s.State != state {
				continue
			}
			if match(strings.ToLower(s.Name)) {
				return s, nil
			}
		}
	}
	return nil, nil
}

// FindByPostcode resolves a suburb by exact postcode, first in dataset order.
// Returns nil when the postcode is unknown.
func (g *Gazetteer) FindByPostcode(postcode string) (*Suburb, error) {
	suburbs, err := g.Suburbs()
	if err != nil {
		return nil, err
	}
	for i := range suburbs {
		if suburbs[i].Postcode == postcode {
			return &suburbs[i], nil
		}
	}
	return nil, nil
}

// loadDataset reads and parses the whole suburb file. Any malformed row
// fails the load; distance decisions built on a partial dataset would be
// silently wrong.
func loadDataset(path string) ([]Suburb, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gazetteer: read dataset %s", path)
	}
	return parseDataset(string(content))
}
