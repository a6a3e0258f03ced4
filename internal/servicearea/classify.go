// Package servicearea buckets a job's suburb against the business's
// configured service radius.
package servicearea

import (
	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/gazetteer"
	"github.com/ozleads/lead-engine/internal/geo"
)

// Zone is the service-area bucket for a job.
type Zone string

const (
	ZoneCore     Zone = "core"
	ZoneExtended Zone = "extended"
	ZoneOutside  Zone = "outside"
	// ZoneUnknown means the job or base suburb could not be resolved, or
	// no base suburb is configured. Callers must not treat it as a guess
	// in either direction.
	ZoneUnknown Zone = "unknown"
)

// DefaultCoreRadiusKm applies when no radius is configured.
const DefaultCoreRadiusKm = 20.0

// Result carries the zone with the resolved distance, when known.
type Result struct {
	Zone       Zone    `json:"zone"`
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// Classifier resolves suburbs through the gazetteer and buckets distance
// against the configured core and extended radii.
type Classifier struct {
	gaz        *gazetteer.Gazetteer
	baseSuburb string
	baseState  string
	coreKm     float64
	extendedKm float64
}

// NewClassifier creates a Classifier from service-area config. A zero core
// radius falls back to DefaultCoreRadiusKm; a zero extended radius falls
// back to twice the core radius.
func NewClassifier(gaz *gazetteer.Gazetteer, cfg config.ServiceAreaConfig) *Classifier {
	coreKm := cfg.CoreRadiusKm
	if coreKm <= 0 {
		coreKm = DefaultCoreRadiusKm
	}
	extendedKm := cfg.ExtendedRadiusKm
	if extendedKm <= 0 {
		extendedKm = coreKm * 2
	}
	return &Classifier{
		gaz:        gaz,
		baseSuburb: cfg.BaseSuburb,
		baseState:  cfg.BaseState,
		coreKm:     coreKm,
		extendedKm: extendedKm,
	}
}

// Classify buckets the named suburb: distance within the core radius is
// "core", within the extended radius "extended", otherwise "outside".
// Missing base configuration or an unresolvable suburb yields "unknown".
func (c *Classifier) Classify(suburb, state string) (Result, error) {
	if c.baseSuburb == "" {
		// Expected for not-yet-onboarded businesses, not an error.
		return Result{Zone: ZoneUnknown}, nil
	}

	base, err := c.gaz.FindSuburb(c.baseSuburb, c.baseState)
	if err != nil {
		return Result{}, err
	}
	if base == nil {
		zap.L().Warn("servicearea: configured base suburb not in gazetteer",
			zap.String("base_suburb", c.baseSuburb),
		)
		return Result{Zone: ZoneUnknown}, nil
	}

	target, err := c.gaz.FindSuburb(suburb, state)
	if err != nil {
		return Result{}, err
	}
	if target == nil {
		return Result{Zone: ZoneUnknown}, nil
	}

	distance := geo.DistanceBetween(*base, *target)
	switch {
	case distance <= c.coreKm:
		return Result{Zone: ZoneCore, DistanceKm: distance}, nil
	case distance <= c.extendedKm:
		return Result{Zone: ZoneExtended, DistanceKm: distance}, nil
	default:
		return Result{Zone: ZoneOutside, DistanceKm: distance}, nil
	}
}
