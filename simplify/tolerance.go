package simplify

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// View carries the signals a tolerance is derived from.
type View struct {
	Points int     // number of points in the boundary
	Zoom   float64 // current map zoom level
}

// ToleranceStrategy turns a map view into a Douglas-Peucker tolerance.
// Implementations must return smaller tolerances as the zoom grows.
type ToleranceStrategy interface {
	Name() string
	Tolerance(v View) float64
}

const (
	// DefaultBaseTolerance is the user tunable factor of DensityAdaptive.
	DefaultBaseTolerance = 0.00008
	// DefaultMaxPoints is the reference point count of DensityAdaptive.
	DefaultMaxPoints = 30
	// DefaultDensityRate controls how fast density grows the tolerance.
	DefaultDensityRate = 0.01
	// GroundResolution is meters per pixel at zoom 0 on a 256px web mercator tile.
	GroundResolution = 156543.0339
	// EarthCircumference in meters at the equator.
	EarthCircumference = 40075016.686
	// DefaultMaxZoom is the deepest zoom level of common web map tile sets.
	DefaultMaxZoom = 21
)

// DensityAdaptive scales the base tolerance by the ground resolution of the
// zoom level and by how dense the boundary is compared to MaxPoints.
//
//	tolerance = Base · (GroundResolution / 2^zoom) · exp(Rate · (n/MaxPoints − 1))
type DensityAdaptive struct {
	Base             float64
	MaxPoints        int
	Rate             float64
	GroundResolution float64
}

// NewDensityAdaptive returns a DensityAdaptive strategy with the default
// constants and the given base tolerance.
func NewDensityAdaptive(base float64) DensityAdaptive {
	return DensityAdaptive{
		Base:             base,
		MaxPoints:        DefaultMaxPoints,
		Rate:             DefaultDensityRate,
		GroundResolution: GroundResolution,
	}
}

func (DensityAdaptive) Name() string { return "density" }

func (s DensityAdaptive) Tolerance(v View) float64 {
	maxPoints := s.MaxPoints
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	factor := math.Exp(s.Rate * (float64(v.Points)/float64(maxPoints) - 1))
	groundRes := s.GroundResolution / math.Pow(2, v.Zoom)
	return s.Base * groundRes * factor
}

// ZoomOnly ignores density and halves the tolerance with every zoom level.
//
//	tolerance = Base · Circumference · 2^(MaxZoom − zoom)
type ZoomOnly struct {
	Base          float64
	Circumference float64
	MaxZoom       float64
}

// NewZoomOnly returns a ZoomOnly strategy with the default constants and the
// given base tolerance.
func NewZoomOnly(base float64) ZoomOnly {
	return ZoomOnly{
		Base:          base,
		Circumference: EarthCircumference,
		MaxZoom:       DefaultMaxZoom,
	}
}

func (ZoomOnly) Name() string { return "zoom" }

func (s ZoomOnly) Tolerance(v View) float64 {
	return s.Base * s.Circumference * math.Pow(2, s.MaxZoom-v.Zoom)
}

// StrategyByName returns the default strategy registered under name, built
// around the given base tolerance.
func StrategyByName(name string, base float64) (ToleranceStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "density":
		return NewDensityAdaptive(base), nil
	case "zoom":
		return NewZoomOnly(base), nil
	}
	return nil, errors.Errorf("simplify: unknown tolerance strategy %q", name)
}

// Fixed is a tolerance chosen by the caller, independent of the view.
type Fixed float64

func (Fixed) Name() string { return "fixed" }

func (f Fixed) Tolerance(View) float64 { return float64(f) }
