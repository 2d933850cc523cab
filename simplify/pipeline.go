package simplify

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// DefaultPrecision is the number of decimal digits a Pipeline keeps when
// Precision is unset. Six digits of a degree is about 11cm.
const DefaultPrecision = 6

// Pipeline is the tolerance driven path from a raw boundary to a compact
// string: derive a tolerance from the view, reduce with DouglasPeucker,
// truncate, encode.
type Pipeline struct {
	Strategy       ToleranceStrategy
	HighestQuality bool
	Precision      int // fractional digits kept; 0 means DefaultPrecision
}

// Result is everything a Pipeline run produces.
type Result struct {
	Tolerance  float64
	Simplified orb.LineString
	Quantized  orb.LineString
	Encoded    string
}

// Run simplifies ls for a map shown at zoom. ls is used as given: close it
// with CloseRing first if it is a ring.
func (p Pipeline) Run(ctx context.Context, ls orb.LineString, zoom float64) (Result, error) {
	if p.Strategy == nil {
		return Result{}, errors.New("simplify: pipeline has no tolerance strategy")
	}
	if err := Validate(ls); err != nil {
		return Result{}, err
	}

	tolerance := p.Strategy.Tolerance(View{Points: len(ls), Zoom: zoom})
	dp := DouglasPeucker{Tolerance: tolerance, HighestQuality: p.HighestQuality}
	simplified, err := dp.ReduceContext(ctx, ls)
	if err != nil {
		return Result{}, err
	}
	return p.finish(tolerance, simplified), nil
}

// RunCount is the count driven path: reduce ls to pointsToKeep points with
// Visvalingam, then truncate and encode like Run.
func (p Pipeline) RunCount(ctx context.Context, ls orb.LineString, pointsToKeep int) (Result, error) {
	if err := Validate(ls); err != nil {
		return Result{}, err
	}
	simplified, err := Visvalingam{PointsToKeep: pointsToKeep}.ReduceContext(ctx, ls)
	if err != nil {
		return Result{}, err
	}
	return p.finish(0, simplified), nil
}

func (p Pipeline) finish(tolerance float64, simplified orb.LineString) Result {
	precision := p.Precision
	if precision <= 0 {
		precision = DefaultPrecision
	}
	quantized := Quantize(simplified, precision)
	return Result{
		Tolerance:  tolerance,
		Simplified: simplified,
		Quantized:  quantized,
		Encoded:    Encode(quantized, precision),
	}
}
