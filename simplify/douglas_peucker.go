package simplify

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var _ orb.Simplifier = DouglasPeucker{}

// DouglasPeucker keeps every point whose distance to the chord of its
// enclosing kept span exceeds Tolerance.
//
// Unless HighestQuality is set, the input first goes through Radial with the
// same tolerance, which is much faster on dense freehand traces at a small
// cost in fidelity. The prefilter shifts span endpoints, so reducing the
// output again or raising the tolerance is only guaranteed to keep a subset
// of the points when HighestQuality is set.
type DouglasPeucker struct {
	Tolerance      float64
	HighestQuality bool
}

// Reduce simplifies ls. The first and last points are always kept and the
// input is never modified.
func (s DouglasPeucker) Reduce(ls orb.LineString) orb.LineString {
	out, _ := s.ReduceContext(context.Background(), ls)
	return out
}

// ReduceContext is Reduce with a cancellation check between spans.
func (s DouglasPeucker) ReduceContext(ctx context.Context, ls orb.LineString) (orb.LineString, error) {
	if len(ls) <= 2 {
		return ls, nil
	}

	sqTolerance := s.Tolerance * s.Tolerance
	if !s.HighestQuality {
		ls = Radial(ls, sqTolerance)
	}

	keep, err := dpMask(ctx, ls, sqTolerance)
	if err != nil {
		return nil, err
	}

	out := make(orb.LineString, 0, len(ls))
	for i, k := range keep {
		if k {
			out = append(out, ls[i])
		}
	}
	return out, nil
}

// dpMask marks the points to keep. Spans are processed from an explicit
// stack so adversarial inputs cannot grow the goroutine stack.
func dpMask(ctx context.Context, ls orb.LineString, sqTolerance float64) ([]bool, error) {
	end := len(ls) - 1
	keep := make([]bool, len(ls))
	keep[0], keep[end] = true, true

	stack := []int{0, end}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		first, last := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		maxSqDist := sqTolerance
		index := -1
		for i := first + 1; i < last; i++ {
			// DistanceFromSegmentSquared falls back to point distance
			// when the chord has zero length.
			d := planar.DistanceFromSegmentSquared(ls[first], ls[last], ls[i])
			if d > maxSqDist {
				index = i
				maxSqDist = d
			}
		}

		if index < 0 {
			continue
		}
		keep[index] = true
		if last-index > 1 {
			stack = append(stack, index, last)
		}
		if index-first > 1 {
			stack = append(stack, first, index)
		}
	}
	return keep, nil
}

func (s DouglasPeucker) Simplify(g orb.Geometry) orb.Geometry {
	return simplifyGeometry(s.lineString, g)
}

func (s DouglasPeucker) LineString(ls orb.LineString) orb.LineString {
	return s.lineString(ls)
}

func (s DouglasPeucker) MultiLineString(mls orb.MultiLineString) orb.MultiLineString {
	return multiLineString(s.lineString, mls)
}

func (s DouglasPeucker) Ring(r orb.Ring) orb.Ring {
	return orb.Ring(s.lineString(orb.LineString(r)))
}

func (s DouglasPeucker) Polygon(p orb.Polygon) orb.Polygon {
	return polygon(s.lineString, p)
}

func (s DouglasPeucker) MultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	return multiPolygon(s.lineString, mp)
}

func (s DouglasPeucker) Collection(c orb.Collection) orb.Collection {
	return collection(s.lineString, c)
}

func (s DouglasPeucker) lineString(ls orb.LineString) orb.LineString {
	return s.Reduce(ls)
}
