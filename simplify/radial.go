package simplify

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Radial drops every point that lies within sqrt(sqTolerance) of the last kept
// point. The first and last points always survive. It is a cheap coarsening
// pass meant to run before DouglasPeucker, not a simplification on its own.
func Radial(ls orb.LineString, sqTolerance float64) orb.LineString {
	if len(ls) <= 2 {
		return ls
	}

	out := make(orb.LineString, 0, len(ls))
	out = append(out, ls[0])

	kept := 0
	for i := 1; i < len(ls); i++ {
		if planar.DistanceSquared(ls[kept], ls[i]) > sqTolerance {
			kept = i
			out = append(out, ls[i])
		}
	}

	if kept != len(ls)-1 {
		out = append(out, ls[len(ls)-1])
	}
	return out
}
