package simplify

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrNonFinite is returned by Validate for NaN or infinite coordinates.
var ErrNonFinite = errors.New("simplify: non-finite coordinate")

// IsClosed reports whether the sequence ends where it starts.
func IsClosed(ls orb.LineString) bool {
	return len(ls) > 1 && ls[0] == ls[len(ls)-1]
}

// CloseRing returns ls with its first point appended as the last point.
// Sequences that are already closed are returned unchanged.
func CloseRing(ls orb.LineString) orb.LineString {
	if len(ls) == 0 || IsClosed(ls) {
		return ls
	}
	closed := make(orb.LineString, 0, len(ls)+1)
	closed = append(closed, ls...)
	return append(closed, ls[0])
}

// Validate checks that every coordinate is finite.
func Validate(ls orb.LineString) error {
	for i, p := range ls {
		if !finite(p[0]) || !finite(p[1]) {
			return errors.Wrapf(ErrNonFinite, "point %d (%g, %g)", i, p[0], p[1])
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
