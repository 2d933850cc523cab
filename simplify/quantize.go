package simplify

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Truncate cuts v after digits fractional digits, toward zero.
// Truncate(1.23999, 2) is 1.23 and Truncate(-1.23999, 2) is -1.23.
//
// The cut is made on the shortest decimal representation of v, not with
// arithmetic, so values such as 0.29 (stored as 0.28999…) keep their digits.
func Truncate(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if digits < 0 {
		digits = 0
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= digits {
		return v
	}
	if digits == 0 {
		s = s[:dot]
	} else {
		s = s[:dot+1+digits]
	}

	out, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// FormatFloat output always parses back.
		panic(err)
	}
	if out == 0 && math.Signbit(v) {
		return math.Copysign(0, -1)
	}
	return out
}

// Quantize truncates both coordinates of every point to digits fractional
// digits. The input is not modified.
func Quantize(ls orb.LineString, digits int) orb.LineString {
	if ls == nil {
		return nil
	}
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[i] = orb.Point{Truncate(p[0], digits), Truncate(p[1], digits)}
	}
	return out
}
