package simplify

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// wiggle is a noisy sine trace, dense enough for every reducer to drop points.
func wiggle(n int) orb.LineString {
	ls := make(orb.LineString, n)
	for i := range ls {
		f := float64(i)
		ls[i] = orb.Point{f * 0.1, 2*math.Sin(f*0.3) + 0.05*math.Sin(f*7.1)}
	}
	return ls
}

// isSubsequence reports whether every point of sub appears in ls in order.
func isSubsequence(sub, ls orb.LineString) bool {
	j := 0
	for i := 0; i < len(ls) && j < len(sub); i++ {
		if ls[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}
