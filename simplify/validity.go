package simplify

import (
	"math"

	"github.com/paulmach/orb"
)

// SelfIntersects reports whether any two non-adjacent segments of ls cross or
// touch. Simplifying a ring can fold it over itself, which map clients render
// as a bow tie. A closed sequence is treated as a ring, so its first and last
// segments count as adjacent. Repeated consecutive points, which quantization
// produces when two kept points truncate to the same coordinates, are merged
// first so the segments around them stay adjacent.
func SelfIntersects(ls orb.LineString) bool {
	ls = dropRepeats(ls)
	n := len(ls) - 1 // segment count
	if n < 3 {
		return false
	}
	closed := IsClosed(ls)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if closed && i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(ls[i], ls[i+1], ls[j], ls[j+1]) {
				return true
			}
		}
	}
	return false
}

// dropRepeats returns ls without consecutive duplicate points. The input is
// returned as is when it has none.
func dropRepeats(ls orb.LineString) orb.LineString {
	for i := 1; i < len(ls); i++ {
		if ls[i] != ls[i-1] {
			continue
		}
		out := append(orb.LineString(nil), ls[:i]...)
		for _, p := range ls[i:] {
			if p != out[len(out)-1] {
				out = append(out, p)
			}
		}
		return out
	}
	return ls
}

// segmentsIntersect checks whether segment p1p2 meets segment p3p4,
// collinear overlaps included.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(p3, p4, p1)) ||
		(d2 == 0 && onSegment(p3, p4, p2)) ||
		(d3 == 0 && onSegment(p1, p2, p3)) ||
		(d4 == 0 && onSegment(p1, p2, p4))
}

// direction is the cross product of (p2-p1) and (p3-p1), sign flipped.
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment reports whether q, known to be collinear with pr, lies within
// its bounding box.
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}
