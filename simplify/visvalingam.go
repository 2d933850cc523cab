package simplify

import (
	"cmp"
	"container/heap"
	"context"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrPointsToKeep is returned when the requested point count is outside
// [2, len(points)). It is a caller contract violation.
var ErrPointsToKeep = errors.New("simplify: points to keep out of range")

var _ orb.Simplifier = Visvalingam{}

// Visvalingam reduces a sequence to exactly PointsToKeep points by repeatedly
// eliminating the point whose triangle with its current neighbors has the
// smallest area.
//
// The result for a smaller PointsToKeep is always a subsequence of the
// result for a larger one. The two endpoints are never eliminated.
type Visvalingam struct {
	PointsToKeep int
}

// Reduce simplifies ls. Sequences of two points or fewer are returned as is.
func (s Visvalingam) Reduce(ls orb.LineString) (orb.LineString, error) {
	return s.ReduceContext(context.Background(), ls)
}

// ReduceContext is Reduce with a cancellation check between eliminations.
func (s Visvalingam) ReduceContext(ctx context.Context, ls orb.LineString) (orb.LineString, error) {
	if len(ls) <= 2 {
		return ls, nil
	}
	if s.PointsToKeep < 2 || s.PointsToKeep >= len(ls) {
		return nil, errors.Wrapf(ErrPointsToKeep, "%d of %d", s.PointsToKeep, len(ls))
	}

	imp, err := eliminate(ctx, ls)
	if err != nil {
		return nil, err
	}

	ranked := make([]int, len(ls))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortFunc(ranked, func(a, b int) int {
		return imp.compare(b, a)
	})

	keep := make([]bool, len(ls))
	for _, i := range ranked[:s.PointsToKeep] {
		keep[i] = true
	}

	out := make(orb.LineString, 0, s.PointsToKeep)
	for i, k := range keep {
		if k {
			out = append(out, ls[i])
		}
	}
	return out, nil
}

// importance holds the per point weights produced by one elimination run.
type importance struct {
	weight []float64
	// step is the elimination order. Exact weight ties are broken by it,
	// so a point eliminated later always ranks higher.
	step []int
}

func (imp importance) compare(a, b int) int {
	if c := cmp.Compare(imp.weight[a], imp.weight[b]); c != 0 {
		return c
	}
	return cmp.Compare(imp.step[a], imp.step[b])
}

// triangle is one arena record: a point and its two current neighbors,
// referenced through the neighboring triangles.
type triangle struct {
	apex       int
	prev, next int // -1 at either end of the chain
	area       float64
	pos        int // heap position, -1 once popped
}

// eliminate runs the full elimination and returns the importance of every
// point. Endpoints are never part of the heap and get +Inf.
func eliminate(ctx context.Context, ls orb.LineString) (importance, error) {
	n := len(ls)
	imp := importance{
		weight: make([]float64, n),
		step:   make([]int, n),
	}
	imp.weight[0], imp.weight[n-1] = math.Inf(1), math.Inf(1)
	imp.step[0], imp.step[n-1] = n, n

	h := &triangleHeap{
		points: ls,
		tris:   make([]triangle, n-2),
		items:  make([]int, 0, n-2),
	}
	for t := range h.tris {
		h.tris[t] = triangle{apex: t + 1, prev: t - 1, next: t + 1, pos: -1}
	}
	h.tris[len(h.tris)-1].next = -1
	for t := range h.tris {
		h.tris[t].area = h.area(t)
		h.tris[t].pos = len(h.items)
		h.items = append(h.items, t)
	}
	heap.Init(h)

	maxArea := 0.0
	for step := 0; h.Len() > 0; step++ {
		if err := ctx.Err(); err != nil {
			return importance{}, err
		}

		t := heap.Pop(h).(int)
		tri := h.tris[t]

		// A point cannot be less important than one eliminated before it.
		area := tri.area
		if area < maxArea {
			area = maxArea
		} else {
			maxArea = area
		}
		imp.weight[tri.apex] = area
		imp.step[tri.apex] = step

		if tri.prev >= 0 {
			h.tris[tri.prev].next = tri.next
			h.update(tri.prev)
		}
		if tri.next >= 0 {
			h.tris[tri.next].prev = tri.prev
			h.update(tri.next)
		}
	}
	return imp, nil
}

// triangleHeap is a min-heap of arena indices ordered by area. Each record
// tracks its own position so arbitrary entries can be fixed in O(log n).
type triangleHeap struct {
	points orb.LineString
	tris   []triangle
	items  []int
}

func (h *triangleHeap) Len() int { return len(h.items) }

func (h *triangleHeap) Less(i, j int) bool {
	a, b := &h.tris[h.items[i]], &h.tris[h.items[j]]
	if a.area != b.area {
		return a.area < b.area
	}
	return a.apex < b.apex
}

func (h *triangleHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.tris[h.items[i]].pos = i
	h.tris[h.items[j]].pos = j
}

func (h *triangleHeap) Push(x any) {
	t := x.(int)
	h.tris[t].pos = len(h.items)
	h.items = append(h.items, t)
}

func (h *triangleHeap) Pop() any {
	n := len(h.items)
	t := h.items[n-1]
	h.tris[t].pos = -1
	h.items = h.items[:n-1]
	return t
}

// update recomputes the area of t from its current neighbors and restores
// the heap order.
func (h *triangleHeap) update(t int) {
	h.tris[t].area = h.area(t)
	heap.Fix(h, h.tris[t].pos)
}

// area is twice the area of the triangle formed by t's apex and its current
// neighbors. Only the ordering matters, so the factor is left in.
func (h *triangleHeap) area(t int) float64 {
	tri := &h.tris[t]
	left, right := 0, len(h.points)-1
	if tri.prev >= 0 {
		left = h.tris[tri.prev].apex
	}
	if tri.next >= 0 {
		right = h.tris[tri.next].apex
	}
	a, b, c := h.points[left], h.points[tri.apex], h.points[right]
	return math.Abs((a[0]-c[0])*(b[1]-a[1]) - (a[0]-b[0])*(c[1]-a[1]))
}

func (s Visvalingam) Simplify(g orb.Geometry) orb.Geometry {
	return simplifyGeometry(s.lineString, g)
}

func (s Visvalingam) LineString(ls orb.LineString) orb.LineString {
	return s.lineString(ls)
}

func (s Visvalingam) MultiLineString(mls orb.MultiLineString) orb.MultiLineString {
	return multiLineString(s.lineString, mls)
}

func (s Visvalingam) Ring(r orb.Ring) orb.Ring {
	return orb.Ring(s.lineString(orb.LineString(r)))
}

func (s Visvalingam) Polygon(p orb.Polygon) orb.Polygon {
	return polygon(s.lineString, p)
}

func (s Visvalingam) MultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	return multiPolygon(s.lineString, mp)
}

func (s Visvalingam) Collection(c orb.Collection) orb.Collection {
	return collection(s.lineString, c)
}

// lineString backs the orb.Simplifier methods, which cannot report errors:
// geometries already at or below the target are returned unchanged.
func (s Visvalingam) lineString(ls orb.LineString) orb.LineString {
	if len(ls) <= s.PointsToKeep {
		return ls
	}
	keep := s
	if keep.PointsToKeep < 2 {
		keep.PointsToKeep = 2
	}
	out, err := keep.Reduce(ls)
	if err != nil {
		return ls
	}
	return out
}
