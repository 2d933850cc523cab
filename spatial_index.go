package main

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// minExtent pads degenerate boxes. rtreego rejects rectangles with a zero
// side, which a vertical or horizontal line string would produce.
const minExtent = 1e-9

// Shape is a simplified boundary kept by the service.
type Shape struct {
	ID        int
	Name      string
	Points    orb.LineString // quantized points
	Encoding  string
	Tolerance float64
}

// shapeEntry wraps a shape for R-tree storage
type shapeEntry struct {
	shape Shape
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *shapeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ShapeIndex stores shapes in memory and answers bounding box queries.
// It is safe for concurrent use.
type ShapeIndex struct {
	mu     sync.RWMutex
	tree   *rtreego.Rtree
	shapes []Shape
}

// NewShapeIndex creates an empty index
func NewShapeIndex() *ShapeIndex {
	return &ShapeIndex{
		tree: rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
	}
}

// Add assigns the shape an ID and indexes it.
func (si *ShapeIndex) Add(s Shape) (int, error) {
	if len(s.Points) == 0 {
		return 0, errors.New("shape has no points")
	}
	bbox, err := boundsRect(s.Points.Bound())
	if err != nil {
		return 0, errors.Wrap(err, "shape bounds")
	}

	si.mu.Lock()
	defer si.mu.Unlock()

	s.ID = len(si.shapes) + 1
	si.shapes = append(si.shapes, s)
	si.tree.Insert(&shapeEntry{shape: s, bbox: bbox})
	return s.ID, nil
}

// QueryRegion returns shapes whose bounding box intersects the given box,
// ordered by ID.
func (si *ShapeIndex) QueryRegion(minX, minY, maxX, maxY float64) []Shape {
	bbox, err := boundsRect(orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}})
	if err != nil {
		return []Shape{}
	}

	si.mu.RLock()
	results := si.tree.SearchIntersect(bbox)
	si.mu.RUnlock()

	shapes := make([]Shape, 0, len(results))
	for _, item := range results {
		entry := item.(*shapeEntry)
		shapes = append(shapes, entry.shape)
	}
	slices.SortFunc(shapes, func(a, b Shape) int { return cmp.Compare(a.ID, b.ID) })
	return shapes
}

// All returns every shape ordered by ID.
func (si *ShapeIndex) All() []Shape {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return append([]Shape(nil), si.shapes...)
}

// Len returns the number of indexed shapes.
func (si *ShapeIndex) Len() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.shapes)
}

// boundsRect converts an orb bound to an R-tree rectangle
func boundsRect(b orb.Bound) (rtreego.Rect, error) {
	if b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] {
		return rtreego.Rect{}, errors.Errorf("inverted bounds %v", b)
	}
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{max(b.Max[0]-b.Min[0], minExtent), max(b.Max[1]-b.Min[1], minExtent)},
	)
}
