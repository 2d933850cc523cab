package main

import (
	"context"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shape-simplifier/simplify"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// denseRing samples a circle of the given radius with n points and closes it.
func denseRing(cx, cy, r float64, n int) orb.Ring {
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, orb.Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return append(ring, ring[0])
}

func writeCollection(t *testing.T, path string, fc *geojson.FeatureCollection) {
	t.Helper()
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadBoundaries(t *testing.T) {
	dir := t.TempDir()

	fc := geojson.NewFeatureCollection()
	park := geojson.NewFeature(orb.Polygon{denseRing(0, 0, 1, 200)})
	park.Properties["name"] = "park"
	fc.Append(park)
	fc.Append(geojson.NewFeature(orb.MultiPolygon{
		{denseRing(10, 10, 1, 100)},
		{denseRing(20, 20, 1, 100)},
	}))
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))
	writeCollection(t, filepath.Join(dir, "areas.geojson"), fc)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.geojson"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	p := simplify.Pipeline{Strategy: simplify.Fixed(0.01), Precision: 5}
	index := NewShapeIndex()
	n, err := loadBoundaries(context.Background(), dir, p, 15, index)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	shapes := index.All()
	require.Len(t, shapes, 3)
	assert.Equal(t, "park", shapes[0].Name)
	assert.Equal(t, "areas", shapes[1].Name, "unnamed features take the file name")
	for _, s := range shapes {
		assert.Less(t, len(s.Points), 100)
		assert.True(t, simplify.IsClosed(s.Points))
		assert.NotEmpty(t, s.Encoding)
		assert.Equal(t, 0.01, s.Tolerance)
	}

	assert.Len(t, index.QueryRegion(9, 9, 11, 11), 1)
}

func TestLoadBoundariesMissingDir(t *testing.T) {
	index := NewShapeIndex()
	p := simplify.Pipeline{Strategy: simplify.Fixed(0.01)}
	n, err := loadBoundaries(context.Background(), filepath.Join(t.TempDir(), "none"), p, 15, index)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestBoundaryRings(t *testing.T) {
	hole := orb.Ring{{0.2, 0.2}, {0.4, 0.2}, {0.4, 0.4}, {0.2, 0.2}}
	outer := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	line := orb.LineString{{0, 0}, {3, 3}}

	assert.Equal(t, []orb.LineString{orb.LineString(outer)}, boundaryRings(orb.Polygon{outer, hole}))
	assert.Equal(t, []orb.LineString{line, orb.LineString(outer)},
		boundaryRings(orb.Collection{line, orb.MultiPolygon{{outer}}}))
	assert.Empty(t, boundaryRings(orb.Point{1, 2}))
}
