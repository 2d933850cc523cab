package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"shape-simplifier/simplify"
)

// loadBoundaries simplifies every boundary found in the GeoJSON files of dir
// and adds the results to index. Unreadable files are logged and skipped.
// It returns the number of shapes added.
func loadBoundaries(ctx context.Context, dir string, p simplify.Pipeline, zoom float64, index *ShapeIndex) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return 0, errors.Wrap(err, "glob boundaries")
	}

	log.Printf("Loading boundaries from %d GeoJSON files...\n", len(files))

	total := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		count := 0
		for i, f := range fc.Features {
			name := f.Properties.MustString("name", base)
			for _, ring := range boundaryRings(f.Geometry) {
				res, err := p.Run(ctx, ring, zoom)
				if err != nil {
					log.Printf("⚠️  Skipping feature %d of %s: %v\n", i, file, err)
					continue
				}
				if _, err := index.Add(shapeFromResult(name, res)); err != nil {
					log.Printf("⚠️  Skipping feature %d of %s: %v\n", i, file, err)
					continue
				}
				count++
			}
		}

		log.Printf("   ✅ Loaded %d boundaries from %s\n", count, filepath.Base(file))
		total += count
	}

	log.Printf("Total boundaries loaded: %d\n", total)
	return total, nil
}

// boundaryRings extracts the outer boundary of every polygon in g. Line
// strings are returned as is; other geometry types carry no boundary.
func boundaryRings(g orb.Geometry) []orb.LineString {
	var rings []orb.LineString

	switch g := g.(type) {
	case orb.Polygon:
		// First ring is the outer boundary
		if len(g) > 0 {
			rings = append(rings, orb.LineString(g[0]))
		}
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 {
				rings = append(rings, orb.LineString(p[0]))
			}
		}
	case orb.LineString:
		rings = append(rings, g)
	case orb.Collection:
		for _, c := range g {
			rings = append(rings, boundaryRings(c)...)
		}
	}

	return rings
}

func shapeFromResult(name string, res simplify.Result) Shape {
	return Shape{
		Name:      name,
		Points:    res.Quantized,
		Encoding:  res.Encoded,
		Tolerance: res.Tolerance,
	}
}
