package simplify

import (
	"fmt"

	"github.com/paulmach/orb"
)

// The helpers below let a reducer that only understands line strings serve
// the full orb.Simplifier interface.

type lineReducer func(orb.LineString) orb.LineString

func simplifyGeometry(reduce lineReducer, geom orb.Geometry) orb.Geometry {
	if geom == nil {
		return nil
	}

	switch g := geom.(type) {
	case orb.Point, orb.MultiPoint, orb.Bound:
		return g
	case orb.LineString:
		if g = reduce(g); len(g) == 0 {
			return nil
		}
		return g
	case orb.MultiLineString:
		if g = multiLineString(reduce, g); len(g) == 0 {
			return nil
		}
		return g
	case orb.Ring:
		if g = orb.Ring(reduce(orb.LineString(g))); len(g) == 0 {
			return nil
		}
		return g
	case orb.Polygon:
		if g = polygon(reduce, g); len(g) == 0 {
			return nil
		}
		return g
	case orb.MultiPolygon:
		if g = multiPolygon(reduce, g); len(g) == 0 {
			return nil
		}
		return g
	case orb.Collection:
		if g = collection(reduce, g); len(g) == 0 {
			return nil
		}
		return g
	}

	panic(fmt.Sprintf("simplify: unsupported geometry type %T", geom))
}

func multiLineString(reduce lineReducer, mls orb.MultiLineString) orb.MultiLineString {
	out := make(orb.MultiLineString, len(mls))
	for i := range mls {
		out[i] = reduce(mls[i])
	}
	return out
}

// polygon drops holes that collapse to two points or fewer. The outer ring is
// always kept.
func polygon(reduce lineReducer, p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(p))
	for i := range p {
		r := orb.Ring(reduce(orb.LineString(p[i])))
		if i != 0 && len(r) <= 2 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func multiPolygon(reduce lineReducer, mp orb.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(mp))
	for i := range mp {
		p := polygon(reduce, mp[i])
		if len(p) == 0 || len(p[0]) <= 2 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func collection(reduce lineReducer, c orb.Collection) orb.Collection {
	out := make(orb.Collection, 0, len(c))
	for i := range c {
		if g := simplifyGeometry(reduce, c[i]); g != nil {
			out = append(out, g)
		}
	}
	return out
}
