package simplify

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/twpayne/go-polyline"
)

// Encode packs ls into a Google encoded polyline string with the given number
// of decimal digits. Each point is written as (Y, X), the (lat, lng) order
// map clients expect when X is longitude and Y latitude.
//
// Callers normally pass the output of Quantize with the same precision so the
// string reflects exactly the truncated digits.
func Encode(ls orb.LineString, precision int) string {
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = []float64{p[1], p[0]}
	}
	return string(codec(precision).EncodeCoords(nil, coords))
}

// Decode is the inverse of Encode.
func Decode(s string, precision int) (orb.LineString, error) {
	if s == "" {
		return orb.LineString{}, nil
	}
	coords, rest, err := codec(precision).DecodeCoords([]byte(s))
	if err != nil {
		return nil, errors.Wrap(err, "simplify: decode polyline")
	}
	if len(rest) != 0 {
		return nil, errors.Errorf("simplify: %d trailing bytes after polyline", len(rest))
	}
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c[1], c[0]}
	}
	return ls, nil
}

func codec(precision int) polyline.Codec {
	if precision < 0 {
		precision = 0
	}
	return polyline.Codec{Dim: 2, Scale: math.Pow10(precision)}
}
