package simplify

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The worked example from Google's polyline documentation, given as
// (lng, lat) points.
var googleExample = orb.LineString{{-120.2, 38.5}, {-120.95, 40.7}, {-126.453, 43.252}}

func TestEncode(t *testing.T) {
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Encode(googleExample, 5))
	assert.Equal(t, "", Encode(nil, 5))
}

func TestEncodePrecision(t *testing.T) {
	ls := Quantize(orb.LineString{{-70.6158299, -33.4382368}, {-70.6157, -33.4381}}, 6)
	six := Encode(ls, 6)
	five := Encode(ls, 5)
	assert.NotEqual(t, six, five)
	assert.Greater(t, len(six), len(five))
}

func TestDecode(t *testing.T) {
	got, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@", 5)
	require.NoError(t, err)
	require.Len(t, got, len(googleExample))
	for i := range got {
		assert.InDelta(t, googleExample[i][0], got[i][0], 1e-9)
		assert.InDelta(t, googleExample[i][1], got[i][1], 1e-9)
	}

	empty, err := Decode("", 5)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEncodeDecodeQuantized(t *testing.T) {
	ls := Quantize(wiggle(40), 4)
	got, err := Decode(Encode(ls, 4), 4)
	require.NoError(t, err)
	require.Len(t, got, len(ls))
	for i := range got {
		assert.InDelta(t, ls[i][0], got[i][0], 1e-9)
		assert.InDelta(t, ls[i][1], got[i][1], 1e-9)
	}
}
