package simplify

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfIntersects(t *testing.T) {
	cases := []struct {
		name string
		ls   orb.LineString
		want bool
	}{
		{"square", orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, false},
		{"bow tie", orb.LineString{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0, 0}}, true},
		{"open zigzag", orb.LineString{{0, 0}, {1, 1}, {2, 0}, {3, 1}}, false},
		{"open crossing", orb.LineString{{0, 0}, {2, 0}, {2, 1}, {1, -1}}, true},
		{"touching", orb.LineString{{0, 0}, {4, 0}, {4, 2}, {2, 0}}, true},
		{"triangle", orb.LineString{{0, 0}, {1, 0}, {0, 1}, {0, 0}}, false},
		{"too short", orb.LineString{{0, 0}, {1, 1}}, false},
		{"repeated vertex", orb.LineString{{0, 0}, {10, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, false},
		{"repeated closing vertex", orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}, {0, 0}}, false},
		{"repeated vertex bow tie", orb.LineString{{0, 0}, {1, 1}, {1, 1}, {1, 0}, {0, 1}, {0, 0}}, true},
		{"all repeated", orb.LineString{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SelfIntersects(c.ls))
		})
	}
}

func TestSelfIntersectsAfterQuantization(t *testing.T) {
	// The third point truncates onto the second at six digits.
	ring := orb.LineString{{0, 0}, {1, 0}, {1.0000005, 0.0000005}, {1, 10}, {0, 10}, {0, 0}}
	p := Pipeline{Strategy: Fixed(0), HighestQuality: true, Precision: 6}

	res, err := p.Run(context.Background(), ring, 21)
	require.NoError(t, err)
	require.Equal(t, res.Quantized[1], res.Quantized[2])

	assert.False(t, SelfIntersects(res.Simplified))
	assert.False(t, SelfIntersects(res.Quantized))
}
