package simplify

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCloseRing(t *testing.T) {
	open := orb.LineString{{0, 0}, {1, 0}, {1, 1}}
	closed := CloseRing(open)
	diff(t, orb.LineString{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, closed)
	assert.Len(t, open, 3, "input must not grow")
	assert.True(t, IsClosed(closed))
	assert.False(t, IsClosed(open))

	diff(t, closed, CloseRing(closed))
	assert.Empty(t, CloseRing(nil))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(orb.LineString{{0, 0}, {-1e9, 1e9}}))
	assert.NoError(t, Validate(nil))

	err := Validate(orb.LineString{{0, 0}, {math.NaN(), 1}})
	assert.True(t, errors.Is(err, ErrNonFinite))
	assert.Contains(t, err.Error(), "point 1")

	err = Validate(orb.LineString{{math.Inf(-1), 0}})
	assert.True(t, errors.Is(err, ErrNonFinite))
}
