package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntHelpers(t *testing.T) {
	assert.Equal(t, 2, IntMin(2, 5))
	assert.Equal(t, 5, IntMax(2, 5))
	assert.Equal(t, 0, IntClamp(-4, 0, 10))
	assert.Equal(t, 10, IntClamp(14, 0, 10))
	assert.Equal(t, 7, IntClamp(7, 0, 10))
	assert.Equal(t, 12, Percent(50, 25))
}

func TestFloorAtLeastOne(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0.2, 1},
		{0, 1},
		{-3, 1},
		{1.99, 1},
		{7.5, 7},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorAtLeastOne(c.in), "input %v", c.in)
	}
}

func TestFloatClamp(t *testing.T) {
	assert.Equal(t, 0.95, FloatClamp(1.4, 0, 0.95))
	assert.Equal(t, 0.0, FloatClamp(-0.1, 0, 0.95))
	assert.Equal(t, 0.5, FloatClamp(0.5, 0, 0.95))
}
