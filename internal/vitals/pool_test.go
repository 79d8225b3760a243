package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDrainAndRestore(t *testing.T) {
	p := NewPool(30)

	got, err := p.Drain(12)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
	assert.Equal(t, 18, p.Current)

	got, err = p.Drain(100)
	require.NoError(t, err)
	assert.Equal(t, 18, got, "drain reports only what was removed")
	assert.Equal(t, 0, p.Current)
	assert.True(t, p.Empty())

	got, err = p.Restore(50)
	require.NoError(t, err)
	assert.Equal(t, 30, got)
	assert.Equal(t, 30, p.Current)
	assert.True(t, p.InBounds())
}

func TestPoolRejectsNegativeAmounts(t *testing.T) {
	p := NewPool(10)

	_, err := p.Drain(-1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	_, err = p.Restore(-5)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.ErrorIs(t, p.Grow(-2), ErrNegativeAmount)
	assert.Equal(t, 10, p.Current, "failed calls must not mutate")
}

func TestPoolSetClamps(t *testing.T) {
	p := NewPool(20)
	p.Set(-4)
	assert.Equal(t, 0, p.Current)
	p.Set(99)
	assert.Equal(t, 20, p.Current)
	assert.InDelta(t, 1.0, p.Fraction(), 1e-9)
	assert.Equal(t, "20/20", p.String())
}
