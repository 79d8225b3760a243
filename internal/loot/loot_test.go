package loot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/dice"
)

func TestFixedGoldAndCertainDrop(t *testing.T) {
	table := Table{GoldMin: 10, GoldMax: 10, Drops: []Drop{{Item: "wolf_pelt", Chance: 1.0}}}
	r := NewResolver(dice.NewSeeded(42))

	for i := 0; i < 50; i++ {
		out := r.Roll(table)
		assert.Equal(t, Outcome{Gold: 10, Item: "wolf_pelt", Dropped: true}, out)
	}
}

func TestFixedGoldConsumesNoDraw(t *testing.T) {
	script := dice.NewScript()
	NewResolver(script).Roll(Table{GoldMin: 7, GoldMax: 7})
	assert.Equal(t, 0, script.IntDraws)
	assert.Equal(t, 0, script.FloatDraws)
}

func TestGoldRangeIsInclusive(t *testing.T) {
	s := dice.NewScript()
	s.Ints = []int{0, 5, 99}
	r := NewResolver(s)
	table := Table{GoldMin: 3, GoldMax: 8}

	assert.Equal(t, 3, r.Roll(table).Gold)
	assert.Equal(t, 8, r.Roll(table).Gold)
	assert.Equal(t, 8, r.Roll(table).Gold, "draws past the range clamp to the top")
}

func TestFirstSuccessWins(t *testing.T) {
	table := Table{Drops: []Drop{
		{Item: "common", Chance: 0.5},
		{Item: "rare", Chance: 0.9},
		{Item: "mythic", Chance: 1.0},
	}}

	tests := []struct {
		name      string
		draws     []float64
		want      string
		wantDraws int
	}{
		{"first entry hits", []float64{0.1}, "common", 1},
		{"second entry hits", []float64{0.6, 0.2}, "rare", 2},
		{"falls through to last", []float64{0.6, 0.95, 0.99}, "mythic", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dice.NewScript(tt.draws...)
			out := NewResolver(s).Roll(table)
			assert.True(t, out.Dropped)
			assert.Equal(t, tt.want, out.Item)
			assert.Equal(t, tt.wantDraws, s.FloatDraws, "later entries are not rolled")
		})
	}
}

func TestNoDrop(t *testing.T) {
	s := dice.NewScript(0.7)
	out := NewResolver(s).Roll(Table{Drops: []Drop{{Item: "gem", Chance: 0.25}}})
	assert.False(t, out.Dropped)
	assert.Empty(t, out.Item)
}

func TestTableValidation(t *testing.T) {
	bad := Table{GoldMin: 10, GoldMax: 5, Drops: []Drop{{Item: "", Chance: 1.5}}}
	err := config.Validate(&bad)
	assert.ErrorIs(t, err, config.ErrInvalid)

	good := Table{GoldMin: 1, GoldMax: 5, Drops: []Drop{{Item: "gem", Chance: 0.5}}}
	assert.NoError(t, config.Validate(&good))
	assert.Equal(t, []string{"gem"}, good.ItemKeys())
}
