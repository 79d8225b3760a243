package character

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/vitals"
)

func testCatalog(t *testing.T) *items.Catalog {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "items.yaml", []byte(`
items:
  rusty_sword:
    name: Rusty Sword
    type: weapon
    slot: main_hand
    attack_bonus: 3
  leather_vest:
    name: Leather Vest
    type: armor
    slot: armor
    defense_bonus: 2
    dodge_bonus: 0.05
    passives: [thorns]
  healing_draught:
    name: Healing Draught
    type: consumable
`), 0o644))
	catalog, err := items.LoadCatalog(fs, "items.yaml")
	require.NoError(t, err)
	return catalog
}

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	cfg := config.Default()
	cfg.Player.StartingEquipment = []string{"rusty_sword", "leather_vest", "healing_draught"}
	p, err := NewPlayer(cfg, testCatalog(t))
	require.NoError(t, err)
	return p
}

func TestNewPlayer(t *testing.T) {
	p := newTestPlayer(t)

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, vitals.Pool{Current: 100, Max: 100}, p.HP)
	assert.Equal(t, 15, p.EffectiveAttack())
	assert.Equal(t, 7, p.EffectiveDefense())
	assert.InDelta(t, 0.05, p.DodgeBonus(), 1e-9)
	assert.True(t, p.HasPassive("thorns"))
	assert.False(t, p.HasPassive("vampiric"))
	assert.Equal(t, []string{"Healing Draught"}, p.Inventory.Names())
}

func TestNewPlayerUnknownStartingItem(t *testing.T) {
	cfg := config.Default()
	cfg.Player.StartingEquipment = []string{"mithril_crown"}
	_, err := NewPlayer(cfg, testCatalog(t))
	assert.ErrorIs(t, err, items.ErrUnknownItem)
}

func TestPlayerVitals(t *testing.T) {
	p := newTestPlayer(t)

	t.Run("damage clamps at zero", func(t *testing.T) {
		lost, err := p.TakeDamage(250)
		require.NoError(t, err)
		assert.Equal(t, 100, lost)
		assert.False(t, p.IsAlive())
	})

	t.Run("a dead player cannot be healed", func(t *testing.T) {
		gained, err := p.Heal(30)
		require.NoError(t, err)
		assert.Zero(t, gained)
		assert.False(t, p.IsAlive())
	})

	t.Run("heal clamps at max", func(t *testing.T) {
		p.HP.Set(40)
		gained, err := p.Heal(500)
		require.NoError(t, err)
		assert.Equal(t, 60, gained)
		assert.True(t, p.InBounds())
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		_, err := p.TakeDamage(-1)
		assert.ErrorIs(t, err, vitals.ErrNegativeAmount)
		_, err = p.Heal(-1)
		assert.ErrorIs(t, err, vitals.ErrNegativeAmount)
		assert.ErrorIs(t, p.GainExperience(-5), vitals.ErrNegativeAmount)
		assert.ErrorIs(t, p.SpendMana(-2), vitals.ErrNegativeAmount)
		assert.Equal(t, 100, p.HP.Current)
	})
}

func TestSpendMana(t *testing.T) {
	p := newTestPlayer(t)
	p.Mana.Set(5)

	err := p.SpendMana(8)
	assert.ErrorIs(t, err, ErrInsufficientMana)
	assert.Equal(t, 5, p.GetMana(), "failed spend leaves mana untouched")

	require.NoError(t, p.SpendMana(5))
	assert.Equal(t, 0, p.GetMana())
}

func TestLevelUpLoop(t *testing.T) {
	cfg := config.Default()
	p := newTestPlayer(t)
	p.HP.Set(10)

	require.NoError(t, p.GainExperience(250))
	levels := 0
	for p.CanLevelUp(cfg.Progression) {
		require.NoError(t, p.LevelUp(cfg.Progression))
		levels++
	}

	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 120, p.HP.Max)
	assert.Equal(t, 120, p.HP.Current, "leveling restores HP")
	assert.Equal(t, 50, p.Mana.Current)
	assert.Equal(t, 16, p.Attack)
}

func TestLevelCap(t *testing.T) {
	cfg := config.Default()
	cfg.Progression.LevelCap = 2
	p := newTestPlayer(t)
	require.NoError(t, p.GainExperience(1000))

	for p.CanLevelUp(cfg.Progression) {
		require.NoError(t, p.LevelUp(cfg.Progression))
	}
	assert.Equal(t, 2, p.Level)
}

func TestTraits(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		input string
		want  Trait
		ok    bool
	}{
		{"h", TraitHP, true},
		{"Attack", TraitAttack, true},
		{"d", TraitDefense, true},
		{"x", TraitHP, false},
		{"", TraitHP, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTrait(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	p := newTestPlayer(t)
	require.NoError(t, p.ApplyTrait(TraitHP, cfg.Progression))
	assert.Equal(t, 115, p.HP.Max)
	require.NoError(t, p.ApplyTrait(TraitDefense, cfg.Progression))
	assert.Equal(t, 7, p.Defense)
}

func TestShield(t *testing.T) {
	s := Shield{Amount: 10, Turns: 2}

	through, absorbed, broke := s.Absorb(4)
	assert.Equal(t, 0, through)
	assert.Equal(t, 4, absorbed)
	assert.False(t, broke)

	through, absorbed, broke = s.Absorb(9)
	assert.Equal(t, 3, through)
	assert.Equal(t, 6, absorbed)
	assert.True(t, broke)
	assert.False(t, s.Active())

	s = Shield{Amount: 10, Turns: 1}
	assert.True(t, s.Tick())
	through, _, _ = s.Absorb(5)
	assert.Equal(t, 5, through)
}

func TestFlagsAndTransientState(t *testing.T) {
	p := newTestPlayer(t)
	p.SetEncounterFlag("undying")
	p.SetRunFlag("phoenix")
	require.NoError(t, p.Effects.Apply(effects.Poison, 3))
	p.Shield = Shield{Amount: 5, Turns: 2}

	p.ResetEncounterFlags()
	p.ClearTransient()

	assert.False(t, p.EncounterFlag("undying"))
	assert.True(t, p.RunFlag("phoenix"), "run flags survive encounter resets")
	assert.Equal(t, 0, p.Effects.Len())
	assert.False(t, p.Shield.Active())
}
