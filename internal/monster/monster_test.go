package monster

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/vitals"
)

var shipped *Catalog

func TestMain(m *testing.M) {
	shipped = MustLoadCatalog(afero.NewOsFs(), "../../assets/monsters.yaml")
	os.Exit(m.Run())
}

func TestShippedCatalog(t *testing.T) {
	for _, key := range shipped.Keys() {
		t.Run(key, func(t *testing.T) {
			e, err := shipped.NewEnemy(key)
			require.NoError(t, err)
			assert.NotEmpty(t, e.Name)
			assert.True(t, e.IsAlive())
			assert.Equal(t, e.HP.Max, e.HP.Current)
		})
	}

	_, err := shipped.NewEnemy("dragon_emperor")
	assert.ErrorIs(t, err, ErrUnknownMonster)
}

func writeCatalog(t *testing.T, body string) (*Catalog, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "monsters.yaml", []byte(body), 0o644))
	return LoadCatalog(fs, "monsters.yaml")
}

func TestLoadCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "unknown effect",
			body: `
monsters:
  imp:
    name: Imp
    level: 1
    max_hit_points: 10
    mechanics:
      on_hit_effect: frostbite
      on_hit_duration: 2
`,
			wantErr: "frostbite",
		},
		{
			name: "gold range inverted",
			body: `
monsters:
  imp:
    name: Imp
    level: 1
    max_hit_points: 10
    loot:
      gold_min: 10
      gold_max: 2
`,
			wantErr: "GoldMax",
		},
		{
			name: "drop chance out of range",
			body: `
monsters:
  imp:
    name: Imp
    level: 1
    max_hit_points: 10
    loot:
      drops:
        - item: gem
          chance: 1.5
`,
			wantErr: "Chance",
		},
		{
			name: "revive without fraction",
			body: `
monsters:
  imp:
    name: Imp
    level: 1
    max_hit_points: 10
    mechanics:
      revive_once: true
`,
			wantErr: "revive_fraction",
		},
		{
			name: "missing hit points",
			body: `
monsters:
  imp:
    name: Imp
    level: 1
`,
			wantErr: "MaxHitPoints",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := writeCatalog(t, tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnemyState(t *testing.T) {
	catalog, err := writeCatalog(t, `
monsters:
  knight:
    name: Knight
    level: 3
    max_hit_points: 50
    attack: 10
    defense: 4
    mechanics:
      heal_uses: 2
      ablative_charges: 3
      enrage_attack_bonus: 5
      flat_dodge: 0.2
      flight_dodge: 0.5
`)
	require.NoError(t, err)
	e, err := catalog.NewEnemy("knight")
	require.NoError(t, err)

	assert.Equal(t, 2, e.State.HealsLeft)
	assert.Equal(t, 3, e.State.AblativeCharges)

	t.Run("enrage raises attack", func(t *testing.T) {
		assert.Equal(t, 10, e.EffectiveAttack())
		e.State.Enraged = true
		assert.Equal(t, 15, e.EffectiveAttack())
	})

	t.Run("flight dodge overrides flat dodge", func(t *testing.T) {
		d, ok := e.DodgeOverride()
		assert.True(t, ok)
		assert.Equal(t, 0.2, d)
		e.State.Flying = true
		d, _ = e.DodgeOverride()
		assert.Equal(t, 0.5, d)
	})

	t.Run("damage and heal stay in bounds", func(t *testing.T) {
		_, err := e.TakeDamage(80)
		require.NoError(t, err)
		assert.False(t, e.IsAlive())
		_, err = e.Heal(-3)
		assert.ErrorIs(t, err, vitals.ErrNegativeAmount)
		healed, err := e.Heal(500)
		require.NoError(t, err)
		assert.Zero(t, healed, "death is only undone by a revive")
		assert.False(t, e.IsAlive())

		e.HP.Set(10)
		_, err = e.Heal(500)
		require.NoError(t, err)
		assert.Equal(t, 50, e.HP.Current)
	})

	t.Run("reset and clear", func(t *testing.T) {
		e.State.Minions = []Minion{{Damage: 3, Turns: 2}}
		e.State.Charging = true
		require.NoError(t, e.Effects.Apply(effects.Burn, 2))
		e.ClearTransient()
		assert.Empty(t, e.State.Minions)
		assert.False(t, e.State.Charging)
		assert.Equal(t, 0, e.Effects.Len())

		e.ResetMechanics()
		assert.False(t, e.State.Enraged)
		assert.False(t, e.State.Flying)
		assert.Equal(t, 2, e.State.HealsLeft)
	})
}

func TestTickMinions(t *testing.T) {
	s := MechanicState{Minions: []Minion{{Damage: 2, Turns: 1}, {Damage: 2, Turns: 3}}}
	assert.Equal(t, 1, s.TickMinions())
	require.Len(t, s.Minions, 1)
	assert.Equal(t, 2, s.Minions[0].Turns)
}

func TestLootItemKeys(t *testing.T) {
	refs := shipped.LootItemKeys()
	assert.Contains(t, refs["goblin"], "goblin_ear")
	assert.Contains(t, refs["lich"], "berserker_band")
}
