package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/loot"
)

func TestVictoryAwardsLoot(t *testing.T) {
	r, d := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 5, 100)
	e := testEnemy(15, 1, 0)
	e.Loot = loot.Table{GoldMin: 10, GoldMax: 10, Drops: []loot.Drop{{Item: "wolf_fang", Chance: 1.0}}}
	stats := &Stats{}

	result, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, Won, result)
	assert.Equal(t, 10, p.Gold)
	assert.Equal(t, 10, stats.GoldCollected)
	assert.Equal(t, 1, stats.ItemsLooted)
	require.Equal(t, 1, p.Inventory.Len())
	assert.Equal(t, "wolf_fang", p.Inventory.Items[0].Key)
	assert.True(t, d.said("You collect 10 gold."))
}

func TestFullInventoryDiscardsDrop(t *testing.T) {
	r, d := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 5, 100)
	inv, err := items.NewInventory(1)
	require.NoError(t, err)
	require.NoError(t, inv.Add(items.Item{Key: "rock", Name: "Rock"}))
	p.Inventory = inv

	e := testEnemy(15, 1, 0)
	e.Loot = loot.Table{Drops: []loot.Drop{{Item: "wolf_fang", Chance: 1.0}}}
	stats := &Stats{}

	result, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, Won, result)
	assert.Equal(t, 1, inv.Len())
	assert.Equal(t, 1, stats.ItemsDiscarded)
	assert.Zero(t, stats.ItemsLooted)
	assert.True(t, d.said("pack is full"))
}

func TestLevelUpTraitReprompts(t *testing.T) {
	r, d := newTestResolver(nil, nil, "a", "x", "d")
	p := testPlayer(t, 20, 5, 100)
	p.HP.Set(60)
	e := testEnemy(15, 1, 0)
	e.Experience = 200
	stats := &Stats{}

	result, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, Won, result)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 2, stats.LevelsGained)
	assert.Equal(t, 5+1+2+1, p.Defense)
	assert.Equal(t, 20+2+2, p.Attack)
	assert.Equal(t, 120, p.HP.Max)
	assert.Equal(t, 120, p.HP.Current, "level up restores HP")
	require.Len(t, d.errors, 1)
	assert.Contains(t, d.errors[0], "Unknown trait")
}

func TestLevelCapStopsLeveling(t *testing.T) {
	r, _ := newTestResolver(nil, nil)
	r.cfg.Progression.LevelCap = 2
	p := testPlayer(t, 20, 5, 100)
	e := testEnemy(15, 1, 0)
	e.Experience = 1000

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1000, p.Experience)
}

func TestPassivesFireThroughCombat(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), nil)
	p := testPlayer(t, 5, 0, 100)
	_, _, err := p.Equipment.Equip(items.Item{Name: "Spiked Mail", Slot: items.SlotArmor, Passives: []string{"thorns"}})
	require.NoError(t, err)
	_, _, err = p.Equipment.Equip(items.Item{Name: "War Banner", Slot: items.SlotOffHand, Passives: []string{"battle_ready"}})
	require.NoError(t, err)
	e := testEnemy(100, 12, 0)
	stats := &Stats{}

	_, err = r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, 100-5-5-3, e.HP.Current, "opening 5, attack 5, thorns 3")
	assert.Equal(t, 13, stats.DamageDealt)
	assert.Equal(t, 88, p.HP.Current)
}
