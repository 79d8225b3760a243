package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/vitals"
)

func TestSelfHealReplacesAttack(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), nil)
	p := testPlayer(t, 5, 0, 100)
	e := testEnemy(100, 10, 0)
	e.HP = vitals.Pool{Current: 20, Max: 100}
	e.Mechanics = monster.Mechanics{HealThreshold: 0.5, HealAmount: 30, HealUses: 1}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, 45, e.HP.Current)
	assert.Zero(t, e.State.HealsLeft)
	assert.Equal(t, 100, p.HP.Current)
	assert.Equal(t, []string{"heal"}, actionsBy(r.Log(), "Dummy"))
}

func TestRegenDoesNotReplaceAttack(t *testing.T) {
	r, _ := newTestResolver(shortFight(2), nil)
	p := testPlayer(t, 5, 0, 100)
	e := testEnemy(100, 10, 0)
	e.Mechanics = monster.Mechanics{RegenAmount: 3, RegenInterval: 2}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, 93, e.HP.Current)
	assert.Equal(t, []string{"attack", "regenerate", "attack"}, actionsBy(r.Log(), "Dummy"))
	assert.Equal(t, 80, p.HP.Current)
}

func TestTelegraphedCharge(t *testing.T) {
	r, d := newTestResolver(shortFight(3), nil)
	p := testPlayer(t, 1, 0, 100)
	e := testEnemy(1000, 10, 0)
	e.Mechanics = monster.Mechanics{ChargeInterval: 2, ChargeMultiplier: 3}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"attack", "wind-up", "charge"}, actionsBy(r.Log(), "Dummy"))
	assert.True(t, hasRecord(r.Log(), 3, "Dummy", "charge"))
	assert.Equal(t, 60, p.HP.Current)
	assert.True(t, d.said("gathers itself to charge"))
}

func TestSubmergedEnemyCannotBeHit(t *testing.T) {
	r, d := newTestResolver(shortFight(3), nil)
	p := testPlayer(t, 5, 0, 100)
	e := testEnemy(1000, 10, 0)
	e.Mechanics = monster.Mechanics{SubmergeInterval: 2}
	stats := &Stats{}

	_, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, 990, e.HP.Current)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 80, p.HP.Current)
	assert.True(t, d.said("surfaces"))
	assert.True(t, hasRecord(r.Log(), 2, "Dummy", "submerge"))
	assert.True(t, hasRecord(r.Log(), 3, "Dummy", "attack"))
}

func TestEnrageAtTurnStart(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), nil)
	p := testPlayer(t, 1, 0, 100)
	e := testEnemy(100, 10, 0)
	e.HP.Set(40)
	e.Mechanics = monster.Mechanics{EnrageThreshold: 0.5, EnrageAttackBonus: 5}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.True(t, e.State.Enraged)
	assert.Equal(t, 85, p.HP.Current)
	assert.Equal(t, []string{"enrage", "attack"}, actionsBy(r.Log(), "Dummy"))
}

func TestSummonedMinionsStrike(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), nil)
	p := testPlayer(t, 1, 0, 100)
	e := testEnemy(100, 10, 0)
	e.HP.Set(30)
	e.Mechanics = monster.Mechanics{SummonThreshold: 0.5, SummonCount: 2, MinionDamage: 4}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.True(t, e.State.Summoned)
	assert.Equal(t, 100-10-4-4, p.HP.Current)
	assert.Equal(t, []string{"attack", "attack"}, actionsBy(r.Log(), "Dummy's minion"))
}

func TestReviveOnce(t *testing.T) {
	r, _ := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 0, 100)
	e := testEnemy(20, 10, 0)
	e.Mechanics = monster.Mechanics{ReviveOnce: true, ReviveFraction: 0.5}

	result, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, Won, result)
	assert.True(t, e.State.Revived)
	assert.True(t, hasRecord(r.Log(), 1, "Dummy", "revive"))
	assert.True(t, hasRecord(r.Log(), 1, "Dummy", "attack"), "the revived enemy still acts")
	assert.Equal(t, 90, p.HP.Current)
}

func TestDeathBurstCanKillThePlayer(t *testing.T) {
	r, _ := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 0, 30)
	e := testEnemy(10, 1, 0)
	e.Mechanics = monster.Mechanics{DeathBurst: 50}
	stats := &Stats{}

	result, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, PlayerDied, result)
	assert.Zero(t, p.HP.Current)
	assert.Equal(t, 1, stats.Deaths)
	assert.Zero(t, stats.EnemiesDefeated)
}

func TestDeathCurseLingers(t *testing.T) {
	r, _ := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 0, 100)
	e := testEnemy(10, 1, 0)
	e.Mechanics = monster.Mechanics{DeathCurse: "weakened"}

	result, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, Won, result)
	assert.Equal(t, 1, p.Effects.Count(effects.Weakened))
}

func TestAmbushStrikesBeforeTurnOne(t *testing.T) {
	r, _ := newTestResolver(nil, nil)
	p := testPlayer(t, 20, 0, 50)
	e := testEnemy(100, 200, 0)
	e.Mechanics = monster.Mechanics{Ambush: true}
	stats := &Stats{}

	result, err := r.RunCombat(p, e, stats)
	require.NoError(t, err)
	assert.Equal(t, PlayerDied, result)
	require.NotEmpty(t, r.Log())
	assert.Equal(t, 0, r.Log()[0].Turn)
	assert.Equal(t, "Dummy", r.Log()[0].Actor)
	assert.Zero(t, stats.TurnsTaken)
}

func TestCounterAttack(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), nil)
	p := testPlayer(t, 5, 0, 100)
	e := testEnemy(1000, 10, 0)
	e.Mechanics = monster.Mechanics{CounterChance: 1}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"counter", "attack"}, actionsBy(r.Log(), "Dummy"))
	assert.Equal(t, 85, p.HP.Current)
}

func TestFirstStrikeOnlyOnce(t *testing.T) {
	r, _ := newTestResolver(shortFight(2), nil)
	p := testPlayer(t, 1, 0, 100)
	e := testEnemy(1000, 10, 0)
	e.Mechanics = monster.Mechanics{FirstStrikeMultiplier: 2}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.True(t, e.State.FirstStrikeSpent)
	assert.Equal(t, 100-20-10, p.HP.Current)
}

func TestBreathIgnoresDefenseAndAfflicts(t *testing.T) {
	r, d := newTestResolver(shortFight(2), nil)
	p := testPlayer(t, 1, 50, 100)
	e := testEnemy(1000, 10, 0)
	e.Mechanics = monster.Mechanics{BreathInterval: 2, BreathMultiplier: 1.5, BreathEffect: "burn"}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.True(t, hasRecord(r.Log(), 2, "Dummy", "breath"))
	assert.Equal(t, 100-1-15, p.HP.Current)
	assert.True(t, d.said("afflicted with burn for 2 turns"))
}

func TestPostHitEffects(t *testing.T) {
	r, _ := newTestResolver(shortFight(1), dice.NewScript(0.99, 0.99, 0.99, 0.99, 0.0))
	p := testPlayer(t, 1, 0, 100)
	e := testEnemy(100, 10, 0)
	e.HP.Set(50)
	e.Mechanics = monster.Mechanics{
		OnHitEffect: "poison", OnHitChance: 0.5, OnHitDuration: 3,
		ManaDrain: 7, Lifesteal: 0.5,
	}

	_, err := r.RunCombat(p, e, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, p.HP.Current)
	assert.Equal(t, 33, p.Mana.Current)
	assert.Equal(t, 49+5, e.HP.Current)
}

func TestEliteBehaviours(t *testing.T) {
	t.Run("weaken replaces the attack", func(t *testing.T) {
		script := dice.NewScript(0.99, 0.99, 0.0)
		script.Ints = []int{0}
		r, _ := newTestResolver(shortFight(1), script)
		p := testPlayer(t, 1, 0, 100)
		e := testEnemy(1000, 10, 0)
		e.Mechanics = monster.Mechanics{EliteChance: 0.5}

		_, err := r.RunCombat(p, e, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"weaken"}, actionsBy(r.Log(), "Dummy"))
		assert.Equal(t, 100, p.HP.Current)
	})

	t.Run("harden adds ablative charges", func(t *testing.T) {
		script := dice.NewScript(0.99, 0.99, 0.0)
		script.Ints = []int{1}
		r, _ := newTestResolver(shortFight(1), script)
		e := testEnemy(1000, 10, 0)
		e.Mechanics = monster.Mechanics{EliteChance: 0.5}

		_, err := r.RunCombat(testPlayer(t, 1, 0, 100), e, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, e.State.AblativeCharges)
		assert.Equal(t, []string{"harden", "attack"}, actionsBy(r.Log(), "Dummy"))
	})

	t.Run("frenzy attacks twice", func(t *testing.T) {
		script := dice.NewScript(0.99, 0.99, 0.0)
		script.Ints = []int{2}
		r, _ := newTestResolver(shortFight(1), script)
		p := testPlayer(t, 1, 0, 100)
		e := testEnemy(1000, 10, 0)
		e.Mechanics = monster.Mechanics{EliteChance: 0.5}

		_, err := r.RunCombat(p, e, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"attack", "attack"}, actionsBy(r.Log(), "Dummy"))
		assert.Equal(t, 80, p.HP.Current)
	})
}

func TestReflectedDeathEndsTheStrike(t *testing.T) {
	thornMail := items.Item{Name: "Thorn Mail", Slot: items.SlotArmor, Passives: []string{"thorns"}}

	t.Run("no lifesteal after dying", func(t *testing.T) {
		r, d := newTestResolver(nil, nil)
		p := testPlayer(t, 20, 0, 100)
		_, _, err := p.Equipment.Equip(thornMail)
		require.NoError(t, err)
		e := testEnemy(50, 10, 0)
		e.HP.Set(1)
		e.Mechanics = monster.Mechanics{Ambush: true, Lifesteal: 1.0}

		result, err := r.RunCombat(p, e, nil)
		require.NoError(t, err)
		assert.Equal(t, Won, result)
		assert.Equal(t, 0, e.HP.Current)
		assert.Equal(t, 90, p.HP.Current)
		assert.False(t, d.said("drinks"))
		assert.True(t, hasRecord(r.Log(), 0, "Hero", "reflect"))
	})

	t.Run("no second frenzy swing", func(t *testing.T) {
		script := dice.NewScript(0.99, 0.99, 0.0)
		script.Ints = []int{2}
		r, _ := newTestResolver(nil, script)
		p := testPlayer(t, 1, 0, 100)
		_, _, err := p.Equipment.Equip(thornMail)
		require.NoError(t, err)
		e := testEnemy(3, 10, 0)
		e.Mechanics = monster.Mechanics{EliteChance: 0.5}

		result, err := r.RunCombat(p, e, nil)
		require.NoError(t, err)
		assert.Equal(t, Won, result)
		assert.Equal(t, []string{"attack"}, actionsBy(r.Log(), "Dummy"))
		assert.Equal(t, 90, p.HP.Current)
	})
}
