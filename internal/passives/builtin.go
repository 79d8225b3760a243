package passives

import (
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/mathutil"
)

const (
	thornsReflectPct      = 25
	vampiricHealPct       = 20
	executionerThreshold  = 0.25
	soulHarvestHeal       = 10
	soulHarvestMana       = 5
	manaSpringAmount      = 3
	rejuvenationAmount    = 2
	battleReadyDamage     = 5
	phoenixRestoreDivisor = 2
)

func registerBuiltins(e *Engine) {
	e.Register("thorns", OnPlayerTakeDamage, thorns)
	e.Register("vampiric", OnPlayerHit, vampiric)
	e.Register("executioner", OnPlayerHit, executioner)
	e.Register("first_blood", OnPlayerHit, firstBlood)
	e.Register("soul_harvest", OnEnemyKilled, soulHarvest)
	e.Register("mana_spring", OnTurnStart, manaSpring)
	e.Register("rejuvenation", OnTurnStart, rejuvenation)
	e.Register("battle_ready", OnCombatStart, battleReady)
	e.Register("undying", OnPlayerWouldDie, undying)
	e.Register("phoenix", OnPlayerWouldDie, phoenix)
}

// thorns reflects part of every hit taken
func thorns(ctx Context, src items.Item) (int, error) {
	if ctx.Damage <= 0 {
		return 0, nil
	}
	reflected := mathutil.IntMax(1, mathutil.Percent(ctx.Damage, thornsReflectPct))
	ctx.say("%s reflects %d damage!", src.Name, reflected)
	return reflected, nil
}

// vampiric heals for part of the damage dealt
func vampiric(ctx Context, src items.Item) (int, error) {
	if ctx.Damage <= 0 {
		return 0, nil
	}
	healed, err := ctx.Player.Heal(mathutil.IntMax(1, mathutil.Percent(ctx.Damage, vampiricHealPct)))
	if err != nil {
		return 0, err
	}
	if healed > 0 {
		ctx.say("%s drinks %d HP.", src.Name, healed)
	}
	return 0, nil
}

// executioner adds half the hit again against an enemy below a quarter HP
func executioner(ctx Context, src items.Item) (int, error) {
	if ctx.Enemy == nil || ctx.Damage <= 0 || !ctx.Enemy.IsAlive() {
		return 0, nil
	}
	if ctx.Enemy.HPFraction() >= executionerThreshold {
		return 0, nil
	}
	bonus := mathutil.IntMax(1, ctx.Damage/2)
	ctx.say("%s finds a weak spot for %d more!", src.Name, bonus)
	return bonus, nil
}

// firstBlood doubles down on the first connecting hit of an encounter
func firstBlood(ctx Context, src items.Item) (int, error) {
	if ctx.Damage <= 0 || ctx.Player.EncounterFlag("first_blood") {
		return 0, nil
	}
	ctx.Player.SetEncounterFlag("first_blood")
	bonus := mathutil.IntMax(1, ctx.Damage/2)
	ctx.say("First blood! %s deals %d extra.", src.Name, bonus)
	return bonus, nil
}

func soulHarvest(ctx Context, src items.Item) (int, error) {
	healed, err := ctx.Player.Heal(soulHarvestHeal)
	if err != nil {
		return 0, err
	}
	mana, err := ctx.Player.RestoreMana(soulHarvestMana)
	if err != nil {
		return 0, err
	}
	ctx.say("%s harvests the fallen soul (+%d HP, +%d MP).", src.Name, healed, mana)
	return 0, nil
}

func manaSpring(ctx Context, src items.Item) (int, error) {
	n, err := ctx.Player.RestoreMana(manaSpringAmount)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		ctx.say("%s restores %d mana.", src.Name, n)
	}
	return 0, nil
}

func rejuvenation(ctx Context, src items.Item) (int, error) {
	if !ctx.Player.IsAlive() {
		return 0, nil
	}
	n, err := ctx.Player.Heal(rejuvenationAmount)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		ctx.say("%s mends %d HP.", src.Name, n)
	}
	return 0, nil
}

func battleReady(ctx Context, src items.Item) (int, error) {
	ctx.say("%s rallies you: an opening strike for %d!", src.Name, battleReadyDamage)
	return battleReadyDamage, nil
}

// undying leaves the player at 1 HP once per encounter
func undying(ctx Context, src items.Item) (int, error) {
	if ctx.Player.IsAlive() || ctx.Player.EncounterFlag("undying") {
		return 0, nil
	}
	ctx.Player.SetEncounterFlag("undying")
	ctx.Player.HP.Set(1)
	ctx.say("%s refuses to let you fall!", src.Name)
	return 0, nil
}

// phoenix revives at half HP once per run
func phoenix(ctx Context, src items.Item) (int, error) {
	if ctx.Player.IsAlive() || ctx.Player.RunFlag("phoenix") {
		return 0, nil
	}
	ctx.Player.SetRunFlag("phoenix")
	ctx.Player.HP.Set(mathutil.IntMax(1, ctx.Player.HP.Max/phoenixRestoreDivisor))
	ctx.say("%s bursts into flame and you rise again!", src.Name)
	return 0, nil
}
