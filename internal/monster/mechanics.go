package monster

// Mechanics is the parameter bag for an enemy's special behavior. A zero value
// disables the matching mechanic, so ordinary enemies leave the whole block out.
type Mechanics struct {
	// Regeneration: heal RegenAmount every RegenInterval turns
	RegenAmount   int `yaml:"regen_amount" validate:"gte=0"`
	RegenInterval int `yaml:"regen_interval" validate:"gte=0"`

	// Self-heal instead of attacking when HP fraction drops below HealThreshold
	HealThreshold float64 `yaml:"heal_threshold" validate:"gte=0,lte=1"`
	HealAmount    int     `yaml:"heal_amount" validate:"gte=0"`
	HealUses      int     `yaml:"heal_uses" validate:"gte=0"`

	// Phase transitions
	EnrageThreshold   float64 `yaml:"enrage_threshold" validate:"gte=0,lte=1"`
	EnrageAttackBonus int     `yaml:"enrage_attack_bonus" validate:"gte=0"`
	SummonThreshold   float64 `yaml:"summon_threshold" validate:"gte=0,lte=1"`
	SummonCount       int     `yaml:"summon_count" validate:"gte=0"`
	MinionDamage      int     `yaml:"minion_damage" validate:"gte=0"`
	MinionDuration    int     `yaml:"minion_duration" validate:"gte=0"`
	FlightThreshold   float64 `yaml:"flight_threshold" validate:"gte=0,lte=1"`
	FlightDodge       float64 `yaml:"flight_dodge" validate:"gte=0,lte=0.95"`

	// Telegraphed charge: announce, then strike with ChargeMultiplier
	ChargeInterval   int     `yaml:"charge_interval" validate:"gte=0"`
	ChargeMultiplier float64 `yaml:"charge_multiplier" validate:"gte=0"`

	SubmergeInterval int `yaml:"submerge_interval" validate:"gte=0"`

	// Elite roll: weaken, harden or frenzy
	EliteChance float64 `yaml:"elite_chance" validate:"gte=0,lte=1"`

	// Elemental breath replaces the standard attack every BreathInterval turns
	BreathInterval   int     `yaml:"breath_interval" validate:"gte=0"`
	BreathMultiplier float64 `yaml:"breath_multiplier" validate:"gte=0"`
	BreathEffect     string  `yaml:"breath_effect"`
	BreathDuration   int     `yaml:"breath_duration" validate:"gte=0"`

	// Attack variants
	IgnoreDefense         bool    `yaml:"ignore_defense"`
	IgnoreDefenseScale    float64 `yaml:"ignore_defense_scale" validate:"gte=0"`
	ArmorPierce           float64 `yaml:"armor_pierce" validate:"gte=0,lte=1"`
	FirstStrikeMultiplier float64 `yaml:"first_strike_multiplier" validate:"gte=0"`
	CritChance            float64 `yaml:"crit_chance" validate:"gte=0,lte=1"`

	// Post-hit effects
	OnHitEffect   string  `yaml:"on_hit_effect"`
	OnHitChance   float64 `yaml:"on_hit_chance" validate:"gte=0,lte=1"`
	OnHitDuration int     `yaml:"on_hit_duration" validate:"gte=0"`
	ManaDrain     int     `yaml:"mana_drain" validate:"gte=0"`
	Lifesteal     float64 `yaml:"lifesteal" validate:"gte=0,lte=1"`

	CounterChance float64 `yaml:"counter_chance" validate:"gte=0,lte=1"`

	// Defensive
	FlatDodge       float64 `yaml:"flat_dodge" validate:"gte=0,lte=0.95"`
	AblativeCharges int     `yaml:"ablative_charges" validate:"gte=0"`
	AblativeAmount  int     `yaml:"ablative_amount" validate:"gte=0"`

	// On death
	DeathBurst         int     `yaml:"death_burst" validate:"gte=0"`
	DeathCurse         string  `yaml:"death_curse"`
	DeathCurseDuration int     `yaml:"death_curse_duration" validate:"gte=0"`
	ReviveOnce         bool    `yaml:"revive_once"`
	ReviveFraction     float64 `yaml:"revive_fraction" validate:"gte=0,lte=1"`

	Ambush bool `yaml:"ambush"`
}

// effectNames returns every effect kind the bag refers to, for load-time checks
func (m Mechanics) effectNames() []string {
	var names []string
	for _, n := range []string{m.BreathEffect, m.OnHitEffect, m.DeathCurse} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Minion is a summoned add that strikes after its master
type Minion struct {
	Damage int
	Turns  int
}

// MechanicState is the runtime side of Mechanics. It belongs to one enemy
// instance and only the combat resolver changes it.
type MechanicState struct {
	Turn             int
	Enraged          bool
	Summoned         bool
	Flying           bool
	Charging         bool
	Submerged        bool
	Revived          bool
	FirstStrikeSpent bool
	HealsLeft        int
	AblativeCharges  int
	Minions          []Minion
}

// TickMinions counts down every minion and drops expired ones. It returns how
// many left.
func (s *MechanicState) TickMinions() int {
	kept := s.Minions[:0]
	gone := 0
	for _, m := range s.Minions {
		m.Turns--
		if m.Turns > 0 {
			kept = append(kept, m)
		} else {
			gone++
		}
	}
	s.Minions = kept
	return gone
}
