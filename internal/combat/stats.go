package combat

import "fmt"

// Stats accumulates over a whole run. The caller owns it and passes the same
// pointer to every encounter.
type Stats struct {
	DamageDealt      int
	DamageTaken      int
	GoldCollected    int
	ExperienceGained int
	EnemiesDefeated  int
	EncountersFled   int
	CriticalHits     int
	// Dodges counts enemy attacks the player avoided, Misses the reverse
	Dodges         int
	Misses         int
	AbilitiesUsed  int
	ItemsLooted    int
	ItemsDiscarded int
	TurnsTaken     int
	LevelsGained   int
	Deaths         int
}

// Lines renders the counters for an end-of-run summary
func (s *Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Enemies defeated: %d", s.EnemiesDefeated),
		fmt.Sprintf("Encounters fled:  %d", s.EncountersFled),
		fmt.Sprintf("Damage dealt:     %d", s.DamageDealt),
		fmt.Sprintf("Damage taken:     %d", s.DamageTaken),
		fmt.Sprintf("Critical hits:    %d", s.CriticalHits),
		fmt.Sprintf("Dodges / misses:  %d / %d", s.Dodges, s.Misses),
		fmt.Sprintf("Abilities used:   %d", s.AbilitiesUsed),
		fmt.Sprintf("Gold collected:   %d", s.GoldCollected),
		fmt.Sprintf("Experience:       %d", s.ExperienceGained),
		fmt.Sprintf("Levels gained:    %d", s.LevelsGained),
		fmt.Sprintf("Items looted:     %d (discarded %d)", s.ItemsLooted, s.ItemsDiscarded),
		fmt.Sprintf("Turns taken:      %d", s.TurnsTaken),
		fmt.Sprintf("Deaths:           %d", s.Deaths),
	}
}
