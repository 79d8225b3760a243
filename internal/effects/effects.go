// Package effects is the per-combatant status effect store. Effects are timed
// instances; applying a kind that is already active appends a second,
// independently expiring instance instead of refreshing the first.
package effects

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownKind     = errors.New("unknown effect kind")
	ErrInvalidDuration = errors.New("effect duration must be positive")
	ErrInvalidStrength = errors.New("effect magnitude must not be negative")
)

type Kind string

const (
	Poison    Kind = "poison"
	Burn      Kind = "burn"
	Bleed     Kind = "bleed"
	Regen     Kind = "regen"
	Stun      Kind = "stun"
	Fortified Kind = "fortified"
	Weakened  Kind = "weakened"
	Berserk   Kind = "berserk"
)

type periodic int

const (
	periodicNone periodic = iota
	periodicDamage
	periodicHeal
)

type definition struct {
	magnitude int
	periodic  periodic
}

// definitions holds the default per-tick magnitude of each kind. Non-periodic
// kinds (stun, fortified, weakened, berserk) are read by the damage pipeline.
var definitions = map[Kind]definition{
	Poison:    {magnitude: 3, periodic: periodicDamage},
	Burn:      {magnitude: 4, periodic: periodicDamage},
	Bleed:     {magnitude: 2, periodic: periodicDamage},
	Regen:     {magnitude: 3, periodic: periodicHeal},
	Stun:      {},
	Fortified: {},
	Weakened:  {},
	Berserk:   {},
}

// ParseKind validates a kind name coming from configuration.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, ok := definitions[k]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownKind)
	}
	return k, nil
}

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(definitions))
	for k := range definitions {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsDamageOverTime reports whether the kind hurts its bearer every tick.
func (k Kind) IsDamageOverTime() bool {
	return definitions[k].periodic == periodicDamage
}

// Active is one running instance.
type Active struct {
	Kind      Kind
	Remaining int
	Magnitude int
}

// Target receives periodic damage and healing while a store ticks. Healing
// stops for the rest of the tick once the target is down.
type Target interface {
	TakeDamage(amount int) (int, error)
	Heal(amount int) (int, error)
	IsAlive() bool
}

// Tick describes what one instance did during TickTurnStart.
type Tick struct {
	Kind    Kind
	Damage  int
	Healed  int
	Expired bool
}

// Store is the set of effects attached to one combatant.
type Store struct {
	active []Active
}

// Apply appends a new instance with the kind's default magnitude.
func (s *Store) Apply(kind Kind, duration int) error {
	def, ok := definitions[kind]
	if !ok {
		return fmt.Errorf("apply %q: %w", kind, ErrUnknownKind)
	}
	return s.ApplyWithMagnitude(kind, duration, def.magnitude)
}

// ApplyWithMagnitude appends a new instance with an explicit per-tick amount.
func (s *Store) ApplyWithMagnitude(kind Kind, duration, magnitude int) error {
	if _, ok := definitions[kind]; !ok {
		return fmt.Errorf("apply %q: %w", kind, ErrUnknownKind)
	}
	if duration <= 0 {
		return fmt.Errorf("apply %s for %d turns: %w", kind, duration, ErrInvalidDuration)
	}
	if magnitude < 0 {
		return fmt.Errorf("apply %s with magnitude %d: %w", kind, magnitude, ErrInvalidStrength)
	}
	s.active = append(s.active, Active{Kind: kind, Remaining: duration, Magnitude: magnitude})
	return nil
}

// TickTurnStart applies every periodic instance to target, decrements every
// instance by one and drops those that reach zero. Instances are processed in
// the order they were applied.
func (s *Store) TickTurnStart(target Target) ([]Tick, error) {
	if len(s.active) == 0 {
		return nil, nil
	}
	ticks := make([]Tick, 0, len(s.active))
	kept := s.active[:0]
	var firstErr error
	for _, a := range s.active {
		tick := Tick{Kind: a.Kind}
		switch definitions[a.Kind].periodic {
		case periodicDamage:
			if target != nil && a.Magnitude > 0 {
				n, err := target.TakeDamage(a.Magnitude)
				if err != nil && firstErr == nil {
					firstErr = err
				}
				tick.Damage = n
			}
		case periodicHeal:
			if target != nil && a.Magnitude > 0 && target.IsAlive() {
				n, err := target.Heal(a.Magnitude)
				if err != nil && firstErr == nil {
					firstErr = err
				}
				tick.Healed = n
			}
		}
		a.Remaining--
		if a.Remaining <= 0 {
			tick.Expired = true
		} else {
			kept = append(kept, a)
		}
		ticks = append(ticks, tick)
	}
	s.active = kept
	return ticks, firstErr
}

// Has reports whether at least one instance of kind is active.
func (s *Store) Has(kind Kind) bool {
	for _, a := range s.active {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns the number of active instances of kind.
func (s *Store) Count(kind Kind) int {
	n := 0
	for _, a := range s.active {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Active returns a copy of the running instances.
func (s *Store) Active() []Active {
	out := make([]Active, len(s.active))
	copy(out, s.active)
	return out
}

// Clear drops every instance.
func (s *Store) Clear() {
	s.active = nil
}

// Len returns the number of running instances.
func (s *Store) Len() int {
	return len(s.active)
}
