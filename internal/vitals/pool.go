// Package vitals holds bounded resource pools shared by every combatant:
// hit points and mana. A pool never leaves [0, Max].
package vitals

import (
	"errors"
	"fmt"

	"dungeoncrawl/internal/mathutil"
)

// ErrNegativeAmount is returned when a caller passes a negative amount to a
// heal, damage, drain or restore operation.
var ErrNegativeAmount = errors.New("amount must not be negative")

// Pool is a clamped counter such as HP or mana.
type Pool struct {
	Current int
	Max     int
}

// NewPool returns a full pool.
func NewPool(max int) Pool {
	if max < 0 {
		max = 0
	}
	return Pool{Current: max, Max: max}
}

// Drain removes up to amount and returns how much was actually removed.
func (p *Pool) Drain(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("drain %d: %w", amount, ErrNegativeAmount)
	}
	drained := mathutil.IntMin(amount, p.Current)
	p.Current -= drained
	return drained, nil
}

// Restore adds up to amount and returns how much was actually added.
func (p *Pool) Restore(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("restore %d: %w", amount, ErrNegativeAmount)
	}
	before := p.Current
	p.Current += amount
	p.clamp()
	return p.Current - before, nil
}

// Fill sets the pool to its maximum.
func (p *Pool) Fill() {
	p.Current = p.Max
}

// Set assigns the current value, clamped.
func (p *Pool) Set(v int) {
	p.Current = v
	p.clamp()
}

// Grow raises the maximum by amount. The current value is left alone.
func (p *Pool) Grow(amount int) error {
	if amount < 0 {
		return fmt.Errorf("grow %d: %w", amount, ErrNegativeAmount)
	}
	p.Max += amount
	return nil
}

// Empty reports whether the pool reached zero.
func (p Pool) Empty() bool {
	return p.Current <= 0
}

// Fraction returns Current/Max, or 0 for a zero-size pool.
func (p Pool) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Max)
}

// InBounds reports whether the pool satisfies 0 <= Current <= Max.
func (p Pool) InBounds() bool {
	return p.Current >= 0 && p.Current <= p.Max
}

func (p *Pool) clamp() {
	p.Current = mathutil.IntClamp(p.Current, 0, p.Max)
}

func (p Pool) String() string {
	return fmt.Sprintf("%d/%d", p.Current, p.Max)
}
