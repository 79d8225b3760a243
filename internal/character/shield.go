package character

// Shield is a temporary absorption layer. It soaks damage from its own pool
// before HP is touched and disappears when either the pool or the timer runs out.
type Shield struct {
	Amount int
	Turns  int
}

// Active reports whether the shield can still absorb
func (s Shield) Active() bool {
	return s.Amount > 0 && s.Turns > 0
}

// Absorb takes damage out of the shield and returns what gets through.
// A shield that cannot cover the hit breaks.
func (s *Shield) Absorb(damage int) (through, absorbed int, broke bool) {
	if !s.Active() || damage <= 0 {
		return damage, 0, false
	}
	if damage < s.Amount {
		s.Amount -= damage
		return 0, damage, false
	}
	absorbed = s.Amount
	*s = Shield{}
	return damage - absorbed, absorbed, true
}

// Tick counts down one turn and reports whether the shield just expired
func (s *Shield) Tick() bool {
	if !s.Active() {
		return false
	}
	s.Turns--
	if s.Turns <= 0 {
		*s = Shield{}
		return true
	}
	return false
}
