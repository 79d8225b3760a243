package dice

// Script replays fixed draws. When a queue runs dry it falls back to the
// configured defaults, so tests only script the draws they care about.
type Script struct {
	Floats []float64
	Ints   []int

	// DefaultFloat is returned once Floats is exhausted.
	DefaultFloat float64
	// DefaultInt is returned once Ints is exhausted (clamped to n-1).
	DefaultInt int

	FloatDraws int
	IntDraws   int
}

// NewScript returns a Script with the given float draws. Exhausted draws
// return 0.99, which fails every chance check below 0.99.
func NewScript(floats ...float64) *Script {
	return &Script{Floats: floats, DefaultFloat: 0.99}
}

// Float64 implements Roller.
func (s *Script) Float64() float64 {
	s.FloatDraws++
	if len(s.Floats) == 0 {
		return s.DefaultFloat
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Intn implements Roller.
func (s *Script) Intn(n int) int {
	s.IntDraws++
	v := s.DefaultInt
	if len(s.Ints) > 0 {
		v = s.Ints[0]
		s.Ints = s.Ints[1:]
	}
	if n <= 0 {
		return 0
	}
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
