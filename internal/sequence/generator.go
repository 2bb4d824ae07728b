package sequence

import "math/rand"

// RandomSource is the randomness a Generator draws from.
type RandomSource interface {
	// Bool returns true or false with equal probability.
	Bool() bool
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

type defaultSource struct{}

func (defaultSource) Bool() bool     { return rand.Intn(2) == 0 }
func (defaultSource) IntN(n int) int { return rand.Intn(n) }

// DefaultSource returns a RandomSource backed by the process-wide generator.
func DefaultSource() RandomSource {
	return defaultSource{}
}

// Generator builds random sequences and input directions.
type Generator struct {
	rnd RandomSource
}

// NewGenerator creates a Generator. A nil source uses DefaultSource.
func NewGenerator(rnd RandomSource) *Generator {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Generator{rnd: rnd}
}

// Generate returns length symbols, each a digit or a letter with equal
// probability, and an independently chosen direction. A non-positive length
// yields an empty sequence.
func (g *Generator) Generate(length int) ([]Symbol, Direction) {
	if length < 0 {
		length = 0
	}
	seq := make([]Symbol, length)
	for i := range seq {
		if g.rnd.Bool() {
			seq[i] = Digit(g.rnd.IntN(10))
		} else {
			seq[i] = Letter('A' + byte(g.rnd.IntN(26)))
		}
	}

	dir := Forward
	if g.rnd.Bool() {
		dir = Reverse
	}
	return seq, dir
}
