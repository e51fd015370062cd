package noise

import "math/rand/v2"

// Source is the entropy a synthesizer draws from. *rand.Rand satisfies it.
// A Source is owned by one generator at a time and need not be safe for
// concurrent use.
type Source interface {
	Float64() float64 // uniform in [0, 1)
}

// golden ratio increment, used to spread stream selectors apart
const streamStep = 0x9e3779b97f4a7c15

// NewSource returns a deterministic PCG source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^streamStep))
}

// ChannelSources derives n independent sources from one seed, one per
// channel, so parallel synthesis is reproducible regardless of scheduling.
func ChannelSources(seed uint64, n int) []Source {
	sources := make([]Source, n)
	for c := range sources {
		sources[c] = rand.New(rand.NewPCG(seed, uint64(c+1)*streamStep))
	}
	return sources
}

// RandomSeed draws a seed from the runtime's entropy-seeded generator.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// uniform maps a draw from src onto [-1, 1).
func uniform(src Source) float64 {
	return 2*src.Float64() - 1
}
