package noise

import "math/bits"

// maxOctaves bounds the Voss-McCartney accumulator array. 32 octaves covers
// any per-channel length a RIFF container can hold.
const maxOctaves = 32

// generator produces one channel's sample stream.
type generator interface {
	next() float32
}

func newGenerator(req GenerationRequest, src Source) generator {
	if req.Kind == Pink {
		return newPinkGenerator(src, req.FramesPerChannel())
	}
	return &whiteGenerator{src: src}
}

// whiteGenerator draws every sample independently.
type whiteGenerator struct {
	src Source
}

func (g *whiteGenerator) next() float32 {
	return float32(uniform(g.src))
}

// pinkGenerator is the Voss-McCartney filter state for one channel.
// Accumulator j is re-rolled whenever bit j of the sample index flips, so it
// holds its value for 2^j samples and contributes power below fs/2^j. The
// average over all octaves approximates a 1/f spectrum.
type pinkGenerator struct {
	src     Source
	rows    [maxOctaves]float64
	octaves int
	sum     float64
	n       uint64
}

func newPinkGenerator(src Source, frames int) *pinkGenerator {
	g := &pinkGenerator{src: src, octaves: octaveCount(frames)}
	for j := 0; j < g.octaves; j++ {
		g.rows[j] = uniform(src)
		g.sum += g.rows[j]
	}
	return g
}

// octaveCount is ceil(log2(frames)), kept within [1, maxOctaves].
func octaveCount(frames int) int {
	if frames <= 1 {
		return 1
	}
	k := bits.Len(uint(frames - 1))
	if k > maxOctaves {
		k = maxOctaves
	}
	return k
}

func (g *pinkGenerator) next() float32 {
	if g.n > 0 {
		// bits flipped between n-1 and n are always a run from bit 0
		flipped := g.n ^ (g.n - 1)
		for j := 0; j < g.octaves && flipped != 0; j++ {
			v := uniform(g.src)
			g.sum += v - g.rows[j]
			g.rows[j] = v
			flipped >>= 1
		}
	}
	g.n++
	return clamp(g.sum / float64(g.octaves))
}

func clamp(v float64) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return float32(v)
}
