// Package noise synthesizes white and pink noise into interleaved sample
// buffers.
package noise

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ctxCheckFrames is how many frames a channel worker fills between
// cancellation checks.
const ctxCheckFrames = 1 << 14

// Synthesize fills a new buffer for req, drawing every sample from src in
// interleaved order. Each channel keeps its own pink-noise filter state, so
// channels are uncorrelated even though they share one source.
func Synthesize(req GenerationRequest, src Source, opts ...Option) (*SampleBuffer, error) {
	if src == nil {
		return nil, errors.New("noise: nil source")
	}
	buf, err := allocate(req, opts)
	if err != nil {
		return nil, err
	}

	gens := make([]generator, req.Channels)
	for c := range gens {
		gens[c] = newGenerator(req, src)
	}

	samples := buf.samples
	for i := 0; i < len(samples); i += req.Channels {
		for c, g := range gens {
			samples[i+c] = g.next()
		}
	}
	return buf, nil
}

// SynthesizeChannels generates each channel on its own goroutine with its own
// source, one per channel. Workers write disjoint interleaved indices and
// share no filter state. The result depends only on the sources, not on
// scheduling.
func SynthesizeChannels(ctx context.Context, req GenerationRequest, sources []Source, opts ...Option) (*SampleBuffer, error) {
	buf, err := allocate(req, opts)
	if err != nil {
		return nil, err
	}
	if len(sources) != req.Channels {
		return nil, fmt.Errorf("noise: %d sources for %d channels", len(sources), req.Channels)
	}
	for c, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("noise: nil source for channel %d", c)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	samples := buf.samples
	stride := req.Channels
	for c, src := range sources {
		g.Go(func() error {
			gen := newGenerator(req, src)
			for frame, i := 0, c; i < len(samples); frame, i = frame+1, i+stride {
				if frame%ctxCheckFrames == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				samples[i] = gen.next()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("noise: synthesize channels: %w", err)
	}
	return buf, nil
}
