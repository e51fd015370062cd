package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satindergrewal/noisegen/internal/audio"
	"github.com/satindergrewal/noisegen/internal/config"
	"github.com/satindergrewal/noisegen/internal/noise"
	"github.com/satindergrewal/noisegen/internal/wav"
)

// generate validates the request, synthesizes the buffer and hands it to the
// WAV sink. Nothing is written unless every step before the sink succeeds.
func (a *app) generate(cmd *cobra.Command, args []string) error {
	req, err := config.ParseRequest(args, a.cfg.NoiseKind())
	if err != nil {
		return err
	}
	if n := req.NumSamples(); n >= 0 && n <= a.cfg.MaxSamples {
		if err := wav.CheckFormat(req.SampleRate, req.Channels, audio.BitDepth, n); err != nil {
			return err
		}
	}

	seed := a.cfg.Seed
	if seed == 0 {
		seed = noise.RandomSeed()
	}
	log := a.logger.With(
		zap.String("output", req.Output),
		zap.Stringer("kind", req.Kind),
		zap.Int("channels", req.Channels),
		zap.Int("sample_rate", req.SampleRate),
		zap.Int("duration_s", req.DurationSeconds),
		zap.Uint64("seed", seed),
	)
	log.Info("Generating noise", zap.Bool("parallel", a.cfg.Parallel))

	start := time.Now()
	limit := noise.WithMaxSamples(a.cfg.MaxSamples)
	var buf *noise.SampleBuffer
	if a.cfg.Parallel {
		buf, err = noise.SynthesizeChannels(cmd.Context(), req.GenerationRequest, noise.ChannelSources(seed, req.Channels), limit)
	} else {
		buf, err = noise.Synthesize(req.GenerationRequest, noise.NewSource(seed), limit)
	}
	if err != nil {
		return err
	}
	samples := buf.Take()
	log.Debug("Synthesized", zap.Int("samples", len(samples)), zap.Duration("elapsed", time.Since(start)))

	if a.cfg.FadeMS > 0 {
		fadeFrames := int(int64(a.cfg.FadeMS) * int64(req.SampleRate) / 1000)
		audio.ApplyFade(samples, req.Channels, fadeFrames)
	}

	if err := wav.Write(req.Output, req.SampleRate, req.Channels, audio.BitDepth, samples); err != nil {
		return err
	}
	log.Info("Noise file written", zap.Int("samples", len(samples)), zap.Duration("elapsed", time.Since(start)))

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s noise, %d channels, %d Hz, %d s, seed %d\n",
		req.Output, req.Kind, req.Channels, req.SampleRate, req.DurationSeconds, seed)
	return nil
}
