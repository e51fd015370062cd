package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satindergrewal/noisegen/internal/spectrum"
	"github.com/satindergrewal/noisegen/internal/wav"
)

const minSlopeHz = 20

func newInspectCmd(a *app) *cobra.Command {
	var (
		withSpectrum bool
		channel      int
		segment      int
	)
	cmd := &cobra.Command{
		Use:   "inspect <file.wav>",
		Short: "Print a WAV file's format and optionally its spectral slope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if !withSpectrum {
				info, err := wav.ReadInfo(path)
				if err != nil {
					return err
				}
				printInfo(cmd, path, info)
				return nil
			}

			info, samples, err := wav.Decode(path)
			if err != nil {
				return err
			}
			printInfo(cmd, path, info)

			if channel < 0 || channel >= info.Channels {
				return fmt.Errorf("channel %d out of range, file has %d", channel, info.Channels)
			}
			psd, err := spectrum.Welch(spectrum.Channel(samples, info.Channels, channel), info.SampleRate, segment)
			if err != nil {
				return err
			}
			lo := max(minSlopeHz, 4*float64(info.SampleRate)/float64(segment))
			hi := float64(info.SampleRate) / 4
			slope, err := psd.Slope(lo, hi)
			if err != nil {
				return err
			}
			a.logger.Debug("Spectrum estimated", zap.String("file", path), zap.Int("segment", segment), zap.Float64("slope", slope))
			fmt.Fprintf(out, "spectral slope: %.2f (channel %d, %.0f-%.0f Hz; white ~ 0, pink ~ -1)\n", slope, channel, lo, hi)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSpectrum, "spectrum", false, "estimate the log-log spectral slope")
	cmd.Flags().IntVar(&channel, "channel", 0, "channel to analyse")
	cmd.Flags().IntVar(&segment, "segment", 1024, "Welch segment length in samples")
	return cmd
}

func printInfo(cmd *cobra.Command, path string, info wav.Info) {
	fmt.Fprintf(cmd.OutOrStdout(), "file: %s\nsample rate: %d Hz\nchannels: %d\nbit depth: %d\nframes: %d\nduration: %s\n",
		path, info.SampleRate, info.Channels, info.BitDepth, info.Frames, info.Duration())
}
