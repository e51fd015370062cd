package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/satindergrewal/noisegen/internal/config"
	"github.com/satindergrewal/noisegen/internal/observability"
)

// app carries state shared by the root command and its subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "noisegen <output.wav> <channels> <sample-rate> <duration>",
		Short: "Generate white or pink noise as a 16-bit PCM WAV file",
		Example: "  noisegen out.wav 2 44100 10\n" +
			"  noisegen --kind pink --seed 42 pink.wav 1 48000 30",
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.generate,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this file, rotated")

	f := root.Flags()
	// Flags must precede the output path; everything after it is positional,
	// so "-1" reaches request validation instead of the shorthand parser.
	f.SetInterspersed(false)
	f.StringP("kind", "k", "white", "noise kind: white or pink")
	f.Uint64P("seed", "s", 0, "random seed, 0 picks one and logs it")
	f.Bool("parallel", false, "generate channels concurrently")
	f.Int("fade-ms", 0, "fade in and out over this many milliseconds")

	bind := map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
		"kind":       "kind",
		"seed":       "seed",
		"parallel":   "parallel",
		"fade_ms":    "fade-ms",
	}
	for key, name := range bind {
		flag := pf.Lookup(name)
		if flag == nil {
			flag = f.Lookup(name)
		}
		_ = a.v.BindPFlag(key, flag)
	}

	root.AddCommand(newInspectCmd(a))
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		if err := config.ReadFile(a.v, a.cfgFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.New(cfg.Log, zapcore.Lock(zapcore.AddSync(a.stderr)))
	return nil
}
