package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-airabsorb/dsp/effects/absorption"
	"github.com/cwbudde/algo-airabsorb/internal/config"
)

// app carries the global flags and the state derived from them.
type app struct {
	cfgFile  string
	logLevel string
	flags    *config.Flags

	cfg    absorption.Config
	logger *logrus.Logger
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logrus.New()}

	root := &cobra.Command{
		Use:   "airabsorb",
		Short: "Apply atmospheric air absorption to impulse responses",
		Long: `airabsorb splits an impulse response into linear frequency bands,
filters each band with a Butterworth bandpass, attenuates it by the distance
sound has travelled at every sample and sums the bands again.

Absorption follows ISO 9613-1 for the configured temperature, humidity and
pressure.

Examples:
  # Show the 50 default bands
  airabsorb bands

  # Fewer bands in humid air
  airabsorb bands --divisions 10 --humidity 80

  # Absorb a synthetic room response and compare decay times
  airabsorb render --signal noise --rt60 1.5
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML file with band and atmosphere parameters")
	pf.StringVar(&a.logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
	a.flags = config.RegisterFlags(pf)

	root.AddCommand(newBandsCmd(a))
	root.AddCommand(newRenderCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	a.logger.SetLevel(level)
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: cmd.ErrOrStderr() != os.Stderr,
	})

	cfg, err := a.flags.Resolve(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.WithFields(logrus.Fields{
		"config":      a.cfgFile,
		"divisions":   cfg.Divisions,
		"sample_rate": cfg.SampleRate,
		"min_hz":      cfg.MinFrequency,
		"max_hz":      cfg.MaxFrequency,
	}).Info("Configuration loaded")

	return nil
}

func (a *app) bandpass() (*absorption.Bandpass, error) {
	return absorption.NewBandpass(
		absorption.WithConfig(a.cfg),
		absorption.WithLogger(a.logger),
	)
}
