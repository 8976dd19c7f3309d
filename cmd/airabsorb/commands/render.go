package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-airabsorb/dsp/core"
	"github.com/cwbudde/algo-airabsorb/dsp/signal"
	"github.com/cwbudde/algo-airabsorb/measure/bandenergy"
	"github.com/cwbudde/algo-airabsorb/measure/ir"
)

type renderOptions struct {
	signal   string
	duration float64
	rt60     float64
	seed     int64
}

func newRenderCmd(a *app) *cobra.Command {
	o := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Absorb a synthetic impulse response and report the change",
		Long: `render synthesises an impulse response, applies air absorption and prints
the energy lost per band together with decay metrics before and after.

Signals:
  impulse  a unit impulse at sample 0
  noise    exponentially decaying noise with the given RT60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd.OutOrStdout(), o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.signal, "signal", "noise", "synthetic response: impulse or noise")
	f.Float64Var(&o.duration, "duration", 1, "length in seconds")
	f.Float64Var(&o.rt60, "rt60", 1, "reverberation time of the noise response in seconds")
	f.Int64Var(&o.seed, "seed", 1, "noise seed")

	return cmd
}

func (a *app) render(out io.Writer, o renderOptions) error {
	samples := int(o.duration * a.cfg.SampleRate)

	gen := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(a.cfg.SampleRate)},
		signal.WithSeed(o.seed),
	)

	var (
		in  []float64
		err error
	)
	switch o.signal {
	case "impulse":
		in, err = gen.Impulse(samples, 0)
	case "noise":
		in, err = gen.DecayingNoise(o.rt60, 1, samples)
	default:
		return fmt.Errorf("unknown signal %q (want impulse or noise)", o.signal)
	}
	if err != nil {
		return err
	}

	bp, err := a.bandpass()
	if err != nil {
		return err
	}

	start := time.Now()
	absorbed, err := bp.Apply(in)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"samples": len(in),
		"bands":   len(bp.Bands()),
		"elapsed": time.Since(start),
	}).Info("Absorption applied")

	loss, err := bandenergy.NewAnalyzer(a.cfg.SampleRate).LossDB(in, absorbed, bp.Bands())
	if err != nil {
		return err
	}

	change, err := ir.NewAnalyzer(a.cfg.SampleRate).Compare(in, absorbed)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s response, %d samples at %.0f Hz, %d bands\n\n",
		o.signal, len(in), a.cfg.SampleRate, len(bp.Bands()))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Band\tMean (Hz)\tChange (dB)\t")
	for i, b := range bp.Bands() {
		fmt.Fprintf(tw, "%d\t%.1f\t%.2f\t\n", b.Index, b.Mean, loss[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal energy change: %.2f dB\n\n", change.EnergyDB)

	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Metric\tBefore\tAfter\t")
	fmt.Fprintf(tw, "EDT (s)\t%.3f\t%.3f\t\n", change.Before.EDT, change.After.EDT)
	fmt.Fprintf(tw, "T20 (s)\t%.3f\t%.3f\t\n", change.Before.T20, change.After.T20)
	fmt.Fprintf(tw, "T30 (s)\t%.3f\t%.3f\t\n", change.Before.T30, change.After.T30)
	fmt.Fprintf(tw, "Centre time (ms)\t%.2f\t%.2f\t\n", 1000*change.Before.CentreTime, 1000*change.After.CentreTime)
	fmt.Fprintf(tw, "Peak index\t%d\t%d\t\n", change.Before.PeakIndex, change.After.PeakIndex)
	return tw.Flush()
}
