package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-airabsorb/dsp/filter/bank"
)

func newBandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Print the band partition with absorption per band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bp, err := a.bandpass()
			if err != nil {
				return err
			}
			cfg := bp.Config()
			fb, err := bank.NewLinear(cfg.MinFrequency, cfg.MaxFrequency, cfg.Divisions,
				cfg.SampleRate, bank.WithOrder(cfg.Order))
			if err != nil {
				return err
			}

			model := bp.Model()
			cond := cfg.Air
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d bands, %.1f °C, %.0f %%RH, %.3f kPa\n\n",
				fb.NumBands(), cond.TemperatureC, cond.RelativeHumidity, cond.PressureKPa)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Band\tLow (Hz)\tHigh (Hz)\tMean (Hz)\tGain (dB)\tAlpha (dB/km)\tAlpha ISO (dB/km)\tc (m/s)\t")
			for _, f := range fb.Filters() {
				b := f.Band
				c := model.Absorption(b.Mean)
				fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%.3f\t%.2f\t\n",
					b.Index, b.Low, b.High, b.Mean, f.MagnitudeDB(b.Mean, cfg.SampleRate),
					1000*c.Alpha, 1000*c.AlphaISO, c.C)
			}
			return tw.Flush()
		},
	}
}
