package absorption_test

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-airabsorb/dsp/effects/absorption"
)

func ExampleAttenuationFactor() {
	// One second at 343 m/s with 0.01 dB/m.
	fmt.Printf("%.4f\n", absorption.AttenuationFactor(44100, 44100, 343, 0.01))
	fmt.Printf("%.1f\n", absorption.AttenuationFactor(0, 44100, 343, 0.01))

	// Output:
	// 0.4539
	// 1.0
}

func ExampleBandpass_Bands() {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	bp, err := absorption.NewBandpass(
		absorption.WithDivisions(4),
		absorption.WithLogger(quiet),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, b := range bp.Bands() {
		fmt.Printf("%d: %.2f-%.2f Hz\n", b.Index, b.Low, b.High)
	}

	// Output:
	// 1: 1.00-4999.75 Hz
	// 2: 4999.75-9999.50 Hz
	// 3: 9999.50-14999.25 Hz
	// 4: 14999.25-19999.00 Hz
}

func ExampleBandpass_Apply() {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	bp, err := absorption.NewBandpass(
		absorption.WithDivisions(8),
		absorption.WithLogger(quiet),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	ir := make([]float64, 1024)
	ir[0] = 1

	out, err := bp.Apply(ir)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(bp.Name(), len(out))

	// Output:
	// Bandpass 1024
}
