// Command analyze-sweep reports how a sweep written by chirp evolves over
// time: the dominant frequency, RMS level and sample range of each window.
//
// Usage:
//
//	analyze-sweep [-in sine.wav] [-window 4800] [-expect]
//
// With -expect the frequency predicted by the sweep formula for the
// reference configuration is printed next to the measured one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	chirp "github.com/tphakala/go-audio-chirp"
	"github.com/tphakala/go-audio-chirp/internal/analysis"
	"github.com/tphakala/go-audio-chirp/internal/wavfile"
)

const (
	defaultWindow  = 4800 // 0.1 s at 48 kHz
	minWindowCount = 1
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("analyze-sweep", flag.ContinueOnError)
	input := flagSet.String("in", chirp.DefaultOutputPath, "WAV file to analyze")
	window := flagSet.Int("window", defaultWindow, "Analysis window in samples")
	expect := flagSet.Bool("expect", false, "Print the predicted frequency of the reference sweep")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	info, err := wavfile.ReadFile(*input)
	if err != nil {
		return err
	}

	frames, err := analysis.Analyze(analysis.Widen(info.Samples), info.SampleRate, *window)
	if err != nil {
		return err
	}
	if len(frames) < minWindowCount {
		return fmt.Errorf("%s: %d samples is shorter than one %d-sample window",
			*input, len(info.Samples), *window)
	}

	var ref *chirp.Generator
	if *expect {
		ref, err = chirp.New(chirp.DefaultConfig())
		if err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d Hz, %d samples, %d windows of %d\n",
		*input, info.SampleRate, len(info.Samples), len(frames), *window)
	for _, f := range frames {
		t := float64(f.Start) / float64(info.SampleRate)
		line := fmt.Sprintf("  %7.3fs  peak %8.1f Hz  rms %.3f  dc %+.4f  range [%+.3f, %+.3f]",
			t, f.PeakHz, f.RMS, f.DC, f.Min, f.Max)
		if ref != nil {
			mid := f.Start + *window/2
			line += fmt.Sprintf("  expected %8.1f Hz", ref.InstantaneousFrequency(mid))
		}
		fmt.Println(line)
	}

	return nil
}
