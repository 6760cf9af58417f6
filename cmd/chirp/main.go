// Command chirp plays a 10 second sine sweep on the default audio device and
// then writes the same sweep to sine.wav as mono 32-bit float audio.
//
// Usage:
//
//	chirp
//
// There are no flags. Any device or file error aborts the program with a
// non-zero exit status.
package main

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	chirp "github.com/tphakala/go-audio-chirp"
	"github.com/tphakala/go-audio-chirp/internal/output"
	"github.com/tphakala/go-audio-chirp/internal/playback"
	"github.com/tphakala/go-audio-chirp/internal/wavfile"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	err = run(logger)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chirp: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) (err error) {
	g, err := chirp.New(chirp.DefaultConfig())
	if err != nil {
		return err
	}

	dev, err := playback.Open(playback.Params{
		Device:          chirp.DefaultDevice,
		SampleRate:      g.SampleRate(),
		Channels:        chirp.DefaultChannels,
		FramesPerBuffer: g.SampleRate(),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dev.Close())
	}()

	if _, err := play(g, dev, logger); err != nil {
		return err
	}

	_, err = writeFile(g, chirp.DefaultOutputPath, logger)
	return err
}

// play streams the sweep to sink in one-second blocks.
func play(g *chirp.Generator, sink output.Sink, logger *zap.Logger) (output.Stats, error) {
	logger.Info("playing sweep",
		zap.Int("sample_rate", g.SampleRate()),
		zap.Duration("duration", g.Duration()),
		zap.Float64("max_freq", g.MaxFreq()),
	)
	return output.Play(g, sink, g.SampleRate(), logger)
}

// writeFile renders the sweep again from the start into a WAV file at path.
func writeFile(g *chirp.Generator, path string, logger *zap.Logger) (n int, err error) {
	w, err := wavfile.Create(path, g.SampleRate())
	if err != nil {
		return 0, err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	n, err = output.Render(g, w)
	if err != nil {
		return n, err
	}

	logger.Info("sweep written",
		zap.String("path", path),
		zap.Int("samples", n),
	)
	return n, nil
}
