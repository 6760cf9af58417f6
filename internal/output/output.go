// Package output drives the sweep into its two sinks: a live audio device,
// fed one block per second, and a per-sample file writer fed from a second
// pass over the same generator.
//
// Both paths stop at the first error. Nothing is retried and a partially
// written file is left in place.
package output

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	chirp "github.com/tphakala/go-audio-chirp"
)

// Errors returned by Play.
var (
	ErrShortBlock = errors.New("output: generator produced a short block")
	ErrShortWrite = errors.New("output: sink accepted fewer frames than requested")
)

// Sink is a blocking playback device.
type Sink interface {
	// Write transfers block to the device and returns the number of frames
	// accepted.
	Write(block []float32) (int, error)

	// Drain blocks until everything written has been played.
	Drain() error
}

// SampleWriter receives samples one at a time, in index order.
type SampleWriter interface {
	WriteSample(s float32) error
}

// Stats summarizes a playback pass.
type Stats struct {
	Blocks int
	Frames int
}

// Play streams g to sink in blocks of exactly blockSize samples and then
// drains the sink. A block shorter than blockSize, or a write that reports
// a frame count different from the block length, is an error.
func Play(g *chirp.Generator, sink Sink, blockSize int, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var stats Stats
	if err := chirp.CheckBlockSize(blockSize); err != nil {
		return stats, err
	}

	for block := range g.Blocks(blockSize) {
		if len(block) != blockSize {
			return stats, fmt.Errorf("%w: block %d has %d of %d frames",
				ErrShortBlock, stats.Blocks, len(block), blockSize)
		}

		n, err := sink.Write(block)
		if err != nil {
			return stats, fmt.Errorf("failed to write block %d: %w", stats.Blocks, err)
		}
		if n != len(block) {
			return stats, fmt.Errorf("%w: block %d wrote %d of %d frames",
				ErrShortWrite, stats.Blocks, n, len(block))
		}

		stats.Blocks++
		stats.Frames += n
		logger.Debug("block written",
			zap.Int("block", stats.Blocks-1),
			zap.Int("frames", n),
		)
	}

	if err := sink.Drain(); err != nil {
		return stats, fmt.Errorf("failed to drain sink: %w", err)
	}
	logger.Info("playback drained",
		zap.Int("blocks", stats.Blocks),
		zap.Int("frames", stats.Frames),
	)

	return stats, nil
}

// Render writes every sample of g to w, starting again from index 0, and
// returns the number of samples written.
func Render(g *chirp.Generator, w SampleWriter) (int, error) {
	written := 0
	for s := range g.All32() {
		if err := w.WriteSample(s); err != nil {
			return written, fmt.Errorf("failed to write sample %d: %w", written, err)
		}
		written++
	}
	return written, nil
}
