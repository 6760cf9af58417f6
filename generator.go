package chirp

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"
)

// Errors returned by configuration validation and block iteration.
var (
	ErrInvalidSampleRate = errors.New("chirp: sample rate must not be negative")
	ErrInvalidDuration   = errors.New("chirp: duration must not be negative")
	ErrInvalidMaxFreq    = errors.New("chirp: max frequency must be finite and not negative")
	ErrInvalidBlockSize  = errors.New("chirp: block size must be positive")
	ErrTooManySamples    = errors.New("chirp: sample rate times duration overflows int")
)

// Config holds the sweep parameters.
type Config struct {
	// SampleRate is the number of samples per second.
	SampleRate int

	// Duration is the sweep length in whole seconds.
	Duration int

	// MaxFreq scales the phase slope. See the package documentation for how
	// it relates to the frequency that is actually reached.
	MaxFreq float64
}

// DefaultConfig returns the reference configuration: 10 s at 48 kHz with a
// maximum frequency of 24 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
		MaxFreq:    DefaultMaxFreq,
	}
}

// Validate checks that the Config parameters are usable.
// A zero sample rate or zero duration is accepted and yields an empty stream.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return ErrInvalidSampleRate
	}

	if c.Duration < 0 {
		return ErrInvalidDuration
	}

	if c.MaxFreq < 0 || math.IsNaN(c.MaxFreq) || math.IsInf(c.MaxFreq, 0) {
		return ErrInvalidMaxFreq
	}

	if c.SampleRate > 0 && c.Duration > math.MaxInt/c.SampleRate {
		return ErrTooManySamples
	}

	return nil
}

// TotalSamples returns SampleRate * Duration. Call Validate first; the
// product is only guaranteed to fit in an int for a valid Config.
func (c *Config) TotalSamples() int {
	return c.SampleRate * c.Duration
}

// Generator produces the sweep. It is immutable and safe for concurrent use.
type Generator struct {
	sampleRate int
	duration   int
	maxFreq    float64
	total      int
	totalF     float64
	freqSlope  float64
}

// New creates a Generator for cfg.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	total := cfg.TotalSamples()
	g := &Generator{
		sampleRate: cfg.SampleRate,
		duration:   cfg.Duration,
		maxFreq:    cfg.MaxFreq,
		total:      total,
		totalF:     float64(total),
	}
	if total > 0 {
		g.freqSlope = cfg.MaxFreq / g.totalF
	}

	return g, nil
}

// Len returns the number of samples in the sweep.
func (g *Generator) Len() int {
	return g.total
}

// SampleRate returns the configured sample rate in Hz.
func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// MaxFreq returns the configured maximum frequency.
func (g *Generator) MaxFreq() float64 {
	return g.maxFreq
}

// Duration returns the sweep length.
func (g *Generator) Duration() time.Duration {
	return time.Duration(g.duration) * time.Second
}

// Sample returns the value at index i. It depends only on i, the maximum
// frequency and the sample count. Indices outside [0, Len()) are not
// rejected; the formula is simply evaluated. An empty sweep yields 0.
func (g *Generator) Sample(i int) float64 {
	if g.total == 0 {
		return 0
	}
	x := float64(i)
	freq := x * g.freqSlope
	t := x / g.totalF
	return math.Sin(twoPi * freq * t)
}

// Sample32 returns Sample(i) truncated to float32, the value that is played
// and stored.
func (g *Generator) Sample32(i int) float32 {
	return float32(g.Sample(i))
}

// InstantaneousFrequency returns the derivative of the phase at index i,
// expressed in Hz.
func (g *Generator) InstantaneousFrequency(i int) float64 {
	if g.total == 0 {
		return 0
	}
	return phaseDerivativeFactor * g.maxFreq * float64(i) * float64(g.sampleRate) / (g.totalF * g.totalF)
}

// All returns the full sweep as a sequence. Each range over the result
// starts again at index 0.
func (g *Generator) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := range g.total {
			if !yield(g.Sample(i)) {
				return
			}
		}
	}
}

// All32 is like All but yields float32 values.
func (g *Generator) All32() iter.Seq[float32] {
	return func(yield func(float32) bool) {
		for i := range g.total {
			if !yield(g.Sample32(i)) {
				return
			}
		}
	}
}

// Blocks returns the sweep as consecutive float32 blocks of size samples.
// The last block is short when size does not divide Len(). The yielded
// slice is reused, so callers that retain a block must copy it.
//
// Blocks panics if size is not positive; use CheckBlockSize to validate
// untrusted sizes first.
func (g *Generator) Blocks(size int) iter.Seq[[]float32] {
	if err := CheckBlockSize(size); err != nil {
		panic(err)
	}

	return func(yield func([]float32) bool) {
		if g.total == 0 {
			return
		}

		buf := make([]float32, min(size, g.total))
		for start := 0; start < g.total; start += size {
			n := min(size, g.total-start)
			block := buf[:n]
			for j := range block {
				block[j] = g.Sample32(start + j)
			}
			if !yield(block) {
				return
			}
		}
	}
}

// NumBlocks returns how many blocks Blocks(size) yields.
func (g *Generator) NumBlocks(size int) int {
	if size <= 0 {
		return 0
	}
	return (g.total + size - 1) / size
}

// CheckBlockSize reports whether size is usable with Blocks.
func CheckBlockSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, size)
	}
	return nil
}
