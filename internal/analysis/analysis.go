// Package analysis measures a recorded or generated sweep window by window:
// the dominant frequency, level and sample range of each window.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-chirp/internal/simdops"
)

// Errors returned by Analyze.
var (
	ErrInvalidWindow     = errors.New("analysis: window must be at least 2 samples")
	ErrInvalidSampleRate = errors.New("analysis: sample rate must be positive")
)

const minWindow = 2

// Frame describes one analysis window.
type Frame struct {
	Start  int     // Index of the first sample in the window
	PeakHz float64 // Frequency of the strongest spectral bin
	RMS    float64
	DC     float64
	Min    float64
	Max    float64
}

// Analyzer holds the FFT plan and scratch buffers for one window size.
type Analyzer struct {
	sampleRate int
	window     int
	fft        *fourier.FFT
	taper      []float64
	seq        []float64
	coeffs     []complex128
	mags       []float64
}

// NewAnalyzer prepares an Analyzer for the given sample rate and window size.
func NewAnalyzer(sampleRate, window int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if window < minWindow {
		return nil, ErrInvalidWindow
	}

	// Hann taper to keep leakage from the window edges out of the peak search.
	taper := make([]float64, window)
	for i := range taper {
		taper[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(window-1)))
	}

	return &Analyzer{
		sampleRate: sampleRate,
		window:     window,
		fft:        fourier.NewFFT(window),
		taper:      taper,
		seq:        make([]float64, window),
		coeffs:     make([]complex128, window/2+1),
		mags:       make([]float64, window/2+1),
	}, nil
}

// Window returns the analysis window size in samples.
func (a *Analyzer) Window() int {
	return a.window
}

// Resolution returns the width of one frequency bin in Hz.
func (a *Analyzer) Resolution() float64 {
	return float64(a.sampleRate) / float64(a.window)
}

// frame measures one window. len(w) must equal a.window.
func (a *Analyzer) frame(start int, w []float64) Frame {
	for i, v := range w {
		a.seq[i] = v * a.taper[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.seq)
	for i, c := range a.coeffs {
		a.mags[i] = cmplx.Abs(c)
	}
	peak := floats.MaxIdx(a.mags)

	return Frame{
		Start:  start,
		PeakHz: a.fft.Freq(peak) * float64(a.sampleRate),
		RMS:    math.Sqrt(simdops.Energy(w) / float64(len(w))),
		DC:     simdops.Mean(w),
		Min:    floats.Min(w),
		Max:    floats.Max(w),
	}
}

// Analyze splits samples into consecutive windows and measures each one.
// A trailing partial window is ignored.
func Analyze(samples []float64, sampleRate, window int) ([]Frame, error) {
	a, err := NewAnalyzer(sampleRate, window)
	if err != nil {
		return nil, err
	}
	return a.Analyze(samples), nil
}

// Analyze is like the package-level Analyze but reuses a's buffers.
func (a *Analyzer) Analyze(samples []float64) []Frame {
	frames := make([]Frame, 0, len(samples)/a.window)
	for start := 0; start+a.window <= len(samples); start += a.window {
		frames = append(frames, a.frame(start, samples[start:start+a.window]))
	}
	return frames
}

// Widen converts samples read from a float32 file for analysis.
func Widen(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
