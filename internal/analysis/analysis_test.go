package analysis

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chirp "github.com/tphakala/go-audio-chirp"
	"github.com/tphakala/go-audio-chirp/internal/testutil"
)

const (
	testSampleRate = 48000
	testWindow     = 4800 // 0.1 s, 10 Hz bins
)

func TestNewAnalyzer_InvalidParams(t *testing.T) {
	_, err := NewAnalyzer(0, testWindow)
	require.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewAnalyzer(testSampleRate, 1)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Analyze(nil, testSampleRate, 0)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestAnalyze_PureTone(t *testing.T) {
	const freq = 1000.0
	samples := make([]float64, testSampleRate)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / testSampleRate)
	}

	frames, err := Analyze(samples, testSampleRate, testWindow)
	require.NoError(t, err)
	require.Len(t, frames, 10)

	for i, f := range frames {
		assert.Equal(t, i*testWindow, f.Start)
		assert.InDelta(t, freq, f.PeakHz, 10, "frame %d", i)
		assert.InDelta(t, 1/math.Sqrt2, f.RMS, 1e-3, "frame %d", i)
		assert.InDelta(t, 0, f.DC, 1e-3, "frame %d", i)
		testutil.AssertInRange(t, f.Max, 0.99, 1.0)
		testutil.AssertInRange(t, f.Min, -1.0, -0.99)
	}
}

func TestAnalyze_TrailingPartialWindowIgnored(t *testing.T) {
	frames, err := Analyze(make([]float64, 2*testWindow+17), testSampleRate, testWindow)
	require.NoError(t, err)
	assert.Len(t, frames, 2)

	frames, err = Analyze(nil, testSampleRate, testWindow)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestAnalyze_SweepFollowsInstantaneousFrequency(t *testing.T) {
	g, err := chirp.New(chirp.DefaultConfig())
	require.NoError(t, err)

	a, err := NewAnalyzer(g.SampleRate(), testWindow)
	require.NoError(t, err)

	frames := a.Analyze(slices.Collect(g.All()))
	require.Len(t, frames, g.Len()/testWindow)

	// The main lobe of the Hann taper spans two bins either side.
	tolerance := 3 * a.Resolution()
	peaks := make([]float64, 0, len(frames)/10)
	for i, f := range frames {
		lo := g.InstantaneousFrequency(f.Start)
		hi := g.InstantaneousFrequency(f.Start + testWindow)
		testutil.AssertInRange(t, f.PeakHz, lo-tolerance, hi+tolerance)
		testutil.AssertInRange(t, f.Min, -1, 1)
		testutil.AssertInRange(t, f.Max, -1, 1)
		if i%10 == 0 {
			peaks = append(peaks, f.PeakHz)
		}
	}

	// Sampled one second apart the sweep only ever rises.
	testutil.AssertMonotonic(t, peaks)
	testutil.AssertInRange(t, frames[len(frames)-1].PeakHz, 4700, 4830)
}

func TestAnalyze_StoredSamplesMatchGenerated(t *testing.T) {
	g, err := chirp.New(chirp.Config{SampleRate: testSampleRate, Duration: 1, MaxFreq: chirp.DefaultMaxFreq})
	require.NoError(t, err)

	wide, err := Analyze(slices.Collect(g.All()), testSampleRate, testWindow)
	require.NoError(t, err)
	narrow, err := Analyze(Widen(slices.Collect(g.All32())), testSampleRate, testWindow)
	require.NoError(t, err)

	require.Len(t, narrow, len(wide))
	for i := range wide {
		assert.InDelta(t, wide[i].PeakHz, narrow[i].PeakHz, 20, "frame %d", i)
		assert.InDelta(t, wide[i].RMS, narrow[i].RMS, 1e-6, "frame %d", i)
	}
}
