package simdops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_ReturnsSharedInstances(t *testing.T) {
	assert.Same(t, &ops32, For[float32]())
	assert.Same(t, &ops64, For[float64]())
}

func TestEnergy(t *testing.T) {
	assert.InDelta(t, 30.0, Energy([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, float32(30), Energy([]float32{1, 2, 3, 4}), 1e-6)
	assert.Zero(t, Energy[float64](nil))
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, float32(-0.5), Mean([]float32{-1, 0}), 1e-6)
	assert.Zero(t, Mean[float32](nil))
}

func TestEnergy_FullScaleSine(t *testing.T) {
	// A whole number of periods of a unit sine has mean power 1/2.
	const n = 4800
	a := make([]float64, n)
	for i := range a {
		a[i] = math.Sin(2 * math.Pi * 10 * float64(i) / n)
	}
	assert.InDelta(t, 0.5, Energy(a)/n, 1e-9)
	assert.InDelta(t, 0.0, Mean(a), 1e-12)
}

// BenchmarkEnergyOneSecond measures energy over one second of audio at 48 kHz.
func BenchmarkEnergyOneSecond(b *testing.B) {
	a := make([]float32, 48000)
	for i := range a {
		a[i] = float32(math.Sin(float64(i) * 0.01))
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = Energy(a)
	}
}
