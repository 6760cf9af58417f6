package chirp

import "math"

// Reference configuration
const (
	DefaultSampleRate = 48000   // Playback and file sample rate in Hz
	DefaultDuration   = 10      // Sweep length in seconds
	DefaultMaxFreq    = 24000.0 // Half the default sample rate
)

// Output collaborators
const (
	DefaultDevice     = "default"  // Logical playback device name
	DefaultOutputPath = "sine.wav" // WAV file written after playback
	DefaultChannels   = 1          // Mono only
)

// Phase computation constants
const (
	twoPi = 2 * math.Pi

	// The phase is quadratic in i, so its derivative brings down a factor of two.
	phaseDerivativeFactor = 2.0
)
