// Package chirp generates the sine sweep ("chirp") that the chirp command
// plays through the default audio device and then stores as a mono 32-bit
// float WAV file.
//
// The sweep is defined sample by sample as a pure function of the sample
// index:
//
//	freqSlope = maxFreq / total
//	freq(i)   = i * freqSlope
//	time(i)   = i / total
//	sample(i) = sin(2π * freq(i) * time(i))
//
// Because both freq(i) and time(i) grow linearly, the phase argument grows
// quadratically in i. The instantaneous frequency therefore rises linearly
// from 0 Hz to 2*maxFreq/duration Hz, which is reported by
// [Generator.InstantaneousFrequency].
//
// # Quick Start
//
//	g, err := chirp.New(chirp.Config{
//	    SampleRate: chirp.DefaultSampleRate,
//	    Duration:   chirp.DefaultDuration,
//	    MaxFreq:    chirp.DefaultMaxFreq,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// One block per second of audio
//	for block := range g.Blocks(g.SampleRate()) {
//	    sink.Write(block)
//	}
//
//	// A second, independent pass over the same samples
//	for s := range g.All32() {
//	    w.WriteSample(s)
//	}
//
// # Restartable Sequences
//
// A [Generator] holds no cursor. Every call to [Generator.All],
// [Generator.All32] or [Generator.Blocks] returns a sequence that starts at
// index 0, so the playback pass and the file pass see bit-identical values
// without materializing the whole sweep in memory.
package chirp
