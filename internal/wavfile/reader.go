package wavfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned by ReadFile for anything other than mono
// 32-bit IEEE float data.
var ErrUnsupportedFormat = errors.New("wavfile: only mono 32-bit float WAV files are supported")

// Info describes a file read by ReadFile.
type Info struct {
	SampleRate int
	Samples    []float32
}

// ReadFile loads a file written by Writer.
func ReadFile(path string) (*Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return Decode(raw)
}

// Decode parses a complete WAV file held in memory.
func Decode(raw []byte) (*Info, error) {
	r := bytes.NewReader(raw)
	d := wav.NewDecoder(r)
	d.ReadInfo()

	if d.WavAudioFormat != formatIEEEFloat || d.NumChans != numChannels || d.BitDepth != BitsPerSample {
		return nil, fmt.Errorf("%w: format=%d channels=%d bits=%d",
			ErrUnsupportedFormat, d.WavAudioFormat, d.NumChans, d.BitDepth)
	}

	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to find data chunk: %w", err)
	}

	// The decoder reads chunk headers without buffering ahead, so the
	// reader now sits on the first sample.
	start := r.Size() - int64(r.Len())
	end := start + d.PCMLen()
	if d.PCMLen()%BytesPerSample != 0 || end > int64(len(raw)) {
		return nil, fmt.Errorf("wavfile: truncated data chunk (%d bytes at offset %d)", d.PCMLen(), start)
	}

	payload := raw[start:end]
	samples := make([]float32, len(payload)/BytesPerSample)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*BytesPerSample:]))
	}

	return &Info{
		SampleRate: int(d.SampleRate),
		Samples:    samples,
	}, nil
}
