// Package wavfile writes mono 32-bit IEEE float WAV files.
package wavfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"
)

// WAV format constants
const (
	numChannels     = 1
	BitsPerSample   = 32
	formatIEEEFloat = 3  // WAVE_FORMAT_IEEE_FLOAT
	HeaderSize      = 44 // RIFF + fmt (16-byte body) + data chunk header
	BytesPerSample  = BitsPerSample / 8

	dataSizeOffset = 40 // Byte offset of the data chunk size

	// Samples buffered before each write to the destination (256KB).
	chunkSamples = 64 * 1024
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("wavfile: writer is closed")

// Writer appends float32 samples to a WAV stream.
type Writer struct {
	ws      io.WriteSeeker
	enc     *wav.Encoder
	file    *os.File // nil when the caller owns the destination
	chunk   []float32
	samples int
	closed  bool
}

// Create creates the file at path (truncating it) and returns a Writer for it.
func Create(path string, sampleRate int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := NewWriter(f, sampleRate)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	w.file = f
	return w, nil
}

// NewWriter writes the WAV header to ws and opens the data chunk, so a
// Writer closed without any samples still leaves a valid header-only file.
func NewWriter(ws io.WriteSeeker, sampleRate int) (*Writer, error) {
	enc := wav.NewEncoder(ws, sampleRate, BitsPerSample, numChannels, formatIEEEFloat)

	start := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:   []int{},
	}
	if err := enc.Write(start); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	return &Writer{
		ws:    ws,
		enc:   enc,
		chunk: make([]float32, 0, chunkSamples),
	}, nil
}

// WriteSample appends one sample. Samples are buffered and reach the
// destination in chunks; Close writes whatever is still pending.
func (w *Writer) WriteSample(s float32) error {
	if w.closed {
		return ErrClosed
	}
	w.chunk = append(w.chunk, s)
	w.samples++
	if len(w.chunk) == cap(w.chunk) {
		return w.flush()
	}
	return nil
}

// Samples returns the number of samples written so far.
func (w *Writer) Samples() int {
	return w.samples
}

// flush writes the pending chunk through the encoder as one little-endian
// block.
func (w *Writer) flush() error {
	if len(w.chunk) == 0 {
		return nil
	}
	if err := w.enc.AddLE(w.chunk); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	w.chunk = w.chunk[:0]
	return nil
}

// Close flushes pending samples, finalizes the chunk sizes in the header
// and, for writers made by Create, closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.flush()
	if err == nil {
		err = w.finalize()
	}
	if w.file != nil {
		err = multierr.Append(err, w.file.Close())
	}
	return err
}

func (w *Writer) finalize() error {
	err := w.enc.Close()
	if err == nil {
		err = w.patchDataSize()
	}
	if err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}

// patchDataSize rewrites the data chunk size. The encoder derives the RIFF
// size from the bytes it wrote, but the data size from its frame count,
// which AddLE does not advance.
func (w *Writer) patchDataSize() error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(w.samples*BytesPerSample))

	if _, err := w.ws.Seek(dataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.ws.Write(buf[:]); err != nil {
		return err
	}
	_, err := w.ws.Seek(0, io.SeekEnd)
	return err
}
