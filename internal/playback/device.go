// Package playback opens the default audio output device through PortAudio
// and exposes it as a blocking, fixed-block-size float32 sink.
package playback

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultDevice is the only device name Open accepts.
const DefaultDevice = "default"

// Errors returned by Device.
var (
	ErrUnknownDevice = errors.New("playback: only the default device is supported")
	ErrInvalidParams = errors.New("playback: sample rate, channels and frames per buffer must be positive")
	ErrFrameCount    = errors.New("playback: block size does not match the stream buffer")
	ErrClosed        = errors.New("playback: device is closed")
)

// Params configures the output stream.
type Params struct {
	Device          string
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

func (p *Params) validate() error {
	if p.Device != DefaultDevice {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, p.Device)
	}
	if p.SampleRate <= 0 || p.Channels <= 0 || p.FramesPerBuffer <= 0 {
		return ErrInvalidParams
	}
	return nil
}

// stream is the subset of *portaudio.Stream used by Device.
type stream interface {
	Start() error
	Write() error
	Stop() error
	Close() error
}

// backend bundles the library lifecycle so tests can substitute it.
type backend struct {
	initialize func() error
	terminate  func() error
	open       func(p Params, buf []float32, logger *zap.Logger) (stream, error)
}

var portAudio = backend{
	initialize: portaudio.Initialize,
	terminate:  portaudio.Terminate,
	open:       openDefaultStream,
}

// openDefaultStream opens a blocking output stream bound to buf.
func openDefaultStream(p Params, buf []float32, logger *zap.Logger) (stream, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("no default output device: %w", err)
	}
	logger.Info("default output device",
		zap.String("name", info.Name),
		zap.Float64("default_sample_rate", info.DefaultSampleRate),
		zap.Int("max_output_channels", info.MaxOutputChannels),
	)

	s, err := portaudio.OpenDefaultStream(0, p.Channels, float64(p.SampleRate), p.FramesPerBuffer, buf)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Device is an open, started playback stream.
type Device struct {
	params  Params
	backend backend
	stream  stream
	buf     []float32
	logger  *zap.Logger
	stopped bool
	closed  bool
}

// Open initializes PortAudio and starts a blocking output stream with the
// given parameters. Any failure is returned as is; there is no fallback
// device.
func Open(p Params, logger *zap.Logger) (*Device, error) {
	return open(portAudio, p, logger)
}

func open(b backend, p Params, logger *zap.Logger) (*Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	if err := b.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}

	buf := make([]float32, p.FramesPerBuffer*p.Channels)
	s, err := b.open(p, buf, logger)
	if err != nil {
		return nil, multierr.Append(
			fmt.Errorf("failed to open %s device: %w", p.Device, err),
			b.terminate(),
		)
	}

	if err := s.Start(); err != nil {
		return nil, multierr.Combine(
			fmt.Errorf("failed to start stream: %w", err),
			s.Close(),
			b.terminate(),
		)
	}

	logger.Info("playback device opened",
		zap.String("device", p.Device),
		zap.Int("sample_rate", p.SampleRate),
		zap.Int("channels", p.Channels),
		zap.Int("frames_per_buffer", p.FramesPerBuffer),
	)

	return &Device{
		params:  p,
		backend: b,
		stream:  s,
		buf:     buf,
		logger:  logger,
	}, nil
}

// Write plays block, which must hold exactly FramesPerBuffer frames, and
// returns the number of frames transferred. It blocks until the stream has
// accepted the whole buffer.
func (d *Device) Write(block []float32) (int, error) {
	if d.closed || d.stopped {
		return 0, ErrClosed
	}
	if len(block) != len(d.buf) {
		return 0, fmt.Errorf("%w: got %d samples, want %d", ErrFrameCount, len(block), len(d.buf))
	}

	copy(d.buf, block)
	if err := d.stream.Write(); err != nil {
		// Underflow means the device ran dry before this write; the data
		// was still transferred.
		if !errors.Is(err, portaudio.OutputUnderflowed) {
			return 0, err
		}
		d.logger.Warn("output underflowed")
	}

	return len(block) / d.params.Channels, nil
}

// Drain blocks until all written audio has been played and stops the stream.
func (d *Device) Drain() error {
	if d.closed {
		return ErrClosed
	}
	if d.stopped {
		return nil
	}
	d.stopped = true
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("failed to drain stream: %w", err)
	}
	return nil
}

// Close releases the stream and terminates PortAudio.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return multierr.Append(d.stream.Close(), d.backend.terminate())
}
