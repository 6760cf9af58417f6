package wavfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.wav")
	samples := []float32{0, 0.5, -0.5, 0.999, -1}
	writeFile(t, path, samples)

	info, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testSampleRate, info.SampleRate)
	assert.Equal(t, samples, info.Samples)
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadFile_RejectsIntegerPCM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcm16.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, testSampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: testSampleRate},
		Data:   []int{0, 1000, -1000, 0},
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, err = ReadFile(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
