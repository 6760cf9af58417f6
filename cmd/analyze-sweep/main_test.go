package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chirp "github.com/tphakala/go-audio-chirp"
	"github.com/tphakala/go-audio-chirp/internal/output"
	"github.com/tphakala/go-audio-chirp/internal/wavfile"
)

func writeSweep(t *testing.T, cfg chirp.Config) string {
	t.Helper()
	g, err := chirp.New(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sine.wav")
	w, err := wavfile.Create(path, g.SampleRate())
	require.NoError(t, err)
	_, err = output.Render(g, w)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestRun_AnalyzesSweep(t *testing.T) {
	path := writeSweep(t, chirp.Config{SampleRate: 8000, Duration: 2, MaxFreq: 4000})

	require.NoError(t, run([]string{"-in", path, "-window", "800"}))
	require.NoError(t, run([]string{"-in", path, "-window", "800", "-expect"}))
}

func TestRun_TooShortForWindow(t *testing.T) {
	path := writeSweep(t, chirp.Config{SampleRate: 100, Duration: 1, MaxFreq: 50})

	err := run([]string{"-in", path, "-window", "4800"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorter than one 4800-sample window")
}

func TestRun_Errors(t *testing.T) {
	require.Error(t, run([]string{"-bogus"}))
	require.Error(t, run([]string{"-in", "/nonexistent/sine.wav"}))

	path := writeSweep(t, chirp.Config{SampleRate: 100, Duration: 1, MaxFreq: 50})
	require.Error(t, run([]string{"-in", path, "-window", "1"}))
}
