//go:build !ci

package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, generators.Silence(rate.N(50*time.Millisecond)), format))
}

func TestManager_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "win.wav"), sampleRate)
	writeWAV(t, filepath.Join(dir, "lose.WAV"), beep.SampleRate(22050))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "denied.wav"), []byte("not audio"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "session"), 0o755))

	m := NewManager(dir)
	require.NoError(t, m.load())

	assert.True(t, m.Loaded(CueWin))
	assert.True(t, m.Loaded(CueLose))
	assert.False(t, m.Loaded(CueDenied))
	assert.False(t, m.Loaded(CueSession))
	assert.False(t, m.Loaded("notes"))
}

func TestManager_MissingDirectory(t *testing.T) {
	t.Parallel()

	m := NewManager(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, m.load())
	assert.False(t, m.Loaded(CueWin))
}

func TestManager_PlayWhileDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "win.wav"), sampleRate)
	m := NewManager(dir)
	require.NoError(t, m.load())

	assert.NotPanics(t, func() {
		m.Play(CueWin)
		m.Play("missing")
		m.Close()
	})
}

func TestForOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CueWin, ForOutcome(true))
	assert.Equal(t, CueLose, ForOutcome(false))
}
