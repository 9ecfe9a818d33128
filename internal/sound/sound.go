//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/palemoky/infinity-box/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

// Manager plays short cues decoded from <dir>/<cue>.mp3 or <dir>/<cue>.wav.
type Manager struct {
	dir string

	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
}

// NewManager creates a silent manager; call Init to open the speaker.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:     dir,
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init opens the speaker and decodes every cue file found in the directory.
func (m *Manager) Init() error {
	// Small buffer keeps cue latency low.
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	if err := m.load(); err != nil {
		return err
	}

	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()
	return nil
}

func (m *Manager) load() error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		cue := Cue(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		buf, err := decode(filepath.Join(m.dir, entry.Name()), ext)
		if err != nil {
			logger.LogError("Skipping sound %s: %v", entry.Name(), err)
			continue
		}
		m.mu.Lock()
		m.buffers[cue] = buf
		m.mu.Unlock()
	}
	return nil
}

func decode(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4})
	buf.Append(src)
	return buf, nil
}

// Loaded reports whether a cue has a decoded buffer.
func (m *Manager) Loaded(cue Cue) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buffers[cue]
	return ok
}

// Play starts a cue. Unknown cues and a disabled manager are silent.
func (m *Manager) Play(cue Cue) {
	m.mu.RLock()
	buf, ok := m.buffers[cue]
	enabled := m.enabled
	m.mu.RUnlock()

	if !enabled || !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Close silences the manager.
func (m *Manager) Close() {
	m.mu.Lock()
	m.enabled = false
	m.mu.Unlock()
}
