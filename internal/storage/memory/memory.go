// Package memory stores recording frames in memory and exports them to a
// JSON file (optionally gzipped) when the session ends.
package memory

import (
	"sync"

	"github.com/seaward-sim/seaward/internal/config"
	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage"
)

// Backend accumulates playback frames in RAM.
type Backend struct {
	cfg config.MemoryConfig

	meta   storage.Metadata
	frames []*sim.Scenario

	lastExportPath string
	mu             sync.Mutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend.
func (b *Backend) Init() error { return nil }

// Close cleans up resources.
func (b *Backend) Close() error { return nil }

// StartRecording begins a new session, discarding any previous frames. The
// initial snapshot becomes frame zero.
func (b *Backend) StartRecording(meta storage.Metadata, initial *sim.Scenario) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.meta = meta
	b.frames = nil
	if initial != nil {
		b.frames = append(b.frames, initial)
	}
	return nil
}

// RecordFrame appends one snapshot to the session.
func (b *Backend) RecordFrame(frame *sim.Scenario) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frames = append(b.frames, frame)
	return nil
}

// EndRecording exports the session to disk.
func (b *Backend) EndRecording() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exportJSON()
}

// Frames returns the recorded frames. Intended for tests and in-process
// consumers; the returned slice must not be mutated.
func (b *Backend) Frames() []*sim.Scenario {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frames
}

// ExportedFilePath returns the path of the last exported recording.
func (b *Backend) ExportedFilePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lastExportPath
}
