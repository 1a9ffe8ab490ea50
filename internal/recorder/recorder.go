// Package recorder captures deep world snapshots for replay. The engine owns
// when frames are taken (once per tick while recording); a storage backend
// owns how they are persisted.
package recorder

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage"
)

// Metadata describes one recording session.
type Metadata = storage.Metadata

// Recorder forwards snapshots to a storage backend. Frames must already be
// deep copies; the recorder never touches the live world.
type Recorder struct {
	backend   storage.Backend
	log       zerolog.Logger
	recording bool
}

// New creates a recorder around a storage backend.
func New(backend storage.Backend, log zerolog.Logger) *Recorder {
	return &Recorder{backend: backend, log: log}
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool { return r.recording }

// Start opens a recording session with the given metadata and initial
// snapshot.
func (r *Recorder) Start(meta Metadata, initial *sim.Scenario) {
	if err := r.backend.StartRecording(meta, initial); err != nil {
		r.log.Error().Err(err).Msg("failed to start recording")
		return
	}
	r.recording = true
	r.log.Info().Str("scenario", meta.ScenarioName).Msg("recording started")
}

// RecordFrame appends one snapshot to the active session. Frames arriving
// outside a session are dropped.
func (r *Recorder) RecordFrame(frame *sim.Scenario) {
	if !r.recording {
		return
	}
	if err := r.backend.RecordFrame(frame); err != nil {
		r.log.Error().Err(err).Msg("failed to record frame")
	}
}

// Stop closes the session and exports it through the backend.
func (r *Recorder) Stop() error {
	if !r.recording {
		return nil
	}
	r.recording = false
	if err := r.backend.EndRecording(); err != nil {
		return fmt.Errorf("ending recording: %w", err)
	}
	r.log.Info().Msg("recording exported")
	return nil
}
