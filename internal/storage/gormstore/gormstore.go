// Package gormstore persists recording sessions to a relational database
// through gorm. One Recording row owns many Frame rows, each frame holding
// the full scenario snapshot as a JSON document.
package gormstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage"
)

// Recording is one playback session.
type Recording struct {
	gorm.Model
	Name         string `gorm:"size:255"`
	ScenarioID   string `gorm:"size:127;index"`
	ScenarioName string `gorm:"size:255"`
	StartTime    int64
	EndFrame     uint
}

// Frame is one snapshot within a recording.
type Frame struct {
	gorm.Model
	RecordingID uint      `gorm:"index:idx_frame_recording_id"`
	Recording   Recording `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RecordingID"`
	Tick        int64
	State       datatypes.JSON
}

// Models lists the tables migrated by this backend.
var Models = []interface{}{
	&Recording{},
	&Frame{},
}

// Backend implements storage.Backend over a gorm connection (SQLite or
// Postgres, chosen by the caller).
type Backend struct {
	db  *gorm.DB
	log zerolog.Logger

	current    *Recording
	frameCount uint
	mu         sync.Mutex
}

// New creates a gorm-backed storage backend.
func New(db *gorm.DB, log zerolog.Logger) *Backend {
	return &Backend{db: db, log: log}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("migrating recording schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StartRecording creates the session row and stores the initial snapshot as
// frame zero.
func (b *Backend) StartRecording(meta storage.Metadata, initial *sim.Scenario) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec := &Recording{
		Name:         meta.Name,
		ScenarioID:   meta.ScenarioID,
		ScenarioName: meta.ScenarioName,
		StartTime:    meta.StartTime,
	}
	if err := b.db.Create(rec).Error; err != nil {
		return fmt.Errorf("creating recording row: %w", err)
	}
	b.current = rec
	b.frameCount = 0

	if initial != nil {
		return b.appendFrame(initial)
	}
	return nil
}

// RecordFrame appends one snapshot row to the active session.
func (b *Backend) RecordFrame(frame *sim.Scenario) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return fmt.Errorf("no active recording")
	}
	return b.appendFrame(frame)
}

// EndRecording finalizes the session row.
func (b *Backend) EndRecording() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil
	}
	err := b.db.Model(b.current).Update("end_frame", b.frameCount).Error
	b.current = nil
	if err != nil {
		return fmt.Errorf("finalizing recording: %w", err)
	}
	return nil
}

// appendFrame serializes and inserts one snapshot. Caller holds the mutex.
func (b *Backend) appendFrame(frame *sim.Scenario) error {
	state, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshalling frame: %w", err)
	}
	row := &Frame{
		RecordingID: b.current.ID,
		Tick:        frame.CurrentTime,
		State:       datatypes.JSON(state),
	}
	if err := b.db.Create(row).Error; err != nil {
		return fmt.Errorf("inserting frame: %w", err)
	}
	b.frameCount++
	return nil
}
