// Package storage defines the persistence boundary for recorded playback
// sessions.
package storage

import "github.com/seaward-sim/seaward/internal/sim"

// Metadata describes one recording session.
type Metadata struct {
	Name         string `json:"name"`
	ScenarioID   string `json:"scenarioId"`
	ScenarioName string `json:"scenarioName"`
	StartTime    int64  `json:"startTime"`
}

// Backend is the interface all recording storage implementations satisfy.
// Frames passed in are deep copies owned by the backend from that point on.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartRecording(meta Metadata, initial *sim.Scenario) error
	RecordFrame(frame *sim.Scenario) error
	EndRecording() error
}

// Exportable is an optional interface for backends that produce a replay
// file on export.
type Exportable interface {
	ExportedFilePath() string
}
