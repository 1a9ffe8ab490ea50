// Package monitor periodically reports simulation run status to a status
// file and the log while a scenario is being stepped.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status is one sample of run progress.
type Status struct {
	Time            time.Time `json:"time"`
	Tick            int64     `json:"tick"`
	Aircraft        int       `json:"aircraft"`
	Ships           int       `json:"ships"`
	Facilities      int       `json:"facilities"`
	WeaponsInFlight int       `json:"weaponsInFlight"`
	Recording       bool      `json:"recording"`
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Logger    zerolog.Logger
	StatusDir string
	Interval  time.Duration
	Snapshot  func() Status
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		s.deps.Logger.Debug().Msg("Starting status monitor goroutine")

		statusFile, err := os.Create(filepath.Join(s.deps.StatusDir, "status.txt"))
		if err != nil {
			s.deps.Logger.Error().Err(err).Msg("Error creating status file")
		}
		defer func() {
			if statusFile != nil {
				statusFile.Close()
			}
		}()

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(s.deps.Interval)

				status := s.deps.Snapshot()

				statusJSON, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					statusJSON = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
				}

				if statusFile != nil {
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					statusFile.Write(statusJSON)
					statusFile.WriteString("\n")
				}

				s.deps.Logger.Debug().
					Int64("tick", status.Tick).
					Int("aircraft", status.Aircraft).
					Int("ships", status.Ships).
					Int("weaponsInFlight", status.WeaponsInFlight).
					Bool("recording", status.Recording).
					Msg("Run status")
			}
		}
	}()

	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
