package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage"
)

// Recording is the root JSON structure of an exported playback file.
type Recording struct {
	Metadata storage.Metadata `json:"metadata"`
	Frames   []*sim.Scenario  `json:"frames"`
}

// exportJSON writes the session to a (optionally gzipped) JSON file. Caller
// holds the mutex.
func (b *Backend) exportJSON() error {
	export := Recording{Metadata: b.meta, Frames: b.frames}

	name := strings.ReplaceAll(b.meta.Name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	timestamp := time.Now().Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, timestamp)
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := json.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return f.Close()
}

func writeGzipJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(v); err != nil {
		gz.Close()
		f.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
