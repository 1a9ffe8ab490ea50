package recorder

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaward-sim/seaward/internal/config"
	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage/memory"
)

func testFrame(tick int64) *sim.Scenario {
	return &sim.Scenario{ID: "sc-1", Name: "Test", CurrentTime: tick}
}

func TestRecorderLifecycle(t *testing.T) {
	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	r := New(backend, zerolog.Nop())

	assert.False(t, r.Recording())

	r.Start(Metadata{Name: "Test Recording", ScenarioID: "sc-1", ScenarioName: "Test"}, testFrame(0))
	assert.True(t, r.Recording())

	r.RecordFrame(testFrame(1))
	r.RecordFrame(testFrame(2))

	require.NoError(t, r.Stop())
	assert.False(t, r.Recording())

	frames := backend.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, int64(0), frames[0].CurrentTime)
	assert.Equal(t, int64(2), frames[2].CurrentTime)
}

func TestRecorderDropsFramesOutsideSession(t *testing.T) {
	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	r := New(backend, zerolog.Nop())

	r.RecordFrame(testFrame(1))
	assert.Empty(t, backend.Frames())

	r.Start(Metadata{Name: "Test"}, testFrame(0))
	require.NoError(t, r.Stop())

	r.RecordFrame(testFrame(99))
	assert.Len(t, backend.Frames(), 1, "frames after Stop are dropped")
}

func TestRecorderStopWithoutSession(t *testing.T) {
	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	r := New(backend, zerolog.Nop())
	assert.NoError(t, r.Stop())
}
