package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/seaward-sim/seaward/internal/config"
	"github.com/seaward-sim/seaward/internal/database"
	"github.com/seaward-sim/seaward/internal/engine"
	"github.com/seaward-sim/seaward/internal/logging"
	"github.com/seaward-sim/seaward/internal/monitor"
	"github.com/seaward-sim/seaward/internal/recorder"
	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage"
	"github.com/seaward-sim/seaward/internal/storage/gormstore"
	"github.com/seaward-sim/seaward/internal/storage/memory"

	"github.com/rs/zerolog"
)

var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "seaward"
)

var sessionStart = time.Now()

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	if err := config.Load("."); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, logFile, err := setupLogging()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.Info().
		Str("version", CurrentVersion).
		Str("buildDate", BuildDate).
		Msg("Starting up")

	switch strings.ToLower(args[0]) {
	case "run":
		return runScenario(log, args[1:])
	case "version":
		fmt.Printf("%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Printf(`usage: %s <command> [arguments]

commands:
  run <scenario.json> [ticks]   load a scenario and advance it
  version                       print version information
`, AppName)
}

// setupLogging creates the logs directory and returns a logger writing to
// stdout and a timestamped session log file. The file is nil when it could
// not be created; logging continues on stdout alone.
func setupLogging() (zerolog.Logger, *os.File, error) {
	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logPath := logging.LogFilePath(logsDir, AppName, sessionStart)
	logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log := logging.Setup(config.GetString("logLevel"), nil)
		log.Error().Err(err).Str("path", logPath).Msg("Failed to open log file, logging to stdout only")
		return log, nil, nil
	}

	log := logging.Setup(config.GetString("logLevel"), logFile)
	log.Info().Str("path", logPath).Msg("Logging to file")
	return log, logFile, nil
}

// newBackend builds the recording backend named by the storage config.
// Database mode tries Postgres first and falls back to a local SQLite file.
func newBackend(cfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	switch cfg.Type {
	case "memory":
		log.Info().Str("outputDir", cfg.Memory.OutputDir).Msg("Using memory storage backend")
		return memory.New(cfg.Memory), nil
	case "database":
		mgr := database.NewManager(log)
		if err := mgr.Connect(cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if mgr.IsSqlite {
			log.Info().Str("path", mgr.SqliteFilePath).Msg("Using SQLite storage backend")
		} else {
			log.Info().Msg("Using Postgres storage backend")
		}
		return gormstore.New(mgr.DB, log), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

func runScenario(log zerolog.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no scenario file provided")
	}
	scenarioPath := args[0]

	ticks := config.GetInt("ticks")
	if len(args) > 1 {
		if _, err := fmt.Sscanf(args[1], "%d", &ticks); err != nil {
			return fmt.Errorf("invalid tick count %q: %w", args[1], err)
		}
	}
	if ticks <= 0 {
		ticks = 60
	}

	game, err := loadGame(log, scenarioPath)
	if err != nil {
		return err
	}

	backend, err := newBackend(config.Storage(), log)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer backend.Close()

	rec := recorder.New(backend, log)
	game.SetRecorder(rec)
	game.StartRecording()

	var (
		statusMu   sync.RWMutex
		lastStatus monitor.Status
	)
	statusMonitor := monitor.NewService(monitor.Dependencies{
		Logger:    log,
		StatusDir: config.GetString("logsDir"),
		Snapshot: func() monitor.Status {
			statusMu.RLock()
			defer statusMu.RUnlock()
			return lastStatus
		},
	})
	statusMonitor.Start()
	defer statusMonitor.Stop()

	start := time.Now()
	for i := 0; i < ticks; i++ {
		world, _, _, truncated, _ := game.Step(nil)

		statusMu.Lock()
		lastStatus = monitor.Status{
			Time:            time.Now(),
			Tick:            world.CurrentTime,
			Aircraft:        len(world.Aircraft),
			Ships:           len(world.Ships),
			Facilities:      len(world.Facilities),
			WeaponsInFlight: len(world.Weapons),
			Recording:       rec.Recording(),
		}
		statusMu.Unlock()

		if truncated {
			log.Info().Int64("tick", world.CurrentTime).Msg("Scenario ended early")
			break
		}
	}
	log.Info().
		Int("ticks", ticks).
		Dur("elapsed", time.Since(start)).
		Int("aircraft", len(game.Current.Aircraft)).
		Int("ships", len(game.Current.Ships)).
		Int("weaponsInFlight", len(game.Current.Weapons)).
		Msg("Scenario run complete")

	if err := game.StopRecording(); err != nil {
		return fmt.Errorf("failed to finalize recording: %w", err)
	}
	if exp, ok := backend.(storage.Exportable); ok {
		log.Info().Str("path", exp.ExportedFilePath()).Msg("Recording exported")
	}
	return nil
}

// loadGame reads a scenario export file and builds a game around it, arming
// any units the file left without weapons.
func loadGame(log zerolog.Logger, path string) (*engine.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	export, err := sim.LoadScenario(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", filepath.Base(path), err)
	}

	game := engine.New(export.CurrentScenario, config.GetInt64("seed"), log)
	if export.CurrentSideName != "" {
		game.CurrentSideName = export.CurrentSideName
	}
	game.MapView = export.MapView
	game.ArmDefaultWeapons()

	log.Info().
		Str("scenario", export.CurrentScenario.Name).
		Str("side", game.CurrentSideName).
		Int("aircraft", len(export.CurrentScenario.Aircraft)).
		Int("ships", len(export.CurrentScenario.Ships)).
		Int("facilities", len(export.CurrentScenario.Facilities)).
		Msg("Scenario loaded")
	return game, nil
}
