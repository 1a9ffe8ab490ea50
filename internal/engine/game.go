package engine

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/seaward-sim/seaward/internal/command"
	"github.com/seaward-sim/seaward/internal/queue"
	"github.com/seaward-sim/seaward/internal/recorder"
	"github.com/seaward-sim/seaward/internal/sim"
)

// StepInfo carries auxiliary per-step data back to the caller.
type StepInfo map[string]any

// Game owns the live scenario and advances it one tick per Step call. A
// retained copy of the initial scenario backs Reset. All mutation is
// in-place, single-threaded, and completes before Step returns; concurrent
// callers must serialize.
type Game struct {
	Current *sim.Scenario
	Initial *sim.Scenario

	CurrentSideName string
	MapView         sim.MapView

	rng      *rand.Rand
	log      zerolog.Logger
	pending  *queue.Queue[command.Command]
	recorder *recorder.Recorder

	ticks    metric.Int64Counter
	launches metric.Int64Counter
}

// New creates a game around a scenario. The seeded random source drives
// weapon hit sampling and patrol waypoint generation, making ticks
// reproducible for a given seed.
func New(scenario *sim.Scenario, seed int64, log zerolog.Logger) *Game {
	g := &Game{
		Current: scenario,
		Initial: scenario.Copy(),
		rng:     rand.New(rand.NewSource(seed)),
		log:     log,
		pending: queue.New[command.Command](),
	}
	if len(scenario.Sides) > 0 {
		g.CurrentSideName = scenario.Sides[0].Name
	}
	g.initMetrics()
	return g
}

// SetRecorder attaches a playback recorder. While recording is active, Step
// appends one deep scenario snapshot per tick.
func (g *Game) SetRecorder(r *recorder.Recorder) { g.recorder = r }

// Enqueue stages a command for application at the start of the next step.
func (g *Game) Enqueue(cmd command.Command) { g.pending.Push(cmd) }

// Step applies the given commands plus any enqueued ones, advances the world
// one tick, and returns the observation tuple. Reward is always 0 and
// terminated always false; truncated reflects the end-condition hook, which
// this core leaves unimplemented. Command failures are logged and skipped;
// nothing aborts a tick.
func (g *Game) Step(commands []command.Command) (*sim.Scenario, float64, bool, bool, StepInfo) {
	for _, cmd := range g.pending.GetAndEmpty() {
		if err := g.Apply(cmd); err != nil {
			g.log.Warn().Err(err).Str("command", string(cmd.Type)).Msg("queued command skipped")
		}
	}
	for _, cmd := range commands {
		if err := g.Apply(cmd); err != nil {
			g.log.Warn().Err(err).Str("command", string(cmd.Type)).Msg("command skipped")
		}
	}

	g.advance()

	if g.recorder != nil && g.recorder.Recording() {
		g.recorder.RecordFrame(g.Current.Copy())
	}

	return g.Current, 0, false, g.checkGameEnded(), StepInfo{}
}

// advance runs the fixed tick order. Engagement passes see last tick's
// positions; movement runs after all targeting so routing decisions are not
// invalidated mid-tick.
func (g *Game) advance() {
	g.Current.CurrentTime++

	facilityAutoDefense(g.Current)
	shipAutoDefense(g.Current)
	airToAirEngagement(g.Current)

	updatePatrolMissions(g.Current, g.rng)
	updateStrikeMissions(g.Current)

	weapons := make([]*sim.Weapon, len(g.Current.Weapons))
	copy(weapons, g.Current.Weapons)
	for _, w := range weapons {
		// An earlier weapon's hit may have destroyed this one mid-pass.
		if g.Current.GetWeapon(w.ID) == nil {
			continue
		}
		weaponEngagement(g.Current, w, g.rng)
	}

	g.updateAircraftPositions()
	g.updateShipPositions()
	syncOnboardWeapons(g.Current)

	g.ticks.Add(context.Background(), 1)
}

// Reset replaces the live scenario wholesale from the retained initial copy.
// Commands enqueued against the old world are discarded with it.
func (g *Game) Reset() {
	g.pending.Clear()
	g.Current = g.Initial.Copy()
	if len(g.Current.Sides) > 0 {
		g.CurrentSideName = g.Current.Sides[0].Name
	}
}

// checkGameEnded is the end-condition hook. The core never ends episodes on
// its own; callers decide when to stop stepping.
func (g *Game) checkGameEnded() bool { return false }

// StartRecording begins snapshotting one frame per tick, seeding the
// recorder with the recording metadata and an initial deep snapshot.
func (g *Game) StartRecording() {
	if g.recorder == nil {
		return
	}
	g.recorder.Start(recorder.Metadata{
		Name:         g.Current.Name + " Recording",
		ScenarioID:   g.Current.ID,
		ScenarioName: g.Current.Name,
		StartTime:    g.Current.CurrentTime,
	}, g.Current.Copy())
}

// StopRecording stops snapshotting and exports the recording.
func (g *Game) StopRecording() error {
	if g.recorder == nil {
		return nil
	}
	return g.recorder.Stop()
}

// SampleWeapon builds a default weapon magazine for units loaded without
// one.
func (g *Game) SampleWeapon(quantity int, lethality float64, sideName string) *sim.Weapon {
	if sideName == "" {
		sideName = g.CurrentSideName
	}
	return &sim.Weapon{
		Unit: sim.Unit{
			ID:          uuid.NewString(),
			Name:        "Sample Weapon",
			SideName:    sideName,
			ClassName:   "Sample Weapon",
			Altitude:    10000.0,
			Heading:     90.0,
			Speed:       1000.0,
			CurrentFuel: 5000.0,
			MaxFuel:     5000.0,
			FuelRate:    5000.0,
			SideColor:   g.Current.SideColor(sideName),
		},
		Range:           100.0,
		Lethality:       lethality,
		MaxQuantity:     quantity,
		CurrentQuantity: quantity,
	}
}

// ArmDefaultWeapons gives a sample magazine to every aircraft, ship, and
// facility that was loaded without one. Airbase and carrier rosters are
// armed too so launched aircraft come out ready to fight.
func (g *Game) ArmDefaultWeapons() {
	for _, a := range g.Current.Aircraft {
		if len(a.Weapons) == 0 {
			a.Weapons = append(a.Weapons, g.SampleWeapon(10, 0.25, a.SideName))
		}
	}
	for _, base := range g.Current.Airbases {
		for _, a := range base.Aircraft {
			if len(a.Weapons) == 0 {
				a.Weapons = append(a.Weapons, g.SampleWeapon(10, 0.25, a.SideName))
			}
		}
	}
	for _, sh := range g.Current.Ships {
		if len(sh.Weapons) == 0 {
			sh.Weapons = append(sh.Weapons, g.SampleWeapon(10, 0.25, sh.SideName))
		}
		for _, a := range sh.Aircraft {
			if len(a.Weapons) == 0 {
				a.Weapons = append(a.Weapons, g.SampleWeapon(10, 0.25, a.SideName))
			}
		}
	}
	for _, f := range g.Current.Facilities {
		if len(f.Weapons) == 0 {
			f.Weapons = append(f.Weapons, g.SampleWeapon(10, 0.25, f.SideName))
		}
	}
	syncOnboardWeapons(g.Current)
}

// MoveAircraft replaces an aircraft's route with the given waypoints.
func (g *Game) MoveAircraft(aircraftID string, route []sim.Waypoint) *sim.Aircraft {
	a := g.Current.GetAircraft(aircraftID)
	if a == nil {
		return nil
	}
	a.Route = append(a.Route[:0:0], route...)
	return a
}

// MoveShip replaces a ship's route with the given waypoints.
func (g *Game) MoveShip(shipID string, route []sim.Waypoint) *sim.Ship {
	s := g.Current.GetShip(shipID)
	if s == nil {
		return nil
	}
	s.Route = append(s.Route[:0:0], route...)
	return s
}

// HandleAircraftAttack launches a weapon from an aircraft at a hostile
// target. Friendly or self targets are ignored.
func (g *Game) HandleAircraftAttack(aircraftID, targetID string) {
	target := g.Current.GetTarget(targetID)
	attacker := g.Current.GetAircraft(aircraftID)
	if target == nil || attacker == nil {
		return
	}
	if target.Side() == attacker.SideName || target.EntityID() == attacker.ID {
		return
	}
	launchWeapon(g.Current, attacker, target)
	g.launches.Add(context.Background(), 1)
}

// HandleShipAttack launches a weapon from a ship at a hostile target.
func (g *Game) HandleShipAttack(shipID, targetID string) {
	target := g.Current.GetTarget(targetID)
	attacker := g.Current.GetShip(shipID)
	if target == nil || attacker == nil {
		return
	}
	if target.Side() == attacker.SideName || target.EntityID() == attacker.ID {
		return
	}
	launchWeapon(g.Current, attacker, target)
	g.launches.Add(context.Background(), 1)
}

// LaunchAircraftFromAirbase moves the next rostered aircraft of the base
// into the air.
func (g *Game) LaunchAircraftFromAirbase(airbaseID string) *sim.Aircraft {
	base := g.Current.GetAirbase(airbaseID)
	if base == nil || len(base.Aircraft) == 0 {
		return nil
	}
	a := base.Aircraft[0]
	base.Aircraft = base.Aircraft[1:]
	g.Current.Aircraft = append(g.Current.Aircraft, a)
	return a
}

// LaunchAircraftFromShip moves the next rostered aircraft of the ship into
// the air.
func (g *Game) LaunchAircraftFromShip(shipID string) *sim.Aircraft {
	ship := g.Current.GetShip(shipID)
	if ship == nil || len(ship.Aircraft) == 0 {
		return nil
	}
	a := ship.Aircraft[0]
	ship.Aircraft = ship.Aircraft[1:]
	g.Current.Aircraft = append(g.Current.Aircraft, a)
	return a
}

// AircraftReturnToBase toggles RTB. Enabling clears the route and re-targets
// the aircraft at its resolved base (recording it as the home base when it
// differs); disabling clears RTB and the route without further routing.
func (g *Game) AircraftReturnToBase(aircraftID string) *sim.Aircraft {
	a := g.Current.GetAircraft(aircraftID)
	if a == nil {
		return nil
	}
	if a.RTB {
		a.RTB = false
		a.Route = nil
		return a
	}
	a.RTB = true
	base := g.resolveBase(a)
	if base == nil {
		return nil
	}
	if a.HomeBaseID != base.ID {
		a.HomeBaseID = base.ID
	}
	return g.MoveAircraft(aircraftID, []sim.Waypoint{{base.Latitude, base.Longitude}})
}

// AddReferencePoint places a named geo-point for the acting side.
func (g *Game) AddReferencePoint(name string, lat, lon float64) *sim.ReferencePoint {
	if g.CurrentSideName == "" {
		return nil
	}
	rp := &sim.ReferencePoint{
		ID:        uuid.NewString(),
		Name:      name,
		SideName:  g.CurrentSideName,
		Latitude:  lat,
		Longitude: lon,
		SideColor: g.Current.SideColor(g.CurrentSideName),
	}
	g.Current.ReferencePoints = append(g.Current.ReferencePoints, rp)
	return rp
}

// CreatePatrolMission creates an active patrol mission over the given area.
// Areas with fewer than three points are rejected as a no-op.
func (g *Game) CreatePatrolMission(name string, unitIDs []string, area []*sim.ReferencePoint) *sim.Mission {
	if len(area) < 3 {
		return nil
	}
	sideID := g.CurrentSideName
	if side := g.Current.GetSide(g.CurrentSideName); side != nil && side.ID != "" {
		sideID = side.ID
	}
	m := sim.NewPatrolMission(uuid.NewString(), name, sideID, unitIDs, area)
	g.Current.Missions = append(g.Current.Missions, m)
	return m
}

// UpdatePatrolMission edits a patrol mission. Empty fields are no-ops; an
// area edit re-derives the polygon geometry.
func (g *Game) UpdatePatrolMission(missionID, name string, unitIDs []string, area []*sim.ReferencePoint) {
	m := g.Current.GetPatrolMission(missionID)
	if m == nil {
		return
	}
	if name != "" {
		m.Name = name
	}
	if len(unitIDs) > 0 {
		m.AssignedUnitIDs = unitIDs
	}
	if len(area) > 2 {
		m.AssignedArea = area
		m.UpdatePatrolAreaGeometry()
	}
}

// CreateStrikeMission creates an active strike mission.
func (g *Game) CreateStrikeMission(name string, attackerIDs, targetIDs []string) *sim.Mission {
	sideID := g.CurrentSideName
	if side := g.Current.GetSide(g.CurrentSideName); side != nil && side.ID != "" {
		sideID = side.ID
	}
	m := sim.NewStrikeMission(uuid.NewString(), name, sideID, attackerIDs, targetIDs)
	g.Current.Missions = append(g.Current.Missions, m)
	return m
}

// UpdateStrikeMission edits a strike mission. Empty fields are no-ops.
func (g *Game) UpdateStrikeMission(missionID, name string, attackerIDs, targetIDs []string) {
	m := g.Current.GetStrikeMission(missionID)
	if m == nil {
		return
	}
	if name != "" {
		m.Name = name
	}
	if len(attackerIDs) > 0 {
		m.AssignedUnitIDs = attackerIDs
	}
	if len(targetIDs) > 0 {
		m.AssignedTargetIDs = targetIDs
	}
}

// DeleteMission removes a mission outright.
func (g *Game) DeleteMission(missionID string) { g.Current.RemoveMission(missionID) }
