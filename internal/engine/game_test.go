package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaward-sim/seaward/internal/command"
	"github.com/seaward-sim/seaward/internal/config"
	"github.com/seaward-sim/seaward/internal/recorder"
	"github.com/seaward-sim/seaward/internal/sim"
	"github.com/seaward-sim/seaward/internal/storage/memory"
)

func TestNewGameRetainsInitialState(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	assert.Equal(t, "BLUE", g.CurrentSideName, "acting side defaults to the first side")
	assert.NotSame(t, g.Current, g.Initial)
	assert.NotNil(t, g.Initial.GetAircraft("ac-1"))
}

func TestStepContract(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	before := g.Current.CurrentTime
	world, reward, terminated, truncated, info := g.Step(nil)

	assert.Same(t, g.Current, world)
	assert.Equal(t, 0.0, reward)
	assert.False(t, terminated)
	assert.False(t, truncated)
	assert.NotNil(t, info)
	assert.Equal(t, before+1, world.CurrentTime)
}

func TestStepAppliesCommands(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	g.Step([]command.Command{{
		Type: command.TypeMoveAircraft,
		Move: &command.Move{UnitID: "ac-1", Route: []sim.Waypoint{{20, 20}}},
	}})

	a := g.Current.GetAircraft("ac-1")
	require.NotNil(t, a)
	require.NotEmpty(t, a.Route)
	assert.Equal(t, sim.Waypoint{20, 20}, a.Route[0])
}

func TestStepSkipsMalformedCommands(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)

	before := g.Current.CurrentTime
	// Missing payload and unknown type: both logged and skipped, the tick
	// still advances.
	g.Step([]command.Command{
		{Type: command.TypeMoveAircraft},
		{Type: command.Type("Teleport")},
	})
	assert.Equal(t, before+1, g.Current.CurrentTime)
}

func TestStepDrainsEnqueuedCommands(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	g.Enqueue(command.Command{
		Type: command.TypeMoveAircraft,
		Move: &command.Move{UnitID: "ac-1", Route: []sim.Waypoint{{20, 20}}},
	})
	g.Step(nil)

	a := g.Current.GetAircraft("ac-1")
	require.NotNil(t, a)
	require.NotEmpty(t, a.Route)
	assert.Equal(t, sim.Waypoint{20, 20}, a.Route[0])

	// The queue drains completely.
	a.Route = nil
	g.Step(nil)
	assert.Empty(t, a.Route)
}

func TestStepInterceptedWeaponCannotHit(t *testing.T) {
	sc := newScenario()
	ship := &sim.Ship{
		Unit: sim.Unit{
			ID: "ship-1", SideName: "BLUE", Latitude: 20, Longitude: 20,
			CurrentFuel: 5000, MaxFuel: 5000, FuelRate: 100,
		},
	}
	sc.Ships = append(sc.Ships, ship)

	// Interceptor sits ahead of the inbound round in the weapon list and
	// within the arrival threshold of it, so it resolves first this tick.
	inbound := newMagazine("wpn-inbound", "RED", 100, 1, 1.0)
	inbound.Latitude, inbound.Longitude = 20.005, 20
	inbound.TargetID = "ship-1"

	interceptor := newMagazine("wpn-interceptor", "BLUE", 100, 1, 1.0)
	interceptor.Latitude, interceptor.Longitude = 20.007, 20
	interceptor.TargetID = "wpn-inbound"

	sc.Weapons = append(sc.Weapons, interceptor, inbound)

	g := newGame(sc)
	g.Step(nil)

	assert.NotNil(t, g.Current.GetShip("ship-1"), "destroyed weapon must not deliver its hit")
	assert.Nil(t, g.Current.GetWeapon("wpn-inbound"))
	assert.Nil(t, g.Current.GetWeapon("wpn-interceptor"))
}

func TestReset(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	for i := 0; i < 5; i++ {
		g.Step(nil)
	}
	g.Current.RemoveAircraft("ac-1")
	startTime := g.Initial.CurrentTime

	g.Reset()

	assert.Equal(t, startTime, g.Current.CurrentTime)
	require.NotNil(t, g.Current.GetAircraft("ac-1"))
	assert.Equal(t, "BLUE", g.CurrentSideName)

	// Reset hands out a fresh copy; mutating it leaves Initial intact.
	g.Current.RemoveAircraft("ac-1")
	assert.NotNil(t, g.Initial.GetAircraft("ac-1"))
}

func TestResetDiscardsPendingCommands(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	g.Enqueue(command.Command{
		Type: command.TypeMoveAircraft,
		Move: &command.Move{UnitID: "ac-1", Route: []sim.Waypoint{{20, 20}}},
	})
	g.Reset()
	g.Step(nil)

	a := g.Current.GetAircraft("ac-1")
	require.NotNil(t, a)
	assert.Empty(t, a.Route, "commands from before the reset must not reach the fresh world")
}

func TestRecordingCapturesOneFramePerTick(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	g.SetRecorder(recorder.New(backend, zerolog.Nop()))
	g.StartRecording()

	for i := 0; i < 3; i++ {
		g.Step(nil)
	}

	frames := backend.Frames()
	require.Len(t, frames, 4, "initial snapshot plus one frame per tick")

	// Frames are deep snapshots, not aliases of the live world.
	g.Current.GetAircraft("ac-1").Latitude = 99
	assert.Equal(t, 10.0, frames[0].GetAircraft("ac-1").Latitude)

	require.NoError(t, g.StopRecording())
	assert.NotEmpty(t, backend.ExportedFilePath())
}

func TestSampleWeapon(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)

	w := g.SampleWeapon(10, 0.25, "RED")
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "RED", w.SideName)
	assert.Equal(t, "red", w.SideColor)
	assert.Equal(t, 100.0, w.Range)
	assert.Equal(t, 10, w.MaxQuantity)
	assert.Equal(t, 10, w.CurrentQuantity)
	assert.Equal(t, 0.25, w.Lethality)

	// Empty side falls back to the acting side.
	w = g.SampleWeapon(5, 0.5, "")
	assert.Equal(t, "BLUE", w.SideName)
}

func TestArmDefaultWeapons(t *testing.T) {
	sc := newScenario()
	armed := newAircraft("ac-armed", "BLUE", 10, 10, newMagazine("mag-1", "BLUE", 30, 4, 0.5))
	bare := newAircraft("ac-bare", "BLUE", 10, 11)
	sc.Aircraft = append(sc.Aircraft, armed, bare)
	sc.Ships = append(sc.Ships, &sim.Ship{
		Unit:     sim.Unit{ID: "ship-1", SideName: "RED", Latitude: 9, Longitude: 9},
		Aircraft: []*sim.Aircraft{newAircraft("ac-rostered", "RED", 9, 9)},
	})
	sc.Facilities = append(sc.Facilities, &sim.Facility{ID: "fac-1", SideName: "RED"})
	sc.Airbases = append(sc.Airbases, &sim.Airbase{
		ID: "base-1", SideName: "BLUE",
		Aircraft: []*sim.Aircraft{newAircraft("ac-alert", "BLUE", 10, 10)},
	})
	g := newGame(sc)

	g.ArmDefaultWeapons()

	require.Len(t, armed.Weapons, 1)
	assert.Equal(t, "mag-1", armed.Weapons[0].ID, "already-armed units keep their loadout")
	require.Len(t, bare.Weapons, 1)
	assert.Equal(t, 10, bare.Weapons[0].MaxQuantity)
	assert.Equal(t, 0.25, bare.Weapons[0].Lethality)
	assert.Len(t, sc.Ships[0].Weapons, 1)
	assert.Len(t, sc.Ships[0].Aircraft[0].Weapons, 1)
	assert.Len(t, sc.Facilities[0].Weapons, 1)
	assert.Len(t, sc.Airbases[0].Aircraft[0].Weapons, 1)
}

func TestMoveAircraftAndShip(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	sc.Ships = append(sc.Ships, &sim.Ship{
		Unit: sim.Unit{ID: "ship-1", SideName: "BLUE", Latitude: 9, Longitude: 9},
	})
	g := newGame(sc)

	a := g.MoveAircraft("ac-1", []sim.Waypoint{{1, 1}, {2, 2}})
	require.NotNil(t, a)
	assert.Equal(t, []sim.Waypoint{{1, 1}, {2, 2}}, a.Route)

	s := g.MoveShip("ship-1", []sim.Waypoint{{3, 3}})
	require.NotNil(t, s)
	assert.Equal(t, []sim.Waypoint{{3, 3}}, s.Route)

	assert.Nil(t, g.MoveAircraft("nope", nil))
	assert.Nil(t, g.MoveShip("nope", nil))
}

func TestHandleAttacksRejectFriendlyFire(t *testing.T) {
	sc := newScenario()
	blue := newAircraft("ac-blue", "BLUE", 10, 10, newMagazine("mag-1", "BLUE", 50, 4, 0.5))
	friendly := newAircraft("ac-friendly", "BLUE", 10, 11)
	red := newAircraft("ac-red", "RED", 10.1, 10.1)
	sc.Aircraft = append(sc.Aircraft, blue, friendly, red)
	g := newGame(sc)

	g.HandleAircraftAttack("ac-blue", "ac-friendly")
	assert.Empty(t, g.Current.Weapons, "friendly targets are refused")

	g.HandleAircraftAttack("ac-blue", "ac-blue")
	assert.Empty(t, g.Current.Weapons, "self targets are refused")

	g.HandleAircraftAttack("ac-blue", "ac-red")
	require.Len(t, g.Current.Weapons, 1)
	assert.Equal(t, "ac-red", g.Current.Weapons[0].TargetID)
}

func TestLaunchAircraftFromAirbase(t *testing.T) {
	sc := newScenario()
	sc.Airbases = append(sc.Airbases, &sim.Airbase{
		ID: "base-1", SideName: "BLUE",
		Aircraft: []*sim.Aircraft{
			newAircraft("ac-first", "BLUE", 10, 10),
			newAircraft("ac-second", "BLUE", 10, 10),
		},
	})
	g := newGame(sc)

	launched := g.LaunchAircraftFromAirbase("base-1")
	require.NotNil(t, launched)
	assert.Equal(t, "ac-first", launched.ID, "roster launches front first")
	assert.NotNil(t, g.Current.GetAircraft("ac-first"))
	assert.Len(t, g.Current.GetAirbase("base-1").Aircraft, 1)

	g.LaunchAircraftFromAirbase("base-1")
	assert.Nil(t, g.LaunchAircraftFromAirbase("base-1"), "empty roster launches nothing")
}

func TestLaunchAircraftFromShip(t *testing.T) {
	sc := newScenario()
	sc.Ships = append(sc.Ships, &sim.Ship{
		Unit:     sim.Unit{ID: "ship-1", SideName: "BLUE", Latitude: 9, Longitude: 9},
		Aircraft: []*sim.Aircraft{newAircraft("ac-1", "BLUE", 9, 9)},
	})
	g := newGame(sc)

	launched := g.LaunchAircraftFromShip("ship-1")
	require.NotNil(t, launched)
	assert.NotNil(t, g.Current.GetAircraft("ac-1"))
	assert.Empty(t, g.Current.GetShip("ship-1").Aircraft)
	assert.Nil(t, g.LaunchAircraftFromShip("ship-1"))
}

func TestAircraftReturnToBaseToggle(t *testing.T) {
	sc := newScenario()
	base := &sim.Airbase{ID: "base-1", SideName: "BLUE", Latitude: 20, Longitude: 20}
	sc.Airbases = append(sc.Airbases, base)
	a := newAircraft("ac-1", "BLUE", 10, 10)
	a.Route = []sim.Waypoint{{11, 11}}
	sc.Aircraft = append(sc.Aircraft, a)
	g := newGame(sc)

	got := g.AircraftReturnToBase("ac-1")
	require.NotNil(t, got)
	assert.True(t, a.RTB)
	assert.Equal(t, "base-1", a.HomeBaseID, "closest base recorded as home")
	require.Len(t, a.Route, 1)
	assert.Equal(t, sim.Waypoint{20, 20}, a.Route[0], "routed at the base")

	g.AircraftReturnToBase("ac-1")
	assert.False(t, a.RTB)
	assert.Empty(t, a.Route)
}

func TestAddReferencePoint(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)

	rp := g.AddReferencePoint("Alpha", 12, 34)
	require.NotNil(t, rp)
	assert.Equal(t, "BLUE", rp.SideName)
	assert.Equal(t, "blue", rp.SideColor)
	assert.NotNil(t, g.Current.GetReferencePoint(rp.ID))
}

func TestCreatePatrolMissionRejectsSmallArea(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)

	assert.Nil(t, g.CreatePatrolMission("CAP", nil, patrolArea()[:2]))
	assert.Empty(t, g.Current.Missions)

	m := g.CreatePatrolMission("CAP", []string{"ac-1"}, patrolArea())
	require.NotNil(t, m)
	assert.Equal(t, "side-blue", m.SideID)
	assert.True(t, m.HasValidArea())
	assert.Len(t, g.Current.Missions, 1)
}

func TestUpdatePatrolMissionPartialEdits(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)
	m := g.CreatePatrolMission("CAP", []string{"ac-1"}, patrolArea())
	require.NotNil(t, m)

	g.UpdatePatrolMission(m.ID, "", nil, nil)
	assert.Equal(t, "CAP", m.Name, "empty fields are no-ops")
	assert.Equal(t, []string{"ac-1"}, m.AssignedUnitIDs)

	shifted := patrolArea()
	for _, rp := range shifted {
		rp.Latitude += 10
	}
	g.UpdatePatrolMission(m.ID, "CAP North", []string{"ac-2"}, shifted)
	assert.Equal(t, "CAP North", m.Name)
	assert.Equal(t, []string{"ac-2"}, m.AssignedUnitIDs)
	assert.True(t, m.ContainsWaypoint(sim.Waypoint{10.5, 0.5}), "geometry re-derived")
}

func TestStrikeMissionLifecycle(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)

	m := g.CreateStrikeMission("Strike", []string{"ac-1"}, []string{"fac-1"})
	require.NotNil(t, m)
	assert.Equal(t, sim.MissionStrike, m.Kind)

	g.UpdateStrikeMission(m.ID, "Strike 2", nil, []string{"fac-2"})
	assert.Equal(t, "Strike 2", m.Name)
	assert.Equal(t, []string{"ac-1"}, m.AssignedUnitIDs)
	assert.Equal(t, []string{"fac-2"}, m.AssignedTargetIDs)

	g.DeleteMission(m.ID)
	assert.Empty(t, g.Current.Missions)
}

func TestApplyDispatch(t *testing.T) {
	sc := newScenario()
	sc.Aircraft = append(sc.Aircraft, newAircraft("ac-1", "BLUE", 10, 10))
	g := newGame(sc)

	tests := []struct {
		name    string
		cmd     command.Command
		wantErr bool
	}{
		{
			name: "move aircraft",
			cmd: command.Command{
				Type: command.TypeMoveAircraft,
				Move: &command.Move{UnitID: "ac-1", Route: []sim.Waypoint{{1, 1}}},
			},
		},
		{
			name: "add reference point",
			cmd: command.Command{
				Type:              command.TypeAddReferencePoint,
				AddReferencePoint: &command.AddReferencePoint{Name: "A", Latitude: 1, Longitude: 2},
			},
		},
		{
			name:    "missing payload",
			cmd:     command.Command{Type: command.TypeShipAttack},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cmd:     command.Command{Type: command.Type("Teleport")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Apply(tt.cmd)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyCreatePatrolMissionResolvesPoints(t *testing.T) {
	sc := newScenario()
	g := newGame(sc)
	var ids []string
	for _, rp := range patrolArea() {
		got := g.AddReferencePoint(rp.Name, rp.Latitude, rp.Longitude)
		ids = append(ids, got.ID)
	}

	err := g.Apply(command.Command{
		Type: command.TypeCreatePatrolMission,
		CreateMission: &command.CreateMission{
			Name:         "CAP",
			UnitIDs:      []string{"ac-1"},
			AreaPointIDs: append(ids, "rp-gone"),
		},
	})
	require.NoError(t, err)
	require.Len(t, g.Current.Missions, 1)
	m := g.Current.Missions[0]
	assert.Len(t, m.AssignedArea, 4, "unresolvable point ids dropped")
	assert.True(t, m.HasValidArea())
}
