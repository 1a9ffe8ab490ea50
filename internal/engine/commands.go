package engine

import (
	"fmt"

	"github.com/seaward-sim/seaward/internal/command"
	"github.com/seaward-sim/seaward/internal/sim"
)

// Apply dispatches one command against the live world. Unknown or
// malformed commands return an error; the caller decides whether to log or
// drop. Step never lets a failure abort the tick.
func (g *Game) Apply(cmd command.Command) error {
	switch cmd.Type {
	case command.TypeMoveAircraft:
		if cmd.Move == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.MoveAircraft(cmd.Move.UnitID, cmd.Move.Route)

	case command.TypeMoveShip:
		if cmd.Move == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.MoveShip(cmd.Move.UnitID, cmd.Move.Route)

	case command.TypeAircraftAttack:
		if cmd.Attack == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.HandleAircraftAttack(cmd.Attack.UnitID, cmd.Attack.TargetID)

	case command.TypeShipAttack:
		if cmd.Attack == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.HandleShipAttack(cmd.Attack.UnitID, cmd.Attack.TargetID)

	case command.TypeLaunchFromAirbase:
		if cmd.Launch == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.LaunchAircraftFromAirbase(cmd.Launch.HostID)

	case command.TypeLaunchFromShip:
		if cmd.Launch == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.LaunchAircraftFromShip(cmd.Launch.HostID)

	case command.TypeReturnToBase:
		if cmd.ReturnToBase == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.AircraftReturnToBase(cmd.ReturnToBase.AircraftID)

	case command.TypeCreatePatrolMission:
		if cmd.CreateMission == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.CreatePatrolMission(cmd.CreateMission.Name, cmd.CreateMission.UnitIDs,
			g.resolveAreaPoints(cmd.CreateMission.AreaPointIDs))

	case command.TypeUpdatePatrolMission:
		if cmd.UpdateMission == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.UpdatePatrolMission(cmd.UpdateMission.MissionID, cmd.UpdateMission.Name,
			cmd.UpdateMission.UnitIDs, g.resolveAreaPoints(cmd.UpdateMission.AreaPointIDs))

	case command.TypeCreateStrikeMission:
		if cmd.CreateMission == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.CreateStrikeMission(cmd.CreateMission.Name, cmd.CreateMission.UnitIDs,
			cmd.CreateMission.TargetIDs)

	case command.TypeUpdateStrikeMission:
		if cmd.UpdateMission == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.UpdateStrikeMission(cmd.UpdateMission.MissionID, cmd.UpdateMission.Name,
			cmd.UpdateMission.UnitIDs, cmd.UpdateMission.TargetIDs)

	case command.TypeDeleteMission:
		if cmd.DeleteMission == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.DeleteMission(cmd.DeleteMission.MissionID)

	case command.TypeAddReferencePoint:
		if cmd.AddReferencePoint == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.AddReferencePoint(cmd.AddReferencePoint.Name,
			cmd.AddReferencePoint.Latitude, cmd.AddReferencePoint.Longitude)

	case command.TypeRemoveReferencePoint:
		if cmd.RemoveReferencePoint == nil {
			return fmt.Errorf("%s: missing payload", cmd.Type)
		}
		g.Current.RemoveReferencePoint(cmd.RemoveReferencePoint.PointID)

	default:
		return fmt.Errorf("unknown command: %s", cmd.Type)
	}
	return nil
}

// resolveAreaPoints maps reference point ids to live points, dropping any
// that no longer resolve.
func (g *Game) resolveAreaPoints(pointIDs []string) []*sim.ReferencePoint {
	var out []*sim.ReferencePoint
	for _, id := range pointIDs {
		if rp := g.Current.GetReferencePoint(id); rp != nil {
			out = append(out, rp)
		}
	}
	return out
}
