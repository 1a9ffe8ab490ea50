// Package command defines the closed set of operator commands accepted by
// the simulation. Commands are plain data; the engine dispatches them through
// a single switch before advancing the tick. There is no scripting surface;
// an unknown command type is an error at the dispatch boundary.
package command

import "github.com/seaward-sim/seaward/internal/sim"

// Type enumerates the supported commands.
type Type string

const (
	TypeMoveAircraft         Type = "MoveAircraft"
	TypeMoveShip             Type = "MoveShip"
	TypeAircraftAttack       Type = "AircraftAttack"
	TypeShipAttack           Type = "ShipAttack"
	TypeLaunchFromAirbase    Type = "LaunchFromAirbase"
	TypeLaunchFromShip       Type = "LaunchFromShip"
	TypeReturnToBase         Type = "ReturnToBase"
	TypeCreatePatrolMission  Type = "CreatePatrolMission"
	TypeUpdatePatrolMission  Type = "UpdatePatrolMission"
	TypeCreateStrikeMission  Type = "CreateStrikeMission"
	TypeUpdateStrikeMission  Type = "UpdateStrikeMission"
	TypeDeleteMission        Type = "DeleteMission"
	TypeAddReferencePoint    Type = "AddReferencePoint"
	TypeRemoveReferencePoint Type = "RemoveReferencePoint"
)

// Move re-routes a unit along the given waypoints.
type Move struct {
	UnitID string         `json:"unitId"`
	Route  []sim.Waypoint `json:"route"`
}

// Attack orders a manual weapon launch from a unit against a target.
type Attack struct {
	UnitID   string `json:"unitId"`
	TargetID string `json:"targetId"`
}

// Launch moves the next rostered aircraft of a base or ship into the air.
type Launch struct {
	HostID string `json:"hostId"`
}

// ReturnToBase toggles the RTB flag on an aircraft.
type ReturnToBase struct {
	AircraftID string `json:"aircraftId"`
}

// CreateMission creates a patrol or strike mission. AreaPointIDs name
// reference points for patrol missions; TargetIDs name targets for strike
// missions.
type CreateMission struct {
	Name         string   `json:"name"`
	UnitIDs      []string `json:"unitIds"`
	AreaPointIDs []string `json:"areaPointIds,omitempty"`
	TargetIDs    []string `json:"targetIds,omitempty"`
}

// UpdateMission edits a mission. Empty fields are left untouched.
type UpdateMission struct {
	MissionID    string   `json:"missionId"`
	Name         string   `json:"name,omitempty"`
	UnitIDs      []string `json:"unitIds,omitempty"`
	AreaPointIDs []string `json:"areaPointIds,omitempty"`
	TargetIDs    []string `json:"targetIds,omitempty"`
}

// DeleteMission removes a mission outright.
type DeleteMission struct {
	MissionID string `json:"missionId"`
}

// AddReferencePoint places a named geo-point for the acting side.
type AddReferencePoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RemoveReferencePoint deletes a reference point.
type RemoveReferencePoint struct {
	PointID string `json:"pointId"`
}

// Command is one operator intent, applied before the next tick advances.
// Exactly one payload field matching Type is populated.
type Command struct {
	Type                 Type                  `json:"type"`
	Move                 *Move                 `json:"move,omitempty"`
	Attack               *Attack               `json:"attack,omitempty"`
	Launch               *Launch               `json:"launch,omitempty"`
	ReturnToBase         *ReturnToBase         `json:"returnToBase,omitempty"`
	CreateMission        *CreateMission        `json:"createMission,omitempty"`
	UpdateMission        *UpdateMission        `json:"updateMission,omitempty"`
	DeleteMission        *DeleteMission        `json:"deleteMission,omitempty"`
	AddReferencePoint    *AddReferencePoint    `json:"addReferencePoint,omitempty"`
	RemoveReferencePoint *RemoveReferencePoint `json:"removeReferencePoint,omitempty"`
}
