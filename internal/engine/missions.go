package engine

import (
	"math/rand"

	"github.com/seaward-sim/seaward/internal/geo"
	"github.com/seaward-sim/seaward/internal/sim"
)

// updatePatrolMissions keeps every assigned, resolvable unit of each active
// patrol mission busy inside its area: idle units get a fresh random interior
// waypoint, and a unit whose leading waypoint has drifted outside the area
// (the area was edited after assignment) has its route replaced the same
// way. Missions without a valid area are skipped entirely.
func updatePatrolMissions(sc *sim.Scenario, rng *rand.Rand) {
	for _, mission := range sc.PatrolMissions() {
		if !mission.Active || !mission.HasValidArea() {
			continue
		}
		for _, unitID := range mission.AssignedUnitIDs {
			unit := sc.GetAircraft(unitID)
			if unit == nil {
				continue
			}
			if len(unit.Route) == 0 {
				if wp, ok := mission.RandomWaypoint(rng); ok {
					unit.Route = append(unit.Route, wp)
				}
			} else if !mission.ContainsWaypoint(unit.Route[0]) {
				unit.Route = unit.Route[:0]
				if wp, ok := mission.RandomWaypoint(rng); ok {
					unit.Route = append(unit.Route, wp)
				}
			}
		}
	}
}

// updateStrikeMissions routes every assigned attacker of each active strike
// mission against the mission's primary target. Attackers beyond the
// stand-off factor of their best weapon's range close to a launch position;
// attackers inside it launch and lock the target. Missions without targets
// are skipped.
func updateStrikeMissions(sc *sim.Scenario) {
	for _, mission := range sc.StrikeMissions() {
		if !mission.Active || len(mission.AssignedTargetIDs) < 1 {
			continue
		}
		targetID := mission.AssignedTargetIDs[0]
		for _, attackerID := range mission.AssignedUnitIDs {
			attacker := sc.GetAircraft(attackerID)
			if attacker == nil {
				continue
			}
			target := sc.GetTarget(targetID)
			if target == nil {
				continue
			}
			best := attacker.BestWeapon()
			if best == nil {
				continue
			}
			tLat, tLon := target.Position()
			distance := geo.Distance(attacker.Latitude, attacker.Longitude, tLat, tLon)
			if distance > best.Range*standoffRangeFactor {
				routeToStrikePosition(sc, attacker, targetID, best.Range)
			} else {
				launchWeapon(sc, attacker, target)
				attacker.TargetID = target.EntityID()
			}
		}
	}
}
