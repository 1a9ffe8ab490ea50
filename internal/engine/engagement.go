// Package engine advances the world one tick at a time: auto-defense
// targeting, air-to-air engagement, mission progression, weapon guidance,
// unit kinematics, and carried-weapon sync, in that fixed order.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/seaward-sim/seaward/internal/geo"
	"github.com/seaward-sim/seaward/internal/sim"
)

const (
	// arrivalThresholdNM is the distance below which a mover is considered
	// to have reached a waypoint, base, or target.
	arrivalThresholdNM = 0.5

	// standoffRangeFactor holds strike attackers outside this multiple of
	// their best weapon's range before committing to a launch.
	standoffRangeFactor = 1.1

	// Track-count caps: how many of a side's weapons may simultaneously
	// engage one candidate.
	maxAircraftTracks = 10
	maxWeaponTracks   = 5
	maxDogfightTracks = 1
)

// withinRange reports whether the threat sits inside the given engagement
// envelope centered on the defender.
func withinRange(threat sim.Entity, defender sim.Entity, rangeNM float64) bool {
	tLat, tLon := threat.Position()
	dLat, dLon := defender.Position()
	return geo.Distance(tLat, tLon, dLat, dLon) <= rangeNM
}

// trackedByCount returns how many launched weapons are currently assigned to
// the target.
func trackedByCount(sc *sim.Scenario, targetID string) int {
	count := 0
	for _, w := range sc.Weapons {
		if w.TargetID == targetID {
			count++
		}
	}
	return count
}

// launchWeapon spawns one round from the shooter's best magazine against the
// target. The round inherits the magazine's performance, starts at the
// shooter's position, and joins the world as an independent weapon. A shooter
// with no usable magazine launches nothing.
func launchWeapon(sc *sim.Scenario, shooter sim.Shooter, target sim.Entity) {
	magazine := shooter.BestWeapon()
	if magazine == nil {
		return
	}

	lat, lon := shooter.Position()
	round := &sim.Weapon{
		Unit: sim.Unit{
			ID:          uuid.NewString(),
			Name:        fmt.Sprintf("%s #%d", magazine.Name, magazine.MaxQuantity-magazine.CurrentQuantity+1),
			SideName:    magazine.SideName,
			ClassName:   magazine.ClassName,
			Latitude:    lat,
			Longitude:   lon,
			Altitude:    magazine.Altitude,
			Heading:     magazine.Heading,
			Speed:       magazine.Speed,
			CurrentFuel: magazine.CurrentFuel,
			MaxFuel:     magazine.MaxFuel,
			FuelRate:    magazine.FuelRate,
			SideColor:   magazine.SideColor,
		},
		Range:           magazine.Range,
		Lethality:       magazine.Lethality,
		TargetID:        target.EntityID(),
		MaxQuantity:     1,
		CurrentQuantity: 1,
	}
	sc.Weapons = append(sc.Weapons, round)
	shooter.ExpendRound(magazine)
}

// facilityAutoDefense launches at hostile aircraft in range (capped at
// maxAircraftTracks concurrent engagements per candidate) and at inbound
// weapons locked onto the facility (capped at maxWeaponTracks).
func facilityAutoDefense(sc *sim.Scenario) {
	for _, facility := range sc.Facilities {
		for _, aircraft := range sc.Aircraft {
			if facility.SideName == aircraft.SideName {
				continue
			}
			if withinRange(aircraft, facility, facility.Range) &&
				trackedByCount(sc, aircraft.ID) < maxAircraftTracks {
				launchWeapon(sc, facility, aircraft)
			}
		}
		for _, weapon := range sc.Weapons {
			if facility.SideName == weapon.SideName {
				continue
			}
			if weapon.TargetID == facility.ID &&
				withinRange(weapon, facility, facility.Range) &&
				trackedByCount(sc, weapon.ID) < maxWeaponTracks {
				launchWeapon(sc, facility, weapon)
			}
		}
	}
}

// shipAutoDefense mirrors facilityAutoDefense for ships.
func shipAutoDefense(sc *sim.Scenario) {
	for _, ship := range sc.Ships {
		for _, aircraft := range sc.Aircraft {
			if ship.SideName == aircraft.SideName {
				continue
			}
			if withinRange(aircraft, ship, ship.Range) &&
				trackedByCount(sc, aircraft.ID) < maxAircraftTracks {
				launchWeapon(sc, ship, aircraft)
			}
		}
		for _, weapon := range sc.Weapons {
			if ship.SideName == weapon.SideName {
				continue
			}
			if weapon.TargetID == ship.ID &&
				withinRange(weapon, ship, ship.Range) &&
				trackedByCount(sc, weapon.ID) < maxWeaponTracks {
				launchWeapon(sc, ship, weapon)
			}
		}
	}
}

// airToAirEngagement runs the dogfight pass. An armed aircraft engages
// hostile aircraft inside its best weapon's range (at most one concurrent
// engagement per candidate) and defends against inbound weapons locked onto
// it. A lock, once acquired, persists while the target id resolves, and the
// aircraft pursues the target each tick.
func airToAirEngagement(sc *sim.Scenario) {
	for _, aircraft := range sc.Aircraft {
		best := aircraft.BestWeapon()
		if best == nil {
			continue
		}
		for _, enemy := range sc.Aircraft {
			if aircraft.SideName == enemy.SideName {
				continue
			}
			if aircraft.TargetID != "" && aircraft.TargetID != enemy.ID {
				continue
			}
			if withinRange(enemy, aircraft, best.Range) &&
				trackedByCount(sc, enemy.ID) < maxDogfightTracks {
				launchWeapon(sc, aircraft, enemy)
				aircraft.TargetID = enemy.ID
			}
		}
		for _, enemyWeapon := range sc.Weapons {
			if aircraft.SideName == enemyWeapon.SideName {
				continue
			}
			if enemyWeapon.TargetID == aircraft.ID &&
				withinRange(enemyWeapon, aircraft, best.Range) &&
				trackedByCount(sc, enemyWeapon.ID) < maxDogfightTracks {
				launchWeapon(sc, aircraft, enemyWeapon)
			}
		}
		if aircraft.TargetID != "" {
			aircraftPursuit(sc, aircraft)
		}
	}
}

// aircraftPursuit re-routes a locked aircraft toward its target's current
// position. The lock clears when the target no longer resolves.
func aircraftPursuit(sc *sim.Scenario, aircraft *sim.Aircraft) {
	target := sc.GetAircraft(aircraft.TargetID)
	if target == nil {
		aircraft.TargetID = ""
		return
	}
	wp := sim.Waypoint{target.Latitude, target.Longitude}
	if len(aircraft.Route) == 0 {
		aircraft.Route = append(aircraft.Route, wp)
	} else {
		aircraft.Route[0] = wp
	}
	aircraft.Heading = geo.Bearing(
		aircraft.Latitude, aircraft.Longitude, target.Latitude, target.Longitude)
}

// routeToStrikePosition routes an attacker to a stand-off point at
// strikeRadiusNM from the target along the target-to-attacker bearing:
// inside launch range, but no closer.
func routeToStrikePosition(sc *sim.Scenario, attacker *sim.Aircraft, targetID string, strikeRadiusNM float64) {
	target := sc.GetTarget(targetID)
	if target == nil {
		return
	}
	tLat, tLon := target.Position()
	away := geo.Bearing(tLat, tLon, attacker.Latitude, attacker.Longitude)
	lat, lon := geo.TerminalPoint(tLat, tLon, strikeRadiusNM, away)

	attacker.Route = []sim.Waypoint{{lat, lon}}
	attacker.Heading = geo.Bearing(attacker.Latitude, attacker.Longitude, lat, lon)
}

// weaponEngagement guides one launched weapon for one tick. The weapon
// closes on its target using the same kinematics as units, resolves a hit
// against Lethality once inside the arrival threshold, and is expended on
// arrival regardless of outcome. A weapon whose target no longer resolves is
// removed, as is one that exhausts its fuel in flight.
func weaponEngagement(sc *sim.Scenario, weapon *sim.Weapon, rng *rand.Rand) {
	target := sc.GetTarget(weapon.TargetID)
	if target == nil {
		sc.RemoveWeapon(weapon.ID)
		return
	}

	tLat, tLon := target.Position()
	if geo.Distance(weapon.Latitude, weapon.Longitude, tLat, tLon) < arrivalThresholdNM {
		if rng.Float64() <= weapon.Lethality {
			sc.RemoveTarget(target.EntityID())
		}
		sc.RemoveWeapon(weapon.ID)
		return
	}

	weapon.Latitude, weapon.Longitude = geo.NextPoint(
		weapon.Latitude, weapon.Longitude, tLat, tLon, weapon.Speed)
	weapon.Heading = geo.Bearing(weapon.Latitude, weapon.Longitude, tLat, tLon)
	weapon.CurrentFuel -= weapon.FuelRate / 3600
	if weapon.CurrentFuel <= 0 {
		sc.RemoveWeapon(weapon.ID)
	}
}
