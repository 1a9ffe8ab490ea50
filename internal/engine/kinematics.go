package engine

import (
	"github.com/seaward-sim/seaward/internal/geo"
	"github.com/seaward-sim/seaward/internal/sim"
)

// advanceAlongRoute moves one mobile unit for one tick. Within the arrival
// threshold of the leading waypoint the unit snaps to it exactly and the
// waypoint is consumed; otherwise the unit advances toward it and the
// heading follows the bearing. A unit with an empty route holds position.
func advanceAlongRoute(u *sim.Unit) bool {
	if len(u.Route) < 1 {
		return false
	}
	next := u.Route[0]
	if geo.Distance(u.Latitude, u.Longitude, next.Lat(), next.Lon()) < arrivalThresholdNM {
		u.Latitude = next.Lat()
		u.Longitude = next.Lon()
		u.Route = u.Route[1:]
		return true
	}
	u.Latitude, u.Longitude = geo.NextPoint(
		u.Latitude, u.Longitude, next.Lat(), next.Lon(), u.Speed)
	u.Heading = geo.Bearing(u.Latitude, u.Longitude, next.Lat(), next.Lon())
	return true
}

// burnFuel applies one tick of fuel consumption. Idle units burn fuel too.
// Returns true when the unit has run dry and must be removed.
func burnFuel(u *sim.Unit) bool {
	u.CurrentFuel -= u.FuelRate / 3600
	return u.CurrentFuel <= 0
}

// updateAircraftPositions advances every airborne aircraft: RTB aircraft
// within the arrival threshold of their resolved base land; everything else
// follows its route and burns fuel, falling out of the sky at empty tanks.
func (g *Game) updateAircraftPositions() {
	aircraft := make([]*sim.Aircraft, len(g.Current.Aircraft))
	copy(aircraft, g.Current.Aircraft)

	for _, a := range aircraft {
		if a.RTB {
			base := g.resolveBase(a)
			if base != nil && geo.Distance(
				a.Latitude, a.Longitude, base.Latitude, base.Longitude) < arrivalThresholdNM {
				g.landAircraft(a.ID)
				continue
			}
		}
		advanceAlongRoute(&a.Unit)
		if burnFuel(&a.Unit) {
			g.Current.RemoveAircraft(a.ID)
		}
	}
}

// updateShipPositions advances every ship along its route and burns fuel;
// dry ships are removed.
func (g *Game) updateShipPositions() {
	ships := make([]*sim.Ship, len(g.Current.Ships))
	copy(ships, g.Current.Ships)

	for _, s := range ships {
		advanceAlongRoute(&s.Unit)
		if burnFuel(&s.Unit) {
			g.Current.RemoveShip(s.ID)
		}
	}
}

// syncOnboardWeapons glues every not-yet-launched magazine to its carrier's
// position. This is a presentation/consistency pass, not a targeting pass.
func syncOnboardWeapons(sc *sim.Scenario) {
	for _, a := range sc.Aircraft {
		for _, w := range a.Weapons {
			w.Latitude = a.Latitude
			w.Longitude = a.Longitude
		}
	}
	for _, f := range sc.Facilities {
		for _, w := range f.Weapons {
			w.Latitude = f.Latitude
			w.Longitude = f.Longitude
		}
	}
	for _, s := range sc.Ships {
		for _, w := range s.Weapons {
			w.Latitude = s.Latitude
			w.Longitude = s.Longitude
		}
	}
}

// resolveBase returns the aircraft's explicit home base when set, otherwise
// the nearest friendly base.
func (g *Game) resolveBase(a *sim.Aircraft) *sim.Airbase {
	if a.HomeBaseID != "" {
		return g.Current.GetAircraftHomebase(a.ID)
	}
	return g.Current.GetClosestBaseToAircraft(a.ID)
}

// landAircraft completes an RTB recovery: the airborne instance is removed
// and an identical-identity aircraft is appended to the base's roster,
// offset slightly from the base, with RTB cleared and an empty route.
func (g *Game) landAircraft(aircraftID string) {
	a := g.Current.GetAircraft(aircraftID)
	if a == nil || !a.RTB {
		return
	}
	base := g.resolveBase(a)
	if base == nil {
		return
	}

	landed := &sim.Aircraft{
		Unit: sim.Unit{
			ID:          a.ID,
			Name:        a.Name,
			SideName:    a.SideName,
			ClassName:   a.ClassName,
			Latitude:    base.Latitude - 0.5,
			Longitude:   base.Longitude - 0.5,
			Altitude:    a.Altitude,
			Heading:     90.0,
			Speed:       a.Speed,
			CurrentFuel: a.CurrentFuel,
			MaxFuel:     a.MaxFuel,
			FuelRate:    a.FuelRate,
			SideColor:   a.SideColor,
		},
		Range:      a.Range,
		Weapons:    a.Weapons,
		HomeBaseID: base.ID,
		RTB:        false,
		TargetID:   a.TargetID,
	}
	base.Aircraft = append(base.Aircraft, landed)
	g.Current.RemoveAircraft(a.ID)
}
