package sim

import "github.com/seaward-sim/seaward/internal/geo"

// Scenario is the single owned world state. All per-tick mutation happens in
// place on these collections; ids are globally unique across every kind and
// are never reused.
type Scenario struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	StartTime       int64             `json:"startTime"`
	CurrentTime     int64             `json:"currentTime"`
	Duration        int64             `json:"duration"`
	TimeCompression float64           `json:"timeCompression"`
	Sides           []*Side           `json:"sides"`
	Aircraft        []*Aircraft       `json:"aircraft"`
	Ships           []*Ship           `json:"ships"`
	Airbases        []*Airbase        `json:"airbases"`
	Facilities      []*Facility       `json:"facilities"`
	Weapons         []*Weapon         `json:"weapons"`
	ReferencePoints []*ReferencePoint `json:"referencePoints"`
	Missions        []*Mission        `json:"missions"`
}

// GetSide returns the side with the given name, or nil.
func (s *Scenario) GetSide(name string) *Side {
	for _, side := range s.Sides {
		if side.Name == name {
			return side
		}
	}
	return nil
}

// SideColor returns the display color of the named side, or empty string.
func (s *Scenario) SideColor(name string) string {
	if side := s.GetSide(name); side != nil {
		return side.SideColor
	}
	return ""
}

// GetAircraft returns the airborne aircraft with the given id, or nil.
func (s *Scenario) GetAircraft(id string) *Aircraft {
	for _, a := range s.Aircraft {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// GetShip returns the ship with the given id, or nil.
func (s *Scenario) GetShip(id string) *Ship {
	for _, sh := range s.Ships {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

// GetAirbase returns the airbase with the given id, or nil.
func (s *Scenario) GetAirbase(id string) *Airbase {
	for _, b := range s.Airbases {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// GetFacility returns the facility with the given id, or nil.
func (s *Scenario) GetFacility(id string) *Facility {
	for _, f := range s.Facilities {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// GetWeapon returns the launched weapon with the given id, or nil.
func (s *Scenario) GetWeapon(id string) *Weapon {
	for _, w := range s.Weapons {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// GetReferencePoint returns the reference point with the given id, or nil.
func (s *Scenario) GetReferencePoint(id string) *ReferencePoint {
	for _, rp := range s.ReferencePoints {
		if rp.ID == id {
			return rp
		}
	}
	return nil
}

// GetMission returns the mission with the given id, or nil.
func (s *Scenario) GetMission(id string) *Mission {
	for _, m := range s.Missions {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// GetPatrolMission returns the patrol mission with the given id, or nil.
func (s *Scenario) GetPatrolMission(id string) *Mission {
	if m := s.GetMission(id); m != nil && m.Kind == MissionPatrol {
		return m
	}
	return nil
}

// GetStrikeMission returns the strike mission with the given id, or nil.
func (s *Scenario) GetStrikeMission(id string) *Mission {
	if m := s.GetMission(id); m != nil && m.Kind == MissionStrike {
		return m
	}
	return nil
}

// GetTarget resolves an id against every targetable collection: aircraft,
// ships, facilities, airbases, and launched weapons. Returns nil when the id
// no longer resolves to a live entity.
func (s *Scenario) GetTarget(id string) Entity {
	if id == "" {
		return nil
	}
	if a := s.GetAircraft(id); a != nil {
		return a
	}
	if sh := s.GetShip(id); sh != nil {
		return sh
	}
	if f := s.GetFacility(id); f != nil {
		return f
	}
	if b := s.GetAirbase(id); b != nil {
		return b
	}
	if w := s.GetWeapon(id); w != nil {
		return w
	}
	return nil
}

// RemoveAircraft removes the airborne aircraft with the given id.
func (s *Scenario) RemoveAircraft(id string) {
	for i, a := range s.Aircraft {
		if a.ID == id {
			s.Aircraft = append(s.Aircraft[:i], s.Aircraft[i+1:]...)
			return
		}
	}
}

// RemoveShip removes the ship with the given id.
func (s *Scenario) RemoveShip(id string) {
	for i, sh := range s.Ships {
		if sh.ID == id {
			s.Ships = append(s.Ships[:i], s.Ships[i+1:]...)
			return
		}
	}
}

// RemoveFacility removes the facility with the given id.
func (s *Scenario) RemoveFacility(id string) {
	for i, f := range s.Facilities {
		if f.ID == id {
			s.Facilities = append(s.Facilities[:i], s.Facilities[i+1:]...)
			return
		}
	}
}

// RemoveAirbase removes the airbase with the given id.
func (s *Scenario) RemoveAirbase(id string) {
	for i, b := range s.Airbases {
		if b.ID == id {
			s.Airbases = append(s.Airbases[:i], s.Airbases[i+1:]...)
			return
		}
	}
}

// RemoveWeapon removes the launched weapon with the given id.
func (s *Scenario) RemoveWeapon(id string) {
	for i, w := range s.Weapons {
		if w.ID == id {
			s.Weapons = append(s.Weapons[:i], s.Weapons[i+1:]...)
			return
		}
	}
}

// RemoveReferencePoint removes the reference point with the given id.
func (s *Scenario) RemoveReferencePoint(id string) {
	for i, rp := range s.ReferencePoints {
		if rp.ID == id {
			s.ReferencePoints = append(s.ReferencePoints[:i], s.ReferencePoints[i+1:]...)
			return
		}
	}
}

// RemoveMission removes the mission with the given id.
func (s *Scenario) RemoveMission(id string) {
	for i, m := range s.Missions {
		if m.ID == id {
			s.Missions = append(s.Missions[:i], s.Missions[i+1:]...)
			return
		}
	}
}

// RemoveTarget removes whichever live entity currently holds the given id.
func (s *Scenario) RemoveTarget(id string) {
	switch s.GetTarget(id).(type) {
	case *Aircraft:
		s.RemoveAircraft(id)
	case *Ship:
		s.RemoveShip(id)
	case *Facility:
		s.RemoveFacility(id)
	case *Airbase:
		s.RemoveAirbase(id)
	case *Weapon:
		s.RemoveWeapon(id)
	}
}

// GetAircraftHomebase returns the airbase recorded as the aircraft's home
// base, or nil when unset or unresolvable.
func (s *Scenario) GetAircraftHomebase(aircraftID string) *Airbase {
	a := s.GetAircraft(aircraftID)
	if a == nil || a.HomeBaseID == "" {
		return nil
	}
	return s.GetAirbase(a.HomeBaseID)
}

// GetClosestBaseToAircraft returns the friendly airbase nearest to the
// aircraft by great-circle distance, or nil when the side has no bases.
func (s *Scenario) GetClosestBaseToAircraft(aircraftID string) *Airbase {
	a := s.GetAircraft(aircraftID)
	if a == nil {
		return nil
	}
	var closest *Airbase
	var closestDistance float64
	for _, b := range s.Airbases {
		if b.SideName != a.SideName {
			continue
		}
		d := geo.Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
		if closest == nil || d < closestDistance {
			closest = b
			closestDistance = d
		}
	}
	return closest
}

// PatrolMissions returns every patrol mission in the scenario.
func (s *Scenario) PatrolMissions() []*Mission {
	var out []*Mission
	for _, m := range s.Missions {
		if m.Kind == MissionPatrol {
			out = append(out, m)
		}
	}
	return out
}

// StrikeMissions returns every strike mission in the scenario.
func (s *Scenario) StrikeMissions() []*Mission {
	var out []*Mission
	for _, m := range s.Missions {
		if m.Kind == MissionStrike {
			out = append(out, m)
		}
	}
	return out
}
