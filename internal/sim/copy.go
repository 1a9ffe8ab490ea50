package sim

// Copy returns a structural clone of the scenario with no shared containers.
// The recorder retains historical frames while the live world keeps
// mutating, so every slice and every entity is duplicated; derived mission
// geometry is rebuilt on the clone.
func (s *Scenario) Copy() *Scenario {
	out := &Scenario{
		ID:              s.ID,
		Name:            s.Name,
		StartTime:       s.StartTime,
		CurrentTime:     s.CurrentTime,
		Duration:        s.Duration,
		TimeCompression: s.TimeCompression,
	}

	for _, side := range s.Sides {
		c := *side
		out.Sides = append(out.Sides, &c)
	}
	for _, a := range s.Aircraft {
		out.Aircraft = append(out.Aircraft, copyAircraft(a))
	}
	for _, sh := range s.Ships {
		out.Ships = append(out.Ships, copyShip(sh))
	}
	for _, b := range s.Airbases {
		out.Airbases = append(out.Airbases, copyAirbase(b))
	}
	for _, f := range s.Facilities {
		out.Facilities = append(out.Facilities, copyFacility(f))
	}
	for _, w := range s.Weapons {
		out.Weapons = append(out.Weapons, copyWeapon(w))
	}
	for _, rp := range s.ReferencePoints {
		c := *rp
		out.ReferencePoints = append(out.ReferencePoints, &c)
	}
	for _, m := range s.Missions {
		out.Missions = append(out.Missions, copyMission(m))
	}

	return out
}

func copyRoute(route []Waypoint) []Waypoint {
	if route == nil {
		return nil
	}
	out := make([]Waypoint, len(route))
	copy(out, route)
	return out
}

func copyWeapon(w *Weapon) *Weapon {
	c := *w
	c.Route = copyRoute(w.Route)
	return &c
}

func copyWeapons(weapons []*Weapon) []*Weapon {
	if weapons == nil {
		return nil
	}
	out := make([]*Weapon, 0, len(weapons))
	for _, w := range weapons {
		out = append(out, copyWeapon(w))
	}
	return out
}

func copyAircraft(a *Aircraft) *Aircraft {
	c := *a
	c.Route = copyRoute(a.Route)
	c.Weapons = copyWeapons(a.Weapons)
	return &c
}

func copyAircraftList(aircraft []*Aircraft) []*Aircraft {
	if aircraft == nil {
		return nil
	}
	out := make([]*Aircraft, 0, len(aircraft))
	for _, a := range aircraft {
		out = append(out, copyAircraft(a))
	}
	return out
}

func copyShip(s *Ship) *Ship {
	c := *s
	c.Route = copyRoute(s.Route)
	c.Weapons = copyWeapons(s.Weapons)
	c.Aircraft = copyAircraftList(s.Aircraft)
	return &c
}

func copyAirbase(b *Airbase) *Airbase {
	c := *b
	c.Aircraft = copyAircraftList(b.Aircraft)
	return &c
}

func copyFacility(f *Facility) *Facility {
	c := *f
	c.Weapons = copyWeapons(f.Weapons)
	return &c
}

func copyMission(m *Mission) *Mission {
	c := &Mission{
		ID:     m.ID,
		Name:   m.Name,
		SideID: m.SideID,
		Kind:   m.Kind,
		Active: m.Active,
	}
	if m.AssignedUnitIDs != nil {
		c.AssignedUnitIDs = make([]string, len(m.AssignedUnitIDs))
		copy(c.AssignedUnitIDs, m.AssignedUnitIDs)
	}
	if m.AssignedTargetIDs != nil {
		c.AssignedTargetIDs = make([]string, len(m.AssignedTargetIDs))
		copy(c.AssignedTargetIDs, m.AssignedTargetIDs)
	}
	for _, rp := range m.AssignedArea {
		p := *rp
		c.AssignedArea = append(c.AssignedArea, &p)
	}
	c.UpdatePatrolAreaGeometry()
	return c
}
