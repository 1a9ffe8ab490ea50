// Package sim defines the world state of the simulation: sides, units,
// weapons, reference points, and missions, all owned by a single Scenario.
// Entities reference each other by id only; resolving an id always re-queries
// the Scenario.
package sim

// Waypoint is a [latitude, longitude] pair. Routes are ordered waypoint
// sequences with the front element as the next movement target.
type Waypoint [2]float64

// Lat returns the waypoint latitude.
func (w Waypoint) Lat() float64 { return w[0] }

// Lon returns the waypoint longitude.
func (w Waypoint) Lon() float64 { return w[1] }

// Side is a faction in the scenario. The tick engine reads sides but never
// mutates them.
type Side struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TotalScore float64 `json:"totalScore"`
	SideColor  string  `json:"sideColor"`
}

// ReferencePoint is a named geo-point owned by a side, used standalone or as
// a patrol-area polygon vertex.
type ReferencePoint struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SideName  string  `json:"sideName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	SideColor string  `json:"sideColor"`
}

// Unit holds the identity, kinematic, and fuel state shared by every mobile
// entity (aircraft, ships, launched weapons).
type Unit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SideName    string     `json:"sideName"`
	ClassName   string     `json:"className"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Altitude    float64    `json:"altitude"`
	Heading     float64    `json:"heading"`
	Speed       float64    `json:"speed"`
	CurrentFuel float64    `json:"currentFuel"`
	MaxFuel     float64    `json:"maxFuel"`
	FuelRate    float64    `json:"fuelRate"`
	SideColor   string     `json:"sideColor"`
	Route       []Waypoint `json:"route"`
}

// EntityID implements Entity.
func (u *Unit) EntityID() string { return u.ID }

// Side implements Entity.
func (u *Unit) Side() string { return u.SideName }

// Position implements Entity.
func (u *Unit) Position() (lat, lon float64) { return u.Latitude, u.Longitude }

// Weapon is either a magazine of rounds carried by a unit (CurrentQuantity
// tracks remaining rounds) or, once launched, a live world object pursuing
// its TargetID.
type Weapon struct {
	Unit
	Range           float64 `json:"range"`
	TargetID        string  `json:"targetId"`
	Lethality       float64 `json:"lethality"`
	MaxQuantity     int     `json:"maxQuantity"`
	CurrentQuantity int     `json:"currentQuantity"`
}

// Aircraft is a mobile, armed unit that may be assigned to missions, locked
// onto a target, or recalled to a base.
type Aircraft struct {
	Unit
	Range      float64   `json:"range"`
	Weapons    []*Weapon `json:"weapons"`
	HomeBaseID string    `json:"homeBaseId"`
	RTB        bool      `json:"rtb"`
	TargetID   string    `json:"targetId"`
}

// BestWeapon returns the onboard weapon with the highest range, or nil when
// the magazine is empty.
func (a *Aircraft) BestWeapon() *Weapon { return weaponWithMaxRange(a.Weapons) }

// ExpendRound decrements a round from the given magazine, removing the
// magazine from the aircraft once depleted.
func (a *Aircraft) ExpendRound(w *Weapon) { a.Weapons = expendRound(a.Weapons, w) }

// Ship is a mobile, armed unit that may also carry an aircraft roster.
type Ship struct {
	Unit
	Range    float64     `json:"range"`
	Weapons  []*Weapon   `json:"weapons"`
	Aircraft []*Aircraft `json:"aircraft"`
}

// BestWeapon returns the onboard weapon with the highest range, or nil when
// the magazine is empty.
func (s *Ship) BestWeapon() *Weapon { return weaponWithMaxRange(s.Weapons) }

// ExpendRound decrements a round from the given magazine, removing the
// magazine from the ship once depleted.
func (s *Ship) ExpendRound(w *Weapon) { s.Weapons = expendRound(s.Weapons, w) }

// Facility is a stationary armed installation. Facilities carry no fuel and
// never move.
type Facility struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SideName  string    `json:"sideName"`
	ClassName string    `json:"className"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  float64   `json:"altitude"`
	Range     float64   `json:"range"`
	SideColor string    `json:"sideColor"`
	Weapons   []*Weapon `json:"weapons"`
}

// EntityID implements Entity.
func (f *Facility) EntityID() string { return f.ID }

// Side implements Entity.
func (f *Facility) Side() string { return f.SideName }

// Position implements Entity.
func (f *Facility) Position() (lat, lon float64) { return f.Latitude, f.Longitude }

// BestWeapon returns the onboard weapon with the highest range, or nil when
// the magazine is empty.
func (f *Facility) BestWeapon() *Weapon { return weaponWithMaxRange(f.Weapons) }

// ExpendRound decrements a round from the given magazine, removing the
// magazine from the facility once depleted.
func (f *Facility) ExpendRound(w *Weapon) { f.Weapons = expendRound(f.Weapons, w) }

// Airbase is a stationary installation hosting an aircraft roster.
type Airbase struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	SideName  string      `json:"sideName"`
	ClassName string      `json:"className"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Altitude  float64     `json:"altitude"`
	SideColor string      `json:"sideColor"`
	Aircraft  []*Aircraft `json:"aircraft"`
}

// EntityID implements Entity.
func (b *Airbase) EntityID() string { return b.ID }

// Side implements Entity.
func (b *Airbase) Side() string { return b.SideName }

// Position implements Entity.
func (b *Airbase) Position() (lat, lon float64) { return b.Latitude, b.Longitude }

// Entity is any world object resolvable as an engagement target.
type Entity interface {
	EntityID() string
	Side() string
	Position() (lat, lon float64)
}

// Shooter is implemented by units that carry launchable weapon magazines.
type Shooter interface {
	Entity
	BestWeapon() *Weapon
	ExpendRound(*Weapon)
}

func weaponWithMaxRange(weapons []*Weapon) *Weapon {
	var best *Weapon
	for _, w := range weapons {
		if w.CurrentQuantity < 1 {
			continue
		}
		if best == nil || w.Range > best.Range {
			best = w
		}
	}
	return best
}

func expendRound(weapons []*Weapon, spent *Weapon) []*Weapon {
	spent.CurrentQuantity--
	if spent.CurrentQuantity >= 1 {
		return weapons
	}
	out := weapons[:0]
	for _, w := range weapons {
		if w != spent {
			out = append(out, w)
		}
	}
	return out
}
