package sim

import (
	"math/rand"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/seaward-sim/seaward/internal/geo"
)

// MissionKind discriminates the mission variants.
type MissionKind string

const (
	// MissionPatrol keeps assigned units inside a polygonal area.
	MissionPatrol MissionKind = "patrol"
	// MissionStrike routes assigned attackers against a target list.
	MissionStrike MissionKind = "strike"
)

// maxWaypointAttempts bounds rejection sampling of patrol waypoints.
const maxWaypointAttempts = 1000

// Mission is a tagged variant over patrol and strike missions. Patrol
// missions own an assigned area of at least three reference points plus
// derived polygon geometry; strike missions own an ordered target list whose
// first element is the active target.
type Mission struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	SideID          string      `json:"sideId"`
	Kind            MissionKind `json:"kind"`
	AssignedUnitIDs []string    `json:"assignedUnitIds"`
	Active          bool        `json:"active"`

	// Patrol fields.
	AssignedArea []*ReferencePoint `json:"assignedArea,omitempty"`

	// Strike fields.
	AssignedTargetIDs []string `json:"assignedTargetIds,omitempty"`

	// Derived patrol geometry, kept in EPSG:3857 so containment and
	// envelope sampling are planar. Rebuilt by UpdatePatrolAreaGeometry.
	area                   geom.Polygon
	areaValid              bool
	minX, minY, maxX, maxY float64
}

// NewPatrolMission builds an active patrol mission and derives its area
// geometry. Areas with fewer than three points produce an inert mission.
func NewPatrolMission(id, name, sideID string, unitIDs []string, area []*ReferencePoint) *Mission {
	m := &Mission{
		ID:              id,
		Name:            name,
		SideID:          sideID,
		Kind:            MissionPatrol,
		AssignedUnitIDs: unitIDs,
		AssignedArea:    area,
		Active:          true,
	}
	m.UpdatePatrolAreaGeometry()
	return m
}

// NewStrikeMission builds an active strike mission.
func NewStrikeMission(id, name, sideID string, unitIDs, targetIDs []string) *Mission {
	return &Mission{
		ID:                id,
		Name:              name,
		SideID:            sideID,
		Kind:              MissionStrike,
		AssignedUnitIDs:   unitIDs,
		AssignedTargetIDs: targetIDs,
		Active:            true,
	}
}

// UpdatePatrolAreaGeometry re-derives the projected polygon and its envelope
// from AssignedArea. Must be called after every area edit; areas with fewer
// than three points invalidate the geometry.
func (m *Mission) UpdatePatrolAreaGeometry() {
	m.areaValid = false
	if m.Kind != MissionPatrol || len(m.AssignedArea) < 3 {
		return
	}

	// Closed ring in 3857: every vertex projected, first repeated at the end.
	flat := make([]float64, 0, (len(m.AssignedArea)+1)*2)
	for i, rp := range m.AssignedArea {
		x, y := geo.To3857(rp.Latitude, rp.Longitude)
		flat = append(flat, x, y)
		if i == 0 {
			m.minX, m.minY, m.maxX, m.maxY = x, y, x, y
			continue
		}
		if x < m.minX {
			m.minX = x
		}
		if x > m.maxX {
			m.maxX = x
		}
		if y < m.minY {
			m.minY = y
		}
		if y > m.maxY {
			m.maxY = y
		}
	}
	flat = append(flat, flat[0], flat[1])

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return
	}
	area, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return
	}
	m.area = area
	m.areaValid = true
}

// ContainsWaypoint reports whether the waypoint lies inside the patrol area.
// Inert missions (no valid geometry) contain nothing.
func (m *Mission) ContainsWaypoint(wp Waypoint) bool {
	if !m.areaValid {
		return false
	}
	x, y := geo.To3857(wp.Lat(), wp.Lon())
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
	if err != nil {
		return false
	}
	return geom.Intersects(m.area.AsGeometry(), pt.AsGeometry())
}

// RandomWaypoint draws a uniform random waypoint strictly inside the patrol
// area by rejection sampling the area envelope. Returns false when the
// mission has no valid geometry or sampling fails to land inside the area.
func (m *Mission) RandomWaypoint(rng *rand.Rand) (Waypoint, bool) {
	if !m.areaValid {
		return Waypoint{}, false
	}
	for i := 0; i < maxWaypointAttempts; i++ {
		x := m.minX + rng.Float64()*(m.maxX-m.minX)
		y := m.minY + rng.Float64()*(m.maxY-m.minY)
		pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
		if err != nil {
			continue
		}
		if geom.Intersects(m.area.AsGeometry(), pt.AsGeometry()) {
			lat, lon := geo.To4326(x, y)
			return Waypoint{lat, lon}, true
		}
	}
	return Waypoint{}, false
}

// HasValidArea reports whether patrol geometry has been derived.
func (m *Mission) HasValidArea() bool { return m.areaValid }
