package sim

import (
	"encoding/json"
	"fmt"
)

// MapView carries camera state round-tripped for map frontends. The tick
// engine never reads it.
type MapView struct {
	DefaultCenter       [2]float64 `json:"defaultCenter"`
	CurrentCameraCenter [2]float64 `json:"currentCameraCenter"`
	DefaultZoom         float64    `json:"defaultZoom"`
	CurrentCameraZoom   float64    `json:"currentCameraZoom"`
}

// Export is the on-disk scenario document.
type Export struct {
	CurrentScenario *Scenario `json:"currentScenario"`
	CurrentSideName string    `json:"currentSideName"`
	SelectedUnitID  string    `json:"selectedUnitId"`
	MapView         MapView   `json:"mapView"`
}

// LoadScenario parses a scenario document. Mission variants are
// discriminated by the presence of an assigned area, and patrol geometry is
// derived on load.
func LoadScenario(data []byte) (*Export, error) {
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if export.CurrentScenario == nil {
		return nil, fmt.Errorf("scenario document missing currentScenario")
	}
	return &export, nil
}

// ExportScenario serializes a scenario document.
func ExportScenario(scenario *Scenario, sideName string, view MapView) ([]byte, error) {
	export := Export{
		CurrentScenario: scenario,
		CurrentSideName: sideName,
		MapView:         view,
	}
	data, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("marshalling scenario: %w", err)
	}
	return data, nil
}

// missionJSON mirrors Mission without methods so UnmarshalJSON can decode
// into it without recursing.
type missionJSON struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	SideID            string            `json:"sideId"`
	Kind              MissionKind       `json:"kind"`
	AssignedUnitIDs   []string          `json:"assignedUnitIds"`
	Active            bool              `json:"active"`
	AssignedArea      []*ReferencePoint `json:"assignedArea,omitempty"`
	AssignedTargetIDs []string          `json:"assignedTargetIds,omitempty"`
}

// UnmarshalJSON decodes a mission, inferring the variant from the assigned
// area when no explicit kind is present (scenario files written by older
// tooling omit it), and re-derives patrol geometry.
func (m *Mission) UnmarshalJSON(data []byte) error {
	var raw missionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.ID = raw.ID
	m.Name = raw.Name
	m.SideID = raw.SideID
	m.Kind = raw.Kind
	m.AssignedUnitIDs = raw.AssignedUnitIDs
	m.Active = raw.Active
	m.AssignedArea = raw.AssignedArea
	m.AssignedTargetIDs = raw.AssignedTargetIDs

	if m.Kind == "" {
		if len(raw.AssignedArea) > 0 {
			m.Kind = MissionPatrol
		} else {
			m.Kind = MissionStrike
		}
	}
	m.UpdatePatrolAreaGeometry()
	return nil
}
