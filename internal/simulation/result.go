package simulation

import (
	"encoding/json"
	"fmt"

	"github.com/urbanphys/comfortsim/internal/materials"
)

// HoursPerYear is the length of every annual hourly series.
const HoursPerYear = 8760

// Result carries the request identity plus the annual surface temperature
// series produced by the external toolkit. Each series has one value per
// hour of the year.
type Result struct {
	SchemaVersion  int                `json:"schema_version"`
	SimulationID   string             `json:"simulation_id"`
	EPWFile        string             `json:"epw_file"`
	GroundMaterial materials.Material `json:"ground_material"`
	ShadeMaterial  materials.Material `json:"shade_material"`

	ShadedGroundSurfaceTemperature   []float64 `json:"shaded_ground_surface_temperature"`
	UnshadedGroundSurfaceTemperature []float64 `json:"unshaded_ground_surface_temperature"`
	ShadedMeanRadiantTemperature     []float64 `json:"shaded_mean_radiant_temperature"`
	UnshadedMeanRadiantTemperature   []float64 `json:"unshaded_mean_radiant_temperature"`
}

// UnmarshalJSON recovers the concrete material types behind the Material
// interface fields.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		SchemaVersion  int             `json:"schema_version"`
		SimulationID   string          `json:"simulation_id"`
		EPWFile        string          `json:"epw_file"`
		GroundMaterial json.RawMessage `json:"ground_material"`
		ShadeMaterial  json.RawMessage `json:"shade_material"`

		ShadedGroundSurfaceTemperature   []float64 `json:"shaded_ground_surface_temperature"`
		UnshadedGroundSurfaceTemperature []float64 `json:"unshaded_ground_surface_temperature"`
		ShadedMeanRadiantTemperature     []float64 `json:"shaded_mean_radiant_temperature"`
		UnshadedMeanRadiantTemperature   []float64 `json:"unshaded_mean_radiant_temperature"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ground, err := decodeOptionalMaterial(raw.GroundMaterial)
	if err != nil {
		return fmt.Errorf("ground material: %w", err)
	}
	shade, err := decodeOptionalMaterial(raw.ShadeMaterial)
	if err != nil {
		return fmt.Errorf("shade material: %w", err)
	}

	r.SchemaVersion = raw.SchemaVersion
	r.SimulationID = raw.SimulationID
	r.EPWFile = raw.EPWFile
	r.GroundMaterial = ground
	r.ShadeMaterial = shade
	r.ShadedGroundSurfaceTemperature = raw.ShadedGroundSurfaceTemperature
	r.UnshadedGroundSurfaceTemperature = raw.UnshadedGroundSurfaceTemperature
	r.ShadedMeanRadiantTemperature = raw.ShadedMeanRadiantTemperature
	r.UnshadedMeanRadiantTemperature = raw.UnshadedMeanRadiantTemperature
	return nil
}

// decodeOptionalMaterial tolerates results whose echo omits the materials;
// the bridge stamps them from the request after decoding.
func decodeOptionalMaterial(data json.RawMessage) (materials.Material, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return materials.Decode(data)
}

// responseEnvelope is the single line printed by the generated script:
// exactly one of Error or Result is set.
type responseEnvelope struct {
	SchemaVersion int     `json:"schema_version"`
	Error         string  `json:"error,omitempty"`
	Result        *Result `json:"result,omitempty"`
}
