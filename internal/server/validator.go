package server

import (
	"encoding/json"
	"fmt"

	"github.com/urbanphys/comfortsim/internal/materials"
)

// SimulateRequest is the POST /simulations payload. Materials may be given
// as a catalog name ("ASPHALT") or as an inline material object.
type SimulateRequest struct {
	EPWFile        string          `json:"epw_file"`
	GroundMaterial json.RawMessage `json:"ground_material"`
	ShadeMaterial  json.RawMessage `json:"shade_material"`
}

// AnnualResultsRequest is the POST /annual-results payload.
type AnnualResultsRequest struct {
	IlluminanceFile string `json:"illuminance_file"`
	SunUpHoursFile  string `json:"sun_up_hours_file"`
}

// RequestValidator handles input validation
type RequestValidator struct{}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidateSimulate checks that every field of the simulate payload is present.
func (v *RequestValidator) ValidateSimulate(req SimulateRequest) error {
	if req.EPWFile == "" {
		return fmt.Errorf("epw_file is required")
	}
	if len(req.GroundMaterial) == 0 {
		return fmt.Errorf("ground_material is required")
	}
	if len(req.ShadeMaterial) == 0 {
		return fmt.Errorf("shade_material is required")
	}
	return nil
}

// ValidateAnnual checks that both file paths of the annual-results payload
// are present.
func (v *RequestValidator) ValidateAnnual(req AnnualResultsRequest) error {
	if req.IlluminanceFile == "" {
		return fmt.Errorf("illuminance_file is required")
	}
	if req.SunUpHoursFile == "" {
		return fmt.Errorf("sun_up_hours_file is required")
	}
	return nil
}

// resolveMaterial turns a material reference into a concrete material: a
// JSON string is looked up in the catalog, anything else is decoded as an
// inline material object.
func resolveMaterial(raw json.RawMessage) (materials.Material, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, fmt.Errorf("invalid material reference: %w", err)
		}
		return materials.FromString(name)
	}
	return materials.Decode(raw)
}
