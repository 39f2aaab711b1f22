package server

import (
	"encoding/json"
	"testing"
)

func TestRequestValidator_ValidateSimulate(t *testing.T) {
	validator := NewRequestValidator()

	tests := []struct {
		name       string
		req        SimulateRequest
		wantErr    bool
		errMessage string
	}{
		{
			name: "valid request",
			req: SimulateRequest{
				EPWFile:        "/weather/test.epw",
				GroundMaterial: json.RawMessage(`"ASPHALT"`),
				ShadeMaterial:  json.RawMessage(`"FABRIC"`),
			},
			wantErr: false,
		},
		{
			name: "missing epw file",
			req: SimulateRequest{
				GroundMaterial: json.RawMessage(`"ASPHALT"`),
				ShadeMaterial:  json.RawMessage(`"FABRIC"`),
			},
			wantErr:    true,
			errMessage: "epw_file is required",
		},
		{
			name: "missing ground material",
			req: SimulateRequest{
				EPWFile:       "/weather/test.epw",
				ShadeMaterial: json.RawMessage(`"FABRIC"`),
			},
			wantErr:    true,
			errMessage: "ground_material is required",
		},
		{
			name: "missing shade material",
			req: SimulateRequest{
				EPWFile:        "/weather/test.epw",
				GroundMaterial: json.RawMessage(`"ASPHALT"`),
			},
			wantErr:    true,
			errMessage: "shade_material is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSimulate(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSimulate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMessage {
				t.Errorf("ValidateSimulate() error message = %v, want %v", err.Error(), tt.errMessage)
			}
		})
	}
}

func TestRequestValidator_ValidateAnnual(t *testing.T) {
	validator := NewRequestValidator()

	tests := []struct {
		name       string
		req        AnnualResultsRequest
		wantErr    bool
		errMessage string
	}{
		{
			name: "valid request",
			req: AnnualResultsRequest{
				IlluminanceFile: "/results/UNSHADED.ill",
				SunUpHoursFile:  "/results/sun-up-hours.txt",
			},
			wantErr: false,
		},
		{
			name:       "missing illuminance file",
			req:        AnnualResultsRequest{SunUpHoursFile: "/results/sun-up-hours.txt"},
			wantErr:    true,
			errMessage: "illuminance_file is required",
		},
		{
			name:       "missing sun-up-hours file",
			req:        AnnualResultsRequest{IlluminanceFile: "/results/UNSHADED.ill"},
			wantErr:    true,
			errMessage: "sun_up_hours_file is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateAnnual(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnnual() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMessage {
				t.Errorf("ValidateAnnual() error message = %v, want %v", err.Error(), tt.errMessage)
			}
		})
	}
}

func TestResolveMaterial(t *testing.T) {
	m, err := resolveMaterial(json.RawMessage(`"ROCK"`))
	if err != nil {
		t.Fatalf("resolveMaterial() error = %v", err)
	}
	if m.Identifier() != "ROCK" {
		t.Errorf("resolveMaterial() = %v, want ROCK", m.Identifier())
	}

	inline := json.RawMessage(`{"type":"OpaqueMaterial","name":"CUSTOM","roughness":"Rough","thickness":0.1,"conductivity":1.0,"density":1000,"specific_heat":900,"thermal_absorptance":0.9,"solar_absorptance":0.7,"visible_absorptance":0.7}`)
	m, err = resolveMaterial(inline)
	if err != nil {
		t.Fatalf("resolveMaterial() inline error = %v", err)
	}
	if m.Identifier() != "CUSTOM" {
		t.Errorf("resolveMaterial() inline = %v, want CUSTOM", m.Identifier())
	}

	if _, err := resolveMaterial(json.RawMessage(`"NOT_A_MATERIAL"`)); err == nil {
		t.Error("resolveMaterial() expected error for unknown name")
	}
}
