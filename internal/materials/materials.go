// Package materials defines the opaque and vegetation energy materials used
// to describe ground and shade surfaces in an outdoor comfort simulation.
//
// Materials are plain value objects: constructed once, compared by value,
// and carried across the process boundary in their JSON form. The JSON
// encoding is discriminated by a "type" field so either concrete kind can be
// recovered behind the Material interface.
package materials

import (
	"encoding/json"
	"fmt"
)

// Roughness describes the relative surface roughness of a material,
// from roughest to smoothest.
type Roughness string

const (
	VeryRough    Roughness = "VeryRough"
	Rough        Roughness = "Rough"
	MediumRough  Roughness = "MediumRough"
	MediumSmooth Roughness = "MediumSmooth"
	Smooth       Roughness = "Smooth"
	VerySmooth   Roughness = "VerySmooth"
)

var validRoughness = map[Roughness]bool{
	VeryRough:    true,
	Rough:        true,
	MediumRough:  true,
	MediumSmooth: true,
	Smooth:       true,
	VerySmooth:   true,
}

// Material is either an OpaqueMaterial or a VegetationMaterial.
type Material interface {
	// Identifier returns the material's name.
	Identifier() string

	// Validate checks every coefficient against its physical range.
	Validate() error
}

// OpaqueMaterial is a solid construction material described by its thermal
// and radiative coefficients.
//
// Units and valid ranges:
//   - Thickness: meters, > 0
//   - Conductivity: W/m-K, > 0
//   - Density: kg/m3, > 0
//   - SpecificHeat: J/kg-K, >= 100
//   - ThermalAbsorptance: fraction, (0, 1]
//   - SolarAbsorptance, VisibleAbsorptance: fraction, [0, 1]
type OpaqueMaterial struct {
	Name               string    `json:"name"`
	Roughness          Roughness `json:"roughness"`
	Thickness          float64   `json:"thickness"`
	Conductivity       float64   `json:"conductivity"`
	Density            float64   `json:"density"`
	SpecificHeat       float64   `json:"specific_heat"`
	ThermalAbsorptance float64   `json:"thermal_absorptance"`
	SolarAbsorptance   float64   `json:"solar_absorptance"`
	VisibleAbsorptance float64   `json:"visible_absorptance"`
}

// VegetationMaterial is a planted surface: the opaque coefficients describe
// the soil layer, with the plant canopy layered on top.
//
// Canopy ranges:
//   - PlantHeight: meters, [0.005, 1.0]
//   - LeafAreaIndex: dimensionless, [0.001, 5.0]
//   - LeafReflectivity: fraction, [0.005, 0.5]
//   - LeafEmissivity: fraction, [0.8, 1.0]
//   - MinStomatalResist: s/m, [50, 300]
type VegetationMaterial struct {
	Name                   string    `json:"name"`
	Roughness              Roughness `json:"roughness"`
	Thickness              float64   `json:"thickness"`
	Conductivity           float64   `json:"conductivity"`
	Density                float64   `json:"density"`
	SpecificHeat           float64   `json:"specific_heat"`
	SoilThermalAbsorptance float64   `json:"soil_thermal_absorptance"`
	SoilSolarAbsorptance   float64   `json:"soil_solar_absorptance"`
	SoilVisibleAbsorptance float64   `json:"soil_visible_absorptance"`
	PlantHeight            float64   `json:"plant_height"`
	LeafAreaIndex          float64   `json:"leaf_area_index"`
	LeafReflectivity       float64   `json:"leaf_reflectivity"`
	LeafEmissivity         float64   `json:"leaf_emissivity"`
	MinStomatalResist      float64   `json:"min_stomatal_resist"`
}

// NewVegetationMaterial returns a vegetation material with the default
// coefficients of a generic planted roof/ground layer.
func NewVegetationMaterial(name string) VegetationMaterial {
	return VegetationMaterial{
		Name:                   name,
		Roughness:              MediumRough,
		Thickness:              0.1,
		Conductivity:           0.35,
		Density:                1100,
		SpecificHeat:           1200,
		SoilThermalAbsorptance: 0.9,
		SoilSolarAbsorptance:   0.7,
		SoilVisibleAbsorptance: 0.7,
		PlantHeight:            0.2,
		LeafAreaIndex:          1.0,
		LeafReflectivity:       0.22,
		LeafEmissivity:         0.95,
		MinStomatalResist:      180,
	}
}

func (m OpaqueMaterial) Identifier() string { return m.Name }

func (m OpaqueMaterial) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("material name is required")
	}
	if !validRoughness[m.Roughness] {
		return fmt.Errorf("invalid roughness: %s", m.Roughness)
	}
	if m.Thickness <= 0 {
		return fmt.Errorf("thickness must be positive, got %v", m.Thickness)
	}
	if m.Conductivity <= 0 {
		return fmt.Errorf("conductivity must be positive, got %v", m.Conductivity)
	}
	if m.Density <= 0 {
		return fmt.Errorf("density must be positive, got %v", m.Density)
	}
	if m.SpecificHeat < 100 {
		return fmt.Errorf("specific heat must be at least 100 J/kg-K, got %v", m.SpecificHeat)
	}
	if m.ThermalAbsorptance <= 0 || m.ThermalAbsorptance > 1 {
		return fmt.Errorf("thermal absorptance must be in (0, 1], got %v", m.ThermalAbsorptance)
	}
	if m.SolarAbsorptance < 0 || m.SolarAbsorptance > 1 {
		return fmt.Errorf("solar absorptance must be in [0, 1], got %v", m.SolarAbsorptance)
	}
	if m.VisibleAbsorptance < 0 || m.VisibleAbsorptance > 1 {
		return fmt.Errorf("visible absorptance must be in [0, 1], got %v", m.VisibleAbsorptance)
	}
	return nil
}

func (m VegetationMaterial) Identifier() string { return m.Name }

func (m VegetationMaterial) Validate() error {
	soil := OpaqueMaterial{
		Name:               m.Name,
		Roughness:          m.Roughness,
		Thickness:          m.Thickness,
		Conductivity:       m.Conductivity,
		Density:            m.Density,
		SpecificHeat:       m.SpecificHeat,
		ThermalAbsorptance: m.SoilThermalAbsorptance,
		SolarAbsorptance:   m.SoilSolarAbsorptance,
		VisibleAbsorptance: m.SoilVisibleAbsorptance,
	}
	if err := soil.Validate(); err != nil {
		return err
	}
	if m.PlantHeight < 0.005 || m.PlantHeight > 1.0 {
		return fmt.Errorf("plant height must be in [0.005, 1.0] m, got %v", m.PlantHeight)
	}
	if m.LeafAreaIndex < 0.001 || m.LeafAreaIndex > 5.0 {
		return fmt.Errorf("leaf area index must be in [0.001, 5.0], got %v", m.LeafAreaIndex)
	}
	if m.LeafReflectivity < 0.005 || m.LeafReflectivity > 0.5 {
		return fmt.Errorf("leaf reflectivity must be in [0.005, 0.5], got %v", m.LeafReflectivity)
	}
	if m.LeafEmissivity < 0.8 || m.LeafEmissivity > 1.0 {
		return fmt.Errorf("leaf emissivity must be in [0.8, 1.0], got %v", m.LeafEmissivity)
	}
	if m.MinStomatalResist < 50 || m.MinStomatalResist > 300 {
		return fmt.Errorf("minimum stomatal resistance must be in [50, 300] s/m, got %v", m.MinStomatalResist)
	}
	return nil
}

const (
	typeOpaque     = "OpaqueMaterial"
	typeVegetation = "VegetationMaterial"
)

// MarshalJSON adds the "type" discriminator to the encoded material.
func (m OpaqueMaterial) MarshalJSON() ([]byte, error) {
	type alias OpaqueMaterial
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: typeOpaque, alias: alias(m)})
}

// MarshalJSON adds the "type" discriminator to the encoded material.
func (m VegetationMaterial) MarshalJSON() ([]byte, error) {
	type alias VegetationMaterial
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: typeVegetation, alias: alias(m)})
}

// Decode recovers a concrete material from its discriminated JSON form.
func Decode(data []byte) (Material, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode material: %w", err)
	}

	switch probe.Type {
	case typeOpaque:
		var m OpaqueMaterial
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode opaque material: %w", err)
		}
		return m, nil
	case typeVegetation:
		var m VegetationMaterial
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode vegetation material: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown material type: %q", probe.Type)
	}
}
