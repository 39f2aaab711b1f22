package materials

import (
	"fmt"
	"sort"
)

// Catalog holds the named ground and shade material presets.
//
// Coefficients follow the published values of the external toolkit's
// material library so that a simulation configured here matches one
// configured directly against the toolkit.
var Catalog = map[string]Material{
	"ASPHALT": OpaqueMaterial{
		Name:               "ASPHALT",
		Roughness:          MediumRough,
		Thickness:          0.2,
		Conductivity:       0.75,
		Density:            2360.0,
		SpecificHeat:       920.0,
		ThermalAbsorptance: 0.93,
		SolarAbsorptance:   0.87,
		VisibleAbsorptance: 0.87,
	},
	"CONCRETE_HEAVYWEIGHT": OpaqueMaterial{
		Name:               "CONCRETE_HEAVYWEIGHT",
		Roughness:          MediumRough,
		Thickness:          0.2,
		Conductivity:       1.95,
		Density:            2240.0,
		SpecificHeat:       900.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.8,
		VisibleAbsorptance: 0.8,
	},
	"CONCRETE_LIGHTWEIGHT": OpaqueMaterial{
		Name:               "CONCRETE_LIGHTWEIGHT",
		Roughness:          MediumRough,
		Thickness:          0.1,
		Conductivity:       0.53,
		Density:            1280.0,
		SpecificHeat:       840.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.8,
		VisibleAbsorptance: 0.8,
	},
	"DUST_DRY": OpaqueMaterial{
		Name:               "DUST_DRY",
		Roughness:          Rough,
		Thickness:          0.2,
		Conductivity:       0.5,
		Density:            1600.0,
		SpecificHeat:       1026.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.7,
		VisibleAbsorptance: 0.7,
	},
	"METAL_PAINTED": OpaqueMaterial{
		Name:               "METAL_PAINTED",
		Roughness:          Smooth,
		Thickness:          0.0015,
		Conductivity:       5.0,
		Density:            7690.0,
		SpecificHeat:       410.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.5,
		VisibleAbsorptance: 0.5,
	},
	"METAL_REFLECTIVE": OpaqueMaterial{
		Name:               "METAL_REFLECTIVE",
		Roughness:          MediumSmooth,
		Thickness:          0.0015,
		Conductivity:       5.0,
		Density:            7680.0,
		SpecificHeat:       418.0,
		ThermalAbsorptance: 0.75,
		SolarAbsorptance:   0.45,
		VisibleAbsorptance: 0.6,
	},
	"MUD": OpaqueMaterial{
		Name:               "MUD",
		Roughness:          MediumRough,
		Thickness:          0.2,
		Conductivity:       1.4,
		Density:            1840.0,
		SpecificHeat:       1480.0,
		ThermalAbsorptance: 0.95,
		SolarAbsorptance:   0.8,
		VisibleAbsorptance: 0.8,
	},
	"ROCK": OpaqueMaterial{
		Name:               "ROCK",
		Roughness:          MediumRough,
		Thickness:          0.2,
		Conductivity:       3.0,
		Density:            2700.0,
		SpecificHeat:       790.0,
		ThermalAbsorptance: 0.96,
		SolarAbsorptance:   0.55,
		VisibleAbsorptance: 0.55,
	},
	"SAND_DRY": OpaqueMaterial{
		Name:               "SAND_DRY",
		Roughness:          Rough,
		Thickness:          0.2,
		Conductivity:       0.33,
		Density:            1555.0,
		SpecificHeat:       800.0,
		ThermalAbsorptance: 0.85,
		SolarAbsorptance:   0.65,
		VisibleAbsorptance: 0.65,
	},
	"SOIL_DAMP": OpaqueMaterial{
		Name:               "SOIL_DAMP",
		Roughness:          Rough,
		Thickness:          0.2,
		Conductivity:       1.0,
		Density:            1250.0,
		SpecificHeat:       1252.0,
		ThermalAbsorptance: 0.92,
		SolarAbsorptance:   0.75,
		VisibleAbsorptance: 0.75,
	},
	"SOFTWOOD": OpaqueMaterial{
		Name:               "SOFTWOOD",
		Roughness:          MediumSmooth,
		Thickness:          0.0254,
		Conductivity:       0.129,
		Density:            496.0,
		SpecificHeat:       1630.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.65,
		VisibleAbsorptance: 0.65,
	},
	"HARDWOOD": OpaqueMaterial{
		Name:               "HARDWOOD",
		Roughness:          MediumSmooth,
		Thickness:          0.0254,
		Conductivity:       0.167,
		Density:            680.0,
		SpecificHeat:       1630.0,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.7,
		VisibleAbsorptance: 0.7,
	},
	"FABRIC": OpaqueMaterial{
		Name:               "FABRIC",
		Roughness:          Smooth,
		Thickness:          0.002,
		Conductivity:       0.06,
		Density:            500.0,
		SpecificHeat:       1800.0,
		ThermalAbsorptance: 0.89,
		SolarAbsorptance:   0.5,
		VisibleAbsorptance: 0.5,
	},
	"GRASS_DAMP": VegetationMaterial{
		Name:                   "GRASS_DAMP",
		Roughness:              MediumRough,
		Thickness:              0.1,
		Conductivity:           0.35,
		Density:                1100,
		SpecificHeat:           1252,
		SoilThermalAbsorptance: 0.92,
		SoilSolarAbsorptance:   0.7,
		SoilVisibleAbsorptance: 0.7,
		PlantHeight:            0.2,
		LeafAreaIndex:          1.71,
		LeafReflectivity:       0.25,
		LeafEmissivity:         0.92,
		MinStomatalResist:      160,
	},
	"GRASS_DRY": VegetationMaterial{
		Name:                   "GRASS_DRY",
		Roughness:              Rough,
		Thickness:              0.1,
		Conductivity:           0.3,
		Density:                1100,
		SpecificHeat:           1252,
		SoilThermalAbsorptance: 0.89,
		SoilSolarAbsorptance:   0.75,
		SoilVisibleAbsorptance: 0.75,
		PlantHeight:            0.2,
		LeafAreaIndex:          1.71,
		LeafReflectivity:       0.19,
		LeafEmissivity:         0.95,
		MinStomatalResist:      180,
	},
	"SHRUBS": VegetationMaterial{
		Name:                   "SHRUBS",
		Roughness:              Rough,
		Thickness:              0.1,
		Conductivity:           0.35,
		Density:                1260,
		SpecificHeat:           1100,
		SoilThermalAbsorptance: 0.9,
		SoilSolarAbsorptance:   0.7,
		SoilVisibleAbsorptance: 0.7,
		PlantHeight:            0.2,
		LeafAreaIndex:          2.08,
		LeafReflectivity:       0.21,
		LeafEmissivity:         0.95,
		MinStomatalResist:      180,
	},
}

// Names returns the catalog's material names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromString returns the catalog material with the given name.
func FromString(name string) (Material, error) {
	m, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown material: %s. Choose from one of %v", name, Names())
	}
	return m, nil
}
