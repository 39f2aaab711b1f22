package simulation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanphys/comfortsim/internal/materials"
)

func testMaterials(t *testing.T) (materials.Material, materials.Material) {
	t.Helper()
	ground, err := materials.FromString("ASPHALT")
	require.NoError(t, err)
	shade, err := materials.FromString("FABRIC")
	require.NoError(t, err)
	return ground, shade
}

func testEPWFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.epw")
	require.NoError(t, os.WriteFile(path, []byte("LOCATION,Test\n"), 0o644))
	return path
}

func TestNewRequestValidation(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	tests := []struct {
		name     string
		epwFile  string
		ground   materials.Material
		shade    materials.Material
		sentinel error
		mention  string
	}{
		{
			name:     "missing epw path",
			epwFile:  "",
			ground:   ground,
			shade:    shade,
			sentinel: ErrMissingEPW,
			mention:  "epwFile",
		},
		{
			name:     "missing ground material",
			epwFile:  epw,
			ground:   nil,
			shade:    shade,
			sentinel: ErrMissingMaterial,
			mention:  "ground material",
		},
		{
			name:     "missing shade material",
			epwFile:  epw,
			ground:   ground,
			shade:    nil,
			sentinel: ErrMissingMaterial,
			mention:  "shade material",
		},
		{
			name:     "nonexistent epw file",
			epwFile:  filepath.Join(t.TempDir(), "nope.epw"),
			ground:   ground,
			shade:    shade,
			sentinel: ErrEPWNotFound,
			mention:  "epwFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.epwFile, tt.ground, tt.shade)
			assert.Nil(t, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestNewRequestRejectsInvalidMaterial(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	bad := materials.NewVegetationMaterial("BAD")
	bad.PlantHeight = 50

	req, err := NewRequest(epw, bad, shade)
	assert.Nil(t, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ground material")

	req, err = NewRequest(epw, ground, bad)
	assert.Nil(t, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid shade material")
}

func TestNewRequestNormalizesPath(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, epw)
	require.NoError(t, err)

	req, err := NewRequest(rel, ground, shade)
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.True(t, filepath.IsAbs(filepath.FromSlash(req.EPWFile)), "stored path should be absolute")
	assert.NotContains(t, req.EPWFile, `\`, "stored path should use forward slashes only")
	assert.Equal(t, filepath.ToSlash(epw), req.EPWFile)
}

func TestSimulationIDDeterministic(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	first, err := NewRequest(epw, ground, shade)
	require.NoError(t, err)
	second, err := NewRequest(epw, ground, shade)
	require.NoError(t, err)

	assert.Equal(t, first.SimulationID, second.SimulationID)
}

func TestSimulationIDSensitivity(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	base, err := NewRequest(epw, ground, shade)
	require.NoError(t, err)

	// A single differing material field changes the identifier.
	tweaked := ground.(materials.OpaqueMaterial)
	tweaked.Conductivity += 0.01
	changed, err := NewRequest(epw, tweaked, shade)
	require.NoError(t, err)
	assert.NotEqual(t, base.SimulationID, changed.SimulationID)

	// Swapping ground and shade changes the identifier too.
	swapped, err := NewRequest(epw, shade, ground)
	require.NoError(t, err)
	assert.NotEqual(t, base.SimulationID, swapped.SimulationID)

	// A different weather file changes the identifier.
	other, err := NewRequest(testEPWFile(t), ground, shade)
	require.NoError(t, err)
	assert.NotEqual(t, base.SimulationID, other.SimulationID)
}

func TestRequestRoundTrip(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	original, err := NewRequest(epw, ground, shade)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestLastNonEmptyLine(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"single line", `{"ok":1}`, `{"ok":1}`},
		{"trailing newline", "{\"ok\":1}\n", `{"ok":1}`},
		{"incidental output", "loading toolkit...\nprogress 50%\n{\"ok\":1}\n\n", `{"ok":1}`},
		{"windows line endings", "noise\r\n{\"ok\":1}\r\n", `{"ok":1}`},
		{"empty", "\n\n  \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastNonEmptyLine(tt.output))
		})
	}
}

func TestRequestIDHasStableShape(t *testing.T) {
	ground, shade := testMaterials(t)
	epw := testEPWFile(t)

	req, err := NewRequest(epw, ground, shade)
	require.NoError(t, err)
	assert.Len(t, req.SimulationID, 16)
	assert.Equal(t, strings.ToLower(req.SimulationID), req.SimulationID)
}
