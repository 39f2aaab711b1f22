// Package simulation implements the outdoor comfort simulation façade: a
// validated request over a weather file and a ground/shade material pair,
// and a bridge that runs the request through the external toolkit's Python
// interpreter and materializes the printed result.
package simulation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urbanphys/comfortsim/internal/materials"
)

// SchemaVersion is the version of the request/response payload exchanged
// with the external interpreter.
const SchemaVersion = 1

var (
	ErrMissingEPW      = errors.New("missing epwFile")
	ErrMissingMaterial = errors.New("missing material")
	ErrEPWNotFound     = errors.New("epwFile not found")
)

// Request identifies a single simulation: a weather file plus the ground and
// shade materials. The SimulationID is a pure function of the triple, so two
// requests over the same inputs share stored results.
type Request struct {
	SchemaVersion  int                `json:"schema_version"`
	SimulationID   string             `json:"simulation_id"`
	EPWFile        string             `json:"epw_file"`
	GroundMaterial materials.Material `json:"ground_material"`
	ShadeMaterial  materials.Material `json:"shade_material"`
}

// NewRequest validates the inputs and assembles a request.
//
// It fails fast, returning a nil request and a single error, when the EPW
// path is empty, either material is nil or invalid, or the path does not
// resolve to an existing file. On success the stored path is absolute and
// uses forward slashes on every platform.
func NewRequest(epwFile string, ground, shade materials.Material) (*Request, error) {
	if epwFile == "" {
		return nil, fmt.Errorf("%w: an epwFile path is required", ErrMissingEPW)
	}
	if ground == nil {
		return nil, fmt.Errorf("%w: a ground material is required", ErrMissingMaterial)
	}
	if shade == nil {
		return nil, fmt.Errorf("%w: a shade material is required", ErrMissingMaterial)
	}
	if err := ground.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ground material: %w", err)
	}
	if err := shade.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shade material: %w", err)
	}

	info, err := os.Stat(epwFile)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: no file exists at %s", ErrEPWNotFound, epwFile)
	}

	absPath, err := filepath.Abs(epwFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve epwFile path: %w", err)
	}
	normalized := filepath.ToSlash(absPath)

	id, err := simulationID(normalized, ground, shade)
	if err != nil {
		return nil, err
	}

	return &Request{
		SchemaVersion:  SchemaVersion,
		SimulationID:   id,
		EPWFile:        normalized,
		GroundMaterial: ground,
		ShadeMaterial:  shade,
	}, nil
}

// simulationID derives the stable identity key over the (weather file,
// ground material, shade material) triple. Any differing field yields a
// different key.
func simulationID(epwFile string, ground, shade materials.Material) (string, error) {
	groundJSON, err := json.Marshal(ground)
	if err != nil {
		return "", fmt.Errorf("failed to encode ground material: %w", err)
	}
	shadeJSON, err := json.Marshal(shade)
	if err != nil {
		return "", fmt.Errorf("failed to encode shade material: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(epwFile))
	h.Write([]byte{0})
	h.Write(groundJSON)
	h.Write([]byte{0})
	h.Write(shadeJSON)
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

// UnmarshalJSON recovers the concrete material types behind the Material
// interface fields.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		SchemaVersion  int             `json:"schema_version"`
		SimulationID   string          `json:"simulation_id"`
		EPWFile        string          `json:"epw_file"`
		GroundMaterial json.RawMessage `json:"ground_material"`
		ShadeMaterial  json.RawMessage `json:"shade_material"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ground, err := materials.Decode(raw.GroundMaterial)
	if err != nil {
		return fmt.Errorf("ground material: %w", err)
	}
	shade, err := materials.Decode(raw.ShadeMaterial)
	if err != nil {
		return fmt.Errorf("shade material: %w", err)
	}

	r.SchemaVersion = raw.SchemaVersion
	r.SimulationID = raw.SimulationID
	r.EPWFile = raw.EPWFile
	r.GroundMaterial = ground
	r.ShadeMaterial = shade
	return nil
}
