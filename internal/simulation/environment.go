package simulation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Environment is the explicit execution-environment handle for the external
// toolkit: the interpreter that ships with it, the directory holding its
// packages, and the working directory for per-run scratch space.
//
// Create one at startup, share it across runs, and Dispose it on shutdown.
type Environment struct {
	Interpreter string
	PackagesDir string
	WorkDir     string
}

// NewEnvironment validates the interpreter path and prepares the working
// directory. The interpreter must already exist; a missing toolkit
// installation is a startup error, not a per-run one.
func NewEnvironment(interpreter, packagesDir, workDir string) (*Environment, error) {
	if interpreter == "" {
		return nil, fmt.Errorf("interpreter path is required")
	}
	info, err := os.Stat(interpreter)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("interpreter not found at %s: ensure the toolkit installation is located in this directory", interpreter)
	}
	if workDir == "" {
		return nil, fmt.Errorf("working directory is required")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	return &Environment{
		Interpreter: interpreter,
		PackagesDir: packagesDir,
		WorkDir:     workDir,
	}, nil
}

// ScratchDir creates (if needed) and returns the per-run scratch directory
// for a simulation ID.
func (e *Environment) ScratchDir(simulationID string) (string, error) {
	dir := filepath.Join(e.WorkDir, simulationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

// Sweep removes scratch directories whose last modification is older than
// maxAge and returns how many were removed.
func (e *Environment) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(e.WorkDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read working directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(e.WorkDir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove scratch directory %s: %w", entry.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}

// Dispose tears down the working directory and everything under it.
func (e *Environment) Dispose() error {
	return os.RemoveAll(e.WorkDir)
}
