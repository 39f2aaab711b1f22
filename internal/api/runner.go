package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/urbanphys/comfortsim/internal/database"
	"github.com/urbanphys/comfortsim/internal/materials"
	"github.com/urbanphys/comfortsim/internal/simulation"
)

// Bridge runs a built request through the external toolkit.
type Bridge interface {
	Run(ctx context.Context, req *simulation.Request) (*simulation.Result, error)
}

// SimulationRunner ties the request builder, the external bridge and the
// result store together: build, reuse a stored result when the same triple
// has already been simulated, otherwise run and persist.
type SimulationRunner struct {
	bridge Bridge
	repo   database.SimulationRepository
	logger *logrus.Logger
}

func NewSimulationRunner(bridge Bridge, repo database.SimulationRepository, logger *logrus.Logger) *SimulationRunner {
	return &SimulationRunner{
		bridge: bridge,
		repo:   repo,
		logger: logger,
	}
}

// Simulate validates the inputs and produces a result for the triple. The
// returned bool reports whether the result was reused from storage rather
// than freshly simulated.
func (r *SimulationRunner) Simulate(ctx context.Context, epwFile string, ground, shade materials.Material) (*simulation.Result, bool, error) {
	req, err := simulation.NewRequest(epwFile, ground, shade)
	if err != nil {
		return nil, false, err
	}

	stored, err := r.repo.Get(ctx, req.SimulationID)
	if err == nil {
		r.logger.WithFields(logrus.Fields{
			"simulation_id": req.SimulationID,
		}).Info("Reusing stored simulation result")
		return stored, true, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check for stored result: %w", err)
	}

	result, err := r.bridge.Run(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if err := r.repo.Save(ctx, result); err != nil {
		// The run itself succeeded; the caller still gets the result.
		r.logger.WithFields(logrus.Fields{
			"simulation_id": req.SimulationID,
		}).WithError(err).Error("Failed to persist simulation result")
	}

	return result, false, nil
}

// Lookup retrieves a stored result by simulation ID.
func (r *SimulationRunner) Lookup(ctx context.Context, simulationID string) (*simulation.Result, error) {
	return r.repo.Get(ctx, simulationID)
}
