package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/urbanphys/comfortsim/internal/database"
	"github.com/urbanphys/comfortsim/internal/materials"
	"github.com/urbanphys/comfortsim/internal/results"
	"github.com/urbanphys/comfortsim/internal/simulation"
)

// SimulationService encapsulates the business operations exposed over HTTP.
type SimulationService interface {
	Simulate(ctx context.Context, epwFile string, ground, shade materials.Material) (*simulation.Result, bool, error)
	Lookup(ctx context.Context, simulationID string) (*simulation.Result, error)
}

// Server holds the HTTP handlers for the simulation façade.
type Server struct {
	service   SimulationService
	validator *RequestValidator
	logger    *logrus.Logger
}

// SimulateResponse wraps a simulation result with whether it was served
// from storage.
type SimulateResponse struct {
	Reused bool               `json:"reused"`
	Result *simulation.Result `json:"result"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validator.ValidateSimulate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ground, err := resolveMaterial(req.GroundMaterial)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ground_material: "+err.Error())
		return
	}
	shade, err := resolveMaterial(req.ShadeMaterial)
	if err != nil {
		writeError(w, http.StatusBadRequest, "shade_material: "+err.Error())
		return
	}

	result, reused, err := s.service.Simulate(r.Context(), req.EPWFile, ground, shade)
	switch {
	case err == nil:
	case errors.Is(err, simulation.ErrMissingEPW),
		errors.Is(err, simulation.ErrMissingMaterial),
		errors.Is(err, simulation.ErrEPWNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, simulation.ErrSimulationFailed):
		writeError(w, http.StatusBadGateway, err.Error())
		return
	default:
		s.logger.WithError(err).Error("Simulation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{Reused: reused, Result: result})
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := s.service.Lookup(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no simulation stored for id "+id)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to load simulation")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListMaterials(w http.ResponseWriter, _ *http.Request) {
	names := materials.Names()
	list := make([]materials.Material, 0, len(names))
	for _, name := range names {
		m, _ := materials.FromString(name)
		list = append(list, m)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m, err := materials.FromString(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleAnnualResults(w http.ResponseWriter, r *http.Request) {
	var req AnnualResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validator.ValidateAnnual(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	annual, err := results.Load(req.IlluminanceFile, req.SunUpHoursFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, annual)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
