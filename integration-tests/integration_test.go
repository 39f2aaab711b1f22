//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanphys/comfortsim/internal/api"
	"github.com/urbanphys/comfortsim/internal/database"
	"github.com/urbanphys/comfortsim/internal/server"
	"github.com/urbanphys/comfortsim/internal/simulation"
)

// memoryRepo keeps stored results in memory so the full stack can run
// without a database.
type memoryRepo struct {
	mu      sync.Mutex
	results map[string][]byte
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{results: map[string][]byte{}}
}

func (r *memoryRepo) Save(_ context.Context, result *simulation.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.SimulationID] = payload
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*simulation.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.results[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	var result simulation.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *memoryRepo) Close() error { return nil }

// fakeToolkit stands in for the external toolkit's interpreter: it reads the
// payload embedded in the generated script it is handed and echoes a result
// envelope derived from it.
func fakeToolkit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "python")

	// The generated script embeds the request as PAYLOAD = "...". This
	// stand-in extracts it, decorates it with empty series, and prints the
	// envelope on the final line, preceded by incidental noise.
	script := `#!/bin/sh
echo "loading external toolkit..."
payload=$(grep '^PAYLOAD = ' "$1" | sed 's/^PAYLOAD = //')
printf '{"schema_version":1,"result":%s}\n' "$(printf '%s' "$payload" | python3 -c 'import json,sys; req=json.loads(json.loads(sys.stdin.read())); req.update({"shaded_ground_surface_temperature":[1.0],"unshaded_ground_surface_temperature":[2.0],"shaded_mean_radiant_temperature":[3.0],"unshaded_mean_radiant_temperature":[4.0]}); print(json.dumps(req))')"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func setupStack(t *testing.T) (http.Handler, *memoryRepo) {
	t.Helper()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	env, err := simulation.NewEnvironment(fakeToolkit(t), "", filepath.Join(t.TempDir(), "work"))
	require.NoError(t, err)

	repo := newMemoryRepo()
	bridge := simulation.NewBridge(env, logger)
	runner := api.NewSimulationRunner(bridge, repo, logger)

	handler, err := server.SetupServer(runner, server.DefaultServerConfig(), logger, prometheus.NewRegistry())
	require.NoError(t, err)
	return handler, repo
}

func TestSimulateEndToEnd(t *testing.T) {
	handler, repo := setupStack(t)

	epw := filepath.Join(t.TempDir(), "weather.epw")
	require.NoError(t, os.WriteFile(epw, []byte("LOCATION,Integration\n"), 0o644))

	body := fmt.Sprintf(
		`{"epw_file":%q,"ground_material":"ASPHALT","shade_material":"FABRIC"}`, epw)

	// First run goes through the bridge.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var first server.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.False(t, first.Reused)
	assert.Equal(t, []float64{1.0}, first.Result.ShadedGroundSurfaceTemperature)
	assert.Len(t, repo.results, 1)

	// The same request again is served from storage.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var second server.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.True(t, second.Reused)
	assert.Equal(t, first.Result.SimulationID, second.Result.SimulationID)

	// The stored result is addressable by ID.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/simulations/"+first.Result.SimulationID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSimulateEndToEndValidation(t *testing.T) {
	handler, _ := setupStack(t)

	body := `{"epw_file":"/does/not/exist.epw","ground_material":"ASPHALT","shade_material":"FABRIC"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "epwFile")
}
