// Package comfortsim implements an outdoor comfort simulation service.
//
// # Architecture
//
// The service is structured into several key packages:
//   - api: Orchestration of request building, result reuse and bridge runs
//   - config: YAML configuration with environment variable expansion
//   - database: Postgres storage for completed simulation results
//   - materials: Opaque and vegetation energy material definitions
//   - results: Annual daylight result file parsing
//   - scheduler: Background sweeping of stale scratch directories
//   - server: HTTP service implementation and middleware chain
//   - simulation: Request validation, execution environment and the
//     external interpreter bridge
//
// Key Features
//
//   - Result Reuse:
//     Each simulation is identified by a content-derived key over its
//     weather file and materials; a stored result for the same key is
//     served without re-running the external toolkit.
//
//   - External Bridge:
//     Requests cross the process boundary as versioned JSON embedded in a
//     generated Python script; the script's final stdout line carries the
//     result or a structured error payload.
//
//   - Performance:
//     Responses to idempotent reads are cached in an LRU cache, and
//     Prometheus metrics cover every endpoint.
//
// Example Usage
//
//	resp, err := http.Post(url+"/simulations", "application/json",
//	    strings.NewReader(`{
//	        "epw_file": "/weather/city.epw",
//	        "ground_material": "CONCRETE_LIGHTWEIGHT",
//	        "shade_material": "FABRIC"
//	    }`))
//
// For more information about specific packages, see their respective
// documentation.
package comfortsim
