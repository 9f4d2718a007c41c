package main

// ===========================================================================
// WHAT'S GOING ON HERE
// ===========================================================================
//
// A small HTTP API for the benchmark dashboard:
//
//   GET  /api/results  - suite results previously saved with `suite -json=...`
//   GET  /api/system   - hardware information for this host
//   POST /api/run      - run one benchmark now, body {"size": "micro"}
//
// The run endpoint executes in-process with the naive kernel, so a dashboard
// poking a fleet of machines gets numbers produced by exactly the same code
// path as the CLI. Size labels follow the CLI contract, fallback included.
//
// Responses are JSON with a permissive CORS header so a static dashboard
// page served from anywhere can call the API directly.
//
// ===========================================================================

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
)

// dashboardServer serves benchmark data over HTTP.
type dashboardServer struct {
	resultsPath string
}

// RunServeCommand is the entry point for the serve subcommand.
func RunServeCommand(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var addr, results string
	fs.StringVar(&addr, "addr", ":8080", "Listen address")
	fs.StringVar(&results, "results", "", "Suite JSON file to serve at /api/results")

	fs.Parse(args)

	srv := &dashboardServer{resultsPath: results}

	fmt.Printf("Serving benchmark API on %s\n", addr)
	if results != "" {
		fmt.Printf("Results file: %s\n", results)
	}

	return http.ListenAndServe(addr, srv.handler())
}

func (s *dashboardServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("GET /api/system", s.handleSystem)
	mux.HandleFunc("POST /api/run", s.handleRun)
	return mux
}

// handleResults serves the suite JSON saved by a previous suite run.
func (s *dashboardServer) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.resultsPath == "" {
		writeJSONError(w, http.StatusNotFound, "no results file configured")
		return
	}

	data, err := os.ReadFile(s.resultsPath)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("read results: %v", err))
		return
	}

	// Validate before passing through, so the endpoint never serves a
	// half-written file as JSON.
	var suite Suite
	if err := json.Unmarshal(data, &suite); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("parse results: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, suite)
}

// handleSystem serves hardware information for this host.
func (s *dashboardServer) handleSystem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DetectHardware())
}

// runRequest is the body of POST /api/run.
type runRequest struct {
	Size string `json:"size"`
}

// handleRun executes a single benchmark with the naive kernel and returns
// its measurements.
func (s *dashboardServer) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	n, label := ResolveSizeClass(req.Size, req.Size != "")

	result, err := MeasureOnce(n, label, StrategyNaive, DefaultComputeConfig())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
