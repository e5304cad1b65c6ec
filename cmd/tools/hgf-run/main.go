// Package main provides the hgf-run tool. It runs the three-level binary
// Hierarchical Gaussian Filter over an observation file and emits the
// resulting belief trajectory as JSON, optionally persisting the run to a
// SQLite database and rendering plots and an HTML report.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/belief.report/internal/hgf"
	"github.com/banshee-data/belief.report/internal/hgf/report"
	"github.com/banshee-data/belief.report/internal/hgf/store"
)

// Config holds configuration for one hgf-run invocation.
type Config struct {
	ObsFile     string
	Params      string
	Transformed bool
	Ignore      string
	OutFile     string
	DBPath      string
	PlotDir     string
	HTMLPath    string
}

// RunOutput is the JSON document written for a successful run.
type RunOutput struct {
	RunID      string              `json:"run_id,omitempty"`
	Params     hgf.Parameters      `json:"params"`
	Trials     int                 `json:"trials"`
	Ignored    []int               `json:"ignored,omitempty"`
	Summary    hgf.RunSummary      `json:"summary"`
	Trajectory *hgf.Trajectory     `json:"trajectory"`
	Tensor     hgf.InferenceTensor `json:"tensor"`
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.ObsFile, "obs", "", "Path to the binary observation file (required)")
	flag.StringVar(&cfg.Params, "params", "", "Comma-separated parameter vector mu2_0,sa2_0,mu3_0,sa3_0,kappa,omega,theta (default: model defaults)")
	flag.BoolVar(&cfg.Transformed, "transformed", false, "Interpret -params in unconstrained (search) space")
	flag.StringVar(&cfg.Ignore, "ignore", "", "Comma-separated 1-based trial indices to treat as missing")
	flag.StringVar(&cfg.OutFile, "out", "-", "Output JSON path, or - for stdout")
	flag.StringVar(&cfg.DBPath, "db", "", "Optional SQLite database to persist the run")
	flag.StringVar(&cfg.PlotDir, "plot-dir", "", "Optional directory for PNG trajectory plots")
	flag.StringVar(&cfg.HTMLPath, "html", "", "Optional path for an HTML report")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.ObsFile == "" {
		log.Fatal("observation file is required (-obs)")
	}

	observations, err := hgf.LoadObservations(cfg.ObsFile)
	if err != nil {
		log.Fatalf("Failed to load observations: %v", err)
	}
	if len(observations) == 0 {
		log.Fatalf("Observation file %s is empty", cfg.ObsFile)
	}

	params := hgf.DefaultParameters()
	if cfg.Params != "" {
		params, err = hgf.ParseParameterVector(cfg.Params, cfg.Transformed)
		if err != nil {
			log.Fatalf("Failed to parse parameters: %v", err)
		}
	}

	ignore, err := hgf.ParseIgnoreList(cfg.Ignore)
	if err != nil {
		log.Fatalf("Failed to parse ignore list: %v", err)
	}

	trajectory, err := hgf.Filter(params, observations, ignore)
	if err != nil {
		var ipr *hgf.InvalidParameterRegionError
		if errors.As(err, &ipr) && cfg.DBPath != "" {
			recordFailure(cfg.DBPath, params, len(observations), ipr)
		}
		log.Fatalf("Filter failed: %v", err)
	}

	out := RunOutput{
		Params:     params,
		Trials:     trajectory.Len(),
		Ignored:    ignore,
		Summary:    trajectory.Summary(),
		Trajectory: trajectory,
		Tensor:     trajectory.Tensor(),
	}

	if cfg.DBPath != "" {
		out.RunID = persistRun(cfg.DBPath, params, trajectory)
	}

	if cfg.PlotDir != "" {
		written, err := report.GeneratePlots(trajectory, cfg.PlotDir)
		if err != nil {
			log.Fatalf("Failed to generate plots: %v", err)
		}
		log.Printf("Wrote %d plots to %s", len(written), cfg.PlotDir)
	}

	if cfg.HTMLPath != "" {
		if err := report.WriteHTMLReport(trajectory, params, cfg.HTMLPath); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
		log.Printf("Wrote HTML report to %s", cfg.HTMLPath)
	}

	if err := writeOutput(cfg.OutFile, out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

// persistRun stores a successful run and returns its assigned ID.
func persistRun(dbPath string, params hgf.Parameters, tr *hgf.Trajectory) string {
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	sum := tr.Summary()
	run := &store.Run{
		Trials:  tr.Len(),
		Status:  store.RunStatusOK,
		Params:  params,
		Summary: &sum,
	}
	if err := store.NewRunStore(db).InsertRun(run, tr); err != nil {
		log.Fatalf("Failed to persist run: %v", err)
	}
	log.Printf("Persisted run %s to %s", run.RunID, dbPath)
	return run.RunID
}

// recordFailure stores an invalid-parameter-region run so the infeasible
// point is visible alongside successful fits.
func recordFailure(dbPath string, params hgf.Parameters, trials int, ipr *hgf.InvalidParameterRegionError) {
	db, err := store.Open(dbPath)
	if err != nil {
		log.Printf("WARNING: could not open database to record failure: %v", err)
		return
	}
	defer db.Close()

	failureTrial := int64(ipr.Trial)
	run := &store.Run{
		Trials:       trials,
		Status:       store.RunStatusInvalidRegion,
		FailureTrial: &failureTrial,
		Params:       params,
	}
	if err := store.NewRunStore(db).InsertRun(run, nil); err != nil {
		log.Printf("WARNING: could not record failed run: %v", err)
		return
	}
	log.Printf("Recorded infeasible parameter point as run %s", run.RunID)
}

func writeOutput(path string, out RunOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
