// Package main provides the hgf-sim tool. It samples a binary observation
// sequence from the generative model underlying the filter, writing the
// outcomes as a CSV usable by hgf-run and, optionally, the latent paths as
// JSON for parameter-recovery checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/belief.report/internal/hgf"
	"github.com/banshee-data/belief.report/internal/hgf/sim"
)

// Config holds configuration for one hgf-sim invocation.
type Config struct {
	Trials      int
	Seed        uint64
	Params      string
	Transformed bool
	ObsOut      string
	LatentsOut  string
}

func parseFlags() Config {
	var cfg Config
	flag.IntVar(&cfg.Trials, "trials", 200, "Number of trials to simulate")
	flag.Uint64Var(&cfg.Seed, "seed", 1, "PRNG seed")
	flag.StringVar(&cfg.Params, "params", "", "Comma-separated generative parameter vector (default: model defaults)")
	flag.BoolVar(&cfg.Transformed, "transformed", false, "Interpret -params in unconstrained space")
	flag.StringVar(&cfg.ObsOut, "out-obs", "-", "Path for the outcome CSV, or - for stdout")
	flag.StringVar(&cfg.LatentsOut, "out-latents", "", "Optional path for the latent paths as JSON")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	params := hgf.DefaultParameters()
	if cfg.Params != "" {
		var err error
		params, err = hgf.ParseParameterVector(cfg.Params, cfg.Transformed)
		if err != nil {
			log.Fatalf("Failed to parse parameters: %v", err)
		}
	}

	seq, err := sim.Generate(sim.Config{Trials: cfg.Trials, Seed: cfg.Seed, Params: params})
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if err := writeObservations(cfg.ObsOut, seq.U); err != nil {
		log.Fatalf("Failed to write observations: %v", err)
	}

	if cfg.LatentsOut != "" {
		data, err := json.MarshalIndent(seq, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal latents: %v", err)
		}
		if err := os.WriteFile(cfg.LatentsOut, append(data, '\n'), 0644); err != nil {
			log.Fatalf("Failed to write latents: %v", err)
		}
		log.Printf("Wrote latent paths to %s", cfg.LatentsOut)
	}
}

// writeObservations emits one outcome per line, the format hgf-run loads.
func writeObservations(path string, u []float64) error {
	var b strings.Builder
	for _, v := range u {
		fmt.Fprintf(&b, "%.0f\n", v)
	}

	if path == "-" {
		_, err := os.Stdout.WriteString(b.String())
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
