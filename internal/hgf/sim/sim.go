// Package sim generates synthetic binary observation sequences from the
// same generative model the filter inverts: a level-3 log-volatility random
// walk driving the variance of a level-2 tendency walk, squashed through
// the logistic map into an outcome probability.
//
// Simulated sequences are used for fixtures, parameter-recovery checks,
// and the hgf-sim tool. The filter itself never depends on this package.
package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/belief.report/internal/hgf"
)

// Config controls one simulation run.
type Config struct {
	Trials int            // Number of trials to generate
	Seed   uint64         // PRNG seed; identical seeds reproduce the run exactly
	Params hgf.Parameters // Generative parameters, same meaning as the filter's
}

// Sequence is one sampled draw from the generative model. All slices have
// length Config.Trials.
type Sequence struct {
	X3 []float64 `json:"x3"` // Level-3 log-volatility path
	X2 []float64 `json:"x2"` // Level-2 tendency path
	P  []float64 `json:"p"`  // Outcome probability sigmoid(x2) per trial
	U  []float64 `json:"u"`  // Sampled binary outcomes
}

// Generate samples a sequence of the given length from the generative model.
func Generate(cfg Config) (*Sequence, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	p := cfg.Params
	seq := &Sequence{
		X3: make([]float64, cfg.Trials),
		X2: make([]float64, cfg.Trials),
		P:  make([]float64, cfg.Trials),
		U:  make([]float64, cfg.Trials),
	}

	x3 := p.Mu3Prior
	x2 := p.Mu2Prior
	sqrtTheta := math.Sqrt(p.Theta)

	for k := 0; k < cfg.Trials; k++ {
		x3 += sqrtTheta * stdNormal.Rand()
		step := math.Sqrt(math.Exp(p.Kappa*x3 + p.Omega))
		x2 += step * stdNormal.Rand()

		prob := 1 / (1 + math.Exp(-x2))
		seq.X3[k] = x3
		seq.X2[k] = x2
		seq.P[k] = prob
		if uniform.Rand() < prob {
			seq.U[k] = 1
		}
	}

	return seq, nil
}
