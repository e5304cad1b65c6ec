package hgf

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameterRegion is the sentinel wrapped by every
// InvalidParameterRegionError. Parameter-search callers should match on it
// with errors.Is and score the candidate point as infeasible rather than
// retrying.
var ErrInvalidParameterRegion = errors.New("invalid parameter region")

// InvalidParameterRegionError reports the trial at which the level-3
// posterior precision collapsed to a non-positive (or non-finite) value.
type InvalidParameterRegionError struct {
	Trial int     // 1-based trial index where the guard fired
	Pi3   float64 // The offending precision value
}

func (e *InvalidParameterRegionError) Error() string {
	return fmt.Sprintf("level-3 precision %g at trial %d: %v", e.Pi3, e.Trial, ErrInvalidParameterRegion)
}

func (e *InvalidParameterRegionError) Unwrap() error {
	return ErrInvalidParameterRegion
}

// TrialState is the full belief state after one trial. Index 0 holds the
// synthetic prior seeded from the parameters; its hat and error fields are
// undefined and never read.
type TrialState struct {
	// Posterior beliefs. Level 1 carries no persistent precision: its
	// variance is fully determined by the prediction (see Trajectory.Sa1).
	Mu1 float64 // Posterior outcome belief (the observed outcome itself)
	Mu2 float64 // Posterior mean, level-2 latent
	Mu3 float64 // Posterior mean, level-3 log-volatility
	Pi2 float64 // Posterior precision, level 2
	Pi3 float64 // Posterior precision, level 3

	// Pre-observation predictions and their precisions.
	Mu1Hat float64
	Pi1Hat float64
	Pi2Hat float64
	Pi3Hat float64

	// Volatility coupling weight between levels 2 and 3.
	W2 float64

	// Prediction errors: outcome (level 1) and volatility (level 2).
	Da1 float64
	Da2 float64
}

// sigmoid is the logistic map from level-2 space to outcome probability.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// seedState builds the synthetic trial-0 state from the parameters.
func seedState(p Parameters) TrialState {
	return TrialState{
		Mu1: sigmoid(p.Mu2Prior),
		Mu2: p.Mu2Prior,
		Pi2: 1 / p.Sa2Prior,
		Mu3: p.Mu3Prior,
		Pi3: 1 / p.Sa3Prior,
	}
}

// Filter runs the three-level binary update recursion over the observation
// sequence and returns the aligned trajectory.
//
// observations holds one 0/1 value per trial. ignore lists 1-based trial
// indices to treat as missing data: a skipped trial copies the full state
// of the previous trial and contributes no information. Inputs outside
// these contracts (empty sequence, non-binary values, indices outside
// [1,T]) are caller errors, not handled conditions; out-of-range ignore
// indices are silently dropped.
//
// The only failure mode is ErrInvalidParameterRegion, raised the first time
// the level-3 posterior precision leaves the positive reals. On failure no
// partial trajectory is returned.
func Filter(p Parameters, observations []float64, ignore []int) (*Trajectory, error) {
	states, err := run(p, observations, ignore)
	if err != nil {
		return nil, err
	}
	return alignStates(states), nil
}

// FilterTransformed is Filter for callers holding unconstrained-space
// parameters, typically a fitting framework mid-search.
func FilterTransformed(tp TransformedParameters, observations []float64, ignore []int) (*Trajectory, error) {
	return Filter(tp.Native(), observations, ignore)
}

// run is the forward recursion: a fold over trials whose accumulator is the
// previous TrialState. It returns the full state sequence indexed 0..T,
// seed included.
func run(p Parameters, observations []float64, ignore []int) ([]TrialState, error) {
	trials := len(observations)

	// Compile the ignore set into a per-trial policy once, so the hot loop
	// is a single predictable branch.
	skip := make([]bool, trials+1)
	for _, k := range ignore {
		if k >= 1 && k <= trials {
			skip[k] = true
		}
	}

	states := make([]TrialState, trials+1)
	states[0] = seedState(p)

	for k := 1; k <= trials; k++ {
		prev := states[k-1]

		if skip[k] {
			// Missing data: beliefs and all derived quantities carry
			// forward unchanged.
			states[k] = prev
			continue
		}

		var s TrialState

		// Level 1: predict the outcome from yesterday's level-2 belief,
		// then observe it directly.
		s.Mu1Hat = sigmoid(prev.Mu2)
		s.Pi1Hat = 1 / (s.Mu1Hat * (1 - s.Mu1Hat))
		s.Mu1 = observations[k-1]
		s.Da1 = s.Mu1 - s.Mu1Hat

		// Level 2: predictive uncertainty grows with the volatility
		// implied by level 3, then shrinks by the outcome information.
		vol := math.Exp(p.Kappa*prev.Mu3 + p.Omega)
		s.Pi2Hat = 1 / (1/prev.Pi2 + vol)
		s.Pi2 = s.Pi2Hat + 1/s.Pi1Hat
		s.Mu2 = prev.Mu2 + s.Da1/s.Pi2

		// Volatility prediction error: how surprising the level-2 move
		// was relative to the predicted variance.
		shift := s.Mu2 - prev.Mu2
		s.Da2 = (1/s.Pi2+shift*shift)*s.Pi2Hat - 1

		// Level 3.
		s.Pi3Hat = 1 / (1/prev.Pi3 + p.Theta)
		s.W2 = vol * s.Pi2Hat
		s.Pi3 = s.Pi3Hat + 0.5*p.Kappa*p.Kappa*s.W2*(s.W2+(2*s.W2-1)*s.Da2)

		// Written as !(pi3 > 0) so a NaN precision also trips the guard;
		// either way the parameter point cannot explain this sequence.
		if !(s.Pi3 > 0) {
			return nil, &InvalidParameterRegionError{Trial: k, Pi3: s.Pi3}
		}
		s.Mu3 = prev.Mu3 + 0.5*p.Kappa*s.W2*s.Da2/s.Pi3

		states[k] = s
	}

	return states, nil
}
