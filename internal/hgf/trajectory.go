package hgf

// Trajectory exposes one filter run as parallel per-trial series, trial
// indices 1..T mapped to slice indices 0..T-1. The synthetic prior state
// never appears in a Trajectory.
type Trajectory struct {
	// Posterior beliefs after observing each trial.
	Mu1 []float64 `json:"mu1"` // Observed outcomes (level-1 posterior collapses onto them)
	Mu2 []float64 `json:"mu2"`
	Mu3 []float64 `json:"mu3"`
	Sa1 []float64 `json:"sa1"` // Derived: mu1hat * (1 - mu1hat)
	Sa2 []float64 `json:"sa2"` // 1 / pi2
	Sa3 []float64 `json:"sa3"` // 1 / pi3

	// Pre-observation predictions. Mu2Hat and Mu3Hat are the posterior
	// series lagged by one trial: the prediction for trial k is the belief
	// held after trial k-1.
	Mu1Hat []float64 `json:"mu1hat"`
	Mu2Hat []float64 `json:"mu2hat"`
	Mu3Hat []float64 `json:"mu3hat"`
	Sa1Hat []float64 `json:"sa1hat"` // 1 / pi1hat
	Sa2Hat []float64 `json:"sa2hat"` // 1 / pi2hat
	Sa3Hat []float64 `json:"sa3hat"` // 1 / pi3hat

	// Volatility coupling weight per trial.
	W2 []float64 `json:"w2"`

	// Prediction errors per trial.
	Da1 []float64 `json:"da1"`
	Da2 []float64 `json:"da2"`
}

// Len returns the number of trials covered by the trajectory.
func (tr *Trajectory) Len() int {
	return len(tr.Mu1)
}

// alignStates unpacks the raw state sequence (indices 0..T, seed included)
// into trial-aligned output series. The level-2/3 predictions are derived
// by re-indexing the posterior chain rather than stored separately, so the
// two representations cannot drift.
func alignStates(states []TrialState) *Trajectory {
	trials := len(states) - 1
	tr := &Trajectory{
		Mu1:    make([]float64, trials),
		Mu2:    make([]float64, trials),
		Mu3:    make([]float64, trials),
		Sa1:    make([]float64, trials),
		Sa2:    make([]float64, trials),
		Sa3:    make([]float64, trials),
		Mu1Hat: make([]float64, trials),
		Mu2Hat: make([]float64, trials),
		Mu3Hat: make([]float64, trials),
		Sa1Hat: make([]float64, trials),
		Sa2Hat: make([]float64, trials),
		Sa3Hat: make([]float64, trials),
		W2:     make([]float64, trials),
		Da1:    make([]float64, trials),
		Da2:    make([]float64, trials),
	}

	for k := 1; k <= trials; k++ {
		s := states[k]
		i := k - 1

		tr.Mu1[i] = s.Mu1
		tr.Mu2[i] = s.Mu2
		tr.Mu3[i] = s.Mu3
		tr.Sa1[i] = s.Mu1Hat * (1 - s.Mu1Hat)
		tr.Sa2[i] = 1 / s.Pi2
		tr.Sa3[i] = 1 / s.Pi3

		tr.Mu1Hat[i] = s.Mu1Hat
		tr.Mu2Hat[i] = states[k-1].Mu2
		tr.Mu3Hat[i] = states[k-1].Mu3
		tr.Sa1Hat[i] = 1 / s.Pi1Hat
		tr.Sa2Hat[i] = 1 / s.Pi2Hat
		tr.Sa3Hat[i] = 1 / s.Pi3Hat

		tr.W2[i] = s.W2
		tr.Da1[i] = s.Da1
		tr.Da2[i] = s.Da2
	}

	return tr
}
