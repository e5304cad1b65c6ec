package hgf

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunSummary holds descriptive statistics for one filter run. It is derived
// data for reporting and persistence; nothing in the recursion depends on it.
type RunSummary struct {
	Trials int `json:"trials"`

	// Final beliefs after the last trial.
	FinalMu2 float64 `json:"final_mu2"`
	FinalMu3 float64 `json:"final_mu3"`
	FinalSa2 float64 `json:"final_sa2"`
	FinalSa3 float64 `json:"final_sa3"`

	// Prediction-error magnitudes.
	MeanAbsDa1 float64 `json:"mean_abs_da1"`
	StdAbsDa1  float64 `json:"std_abs_da1"`
	MeanAbsDa2 float64 `json:"mean_abs_da2"`

	// Mean level-2 posterior variance, a proxy for the learning rate the
	// subject ran at across the sequence.
	MeanSa2 float64 `json:"mean_sa2"`

	// Total binary surprise -sum(log p(u_k)) of the observed outcomes
	// under the pre-observation predictions.
	Surprise float64 `json:"surprise"`
}

// Summary computes descriptive statistics over the trajectory.
func (tr *Trajectory) Summary() RunSummary {
	n := tr.Len()
	sum := RunSummary{Trials: n}
	if n == 0 {
		return sum
	}

	sum.FinalMu2 = tr.Mu2[n-1]
	sum.FinalMu3 = tr.Mu3[n-1]
	sum.FinalSa2 = tr.Sa2[n-1]
	sum.FinalSa3 = tr.Sa3[n-1]

	absDa1 := make([]float64, n)
	absDa2 := make([]float64, n)
	for i := 0; i < n; i++ {
		absDa1[i] = math.Abs(tr.Da1[i])
		absDa2[i] = math.Abs(tr.Da2[i])
	}
	sum.MeanAbsDa1 = stat.Mean(absDa1, nil)
	if n > 1 {
		sum.StdAbsDa1 = stat.StdDev(absDa1, nil)
	}
	sum.MeanAbsDa2 = stat.Mean(absDa2, nil)
	sum.MeanSa2 = floats.Sum(tr.Sa2) / float64(n)
	sum.Surprise = tr.Surprise()

	return sum
}

// Surprise returns the total binary surprise -sum(log p(u_k)) of the
// observed outcomes under the trial-k predictions mu1hat(k). A skipped
// trial carries the previous trial's prediction and still scores here;
// callers wanting to exclude skipped trials should score per trial
// themselves.
func (tr *Trajectory) Surprise() float64 {
	var total float64
	for i := 0; i < tr.Len(); i++ {
		p := tr.Mu1Hat[i]
		if tr.Mu1[i] < 0.5 {
			p = 1 - p
		}
		total -= math.Log(p)
	}
	return total
}
