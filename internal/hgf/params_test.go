package hgf

import (
	"math"
	"testing"
)

func TestTransformedRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		params Parameters
	}{
		{"defaults", DefaultParameters()},
		{"small_variances", Parameters{Mu2Prior: -1.5, Sa2Prior: 0.01, Mu3Prior: 2, Sa3Prior: 0.05, Kappa: 0.3, Omega: -6, Theta: 0.001}},
		{"large_variances", Parameters{Mu2Prior: 4, Sa2Prior: 100, Mu3Prior: -2, Sa3Prior: 50, Kappa: 3, Omega: 1, Theta: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.params.Transformed().Native()
			want := tc.params.Vector()
			for i, v := range got.Vector() {
				if math.Abs(v-want[i]) > 1e-12*math.Max(1, math.Abs(want[i])) {
					t.Errorf("component %d: got %g, want %g", i, v, want[i])
				}
			}
		})
	}
}

func TestTransformedPreservesOrder(t *testing.T) {
	// The variance maps must be order-preserving bijections.
	lo := TransformedParameters{LogSa2Prior: -2, LogSa3Prior: -2, LogKappa: -2, LogTheta: -2}
	hi := TransformedParameters{LogSa2Prior: 1, LogSa3Prior: 1, LogKappa: 1, LogTheta: 1}

	nLo, nHi := lo.Native(), hi.Native()
	if !(nLo.Sa2Prior < nHi.Sa2Prior && nLo.Sa3Prior < nHi.Sa3Prior && nLo.Kappa < nHi.Kappa && nLo.Theta < nHi.Theta) {
		t.Errorf("transform reversed ordering: lo=%+v hi=%+v", nLo, nHi)
	}
	if nLo.Sa2Prior <= 0 || nLo.Theta <= 0 {
		t.Errorf("transform left the positive domain: %+v", nLo)
	}
}

func TestParametersFromVector(t *testing.T) {
	testCases := []struct {
		name        string
		vector      []float64
		transformed bool
		expectErr   bool
		wantKappa   float64
	}{
		{"native", []float64{0, 1, 1, 1, 1, -3, 0.1}, false, false, 1},
		{"transformed_kappa", []float64{0, 0, 1, 0, math.Log(2), -3, math.Log(0.1)}, true, false, 2},
		{"too_short", []float64{1, 2, 3}, false, true, 0},
		{"too_long", make([]float64, 9), false, true, 0},
		{"empty", nil, false, true, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParametersFromVector(tc.vector, tc.transformed)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.vector)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(p.Kappa-tc.wantKappa) > 1e-12 {
				t.Errorf("kappa: got %g, want %g", p.Kappa, tc.wantKappa)
			}
		})
	}
}
