package hgf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumParameters is the length of a flat parameter vector in either space.
const NumParameters = 7

// Parameters holds the seven native-space scalars that govern one filter run.
// The struct is passed by value and never mutated by the filter.
type Parameters struct {
	Mu2Prior float64 // Prior mean of the level-2 latent (mu2_0)
	Sa2Prior float64 // Prior variance of the level-2 latent (sa2_0)
	Mu3Prior float64 // Prior mean of the level-3 log-volatility (mu3_0)
	Sa3Prior float64 // Prior variance of the level-3 log-volatility (sa3_0)
	Kappa    float64 // Coupling strength of level 3 onto level-2 volatility
	Omega    float64 // Tonic log-volatility of the level-2 random walk
	Theta    float64 // Variance growth rate of the level-3 random walk
}

// DefaultParameters returns a conventional starting point for the binary
// three-level model: uninformative level-2 prior, mildly volatile level 3.
func DefaultParameters() Parameters {
	return Parameters{
		Mu2Prior: 0,
		Sa2Prior: 1,
		Mu3Prior: 1,
		Sa3Prior: 1,
		Kappa:    1,
		Omega:    -3,
		Theta:    0.1,
	}
}

// TransformedParameters is the unconstrained-space encoding used by
// parameter-search frameworks. Positivity-constrained quantities (variances,
// theta, kappa) are carried as logarithms so an optimizer can move freely;
// the remaining scalars map through identity.
type TransformedParameters struct {
	Mu2Prior    float64
	LogSa2Prior float64
	Mu3Prior    float64
	LogSa3Prior float64
	LogKappa    float64
	Omega       float64
	LogTheta    float64
}

// Native maps the unconstrained encoding back to native space. The maps are
// fixed, order-preserving bijections; no clipping is applied.
func (tp TransformedParameters) Native() Parameters {
	return Parameters{
		Mu2Prior: tp.Mu2Prior,
		Sa2Prior: math.Exp(tp.LogSa2Prior),
		Mu3Prior: tp.Mu3Prior,
		Sa3Prior: math.Exp(tp.LogSa3Prior),
		Kappa:    math.Exp(tp.LogKappa),
		Omega:    tp.Omega,
		Theta:    math.Exp(tp.LogTheta),
	}
}

// Transformed is the inverse of Native. Parameters outside the native
// domain (non-positive variances, kappa or theta) yield non-finite
// components rather than an error, matching the caller-discipline contract
// of the filter itself.
func (p Parameters) Transformed() TransformedParameters {
	return TransformedParameters{
		Mu2Prior:    p.Mu2Prior,
		LogSa2Prior: math.Log(p.Sa2Prior),
		Mu3Prior:    p.Mu3Prior,
		LogSa3Prior: math.Log(p.Sa3Prior),
		LogKappa:    math.Log(p.Kappa),
		Omega:       p.Omega,
		LogTheta:    math.Log(p.Theta),
	}
}

// Vector flattens the parameters in canonical order:
// mu2_0, sa2_0, mu3_0, sa3_0, kappa, omega, theta.
func (p Parameters) Vector() []float64 {
	return []float64{p.Mu2Prior, p.Sa2Prior, p.Mu3Prior, p.Sa3Prior, p.Kappa, p.Omega, p.Theta}
}

// ParametersFromVector unpacks a flat vector in canonical order. When
// transformed is true the vector is interpreted in unconstrained space and
// mapped through the fixed bijections first.
func ParametersFromVector(v []float64, transformed bool) (Parameters, error) {
	if len(v) != NumParameters {
		return Parameters{}, fmt.Errorf("parameter vector has %d values, want %d", len(v), NumParameters)
	}
	if transformed {
		tp := TransformedParameters{
			Mu2Prior:    v[0],
			LogSa2Prior: v[1],
			Mu3Prior:    v[2],
			LogSa3Prior: v[3],
			LogKappa:    v[4],
			Omega:       v[5],
			LogTheta:    v[6],
		}
		return tp.Native(), nil
	}
	return Parameters{
		Mu2Prior: v[0],
		Sa2Prior: v[1],
		Mu3Prior: v[2],
		Sa3Prior: v[3],
		Kappa:    v[4],
		Omega:    v[5],
		Theta:    v[6],
	}, nil
}

// ParseParameterVector parses a comma-separated parameter vector in
// canonical order, e.g. "0,1,1,1,1,-3,0.1".
func ParseParameterVector(s string, transformed bool) (Parameters, error) {
	parts := strings.Split(s, ",")
	v := make([]float64, 0, NumParameters)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Parameters{}, fmt.Errorf("invalid parameter '%s': %w", p, err)
		}
		v = append(v, f)
	}
	return ParametersFromVector(v, transformed)
}
