package hgf

// Level indices into the inference tensor.
const (
	LevelOutcome    = 0 // Binary outcome probability
	LevelTendency   = 1 // Level-2 continuous latent
	LevelVolatility = 2 // Level-3 log-volatility
)

// Moment indices into the inference tensor.
const (
	MomentMean     = 0
	MomentVariance = 1
)

// InferenceTensor stacks predicted means and variances across the three
// levels, shape [trials][3 levels][2 moments]. It is the artifact handed to
// an external observation/response model; nothing in this package reads it
// back.
type InferenceTensor [][3][2]float64

// Trials returns the first dimension of the tensor.
func (t InferenceTensor) Trials() int {
	return len(t)
}

// Tensor packs the trajectory's predicted moments into an InferenceTensor.
func (tr *Trajectory) Tensor() InferenceTensor {
	tensor := make(InferenceTensor, tr.Len())
	for i := range tensor {
		tensor[i] = [3][2]float64{
			{tr.Mu1Hat[i], tr.Sa1Hat[i]},
			{tr.Mu2Hat[i], tr.Sa2Hat[i]},
			{tr.Mu3Hat[i], tr.Sa3Hat[i]},
		}
	}
	return tensor
}
