// Package hgf implements the three-level Hierarchical Gaussian Filter for
// binary outcomes.
//
// Responsibilities: parameter representation (native and unconstrained
// spaces), the per-trial belief update recursion, trajectory alignment,
// and packing of the predicted-moment tensor consumed by response models.
// Key types: Parameters, Trajectory, InferenceTensor.
//
// The filter itself is a pure function: no I/O, no shared state. Anything
// that persists or renders a run lives in the store and report
// subpackages, never here.
package hgf
