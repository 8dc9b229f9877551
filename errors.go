package qstat

import "errors"

var (
	// ErrInvalidArgument covers malformed shapes, non-positive counts and
	// frequency tables with the wrong number of keys.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when the Born probabilities of a state do
	// not normalize, which points at a malformed density matrix.
	ErrInvalidState = errors.New("invalid state")

	// ErrDegenerateCluster is returned by the mean estimator when a cluster
	// ends up with no points and the FailFast policy is active.
	ErrDegenerateCluster = errors.New("degenerate cluster")
)
