package qstat

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
ToVector turns a two-outcome frequency table into a 2x1 column vector of
counts, smaller eigenvalue first. The order never depends on map iteration.
*/
func ToVector(table FrequencyTable) (*mat.VecDense, error) {
	if len(table) != 2 {
		return nil, fmt.Errorf("frequency table must have exactly 2 keys, got %d: %w", len(table), ErrInvalidArgument)
	}

	keys := table.Keys()
	return mat.NewVecDense(2, []float64{
		float64(table[keys[0]]),
		float64(table[keys[1]]),
	}), nil
}
