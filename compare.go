package qstat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fit is the result of a Pearson chi-square goodness-of-fit test.
type Fit struct {
	ChiSquare        float64
	DegreesOfFreedom int
	PValue           float64
}

/*
GoodnessOfFit compares observed counts against the counts a distribution
predicts for the same number of samples. The distribution must sum to 1
within the default NormTolerance. Outcomes with zero predicted probability
are ignored unless they were observed, which is an error.
*/
func GoodnessOfFit(observed FrequencyTable, expected Distribution) (Fit, error) {
	if sum := expected.Total(); math.IsNaN(sum) || math.Abs(sum-1) > NewConfig().NormTolerance {
		return Fit{}, fmt.Errorf("expected distribution sums to %g: %w", sum, ErrInvalidArgument)
	}

	total := observed.Total()
	if total <= 0 {
		return Fit{}, fmt.Errorf("frequency table holds no samples: %w", ErrInvalidArgument)
	}

	for key, count := range observed {
		if count > 0 && !(expected[key] > 0) {
			return Fit{}, fmt.Errorf("outcome %g observed but has zero expected probability: %w", key, ErrInvalidArgument)
		}
	}

	var obs, exp []float64
	for _, outcome := range expected.Outcomes() {
		if !(outcome.Probability > 0) {
			continue
		}
		obs = append(obs, float64(observed[outcome.Value]))
		exp = append(exp, outcome.Probability*float64(total))
	}

	fit := Fit{DegreesOfFreedom: len(exp) - 1}
	if fit.DegreesOfFreedom < 1 {
		// A single possible outcome always matches.
		fit.PValue = 1
		return fit, nil
	}

	fit.ChiSquare = stat.ChiSquare(obs, exp)
	fit.PValue = distuv.ChiSquared{K: float64(fit.DegreesOfFreedom)}.Survival(fit.ChiSquare)

	return fit, nil
}
