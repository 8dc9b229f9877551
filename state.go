package qstat

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

/*
Outcome is one possible measurement result together with its Born
probability.
*/
type Outcome struct {
	Value       float64
	Probability float64
}

/*
Distribution maps a rounded eigenvalue to the total probability of
measuring it. Degenerate eigenvalues share one entry.
*/
type Distribution map[float64]float64

// Outcomes returns the distribution as a slice ordered by ascending value.
func (d Distribution) Outcomes() []Outcome {
	outcomes := make([]Outcome, 0, len(d))
	for value, p := range d {
		outcomes = append(outcomes, Outcome{Value: value, Probability: p})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Value < outcomes[j].Value
	})
	return outcomes
}

/*
normalizeProbabilities ensures probabilities sum to 1.0
*/
func normalizeProbabilities(probs []float64) {
	if total := floats.Sum(probs); total > 0 {
		floats.Scale(1/total, probs)
	}
}

// Total returns the summed probability of the distribution.
func (d Distribution) Total() float64 {
	probs := make([]float64, 0, len(d))
	for _, p := range d {
		probs = append(probs, p)
	}
	return floats.Sum(probs)
}
