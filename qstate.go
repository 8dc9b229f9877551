package qstat

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

/*
FrequencyTable maps a rounded eigenvalue to the number of times it was
measured. A table returned by Measure is never modified afterwards.
*/
type FrequencyTable map[float64]int

// Total returns the number of samples in the table.
func (t FrequencyTable) Total() int {
	var total int
	for _, count := range t {
		total += count
	}
	return total
}

// Keys returns the eigenvalues in ascending order.
func (t FrequencyTable) Keys() []float64 {
	keys := make([]float64, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Float64s(keys)
	return keys
}

/*
Sampler simulates repeated projective measurements of a density matrix
against an observable. A Sampler owns its random stream and must not be
shared between goroutines; use MeasureBatch for concurrent work.
*/
type Sampler struct {
	config *Config
	src    rand.Source
	rng    *rand.Rand
}

func NewSampler(opts ...Option) *Sampler {
	s := newSettings(opts)

	errnie.Info(
		"NewSampler - keyPrecision %v, normTolerance %v, keepEmptyOutcomes %v",
		s.config.KeyPrecision,
		s.config.NormTolerance,
		s.config.KeepEmptyOutcomes,
	)

	return &Sampler{
		config: s.config,
		src:    s.src,
		rng:    rand.New(s.src),
	}
}

/*
Measure draws samples independent outcomes of observing observable on state
and counts them per eigenvalue. Eigenvalues that were never drawn are left
out of the table unless KeepEmptyOutcomes is set.
*/
func (s *Sampler) Measure(state, observable mat.CMatrix, samples int) (FrequencyTable, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d: %w", samples, ErrInvalidArgument)
	}

	spectrum, probs, err := s.prepare(state, observable)
	if err != nil {
		return nil, err
	}

	categorical := distuv.NewCategorical(probs, s.src)
	draws := make([]int, len(spectrum))
	for i := 0; i < samples; i++ {
		draws[int(categorical.Rand())]++
	}

	table := make(FrequencyTable, len(spectrum))
	for k, e := range spectrum {
		if draws[k] == 0 && !s.config.KeepEmptyOutcomes {
			continue
		}
		table[roundKey(e.Value, s.config.KeyPrecision)] += draws[k]
	}

	return table, nil
}

// Distribution returns the Born-rule prediction Measure samples from.
func (s *Sampler) Distribution(state, observable mat.CMatrix) (Distribution, error) {
	spectrum, probs, err := s.prepare(state, observable)
	if err != nil {
		return nil, err
	}

	dist := make(Distribution, len(spectrum))
	for k, e := range spectrum {
		dist[roundKey(e.Value, s.config.KeyPrecision)] += probs[k]
	}

	return dist, nil
}

func (s *Sampler) prepare(state, observable mat.CMatrix) (Spectrum, []float64, error) {
	if err := s.config.Validate(); err != nil {
		return nil, nil, err
	}

	spectrum, err := Diagonalize(observable, s.config.HermitianTolerance)
	if err != nil {
		return nil, nil, err
	}

	probs, err := spectrum.BornProbabilities(state, s.config.NormTolerance)
	if err != nil {
		return nil, nil, err
	}

	return spectrum, probs, nil
}

// roundKey rounds an eigenvalue to the given number of decimals so that
// values differing only by floating point noise share a key.
func roundKey(value float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	key := math.Round(value*scale) / scale
	if key == 0 {
		return 0
	}
	return key
}
