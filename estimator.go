package qstat

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/spatial/r2"
)

// Estimate is the outcome of a run of the mean estimator.
type Estimate struct {
	Mean1      r2.Vec
	Mean2      r2.Vec
	Iterations int
	// Converged is false when the iteration budget ran out first.
	Converged bool
}

/*
Estimator recovers the means of two spherical Gaussian populations from
unlabeled points by hard-assignment iteration (Lloyd's algorithm with two
centers). It is not a full expectation-maximization: assignments are
nearest-mean only and no covariance is estimated.
*/
type Estimator struct {
	config *Config
	rng    *rand.Rand
}

func NewEstimator(opts ...Option) *Estimator {
	s := newSettings(opts)

	errnie.Info(
		"NewEstimator - maxIterations %v, tolerance %v, emptyClusterPolicy %v",
		s.config.MaxIterations,
		s.config.Tolerance,
		s.config.EmptyClusterPolicy,
	)

	return &Estimator{
		config: s.config,
		rng:    rand.New(s.src),
	}
}

/*
EstimateMeans runs a fresh Estimator over points. Both means start on
independently drawn points, so with the default FailFast policy roughly one
run in len(points) starts with identical means and returns
ErrDegenerateCluster. Use Reseed, or retry, when that matters.
*/
func EstimateMeans(points []r2.Vec, opts ...Option) (r2.Vec, r2.Vec, error) {
	return NewEstimator(opts...).EstimateMeans(points)
}

// EstimateMeans returns only the two means of Estimate.
func (e *Estimator) EstimateMeans(points []r2.Vec) (r2.Vec, r2.Vec, error) {
	est, err := e.Estimate(points)
	if err != nil {
		return r2.Vec{}, r2.Vec{}, err
	}
	return est.Mean1, est.Mean2, nil
}

/*
Estimate seeds both means with uniformly drawn points, then alternates
nearest-mean assignment and mean recomputation. It stops when neither mean
moves by Tolerance or more, or after MaxIterations rounds. Ties in distance
go to the first mean.
*/
func (e *Estimator) Estimate(points []r2.Vec) (Estimate, error) {
	if err := e.validate(points); err != nil {
		return Estimate{}, err
	}

	n := len(points)
	mean1 := points[e.rng.IntN(n)]
	mean2 := points[e.rng.IntN(n)]

	for iteration := 1; iteration <= e.config.MaxIterations; iteration++ {
		var sum1, sum2 r2.Vec
		var count1, count2 int

		for _, p := range points {
			if r2.Norm(r2.Sub(p, mean1)) <= r2.Norm(r2.Sub(p, mean2)) {
				sum1 = r2.Add(sum1, p)
				count1++
			} else {
				sum2 = r2.Add(sum2, p)
				count2++
			}
		}

		next1, reseeded1, err := e.update(sum1, count1, points, iteration, 1)
		if err != nil {
			return Estimate{}, err
		}
		next2, reseeded2, err := e.update(sum2, count2, points, iteration, 2)
		if err != nil {
			return Estimate{}, err
		}

		converged := !reseeded1 && !reseeded2 &&
			r2.Norm(r2.Sub(next1, mean1)) < e.config.Tolerance &&
			r2.Norm(r2.Sub(next2, mean2)) < e.config.Tolerance

		mean1, mean2 = next1, next2

		if converged {
			errnie.Info("Estimate - converged after %v iterations", iteration)
			return Estimate{Mean1: mean1, Mean2: mean2, Iterations: iteration, Converged: true}, nil
		}
	}

	errnie.Info("Estimate - no convergence within %v iterations", e.config.MaxIterations)
	return Estimate{Mean1: mean1, Mean2: mean2, Iterations: e.config.MaxIterations}, nil
}

// update turns a cluster sum into its mean, applying the empty cluster
// policy when nothing was assigned.
func (e *Estimator) update(sum r2.Vec, count int, points []r2.Vec, iteration, cluster int) (r2.Vec, bool, error) {
	if count > 0 {
		return r2.Scale(1/float64(count), sum), false, nil
	}

	if e.config.EmptyClusterPolicy == Reseed {
		return points[e.rng.IntN(len(points))], true, nil
	}

	return r2.Vec{}, false, fmt.Errorf(
		"cluster %d has no points at iteration %d: %w", cluster, iteration, ErrDegenerateCluster,
	)
}

func (e *Estimator) validate(points []r2.Vec) error {
	if len(points) == 0 {
		return fmt.Errorf("point cloud is empty: %w", ErrInvalidArgument)
	}

	if e.config.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d: %w", e.config.MaxIterations, ErrInvalidArgument)
	}

	if !(e.config.Tolerance > 0) || math.IsInf(e.config.Tolerance, 0) {
		return fmt.Errorf("tolerance must be positive and finite, got %g: %w", e.config.Tolerance, ErrInvalidArgument)
	}

	for i, p := range points {
		if !isFinite(p) {
			return fmt.Errorf("point %d is not finite: %w", i, ErrInvalidArgument)
		}
	}

	return nil
}

func isFinite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
