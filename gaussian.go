package qstat

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distmv"
)

/*
SampleSphericalGaussians draws n1 points from N(mu1, I) and n2 points from
N(mu2, I). It is a data source for the estimator, not part of it.
*/
func SampleSphericalGaussians(mu1, mu2 r2.Vec, n1, n2 int, src rand.Source) ([]r2.Vec, []r2.Vec, error) {
	if !isFinite(mu1) || !isFinite(mu2) {
		return nil, nil, fmt.Errorf("means must be finite: %w", ErrInvalidArgument)
	}

	if n1 <= 0 || n2 <= 0 {
		return nil, nil, fmt.Errorf("sample sizes must be positive, got %d and %d: %w", n1, n2, ErrInvalidArgument)
	}

	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	x1, err := sampleSpherical(mu1, n1, src)
	if err != nil {
		return nil, nil, err
	}

	x2, err := sampleSpherical(mu2, n2, src)
	if err != nil {
		return nil, nil, err
	}

	return x1, x2, nil
}

func sampleSpherical(mu r2.Vec, n int, src rand.Source) ([]r2.Vec, error) {
	cov := mat.NewSymDense(2, []float64{
		1, 0,
		0, 1,
	})

	normal, ok := distmv.NewNormal([]float64{mu.X, mu.Y}, cov, src)
	if !ok {
		return nil, fmt.Errorf("covariance is not positive definite: %w", ErrInvalidArgument)
	}

	points := make([]r2.Vec, n)
	draw := make([]float64, 2)
	for i := range points {
		normal.Rand(draw)
		points[i] = r2.Vec{X: draw[0], Y: draw[1]}
	}

	return points, nil
}
