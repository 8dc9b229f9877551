package qstat

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Observable is a named operator to measure in a batch.
type Observable struct {
	Name     string
	Operator mat.CMatrix
}

type measureJob struct {
	observable Observable
	src        rand.Source
}

/*
MeasureBatch measures the same state against several observables
concurrently, at most BatchConcurrency at a time. Every job gets its own
PCG stream, seeded from the sampler's stream before any job starts, so a
seeded sampler gives the same tables regardless of scheduling.
*/
func (s *Sampler) MeasureBatch(
	ctx context.Context, state mat.CMatrix, observables []Observable, samples int,
) (map[string]FrequencyTable, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d: %w", samples, ErrInvalidArgument)
	}

	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]measureJob, len(observables))
	seen := make(map[string]bool, len(observables))
	for i, obs := range observables {
		if obs.Name == "" {
			return nil, fmt.Errorf("observable %d has no name: %w", i, ErrInvalidArgument)
		}
		if seen[obs.Name] {
			return nil, fmt.Errorf("duplicate observable %q: %w", obs.Name, ErrInvalidArgument)
		}
		seen[obs.Name] = true

		jobs[i] = measureJob{
			observable: obs,
			src:        rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()),
		}
	}

	errnie.Info("MeasureBatch - observables %v, samples %v", len(jobs), samples)

	results := make([]FrequencyTable, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.BatchConcurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			worker := &Sampler{config: s.config, src: job.src, rng: rand.New(job.src)}
			table, err := worker.Measure(state, job.observable.Operator, samples)
			if err != nil {
				return fmt.Errorf("measuring %s: %w", job.observable.Name, err)
			}

			results[i] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]FrequencyTable, len(jobs))
	for i, job := range jobs {
		out[job.observable.Name] = results[i]
	}

	return out, nil
}
