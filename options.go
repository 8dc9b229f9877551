package qstat

import "math/rand/v2"

// Option configures a Sampler or an Estimator.
type Option func(*settings)

type settings struct {
	config *Config
	src    rand.Source
}

func newSettings(opts []Option) *settings {
	s := &settings{config: NewConfig()}

	for _, opt := range opts {
		opt(s)
	}

	if s.src == nil {
		if s.config.Seed != 0 {
			s.src = rand.NewPCG(s.config.Seed, s.config.Seed)
		} else {
			s.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
		}
	}

	return s
}

// WithConfig replaces the defaults. Pass it before any option that tweaks
// a single setting.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		if cfg != nil {
			c := *cfg
			s.config = &c
		}
	}
}

// WithSource sets the random stream draws are taken from.
func WithSource(src rand.Source) Option {
	return func(s *settings) {
		s.src = src
	}
}

// WithSeed seeds a fresh PCG stream.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.config.Seed = seed
		s.src = rand.NewPCG(seed, seed)
	}
}

func WithKeyPrecision(decimals int) Option {
	return func(s *settings) {
		s.config.KeyPrecision = decimals
	}
}

func WithKeepEmptyOutcomes(keep bool) Option {
	return func(s *settings) {
		s.config.KeepEmptyOutcomes = keep
	}
}

func WithMaxIterations(n int) Option {
	return func(s *settings) {
		s.config.MaxIterations = n
	}
}

func WithTolerance(tol float64) Option {
	return func(s *settings) {
		s.config.Tolerance = tol
	}
}

func WithEmptyClusterPolicy(policy EmptyClusterPolicy) Option {
	return func(s *settings) {
		s.config.EmptyClusterPolicy = policy
	}
}
