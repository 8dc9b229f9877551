package qstat

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EmptyClusterPolicy decides what the estimator does when one of the two
// means ends up with no points assigned to it.
type EmptyClusterPolicy int

const (
	// FailFast aborts the estimation with ErrDegenerateCluster.
	FailFast EmptyClusterPolicy = iota
	// Reseed moves the empty mean onto a randomly drawn point and keeps going.
	Reseed
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case FailFast:
		return "fail"
	case Reseed:
		return "reseed"
	default:
		return fmt.Sprintf("EmptyClusterPolicy(%d)", int(p))
	}
}

func parseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail", "failfast":
		return FailFast, nil
	case "reseed":
		return Reseed, nil
	default:
		return FailFast, fmt.Errorf("unknown empty cluster policy %q: %w", s, ErrInvalidArgument)
	}
}

type Config struct {
	// KeyPrecision is the number of decimal places eigenvalues are rounded to
	// before they become frequency table keys.
	KeyPrecision int
	// NormTolerance bounds how far the Born probabilities may sum away from 1.
	NormTolerance float64
	// HermitianTolerance bounds |A_ij - conj(A_ji)| for an observable.
	HermitianTolerance float64
	// KeepEmptyOutcomes keeps eigenvalues that were never drawn in the table
	// with a zero count.
	KeepEmptyOutcomes bool

	MaxIterations      int
	Tolerance          float64
	EmptyClusterPolicy EmptyClusterPolicy

	// Seed seeds a PCG stream when non-zero.
	Seed             uint64
	BatchConcurrency int
}

func NewConfig() *Config {
	return &Config{
		KeyPrecision:       6,
		NormTolerance:      1e-6,
		HermitianTolerance: 1e-9,
		MaxIterations:      100,
		Tolerance:          1e-4,
		EmptyClusterPolicy: FailFast,
		BatchConcurrency:   4,
	}
}

/*
LoadConfig builds a Config from the defaults, an optional config file and
QSTAT_* environment variables, in increasing order of precedence.
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetDefault("key_precision", defaults.KeyPrecision)
	v.SetDefault("norm_tolerance", defaults.NormTolerance)
	v.SetDefault("hermitian_tolerance", defaults.HermitianTolerance)
	v.SetDefault("keep_empty_outcomes", defaults.KeepEmptyOutcomes)
	v.SetDefault("max_iterations", defaults.MaxIterations)
	v.SetDefault("tolerance", defaults.Tolerance)
	v.SetDefault("empty_cluster_policy", defaults.EmptyClusterPolicy.String())
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("batch_concurrency", defaults.BatchConcurrency)

	v.SetEnvPrefix("qstat")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	policy, err := parseEmptyClusterPolicy(v.GetString("empty_cluster_policy"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KeyPrecision:       v.GetInt("key_precision"),
		NormTolerance:      v.GetFloat64("norm_tolerance"),
		HermitianTolerance: v.GetFloat64("hermitian_tolerance"),
		KeepEmptyOutcomes:  v.GetBool("keep_empty_outcomes"),
		MaxIterations:      v.GetInt("max_iterations"),
		Tolerance:          v.GetFloat64("tolerance"),
		EmptyClusterPolicy: policy,
		Seed:               v.GetUint64("seed"),
		BatchConcurrency:   v.GetInt("batch_concurrency"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.KeyPrecision < 0 || c.KeyPrecision > 15:
		return fmt.Errorf("key precision %d out of range [0, 15]: %w", c.KeyPrecision, ErrInvalidArgument)
	case !(c.NormTolerance > 0):
		return fmt.Errorf("norm tolerance must be positive: %w", ErrInvalidArgument)
	case !(c.HermitianTolerance > 0):
		return fmt.Errorf("hermitian tolerance must be positive: %w", ErrInvalidArgument)
	case c.MaxIterations <= 0:
		return fmt.Errorf("max iterations must be positive, got %d: %w", c.MaxIterations, ErrInvalidArgument)
	case !(c.Tolerance > 0):
		return fmt.Errorf("tolerance must be positive: %w", ErrInvalidArgument)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("batch concurrency must be positive, got %d: %w", c.BatchConcurrency, ErrInvalidArgument)
	}
	return nil
}
