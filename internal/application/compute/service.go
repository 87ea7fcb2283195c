// Package compute provides the application-level service for descriptor
// computation. It sits between the transport handlers (HTTP, Kafka, CLI)
// and the domain calculators, adding input bounds, structured logging and
// metrics; the service itself is stateless and safe for concurrent use.
package compute

import (
	"context"
	"time"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/fingerprint"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// Config bounds what a single request may ask of the service.
type Config struct {
	// MaxBatchSize caps the number of molecules per batch request.
	MaxBatchSize int

	// MaxAtoms caps the size of a single molecule.
	MaxAtoms int

	// FingerprintSize is the default bit length for similarity requests
	// that do not specify one.
	FingerprintSize int

	// FingerprintDepth is the default path depth for path fingerprints.
	FingerprintDepth int

	// EnvironmentRadius is the default radius for environment fingerprints.
	EnvironmentRadius int
}

// applyDefaults fills unset limits with the service defaults.
func (c *Config) applyDefaults() {
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 100
	}
	if c.MaxAtoms <= 0 {
		c.MaxAtoms = 10000
	}
	if c.FingerprintSize <= 0 {
		c.FingerprintSize = 1024
	}
	if c.FingerprintDepth <= 0 {
		c.FingerprintDepth = 7
	}
	if c.EnvironmentRadius <= 0 {
		c.EnvironmentRadius = 2
	}
}

// SimilarityParams selects the fingerprint and metric for one similarity
// call. Zero values fall back to the service defaults: a path fingerprint
// of the configured size and depth compared with Tanimoto.
type SimilarityParams struct {
	Kind   fingerprint.Kind
	Size   int
	Extent int // path depth or environment radius, per Kind
	Metric fingerprint.Metric
}

// BatchItem is the per-molecule outcome of a batch computation. Exactly
// one of Profile and Err is set.
type BatchItem struct {
	Index   int
	Profile *descriptor.Profile
	Err     error
}

// Service orchestrates descriptor computation.
type Service struct {
	cfg     Config
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewService builds a compute service. The metrics recorder may be nil.
func NewService(cfg Config, logger logging.Logger, metrics *prometheus.AppMetrics) *Service {
	cfg.applyDefaults()
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{cfg: cfg, logger: logger.Named("compute"), metrics: metrics}
}

// Config returns the effective limits after defaulting.
func (s *Service) Config() Config {
	return s.cfg
}

// checkMolecule rejects nil and oversized molecules before any computation.
func (s *Service) checkMolecule(m *graph.Molecule) error {
	if m == nil {
		return errors.New(errors.ErrCodeValidation, "molecule required")
	}
	if m.AtomCount() > s.cfg.MaxAtoms {
		return errors.New(errors.ErrCodeMoleculeTooLarge, "molecule exceeds the configured atom limit").
			WithDetailf("atoms=%d limit=%d", m.AtomCount(), s.cfg.MaxAtoms)
	}
	return nil
}

// Profile computes every scalar descriptor for one molecule.
func (s *Service) Profile(ctx context.Context, m *graph.Molecule) (*descriptor.Profile, error) {
	if err := s.checkMolecule(m); err != nil {
		return nil, err
	}

	start := time.Now()
	profile, err := descriptor.ComputeProfile(m)
	s.observe("profile", m.AtomCount(), start, err)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorFailed, "profile computation failed").
			WithDetail("molecule=" + m.Name())
	}

	s.logger.Debug("profile computed",
		logging.String("molecule", m.Name()),
		logging.Int("atoms", m.AtomCount()),
		logging.Int("acceptors", profile.Acceptors),
		logging.Duration("elapsed", time.Since(start)))
	return profile, nil
}

// Acceptors counts hydrogen-bond acceptors for one molecule.
func (s *Service) Acceptors(ctx context.Context, m *graph.Molecule) (int, error) {
	if err := s.checkMolecule(m); err != nil {
		return 0, err
	}
	start := time.Now()
	count := descriptor.AcceptorCount(m)
	s.observe("acceptors", m.AtomCount(), start, nil)
	return count, nil
}

// Whim computes the 3D shape descriptors under each requested weighting
// scheme. An empty scheme list defaults to unity.
func (s *Service) Whim(ctx context.Context, m *graph.Molecule, schemes []whim.Scheme) (map[whim.Scheme]*whim.Result, error) {
	if err := s.checkMolecule(m); err != nil {
		return nil, err
	}
	if len(schemes) == 0 {
		schemes = []whim.Scheme{whim.SchemeUnity}
	}

	start := time.Now()
	results, err := whim.CalculateAll(m, schemes)
	s.observe("whim", m.AtomCount(), start, err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("whim computed",
		logging.String("molecule", m.Name()),
		logging.Int("schemes", len(schemes)),
		logging.Duration("elapsed", time.Since(start)))
	return results, nil
}

// Similarity fingerprints both molecules with identical parameters and
// compares them under the requested metric.
func (s *Service) Similarity(ctx context.Context, a, b *graph.Molecule, params SimilarityParams) (float64, error) {
	if err := s.checkMolecule(a); err != nil {
		return 0, err
	}
	if err := s.checkMolecule(b); err != nil {
		return 0, err
	}

	if params.Kind == "" {
		params.Kind = fingerprint.KindPath
	}
	if params.Size <= 0 {
		params.Size = s.cfg.FingerprintSize
	}
	if params.Extent <= 0 {
		switch params.Kind {
		case fingerprint.KindEnvironment:
			params.Extent = s.cfg.EnvironmentRadius
		default:
			params.Extent = s.cfg.FingerprintDepth
		}
	}
	if params.Metric == "" {
		params.Metric = fingerprint.MetricTanimoto
	}

	start := time.Now()
	score, err := s.similarity(a, b, params)
	s.observe("similarity", a.AtomCount()+b.AtomCount(), start, err)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("similarity computed",
		logging.String("kind", params.Kind.String()),
		logging.String("metric", params.Metric.String()),
		logging.Float64("score", score))
	return score, nil
}

func (s *Service) similarity(a, b *graph.Molecule, params SimilarityParams) (float64, error) {
	fpA, err := fingerprint.Compute(a, params.Kind, params.Size, params.Extent)
	if err != nil {
		return 0, err
	}
	fpB, err := fingerprint.Compute(b, params.Kind, params.Size, params.Extent)
	if err != nil {
		return 0, err
	}
	return fingerprint.Compare(params.Metric, fpA, fpB)
}

// ProfileBatch computes profiles for up to MaxBatchSize molecules. Items
// are independent: one failing molecule carries its error in the returned
// slice without affecting the others. The call itself fails only for an
// empty or oversized batch, or context cancellation.
func (s *Service) ProfileBatch(ctx context.Context, mols []*graph.Molecule) ([]BatchItem, error) {
	if len(mols) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "batch must not be empty")
	}
	if len(mols) > s.cfg.MaxBatchSize {
		return nil, errors.New(errors.ErrCodeValidation, "batch exceeds the configured size limit").
			WithDetailf("size=%d limit=%d", len(mols), s.cfg.MaxBatchSize)
	}

	start := time.Now()
	items := make([]BatchItem, len(mols))
	failed := 0
	for i, m := range mols {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTimeout, "batch computation cancelled").
				WithDetailf("completed=%d total=%d", i, len(mols))
		}
		profile, err := s.Profile(ctx, m)
		items[i] = BatchItem{Index: i, Profile: profile, Err: err}
		if err != nil {
			failed++
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveBatchSize("profile", len(mols))
	}

	s.logger.Info("batch computed",
		logging.Int("molecules", len(mols)),
		logging.Int("failed", failed),
		logging.Duration("elapsed", time.Since(start)))
	return items, nil
}

func (s *Service) observe(descriptorName string, atoms int, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCompute(descriptorName, atoms, time.Since(start), err)
}
