package compliance

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/compliance/metrics"
	"mandate/internal/compliance/ports"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
)

var tracer = otel.Tracer("mandate/compliance")

// Service builds compliance reports from the obligation store.
type Service struct {
	store   ports.ObligationReader
	courses ports.CourseResolver
	policy  Policy
	workers int
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithCourseResolver enables orphan detection and course titles. Without it
// only malformed references are treated as orphaned.
func WithCourseResolver(r ports.CourseResolver) Option {
	return func(s *Service) {
		s.courses = r
	}
}

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func WithAggregationWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store ports.ObligationReader, opts ...Option) *Service {
	s := &Service{
		store:   store,
		policy:  DefaultPolicy(),
		workers: 1,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Report builds the org's training matrix, course rows, and summary as of
// now. Only a failed read of the obligation store fails the call; catalog
// trouble is reported as a warning.
func (s *Service) Report(ctx context.Context, orgID id.OrgID, now time.Time) (*Report, error) {
	ctx, span := tracer.Start(ctx, "compliance.Report", trace.WithAttributes(attribute.String("org_id", orgID.String())))
	defer span.End()

	obligations, idx, err := s.snapshot(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store unavailable")
		return nil, err
	}

	courses, warn := s.resolveCourses(ctx, orgID, obligations)

	thresholds := s.policy.For(orgID)
	start := time.Now()
	result := NewAggregator(WithThresholds(thresholds), WithWorkers(s.workers)).
		Aggregate(obligations, idx, courses, now)
	s.metrics.ObserveAggregation(time.Since(start))

	if warn != nil {
		result.Warnings = append([]Warning{*warn}, result.Warnings...)
	}
	for _, w := range result.Warnings {
		s.metrics.IncrementWarning(string(w.Kind))
	}
	s.metrics.IncrementReport(string(result.Org.ComplianceStatus))

	span.SetAttributes(
		attribute.Int("obligations", len(obligations)),
		attribute.Int("warnings", len(result.Warnings)),
		attribute.String("status", string(result.Org.ComplianceStatus)),
	)
	s.logger.Debug().
		Str("org_id", orgID.String()).
		Int("obligations", len(obligations)).
		Int("completion_rate", result.Org.CompletionRate).
		Str("status", string(result.Org.ComplianceStatus)).
		Msg("compliance report built")

	return &Report{
		OrgID:       orgID,
		GeneratedAt: now,
		Thresholds:  thresholds,
		Result:      result,
	}, nil
}

// UserObligations classifies one user's obligations, overdue first by due
// date, then pending, then completed.
func (s *Service) UserObligations(ctx context.Context, orgID id.OrgID, userID id.UserID, now time.Time) ([]Classified, error) {
	ctx, span := tracer.Start(ctx, "compliance.UserObligations", trace.WithAttributes(
		attribute.String("org_id", orgID.String()),
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	obligations, idx, err := s.snapshot(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	mine := make([]models.Obligation, 0)
	for _, o := range obligations {
		if o.ScopeUserID == userID {
			mine = append(mine, o)
		}
	}
	courses, _ := s.resolveCourses(ctx, orgID, mine)

	out := ClassifyAll(mine, idx, courses, now)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := stateRank(out[i].State), stateRank(out[j].State)
		if ri != rj {
			return ri < rj
		}
		return dueBefore(out[i].Obligation.DueAt, out[j].Obligation.DueAt)
	})
	return out, nil
}

func (s *Service) snapshot(ctx context.Context, orgID id.OrgID) ([]models.Obligation, models.CompletionIndex, error) {
	obligations, err := s.store.ListObligations(ctx, orgID)
	if err != nil {
		s.metrics.IncrementStoreFailure()
		s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list obligations")
		return nil, nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "obligation store unavailable")
	}
	completions, err := s.store.ListCompletions(ctx, orgID)
	if err != nil {
		s.metrics.IncrementStoreFailure()
		s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list completions")
		return nil, nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "completion ledger unavailable")
	}
	return obligations, models.NewCompletionIndex(completions), nil
}

// resolveCourses returns nil resolutions and a warning when the catalog fails.
func (s *Service) resolveCourses(ctx context.Context, orgID id.OrgID, obligations []models.Obligation) (catalogmodels.Resolutions, *Warning) {
	if s.courses == nil {
		return nil, nil
	}
	refs := UniqueRefs(obligations)
	res, err := s.courses.Resolve(ctx, orgID, refs)
	if err != nil {
		s.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("course catalog unavailable, skipping orphan detection")
		w := CatalogUnavailable()
		return nil, &w
	}
	return res, nil
}

// UniqueRefs returns the distinct well-formed course references, sorted.
func UniqueRefs(obligations []models.Obligation) []id.CourseVersionRef {
	seen := make(map[id.CourseVersionRef]struct{}, len(obligations))
	refs := make([]id.CourseVersionRef, 0)
	for _, o := range obligations {
		if !o.CourseVersionRef.Valid() {
			continue
		}
		if _, ok := seen[o.CourseVersionRef]; ok {
			continue
		}
		seen[o.CourseVersionRef] = struct{}{}
		refs = append(refs, o.CourseVersionRef)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

func stateRank(s models.State) int {
	switch s {
	case models.StateOverdue:
		return 0
	case models.StatePending:
		return 1
	default:
		return 2
	}
}

// dueBefore orders by due date with undated obligations last.
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
