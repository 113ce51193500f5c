// Package evidence builds sealed evidence packs for audit export.
package evidence

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	ackmodels "mandate/internal/acknowledgement/models"
	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/compliance"
	"mandate/internal/evidence/metrics"
	"mandate/internal/evidence/ports"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
	"mandate/pkg/platform/tx"
	"mandate/pkg/requestcontext"
)

var tracer = otel.Tracer("mandate/evidence")

type Service struct {
	store   ports.ObligationReader
	catalog ports.CourseCatalog
	acks    ports.AcknowledgementSource
	auditor ports.Auditor
	reads   tx.Unit
	policy  compliance.Policy
	workers int
	newID   func() uuid.UUID
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithPolicy(p compliance.Policy) Option {
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

// WithIDGenerator overrides pack id generation for tests.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithAuditor records every exported pack. Without one, exports are not
// audited.
func WithAuditor(a ports.Auditor) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithSnapshot reads obligations and completions inside one unit so the
// training matrix and the completion log describe the same ledger state.
func WithSnapshot(u tx.Unit) Option {
	return func(s *Service) {
		if u != nil {
			s.reads = u
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

func NewService(store ports.ObligationReader, catalog ports.CourseCatalog, acks ports.AcknowledgementSource, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: catalog,
		acks:    acks,
		policy:  compliance.DefaultPolicy(),
		workers: 1,
		newID:   uuid.New,
		logger:  zerolog.Nop(),
		reads:   direct,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func direct(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// external holds what the collaborator sections fetched, each with its own
// error so one failure leaves the others intact.
type external struct {
	courses    catalogmodels.Resolutions
	coursesErr error
	history    []catalogmodels.VersionHistoryEntry
	historyErr error
	acks       []ackmodels.Acknowledgement
	acksErr    error
}

// Build assembles and seals the evidence pack for orgID as of now. Only a
// failed read of the obligation store fails the call; collaborator failures
// are flagged on their section.
func (s *Service) Build(ctx context.Context, orgID id.OrgID, now time.Time) (*Pack, error) {
	ctx, span := tracer.Start(ctx, "evidence.Build", trace.WithAttributes(attribute.String("org_id", orgID.String())))
	defer span.End()
	start := time.Now()

	var (
		obligations []models.Obligation
		completions []models.CompletionRecord
	)
	err := s.reads(ctx, func(ctx context.Context) error {
		var err error
		if obligations, err = s.store.ListObligations(ctx, orgID); err != nil {
			s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list obligations")
			return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "obligation store unavailable")
		}
		if completions, err = s.store.ListCompletions(ctx, orgID); err != nil {
			s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list completions")
			return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "completion ledger unavailable")
		}
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, "store unavailable")
		if dErrors.CodeOf(err) != dErrors.CodeStoreUnavailable {
			err = dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "obligation store unavailable")
		}
		return nil, err
	}

	ext := s.fetchExternal(ctx, orgID, obligations)
	idx := models.NewCompletionIndex(completions)

	pack := &Pack{
		ID:          s.newID(),
		OrgID:       orgID,
		GeneratedAt: now,
		Sections: Sections{
			TrainingMatrix: s.trainingMatrix(orgID, obligations, idx, ext, now),
			CompletionLogs: completionLogs(completions),
			Overdue:        overdueList(obligations, idx, ext.courses, now),
		},
	}

	if ext.historyErr != nil {
		s.sectionFailed(orgID, SectionCourseVersionHistory, ext.historyErr)
		pack.Sections.CourseVersionHistory = CourseHistorySection{
			SectionStatus: failed("course catalog unavailable"),
			Versions:      []catalogmodels.VersionHistoryEntry{},
		}
	} else {
		pack.Sections.CourseVersionHistory = CourseHistorySection{Versions: nonNil(ext.history)}
	}

	if ext.acksErr != nil {
		s.sectionFailed(orgID, SectionPolicyAcknowledgements, ext.acksErr)
		pack.Sections.PolicyAcknowledgements = AcknowledgementSection{
			SectionStatus: failed("policy acknowledgements unavailable"),
			Records:       []ackmodels.Acknowledgement{},
		}
	} else {
		pack.Sections.PolicyAcknowledgements = AcknowledgementSection{Records: nonNil(ext.acks)}
	}

	if err := Seal(pack); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to seal evidence pack")
	}
	if err := s.recordExport(ctx, pack); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "audit unavailable")
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "audit trail unavailable")
	}

	s.metrics.ObserveBuild(time.Since(start))
	span.SetAttributes(attribute.String("pack_id", pack.ID.String()))
	s.logger.Info().
		Str("org_id", orgID.String()).
		Str("pack_id", pack.ID.String()).
		Str("content_hash", pack.ContentHash).
		Int("overdue", len(pack.Sections.Overdue.Entries)).
		Msg("evidence pack built")
	return pack, nil
}

func (s *Service) recordExport(ctx context.Context, pack *Pack) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Timestamp: pack.GeneratedAt,
		OrgID:     pack.OrgID,
		Action:    audit.ActionEvidencePackExported,
		Subject:   pack.ID.String(),
		Detail:    "sha256=" + pack.ContentHash,
		RequestID: requestcontext.RequestID(ctx),
		ActorID:   requestcontext.Subject(ctx),
	})
}

func (s *Service) fetchExternal(ctx context.Context, orgID id.OrgID, obligations []models.Obligation) external {
	var ext external
	// Goroutines never return an error; each records its own.
	var g errgroup.Group
	g.Go(func() error {
		ext.courses, ext.coursesErr = s.catalog.Resolve(ctx, orgID, compliance.UniqueRefs(obligations))
		return nil
	})
	g.Go(func() error {
		ext.history, ext.historyErr = s.catalog.VersionHistory(ctx, orgID)
		return nil
	})
	g.Go(func() error {
		ext.acks, ext.acksErr = s.acks.ListAcknowledgements(ctx, orgID)
		return nil
	})
	_ = g.Wait()

	if ext.coursesErr != nil {
		s.logger.Warn().Err(ext.coursesErr).Str("org_id", orgID.String()).Msg("course catalog unavailable, matrix built without titles")
		ext.courses = nil
	}
	return ext
}

func (s *Service) trainingMatrix(orgID id.OrgID, obligations []models.Obligation, idx models.CompletionIndex, ext external, now time.Time) TrainingMatrixSection {
	thresholds := s.policy.For(orgID)
	result := compliance.NewAggregator(compliance.WithThresholds(thresholds), compliance.WithWorkers(s.workers)).
		Aggregate(obligations, idx, ext.courses, now)
	if ext.coursesErr != nil {
		result.Warnings = append([]compliance.Warning{compliance.CatalogUnavailable()}, result.Warnings...)
	}
	return TrainingMatrixSection{
		Thresholds: thresholds,
		Matrix:     result.Matrix,
		Courses:    result.Courses,
		Org:        result.Org,
		Warnings:   result.Warnings,
	}
}

func (s *Service) sectionFailed(orgID id.OrgID, section string, err error) {
	s.metrics.IncrementSectionFailure(section)
	s.logger.Warn().Err(err).
		Str("org_id", orgID.String()).
		Str("section", section).
		Msg("evidence section unavailable")
}

// completionLogs flattens the ledger, newest first. Ties are broken by user
// and course so the pack is deterministic.
func completionLogs(records []models.CompletionRecord) CompletionLogSection {
	entries := make([]CompletionLogEntry, len(records))
	for i, r := range records {
		entries[i] = CompletionLogEntry{
			UserID:           r.UserID,
			CourseVersionRef: r.CourseVersionRef,
			CompletedAt:      r.CompletedAt,
			Score:            r.Score,
			Passed:           r.Passed,
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.After(b.CompletedAt)
		}
		if a.UserID != b.UserID {
			return a.UserID.String() < b.UserID.String()
		}
		return a.CourseVersionRef < b.CourseVersionRef
	})
	return CompletionLogSection{Entries: entries}
}

// overdueList lists every overdue obligation with whole days overdue,
// floored. Orphaned obligations are never overdue.
func overdueList(obligations []models.Obligation, idx models.CompletionIndex, courses catalogmodels.Resolutions, now time.Time) OverdueSection {
	entries := make([]OverdueEntry, 0)
	for _, c := range compliance.ClassifyAll(obligations, idx, courses, now) {
		if c.State != models.StateOverdue {
			continue
		}
		o := c.Obligation
		e := OverdueEntry{
			ObligationID:     o.ID,
			UserID:           o.ScopeUserID,
			CourseVersionRef: o.CourseVersionRef,
			Mandatory:        o.Mandatory,
			DueAt:            *o.DueAt,
			DaysOverdue:      c.DaysOverdue,
			ReminderSentAt:   o.ReminderSentAt,
		}
		if c.Course != nil {
			e.CourseTitle = c.Course.Title
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].DueAt.Equal(entries[j].DueAt) {
			return entries[i].DueAt.Before(entries[j].DueAt)
		}
		return entries[i].ObligationID.String() < entries[j].ObligationID.String()
	})
	return OverdueSection{Entries: entries}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
