// Package reminder runs reminder passes: it finds mandatory obligations that
// are overdue and not recently reminded, hands a message to the notifier,
// and stamps the obligation once the send is accepted.
//
// Delivery is at-least-once. The stamp is written after the send, so a pass
// cancelled or failing between the two re-sends that reminder next time. The
// conditional stamp keeps concurrent passes from both recording a send
// within one debounce window.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/compliance"
	"mandate/internal/notify"
	"mandate/internal/obligation/models"
	"mandate/internal/reminder/metrics"
	"mandate/internal/reminder/ports"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
	"mandate/pkg/platform/sentinel"
	"mandate/pkg/requestcontext"
)

var tracer = otel.Tracer("mandate/reminder")

const defaultLockTTL = 10 * time.Minute

type Service struct {
	store        ports.ObligationStore
	directory    ports.RecipientDirectory
	courses      ports.CourseResolver
	notifier     ports.Notifier
	auditor      ports.Auditor
	lock         ports.PassLock
	lockTTL      time.Duration
	limiter      *rate.Limiter
	deepLinkBase string
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Service)

// WithPassLock serializes passes for the same org across replicas.
func WithPassLock(lock ports.PassLock, ttl time.Duration) Option {
	return func(s *Service) {
		s.lock = lock
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithSendLimit throttles notifier sends. A non-positive limit disables it.
func WithSendLimit(perSecond float64, burst int) Option {
	return func(s *Service) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithAuditor(a ports.Auditor) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithDeepLinkBase(base string) Option {
	return func(s *Service) {
		s.deepLinkBase = base
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

func NewService(
	store ports.ObligationStore,
	directory ports.RecipientDirectory,
	courses ports.CourseResolver,
	notifier ports.Notifier,
	opts ...Option,
) *Service {
	s := &Service{
		store:     store,
		directory: directory,
		courses:   courses,
		notifier:  notifier,
		lockTTL:   defaultLockTTL,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// DueForReminder reports whether a classified obligation should be reminded
// at now. The window boundary is inclusive: a reminder sent exactly window
// ago is due again.
func DueForReminder(c compliance.Classified, now time.Time, window time.Duration) bool {
	if !c.Obligation.Mandatory || c.State != models.StateOverdue {
		return false
	}
	sent := c.Obligation.ReminderSentAt
	return sent == nil || now.Sub(*sent) >= window
}

// RunPass runs one reminder pass for orgID. Only a failed store read, a
// held pass lock, or invalid input fail the call; per-obligation problems
// are collected in the summary. On cancellation the partial summary is
// returned with the context error.
func (s *Service) RunPass(ctx context.Context, orgID id.OrgID, now time.Time, window time.Duration) (*Summary, error) {
	if window < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "debounce window must not be negative")
	}
	if orgID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "org id required")
	}

	ctx, span := tracer.Start(ctx, "reminder.RunPass", trace.WithAttributes(
		attribute.String("org_id", orgID.String()),
		attribute.String("debounce_window", window.String()),
	))
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.ObservePass(time.Since(start)) }()

	release, err := s.acquire(ctx, orgID)
	if err != nil {
		s.metrics.IncrementPass("locked")
		span.SetStatus(codes.Error, "pass lock held")
		return nil, err
	}
	defer release()

	summary, err := s.runPass(ctx, orgID, now, window)
	switch {
	case err == nil:
		s.metrics.IncrementPass("completed")
		s.record(ctx, audit.Event{
			Timestamp: now,
			OrgID:     orgID,
			Action:    audit.ActionReminderPassCompleted,
			Subject:   orgID.String(),
			Detail: fmt.Sprintf("overdue=%d sent=%d debounced=%d skipped=%d errors=%d",
				summary.TotalOverdue, summary.RemindersSent, summary.Debounced, summary.Skipped, len(summary.Errors)),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.metrics.IncrementPass("cancelled")
		span.SetStatus(codes.Error, "cancelled")
	default:
		s.metrics.IncrementPass("failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "pass failed")
	}
	if summary != nil {
		span.SetAttributes(
			attribute.Int("total_overdue", summary.TotalOverdue),
			attribute.Int("reminders_sent", summary.RemindersSent),
			attribute.Int("errors", len(summary.Errors)),
		)
	}
	return summary, err
}

func (s *Service) runPass(ctx context.Context, orgID id.OrgID, now time.Time, window time.Duration) (*Summary, error) {
	obligations, err := s.store.ListObligations(ctx, orgID)
	if err != nil {
		s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list obligations")
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "obligation store unavailable")
	}
	completions, err := s.store.ListCompletions(ctx, orgID)
	if err != nil {
		s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("failed to list completions")
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "completion ledger unavailable")
	}

	summary := &Summary{
		OrgID:          orgID,
		RanAt:          now,
		DebounceWindow: window.String(),
		Errors:         []PassError{},
	}

	// States first, catalog second: only obligations overdue by date need a
	// course. Those the catalog reports as orphaned classify as Pending, the
	// same as in the compliance report, and are never reminded.
	classified := compliance.ClassifyAll(obligations, models.NewCompletionIndex(completions), nil, now)
	overdue := make([]compliance.Classified, 0)
	for _, c := range classified {
		if c.State == models.StateOverdue {
			overdue = append(overdue, c)
		}
	}
	if len(overdue) == 0 {
		s.logPass(summary)
		return summary, nil
	}

	courses, catalogErr := s.resolveCourses(ctx, orgID, overdue)
	candidates := make([]compliance.Classified, 0, len(overdue))
	for _, c := range overdue {
		if catalogErr == nil {
			course, ok := courses.Lookup(c.Obligation.CourseVersionRef).Course()
			if !ok {
				summary.Skipped++
				s.logger.Debug().
					Str("obligation_id", c.Obligation.ID.String()).
					Str("course_version_ref", c.Obligation.CourseVersionRef.String()).
					Msg("skipping reminder for orphaned course reference")
				continue
			}
			c.Course = &course
		}
		summary.TotalOverdue++
		if !c.Obligation.Mandatory {
			continue
		}
		if !DueForReminder(c, now, window) {
			summary.Debounced++
			continue
		}
		candidates = append(candidates, c)
	}

	summary.Selected = len(candidates)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			s.logPass(summary)
			return summary, err
		}
		if catalogErr != nil {
			summary.fail(c, StageCourse, "course catalog unavailable")
			continue
		}
		if err := s.remind(ctx, orgID, c, *c.Course, now, summary); err != nil {
			s.logPass(summary)
			return summary, err
		}
	}

	s.logPass(summary)
	return summary, nil
}

// remind sends and stamps one obligation. It only returns an error when the
// context is done; everything else is recorded in the summary.
func (s *Service) remind(ctx context.Context, orgID id.OrgID, c compliance.Classified, course catalogmodels.CourseInfo, now time.Time, summary *Summary) error {
	o := c.Obligation
	log := s.logger.With().
		Str("org_id", orgID.String()).
		Str("obligation_id", o.ID.String()).
		Str("user_id", o.ScopeUserID.String()).
		Logger()

	recipient, err := s.directory.FindRecipient(ctx, orgID, o.ScopeUserID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		msg := "recipient lookup failed"
		if errors.Is(err, sentinel.ErrNotFound) {
			msg = "recipient not found"
		}
		log.Warn().Err(err).Msg(msg)
		summary.fail(c, StageRecipient, msg)
		return nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			summary.fail(c, StageThrottle, err.Error())
			return nil
		}
	}

	message := notify.Message{
		Template:     notify.TemplateOverdueReminder,
		OrgID:        orgID,
		UserID:       o.ScopeUserID,
		ObligationID: o.ID,
		Data: notify.ReminderData{
			UserName:    recipient.DisplayName,
			CourseName:  course.Title,
			DaysOverdue: c.DaysOverdue,
			DeepLink:    s.deepLink(orgID, o.CourseVersionRef),
		},
		SentAt: now,
	}
	if err := s.notifier.Send(ctx, message); err != nil {
		s.metrics.IncrementSend("failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn().Err(err).Msg("reminder send failed, will retry next pass")
		summary.fail(c, StageNotify, dErrors.Wrap(err, dErrors.CodeNotifierFailed, "notifier rejected reminder").Error())
		return nil
	}
	s.metrics.IncrementSend("sent")
	summary.RemindersSent++

	stamped, err := s.store.StampReminder(ctx, o.ID, o.ReminderSentAt, now)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("reminder sent but stamp failed, may resend next pass")
		summary.fail(c, StageStamp, "stamp failed")
	case !stamped:
		s.metrics.IncrementStaleStamp()
		summary.StaleStamps++
		log.Debug().Msg("reminder stamp stale, another pass stamped first")
	default:
		s.record(ctx, audit.Event{
			Timestamp: now,
			OrgID:     orgID,
			UserID:    o.ScopeUserID,
			Action:    audit.ActionReminderSent,
			Subject:   o.ID.String(),
			Detail:    fmt.Sprintf("course=%s days_overdue=%d", o.CourseVersionRef, c.DaysOverdue),
		})
	}
	return nil
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ActorID = requestcontext.Subject(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Str("org_id", event.OrgID.String()).
			Str("action", string(event.Action)).
			Msg("failed to record audit event")
	}
}

// RunAll runs a pass for every org with obligations. Orgs whose pass fails
// are listed in Failures and do not stop the others.
func (s *Service) RunAll(ctx context.Context, now time.Time, window time.Duration) (*BatchSummary, error) {
	if window < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "debounce window must not be negative")
	}
	orgIDs, err := s.store.ListOrgIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orgs")
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "obligation store unavailable")
	}

	batch := &BatchSummary{Passes: []Summary{}, Failures: []OrgFailure{}}
	for _, orgID := range orgIDs {
		summary, err := s.RunPass(ctx, orgID, now, window)
		if summary != nil {
			batch.Passes = append(batch.Passes, *summary)
		}
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return batch, ctxErr
		}
		s.logger.Error().Err(err).Str("org_id", orgID.String()).Msg("reminder pass failed")
		batch.Failures = append(batch.Failures, OrgFailure{OrgID: orgID, Error: err.Error()})
	}
	return batch, nil
}

// acquire takes the pass lock when one is configured. A lock backend that
// is down does not block the pass; the conditional stamp still applies.
func (s *Service) acquire(ctx context.Context, orgID id.OrgID) (func(), error) {
	noop := func() {}
	if s.lock == nil {
		return noop, nil
	}
	token, ok, err := s.lock.Acquire(ctx, orgID, s.lockTTL)
	if err != nil {
		s.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("pass lock unavailable, running unlocked")
		return noop, nil
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("reminder pass already running for org %s", orgID))
	}
	return func() {
		// The pass context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := s.lock.Release(releaseCtx, orgID, token); err != nil {
			s.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("failed to release pass lock")
		}
	}, nil
}

func (s *Service) resolveCourses(ctx context.Context, orgID id.OrgID, candidates []compliance.Classified) (catalogmodels.Resolutions, error) {
	obligations := make([]models.Obligation, len(candidates))
	for i, c := range candidates {
		obligations[i] = c.Obligation
	}
	res, err := s.courses.Resolve(ctx, orgID, compliance.UniqueRefs(obligations))
	if err != nil {
		s.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("course catalog unavailable, reminders deferred")
		return nil, err
	}
	return res, nil
}

func (s *Service) deepLink(orgID id.OrgID, ref id.CourseVersionRef) string {
	if s.deepLinkBase == "" {
		return ""
	}
	link, err := url.JoinPath(s.deepLinkBase, "orgs", orgID.String(), "training", ref.String())
	if err != nil {
		return ""
	}
	return link
}

func (s *Service) logPass(summary *Summary) {
	s.logger.Info().
		Str("org_id", summary.OrgID.String()).
		Int("total_overdue", summary.TotalOverdue).
		Int("selected", summary.Selected).
		Int("reminders_sent", summary.RemindersSent).
		Int("debounced", summary.Debounced).
		Int("skipped", summary.Skipped).
		Int("stale_stamps", summary.StaleStamps).
		Int("errors", len(summary.Errors)).
		Msg("reminder pass finished")
}

func (s *Summary) fail(c compliance.Classified, stage Stage, message string) {
	s.Errors = append(s.Errors, PassError{
		ObligationID: c.Obligation.ID,
		UserID:       c.Obligation.ScopeUserID,
		Stage:        stage,
		Message:      message,
	})
}
