package compliance

import (
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
)

// minPartition is the smallest slice worth handing to its own goroutine.
const minPartition = 256

// Aggregator folds classified obligations into the training matrix, course
// rows, and org summary. It is pure: the same snapshot and now always give
// the same Result, whatever the input order.
type Aggregator struct {
	thresholds Thresholds
	workers    int
}

type AggregatorOption func(*Aggregator)

func WithThresholds(t Thresholds) AggregatorOption {
	return func(a *Aggregator) {
		a.thresholds = t
	}
}

// WithWorkers sets how many partitions a large snapshot is split into.
func WithWorkers(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{thresholds: DefaultThresholds(), workers: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate classifies with the default thresholds and no catalog context.
func Aggregate(obligations []models.Obligation, idx models.CompletionIndex, now time.Time) Result {
	return NewAggregator().Aggregate(obligations, idx, nil, now)
}

// Aggregate deduplicates, classifies, and folds the snapshot. courses may be
// nil when no catalog is available.
func (a *Aggregator) Aggregate(obligations []models.Obligation, idx models.CompletionIndex, courses catalogmodels.Resolutions, now time.Time) Result {
	kept, dropped := Dedupe(obligations)

	parts := a.partition(kept)
	partials := make([]*partial, len(parts))
	if len(parts) == 1 {
		partials[0] = foldAll(parts[0], idx, courses, now)
	} else {
		var g errgroup.Group
		for i, part := range parts {
			g.Go(func() error {
				partials[i] = foldAll(part, idx, courses, now)
				return nil
			})
		}
		_ = g.Wait()
	}

	total := newPartial()
	for _, p := range partials {
		total.merge(p)
	}
	for _, d := range dropped {
		total.warnings = append(total.warnings, Warning{
			Kind:             WarningDuplicate,
			ObligationID:     d.ID.String(),
			UserID:           d.ScopeUserID.String(),
			CourseVersionRef: string(d.CourseVersionRef),
			Message:          "duplicate obligation ignored; a newer one exists for the same user and course version",
		})
	}
	return total.result(a.thresholds)
}

func (a *Aggregator) partition(obligations []models.Obligation) [][]models.Obligation {
	n := a.workers
	if limit := len(obligations) / minPartition; n > limit {
		n = limit
	}
	if n <= 1 {
		return [][]models.Obligation{obligations}
	}
	size := (len(obligations) + n - 1) / n
	parts := make([][]models.Obligation, 0, n)
	for start := 0; start < len(obligations); start += size {
		end := min(start+size, len(obligations))
		parts = append(parts, obligations[start:end])
	}
	return parts
}

// CompletionRate is completed/assigned as a whole percent, rounded half up
// and clamped to 0..100. Zero assigned yields 0.
func CompletionRate(completed, assigned int) int {
	if assigned <= 0 || completed <= 0 {
		return 0
	}
	rate := (completed*200 + assigned) / (2 * assigned)
	return min(rate, 100)
}

type tally struct {
	assigned  int
	completed int
	overdue   int
	pending   int
	orphaned  int
}

func (t *tally) add(o tally) {
	t.assigned += o.assigned
	t.completed += o.completed
	t.overdue += o.overdue
	t.pending += o.pending
	t.orphaned += o.orphaned
}

func (t *tally) count(s models.State) {
	t.assigned++
	switch s {
	case models.StateCompleted:
		t.completed++
	case models.StateOverdue:
		t.overdue++
	default:
		t.pending++
	}
}

type courseTally struct {
	tally
	info *catalogmodels.CourseInfo
}

// partial is an associative fold over a subset of obligations.
type partial struct {
	users    map[id.UserID]*tally
	courses  map[id.CourseVersionRef]*courseTally
	total    tally
	warnings []Warning
}

func newPartial() *partial {
	return &partial{
		users:   make(map[id.UserID]*tally),
		courses: make(map[id.CourseVersionRef]*courseTally),
	}
}

func foldAll(obligations []models.Obligation, idx models.CompletionIndex, courses catalogmodels.Resolutions, now time.Time) *partial {
	p := newPartial()
	for _, o := range obligations {
		p.fold(classifyOne(o, idx, courses, now))
	}
	return p
}

func (p *partial) user(userID id.UserID) *tally {
	t, ok := p.users[userID]
	if !ok {
		t = &tally{}
		p.users[userID] = t
	}
	return t
}

func (p *partial) fold(c Classified) {
	o := c.Obligation
	u := p.user(o.ScopeUserID)
	u.count(c.State)
	p.total.count(c.State)

	if c.Orphaned {
		u.orphaned++
		p.total.orphaned++
		kind, msg := WarningOrphanedReference, "course version no longer resolvable; excluded from course statistics"
		if !o.CourseVersionRef.Valid() {
			kind, msg = WarningInvalidReference, "malformed course version reference; excluded from course statistics"
		}
		p.warnings = append(p.warnings, Warning{
			Kind:             kind,
			ObligationID:     o.ID.String(),
			UserID:           o.ScopeUserID.String(),
			CourseVersionRef: string(o.CourseVersionRef),
			Message:          msg,
		})
		return
	}

	ct, ok := p.courses[o.CourseVersionRef]
	if !ok {
		ct = &courseTally{info: c.Course}
		p.courses[o.CourseVersionRef] = ct
	}
	ct.count(c.State)
}

func (p *partial) merge(o *partial) {
	for userID, t := range o.users {
		p.user(userID).add(*t)
	}
	for ref, ct := range o.courses {
		cur, ok := p.courses[ref]
		if !ok {
			cur = &courseTally{info: ct.info}
			p.courses[ref] = cur
		}
		if cur.info == nil {
			cur.info = ct.info
		}
		cur.add(ct.tally)
	}
	p.total.add(o.total)
	p.warnings = append(p.warnings, o.warnings...)
}

func (p *partial) result(t Thresholds) Result {
	res := Result{
		Matrix:   make([]MatrixRow, 0, len(p.users)),
		Courses:  make([]CourseRow, 0, len(p.courses)),
		Warnings: p.warnings,
	}
	if res.Warnings == nil {
		res.Warnings = []Warning{}
	}

	for userID, u := range p.users {
		res.Matrix = append(res.Matrix, MatrixRow{
			UserID:         userID,
			Assigned:       u.assigned,
			Completed:      u.completed,
			Overdue:        u.overdue,
			Pending:        u.pending,
			Orphaned:       u.orphaned,
			CompletionRate: CompletionRate(u.completed, u.assigned),
		})
	}
	sort.Slice(res.Matrix, func(i, j int) bool {
		return res.Matrix[i].UserID.String() < res.Matrix[j].UserID.String()
	})

	for ref, ct := range p.courses {
		row := CourseRow{
			CourseVersionRef: ref,
			Assigned:         ct.assigned,
			Completed:        ct.completed,
			Overdue:          ct.overdue,
			Rate:             CompletionRate(ct.completed, ct.assigned),
		}
		if ct.info != nil {
			row.CourseID = ct.info.CourseID
			row.Title = ct.info.Title
			row.Category = ct.info.Category
		}
		res.Courses = append(res.Courses, row)
	}
	sort.Slice(res.Courses, func(i, j int) bool {
		return res.Courses[i].CourseVersionRef < res.Courses[j].CourseVersionRef
	})

	sort.SliceStable(res.Warnings, func(i, j int) bool {
		if res.Warnings[i].Kind != res.Warnings[j].Kind {
			return res.Warnings[i].Kind < res.Warnings[j].Kind
		}
		return res.Warnings[i].ObligationID < res.Warnings[j].ObligationID
	})

	rate := CompletionRate(p.total.completed, p.total.assigned)
	res.Org = OrgSummary{
		Users:            len(p.users),
		Assigned:         p.total.assigned,
		Completed:        p.total.completed,
		Pending:          p.total.pending,
		OverdueCount:     p.total.overdue,
		Orphaned:         p.total.orphaned,
		CompletionRate:   rate,
		ComplianceStatus: t.Evaluate(rate, p.total.overdue),
	}
	return res
}
