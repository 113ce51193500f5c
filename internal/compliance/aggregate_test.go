package compliance

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/suite"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
)

type AggregatorSuite struct {
	suite.Suite
	org id.OrgID
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.org = id.OrgID(uuid.New())
}

func (s *AggregatorSuite) obligation(user id.UserID, ref id.CourseVersionRef, due *time.Time) models.Obligation {
	return models.Obligation{
		ID:               id.NewObligationID(),
		OrgID:            s.org,
		ScopeUserID:      user,
		CourseVersionRef: ref,
		DueAt:            due,
		Mandatory:        true,
		CreatedAt:        testNow.AddDate(0, -2, 0),
	}
}

func passed(o models.Obligation, when time.Time) models.CompletionRecord {
	return models.CompletionRecord{UserID: o.ScopeUserID, CourseVersionRef: o.CourseVersionRef, CompletedAt: when, Passed: true}
}

// =============================================================================
// Rates and status
// =============================================================================

func (s *AggregatorSuite) TestCompletionRate() {
	s.Run("zero assigned is zero", func() {
		s.Equal(0, CompletionRate(0, 0))
	})
	s.Run("rounds half up", func() {
		s.Equal(67, CompletionRate(2, 3))
		s.Equal(33, CompletionRate(1, 3))
		s.Equal(50, CompletionRate(1, 2))
		s.Equal(1, CompletionRate(1, 200))
		s.Equal(0, CompletionRate(1, 201))
	})
	s.Run("clamps to 100", func() {
		s.Equal(100, CompletionRate(5, 5))
		s.Equal(100, CompletionRate(7, 5))
	})
}

// Ten obligations, eight completed and two overdue: 80% but not Ready.
func (s *AggregatorSuite) TestScenarioB_ReadyRequiresZeroOverdue() {
	users := []id.UserID{id.UserID(uuid.New()), id.UserID(uuid.New())}
	past := testNow.AddDate(0, 0, -3)

	var obligations []models.Obligation
	var records []models.CompletionRecord
	for i := 0; i < 10; i++ {
		o := s.obligation(users[i%2], id.CourseVersionRef(fmt.Sprintf("course-%d@1", i)), &past)
		obligations = append(obligations, o)
		if i < 8 {
			records = append(records, passed(o, testNow.AddDate(0, 0, -5)))
		}
	}

	res := Aggregate(obligations, models.NewCompletionIndex(records), testNow)
	s.Equal(80, res.Org.CompletionRate)
	s.Equal(2, res.Org.OverdueCount)
	s.Equal(StatusNeedsAttention, res.Org.ComplianceStatus)

	s.Run("same rate with nothing overdue is ready", func() {
		future := testNow.AddDate(0, 0, 3)
		for i := range obligations {
			obligations[i].DueAt = &future
		}
		res := Aggregate(obligations, models.NewCompletionIndex(records), testNow)
		s.Equal(80, res.Org.CompletionRate)
		s.Equal(0, res.Org.OverdueCount)
		s.Equal(StatusReady, res.Org.ComplianceStatus)
	})
}

func (s *AggregatorSuite) TestEmptyOrg() {
	res := Aggregate(nil, models.NewCompletionIndex(nil), testNow)
	s.Equal(0, res.Org.CompletionRate)
	s.Equal(StatusAtRisk, res.Org.ComplianceStatus)
	s.NotNil(res.Matrix)
	s.NotNil(res.Courses)
	s.NotNil(res.Warnings)
}

// =============================================================================
// Matrix, courses, and data-shape tolerance
// =============================================================================

func (s *AggregatorSuite) TestMatrixAndCourses() {
	alice, bob := id.UserID(uuid.New()), id.UserID(uuid.New())
	past := testNow.AddDate(0, 0, -1)
	future := testNow.AddDate(0, 0, 7)

	a1 := s.obligation(alice, "fire@1", &past)
	a2 := s.obligation(alice, "gdpr@2", &future)
	b1 := s.obligation(bob, "fire@1", &past)

	res := Aggregate([]models.Obligation{a1, a2, b1}, models.NewCompletionIndex([]models.CompletionRecord{passed(b1, testNow)}), testNow)

	s.Require().Len(res.Matrix, 2)
	rows := map[id.UserID]MatrixRow{}
	for _, r := range res.Matrix {
		rows[r.UserID] = r
	}
	s.Equal(MatrixRow{UserID: alice, Assigned: 2, Overdue: 1, Pending: 1}, rows[alice])
	s.Equal(MatrixRow{UserID: bob, Assigned: 1, Completed: 1, CompletionRate: 100}, rows[bob])

	s.Require().Len(res.Courses, 2)
	s.Equal(id.CourseVersionRef("fire@1"), res.Courses[0].CourseVersionRef)
	s.Equal(2, res.Courses[0].Assigned)
	s.Equal(1, res.Courses[0].Completed)
	s.Equal(50, res.Courses[0].Rate)
	s.Equal(id.CourseVersionRef("gdpr@2"), res.Courses[1].CourseVersionRef)
	s.Equal(0, res.Courses[1].Rate)

	s.Equal(3, res.Org.Assigned)
	s.Equal(33, res.Org.CompletionRate)
	s.Empty(res.Warnings)
}

// Two passing records for the same user and course count once.
func (s *AggregatorSuite) TestIdempotentCompletion() {
	user := id.UserID(uuid.New())
	o := s.obligation(user, "aml@1", nil)
	records := []models.CompletionRecord{
		passed(o, testNow.AddDate(0, 0, -2)),
		passed(o, testNow.AddDate(0, 0, -1)),
		{UserID: user, CourseVersionRef: "aml@1", CompletedAt: testNow, Passed: false},
	}

	res := Aggregate([]models.Obligation{o}, models.NewCompletionIndex(records), testNow)
	s.Require().Len(res.Matrix, 1)
	s.Equal(1, res.Matrix[0].Assigned)
	s.Equal(1, res.Matrix[0].Completed)
	s.Equal(100, res.Org.CompletionRate)
}

func (s *AggregatorSuite) TestDuplicatesKeepLatest() {
	user := id.UserID(uuid.New())
	past := testNow.AddDate(0, 0, -1)
	future := testNow.AddDate(0, 0, 10)

	older := s.obligation(user, "hse@1", &past)
	newer := s.obligation(user, "hse@1", &future)
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	res := Aggregate([]models.Obligation{newer, older}, models.NewCompletionIndex(nil), testNow)
	s.Equal(1, res.Org.Assigned)
	s.Equal(0, res.Org.OverdueCount)
	s.Require().Len(res.Warnings, 1)
	s.Equal(WarningDuplicate, res.Warnings[0].Kind)
	s.Equal(older.ID.String(), res.Warnings[0].ObligationID)
}

func (s *AggregatorSuite) TestOrphanedExcludedFromCourseRowsOnly() {
	user := id.UserID(uuid.New())
	past := testNow.AddDate(0, 0, -4)

	live := s.obligation(user, "hse@2", &past)
	gone := s.obligation(user, "hse@1", &past)
	broken := s.obligation(user, "", &past)

	courses := catalogmodels.Resolutions{
		"hse@2": catalogmodels.Resolved(catalogmodels.CourseInfo{Ref: "hse@2", CourseID: "hse", Title: "Health & Safety"}),
		"hse@1": catalogmodels.Orphaned("hse@1"),
	}

	res := NewAggregator().Aggregate([]models.Obligation{live, gone, broken}, models.NewCompletionIndex(nil), courses, testNow)

	s.Equal(3, res.Org.Assigned)
	s.Equal(1, res.Org.OverdueCount)
	s.Equal(2, res.Org.Pending)
	s.Equal(2, res.Org.Orphaned)
	s.Require().Len(res.Courses, 1)
	s.Equal("Health & Safety", res.Courses[0].Title)
	s.Equal(1, res.Courses[0].Assigned)
	s.Require().Len(res.Matrix, 1)
	s.Equal(MatrixRow{UserID: user, Assigned: 3, Overdue: 1, Pending: 2, Orphaned: 2}, res.Matrix[0])

	s.Require().Len(res.Warnings, 2)
	kinds := []WarningKind{res.Warnings[0].Kind, res.Warnings[1].Kind}
	s.ElementsMatch([]WarningKind{WarningInvalidReference, WarningOrphanedReference}, kinds)
}

func (s *AggregatorSuite) TestOrphanedKeepsEarnedCredit() {
	user := id.UserID(uuid.New())
	past := testNow.AddDate(0, 0, -9)

	overdue := s.obligation(user, "gone@1", &past)
	done := s.obligation(user, "gone@2", &past)
	idx := models.NewCompletionIndex([]models.CompletionRecord{passed(done, testNow.AddDate(0, 0, -20))})
	courses := catalogmodels.Resolutions{
		"gone@1": catalogmodels.Orphaned("gone@1"),
		"gone@2": catalogmodels.Orphaned("gone@2"),
	}

	res := NewAggregator().Aggregate([]models.Obligation{overdue, done}, idx, courses, testNow)

	s.Empty(res.Courses)
	s.Equal(MatrixRow{UserID: user, Assigned: 2, Completed: 1, Pending: 1, Orphaned: 2, CompletionRate: 50}, res.Matrix[0])
	s.Equal(2, res.Org.Assigned)
	s.Equal(1, res.Org.Completed)
	s.Equal(0, res.Org.OverdueCount)
	s.Equal(50, res.Org.CompletionRate)
}

func (s *AggregatorSuite) TestPerOrgThresholds() {
	user := id.UserID(uuid.New())
	o := s.obligation(user, "x@1", nil)
	res := NewAggregator(WithThresholds(Thresholds{ReadyMinRate: 0, AtRiskMinRate: 0, AtRiskMaxOverdue: 0})).
		Aggregate([]models.Obligation{o}, models.NewCompletionIndex(nil), nil, testNow)
	s.Equal(StatusReady, res.Org.ComplianceStatus)
}

// =============================================================================
// Order independence and partitioning
// =============================================================================

func randomSnapshot(seed int64, org id.OrgID, n int) ([]models.Obligation, models.CompletionIndex) {
	rng := rand.New(rand.NewSource(seed))
	users := make([]id.UserID, 8)
	for i := range users {
		users[i] = id.UserID(uuid.New())
	}
	refs := []id.CourseVersionRef{"a@1", "b@1", "c@2", "d@1", ""}

	obligations := make([]models.Obligation, 0, n)
	var records []models.CompletionRecord
	for i := 0; i < n; i++ {
		o := models.Obligation{
			ID:               id.NewObligationID(),
			OrgID:            org,
			ScopeUserID:      users[rng.Intn(len(users))],
			CourseVersionRef: refs[rng.Intn(len(refs))],
			Mandatory:        rng.Intn(2) == 0,
			CreatedAt:        testNow.Add(-time.Duration(rng.Intn(1000)) * time.Hour),
		}
		if rng.Intn(3) > 0 {
			o.DueAt = at(testNow.Add(time.Duration(rng.Intn(480)-240) * time.Hour))
		}
		if rng.Intn(2) == 0 {
			records = append(records, passed(o, testNow.Add(-time.Hour)))
		}
		obligations = append(obligations, o)
	}
	return obligations, models.NewCompletionIndex(records)
}

func (s *AggregatorSuite) TestParallelMatchesSequential() {
	obligations, idx := randomSnapshot(42, s.org, 3000)

	sequential := NewAggregator(WithWorkers(1)).Aggregate(obligations, idx, nil, testNow)
	parallel := NewAggregator(WithWorkers(8)).Aggregate(obligations, idx, nil, testNow)

	s.Equal(sequential, parallel)
}

func TestAggregateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)
	org := id.OrgID(uuid.New())

	properties.Property("result does not depend on input order", prop.ForAll(
		func(seed int64, size int) bool {
			obligations, idx := randomSnapshot(seed, org, size)
			want := Aggregate(obligations, idx, testNow)

			shuffled := append([]models.Obligation(nil), obligations...)
			rand.New(rand.NewSource(seed+1)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			got := NewAggregator(WithWorkers(4)).Aggregate(shuffled, idx, nil, testNow)
			return fmt.Sprint(want) == fmt.Sprint(got)
		},
		gen.Int64(), gen.IntRange(0, 1200),
	))

	properties.Property("every rate is within 0..100", prop.ForAll(
		func(seed int64, size int) bool {
			obligations, idx := randomSnapshot(seed, org, size)
			res := Aggregate(obligations, idx, testNow)
			inRange := func(r int) bool { return r >= 0 && r <= 100 }
			if !inRange(res.Org.CompletionRate) {
				return false
			}
			for _, row := range res.Matrix {
				if !inRange(row.CompletionRate) || (row.Assigned == 0 && row.CompletionRate != 0) {
					return false
				}
			}
			for _, row := range res.Courses {
				if !inRange(row.Rate) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(0, 300),
	))

	properties.Property("rate matches rounded completed over assigned", prop.ForAll(
		func(completed, extra int) bool {
			assigned := completed + extra
			got := CompletionRate(completed, assigned)
			if assigned == 0 {
				return got == 0
			}
			exact := float64(completed) * 100 / float64(assigned)
			return float64(got) > exact-0.5 && float64(got) <= exact+0.5
		},
		gen.IntRange(0, 10_000), gen.IntRange(0, 10_000),
	))

	properties.TestingRun(t)
}
