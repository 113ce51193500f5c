package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "mandate/internal/catalog/models"
	catalogstore "mandate/internal/catalog/store"
	directorymodels "mandate/internal/directory/models"
	directorystore "mandate/internal/directory/store"
	"mandate/internal/notify"
	"mandate/internal/obligation/models"
	obligationstore "mandate/internal/obligation/store"
	id "mandate/pkg/domain"
)

type countingNotifier struct {
	mu     sync.Mutex
	failOn map[id.ObligationID]bool
	sent   map[id.ObligationID]int
}

func newCountingNotifier() *countingNotifier {
	return &countingNotifier{failOn: map[id.ObligationID]bool{}, sent: map[id.ObligationID]int{}}
}

func (n *countingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failOn[msg.ObligationID] {
		return errors.New("smtp relay refused")
	}
	n.sent[msg.ObligationID]++
	return nil
}

type fixture struct {
	org         id.OrgID
	obligations *obligationstore.InMemoryStore
	directory   *directorystore.InMemoryStore
	catalog     *catalogstore.InMemoryStore
	notifier    *countingNotifier
	created     []models.Obligation
}

func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	f := &fixture{
		org:         id.OrgID(uuid.New()),
		obligations: obligationstore.NewInMemoryStore(),
		directory:   directorystore.NewInMemoryStore(),
		catalog:     catalogstore.NewInMemoryStore(),
		notifier:    newCountingNotifier(),
	}
	f.catalog.PutCourse(f.org, catalogmodels.CourseInfo{Ref: "privacy@2", CourseID: "privacy", Title: "Privacy 101", Version: 2}, "initial")
	for i := 0; i < n; i++ {
		user := id.UserID(uuid.New())
		f.directory.PutUser(f.org, directorymodels.Recipient{UserID: user, DisplayName: "learner"})
		due := testNow.AddDate(0, 0, -(i + 1))
		o := models.Obligation{
			ID:               id.NewObligationID(),
			OrgID:            f.org,
			ScopeUserID:      user,
			CourseVersionRef: "privacy@2",
			DueAt:            &due,
			Mandatory:        true,
			CreatedAt:        testNow.AddDate(0, -1, 0),
		}
		require.NoError(t, f.obligations.CreateObligation(context.Background(), o))
		f.created = append(f.created, o)
	}
	return f
}

func (f *fixture) service() *Service {
	return NewService(f.obligations, f.directory, f.catalog, f.notifier)
}

func TestRunPass_NotifierFailureLeavesStampForRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	third := f.created[2]
	f.notifier.failOn[third.ID] = true

	summary, err := f.service().RunPass(ctx, f.org, testNow, DefaultDebounceWindow)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalOverdue)
	assert.Equal(t, 4, summary.RemindersSent)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, third.ID, summary.Errors[0].ObligationID)

	stored, err := f.obligations.GetObligation(ctx, third.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ReminderSentAt, "failed send must not be stamped")

	for i, o := range f.created {
		if i == 2 {
			continue
		}
		stored, err := f.obligations.GetObligation(ctx, o.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ReminderSentAt)
		assert.True(t, stored.ReminderSentAt.Equal(testNow))
	}

	t.Run("next pass retries only the failed obligation", func(t *testing.T) {
		delete(f.notifier.failOn, third.ID)
		next, err := f.service().RunPass(ctx, f.org, testNow.Add(time.Hour), DefaultDebounceWindow)
		require.NoError(t, err)
		assert.Equal(t, 1, next.RemindersSent)
		assert.Equal(t, 4, next.Debounced)
		assert.Equal(t, 1, f.notifier.sent[third.ID])
	})
}

func TestRunPass_ConcurrentPassesStampOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	const passes = 4
	summaries := make([]*Summary, passes)
	var wg sync.WaitGroup
	for i := 0; i < passes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.service().RunPass(ctx, f.org, testNow, DefaultDebounceWindow)
			assert.NoError(t, err)
			summaries[i] = s
		}(i)
	}
	wg.Wait()

	stamped := 0
	for _, s := range summaries {
		require.NotNil(t, s)
		require.Empty(t, s.Errors)
		stamped += s.RemindersSent - s.StaleStamps
	}
	assert.Equal(t, len(f.created), stamped, "each obligation is stamped by exactly one pass")

	for _, o := range f.created {
		stored, err := f.obligations.GetObligation(ctx, o.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ReminderSentAt)
	}
}
