package circuit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *BreakerSuite) newBreaker(failures, successes int) *Breaker {
	return New("notifier.kafka",
		WithFailureThreshold(failures),
		WithSuccessThreshold(successes),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return s.now }),
	)
}

// play feeds a sequence of outcomes ('f' failure, 's' success) and returns
// the state after each step as o/c.
func play(b *Breaker, outcomes string) string {
	var out strings.Builder
	for _, o := range outcomes {
		if o == 'f' {
			b.RecordFailure()
		} else {
			b.RecordSuccess()
		}
		if b.IsOpen() {
			out.WriteByte('o')
		} else {
			out.WriteByte('c')
		}
	}
	return out.String()
}

func (s *BreakerSuite) TestTransitions() {
	cases := []struct {
		name     string
		failures int
		success  int
		outcomes string
		want     string
	}{
		{"opens on the third consecutive failure", 3, 2, "fff", "cco"},
		{"a success resets the failure streak", 3, 2, "ffsfff", "ccccco"},
		{"closes after consecutive probe successes", 1, 2, "fss", "ooc"},
		{"a failed probe resets the success streak", 1, 3, "fssfsss", "ooooooc"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, play(s.newBreaker(tc.failures, tc.success), tc.outcomes))
		})
	}
}

func (s *BreakerSuite) TestRecordReportsEdgesOnce() {
	b := s.newBreaker(2, 1)

	useFallback, change := b.RecordFailure()
	s.False(useFallback)
	s.False(change.Opened)

	useFallback, change = b.RecordFailure()
	s.True(useFallback)
	s.True(change.Opened)

	_, change = b.RecordFailure()
	s.False(change.Opened, "already open")

	usePrimary, change := b.RecordSuccess()
	s.True(usePrimary)
	s.True(change.Closed)
	s.Equal("closed", b.State().String())
}

func (s *BreakerSuite) TestAllowHonoursCooldown() {
	b := s.newBreaker(1, 1)
	s.True(b.Allow())

	b.RecordFailure()
	s.False(b.Allow())

	s.now = s.now.Add(29 * time.Second)
	s.False(b.Allow())

	s.now = s.now.Add(time.Second)
	s.True(b.Allow(), "probe allowed once the cooldown elapses")

	b.RecordFailure()
	s.False(b.Allow(), "failed probe restarts the cooldown")
}

func (s *BreakerSuite) TestReset() {
	b := s.newBreaker(1, 5)
	b.RecordFailure()
	s.True(b.IsOpen())

	b.Reset()
	s.False(b.IsOpen())
	s.True(b.Allow())
	s.Equal("notifier.kafka", b.Name())
}

func (s *BreakerSuite) TestDefaults() {
	b := New("defaults")
	for i := 0; i < 4; i++ {
		b.RecordFailure()
	}
	s.False(b.IsOpen())
	b.RecordFailure()
	s.True(b.IsOpen())
}
