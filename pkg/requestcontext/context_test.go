package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "mandate/pkg/domain"
)

func TestNow(t *testing.T) {
	t.Run("pinned time wins", func(t *testing.T) {
		fixed := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
		ctx := WithTime(context.Background(), fixed)
		assert.Equal(t, fixed, Now(ctx))
	})

	t.Run("falls back to wall clock", func(t *testing.T) {
		before := time.Now()
		got := Now(context.Background())
		assert.False(t, got.Before(before))
	})
}

func TestPrincipalOrg(t *testing.T) {
	_, ok := PrincipalOrg(context.Background())
	assert.False(t, ok)

	org := id.OrgID(uuid.New())
	got, ok := PrincipalOrg(WithPrincipalOrg(context.Background(), org))
	assert.True(t, ok)
	assert.Equal(t, org, got)
}
