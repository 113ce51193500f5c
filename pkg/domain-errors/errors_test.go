package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeInvalidInput, "negative window")
		assert.True(t, HasCode(err, CodeInvalidInput))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches code through fmt wrapping", func(t *testing.T) {
		inner := Wrap(errors.New("conn refused"), CodeStoreUnavailable, "list obligations")
		err := fmt.Errorf("reminder pass: %w", inner)
		assert.True(t, HasCode(err, CodeStoreUnavailable))
	})

	t.Run("matches nested coded errors", func(t *testing.T) {
		err := Wrap(New(CodeNotifierFailed, "broker down"), CodeInternal, "send")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeNotifierFailed))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
}
