package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	const notFound NotFound = "room not found"
	const illegal IllegalAction = "not your turn"
	const broken InvariantViolation = "current player out of range"

	wrapped := fmt.Errorf("roll dice: %w", illegal)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(illegal))
	assert.True(t, IsIllegalAction(wrapped))
	assert.True(t, errors.Is(wrapped, illegal))
	assert.True(t, IsInvariant(fmt.Errorf("end turn: %w", broken)))
	assert.True(t, IsUserError(notFound))
	assert.True(t, IsUserError(wrapped))
	assert.False(t, IsUserError(broken))
	assert.False(t, IsUserError(errors.New("boom")))
	assert.Equal(t, "not your turn", wrapped.Error()[len("roll dice: "):])
}
