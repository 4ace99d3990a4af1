package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := validationFailed("cmd-1")

	assert.ErrorIs(t, err, ErrValidationFailed)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "cmd-1", verr.CommandID)
	assert.Contains(t, verr.Error(), "cmd-1")
}
