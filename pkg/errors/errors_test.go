package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("reload: %w", Wrap(CodeLoadFailed, "load failed", cause))

	require.True(t, IsCode(err, CodeLoadFailed))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, CodeLoadFailed, CodeOf(err))
	require.Contains(t, err.Error(), "load failed: connection refused")
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(CodeInvalidInput, "question cannot be empty", nil)

	require.Equal(t, "question cannot be empty", err.Error())
	require.Nil(t, errors.Unwrap(err))
	require.Empty(t, CodeOf(errors.New("plain")))
}
