package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrListNotFound))
	assert.True(t, IsNotFoundError(ErrItemNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", ErrItemNotFound)))

	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("plain")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrListNameExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("wrapped: %w", ErrListNameExists)))

	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestEntitySpecificErrorsWrapGeneric(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrListNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrItemNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrListNameExists, ErrDuplicate)
}
