package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidArgument_Should_Match_Sentinel_And_Name_Param(t *testing.T) {
	err := InvalidArgument("rowCount", "must not be negative, got %d", -1)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrConsistencyViolation)

	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "rowCount", argErr.Param)
	assert.Contains(t, err.Error(), "must not be negative, got -1")
}

func TestInconsistent_Should_Wrap_Sentinel(t *testing.T) {
	err := Inconsistent("table %s out of order at row %d", "ClassLayout", 3)
	assert.ErrorIs(t, err, ErrConsistencyViolation)
	assert.Contains(t, err.Error(), "ClassLayout out of order at row 3")
}

func TestTernaryAndOneOf(t *testing.T) {
	assert.Equal(t, 1, Ternary(true, 1, 2))
	assert.Equal(t, "b", Ternary(false, "a", "b"))
	assert.True(t, OneOf(3, 1, 2, 3))
	assert.False(t, OneOf(4, 1, 2, 3))
	assert.False(t, OneOf[int](4))
}

func TestAssert_Should_Panic_On_False(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "never") })
	assert.PanicsWithValue(t, "bad 7", func() { Assert(false, "bad %d", 7) })
}
