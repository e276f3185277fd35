package errs_test

import (
	"errors"
	"testing"

	"deliverus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", int64(42))

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, int64(42), err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("restaurant", 7, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: restaurant, ID is: 7 (cause: record not found)",
			err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("ValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("0 is not greater than 0"))

		assert.Equal(t, "value is invalid: quantity (cause: 0 is not greater than 0)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("ValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("address length", 300, 1, 255)

		assert.Equal(t, "value is invalid: 300 is address length, min value is 1, max value is 255", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("ValueIsOutOfRangeError sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("ValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("address")

		assert.Equal(t, "value is required: address", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestValidationError(t *testing.T) {
	t.Run("collects violations", func(t *testing.T) {
		verr := errs.NewValidationError()
		assert.False(t, verr.HasViolations())
		require.NoError(t, verr.OrNil())

		verr.Add("address", "address is required")
		verr.Add("products[1].quantity", "quantity must be greater than 0")

		require.True(t, verr.HasViolations())
		require.Error(t, verr.OrNil())
		assert.Len(t, verr.Violations, 2)
		assert.Equal(t,
			"validation failed: address: address is required; products[1].quantity: quantity must be greater than 0",
			verr.Error())
	})

	t.Run("can be matched with errors.Is and errors.As", func(t *testing.T) {
		var err error = errs.NewFieldValidationError("restaurantId", "restaurant does not exist")

		require.ErrorIs(t, err, errs.ErrValidation)

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "restaurantId", verr.Violations[0].Field)
	})

	t.Run("nil collector has no violations", func(t *testing.T) {
		var verr *errs.ValidationError
		assert.False(t, verr.HasViolations())
	})
}

func TestConflictAndForbiddenErrors(t *testing.T) {
	conflict := errs.NewConflictError("order cannot be transitioned")
	assert.Equal(t, "conflict: order cannot be transitioned", conflict.Error())
	require.ErrorIs(t, conflict, errs.ErrConflict)

	withCause := errs.NewConflictErrorWithCause("order cannot be confirmed", errors.New("already started"))
	assert.Equal(t, "conflict: order cannot be confirmed (cause: already started)", withCause.Error())

	forbidden := errs.NewForbiddenError("order does not belong to you")
	assert.Equal(t, "forbidden: order does not belong to you", forbidden.Error())
	require.ErrorIs(t, forbidden, errs.ErrForbidden)
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("unwraps to sentinel and cause", func(t *testing.T) {
		err := errs.NewPersistenceError("insert order", cause)

		require.ErrorIs(t, err, errs.ErrPersistence)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "persistence failure: insert order (cause: connection reset)", err.Error())
	})

	t.Run("includes sqlstate code", func(t *testing.T) {
		err := errs.NewPersistenceErrorWithCode("insert product line", "23503", cause)

		assert.Equal(t, "persistence failure: insert product line [23503] (cause: connection reset)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "validation failed", errs.ErrValidation.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
	assert.Equal(t, "persistence failure", errs.ErrPersistence.Error())
}
