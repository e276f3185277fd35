package guard_test

import (
	"errors"
	"testing"

	"deliverus/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("line must be created via NewProductLine")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	errLineNotConstructed := errors.New("line must be created via newLine")

	type line struct {
		productID int64
		quantity  int
		guard     guard.ConstructorGuard
	}

	newLine := func(productID int64, quantity int) (line, error) {
		if quantity <= 0 {
			return line{}, errors.New("quantity must be positive")
		}
		return line{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_built_value_validates", func(t *testing.T) {
		l, err := newLine(7, 2)

		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("literal_value_fails_validation", func(t *testing.T) {
		l := line{productID: 7, quantity: 2}

		assert.Equal(t, errLineNotConstructed, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newLine(7, 0)

		require.Error(t, err)
	})
}
