package queries_test

import (
	"testing"
	"time"

	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestQueriesNotConstructedViaConstructor(t *testing.T) {
	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	require.ErrorIs(t, queries.ListCustomerOrdersQuery{}.Validate(), queries.ErrListCustomerOrdersQueryIsNotConstructed)
	require.ErrorIs(t, queries.ListRestaurantOrdersQuery{}.Validate(), queries.ErrListRestaurantOrdersQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetRestaurantAnalyticsQuery{}.Validate(), queries.ErrGetRestaurantAnalyticsQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	actor := kernel.MustNewActor(10, kernel.RoleCustomer)

	query, err := queries.NewGetOrderQuery(actor, 5)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, int64(5), query.OrderID())

	_, err = queries.NewGetOrderQuery(actor, 0)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = queries.NewGetOrderQuery(kernel.Actor{}, 5)
	require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
}

func TestNewListRestaurantOrdersQuery(t *testing.T) {
	owner := kernel.MustNewActor(20, kernel.RoleOwner)
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	t.Run("no filters", func(t *testing.T) {
		query, err := queries.NewListRestaurantOrdersQuery(owner, 1, "", nil, nil)
		require.NoError(t, err)

		assert.Equal(t, order.Unknown, query.Status())
		_, ok := query.CreatedFrom(time.UTC)
		assert.False(t, ok)
		_, ok = query.CreatedBefore(time.UTC)
		assert.False(t, ok)
	})

	t.Run("accepts the spaced in process alias", func(t *testing.T) {
		query, err := queries.NewListRestaurantOrdersQuery(owner, 1, "in process", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, order.InProcess, query.Status())
	})

	t.Run("date range covers the whole to day in the given location", func(t *testing.T) {
		query, err := queries.NewListRestaurantOrdersQuery(owner, 1, "delivered", date(2024, 3, 1), date(2024, 3, 3))
		require.NoError(t, err)

		from, ok := query.CreatedFrom(madrid)
		require.True(t, ok)
		before, ok := query.CreatedBefore(madrid)
		require.True(t, ok)

		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, madrid), from)
		assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, madrid), before)
	})

	t.Run("same day range is allowed", func(t *testing.T) {
		_, err := queries.NewListRestaurantOrdersQuery(owner, 1, "", date(2024, 3, 1), date(2024, 3, 1))
		require.NoError(t, err)
	})

	t.Run("reports every malformed filter", func(t *testing.T) {
		_, err := queries.NewListRestaurantOrdersQuery(owner, 0, "cooking", date(2024, 3, 2), date(2024, 3, 1))

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		fields := make([]string, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fields = append(fields, v.Field)
		}
		assert.Equal(t, []string{"restaurantId", "status", "from"}, fields)
	})
}

func TestNewGetRestaurantAnalyticsQuery(t *testing.T) {
	owner := kernel.MustNewActor(20, kernel.RoleOwner)

	query, err := queries.NewGetRestaurantAnalyticsQuery(owner, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), query.RestaurantID())

	_, err = queries.NewGetRestaurantAnalyticsQuery(owner, -1)
	require.ErrorIs(t, err, errs.ErrValidation)
}
