package commands_test

import (
	"testing"
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTransitionHandler(uow *MockUoW) *commands.TransitionOrderCommandHandler {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Maybe()
	h := commands.NewTransitionOrderCommandHandler(factory, clock, services.MeanServiceTime{}, zap.NewNop())
	return &h
}

func TestTransitionOrderCommandHandler_Confirm(t *testing.T) {
	cmd, err := commands.NewConfirmOrderCommand(owner, 7)
	require.NoError(t, err)

	t.Run("confirms a pending order", func(t *testing.T) {
		o := pendingOrder(t)
		uow := newMockUoW()
		uow.expectCommit()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()
		uow.restaurants.On("Get", mock.Anything, int64(1)).Return(testRestaurant(t), nil).Once()
		uow.orders.On("UpdateLifecycle", mock.Anything, o).Return(nil).Once()

		result, err := newTransitionHandler(uow).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.InProcess, result.Order.Status())
		assert.Equal(t, now, *result.Order.StartedAt())
		uow.assertAll(t)
	})

	t.Run("second confirm is a conflict and keeps startedAt", func(t *testing.T) {
		o := pendingOrder(t)
		startedAt := now.Add(-10 * time.Minute)
		require.NoError(t, o.Confirm(startedAt))

		uow := newMockUoW()
		uow.expectRollback()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()
		uow.restaurants.On("Get", mock.Anything, int64(1)).Return(testRestaurant(t), nil).Once()

		_, err := newTransitionHandler(uow).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, startedAt, *o.StartedAt())
		uow.orders.AssertNotCalled(t, "UpdateLifecycle", mock.Anything, mock.Anything)
	})

	t.Run("only the restaurant owner may confirm", func(t *testing.T) {
		for _, actor := range []kernel.Actor{
			kernel.MustNewActor(21, kernel.RoleOwner),
			kernel.MustNewActor(owner.UserID(), kernel.RoleCustomer),
		} {
			c, err := commands.NewConfirmOrderCommand(actor, 7)
			require.NoError(t, err)

			uow := newMockUoW()
			uow.expectRollback()
			uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(pendingOrder(t), nil).Once()
			uow.restaurants.On("Get", mock.Anything, int64(1)).Return(testRestaurant(t), nil).Once()

			_, err = newTransitionHandler(uow).Handle(t.Context(), c)
			require.ErrorIs(t, err, errs.ErrForbidden)
		}
	})
}

func TestTransitionOrderCommandHandler_Send(t *testing.T) {
	cmd, err := commands.NewSendOrderCommand(owner, 7)
	require.NoError(t, err)

	o := pendingOrder(t)
	require.NoError(t, o.Confirm(now.Add(-time.Minute)))

	uow := newMockUoW()
	uow.expectCommit()
	uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()
	uow.restaurants.On("Get", mock.Anything, int64(1)).Return(testRestaurant(t), nil).Once()
	uow.orders.On("UpdateLifecycle", mock.Anything, o).Return(nil).Once()

	result, err := newTransitionHandler(uow).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Sent, result.Order.Status())
}

func TestTransitionOrderCommandHandler_Deliver(t *testing.T) {
	cmd, err := commands.NewDeliverOrderCommand(owner, 7)
	require.NoError(t, err)

	t.Run("delivers and recomputes the service time", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.Confirm(now.Add(-50*time.Minute)))
		require.NoError(t, o.Send(now.Add(-20*time.Minute)))
		rest := testRestaurant(t)

		uow := newMockUoW()
		uow.expectCommit()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()
		uow.restaurants.On("GetForUpdate", mock.Anything, int64(1)).Return(rest, nil).Once()
		uow.orders.On("UpdateLifecycle", mock.Anything, o).Return(nil).Once()
		uow.orders.On("DeliveredServiceMinutes", mock.Anything, int64(1)).
			Return([]decimal.Decimal{decimal.NewFromInt(30), decimal.NewFromInt(60)}, nil).Once()
		uow.restaurants.On("UpdateServiceTime", mock.Anything, rest).Return(nil).Once()

		result, err := newTransitionHandler(uow).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, result.Order.Status())
		require.True(t, rest.AverageServiceMinutes().Valid)
		assert.Equal(t, "45", rest.AverageServiceMinutes().Decimal.String())
		uow.assertAll(t)
	})

	t.Run("deliver without sentAt is a conflict", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.Confirm(now.Add(-time.Minute)))

		uow := newMockUoW()
		uow.expectRollback()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()
		uow.restaurants.On("GetForUpdate", mock.Anything, int64(1)).Return(testRestaurant(t), nil).Once()

		_, err := newTransitionHandler(uow).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Nil(t, o.DeliveredAt())
		uow.restaurants.AssertNotCalled(t, "UpdateServiceTime", mock.Anything, mock.Anything)
	})
}

func TestRecomputeServiceTimesCommandHandler_Handle(t *testing.T) {
	listing := newMockUoW()
	listing.restaurants.On("ListIDs", mock.Anything).Return([]int64{1, 2}, nil).Once()

	ok := newMockUoW()
	ok.expectCommit()
	rest := testRestaurant(t)
	ok.restaurants.On("GetForUpdate", mock.Anything, int64(1)).Return(rest, nil).Once()
	ok.orders.On("DeliveredServiceMinutes", mock.Anything, int64(1)).
		Return([]decimal.Decimal{decimal.NewFromInt(20)}, nil).Once()
	ok.restaurants.On("UpdateServiceTime", mock.Anything, rest).Return(nil).Once()

	failing := newMockUoW()
	failing.expectRollback()
	failing.restaurants.On("GetForUpdate", mock.Anything, int64(2)).
		Return((*restaurant.Restaurant)(nil), errs.NewObjectNotFoundError("restaurant", int64(2))).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(listing).Once()
	factory.On("Create").Return(ok).Once()
	factory.On("Create").Return(failing).Once()

	h := commands.NewRecomputeServiceTimesCommandHandler(factory, services.MeanServiceTime{}, zap.NewNop())
	updated, err := h.Handle(t.Context(), commands.NewRecomputeServiceTimesCommand())

	assert.Equal(t, 1, updated)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, "20", rest.AverageServiceMinutes().Decimal.String())
	ok.assertAll(t)
	failing.assertAll(t)
	factory.AssertExpectations(t)
}
