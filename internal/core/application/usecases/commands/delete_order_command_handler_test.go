package commands_test

import (
	"context"
	"testing"
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDeleteHandler(uow *MockUoW) *commands.DeleteOrderCommandHandler {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Maybe()
	h := commands.NewDeleteOrderCommandHandler(factory, zap.NewNop())
	return &h
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	cmd, err := commands.NewDeleteOrderCommand(customer, 7)
	require.NoError(t, err)

	t.Run("deletes a pending order", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectCommit()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(pendingOrder(t), nil).Once()
		uow.orders.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

		require.NoError(t, newDeleteHandler(uow).Handle(t.Context(), cmd))
		uow.assertAll(t)
	})

	t.Run("refuses orders already confirmed", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.Confirm(now.Add(-time.Minute)))

		uow := newMockUoW()
		uow.expectRollback()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(o, nil).Once()

		err := newDeleteHandler(uow).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		uow.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owners cannot delete", func(t *testing.T) {
		ownerCmd, err := commands.NewDeleteOrderCommand(owner, 7)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectRollback()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(pendingOrder(t), nil).Once()

		require.ErrorIs(t, newDeleteHandler(uow).Handle(t.Context(), ownerCmd), errs.ErrForbidden)
	})

	t.Run("cancelled requests roll back", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		uow := newMockUoW()
		uow.expectRollback()
		uow.orders.On("GetForUpdate", mock.Anything, int64(7)).Return(pendingOrder(t), nil).Once()
		uow.orders.On("Delete", mock.Anything, int64(7)).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

		err := newDeleteHandler(uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPersistence)
		require.ErrorIs(t, err, context.Canceled)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		_, err := commands.NewDeleteOrderCommand(customer, 0)
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
