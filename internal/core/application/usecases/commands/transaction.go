package commands

import (
	"context"
	"errors"
	"time"

	"deliverus/internal/pkg/errs"
)

// DefaultTxTimeout bounds a write transaction when no WithTxTimeout option is given.
const DefaultTxTimeout = 5 * time.Second

// Option configures a command handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	txTimeout time.Duration
}

// WithTxTimeout bounds every transaction the handler opens. Non-positive
// values keep the default.
func WithTxTimeout(timeout time.Duration) Option {
	return func(o *handlerOptions) {
		if timeout > 0 {
			o.txTimeout = timeout
		}
	}
}

func newHandlerOptions(opts []Option) handlerOptions {
	o := handlerOptions{txTimeout: DefaultTxTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// inTransaction runs fn inside a transaction on tx. The transaction is rolled
// back when fn fails, when ctx is cancelled or when the timeout expires, and
// committed otherwise.
func inTransaction(ctx context.Context, timeout time.Duration, tx TxManager, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := tx.Begin(ctx); err != nil {
		return asPersistence("begin transaction", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return asPersistence("commit transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return asPersistence("commit transaction", err)
	}

	return nil
}

// asPersistence wraps storage failures. Failures the store already
// classified, persistence errors and lock conflicts, pass through.
func asPersistence(operation string, err error) error {
	var perr *errs.PersistenceError
	if errors.As(err, &perr) || errors.Is(err, errs.ErrConflict) {
		return err
	}
	return errs.NewPersistenceError(operation, err)
}
