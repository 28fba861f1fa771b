package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ escrowd.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into ErrPanic
func (Recovery) Check(ctx escrowd.Context, store escrowd.KVStore, tx escrowd.Tx,
	next escrowd.Checker) (res *escrowd.CheckResult, err error) {

	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into ErrPanic
func (Recovery) Deliver(ctx escrowd.Context, store escrowd.KVStore, tx escrowd.Tx,
	next escrowd.Deliverer) (res *escrowd.DeliverResult, err error) {

	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
