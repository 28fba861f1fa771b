package app

import (
	"reflect"

	"github.com/iov-one/escrowd"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []escrowd.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    app.NewRecovery(),
    sigs.NewDecorator(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...escrowd.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...escrowd.Decorator) Decorators {
	next := make([]escrowd.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNil(d escrowd.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h escrowd.Handler) escrowd.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    escrowd.Decorator
	next escrowd.Handler
}

var _ escrowd.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx escrowd.Context, store escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx escrowd.Context, store escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
