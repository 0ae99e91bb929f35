package app

import (
	"reflect"

	"github.com/gorswap/swapchain"
)

// Decorators holds a chain of decorators, not yet resolved by a
// Handler.
type Decorators struct {
	chain []swapchain.Decorator
}

/*
ChainDecorators takes a chain of decorators and, upon adding a final
Handler (often a Router), returns a Handler that will execute this
whole stack.

	app.ChainDecorators(
	    utils.NewLogging(),
	    utils.NewRecovery(),
	    sigs.NewDecorator(),
	    utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	    app.NewRouter(),
	)
*/
func ChainDecorators(chain ...swapchain.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more Decorators to the chain.
func (d Decorators) Chain(chain ...swapchain.Decorator) Decorators {
	newChain := append(d.chain, cutoffNil(chain)...)
	return Decorators{chain: newChain}
}

// cutoffNil in-place removes all nil values from the given slice. Nil
// entries let callers include decorators conditionally.
func cutoffNil(ds []swapchain.Decorator) []swapchain.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that
// passes through the chain of decorators before calling the final
// Handler.
func (d Decorators) WithHandler(h swapchain.Handler) swapchain.Handler {
	// Wrap from the last decorator to the first one, as the top of the
	// chain is understood to be executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one decorator around a specific Handler. A simplified
// version of a closure.
type step struct {
	d    swapchain.Decorator
	next swapchain.Handler
}

var _ swapchain.Handler = step{}

func (s step) Check(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
