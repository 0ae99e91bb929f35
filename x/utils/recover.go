package utils

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can log them as errors.
type Recovery struct{}

var _ swapchain.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (_ *swapchain.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (_ *swapchain.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
