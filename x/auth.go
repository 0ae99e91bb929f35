package x

import (
	"github.com/gorswap/swapchain"
)

// Validater is implemented by anything that can self-check its state.
// Avoids the colliding name of the stdlib Validator.
type Validater interface {
	Validate() error
}

// Authenticator is an interface to extract authentication info from the
// context. It is passed into the constructor of handlers, so another
// authentication system can be plugged in rather than hard-coding
// x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled by this context.
	GetConditions(swapchain.Context) []swapchain.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(swapchain.Context, swapchain.Address) bool
}

// MultiAuth chains together many authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions from all authenticators.
func (m MultiAuth) GetConditions(ctx swapchain.Context) []swapchain.Condition {
	var res []swapchain.Condition
	for _, impl := range m.impls {
		if add := impl.GetConditions(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any authenticator confirms this address.
func (m MultiAuth) HasAddress(ctx swapchain.Context, addr swapchain.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses for all conditions fulfilled by
// the context.
func GetAddresses(ctx swapchain.Context, auth Authenticator) []swapchain.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]swapchain.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition fulfilled by the context, or
// nil if there is none. By convention this is the party paying the
// transaction fee.
func MainSigner(ctx swapchain.Context, auth Authenticator) swapchain.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}
