package swaptest

import (
	"context"
	"fmt"

	"github.com/gorswap/swapchain"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You
// can use either the Signer or Signers attribute (or both) and each
// time all signers are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is
	// a convenience attribute when creating an authentication method
	// for a single signer.
	Signer swapchain.Condition

	// Signers represents an authentication of multiple signers.
	Signers []swapchain.Condition
}

func (a *Auth) GetConditions(swapchain.Context) []swapchain.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx swapchain.Context, addr swapchain.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx swapchain.Context, conds ...swapchain.Condition) swapchain.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx swapchain.Context) []swapchain.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]swapchain.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []swapchain.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx swapchain.Context, addr swapchain.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
