package swaptest

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/crypto"
)

// NewKey returns a fresh random signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a fresh random key.
func NewCondition() swapchain.Condition {
	return NewKey().PublicKey().Condition()
}
