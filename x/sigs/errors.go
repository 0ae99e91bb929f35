package sigs

import (
	"github.com/gorswap/swapchain/errors"
)

// ErrInvalidSequence covers all replay protection failures: a sequence
// that does not match the stored account state, or one out of range.
var ErrInvalidSequence = errors.Register(1000, "invalid sequence")
