package swap

import (
	"github.com/gorswap/swapchain/errors"
)

// x/swap reserves error codes 1100 ~ 1199.
var (
	// ErrInvalidAmount is returned on create when the committed
	// amount is not strictly positive.
	ErrInvalidAmount = errors.Register(1100, "invalid amount")

	// ErrInvalidDirection is returned on create when the direction is
	// neither of the two supported values.
	ErrInvalidDirection = errors.Register(1101, "invalid direction")

	// ErrOrderExpired is returned on fill once the current slot is
	// past the order's expiration slot. Expiration never blocks a
	// cancel.
	ErrOrderExpired = errors.Register(1102, "order expired")
)
