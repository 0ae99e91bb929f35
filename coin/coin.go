// Package coin implements the asset arithmetic for the ledger. All
// amounts are denominated in the smallest unit of their ticker and kept
// as int64, matching the wire encoding used for address derivation.
package coin

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"

	"github.com/gorswap/swapchain/errors"
)

// IsCC is the RegExp to ensure valid currency codes.
var IsCC = regexp.MustCompile(`^[A-Z]{3,5}$`).MatchString

// MaxAmount is the largest amount of the smallest unit we accept.
const MaxAmount int64 = math.MaxInt64

// Coin is an amount of a single asset, denominated in its smallest
// unit.
type Coin struct {
	Ticker string
	Amount int64
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// ID returns the coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two amounts of the same ticker. It returns an error on
// a ticker mismatch or an int64 overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrType, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum := c.Amount + o.Amount
	if (o.Amount > 0 && sum < c.Amount) || (o.Amount < 0 && sum > c.Amount) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d + %d", c.Amount, o.Amount)
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract removes the given amount. It returns an error on a ticker
// mismatch or an overflow.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the same amount with the opposite sign.
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Amount: -c.Amount}
}

// SameType returns true if both coins have the same ticker.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or above.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsZero returns true if the amount is exactly zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsGTE returns true if the receiver is the same type and at least as
// large as the argument.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// Equals returns true if both ticker and amount match.
func (c Coin) Equals(o Coin) bool {
	return c.SameType(o) && c.Amount == o.Amount
}

// Validate ensures the coin is in a sane state.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid currency: %s", c.Ticker)
	}
	return nil
}

func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// Marshal encodes the coin as a length-prefixed ticker followed by the
// amount as 8 little-endian bytes. The encoding is deterministic, as it
// feeds hashed storage keys.
func (c *Coin) Marshal() ([]byte, error) {
	if len(c.Ticker) > 255 {
		return nil, errors.Wrap(errors.ErrInput, "ticker too long")
	}
	out := make([]byte, 0, 1+len(c.Ticker)+8)
	out = append(out, byte(len(c.Ticker)))
	out = append(out, c.Ticker...)
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(c.Amount))
	return append(out, amt[:]...), nil
}

// Unmarshal is the inverse of Marshal.
func (c *Coin) Unmarshal(raw []byte) error {
	if len(raw) < 1 {
		return errors.Wrap(errors.ErrInput, "empty coin encoding")
	}
	n := int(raw[0])
	if len(raw) != 1+n+8 {
		return errors.Wrapf(errors.ErrInput, "malformed coin encoding: %d bytes", len(raw))
	}
	c.Ticker = string(raw[1 : 1+n])
	c.Amount = int64(binary.LittleEndian.Uint64(raw[1+n:]))
	return nil
}
