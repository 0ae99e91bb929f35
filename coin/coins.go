package coin

import (
	"sort"

	"github.com/gorswap/swapchain/errors"
)

// Coins is a set of coins, at most one per ticker, sorted by ticker and
// holding no zero amounts. Use the provided functions to keep these
// invariants; never mutate the slice by hand.
type Coins []Coin

// NewCoins normalizes the given coins into a valid set: same tickers
// are combined, zero amounts dropped, result sorted.
func NewCoins(coins ...Coin) (Coins, error) {
	byTicker := make(map[string]Coin, len(coins))
	for _, c := range coins {
		have, ok := byTicker[c.Ticker]
		if !ok {
			byTicker[c.Ticker] = c
			continue
		}
		sum, err := have.Add(c)
		if err != nil {
			return nil, err
		}
		byTicker[c.Ticker] = sum
	}

	out := make(Coins, 0, len(byTicker))
	for _, c := range byTicker {
		if c.IsZero() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Add returns a new set with the given coin combined in.
func (cs Coins) Add(c Coin) (Coins, error) {
	return NewCoins(append(cs.Clone(), c)...)
}

// Subtract returns a new set with the given coin removed.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Amount returns the held amount of the given ticker, zero if absent.
func (cs Coins) Amount(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if the set holds at least the given amount of
// the given ticker.
func (cs Coins) Contains(c Coin) bool {
	return cs.Amount(c.Ticker).IsGTE(c)
}

// IsEmpty returns true for a set with no coins in it.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative returns true when no coin in the set is negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true when both sets hold exactly the same amounts.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that can be mutated independently.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(Coins(nil), cs...)
}

// Validate ensures the set invariants hold: valid coins, strictly
// sorted tickers, no zero amounts.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrState, "zero amount of %s", c.Ticker)
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "unsorted ticker %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}
