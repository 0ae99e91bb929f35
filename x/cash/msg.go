package cash

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/coin"
	"github.com/gorswap/swapchain/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

var _ swapchain.Msg = (*SendMsg)(nil)

// SendMsg moves the given amount between two wallets.
type SendMsg struct {
	Source      swapchain.Address
	Destination swapchain.Address
	Amount      *coin.Coin
	// Memo is a free-form note attached to the transfer.
	Memo string
	// Ref is a reference to an external id, like a swap order address.
	Ref []byte
}

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (s *SendMsg) Validate() error {
	if s.Amount == nil || !s.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send: %v", s.Amount)
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	if len(s.Ref) > maxRefSize {
		return errors.Wrap(errors.ErrInput, "ref too long")
	}
	return nil
}

// Marshal encodes as [source][destination][coin][len(memo)][memo]
// [len(ref)][ref] with fixed-width addresses.
func (s *SendMsg) Marshal() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	amt, err := s.Amount.Marshal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 2*swapchain.AddressLength+len(amt)+2+len(s.Memo)+len(s.Ref))
	out = append(out, s.Source...)
	out = append(out, s.Destination...)
	out = append(out, amt...)
	out = append(out, byte(len(s.Memo)))
	out = append(out, s.Memo...)
	out = append(out, byte(len(s.Ref)))
	return append(out, s.Ref...), nil
}

// Unmarshal is the inverse of Marshal.
func (s *SendMsg) Unmarshal(bz []byte) error {
	al := swapchain.AddressLength
	if len(bz) < 2*al+1 {
		return errors.Wrap(errors.ErrInput, "truncated send msg")
	}
	s.Source = append(swapchain.Address(nil), bz[:al]...)
	s.Destination = append(swapchain.Address(nil), bz[al:2*al]...)
	bz = bz[2*al:]

	n := 1 + int(bz[0]) + 8
	if len(bz) < n+1 {
		return errors.Wrap(errors.ErrInput, "truncated send msg")
	}
	s.Amount = new(coin.Coin)
	if err := s.Amount.Unmarshal(bz[:n]); err != nil {
		return err
	}
	bz = bz[n:]

	memoLen := int(bz[0])
	if len(bz) < 1+memoLen+1 {
		return errors.Wrap(errors.ErrInput, "truncated send msg")
	}
	s.Memo = string(bz[1 : 1+memoLen])
	bz = bz[1+memoLen:]

	refLen := int(bz[0])
	if len(bz) != 1+refLen {
		return errors.Wrap(errors.ErrInput, "malformed send msg")
	}
	if refLen > 0 {
		s.Ref = append([]byte(nil), bz[1:]...)
	} else {
		s.Ref = nil
	}
	return nil
}
