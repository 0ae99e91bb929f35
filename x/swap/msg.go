package swap

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

const (
	pathCreateOrder = "swap/create"
	pathFillOrder   = "swap/fill"
	pathCancelOrder = "swap/cancel"
)

var _ swapchain.Msg = (*CreateOrderMsg)(nil)
var _ swapchain.Msg = (*FillOrderMsg)(nil)
var _ swapchain.Msg = (*CancelOrderMsg)(nil)

// CreateOrderMsg opens a new order and moves the committed asset into
// custody.
type CreateOrderMsg struct {
	Maker          swapchain.Address
	Amount         int64
	Direction      byte
	ExpirationSlot int64
}

func (CreateOrderMsg) Path() string {
	return pathCreateOrder
}

func (m *CreateOrderMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "%d", m.Amount)
	}
	if m.Direction != DirectionWrappedForNative && m.Direction != DirectionNativeForWrapped {
		return errors.Wrapf(ErrInvalidDirection, "%d", m.Direction)
	}
	if m.ExpirationSlot < 0 {
		return errors.Wrapf(errors.ErrInput, "negative expiration slot %d", m.ExpirationSlot)
	}
	return nil
}

func (m *CreateOrderMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, swapchain.AddressLength+8+1+8)
	out = append(out, m.Maker...)
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(m.Amount))
	out = append(out, amt[:]...)
	out = append(out, m.Direction)
	var exp [8]byte
	binary.LittleEndian.PutUint64(exp[:], uint64(m.ExpirationSlot))
	return append(out, exp[:]...), nil
}

func (m *CreateOrderMsg) Unmarshal(bz []byte) error {
	al := swapchain.AddressLength
	if len(bz) != al+8+1+8 {
		return errors.Wrapf(errors.ErrInput, "malformed create msg: %d bytes", len(bz))
	}
	m.Maker = append(swapchain.Address(nil), bz[:al]...)
	m.Amount = int64(binary.LittleEndian.Uint64(bz[al : al+8]))
	m.Direction = bz[al+8]
	m.ExpirationSlot = int64(binary.LittleEndian.Uint64(bz[al+9:]))
	return nil
}

// FillOrderMsg completes the swap: the signer acts as the taker. The
// order is referenced by the same (maker, amount) pair its address is
// derived from.
type FillOrderMsg struct {
	Maker  swapchain.Address
	Amount int64
}

func (FillOrderMsg) Path() string {
	return pathFillOrder
}

func (m *FillOrderMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "%d", m.Amount)
	}
	return nil
}

func (m *FillOrderMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return orderKey(m.Maker, m.Amount), nil
}

func (m *FillOrderMsg) Unmarshal(bz []byte) error {
	maker, amount, err := parseOrderRef(bz)
	if err != nil {
		return err
	}
	m.Maker, m.Amount = maker, amount
	return nil
}

// CancelOrderMsg aborts an open order, returning custody to the maker.
// Only the maker may issue it.
type CancelOrderMsg struct {
	Maker  swapchain.Address
	Amount int64
}

func (CancelOrderMsg) Path() string {
	return pathCancelOrder
}

func (m *CancelOrderMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "%d", m.Amount)
	}
	return nil
}

func (m *CancelOrderMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return orderKey(m.Maker, m.Amount), nil
}

func (m *CancelOrderMsg) Unmarshal(bz []byte) error {
	maker, amount, err := parseOrderRef(bz)
	if err != nil {
		return err
	}
	m.Maker, m.Amount = maker, amount
	return nil
}

func parseOrderRef(bz []byte) (swapchain.Address, int64, error) {
	al := swapchain.AddressLength
	if len(bz) != al+8 {
		return nil, 0, errors.Wrapf(errors.ErrInput, "malformed order reference: %d bytes", len(bz))
	}
	maker := append(swapchain.Address(nil), bz[:al]...)
	amount := int64(binary.LittleEndian.Uint64(bz[al:]))
	return maker, amount, nil
}
