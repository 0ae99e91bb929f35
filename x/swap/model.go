package swap

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/orm"
)

// BucketName is where we store the open orders.
const BucketName = "order"

const (
	// NativeTicker is the chain's base asset.
	NativeTicker = "GOR"
	// WrappedTicker is the wrapped representation of the counter-chain
	// asset.
	WrappedTicker = "SGOR"
)

const (
	// DirectionWrappedForNative orders deposit the wrapped asset into
	// a dedicated escrow wallet; the maker wants the native asset.
	DirectionWrappedForNative byte = 0
	// DirectionNativeForWrapped orders deposit the native asset into
	// the order's own wallet; the maker wants the wrapped asset.
	DirectionNativeForWrapped byte = 1
)

// Order is the durable record of a single pending swap commitment. All
// fields are set at creation and never mutated; the only transition out
// of the open state is the record's deletion by fill or cancel.
type Order struct {
	// Maker is the party that committed funds and may cancel.
	Maker swapchain.Address
	// Amount is the committed quantity in the asset's smallest unit.
	Amount int64
	// Direction decides which asset the maker deposited.
	Direction byte
	// ExpirationSlot is the last block height at which a fill is
	// accepted.
	ExpirationSlot int64
}

var _ orm.CloneableData = (*Order)(nil)

func (o *Order) Validate() error {
	if err := o.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if o.Amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "%d", o.Amount)
	}
	if o.Direction != DirectionWrappedForNative && o.Direction != DirectionNativeForWrapped {
		return errors.Wrapf(ErrInvalidDirection, "%d", o.Direction)
	}
	if o.ExpirationSlot < 0 {
		return errors.Wrapf(errors.ErrInput, "negative expiration slot %d", o.ExpirationSlot)
	}
	return nil
}

// Copy makes a new order with the same values.
func (o *Order) Copy() orm.CloneableData {
	return &Order{
		Maker:          o.Maker.Clone(),
		Amount:         o.Amount,
		Direction:      o.Direction,
		ExpirationSlot: o.ExpirationSlot,
	}
}

// Marshal encodes as [maker][amount 8-byte LE][direction][expiration
// slot 8-byte LE]. The little-endian amount matches the derivation
// input, so the stored form and the address input never diverge.
func (o *Order) Marshal() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, swapchain.AddressLength+8+1+8)
	out = append(out, o.Maker...)
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(o.Amount))
	out = append(out, amt[:]...)
	out = append(out, o.Direction)
	var exp [8]byte
	binary.LittleEndian.PutUint64(exp[:], uint64(o.ExpirationSlot))
	return append(out, exp[:]...), nil
}

// Unmarshal is the inverse of Marshal.
func (o *Order) Unmarshal(bz []byte) error {
	al := swapchain.AddressLength
	if len(bz) != al+8+1+8 {
		return errors.Wrapf(errors.ErrInput, "malformed order: %d bytes", len(bz))
	}
	o.Maker = append(swapchain.Address(nil), bz[:al]...)
	o.Amount = int64(binary.LittleEndian.Uint64(bz[al : al+8]))
	o.Direction = bz[al+8]
	o.ExpirationSlot = int64(binary.LittleEndian.Uint64(bz[al+9:]))
	return nil
}

// orderKey is the bucket key and condition payload for an order: the
// maker address followed by the amount as 8 little-endian bytes. The
// byte-exact encoding is load-bearing: any other encoding derives a
// different, unreachable address.
func orderKey(maker swapchain.Address, amount int64) []byte {
	key := make([]byte, 0, swapchain.AddressLength+8)
	key = append(key, maker...)
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(amount))
	return append(key, amt[:]...)
}

// OrderCondition is the deterministic identity of the order record for
// a given maker and amount.
func OrderCondition(maker swapchain.Address, amount int64) swapchain.Condition {
	return swapchain.NewCondition("swap", "order", orderKey(maker, amount))
}

// OrderAddress is where the order's own wallet lives: the rent reserve,
// and for native-for-wrapped orders the committed native funds.
func OrderAddress(maker swapchain.Address, amount int64) swapchain.Address {
	return OrderCondition(maker, amount).Address()
}

// EscrowCondition is the deterministic identity of the escrow custody
// wallet used by wrapped-for-native orders.
func EscrowCondition(maker swapchain.Address, amount int64) swapchain.Condition {
	return swapchain.NewCondition("swap", "escrow", orderKey(maker, amount))
}

// EscrowAddress is where a wrapped-for-native order holds the committed
// wrapped funds plus the escrow rent reserve.
func EscrowAddress(maker swapchain.Address, amount int64) swapchain.Address {
	return EscrowCondition(maker, amount).Address()
}

// AsOrder safely extracts an Order value from a bucket object.
func AsOrder(obj orm.Object) *Order {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Order)
}

// NewOrderObj wraps an order into a storable object keyed by the
// (maker, amount) pair.
func NewOrderObj(order *Order) orm.Object {
	key := orderKey(order.Maker, order.Amount)
	return orm.NewSimpleObj(key, order)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes an order bucket with the default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Order))),
	}
}

// GetOrder loads the open order for the given maker and amount, or nil
// when none exists.
func (b Bucket) GetOrder(db swapchain.ReadOnlyKVStore, maker swapchain.Address, amount int64) (*Order, error) {
	obj, err := b.Get(db, orderKey(maker, amount))
	if err != nil {
		return nil, err
	}
	return AsOrder(obj), nil
}

// Save persists an order under its derived key.
func (b Bucket) Save(db swapchain.KVStore, order *Order) error {
	return b.Bucket.Save(db, NewOrderObj(order))
}
