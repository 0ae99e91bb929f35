package cash

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/coin"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Set is the persisted value of a wallet: just the coins it holds.
type Set struct {
	Coins coin.Coins
}

var _ swapchain.Persistent = (*Set)(nil)

// Validate requires that all coins are sorted, unique and valid, and
// that no balance is negative.
func (s *Set) Validate() error {
	if err := s.Coins.Validate(); err != nil {
		return err
	}
	if !s.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() *Set {
	return &Set{
		Coins: s.Coins.Clone(),
	}
}

// Marshal encodes each coin one after another. Coin encodings are
// self-delimiting (length-prefixed ticker, fixed-width amount), so no
// extra framing is needed and the result stays deterministic.
func (s *Set) Marshal() ([]byte, error) {
	var out []byte
	for _, c := range s.Coins {
		bz, err := c.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, bz...)
	}
	return out, nil
}

// Unmarshal is the inverse of Marshal.
func (s *Set) Unmarshal(bz []byte) error {
	var coins coin.Coins
	for len(bz) > 0 {
		n := 1 + int(bz[0]) + 8
		if len(bz) < n {
			return errors.Wrap(errors.ErrInput, "truncated coin set")
		}
		var c coin.Coin
		if err := c.Unmarshal(bz[:n]); err != nil {
			return err
		}
		coins = append(coins, c)
		bz = bz[n:]
	}
	s.Coins = coins
	return nil
}

// Wallet is the actual object that we want to pass around in our code.
// It contains a set of coins, as well as the address. It is connected
// to the Bucket to easily manipulate state.
//
// Wallet is a type-safe wrapper around orm.SimpleObj.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address.
func NewWallet(key swapchain.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: new(Set),
	}
}

// WalletWith creates a wallet with the given coins.
func WalletWith(key swapchain.Address, coins ...coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	for _, c := range coins {
		if err := w.Add(c); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Value gets the value stored in the object.
func (w Wallet) Value() swapchain.Persistent {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty and delegates to the
// value validator.
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return w.value.Validate()
}

// SetKey may be used to update the wallet key.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy(),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet.
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add Coin c.
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c.
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with the default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

func (b Bucket) Get(db swapchain.ReadOnlyKVStore, key swapchain.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

func (b Bucket) Save(db swapchain.KVStore, wallet *Wallet) error {
	return b.Bucket.Save(db, wallet)
}

// GetOrCreate returns the stored wallet, or a fresh empty one at that
// address.
func (b Bucket) GetOrCreate(db swapchain.KVStore, key swapchain.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}
