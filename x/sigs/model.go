package sigs

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/crypto"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/orm"
)

// BucketName is where we store the accounts.
const BucketName = "sigs"

// UserData stores the replay protection state for one public key: the
// key itself plus the next expected sequence number.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.CloneableData = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs pubkey")
	}
	if u.Pubkey != nil {
		if err := u.Pubkey.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Copy makes a new UserData with the same values.
func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Pubkey:   u.Pubkey,
		Sequence: u.Sequence,
	}
}

// Marshal encodes as [len(pubkey)][pubkey][sequence big-endian].
func (u *UserData) Marshal() ([]byte, error) {
	var pub []byte
	if u.Pubkey != nil {
		var err error
		pub, err = u.Pubkey.Marshal()
		if err != nil {
			return nil, err
		}
	}
	if len(pub) > 255 {
		return nil, errors.Wrap(errors.ErrInput, "pubkey too long")
	}
	out := make([]byte, 0, 1+len(pub)+8)
	out = append(out, byte(len(pub)))
	out = append(out, pub...)
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], uint64(u.Sequence))
	return append(out, seq[:]...), nil
}

func (u *UserData) Unmarshal(bz []byte) error {
	if len(bz) < 9 {
		return errors.Wrap(errors.ErrInput, "truncated user data")
	}
	n := int(bz[0])
	if len(bz) != 1+n+8 {
		return errors.Wrap(errors.ErrInput, "malformed user data")
	}
	if n == 0 {
		u.Pubkey = nil
	} else {
		u.Pubkey = new(crypto.PublicKey)
		if err := u.Pubkey.Unmarshal(bz[1 : 1+n]); err != nil {
			return err
		}
	}
	u.Sequence = int64(binary.BigEndian.Uint64(bz[1+n:]))
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it
// is incremented. Otherwise an error is returned. Before incrementing
// the sequence, this function is testing for a value overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// maxSequenceValue is limited by the client. The greatest
	// supported nonce value at client side is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// SetPubkey will try to set the Pubkey or panic on an illegal
// operation. It is illegal to reset an already set key.
func (u *UserData) SetPubkey(pubkey *crypto.PublicKey) {
	if u.Pubkey != nil {
		panic("cannot change pubkey for a user")
	}
	u.Pubkey = pubkey
}

// AsUser will safely type-cast any value from Bucket to a UserData.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser constructs an object from an address and pubkey.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key swapchain.Address
	value := &UserData{Pubkey: pubkey}
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, value)
}

// Bucket extends orm.Bucket with GetOrCreate.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewUser(nil)),
	}
}

// GetOrCreate initializes a UserData if none exist for that key.
func (b Bucket) GetOrCreate(db swapchain.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err == nil && obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, err
}

// RegisterQuery exposes the user records via the abci query interface.
func RegisterQuery(qr swapchain.QueryRouter) {
	NewBucket().Register("auth", qr)
}
