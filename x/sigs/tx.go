package sigs

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/crypto"
	"github.com/gorswap/swapchain/errors"
)

// SignedTx represents a transaction that contains signatures, which can
// be verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// Msg. Helpful to store original, unparsed bytes here, just in
	// case.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the
	// Msg.
	GetSignatures() []*StdSignature
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
//
// A given signer must submit transactions with the sequence number
// increasing by 1 each time (starting at 0).
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

var _ swapchain.Persistent = (*StdSignature)(nil)

// Validate ensures the StdSignature meets basic standards.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Marshal encodes as [sequence big-endian][len(pubkey)][pubkey]
// [len(sig)][sig].
func (s *StdSignature) Marshal() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pub, err := s.Pubkey.Marshal()
	if err != nil {
		return nil, err
	}
	sig, err := s.Signature.Marshal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 8+1+len(pub)+1+len(sig))
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], uint64(s.Sequence))
	out = append(out, seq[:]...)
	out = append(out, byte(len(pub)))
	out = append(out, pub...)
	out = append(out, byte(len(sig)))
	return append(out, sig...), nil
}

func (s *StdSignature) Unmarshal(bz []byte) error {
	if len(bz) < 10 {
		return errors.Wrap(errors.ErrInput, "truncated signature")
	}
	s.Sequence = int64(binary.BigEndian.Uint64(bz[:8]))
	rest := bz[8:]
	pubLen := int(rest[0])
	if len(rest) < 1+pubLen+1 {
		return errors.Wrap(errors.ErrInput, "truncated signature")
	}
	s.Pubkey = new(crypto.PublicKey)
	if err := s.Pubkey.Unmarshal(rest[1 : 1+pubLen]); err != nil {
		return err
	}
	rest = rest[1+pubLen:]
	sigLen := int(rest[0])
	if len(rest) != 1+sigLen {
		return errors.Wrap(errors.ErrInput, "malformed signature")
	}
	s.Signature = new(crypto.Signature)
	return s.Signature.Unmarshal(rest[1:])
}
