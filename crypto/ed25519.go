package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// ExtensionName is used for the conditions we derive from signatures.
const ExtensionName = "sigs"

// PubKey represents a public key we can verify signatures against.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() swapchain.Condition
}

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey wraps a raw ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

var _ PubKey = (*PublicKey)(nil)
var _ swapchain.Persistent = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and
// public key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a swapchain condition.
func (p *PublicKey) Condition() swapchain.Condition {
	return swapchain.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() swapchain.Address {
	return p.Condition().Address()
}

// Validate ensures the key has the proper length.
func (p *PublicKey) Validate() error {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "invalid ed25519 public key length: %d", len(p.Ed25519))
	}
	return nil
}

// Marshal returns the raw key bytes.
func (p *PublicKey) Marshal() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, len(p.Ed25519))
	copy(out, p.Ed25519)
	return out, nil
}

// Unmarshal parses the raw key bytes.
func (p *PublicKey) Unmarshal(bz []byte) error {
	if len(bz) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "invalid ed25519 public key length: %d", len(bz))
	}
	p.Ed25519 = make([]byte, len(bz))
	copy(p.Ed25519, bz)
	return nil
}

// PrivateKey wraps a raw ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key
// from a given seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// Signature holds a raw ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

var _ swapchain.Persistent = (*Signature)(nil)

// Marshal returns the raw signature bytes.
func (s *Signature) Marshal() ([]byte, error) {
	if len(s.Ed25519) != ed25519.SignatureSize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid ed25519 signature length: %d", len(s.Ed25519))
	}
	out := make([]byte, len(s.Ed25519))
	copy(out, s.Ed25519)
	return out, nil
}

// Unmarshal parses the raw signature bytes.
func (s *Signature) Unmarshal(bz []byte) error {
	if len(bz) != ed25519.SignatureSize {
		return errors.Wrapf(errors.ErrInput, "invalid ed25519 signature length: %d", len(bz))
	}
	s.Ed25519 = make([]byte, len(bz))
	copy(s.Ed25519, bz)
	return nil
}
