package app

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/x/cash"
	"github.com/gorswap/swapchain/x/sigs"
	"github.com/gorswap/swapchain/x/swap"
)

// msgTypes maps message paths to constructors, so the decoder can
// rebuild the typed message that was sent over the wire.
var msgTypes = map[string]func() swapchain.Msg{
	"cash/send":   func() swapchain.Msg { return new(cash.SendMsg) },
	"swap/create": func() swapchain.Msg { return new(swap.CreateOrderMsg) },
	"swap/fill":   func() swapchain.Msg { return new(swap.FillOrderMsg) },
	"swap/cancel": func() swapchain.Msg { return new(swap.CancelOrderMsg) },
}

// Tx is the transaction envelope accepted by the node: one message plus
// the signatures authorizing it.
type Tx struct {
	Msg        swapchain.Msg
	Signatures []*sigs.StdSignature
}

var _ swapchain.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (swapchain.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the wrapped message.
func (tx *Tx) GetMsg() (swapchain.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

// GetSignBytes returns the canonical bytes to sign: the message
// envelope without any signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return tx.marshalBody()
}

// GetSignatures returns the signatures of everyone who signed.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// marshalBody encodes the message envelope as
// [len(path)][path][message bytes].
func (tx *Tx) marshalBody() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	path := tx.Msg.Path()
	raw, err := tx.Msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	out := make([]byte, 0, 1+len(path)+len(raw))
	out = append(out, byte(len(path)))
	out = append(out, path...)
	return append(out, raw...), nil
}

// Marshal encodes the body with a 4-byte big-endian length prefix,
// followed by the length-prefixed signatures.
func (tx *Tx) Marshal() ([]byte, error) {
	body, err := tx.marshalBody()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4, 4+len(body))
	binary.BigEndian.PutUint32(out, uint32(len(body)))
	out = append(out, body...)

	var length [4]byte
	for _, sig := range tx.Signatures {
		raw, err := sig.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal signature")
		}
		binary.BigEndian.PutUint32(length[:], uint32(len(raw)))
		out = append(out, length[:]...)
		out = append(out, raw...)
	}
	return out, nil
}

// Unmarshal parses the encoding produced by Marshal.
func (tx *Tx) Unmarshal(bz []byte) error {
	body, rest, err := readChunk(bz)
	if err != nil {
		return errors.Wrap(err, "body")
	}
	if len(body) < 1 || len(body) < 1+int(body[0]) {
		return errors.Wrap(errors.ErrInput, "truncated message envelope")
	}
	path := string(body[1 : 1+int(body[0])])
	newMsg, ok := msgTypes[path]
	if !ok {
		return errors.Wrapf(errors.ErrType, "unknown message path %q", path)
	}
	msg := newMsg()
	if err := msg.Unmarshal(body[1+int(body[0]):]); err != nil {
		return errors.Wrapf(err, "unmarshal %q", path)
	}
	tx.Msg = msg

	tx.Signatures = nil
	for len(rest) > 0 {
		var raw []byte
		raw, rest, err = readChunk(rest)
		if err != nil {
			return errors.Wrap(err, "signature")
		}
		sig := new(sigs.StdSignature)
		if err := sig.Unmarshal(raw); err != nil {
			return err
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return nil
}

// readChunk takes one 4-byte big-endian length-prefixed chunk off the
// front of bz and returns it along with the remainder.
func readChunk(bz []byte) ([]byte, []byte, error) {
	if len(bz) < 4 {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated length prefix")
	}
	length := int(binary.BigEndian.Uint32(bz[:4]))
	bz = bz[4:]
	if len(bz) < length {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated chunk")
	}
	return bz[:length], bz[length:], nil
}
