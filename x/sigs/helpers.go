package sigs

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/swaptest"
)

//----- mock objects for testing...

// StdTx is a minimal signed transaction wrapping any payload, only
// used in tests of this and other packages.
type StdTx struct {
	swapchain.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ swapchain.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &swaptest.Msg{Serialized: payload}
	return &StdTx{Tx: &swaptest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	// marshal the message w/o sigs
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
