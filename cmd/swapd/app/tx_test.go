package app

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorswap/swapchain/crypto"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/x/sigs"
	"github.com/gorswap/swapchain/x/swap"
)

func TestTxRoundTrip(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519()

	tx := &Tx{
		Msg: &swap.CreateOrderMsg{
			Maker:          maker.PublicKey().Address(),
			Amount:         1_000_000,
			Direction:      swap.DirectionNativeForWrapped,
			ExpirationSlot: 500,
		},
	}
	sig, err := sigs.SignTx(maker, tx, "test-chain-swap", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	bz, err := tx.Marshal()
	require.NoError(t, err)

	parsed, err := TxDecoder(bz)
	require.NoError(t, err)

	msg, err := parsed.GetMsg()
	require.NoError(t, err)
	create, ok := msg.(*swap.CreateOrderMsg)
	require.True(t, ok)
	assert.Equal(t, tx.Msg, create)

	signed, ok := parsed.(sigs.SignedTx)
	require.True(t, ok)
	require.Len(t, signed.GetSignatures(), 1)
	assert.Equal(t, sig.Sequence, signed.GetSignatures()[0].Sequence)
	assert.Equal(t, sig.Pubkey.Ed25519, signed.GetSignatures()[0].Pubkey.Ed25519)
}

func TestTxSignBytesIgnoreSignatures(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519()

	tx := &Tx{
		Msg: &swap.FillOrderMsg{
			Maker:  maker.PublicKey().Address(),
			Amount: 7,
		},
	}
	before, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(maker, tx, "test-chain-swap", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTxDecoderRejectsGarbage(t *testing.T) {
	_, err := TxDecoder([]byte{1, 2, 3})
	assert.True(t, errors.ErrInput.Is(err))

	_, err = TxDecoder(nil)
	assert.Error(t, err)

	// Unknown message paths are refused rather than silently skipped.
	path := "no/route"
	body := append([]byte{byte(len(path))}, path...)
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, uint32(len(body)))
	raw = append(raw, body...)
	_, err = TxDecoder(raw)
	assert.True(t, errors.ErrType.Is(err))
}
