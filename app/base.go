package app

import (
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder swapchain.TxDecoder
	handler swapchain.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs an abci application around the given handler
// stack. With debug set, error responses carry the full error message
// instead of the redacted one.
func NewBaseApp(store *StoreApp, decoder swapchain.TxDecoder, handler swapchain.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx implements abci.Application, dispatching to the handler.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swapchain.DeliverTxError(err, b.debug)
	}

	ctx := swapchain.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", swapchain.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return swapchain.DeliverOrError(res, err, b.debug)
}

// CheckTx implements abci.Application, dispatching to the handler.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swapchain.CheckTxError(err, b.debug)
	}

	ctx := swapchain.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", swapchain.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return swapchain.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder and captures any panics.
func (b BaseApp) loadTx(txBytes []byte) (tx swapchain.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return tx, err
}
