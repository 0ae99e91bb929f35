package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/gorswap/swapchain"
	baseapp "github.com/gorswap/swapchain/app"
	"github.com/gorswap/swapchain/crypto"
	"github.com/gorswap/swapchain/x/cash"
	"github.com/gorswap/swapchain/x/sigs"
	"github.com/gorswap/swapchain/x/swap"
)

const testChainID = "test-chain-swap"

// initialBalance is granted in both tickers to every genesis account.
const initialBalance int64 = 5_000_000_000

func newTestApp(t *testing.T, accounts ...swapchain.Address) baseapp.BaseApp {
	t.Helper()

	application, err := Application("swapd-test", Stack(), TxDecoder, t.TempDir(), true)
	require.NoError(t, err)
	application.WithInit(baseapp.ChainInitializers(
		cash.Initializer{},
	))

	appState := `{"cash":[`
	for i, acct := range accounts {
		if i > 0 {
			appState += ","
		}
		appState += fmt.Sprintf(
			`{"address":"%s","coins":[{"whole":%d,"ticker":%q},{"whole":%d,"ticker":%q}]}`,
			acct, initialBalance, swap.NativeTicker, initialBalance, swap.WrappedTicker)
	}
	appState += `]}`

	application.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(appState),
		ChainId:       testChainID,
	})
	return application
}

func beginBlock(app baseapp.BaseApp, height int64) {
	app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: testChainID,
			Height:  height,
			Time:    time.Now(),
		},
	})
}

func endBlock(t *testing.T, app baseapp.BaseApp) {
	t.Helper()
	app.EndBlock(abci.RequestEndBlock{})
	commit := app.Commit()
	require.NotEmpty(t, commit.Data)
}

// signAndEncode wraps the message into a signed transaction envelope.
func signAndEncode(t *testing.T, msg swapchain.Msg, signer crypto.Signer, seq int64) []byte {
	t.Helper()
	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(signer, tx, testChainID, seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(t, err)
	return bz
}

// queryBalance reads a wallet from committed state, zero coins for a
// destroyed or missing wallet.
func queryBalance(t *testing.T, app baseapp.BaseApp, addr swapchain.Address, ticker string) int64 {
	t.Helper()
	res := app.Query(abci.RequestQuery{Path: "/wallets", Data: addr})
	require.Equal(t, uint32(0), res.Code, res.Log)

	var set cash.Set
	require.NoError(t, baseapp.UnmarshalOneResult(res.Value, &set))
	for _, c := range set.Coins {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

func TestAppSwapLifecycle(t *testing.T) {
	makerKey := crypto.GenPrivKeyEd25519()
	takerKey := crypto.GenPrivKeyEd25519()
	maker := makerKey.PublicKey().Address()
	taker := takerKey.PublicKey().Address()

	application := newTestApp(t, maker, taker)

	const amount int64 = 1_000_000

	// Block 1: the maker opens a native-for-wrapped order.
	beginBlock(application, 1)

	createBz := signAndEncode(t, &swap.CreateOrderMsg{
		Maker:          maker,
		Amount:         amount,
		Direction:      swap.DirectionNativeForWrapped,
		ExpirationSlot: 100,
	}, makerKey, 0)

	chk := application.CheckTx(createBz)
	require.Equal(t, uint32(0), chk.Code, chk.Log)

	dlv := application.DeliverTx(createBz)
	require.Equal(t, uint32(0), dlv.Code, dlv.Log)
	assert.Equal(t, []byte(swap.OrderAddress(maker, amount)), dlv.Data)

	var actionTag string
	for _, tag := range dlv.Tags {
		if string(tag.Key) == "action" {
			actionTag = string(tag.Value)
		}
	}
	assert.Equal(t, "swap/create", actionTag)

	endBlock(t, application)

	// The order is visible in committed state under the maker prefix.
	res := application.Query(abci.RequestQuery{Path: "/orders?prefix", Data: maker})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var order swap.Order
	require.NoError(t, baseapp.UnmarshalOneResult(res.Value, &order))
	assert.Equal(t, amount, order.Amount)
	assert.Equal(t, int64(100), order.ExpirationSlot)

	// The committed native funds left the maker wallet.
	assert.Less(t, queryBalance(t, application, maker, swap.NativeTicker), initialBalance-amount)

	// Block 2: the taker fills the order.
	beginBlock(application, 2)

	fillBz := signAndEncode(t, &swap.FillOrderMsg{
		Maker:  maker,
		Amount: amount,
	}, takerKey, 0)

	dlv = application.DeliverTx(fillBz)
	require.Equal(t, uint32(0), dlv.Code, dlv.Log)

	endBlock(t, application)

	// Both parties hold the exchanged funds, rent reserves returned.
	assert.Equal(t, initialBalance-amount, queryBalance(t, application, maker, swap.NativeTicker))
	assert.Equal(t, initialBalance+amount, queryBalance(t, application, maker, swap.WrappedTicker))
	assert.Equal(t, initialBalance+amount, queryBalance(t, application, taker, swap.NativeTicker))
	assert.Equal(t, initialBalance-amount, queryBalance(t, application, taker, swap.WrappedTicker))

	// The order record is gone.
	res = application.Query(abci.RequestQuery{Path: "/orders?prefix", Data: maker})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var keys baseapp.ResultSet
	require.NoError(t, keys.Unmarshal(res.Key))
	assert.Empty(t, keys.Results)

	// Block 3: a second fill of the same order is refused.
	beginBlock(application, 3)

	refill := signAndEncode(t, &swap.FillOrderMsg{
		Maker:  maker,
		Amount: amount,
	}, takerKey, 1)
	dlv = application.DeliverTx(refill)
	assert.NotEqual(t, uint32(0), dlv.Code)

	endBlock(t, application)
}

func TestAppRejectsReplay(t *testing.T) {
	makerKey := crypto.GenPrivKeyEd25519()
	maker := makerKey.PublicKey().Address()

	application := newTestApp(t, maker)

	beginBlock(application, 1)

	createBz := signAndEncode(t, &swap.CreateOrderMsg{
		Maker:          maker,
		Amount:         5_000,
		Direction:      swap.DirectionWrappedForNative,
		ExpirationSlot: 100,
	}, makerKey, 0)

	dlv := application.DeliverTx(createBz)
	require.Equal(t, uint32(0), dlv.Code, dlv.Log)

	// The same bytes carry a stale sequence number now.
	dlv = application.DeliverTx(createBz)
	assert.NotEqual(t, uint32(0), dlv.Code)

	endBlock(t, application)
}

func TestGenInitOptions(t *testing.T) {
	bz, err := GenInitOptions(nil)
	require.NoError(t, err)

	var opts swapchain.Options
	require.NoError(t, json.Unmarshal(bz, &opts))

	var accounts []cash.GenesisAccount
	require.NoError(t, opts.ReadOptions("cash", &accounts))
	require.Len(t, accounts, 1)
	require.Len(t, accounts[0].Coins, 2)
	assert.NoError(t, accounts[0].Address.Validate())
}
