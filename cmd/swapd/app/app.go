/*
Package app wires the framework components into the swapd node: the
decorator chain, the message and query routers, and the persistent
store. Replace individual pieces here as the deployment grows.
*/
package app

import (
	"path/filepath"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/app"
	"github.com/gorswap/swapchain/store/pebble"
	"github.com/gorswap/swapchain/x"
	"github.com/gorswap/swapchain/x/cash"
	"github.com/gorswap/swapchain/x/sigs"
	"github.com/gorswap/swapchain/x/swap"
	"github.com/gorswap/swapchain/x/utils"
)

// Authenticator returns the typical authentication, just using public
// key signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for wallet functions.
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Chain returns a chain of decorators to handle logging, recovery,
// authentication and savepoints.
func Chain(authFn x.Authenticator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// On CheckTx, bad tx don't affect state.
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// On DeliverTx, bad tx will increment the nonce even if the
		// message fails.
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the router dispatching to the wallet and swap order
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := CashControl()
	cash.RegisterRoutes(r, authFn, control)
	swap.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a query router allowing access to "/orders",
// "/wallets" and "/auth".
func QueryRouter() swapchain.QueryRouter {
	r := swapchain.NewQueryRouter()
	r.RegisterAll(
		swap.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain.
// This can be passed into BaseApp.
func Stack() swapchain.Handler {
	authFn := Authenticator()
	return Chain(authFn).WithHandler(Router(authFn))
}

// Application constructs a basic abci application with the given
// arguments. If you are not sure what to use for the Handler, just use
// Stack().
func Application(name string, h swapchain.Handler, tx swapchain.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := pebble.Open(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// GenerateApp creates the swapd application ready to hand to the abci
// server.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	dbPath := filepath.Join(home, "data", "swapd.db")

	application, err := Application("swapd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		cash.Initializer{},
	))
	application.WithLogger(logger)
	return application, nil
}
