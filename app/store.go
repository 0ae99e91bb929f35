package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// StoreApp contains the data store and all info needed to perform
// queries and the consensus handshake.
//
// It should be embedded in another struct for CheckTx, DeliverTx and
// initializing state from the genesis. Errors on abci steps that take
// no user input (InitChain, Commit, ...) are handled as panics: there
// is no way to recover gracefully from a broken store mid-consensus.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci Info.
	name string

	// Database state: committed, check and deliver caches.
	store *CommitStore

	// Code to initialize from a genesis file.
	initializer swapchain.Initializer

	// How to handle queries.
	queryRouter swapchain.QueryRouter

	// chainID is loaded from the db on startup and saved once during
	// InitChain.
	chainID string

	// baseContext contains context info valid for the lifetime of this
	// app, like the chain id and logger.
	baseContext swapchain.Context

	// blockContext contains context info valid for the current block,
	// like the height. Reset on BeginBlock.
	blockContext swapchain.Context

	// blockHeight is the height being processed, set on BeginBlock and
	// persisted as the version on Commit.
	blockHeight int64
}

// NewStoreApp initializes the app over the given persistent store and
// brings it into a ready state. Panics if the store state is corrupted.
func NewStoreApp(name string, db swapchain.CommitKVStore, queryRouter swapchain.QueryRouter) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(db),
		queryRouter: queryRouter,
		baseContext: context.Background(),
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID = loadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = swapchain.WithChainID(s.baseContext, s.chainID)
	}

	id, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockHeight = id.Version
	s.blockContext = swapchain.WithHeight(s.baseContext, id.Version)
	return s
}

// WithInit sets the genesis initializer. It must be called before
// InitChain.
func (s *StoreApp) WithInit(init swapchain.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and the base context, and
// returns the app to make it easy to chain in initialization.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = swapchain.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger.
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the current chain id, empty before InitChain.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext returns the context set up for the current block.
func (s *StoreApp) BlockContext() swapchain.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache.
func (s *StoreApp) DeliverStore() swapchain.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache.
func (s *StoreApp) CheckStore() swapchain.CacheableKVStore {
	return s.store.CheckStore()
}

// parseAppState is called from InitChain the first time the chain
// starts, and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json")
	}

	var appState swapchain.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(err, "parse app state")
	}

	if err := s.storeChainID(chainID); err != nil {
		return err
	}

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(appState, s.DeliverStore())
}

// storeChainID persists the chain id and updates the base context.
func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = swapchain.WithChainID(s.baseContext, chainID)
	return nil
}

//----------------------- ABCI -----------------------

// Info implements abci.Application. It returns the last committed
// height and hash along with the app name.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	id, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

// SetOption implements abci.Application.
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query gets data from the app store. The request path selects the
// query handler ("/orders", "/wallets", ...) and may carry a modifier
// after a question mark ("/orders?prefix"). Keys and values in the
// response are serialized ResultSet objects of equal size, able to
// carry 0 to N matches.
func (s *StoreApp) Query(reqQuery abci.RequestQuery) (resQuery abci.ResponseQuery) {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		resQuery.Code, _ = errors.ABCIInfo(errors.ErrNotFound, false)
		resQuery.Log = fmt.Sprintf("unexpected query path: %v", reqQuery.Path)
		return resQuery
	}

	id, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	resQuery.Height = id.Version

	models, err := qh.Query(s.store.QueryStore(), mod, reqQuery.Data)
	if err != nil {
		return queryError(err)
	}

	resQuery.Key, err = ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	resQuery.Value, err = ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return resQuery
}

// splitPath splits the real path from the query modifier, everything
// after the question mark.
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{
		Code: code,
		Log:  log,
	}
}

// InitChain implements abci.Application. It parses the genesis app
// state and hands it to the initializers. Called once, when the chain
// first starts.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId); err != nil {
		// Read comment on the type header.
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements abci.Application. It sets up the block context
// all transactions of this block are processed under.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.blockHeight = req.Header.GetHeight()
	ctx := swapchain.WithHeight(s.baseContext, s.blockHeight)
	ctx = swapchain.WithBlockTime(ctx, req.Header.Time)
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock implements abci.Application. The validator set is fixed at
// genesis, so there are never any updates to report.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit implements abci.Application. It flushes the block's writes to
// disk and reports the resulting state hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit(s.blockHeight)
	if err != nil {
		// Read comment on the type header.
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash),
	)

	return abci.ResponseCommit{Data: id.Hash}
}
