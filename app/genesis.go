package app

import (
	"github.com/gorswap/swapchain"
)

// ChainInitializers lets you initialize many extensions with one
// function.
func ChainInitializers(inits ...swapchain.Initializer) swapchain.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []swapchain.Initializer
}

// FromGenesis passes opts to all initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts swapchain.Options, kv swapchain.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
