package cash

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/coin"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from the genesis file. The
// address is hex or bech32 encoded, see swapchain.ParseAddress.
type GenesisAccount struct {
	Address swapchain.Address `json:"address"`
	Coins   []genesisCoin     `json:"coins"`
}

type genesisCoin struct {
	Ticker string `json:"ticker"`
	Amount int64  `json:"whole"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ swapchain.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it
// to the database.
func (Initializer) FromGenesis(opts swapchain.Options, kv swapchain.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		coins := make([]coin.Coin, 0, len(acct.Coins))
		for _, c := range acct.Coins {
			coins = append(coins, coin.NewCoin(c.Amount, c.Ticker))
		}
		wallet, err := WalletWith(acct.Address, coins...)
		if err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
