package app

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/crypto"
	"github.com/gorswap/swapchain/x/swap"
)

// GenInitOptions produces basic app options for one rich account, to
// use for dev mode. An address may be passed as the first argument,
// otherwise one is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr string
	if len(args) > 0 {
		addr = args[0]
	} else {
		bz, seed, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz.String()
		fmt.Printf("funding address: %s\n", addr)
		fmt.Printf("private key seed: %s\n", seed)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"cash": array{
			dict{
				"address": addr,
				"coins": array{
					dict{
						"whole":  123456789,
						"ticker": swap.NativeTicker,
					},
					dict{
						"whole":  123456789,
						"ticker": swap.WrappedTicker,
					},
				},
			},
		},
	})
}

// GenerateCoinKey returns the address of a freshly generated public
// key, along with the hex seed to recover the private key. You can
// give coins to this address in the genesis file.
func GenerateCoinKey() (swapchain.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	seed := hex.EncodeToString(ed25519.PrivateKey(privKey.Ed25519).Seed())
	return privKey.PublicKey().Address(), seed, nil
}
