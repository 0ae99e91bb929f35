package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse the command line to generate default app_state
// for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// initCmd prepares the home directory and writes the app_state into
// the genesis file, creating a minimal one when none exists yet.
func initCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, "config", "genesis.json")
	if err := os.MkdirAll(filepath.Dir(genFile), 0750); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(home, "data"), 0750); err != nil {
		return err
	}

	if _, err := os.Stat(genFile); os.IsNotExist(err) {
		doc := genesisDoc{
			"genesis_time": marshalJSON(time.Now().UTC().Format(time.RFC3339Nano)),
			"chain_id":     marshalJSON(fmt.Sprintf("swap-chain-%s", cmn.RandStr(6))),
		}
		if err := writeGenesis(genFile, doc); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	if gen == nil {
		return nil
	}
	options, err := gen(args)
	if err != nil {
		return err
	}
	return addGenesisOptions(genFile, options)
}

// genesisDoc involves some consensus-engine structures we don't want
// to parse, so we keep the document in a raw object format and only
// touch the app_state line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return err
	}

	doc["app_state"] = options
	return writeGenesis(filename, doc)
}

func writeGenesis(filename string, doc genesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, out, 0600)
}

func marshalJSON(obj interface{}) json.RawMessage {
	bz, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return bz
}
