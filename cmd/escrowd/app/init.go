package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/htlc"
	"github.com/iov-one/escrowd/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// devSupply is the balance given to the dev account by GenInitOptions.
const devSupply = 123456789

// GenInitOptions will produce the app state for a dev chain: one rich
// account and the vault of its asset.
//
// args are [asset [address]]. Without an address a fresh key is made and
// its seed printed.
func GenInitOptions(args []string) (escrowd.Options, error) {
	asset := "ETH"
	if len(args) > 0 {
		asset = args[0]
		if err := token.ValidateAssetID(asset); err != nil {
			return nil, err
		}
	}

	var addr escrowd.Address
	if len(args) > 1 {
		a, err := escrowd.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		fmt.Printf("dev key seed: %X\n", key.GetEd25519()[:32])
	}

	balances, err := json.Marshal(token.Genesis{
		Balances: []token.GenesisBalance{{Address: addr, Asset: asset, Amount: devSupply}},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	vaults, err := json.Marshal(htlc.Genesis{
		Vaults: []htlc.GenesisVault{{AssetID: asset}},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return escrowd.Options{
		"token": balances,
		"htlc":  vaults,
	}, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "escrow.db")
	}

	tokens := token.NewController()
	application, err := Application(Name, Stack(tokens), TxDecoder, Initializers(tokens), dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
