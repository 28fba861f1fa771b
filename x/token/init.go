package token

import (
	"github.com/iov-one/escrowd"
)

const optKey = "token"

// GenesisBalance is used to parse the json from genesis file
// use escrowd.Address, so address in hex, not base64
type GenesisBalance struct {
	Address escrowd.Address `json:"address"`
	Asset   string          `json:"asset"`
	Amount  uint64          `json:"amount"`
}

// Genesis is the "token" section of the genesis app state.
type Genesis struct {
	Balances []GenesisBalance `json:"balances"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ escrowd.Initializer = Initializer{}

// FromGenesis will parse initial balances from genesis
// and save them to the database
func (Initializer) FromGenesis(opts escrowd.Options, kv escrowd.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController()
	for _, b := range gen.Balances {
		if err := ctrl.Issue(kv, b.Asset, b.Address, b.Amount); err != nil {
			return err
		}
	}
	return nil
}
