package htlc

import (
	"context"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/token"
)

const optKey = "htlc"

// GenesisVault is a vault created at chain start.
type GenesisVault struct {
	AssetID string `json:"asset_id"`
	Fee     uint32 `json:"fee"`
}

// Genesis is the "htlc" section of the genesis app state.
type Genesis struct {
	Vaults []GenesisVault `json:"vaults"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Tokens token.Controller
}

var _ escrowd.Initializer = Initializer{}

// FromGenesis creates the listed vaults.
func (i Initializer) FromGenesis(opts escrowd.Options, kv escrowd.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	tokens := i.Tokens
	if tokens == nil {
		tokens = token.NewController()
	}
	reg := NewPoolRegistry(tokens)
	for _, v := range gen.Vaults {
		if v.Fee > MaxFee {
			return errors.Wrapf(errors.ErrInput, "vault %s: fee %d", v.AssetID, v.Fee)
		}
		if _, err := reg.Initialize(context.Background(), kv, v.AssetID, uint16(v.Fee)); err != nil {
			return errors.Wrapf(err, "vault %s", v.AssetID)
		}
	}
	return nil
}
