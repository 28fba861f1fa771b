package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Genesis is the part of the tendermint genesis file read by this
// application.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis reads the genesis file at path.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	if !escrowd.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// InitChainRequest returns the request tendermint sends for this genesis.
func (g *Genesis) InitChainRequest() abci.RequestInitChain {
	return abci.RequestInitChain{
		ChainId:       g.ChainID,
		AppStateBytes: g.AppState,
	}
}

// AddAppState merges the app_state of the genesis file at path with the
// given sections and writes the result back. Existing sections with the
// same name are replaced, others are kept.
func AddAppState(path string, sections escrowd.Options) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}

	state := make(escrowd.Options)
	if cur, ok := doc["app_state"]; ok && len(cur) > 0 && string(cur) != "null" {
		if err := json.Unmarshal(cur, &state); err != nil {
			return errors.Wrapf(errors.ErrInput, "parse app_state: %s", err)
		}
	}
	for k, v := range sections {
		state[k] = v
	}
	bz, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	doc["app_state"] = bz

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(path, out, 0600)
}
