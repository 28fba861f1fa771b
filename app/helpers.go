package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore over the
// committed state. It can be wrapped with a bucket to reuse the key, index
// and parse logic on the client side.
type ABCIStore struct {
	app abci.Application
}

var _ escrowd.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through app.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query("/", key)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].Value, nil
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return len(v) > 0, err
}

// Iterator iterates over every key starting with start. Only prefix
// ranges are supported, so end must be nil.
func (a *ABCIStore) Iterator(start, end []byte) (escrowd.Iterator, error) {
	if end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only prefix iteration is supported")
	}
	models, err := a.query("/?prefix", start)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is not supported over abci.
func (a *ABCIStore) ReverseIterator(start, end []byte) (escrowd.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration is not supported")
}

func (a *ABCIStore) query(path string, data []byte) ([]escrowd.Model, error) {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var k, v ResultSet
	if err := k.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := v.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&k, &v)
}
