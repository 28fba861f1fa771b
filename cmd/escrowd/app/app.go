/*
Package app links together all the various components
to construct the escrowd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store/iavl"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/htlc"
	"github.com/iov-one/escrowd/x/sigs"
	"github.com/iov-one/escrowd/x/token"
)

// Name is reported to tendermint in Info.
const Name = "escrowd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery and
// authentication
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to the escrow handlers
func Router(authFn x.Authenticator, tokens token.Controller) *app.Router {
	r := app.NewRouter()
	htlc.RegisterRoutes(r, authFn, tokens)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/vaults" and "/swaps"
func QueryRouter() escrowd.QueryRouter {
	r := escrowd.NewQueryRouter()
	r.RegisterAll(
		token.RegisterQuery,
		htlc.RegisterQuery,
	)
	return r
}

// Initializers loads the token balances and the vaults of the genesis
// file, in this order.
func Initializers(tokens token.Controller) escrowd.Initializer {
	return escrowd.ChainInitializers(
		token.Initializer{},
		htlc.Initializer{Tokens: tokens},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(tokens token.Controller) escrowd.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, tokens))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h escrowd.Handler, tx escrowd.TxDecoder,
	init escrowd.Initializer, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(init)
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (escrowd.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
