package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder escrowd.TxDecoder
	handler escrowd.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder escrowd.TxDecoder,
	handler escrowd.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler.
//
// Every transaction runs in its own cache wrap of the block state, so a
// failed one leaves no trace.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return escrowd.DeliverTxError(err, b.debug)
	}

	ctx := escrowd.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", escrowd.GetPath(tx))

	cache := b.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return escrowd.DeliverTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return escrowd.DeliverTxError(err, b.debug)
	}
	return res.ToABCI()
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return escrowd.CheckTxError(err, b.debug)
	}

	ctx := escrowd.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", escrowd.GetPath(tx))

	cache := b.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return escrowd.CheckTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return escrowd.CheckTxError(err, b.debug)
	}
	return res.ToABCI()
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx escrowd.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
