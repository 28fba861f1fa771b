package token

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
)

// Controller is the only way other extensions move balances.
type Controller interface {
	// Transfer moves amount of asset from src to dst. The authenticator
	// must prove control of src.
	Transfer(ctx escrowd.Context, db escrowd.KVStore, auth x.Authenticator,
		asset string, src, dst escrowd.Address, amount uint64) error
	// Balance returns the amount of asset held by addr.
	Balance(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (uint64, error)
	// HasWallet returns true if addr ever held asset.
	HasWallet(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (bool, error)
}

// BaseController is the default Controller backed by a token Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Transfer moves amount from src to dst.
// Fails with ErrUnauthorized when auth does not hold src and with
// ErrNotEnoughBalance when src cannot cover the amount. A zero amount is
// a valid transfer.
func (c BaseController) Transfer(ctx escrowd.Context, db escrowd.KVStore, auth x.Authenticator,
	asset string, src, dst escrowd.Address, amount uint64) error {

	if err := ValidateAssetID(asset); err != nil {
		return err
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !auth.HasAddress(ctx, src) {
		return errors.Wrapf(errors.ErrUnauthorized, "transfer from %s", src)
	}

	sender, err := c.bucket.GetOrCreate(db, asset, src)
	if err != nil {
		return err
	}
	if err := sender.subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}

	// load after saving the sender so a self transfer sees the debit
	recipient, err := c.bucket.GetOrCreate(db, asset, dst)
	if err != nil {
		return err
	}
	if err := recipient.add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return err
	}

	escrowd.GetLogger(ctx).Debug("token transfer",
		"asset", asset, "src", src, "dst", dst, "amount", amount)
	return nil
}

// Issue credits amount of asset to dst out of nothing. Only genesis calls
// this.
func (c BaseController) Issue(db escrowd.KVStore, asset string, dst escrowd.Address, amount uint64) error {
	if err := ValidateAssetID(asset); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	w, err := c.bucket.GetOrCreate(db, asset, dst)
	if err != nil {
		return err
	}
	if err := w.add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, w)
}

// Balance returns the amount of asset held by addr, zero if no wallet
// exists.
func (c BaseController) Balance(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (uint64, error) {
	w, err := c.bucket.Get(db, asset, addr)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Amount(), nil
}

// HasWallet returns true if a wallet for asset exists at addr.
func (c BaseController) HasWallet(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (bool, error) {
	return c.bucket.Has(db, WalletKey(asset, addr))
}
