package htlc

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/token"
)

// PoolRegistry keeps one vault per asset. Vaults are created once and then
// never changed or removed.
type PoolRegistry struct {
	vaults  VaultBucket
	deriver deriver
}

// NewPoolRegistry returns a registry deriving custody addresses against
// the given token ledger.
func NewPoolRegistry(tokens token.Controller) PoolRegistry {
	return PoolRegistry{
		vaults:  NewVaultBucket(),
		deriver: deriver{tokens: tokens},
	}
}

// Initialize returns the vault of asset, creating it if needed. The fee of
// an existing vault is never changed, a different fee argument is ignored.
func (r PoolRegistry) Initialize(ctx escrowd.Context, db escrowd.KVStore, asset string, fee uint16) (*Vault, error) {
	if err := token.ValidateAssetID(asset); err != nil {
		return nil, err
	}
	v, err := r.vaults.GetVault(db, asset)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}

	nonce, err := r.deriver.vaultNonce(db, asset)
	if err != nil {
		return nil, err
	}
	v = &Vault{
		AssetId:      asset,
		Fee:          uint32(fee),
		CustodyNonce: uint32(nonce),
	}
	if err := r.vaults.Save(db, newVaultObj(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// Vault returns the vault of asset, failing with ErrNotFound if it was
// never initialized.
func (r PoolRegistry) Vault(db escrowd.ReadOnlyKVStore, asset string) (*Vault, error) {
	v, err := r.vaults.GetVault(db, asset)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "vault %s", asset)
	}
	return v, nil
}
