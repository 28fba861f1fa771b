package htlc

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/token"
)

const (
	custodyExt = "htlc"
	maxNonce   = 255
)

// vaultCondition is the keyless condition controlling the vault of asset.
func vaultCondition(asset string, nonce uint8) escrowd.Condition {
	seeds := make([]byte, 0, len(asset)+1)
	seeds = append(seeds, asset...)
	seeds = append(seeds, nonce)
	return escrowd.NewCondition(custodyExt, "vault", seeds)
}

// swapCondition is the keyless condition of a single swap record.
func swapCondition(asset string, swapID []byte, nonce uint8) escrowd.Condition {
	seeds := make([]byte, 0, len(asset)+1+len(swapID)+1)
	seeds = append(seeds, asset...)
	seeds = append(seeds, '/')
	seeds = append(seeds, swapID...)
	seeds = append(seeds, nonce)
	return escrowd.NewCondition(custodyExt, "swap", seeds)
}

// deriver finds custody nonces. Nonces are tried from 255 downwards and
// the first one whose address never held the asset wins, so a derived
// address can never collide with an existing wallet.
type deriver struct {
	tokens token.Controller
}

func (d deriver) vaultNonce(db escrowd.ReadOnlyKVStore, asset string) (uint8, error) {
	return d.find(db, asset, func(n uint8) escrowd.Address {
		return vaultCondition(asset, n).Address()
	})
}

func (d deriver) swapNonce(db escrowd.ReadOnlyKVStore, asset string, swapID []byte) (uint8, error) {
	return d.find(db, asset, func(n uint8) escrowd.Address {
		return swapCondition(asset, swapID, n).Address()
	})
}

func (d deriver) find(db escrowd.ReadOnlyKVStore, asset string, addr func(uint8) escrowd.Address) (uint8, error) {
	for n := maxNonce; n >= 0; n-- {
		used, err := d.tokens.HasWallet(db, asset, addr(uint8(n)))
		if err != nil {
			return 0, err
		}
		if !used {
			return uint8(n), nil
		}
	}
	return 0, errors.Wrapf(errors.ErrHuman, "no free custody address for %s", asset)
}

// custody is the authority a vault presents to the token ledger when
// paying out. It is never handed to callers, so only this package can move
// funds out of a vault.
type custody struct {
	cond escrowd.Condition
}

var _ x.Authenticator = custody{}

func vaultCustody(v *Vault) custody {
	return custody{cond: vaultCondition(v.AssetId, uint8(v.CustodyNonce))}
}

func (c custody) GetConditions(escrowd.Context) []escrowd.Condition {
	return []escrowd.Condition{c.cond}
}

func (c custody) HasAddress(_ escrowd.Context, addr escrowd.Address) bool {
	return c.cond.Address().Equals(addr)
}
