package htlc

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto/hashlock"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/token"
)

// Deposit describes the funds a seller locks in a new swap.
type Deposit struct {
	SwapID     []byte
	LockTime   uint64
	SecretHash []byte
	Buyer      escrowd.Address
	Amount     uint64
}

// SwapLedger owns the swap records and their state machine. Every check
// runs before the first write, so a failed call leaves the record as it
// was.
type SwapLedger struct {
	swaps   SwapBucket
	tokens  token.Controller
	deriver deriver
}

// NewSwapLedger returns a ledger moving funds with the given token ledger.
func NewSwapLedger(tokens token.Controller) SwapLedger {
	return SwapLedger{
		swaps:   NewSwapBucket(),
		tokens:  tokens,
		deriver: deriver{tokens: tokens},
	}
}

// Deposit moves the amount from seller into the vault and records an
// active swap. auth must prove control of seller. Amount, lock time and the
// buyer are taken as given.
func (l SwapLedger) Deposit(ctx escrowd.Context, db escrowd.KVStore, auth x.Authenticator,
	vault *Vault, seller escrowd.Address, d Deposit) (*Swap, error) {

	exists, err := l.swaps.Has(db, SwapKey(vault.AssetId, d.SwapID))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(ErrAlreadyExists, "swap %X", d.SwapID)
	}

	nonce, err := l.deriver.swapNonce(db, vault.AssetId, d.SwapID)
	if err != nil {
		return nil, err
	}
	swap := &Swap{
		SwapId:       d.SwapID,
		LockTime:     d.LockTime,
		SecretHash:   d.SecretHash,
		SecretKey:    make([]byte, hashlock.Size),
		Seller:       seller,
		Buyer:        d.Buyer,
		AssetId:      vault.AssetId,
		Amount:       d.Amount,
		Status:       StatusActive,
		CustodyNonce: uint32(nonce),
	}
	if err := swap.Validate(); err != nil {
		return nil, err
	}

	if err := l.tokens.Transfer(ctx, db, auth, vault.AssetId, seller, vault.Address(), d.Amount); err != nil {
		return nil, err
	}
	if err := l.swaps.Create(db, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

// Redeem pays the swap amount to the buyer and publishes the secret.
//
// The checks run in this order: the swap is active, the secret matches
// the commitment, the lock time has not passed, the caller is the buyer.
func (l SwapLedger) Redeem(ctx escrowd.Context, db escrowd.KVStore, vault *Vault,
	swapID, secret []byte, caller escrowd.Address) (*Swap, error) {

	swap, err := l.load(db, vault.AssetId, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != StatusActive {
		return nil, errors.Wrapf(ErrCanNotRedeem, "swap is %s", swap.Status)
	}
	if !hashlock.Matches(secret, swap.SecretHash) {
		return nil, errors.Wrap(ErrInvalidSecretKey, "secret does not match hash")
	}
	now, err := escrowd.Now(ctx)
	if err != nil {
		return nil, err
	}
	if !redeemOpen(now, swap.LockTime) {
		return nil, errors.Wrapf(ErrInvalidRedeemTime, "lock time %d passed", swap.LockTime)
	}
	if !swap.BuyerAddress().Equals(caller) {
		return nil, errors.Wrapf(ErrInvalidBuyerPubkey, "caller %s", caller)
	}

	if err := l.tokens.Transfer(ctx, db, vaultCustody(vault), vault.AssetId,
		vault.Address(), swap.BuyerAddress(), swap.Amount); err != nil {
		return nil, err
	}
	swap.Status = StatusRedeemed
	swap.SecretKey = append([]byte(nil), secret...)
	if err := l.swaps.Update(db, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

// Refund pays the swap amount back to the seller.
//
// The checks run in this order: the swap is active, the lock time has
// passed, the caller is the seller. A swap that is no longer active fails
// with ErrCanNotRedeem, the same kind a late redeem gets.
func (l SwapLedger) Refund(ctx escrowd.Context, db escrowd.KVStore, vault *Vault,
	swapID []byte, caller escrowd.Address) (*Swap, error) {

	swap, err := l.load(db, vault.AssetId, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != StatusActive {
		return nil, errors.Wrapf(ErrCanNotRedeem, "swap is %s", swap.Status)
	}
	now, err := escrowd.Now(ctx)
	if err != nil {
		return nil, err
	}
	if redeemOpen(now, swap.LockTime) {
		return nil, errors.Wrapf(ErrInvalidRefundTime, "locked until %d", swap.LockTime)
	}
	if !swap.SellerAddress().Equals(caller) {
		return nil, errors.Wrapf(ErrInvalidSellerPubkey, "caller %s", caller)
	}

	if err := l.tokens.Transfer(ctx, db, vaultCustody(vault), vault.AssetId,
		vault.Address(), swap.SellerAddress(), swap.Amount); err != nil {
		return nil, err
	}
	swap.Status = StatusRefunded
	if err := l.swaps.Update(db, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

// Swap returns a stored swap.
func (l SwapLedger) Swap(db escrowd.ReadOnlyKVStore, asset string, swapID []byte) (*Swap, error) {
	return l.load(db, asset, swapID)
}

func (l SwapLedger) load(db escrowd.ReadOnlyKVStore, asset string, swapID []byte) (*Swap, error) {
	swap, err := l.swaps.GetSwap(db, asset, swapID)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %s/%X", asset, swapID)
	}
	return swap, nil
}
