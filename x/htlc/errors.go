package htlc

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/token"
)

// Error codes follow the numbering of the counterpart escrow program, so a
// client can map a failure to the same kind on both chains.
var (
	ErrInvalidSecretKey    = errors.Register(6000, "invalid secret key")
	ErrInvalidSellerPubkey = errors.Register(6001, "invalid seller")
	ErrInvalidBuyerPubkey  = errors.Register(6002, "invalid buyer")
	ErrInvalidRedeemTime   = errors.Register(6003, "redeem time passed")
	ErrInvalidRefundTime   = errors.Register(6004, "refund time not reached")
	ErrInvalidAmount       = errors.Register(6005, "invalid amount")
	ErrInvalidStatus       = errors.Register(6006, "invalid status")
	ErrCanNotRedeem        = errors.Register(6008, "swap is not active")
	ErrCanNotRefund        = errors.Register(6009, "swap cannot be refunded")

	// ErrNotEnoughBalance is raised by the token ledger when the seller
	// cannot fund a deposit.
	ErrNotEnoughBalance = token.ErrNotEnoughBalance

	// ErrAlreadyExists is returned for a second deposit with the same
	// asset and swap id.
	ErrAlreadyExists = errors.ErrDuplicate
)
