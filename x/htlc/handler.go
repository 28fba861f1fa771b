package htlc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/token"
)

const (
	initializeCost int64 = 100
	depositCost    int64 = 300
	redeemCost     int64 = 0
	refundCost     int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r escrowd.Registry, auth x.Authenticator, tokens token.Controller) {
	svc := NewService(auth, tokens)
	r.Handle(pathInitialize, InitializeHandler{svc})
	r.Handle(pathDeposit, DepositHandler{svc})
	r.Handle(pathRedeem, RedeemHandler{svc})
	r.Handle(pathRefund, RefundHandler{svc})
}

// RegisterQuery will register vaults as "/vaults" and swaps as "/swaps",
// together with the swap indexes.
func RegisterQuery(qr escrowd.QueryRouter) {
	NewVaultBucket().Register("vaults", qr)
	NewSwapBucket().Register("swaps", qr)
}

// logSwap reports a swap state change. Only Deliver calls it, check state is
// dropped at commit.
func logSwap(ctx escrowd.Context, swap *Swap) {
	escrowd.GetLogger(ctx).Info("swap",
		"asset", swap.AssetId,
		"swap", swapIDString(swap.SwapId),
		"status", swap.Status,
		"amount", swap.Amount)
}

func marshal(m proto.Message) ([]byte, error) {
	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

//---- initialize

// InitializeHandler creates the vault of an asset.
type InitializeHandler struct {
	svc Service
}

var _ escrowd.Handler = InitializeHandler{}

// Check verifies the message and sets the cost of the transaction
func (h InitializeHandler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	var msg InitializeMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.svc.Initialize(ctx, db, msg.AssetId, uint16(msg.Fee)); err != nil {
		return nil, err
	}
	return &escrowd.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver creates the vault and returns it
func (h InitializeHandler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	var msg InitializeMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	vault, err := h.svc.Initialize(ctx, db, msg.AssetId, uint16(msg.Fee))
	if err != nil {
		return nil, err
	}
	escrowd.GetLogger(ctx).Info("vault",
		"asset", vault.AssetId, "fee", vault.Fee, "address", vault.Address())
	bz, err := marshal(vault)
	if err != nil {
		return nil, err
	}
	return &escrowd.DeliverResult{Data: bz}, nil
}

//---- deposit

// DepositHandler locks the signer's funds in a new swap.
type DepositHandler struct {
	svc Service
}

var _ escrowd.Handler = DepositHandler{}

// Check runs the deposit against the check state
func (h DepositHandler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	msg, err := loadDeposit(tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.svc.Deposit(ctx, db, msg.AssetId, asDeposit(msg)); err != nil {
		return nil, err
	}
	return &escrowd.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver moves the funds into the vault and returns the new swap
func (h DepositHandler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	msg, err := loadDeposit(tx)
	if err != nil {
		return nil, err
	}
	swap, err := h.svc.Deposit(ctx, db, msg.AssetId, asDeposit(msg))
	if err != nil {
		return nil, err
	}
	logSwap(ctx, swap)
	bz, err := marshal(swap)
	if err != nil {
		return nil, err
	}
	return &escrowd.DeliverResult{Data: bz}, nil
}

func loadDeposit(tx escrowd.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

func asDeposit(msg *DepositMsg) Deposit {
	return Deposit{
		SwapID:     msg.SwapId,
		LockTime:   msg.LockTime,
		SecretHash: msg.SecretHash,
		Buyer:      msg.Buyer,
		Amount:     msg.Amount,
	}
}

//---- redeem

// RedeemHandler pays a swap to its buyer.
type RedeemHandler struct {
	svc Service
}

var _ escrowd.Handler = RedeemHandler{}

// Check runs the redeem against the check state
func (h RedeemHandler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	var msg RedeemMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.svc.Redeem(ctx, db, msg.AssetId, msg.SwapId, msg.SecretKey); err != nil {
		return nil, err
	}
	return &escrowd.CheckResult{GasAllocated: redeemCost}, nil
}

// Deliver pays the buyer and returns the redeemed swap, secret included
func (h RedeemHandler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	var msg RedeemMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.svc.Redeem(ctx, db, msg.AssetId, msg.SwapId, msg.SecretKey)
	if err != nil {
		return nil, err
	}
	logSwap(ctx, swap)
	bz, err := marshal(swap)
	if err != nil {
		return nil, err
	}
	return &escrowd.DeliverResult{Data: bz}, nil
}

//---- refund

// RefundHandler returns an expired swap to its seller.
type RefundHandler struct {
	svc Service
}

var _ escrowd.Handler = RefundHandler{}

// Check runs the refund against the check state
func (h RefundHandler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	var msg RefundMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.svc.Refund(ctx, db, msg.AssetId, msg.SwapId); err != nil {
		return nil, err
	}
	return &escrowd.CheckResult{GasAllocated: refundCost}, nil
}

// Deliver pays the seller and returns the refunded swap
func (h RefundHandler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	var msg RefundMsg
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.svc.Refund(ctx, db, msg.AssetId, msg.SwapId)
	if err != nil {
		return nil, err
	}
	logSwap(ctx, swap)
	bz, err := marshal(swap)
	if err != nil {
		return nil, err
	}
	return &escrowd.DeliverResult{Data: bz}, nil
}
