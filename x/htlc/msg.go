package htlc

import (
	"encoding/hex"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto/hashlock"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/token"
)

const (
	pathInitialize = "htlc/initialize"
	pathDeposit    = "htlc/deposit"
	pathRedeem     = "htlc/redeem"
	pathRefund     = "htlc/refund"
)

// InitializeMsg creates the vault of an asset.
type InitializeMsg struct {
	AssetId string `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Fee     uint32 `protobuf:"varint,2,opt,name=fee,proto3" json:"fee,omitempty"`
}

// DepositMsg locks funds of the signer in a new swap.
type DepositMsg struct {
	AssetId    string `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	SwapId     []byte `protobuf:"bytes,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id,omitempty"`
	LockTime   uint64 `protobuf:"varint,3,opt,name=lock_time,json=lockTime,proto3" json:"lock_time,omitempty"`
	SecretHash []byte `protobuf:"bytes,4,opt,name=secret_hash,json=secretHash,proto3" json:"secret_hash,omitempty"`
	Buyer      []byte `protobuf:"bytes,5,opt,name=buyer,proto3" json:"buyer,omitempty"`
	Amount     uint64 `protobuf:"varint,6,opt,name=amount,proto3" json:"amount,omitempty"`
}

// RedeemMsg reveals the secret of a swap and pays it to the buyer.
type RedeemMsg struct {
	AssetId   string `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	SwapId    []byte `protobuf:"bytes,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id,omitempty"`
	SecretKey []byte `protobuf:"bytes,3,opt,name=secret_key,json=secretKey,proto3" json:"secret_key,omitempty"`
}

// RefundMsg returns an expired swap to the seller.
type RefundMsg struct {
	AssetId string `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	SwapId  []byte `protobuf:"bytes,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id,omitempty"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

func (m *RedeemMsg) Reset()         { *m = RedeemMsg{} }
func (m *RedeemMsg) String() string { return proto.CompactTextString(m) }
func (*RedeemMsg) ProtoMessage()    {}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

var _ escrowd.Msg = (*InitializeMsg)(nil)
var _ escrowd.Msg = (*DepositMsg)(nil)
var _ escrowd.Msg = (*RedeemMsg)(nil)
var _ escrowd.Msg = (*RefundMsg)(nil)

// ROUTING, Path method fulfills escrowd.Msg interface to allow routing

func (InitializeMsg) Path() string {
	return pathInitialize
}

func (DepositMsg) Path() string {
	return pathDeposit
}

func (RedeemMsg) Path() string {
	return pathRedeem
}

func (RefundMsg) Path() string {
	return pathRefund
}

// VALIDATION, Validate method makes sure the message is well formed. It
// never looks at the state.

func (m *InitializeMsg) Validate() error {
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	if m.Fee > MaxFee {
		return errors.Wrapf(errors.ErrInput, "fee %d does not fit 16 bits", m.Fee)
	}
	return nil
}

func (m *DepositMsg) Validate() error {
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	if err := validateSize("swap id", m.SwapId); err != nil {
		return err
	}
	if err := validateSize("secret hash", m.SecretHash); err != nil {
		return err
	}
	if err := escrowd.Address(m.Buyer).Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	return nil
}

func (m *RedeemMsg) Validate() error {
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	if err := validateSize("swap id", m.SwapId); err != nil {
		return err
	}
	return validateSize("secret key", m.SecretKey)
}

func (m *RefundMsg) Validate() error {
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	return validateSize("swap id", m.SwapId)
}

func validateSize(field string, val []byte) error {
	if len(val) != hashlock.Size {
		return errors.Wrapf(errors.ErrInput, "%s must be exactly %d bytes", field, hashlock.Size)
	}
	return nil
}

func swapIDString(id []byte) string {
	return hex.EncodeToString(id)
}
