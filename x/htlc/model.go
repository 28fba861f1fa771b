package htlc

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto/hashlock"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/x/token"
)

// Status is the state of a swap. The numeric values are part of the
// persisted format.
type Status int32

const (
	// StatusUnused is never stored, it is the zero value of a missing
	// record.
	StatusUnused   Status = 0
	StatusActive   Status = 1
	StatusRedeemed Status = 2
	StatusRefunded Status = 3
)

var statusNames = map[Status]string{
	StatusUnused:   "unused",
	StatusActive:   "active",
	StatusRedeemed: "redeemed",
	StatusRefunded: "refunded",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// Validate accepts only states a stored swap can be in.
func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusRedeemed, StatusRefunded:
		return nil
	}
	return errors.Wrap(ErrInvalidStatus, s.String())
}

// MaxFee is the largest fee a vault can store.
const MaxFee = 1<<16 - 1

// Vault is the custodial account of one asset.
type Vault struct {
	AssetId string `protobuf:"bytes,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	// Fee is stored but not charged by any operation.
	Fee          uint32 `protobuf:"varint,2,opt,name=fee,proto3" json:"fee,omitempty"`
	CustodyNonce uint32 `protobuf:"varint,3,opt,name=custody_nonce,json=custodyNonce,proto3" json:"custody_nonce,omitempty"`
}

var _ orm.Model = (*Vault)(nil)

func (m *Vault) Reset()         { *m = Vault{} }
func (m *Vault) String() string { return proto.CompactTextString(m) }
func (*Vault) ProtoMessage()    {}

// Validate ensures the Vault is valid
func (m *Vault) Validate() error {
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	if m.Fee > MaxFee {
		return errors.Wrapf(errors.ErrInput, "fee %d", m.Fee)
	}
	if m.CustodyNonce > maxNonce {
		return errors.Wrapf(errors.ErrInput, "custody nonce %d", m.CustodyNonce)
	}
	return nil
}

// Copy makes a new Vault
func (m *Vault) Copy() orm.Model {
	cpy := *m
	return &cpy
}

// Address is the account holding the escrowed funds of the asset.
func (m *Vault) Address() escrowd.Address {
	return vaultCondition(m.AssetId, uint8(m.CustodyNonce)).Address()
}

// Swap is one escrow record.
type Swap struct {
	SwapId       []byte `protobuf:"bytes,1,opt,name=swap_id,json=swapId,proto3" json:"swap_id,omitempty"`
	LockTime     uint64 `protobuf:"varint,2,opt,name=lock_time,json=lockTime,proto3" json:"lock_time,omitempty"`
	SecretHash   []byte `protobuf:"bytes,3,opt,name=secret_hash,json=secretHash,proto3" json:"secret_hash,omitempty"`
	SecretKey    []byte `protobuf:"bytes,4,opt,name=secret_key,json=secretKey,proto3" json:"secret_key,omitempty"`
	Seller       []byte `protobuf:"bytes,5,opt,name=seller,proto3" json:"seller,omitempty"`
	Buyer        []byte `protobuf:"bytes,6,opt,name=buyer,proto3" json:"buyer,omitempty"`
	AssetId      string `protobuf:"bytes,7,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Amount       uint64 `protobuf:"varint,8,opt,name=amount,proto3" json:"amount,omitempty"`
	Status       Status `protobuf:"varint,9,opt,name=status,proto3" json:"status,omitempty"`
	CustodyNonce uint32 `protobuf:"varint,10,opt,name=custody_nonce,json=custodyNonce,proto3" json:"custody_nonce,omitempty"`
}

var _ orm.Model = (*Swap)(nil)

func (m *Swap) Reset()         { *m = Swap{} }
func (m *Swap) String() string { return proto.CompactTextString(m) }
func (*Swap) ProtoMessage()    {}

// Validate ensures the Swap is valid. Amount, lock time and the relation
// between buyer and seller are not restricted.
func (m *Swap) Validate() error {
	if len(m.SwapId) != hashlock.Size {
		return errors.Wrapf(errors.ErrInput, "swap id must be %d bytes", hashlock.Size)
	}
	if len(m.SecretHash) != hashlock.Size {
		return errors.Wrapf(errors.ErrInput, "secret hash must be %d bytes", hashlock.Size)
	}
	if len(m.SecretKey) != hashlock.Size {
		return errors.Wrapf(errors.ErrInput, "secret key must be %d bytes", hashlock.Size)
	}
	if err := m.SellerAddress().Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if err := m.BuyerAddress().Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	if err := token.ValidateAssetID(m.AssetId); err != nil {
		return err
	}
	if m.CustodyNonce > maxNonce {
		return errors.Wrapf(errors.ErrInput, "custody nonce %d", m.CustodyNonce)
	}
	return m.Status.Validate()
}

// Copy makes a new swap
func (m *Swap) Copy() orm.Model {
	cpy := *m
	cpy.SwapId = append([]byte(nil), m.SwapId...)
	cpy.SecretHash = append([]byte(nil), m.SecretHash...)
	cpy.SecretKey = append([]byte(nil), m.SecretKey...)
	cpy.Seller = append([]byte(nil), m.Seller...)
	cpy.Buyer = append([]byte(nil), m.Buyer...)
	return &cpy
}

// SellerAddress returns the seller as an address.
func (m *Swap) SellerAddress() escrowd.Address {
	return escrowd.Address(m.Seller)
}

// BuyerAddress returns the buyer as an address.
func (m *Swap) BuyerAddress() escrowd.Address {
	return escrowd.Address(m.Buyer)
}

// Address is the derived address of this record. It never holds funds.
func (m *Swap) Address() escrowd.Address {
	return swapCondition(m.AssetId, m.SwapId, uint8(m.CustodyNonce)).Address()
}

// SwapKey is the bucket key of a swap.
func SwapKey(asset string, swapID []byte) []byte {
	key := make([]byte, 0, len(asset)+1+len(swapID))
	key = append(key, asset...)
	key = append(key, '/')
	return append(key, swapID...)
}

// VaultBucket stores vaults by asset id.
type VaultBucket struct {
	orm.Bucket
}

// NewVaultBucket initializes a VaultBucket with default name.
func NewVaultBucket() VaultBucket {
	return VaultBucket{
		Bucket: orm.NewBucket("vault", orm.NewSimpleObj(nil, new(Vault))),
	}
}

// GetVault returns the vault of an asset or nil if it does not exist.
func (b VaultBucket) GetVault(db escrowd.ReadOnlyKVStore, asset string) (*Vault, error) {
	obj, err := b.Get(db, []byte(asset))
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	v, ok := obj.Value().(*Vault)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return v, nil
}

// SwapBucket stores swaps by asset id and swap id. Swaps are indexed by
// secret hash, seller and buyer.
type SwapBucket struct {
	orm.Bucket
}

// NewSwapBucket initializes a SwapBucket with default name.
func NewSwapBucket() SwapBucket {
	b := orm.NewBucket("swap", orm.NewSimpleObj(nil, new(Swap))).
		WithIndex("secret_hash", idxSecretHash).
		WithIndex("seller", idxSeller).
		WithIndex("buyer", idxBuyer)
	return SwapBucket{Bucket: b}
}

// GetSwap returns the swap or nil if it does not exist.
func (b SwapBucket) GetSwap(db escrowd.ReadOnlyKVStore, asset string, swapID []byte) (*Swap, error) {
	obj, err := b.Get(db, SwapKey(asset, swapID))
	if err != nil {
		return nil, err
	}
	return asSwap(obj)
}

// Create stores a new swap, failing with ErrAlreadyExists if the key is
// taken.
func (b SwapBucket) Create(db escrowd.KVStore, s *Swap) error {
	return b.Bucket.Create(db, orm.NewSimpleObj(SwapKey(s.AssetId, s.SwapId), s))
}

// Update overwrites an existing swap.
func (b SwapBucket) Update(db escrowd.KVStore, s *Swap) error {
	return b.Save(db, orm.NewSimpleObj(SwapKey(s.AssetId, s.SwapId), s))
}

// BySecretHash returns all swaps locked with the given commitment.
func (b SwapBucket) BySecretHash(db escrowd.ReadOnlyKVStore, hash []byte) ([]*Swap, error) {
	return b.byIndex(db, "secret_hash", hash)
}

// BySeller returns all swaps funded by addr.
func (b SwapBucket) BySeller(db escrowd.ReadOnlyKVStore, addr escrowd.Address) ([]*Swap, error) {
	return b.byIndex(db, "seller", addr)
}

// ByBuyer returns all swaps payable to addr.
func (b SwapBucket) ByBuyer(db escrowd.ReadOnlyKVStore, addr escrowd.Address) ([]*Swap, error) {
	return b.byIndex(db, "buyer", addr)
}

func (b SwapBucket) byIndex(db escrowd.ReadOnlyKVStore, idx string, key []byte) ([]*Swap, error) {
	objs, err := b.GetIndexed(db, idx, key)
	if err != nil {
		return nil, err
	}
	res := make([]*Swap, 0, len(objs))
	for _, obj := range objs {
		s, err := asSwap(obj)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func asSwap(obj orm.Object) (*Swap, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	s, ok := obj.Value().(*Swap)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return s, nil
}

func toSwap(obj orm.Object) (*Swap, error) {
	s, err := asSwap(obj)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	return s, nil
}

func idxSecretHash(obj orm.Object) ([]byte, error) {
	s, err := toSwap(obj)
	if err != nil {
		return nil, err
	}
	return s.SecretHash, nil
}

func idxSeller(obj orm.Object) ([]byte, error) {
	s, err := toSwap(obj)
	if err != nil {
		return nil, err
	}
	return s.Seller, nil
}

func idxBuyer(obj orm.Object) ([]byte, error) {
	s, err := toSwap(obj)
	if err != nil {
		return nil, err
	}
	return s.Buyer, nil
}

func newVaultObj(v *Vault) *orm.SimpleObj {
	return orm.NewSimpleObj([]byte(v.AssetId), v)
}
