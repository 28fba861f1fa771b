package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
)

// BucketName is where we store the balances
const BucketName = "wallet"

// IsAssetID checks the asset identifier format. The separator '/' is never
// allowed, so it can be used to build composite keys.
var IsAssetID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,31}$`).MatchString

// ValidateAssetID returns ErrInput for a malformed asset identifier.
func ValidateAssetID(asset string) error {
	if !IsAssetID(asset) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", asset)
	}
	return nil
}

// Balance is the amount of one asset held by one address.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Balance)(nil)

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Validate always passes, every amount is a valid balance.
func (m *Balance) Validate() error {
	return nil
}

// Copy makes a new Balance with the same amount
func (m *Balance) Copy() orm.Model {
	return &Balance{Amount: m.Amount}
}

// WalletKey is the bucket key of the wallet of addr for asset.
func WalletKey(asset string, addr escrowd.Address) []byte {
	key := make([]byte, 0, len(asset)+1+len(addr))
	key = append(key, asset...)
	key = append(key, '/')
	return append(key, addr...)
}

// Wallet is a type-safe wrapper around orm.SimpleObj holding a Balance.
type Wallet struct {
	orm.SimpleObj
}

// NewWallet creates a wallet for addr holding amount of asset.
func NewWallet(asset string, addr escrowd.Address, amount uint64) *Wallet {
	return &Wallet{*orm.NewSimpleObj(WalletKey(asset, addr), &Balance{Amount: amount})}
}

// Validate checks the key layout and the balance.
func (w *Wallet) Validate() error {
	if err := w.SimpleObj.Validate(); err != nil {
		return err
	}
	key := w.Key()
	if len(key) < escrowd.AddressLength+2 || key[len(key)-escrowd.AddressLength-1] != '/' {
		return errors.Wrap(errors.ErrModel, "malformed wallet key")
	}
	return ValidateAssetID(string(key[:len(key)-escrowd.AddressLength-1]))
}

// Clone returns an empty wallet with a copy of the key.
func (w *Wallet) Clone() orm.Object {
	return &Wallet{*w.SimpleObj.Clone().(*orm.SimpleObj)}
}

// Owner returns the address part of the key.
func (w *Wallet) Owner() escrowd.Address {
	key := w.Key()
	return escrowd.Address(key[len(key)-escrowd.AddressLength:])
}

// Amount returns the current balance.
func (w *Wallet) Amount() uint64 {
	return w.Value().(*Balance).Amount
}

func (w *Wallet) add(amount uint64) error {
	b := w.Value().(*Balance)
	sum := b.Amount + amount
	if sum < b.Amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	b.Amount = sum
	return nil
}

func (w *Wallet) subtract(amount uint64) error {
	b := w.Value().(*Balance)
	if b.Amount < amount {
		return errors.Wrapf(ErrNotEnoughBalance, "have %d, need %d", b.Amount, amount)
	}
	b.Amount -= amount
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a token.Bucket with default name.
// Wallets are indexed by owner.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, NewWallet("", nil, 0)).
		WithIndex("owner", ownerIndex)
	return Bucket{Bucket: b}
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj)
	}
	return w.Owner(), nil
}

// Get returns the wallet or nil if it was never created.
func (b Bucket) Get(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, WalletKey(asset, addr))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj)
	}
	return w, nil
}

// GetOrCreate returns the stored wallet or a new empty one.
func (b Bucket) GetOrCreate(db escrowd.ReadOnlyKVStore, asset string, addr escrowd.Address) (*Wallet, error) {
	w, err := b.Get(db, asset, addr)
	if err == nil && w == nil {
		w = NewWallet(asset, addr, 0)
	}
	return w, err
}

// ByOwner returns all wallets of an address.
func (b Bucket) ByOwner(db escrowd.ReadOnlyKVStore, addr escrowd.Address) ([]*Wallet, error) {
	objs, err := b.GetIndexed(db, "owner", addr)
	if err != nil {
		return nil, err
	}
	res := make([]*Wallet, 0, len(objs))
	for _, obj := range objs {
		res = append(res, obj.(*Wallet))
	}
	return res, nil
}
