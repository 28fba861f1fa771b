package htlc

import (
	"sync"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/token"
)

// Service exposes the escrow operations. The caller of an operation is the
// main signer found by the authenticator.
//
// Operations are serialized and each one runs in its own cache wrap of the
// given store, so a failure never leaves a partial write behind.
type Service struct {
	mu       *sync.Mutex
	auth     x.Authenticator
	registry PoolRegistry
	ledger   SwapLedger
}

// NewService wires the registry and the ledger to the token ledger.
func NewService(auth x.Authenticator, tokens token.Controller) Service {
	return Service{
		mu:       &sync.Mutex{},
		auth:     auth,
		registry: NewPoolRegistry(tokens),
		ledger:   NewSwapLedger(tokens),
	}
}

// Initialize creates the vault of asset or returns the existing one.
func (s Service) Initialize(ctx escrowd.Context, db escrowd.KVStore, asset string, fee uint16) (*Vault, error) {
	var vault *Vault
	err := s.atomically(db, func(db escrowd.KVStore) error {
		var err error
		vault, err = s.registry.Initialize(ctx, db, asset, fee)
		return err
	})
	return vault, err
}

// Deposit locks funds of the caller in a new swap.
func (s Service) Deposit(ctx escrowd.Context, db escrowd.KVStore, asset string, d Deposit) (*Swap, error) {
	var swap *Swap
	err := s.atomically(db, func(db escrowd.KVStore) error {
		seller, err := s.caller(ctx)
		if err != nil {
			return err
		}
		vault, err := s.registry.Vault(db, asset)
		if err != nil {
			return err
		}
		swap, err = s.ledger.Deposit(ctx, db, s.auth, vault, seller, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return swap, nil
}

// Redeem releases a swap to its buyer, who must be the caller.
func (s Service) Redeem(ctx escrowd.Context, db escrowd.KVStore, asset string, swapID, secret []byte) (*Swap, error) {
	var swap *Swap
	err := s.atomically(db, func(db escrowd.KVStore) error {
		caller, err := s.caller(ctx)
		if err != nil {
			return err
		}
		vault, err := s.registry.Vault(db, asset)
		if err != nil {
			return err
		}
		swap, err = s.ledger.Redeem(ctx, db, vault, swapID, secret, caller)
		return err
	})
	if err != nil {
		return nil, err
	}
	return swap, nil
}

// Refund returns an expired swap to its seller, who must be the caller.
func (s Service) Refund(ctx escrowd.Context, db escrowd.KVStore, asset string, swapID []byte) (*Swap, error) {
	var swap *Swap
	err := s.atomically(db, func(db escrowd.KVStore) error {
		caller, err := s.caller(ctx)
		if err != nil {
			return err
		}
		vault, err := s.registry.Vault(db, asset)
		if err != nil {
			return err
		}
		swap, err = s.ledger.Refund(ctx, db, vault, swapID, caller)
		return err
	})
	if err != nil {
		return nil, err
	}
	return swap, nil
}

// Vault returns the vault of asset.
func (s Service) Vault(db escrowd.ReadOnlyKVStore, asset string) (*Vault, error) {
	return s.registry.Vault(db, asset)
}

// Swap returns a stored swap.
func (s Service) Swap(db escrowd.ReadOnlyKVStore, asset string, swapID []byte) (*Swap, error) {
	return s.ledger.Swap(db, asset, swapID)
}

func (s Service) caller(ctx escrowd.Context) (escrowd.Address, error) {
	signer := x.MainSigner(ctx, s.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

// atomically runs fn on a cache wrap of db that is written only if fn
// succeeds.
func (s Service) atomically(db escrowd.KVStore, fn func(escrowd.KVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cacheable, ok := db.(escrowd.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
