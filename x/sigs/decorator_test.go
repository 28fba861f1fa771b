package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/escrowtest"
	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := escrowd.WithChainID(context.Background(), chainID)
	auth := Authenticate{}

	priv := crypto.GenPrivKeyEd25519()
	conds := []escrowd.Condition{priv.PublicKey().Condition()}

	tx := &signedTx{body: []byte("art")}
	sig, err := SignTx(priv, tx, chainID)
	require.NoError(t, err)

	d := NewDecorator()
	h := &escrowtest.Handler{}

	deliver := func(dec escrowd.Decorator, my escrowd.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, h)
		return err
	}
	check := func(dec escrowd.Decorator, my escrowd.Tx) error {
		res, err := dec.Check(ctx, kv, my, h)
		if err == nil && len(auth.GetConditions(h.Seen)) > 0 {
			assert.Equal(t, int64(signatureVerifyCost), res.GasAllocated)
		}
		return err
	}

	for i, fn := range []func(escrowd.Decorator, escrowd.Tx) error{check, deliver} {
		// no signatures
		tx.signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		// one valid signature
		tx.signatures = []*StdSignature{sig}
		require.NoError(t, fn(d, tx), "%d", i)
		assert.Equal(t, conds, auth.GetConditions(h.Seen))
		assert.True(t, auth.HasAddress(h.Seen, conds[0].Address()))

		// allowing none
		ad := d.AllowMissingSigs()
		tx.signatures = nil
		require.NoError(t, fn(ad, tx), "%d", i)
		assert.Empty(t, auth.GetConditions(h.Seen))

		// a transaction that cannot be signed
		err = fn(d, &escrowtest.Tx{})
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)
		require.NoError(t, fn(ad, &escrowtest.Tx{}), "%d", i)
	}
	assert.Equal(t, 6, h.CallCount())
}
