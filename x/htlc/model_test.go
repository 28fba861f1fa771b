package htlc

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/escrowtest"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodyNonce(t *testing.T) {
	db := store.MemStore()
	tokens := token.NewController()
	d := deriver{tokens: tokens}

	n, err := d.vaultNonce(db, "ETH")
	require.NoError(t, err)
	assert.Equal(t, uint8(maxNonce), n)

	// an address that already holds the asset is skipped
	require.NoError(t, tokens.Issue(db, "ETH", vaultCondition("ETH", 255).Address(), 1))
	n, err = d.vaultNonce(db, "ETH")
	require.NoError(t, err)
	assert.Equal(t, uint8(254), n)

	// other assets are unaffected
	n, err = d.vaultNonce(db, "BTC")
	require.NoError(t, err)
	assert.Equal(t, uint8(maxNonce), n)

	id := escrowtest.SequenceID(1)
	n, err = d.swapNonce(db, "ETH", id)
	require.NoError(t, err)
	assert.Equal(t, uint8(maxNonce), n)

	reg := NewPoolRegistry(tokens)
	v, err := reg.Initialize(context.Background(), db, "ETH", 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(254), v.CustodyNonce)
	assert.Equal(t, vaultCondition("ETH", 254).Address(), v.Address())
}

func TestCustodyConditions(t *testing.T) {
	a := vaultCondition("ETH", 255)
	assert.Equal(t, a, vaultCondition("ETH", 255))
	assert.NotEqual(t, a, vaultCondition("ETH", 254))
	assert.NotEqual(t, a, vaultCondition("ETC", 255))
	assert.NoError(t, a.Validate())

	id := escrowtest.SequenceID(5)
	s := swapCondition("ETH", id, 255)
	assert.NotEqual(t, s.Address(), a.Address())
	assert.NotEqual(t, s, swapCondition("ETH", escrowtest.SequenceID(6), 255))

	v := &Vault{AssetId: "ETH", CustodyNonce: 255}
	auth := vaultCustody(v)
	ctx := context.Background()
	assert.True(t, auth.HasAddress(ctx, v.Address()))
	assert.False(t, auth.HasAddress(ctx, s.Address()))
	assert.Equal(t, []escrowd.Condition{a}, auth.GetConditions(ctx))
}

func TestRedeemOpen(t *testing.T) {
	cases := map[string]struct {
		now  escrowd.UnixTime
		lock uint64
		want bool
	}{
		"before":          {now: 10, lock: 20, want: true},
		"at lock time":    {now: 20, lock: 20, want: true},
		"after":           {now: 21, lock: 20, want: false},
		"zero lock":       {now: 1, lock: 0, want: false},
		"negative now":    {now: -5, lock: 0, want: true},
		"large lock time": {now: 1 << 40, lock: 1<<64 - 1, want: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, redeemOpen(tc.now, tc.lock))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.NoError(t, StatusRefunded.Validate())
	assert.True(t, ErrInvalidStatus.Is(Status(0).Validate()))
	assert.True(t, ErrInvalidStatus.Is(Status(7).Validate()))
	assert.Equal(t, "status(7)", Status(7).String())
}

func TestSwapValidate(t *testing.T) {
	valid := func() *Swap {
		return &Swap{
			SwapId:       escrowtest.SequenceID(1),
			SecretHash:   escrowtest.SequenceID(2),
			SecretKey:    make([]byte, 32),
			Seller:       escrowtest.NewCondition().Address(),
			Buyer:        escrowtest.NewCondition().Address(),
			AssetId:      "ETH",
			Status:       StatusActive,
			CustodyNonce: 255,
		}
	}

	cases := map[string]struct {
		mutate  func(*Swap)
		wantErr *errors.Error
	}{
		"valid":            {mutate: func(*Swap) {}},
		"missing secret":   {mutate: func(s *Swap) { s.SecretKey = nil }, wantErr: errors.ErrInput},
		"short hash":       {mutate: func(s *Swap) { s.SecretHash = s.SecretHash[:10] }, wantErr: errors.ErrInput},
		"no seller":        {mutate: func(s *Swap) { s.Seller = nil }, wantErr: errors.ErrInput},
		"bad asset":        {mutate: func(s *Swap) { s.AssetId = "" }, wantErr: errors.ErrInput},
		"unused status":    {mutate: func(s *Swap) { s.Status = StatusUnused }, wantErr: ErrInvalidStatus},
		"nonce too large":  {mutate: func(s *Swap) { s.CustodyNonce = 256 }, wantErr: errors.ErrInput},
		"buyer equals self": {mutate: func(s *Swap) { s.Buyer = s.Seller }},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
		})
	}

	s := valid()
	cpy := s.Copy().(*Swap)
	assert.Equal(t, s, cpy)
}
