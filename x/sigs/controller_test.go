package sigs

import (
	"testing"

	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	bz, err := BuildSignBytes([]byte("body"), "test-chain")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-chain\x00body"), bz)

	_, err = BuildSignBytes([]byte("body"), "bad")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "escrow-test"
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()

	tx := &signedTx{body: []byte("swap")}
	sigA, err := SignTx(alice, tx, chainID)
	require.NoError(t, err)
	sigB, err := SignTx(bob, tx, chainID)
	require.NoError(t, err)
	otherChain, err := SignTx(alice, tx, "other-chain")
	require.NoError(t, err)

	cases := map[string]struct {
		sigs    []*StdSignature
		want    int
		wantErr *errors.Error
	}{
		"no signatures": {
			sigs: nil,
			want: 0,
		},
		"one signature": {
			sigs: []*StdSignature{sigA},
			want: 1,
		},
		"two signatures keep order": {
			sigs: []*StdSignature{sigB, sigA},
			want: 2,
		},
		"signature of another chain": {
			sigs:    []*StdSignature{otherChain},
			wantErr: errors.ErrUnauthorized,
		},
		"missing pubkey": {
			sigs:    []*StdSignature{{Signature: sigA.Signature}},
			wantErr: errors.ErrUnauthorized,
		},
		"missing signature bytes": {
			sigs:    []*StdSignature{{Pubkey: sigA.Pubkey}},
			wantErr: errors.ErrUnauthorized,
		},
		"pubkey of someone else": {
			sigs:    []*StdSignature{{Pubkey: sigB.Pubkey, Signature: sigA.Signature}},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tx.signatures = tc.sigs
			signers, err := VerifyTxSignatures(tx, chainID)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, signers, tc.want)
			for i, s := range tc.sigs {
				assert.Equal(t, s.Pubkey.Condition(), signers[i])
			}
		})
	}
}
