package token

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"balances": [
			{"address": "0102030405060708090021222324252627282930", "asset": "ETH", "amount": 500},
			{"address": "0102030405060708090021222324252627282930", "asset": "BTC", "amount": 7},
			{"address": "0102030405060708090021222324252627282930", "asset": "ETH", "amount": 5}
		]
	}`
	addr := escrowd.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}

	cases := map[string]struct {
		opts    escrowd.Options
		wantErr bool
		wantETH uint64
		wantBTC uint64
	}{
		"no data":       {opts: escrowd.Options{}},
		"other section": {opts: escrowd.Options{"foo": []byte(`"bar"`)}},
		"balances":      {opts: escrowd.Options{"token": []byte(genesis)}, wantETH: 505, wantBTC: 7},
		"malformed":     {opts: escrowd.Options{"token": []byte(`{"balances": 5}`)}, wantErr: true},
		"bad address": {
			opts:    escrowd.Options{"token": []byte(`{"balances": [{"address": "1234", "asset": "ETH", "amount": 1}]}`)},
			wantErr: true,
		},
		"bad asset": {
			opts:    escrowd.Options{"token": []byte(`{"balances": [{"address": "0102030405060708090021222324252627282930", "asset": "E/H", "amount": 1}]}`)},
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, db)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			ctrl := NewController()
			got, err := ctrl.Balance(db, "ETH", addr)
			require.NoError(t, err)
			assert.Equal(t, tc.wantETH, got)
			got, err = ctrl.Balance(db, "BTC", addr)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBTC, got)
		})
	}
}
