package htlc_test

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/x/htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		opts       escrowd.Options
		wantErr    *errors.Error
		wantVaults map[string]uint32
	}{
		"no data": {opts: escrowd.Options{}},
		"vaults": {
			opts: escrowd.Options{"htlc": []byte(`{"vaults": [
				{"asset_id": "ETH", "fee": 30},
				{"asset_id": "BTC"},
				{"asset_id": "ETH", "fee": 99}
			]}`)},
			wantVaults: map[string]uint32{"ETH": 30, "BTC": 0},
		},
		"fee too large": {
			opts:    escrowd.Options{"htlc": []byte(`{"vaults": [{"asset_id": "ETH", "fee": 65536}]}`)},
			wantErr: errors.ErrInput,
		},
		"bad asset": {
			opts:    escrowd.Options{"htlc": []byte(`{"vaults": [{"asset_id": "E/TH"}]}`)},
			wantErr: errors.ErrInput,
		},
		"malformed": {
			opts:    escrowd.Options{"htlc": []byte(`{"vaults": 1}`)},
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			err := htlc.Initializer{}.FromGenesis(tc.opts, db)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)

			reg := htlc.NewPoolRegistry(nil)
			for asset, fee := range tc.wantVaults {
				v, err := reg.Vault(db, asset)
				require.NoError(t, err)
				assert.Equal(t, fee, v.Fee)
			}
		})
	}
}
