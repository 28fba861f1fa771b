package escrowd_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/x/htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type msgTx struct {
	msg escrowd.Msg
	err error
}

func (tx msgTx) GetMsg() (escrowd.Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	id := make([]byte, 32)
	id[0] = 7
	valid := &htlc.RefundMsg{AssetId: "ETH", SwapId: id}

	cases := map[string]struct {
		tx      escrowd.Tx
		dst     interface{}
		wantErr *errors.Error
	}{
		"valid": {
			tx:  msgTx{msg: valid},
			dst: &htlc.RefundMsg{},
		},
		"no message": {
			tx:      msgTx{},
			dst:     &htlc.RefundMsg{},
			wantErr: errors.ErrMsg,
		},
		"tx error": {
			tx:      msgTx{err: errors.ErrInput},
			dst:     &htlc.RefundMsg{},
			wantErr: errors.ErrInput,
		},
		"other message": {
			tx:      msgTx{msg: valid},
			dst:     &htlc.RedeemMsg{},
			wantErr: errors.ErrType,
		},
		"not a message": {
			tx:      msgTx{msg: valid},
			dst:     &struct{}{},
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      msgTx{msg: &htlc.RefundMsg{AssetId: "ETH", SwapId: id[:5]}},
			dst:     &htlc.RefundMsg{},
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := escrowd.LoadMsg(tc.tx, tc.dst)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, tc.dst)
		})
	}
}

func TestLoadMsgCopies(t *testing.T) {
	id := make([]byte, 32)
	msg := &htlc.RefundMsg{AssetId: "ETH", SwapId: id}
	var dst htlc.RefundMsg
	require.NoError(t, escrowd.LoadMsg(msgTx{msg: msg}, &dst))

	dst.SwapId[0] = 1
	assert.Equal(t, byte(0), msg.SwapId[0])
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "htlc/refund", escrowd.GetPath(msgTx{msg: &htlc.RefundMsg{}}))
	assert.Equal(t, "(nil)", escrowd.GetPath(msgTx{}))
	assert.Equal(t, "(nil)", escrowd.GetPath(msgTx{err: errors.ErrMsg}))
}

func TestReadOptions(t *testing.T) {
	var opts escrowd.Options
	require.NoError(t, json.Unmarshal([]byte(`{"fee": {"value": 3}, "bad": "x"}`), &opts))

	var fee struct{ Value int }
	require.NoError(t, opts.ReadOptions("fee", &fee))
	assert.Equal(t, 3, fee.Value)

	var missing struct{ Value int }
	require.NoError(t, opts.ReadOptions("missing", &missing))
	assert.Equal(t, 0, missing.Value)

	err := opts.ReadOptions("bad", &fee)
	assert.True(t, errors.ErrInput.Is(err))
}

type recordInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordInit) FromGenesis(escrowd.Options, escrowd.KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := escrowd.ChainInitializers(
		recordInit{name: "a", calls: &calls},
		recordInit{name: "b", calls: &calls, err: errors.ErrState},
		recordInit{name: "c", calls: &calls},
	)
	err := chain.FromGenesis(escrowd.Options{}, store.MemStore())
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, []string{"a", "b"}, calls)
}

type staticQuery []escrowd.Model

func (q staticQuery) Query(escrowd.ReadOnlyKVStore, string, []byte) ([]escrowd.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	qr := escrowd.NewQueryRouter()
	h := staticQuery{escrowd.Pair([]byte("k"), []byte("v"))}
	qr.RegisterAll(func(r escrowd.QueryRouter) { r.Register("/things", h) })

	assert.Equal(t, h, qr.Handler("/things"))
	assert.Nil(t, qr.Handler("/other"))
	assert.Panics(t, func() { qr.Register("/things", h) })
}
