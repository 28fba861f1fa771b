package escrowd

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/escrowd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { WithHeight(ctx, 8) })
}

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()
	_, err := Now(ctx)
	assert.True(t, errors.ErrHuman.Is(err))

	at := time.Unix(1234567, 0)
	ctx = WithBlockTime(ctx, at)
	now, err := Now(ctx)
	require.NoError(t, err)
	assert.Equal(t, UnixTime(1234567), now)

	assert.Panics(t, func() { WithBlockTime(ctx, at) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	ctx = WithChainID(ctx, "escrow-test")
	assert.Equal(t, "escrow-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "escrow-other") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewNopLogger()
	ctx = WithLogger(ctx, logger)
	ctx = WithLogInfo(ctx, "module", "htlc")
	assert.NotNil(t, GetLogger(ctx))
}
