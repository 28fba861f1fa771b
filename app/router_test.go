package app

import (
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/escrowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	counter := &escrowtest.Handler{}
	failing := &escrowtest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle("good/path", counter)
	r.Handle("bad", failing)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("good/path", counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })

	good := &escrowtest.Tx{Msg: &kvMsg{Route: "good/path"}}
	_, err := r.Check(nil, nil, good)
	require.NoError(t, err)
	_, err = r.Deliver(nil, nil, good)
	require.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	bad := &escrowtest.Tx{Msg: &kvMsg{Route: "bad"}}
	_, err = r.Check(nil, nil, bad)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = r.Deliver(nil, nil, bad)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	missing := &escrowtest.Tx{Msg: &kvMsg{Route: "missing"}}
	_, err = r.Check(nil, nil, missing)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(nil, nil, missing)
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(nil, nil, &escrowtest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Check(nil, nil, &escrowtest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, 2, counter.CallCount())
}
