package escrowd_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("address is printed as upper case hex", t, func() {
		addr := escrowd.Address([]byte{0xde, 0xad, 0xbe, 0xef})

		So(addr.String(), ShouldEqual, "DEADBEEF")
		So(escrowd.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("condition keeps extension and type readable", t, func() {
		cond := escrowd.NewCondition("htlc", "vault", []byte{0x01, 0xff})

		So(cond.String(), ShouldEqual, "htlc/vault/01FF")
		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte(cond)))
	})
}

func TestConditionParse(t *testing.T) {
	cond := escrowd.NewCondition("sigs", "ed25519", []byte("pubkey"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte("pubkey"), data)
	assert.NoError(t, cond.Validate())

	bad := escrowd.Condition("no-slashes")
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
}

func TestConditionAddress(t *testing.T) {
	a := escrowd.NewCondition("htlc", "vault", []byte("ETH"))
	b := escrowd.NewCondition("htlc", "vault", []byte("BTC"))

	assert.Len(t, a.Address(), escrowd.AddressLength)
	assert.True(t, a.Address().Equals(a.Address()))
	assert.False(t, a.Address().Equals(b.Address()))
	assert.NoError(t, a.Address().Validate())
	assert.Nil(t, escrowd.NewAddress(nil))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	raw := []byte("0123456789abcdefghij")
	bech, err := escrowd.Address(raw).Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr escrowd.Address
	}{
		"malformed hex": {
			json:    `"hex:30313233343536373839616263646566676869zz"`,
			wantErr: errors.ErrInput,
		},
		"valid hex": {
			json:     `"hex:303132333435363738396162636465666768696a"`,
			wantAddr: escrowd.Address(raw),
		},
		"valid plain hex": {
			json:     `"303132333435363738396162636465666768696a"`,
			wantAddr: escrowd.Address(raw),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: escrowd.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: escrowd.Address(raw),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"too short": {
			json:    `"hex:0102"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a escrowd.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := escrowd.Address([]byte("0123456789abcdefghij"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"303132333435363738396162636465666768696A"`, string(raw))

	var back escrowd.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back)
}
