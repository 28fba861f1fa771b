package escrowtest

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
)

// NewKey returns a fresh random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh random key.
func NewCondition() escrowd.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns a 32 byte identifier with n encoded in the last bytes.
// Useful for deterministic swap ids and secrets.
func SequenceID(n uint64) []byte {
	id := make([]byte, 32)
	for i := 31; n > 0 && i >= 0; i-- {
		id[i] = byte(n)
		n >>= 8
	}
	return id
}
