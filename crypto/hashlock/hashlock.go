/*
Package hashlock contains the digests that bind a secret to its public
commitment, and the hex form used to pass 32 byte values around.

Only Sha256 is used to open a swap. Keccak256 is kept for comparing
commitments with counterpart chains that hash with the keccak family.
*/
package hashlock

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/iov-one/escrowd/errors"
	"golang.org/x/crypto/sha3"
)

// Size is the length of every digest, secret and swap id.
const Size = 32

// Sha256 returns the sha256 digest of data.
func Sha256(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// Keccak256 returns the legacy keccak256 digest of data, as used by
// ethereum style chains. This is not the standardized SHA3-256.
func Keccak256(data []byte) [Size]byte {
	var out [Size]byte
	h := sha3.NewLegacyKeccak256()
	// hash.Hash never returns an error on write
	_, _ = h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}

// Encode returns the lowercase hex representation.
func Encode(v [Size]byte) string {
	return hex.EncodeToString(v[:])
}

// Decode parses a hex encoded 32 byte value. Both cases are accepted.
func Decode(s string) ([Size]byte, error) {
	var out [Size]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	if len(raw) != Size {
		return out, errors.Wrapf(errors.ErrInput, "want %d bytes, got %d", Size, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// Matches returns true if sha256(secret) equals hash.
func Matches(secret, hash []byte) bool {
	if len(secret) != Size || len(hash) != Size {
		return false
	}
	digest := Sha256(secret)
	return string(digest[:]) == string(hash)
}
