package token

import (
	"github.com/iov-one/escrowd/errors"
)

// ErrNotEnoughBalance is returned when the source wallet cannot cover a
// transfer. The code matches the escrow error range so clients see a single
// numbering for failed swaps.
var ErrNotEnoughBalance = errors.Register(6007, "not enough balance")
