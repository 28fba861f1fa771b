package token

import (
	"github.com/iov-one/escrowd"
)

// RegisterQuery will register wallets as "/wallets" and the owner index
// as "/wallets/owner".
func RegisterQuery(qr escrowd.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
