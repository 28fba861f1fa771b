package htlc

import (
	"github.com/iov-one/escrowd"
)

// redeemOpen returns true while now is within the lock window. The window
// closes after lockTime, so now == lockTime still allows a redeem and
// refunds start one second later.
func redeemOpen(now escrowd.UnixTime, lockTime uint64) bool {
	if now < 0 {
		return true
	}
	return uint64(now) <= lockTime
}
