package escrowd

import "time"

// UnixTime represents a point in time as POSIX time with seconds
// precision. Lock times on the counterpart ledgers are expressed the same
// way.
type UnixTime int64

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}
