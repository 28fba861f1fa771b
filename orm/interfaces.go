/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key and may possess secondary indexes.
* Easy queries for one and iteration.

Values are protobuf messages, encoded with gogo/protobuf.
*/
package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
)

// Model is the value stored in a bucket. It is a protobuf message that can
// validate itself and produce a deep copy.
type Model interface {
	proto.Message
	Validate() error
	Copy() Model
}

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
	Value() Model
}

// Reader defines an interface that allows reading objects from the db
type Reader interface {
	Get(db escrowd.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}
