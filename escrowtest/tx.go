package escrowtest

import "github.com/iov-one/escrowd"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg escrowd.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ escrowd.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (escrowd.Msg, error) {
	return tx.Msg, tx.Err
}
