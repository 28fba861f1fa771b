package sigs

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// signedTx is a minimal SignedTx with a fixed body.
type signedTx struct {
	body       []byte
	signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ escrowd.Tx = (*signedTx)(nil)

func (tx *signedTx) GetMsg() (escrowd.Msg, error) {
	return nil, errors.Wrap(errors.ErrMsg, "no message")
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.body, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.signatures
}
