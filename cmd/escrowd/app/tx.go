package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/htlc"
	"github.com/iov-one/escrowd/x/sigs"
)

// Tx is the transaction envelope of the chain. It carries the signatures
// and exactly one message.
type Tx struct {
	Signatures    []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	InitializeMsg *htlc.InitializeMsg  `protobuf:"bytes,20,opt,name=initialize_msg,json=initializeMsg,proto3" json:"initialize_msg,omitempty"`
	DepositMsg    *htlc.DepositMsg     `protobuf:"bytes,21,opt,name=deposit_msg,json=depositMsg,proto3" json:"deposit_msg,omitempty"`
	RedeemMsg     *htlc.RedeemMsg      `protobuf:"bytes,22,opt,name=redeem_msg,json=redeemMsg,proto3" json:"redeem_msg,omitempty"`
	RefundMsg     *htlc.RefundMsg      `protobuf:"bytes,23,opt,name=refund_msg,json=refundMsg,proto3" json:"refund_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ escrowd.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (escrowd.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal encodes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes the transaction.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := proto.Unmarshal(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (escrowd.Msg, error) {
	var msgs []escrowd.Msg
	if tx.InitializeMsg != nil {
		msgs = append(msgs, tx.InitializeMsg)
	}
	if tx.DepositMsg != nil {
		msgs = append(msgs, tx.DepositMsg)
	}
	if tx.RedeemMsg != nil {
		msgs = append(msgs, tx.RedeemMsg)
	}
	if tx.RefundMsg != nil {
		msgs = append(msgs, tx.RefundMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "transaction has no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction has %d messages", len(msgs))
	}
}

// SetMsg places msg in the matching field of the transaction.
func (tx *Tx) SetMsg(msg escrowd.Msg) error {
	switch m := msg.(type) {
	case *htlc.InitializeMsg:
		tx.InitializeMsg = m
	case *htlc.DepositMsg:
		tx.DepositMsg = m
	case *htlc.RedeemMsg:
		tx.RedeemMsg = m
	case *htlc.RefundMsg:
		tx.RefundMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign, the encoded transaction without
// its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	body := *tx
	body.Signatures = nil
	return body.Marshal()
}
