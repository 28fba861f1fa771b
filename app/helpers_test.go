package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/escrowtest"
)

// kvMsg writes Value under Key. A value of "fail" writes and then fails.
type kvMsg struct {
	Route string `protobuf:"bytes,1,opt,name=route,proto3" json:"route,omitempty"`
	Key   []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Value []byte `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *kvMsg) Reset()         { *m = kvMsg{} }
func (m *kvMsg) String() string { return proto.CompactTextString(m) }
func (*kvMsg) ProtoMessage()    {}

func (m *kvMsg) Path() string { return m.Route }

func (m *kvMsg) Validate() error {
	if len(m.Key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

func encodeKV(t interface{ Fatal(...interface{}) }, route, key, value string) []byte {
	bz, err := proto.Marshal(&kvMsg{Route: route, Key: []byte(key), Value: []byte(value)})
	if err != nil {
		t.Fatal(err)
	}
	return bz
}

func decodeKV(raw []byte) (escrowd.Tx, error) {
	var msg kvMsg
	if err := proto.Unmarshal(raw, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &escrowtest.Tx{Msg: &msg}, nil
}

// kvHandler stores the message content.
type kvHandler struct{}

func (kvHandler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	var msg kvMsg
	msg.Route = escrowd.GetPath(tx)
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &escrowd.CheckResult{GasAllocated: 10}, nil
}

func (kvHandler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	var msg kvMsg
	msg.Route = escrowd.GetPath(tx)
	if err := escrowd.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if err := db.Set(msg.Key, msg.Value); err != nil {
		return nil, err
	}
	if string(msg.Value) == "fail" {
		return nil, errors.Wrap(errors.ErrState, "failing on purpose")
	}
	if string(msg.Value) == "panic" {
		panic("boom")
	}
	return &escrowd.DeliverResult{Data: msg.Key}, nil
}

// countingDecorator checks if it is called, once down, once out
type countingDecorator struct {
	called int
}

var _ escrowd.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx escrowd.Context, store escrowd.KVStore,
	tx escrowd.Tx, next escrowd.Checker) (*escrowd.CheckResult, error) {

	c.called++
	res, err := next.Check(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) Deliver(ctx escrowd.Context, store escrowd.KVStore,
	tx escrowd.Tx, next escrowd.Deliverer) (*escrowd.DeliverResult, error) {

	c.called++
	res, err := next.Deliver(ctx, store, tx)
	c.called++
	return res, err
}

// panicDecorator always panics
type panicDecorator struct{}

func (panicDecorator) Check(escrowd.Context, escrowd.KVStore, escrowd.Tx, escrowd.Checker) (*escrowd.CheckResult, error) {
	panic("check")
}

func (panicDecorator) Deliver(escrowd.Context, escrowd.KVStore, escrowd.Tx, escrowd.Deliverer) (*escrowd.DeliverResult, error) {
	panic("deliver")
}
