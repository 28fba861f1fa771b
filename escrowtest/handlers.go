package escrowtest

import "github.com/iov-one/escrowd"

// Handler counts calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult escrowd.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult escrowd.DeliverResult
	DeliverErr    error

	// Seen is the context of the latest call.
	Seen escrowd.Context
}

var _ escrowd.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.CheckResult, error) {
	h.checkCall++
	h.Seen = ctx
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx escrowd.Context, db escrowd.KVStore, tx escrowd.Tx) (*escrowd.DeliverResult, error) {
	h.deliverCall++
	h.Seen = ctx
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
