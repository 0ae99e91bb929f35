package swaptest

import "github.com/gorswap/swapchain"

// Handler is a mock implementing the swapchain.Handler interface. It
// counts calls and returns declared results.
type Handler struct {
	checkCall   int
	CheckResult swapchain.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult swapchain.DeliverResult
	DeliverErr    error
}

var _ swapchain.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
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
