package app

import (
	"fmt"
	"regexp"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// isPath ensures handlers are registered under "module/action" paths.
var isPath = regexp.MustCompile(`^[a-z]+/[a-z_]+$`).MatchString

// Router maps message paths to handlers and dispatches transactions by
// the path of their message. It implements both the Registry interface
// used during setup and the Handler interface used at runtime.
type Router struct {
	routes map[string]swapchain.Handler
}

var _ swapchain.Registry = (*Router)(nil)
var _ swapchain.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]swapchain.Handler, 10),
	}
}

// Handle adds a new route. Panics on invalid path or duplicate
// registration, as both are programmer errors during setup.
func (r *Router) Handle(m swapchain.Msg, h swapchain.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// Check dispatches to the handler registered for the message path.
func (r *Router) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the handler registered for the message path.
func (r *Router) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx swapchain.Tx) (swapchain.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "get message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
