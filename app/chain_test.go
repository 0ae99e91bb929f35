package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/swaptest"
	"github.com/gorswap/swapchain/x/utils"
)

// panicDecorator panics at a given height, to prove that the recovery
// decorator above it converts the panic into an error.
type panicDecorator struct {
	height int64
}

func (d panicDecorator) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (*swapchain.CheckResult, error) {
	d.maybePanic(ctx)
	return next.Check(ctx, db, tx)
}

func (d panicDecorator) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (*swapchain.DeliverResult, error) {
	d.maybePanic(ctx)
	return next.Deliver(ctx, db, tx)
}

func (d panicDecorator) maybePanic(ctx swapchain.Context) {
	if height, _ := swapchain.GetHeight(ctx); height >= d.height {
		panic("too high")
	}
}

func TestChain(t *testing.T) {
	c1 := &swaptest.Decorator{}
	c2 := &swaptest.Decorator{}
	c3 := &swaptest.Decorator{}
	h := &swaptest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		panicDecorator{height: 6},
		c3,
	).WithHandler(h)

	bg := context.Background()

	_, err := stack.Check(bg, nil, nil)
	assert.NoError(t, err)
	ctx := swapchain.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// Past the panic height the recovery decorator reports an error
	// and nothing below the panic runs.
	ctx = swapchain.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, nil)
	assert.Error(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.Error(t, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainNilDecorator(t *testing.T) {
	h := &swaptest.Handler{}
	c := &swaptest.Decorator{}

	// Nil entries let callers include decorators conditionally.
	var missing *swaptest.Decorator
	stack := ChainDecorators(nil, c, missing).WithHandler(h)

	_, err := stack.Check(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, c.CallCount())
	assert.Equal(t, 1, h.CallCount())
}

func TestChainShortCircuit(t *testing.T) {
	h := &swaptest.Handler{}
	c := &swaptest.Decorator{
		CheckErr: errors.ErrUnauthorized.New("denied"),
	}

	stack := ChainDecorators(c).WithHandler(h)

	_, err := stack.Check(context.Background(), nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())

	_, err = stack.Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.CallCount())
}
