package swap

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/coin"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/x"
	"github.com/gorswap/swapchain/x/cash"
)

const (
	// pay order creation cost up-front
	createOrderCost int64 = 300
	fillOrderCost   int64 = 300
	cancelOrderCost int64 = 0
)

// Rent reserves keep the custody wallets alive while the order is open.
// They are debited from the maker at create and refunded to the maker
// by the destroying transition, never to anyone else.
const (
	orderRent  int64 = 1_850_880
	escrowRent int64 = 2_039_280
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r swapchain.Registry, auth x.Authenticator, control cash.Controller) {
	bucket := NewBucket()

	r.Handle(&CreateOrderMsg{}, CreateOrderHandler{auth, bucket, control})
	r.Handle(&FillOrderMsg{}, FillOrderHandler{auth, bucket, control})
	r.Handle(&CancelOrderMsg{}, CancelOrderHandler{auth, bucket, control})
}

// RegisterQuery exposes open orders via the abci query interface.
func RegisterQuery(qr swapchain.QueryRouter) {
	NewBucket().Register("orders", qr)
}

//---- create

// CreateOrderHandler opens an order and locks the committed asset.
type CreateOrderHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ swapchain.Handler = CreateOrderHandler{}

// Check does the validation and sets the cost of the transaction.
func (h CreateOrderHandler) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{GasAllocated: createOrderCost}, nil
}

// Deliver writes the order record and moves the committed asset plus
// the rent reserves into custody.
func (h CreateOrderHandler) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	order := &Order{
		Maker:          msg.Maker,
		Amount:         msg.Amount,
		Direction:      msg.Direction,
		ExpirationSlot: msg.ExpirationSlot,
	}
	if err := h.bucket.Save(db, order); err != nil {
		return nil, err
	}

	orderAddr := OrderAddress(msg.Maker, msg.Amount)

	// Both custody layouts charge the maker the order rent. A
	// wrapped-for-native order additionally locks the committed amount
	// and the escrow rent in the escrow wallet; a native-for-wrapped
	// order holds the committed amount in the order wallet itself.
	if err := h.bank.MoveCoins(db, msg.Maker, orderAddr, coin.NewCoin(orderRent, NativeTicker)); err != nil {
		return nil, errors.Wrap(err, "order rent")
	}
	switch msg.Direction {
	case DirectionWrappedForNative:
		escrowAddr := EscrowAddress(msg.Maker, msg.Amount)
		if err := h.bank.MoveCoins(db, msg.Maker, escrowAddr, coin.NewCoin(msg.Amount, WrappedTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow deposit")
		}
		if err := h.bank.MoveCoins(db, msg.Maker, escrowAddr, coin.NewCoin(escrowRent, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow rent")
		}
	case DirectionNativeForWrapped:
		if err := h.bank.MoveCoins(db, msg.Maker, orderAddr, coin.NewCoin(msg.Amount, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "order deposit")
		}
	}

	return &swapchain.DeliverResult{
		Data: orderAddr,
		Tags: orderTags("order_created", orderAddr, msg.Maker),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateOrderHandler) validate(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*CreateOrderMsg, error) {
	var msg CreateOrderMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Maker must authorize this.
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	// The order address is fully determined by (maker, amount), so a
	// second open order for the same pair is an address collision.
	if h.bucket.Has(db, orderKey(msg.Maker, msg.Amount)) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "open order for %s over %d", msg.Maker, msg.Amount)
	}

	return &msg, nil
}

//---- fill

// FillOrderHandler completes the swap for any taker.
type FillOrderHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ swapchain.Handler = FillOrderHandler{}

// Check just verifies the fill is currently possible and returns the
// cost of executing it.
func (h FillOrderHandler) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{GasAllocated: fillOrderCost}, nil
}

// Deliver executes both legs of the exchange in one transaction,
// destroys the order record and refunds the rent reserves to the maker.
func (h FillOrderHandler) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	order, taker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	orderAddr := OrderAddress(order.Maker, order.Amount)

	switch order.Direction {
	case DirectionWrappedForNative:
		// Taker pays native to the maker, escrow releases the wrapped
		// deposit to the taker.
		escrowAddr := EscrowAddress(order.Maker, order.Amount)
		if err := h.bank.MoveCoins(db, taker, order.Maker, coin.NewCoin(order.Amount, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "taker payment")
		}
		if err := h.bank.MoveCoins(db, escrowAddr, taker, coin.NewCoin(order.Amount, WrappedTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow release")
		}
		if err := h.bank.MoveCoins(db, escrowAddr, order.Maker, coin.NewCoin(escrowRent, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow rent refund")
		}
	case DirectionNativeForWrapped:
		// Taker pays wrapped to the maker, the order wallet releases
		// its native deposit to the taker.
		if err := h.bank.MoveCoins(db, taker, order.Maker, coin.NewCoin(order.Amount, WrappedTicker)); err != nil {
			return nil, errors.Wrap(err, "taker payment")
		}
		if err := h.bank.MoveCoins(db, orderAddr, taker, coin.NewCoin(order.Amount, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "order release")
		}
	}
	if err := h.bank.MoveCoins(db, orderAddr, order.Maker, coin.NewCoin(orderRent, NativeTicker)); err != nil {
		return nil, errors.Wrap(err, "order rent refund")
	}

	// Deletion is the durable terminal marker: a second fill or cancel
	// finds nothing.
	if err := h.bucket.Delete(db, orderKey(order.Maker, order.Amount)); err != nil {
		return nil, err
	}

	return &swapchain.DeliverResult{
		Data: orderAddr,
		Tags: orderTags("order_filled", orderAddr, order.Maker),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h FillOrderHandler) validate(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*Order, swapchain.Address, error) {
	var msg FillOrderMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	order, err := loadOrder(h.bucket, db, msg.Maker, msg.Amount)
	if err != nil {
		return nil, nil, err
	}

	if swapchain.IsExpiredAt(ctx, order.ExpirationSlot) {
		return nil, nil, errors.Wrapf(ErrOrderExpired, "slot %d", order.ExpirationSlot)
	}

	// Whoever signed the transaction acts as the taker.
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	return order, signer.Address(), nil
}

//---- cancel

// CancelOrderHandler aborts an open order, returning custody to the
// maker. Always available to the maker, even past expiration.
type CancelOrderHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ swapchain.Handler = CancelOrderHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h CancelOrderHandler) Check(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{GasAllocated: cancelOrderCost}, nil
}

// Deliver reverses the create in full: custody and rent reserves return
// to the maker and the order record is destroyed.
func (h CancelOrderHandler) Deliver(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	order, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	orderAddr := OrderAddress(order.Maker, order.Amount)

	switch order.Direction {
	case DirectionWrappedForNative:
		escrowAddr := EscrowAddress(order.Maker, order.Amount)
		if err := h.bank.MoveCoins(db, escrowAddr, order.Maker, coin.NewCoin(order.Amount, WrappedTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow refund")
		}
		if err := h.bank.MoveCoins(db, escrowAddr, order.Maker, coin.NewCoin(escrowRent, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "escrow rent refund")
		}
	case DirectionNativeForWrapped:
		if err := h.bank.MoveCoins(db, orderAddr, order.Maker, coin.NewCoin(order.Amount, NativeTicker)); err != nil {
			return nil, errors.Wrap(err, "order refund")
		}
	}
	if err := h.bank.MoveCoins(db, orderAddr, order.Maker, coin.NewCoin(orderRent, NativeTicker)); err != nil {
		return nil, errors.Wrap(err, "order rent refund")
	}

	if err := h.bucket.Delete(db, orderKey(order.Maker, order.Amount)); err != nil {
		return nil, err
	}

	return &swapchain.DeliverResult{
		Data: orderAddr,
		Tags: orderTags("order_cancelled", orderAddr, order.Maker),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelOrderHandler) validate(ctx swapchain.Context, db swapchain.KVStore, tx swapchain.Tx) (*Order, error) {
	var msg CancelOrderMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	order, err := loadOrder(h.bucket, db, msg.Maker, msg.Amount)
	if err != nil {
		return nil, err
	}

	// Only the maker may cancel. Expiration is not checked: it gates
	// fills, never the maker's right to reclaim funds.
	if !h.auth.HasAddress(ctx, order.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the maker may cancel")
	}

	return order, nil
}

// loadOrder fetches an open order, or fails with not-found. A consumed
// order is indistinguishable from one that never existed.
func loadOrder(bucket Bucket, db swapchain.KVStore, maker swapchain.Address, amount int64) (*Order, error) {
	order, err := bucket.GetOrder(db, maker, amount)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "order for %s over %d", maker, amount)
	}
	return order, nil
}

func orderTags(action string, orderAddr, maker swapchain.Address) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("swap"), Value: []byte(action)},
		{Key: []byte("order"), Value: []byte(orderAddr.String())},
		{Key: []byte("maker"), Value: []byte(maker.String())},
	}
}
