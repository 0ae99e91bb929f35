package cash

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/coin"
	"github.com/gorswap/swapchain/errors"
)

// Controller is the functionality needed by other extensions that move
// funds around. This is implemented by CashController, but the
// interface allows it to be mocked out or replaced.
type Controller interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. It fails if the source has insufficient
	// funds.
	MoveCoins(store swapchain.KVStore, src, dest swapchain.Address, amount coin.Coin) error

	// IssueCoins increases the number of funds on the destination
	// account by the given amount. New funds are created by this call.
	IssueCoins(store swapchain.KVStore, dest swapchain.Address, amount coin.Coin) error

	// Balance returns the coins held by an account. It fails if the
	// account does not exist.
	Balance(store swapchain.KVStore, addr swapchain.Address) (coin.Coins, error)
}

// CashController is the standard implementation of moving funds between
// wallet buckets.
type CashController struct {
	bucket Bucket
}

var _ Controller = CashController{}

// NewController returns a base CashController.
func NewController(bucket Bucket) CashController {
	return CashController{bucket: bucket}
}

// MoveCoins moves the given amount from src to dest. If src doesn't
// exist, or doesn't have sufficient coins, it fails.
func (c CashController) MoveCoins(store swapchain.KVStore, src, dest swapchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %v", &amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrap(errors.ErrAmount, "insufficient funds")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to the
// destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c CashController) IssueCoins(store swapchain.KVStore, dest swapchain.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// Balance returns the amount of funds stored on the given account.
func (c CashController) Balance(store swapchain.KVStore, addr swapchain.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(store, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire wallet")
	}
	if wallet == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no wallet %s", addr)
	}
	return wallet.Coins(), nil
}
