package swap

import (
	"bytes"
	"testing"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/swaptest"
	"github.com/gorswap/swapchain/swaptest/assert"
)

func TestAddressDerivation(t *testing.T) {
	maker := swaptest.NewCondition().Address()

	// the condition payload must be maker || amount as little-endian,
	// byte for byte
	cond := OrderCondition(maker, 1_000_000_000)
	_, _, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, []byte(maker), data[:swapchain.AddressLength])
	assert.Equal(t, []byte{0x00, 0xca, 0x9a, 0x3b, 0, 0, 0, 0}, data[swapchain.AddressLength:])

	// derivation is a pure function
	assert.Equal(t, cond, OrderCondition(maker, 1_000_000_000))
	assert.Equal(t, OrderAddress(maker, 7), OrderAddress(maker, 7))

	// order and escrow identities never collide
	if OrderAddress(maker, 7).Equals(EscrowAddress(maker, 7)) {
		t.Fatal("order and escrow addresses collide")
	}

	// distinct pairs give distinct addresses
	other := swaptest.NewCondition().Address()
	if OrderAddress(maker, 7).Equals(OrderAddress(other, 7)) {
		t.Fatal("different makers share an order address")
	}
	if OrderAddress(maker, 7).Equals(OrderAddress(maker, 8)) {
		t.Fatal("different amounts share an order address")
	}

	assert.Nil(t, cond.Validate())
	assert.Nil(t, OrderAddress(maker, 7).Validate())
	assert.Nil(t, EscrowCondition(maker, 7).Validate())
}

func TestOrderSerialization(t *testing.T) {
	maker := swaptest.NewCondition().Address()
	order := &Order{
		Maker:          maker,
		Amount:         1_000_000_000,
		Direction:      DirectionWrappedForNative,
		ExpirationSlot: 12345,
	}

	bz, err := order.Marshal()
	assert.Nil(t, err)

	// amount is stored in the same little-endian form the address
	// derivation consumes
	amt := bz[swapchain.AddressLength : swapchain.AddressLength+8]
	if !bytes.Equal(amt, []byte{0x00, 0xca, 0x9a, 0x3b, 0, 0, 0, 0}) {
		t.Fatalf("unexpected amount encoding %x", amt)
	}

	var read Order
	assert.Nil(t, read.Unmarshal(bz))
	assert.Equal(t, order, &read)
}

func TestOrderValidate(t *testing.T) {
	maker := swaptest.NewCondition().Address()

	cases := map[string]struct {
		order   *Order
		wantErr bool
	}{
		"valid": {
			order: &Order{Maker: maker, Amount: 1, Direction: DirectionNativeForWrapped, ExpirationSlot: 10},
		},
		"zero amount": {
			order:   &Order{Maker: maker, Amount: 0, Direction: DirectionNativeForWrapped, ExpirationSlot: 10},
			wantErr: true,
		},
		"bad direction": {
			order:   &Order{Maker: maker, Amount: 1, Direction: 2, ExpirationSlot: 10},
			wantErr: true,
		},
		"short maker address": {
			order:   &Order{Maker: []byte{1, 2, 3}, Amount: 1, Direction: DirectionNativeForWrapped, ExpirationSlot: 10},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.order.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
			} else {
				assert.Nil(t, err)
			}
		})
	}
}
