package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int) Product {
	return Product{
		ID:       id,
		Title:    "Product",
		Price:    9.99,
		Category: "electronics",
		Image:    "https://img.example.com/p.jpg",
	}
}

func item(id, amount int) CartLineItem {
	return CartLineItem{Product: product(id), Amount: amount}
}

// ============================================================================
// AddToCart Tests
// ============================================================================

func TestAddToCart_NewProductAppended(t *testing.T) {
	cart := Cart{item(1, 2), item(2, 1)}

	got := AddToCart(cart, product(3))

	require.Len(t, got, 3)
	assert.Equal(t, 3, got[2].ID)
	assert.Equal(t, 1, got[2].Amount)
	if diff := cmp.Diff(cart, got[:2]); diff != "" {
		t.Errorf("prior items changed (-want +got):\n%s", diff)
	}
}

func TestAddToCart_ExistingProductIncremented(t *testing.T) {
	cart := Cart{item(1, 2), item(2, 1)}

	got := AddToCart(cart, product(1))

	require.Len(t, got, 2)
	assert.Equal(t, 3, got.Amount(1))
	assert.Equal(t, 1, got.Amount(2))
}

func TestAddToCart_EmptyCart(t *testing.T) {
	got := AddToCart(nil, product(42))

	want := Cart{item(42, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddToCart mismatch (-want +got):\n%s", diff)
	}
}

func TestAddToCart_DoesNotMutateInput(t *testing.T) {
	cart := make(Cart, 1, 8)
	cart[0] = item(1, 1)

	incremented := AddToCart(cart, product(1))
	appended := AddToCart(cart, product(2))

	assert.Equal(t, 1, cart[0].Amount)
	assert.Len(t, cart, 1)
	assert.Equal(t, 2, incremented.Amount(1))
	assert.Equal(t, Cart{item(1, 1), item(2, 1)}, appended)

	// The appended cart must not share its backing array with the input.
	appended[0].Amount = 99
	assert.Equal(t, 1, cart[0].Amount)
}

func TestAddToCart_PreservesInsertionOrder(t *testing.T) {
	var cart Cart
	for _, id := range []int{5, 3, 9, 3, 5} {
		cart = AddToCart(cart, product(id))
	}

	ids := make([]int, 0, len(cart))
	for _, it := range cart {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int{5, 3, 9}, ids)
	assert.Equal(t, 2, cart.Amount(5))
	assert.Equal(t, 2, cart.Amount(3))
	assert.Equal(t, 1, cart.Amount(9))
}

// ============================================================================
// RemoveFromCart Tests
// ============================================================================

func TestRemoveFromCart_AmountOneRemovesItem(t *testing.T) {
	cart := Cart{item(1, 2), item(2, 1), item(3, 4)}

	got := RemoveFromCart(cart, 2)

	assert.Equal(t, Cart{item(1, 2), item(3, 4)}, got)
	assert.Equal(t, -1, got.Index(2))
}

func TestRemoveFromCart_AmountAboveOneDecrements(t *testing.T) {
	cart := Cart{item(1, 3), item(2, 1)}

	got := RemoveFromCart(cart, 1)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got.Amount(1))
	assert.Equal(t, 1, got.Amount(2))
	assert.Equal(t, 3, cart.Amount(1), "input cart must stay untouched")
}

func TestRemoveFromCart_MissingIDIsNoop(t *testing.T) {
	cart := Cart{item(1, 3), item(2, 1)}

	got := RemoveFromCart(cart, 99)
	again := RemoveFromCart(got, 99)

	assert.True(t, cart.Equal(got))
	assert.True(t, cart.Equal(again))
}

func TestRemoveFromCart_EmptyCart(t *testing.T) {
	got := RemoveFromCart(nil, 1)
	assert.Empty(t, got)
	assert.True(t, got.Equal(nil))
}

func TestRemoveFromCart_NeverProducesZeroAmount(t *testing.T) {
	cart := Cart{item(1, 2), item(2, 2)}
	for i := 0; i < 5; i++ {
		cart = RemoveFromCart(cart, 1)
		for _, it := range cart {
			assert.GreaterOrEqual(t, it.Amount, 1)
		}
	}
	assert.Equal(t, Cart{item(2, 2)}, cart)
}

// ============================================================================
// TotalItems Tests
// ============================================================================

func TestTotalItems_Empty(t *testing.T) {
	assert.Equal(t, 0, TotalItems(nil))
	assert.Equal(t, 0, TotalItems(Cart{}))
}

func TestTotalItems_SumsAmounts(t *testing.T) {
	cart := Cart{item(1, 2), item(2, 3)}
	assert.Equal(t, 5, TotalItems(cart))
	assert.Equal(t, 5, cart.TotalItems())
}

// ============================================================================
// Helpers
// ============================================================================

func TestCart_IndexAndAmount(t *testing.T) {
	cart := Cart{item(4, 1), item(8, 6)}

	assert.Equal(t, 0, cart.Index(4))
	assert.Equal(t, 1, cart.Index(8))
	assert.Equal(t, -1, cart.Index(15))
	assert.Equal(t, 6, cart.Amount(8))
	assert.Equal(t, 0, cart.Amount(15))
}

func TestCart_Equal(t *testing.T) {
	a := Cart{item(1, 1), item(2, 2)}

	assert.True(t, a.Equal(Cart{item(1, 1), item(2, 2)}))
	assert.False(t, a.Equal(Cart{item(2, 2), item(1, 1)}), "order matters")
	assert.False(t, a.Equal(Cart{item(1, 1), item(2, 3)}))
	assert.False(t, a.Equal(Cart{item(1, 1)}))
	assert.True(t, Cart(nil).Equal(Cart{}))
}

// ============================================================================
// Scenario
// ============================================================================

func TestCart_AddTwiceThenRemoveTwice(t *testing.T) {
	var cart Cart

	cart = AddToCart(cart, product(7))
	cart = AddToCart(cart, product(7))
	assert.Equal(t, Cart{item(7, 2)}, cart)

	cart = RemoveFromCart(cart, 7)
	assert.Equal(t, Cart{item(7, 1)}, cart)

	cart = RemoveFromCart(cart, 7)
	assert.Empty(t, cart)
	assert.Equal(t, 0, cart.TotalItems())
}
