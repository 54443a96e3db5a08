package domain

// CartLineItem is a product held in the cart together with its quantity.
// Amount is always at least 1; line items that would drop to zero are removed.
type CartLineItem struct {
	Product
	Amount int `json:"amount"`
}

// Cart is an ordered list of line items, unique by product ID, in first-add order.
//
// A Cart is a value: AddToCart and RemoveFromCart never write to the slice they
// are given and always return a freshly allocated one.
type Cart []CartLineItem

// AddToCart returns a new cart with one more unit of p. An existing line item
// for p.ID has its amount incremented in place of the old one; otherwise a new
// line item with amount 1 is appended.
func AddToCart(cart Cart, p Product) Cart {
	idx := cart.Index(p.ID)
	if idx >= 0 {
		next := cart.clone(0)
		next[idx].Amount++
		return next
	}

	next := cart.clone(1)
	return append(next, CartLineItem{Product: p, Amount: 1})
}

// RemoveFromCart returns a new cart with one unit of the product removed.
// A line item at amount 1 is dropped entirely. Removing an ID that is not in
// the cart yields an equal copy.
func RemoveFromCart(cart Cart, id int) Cart {
	next := make(Cart, 0, len(cart))
	for _, item := range cart {
		if item.ID != id {
			next = append(next, item)
			continue
		}
		if item.Amount <= 1 {
			continue
		}
		item.Amount--
		next = append(next, item)
	}
	return next
}

// TotalItems returns the sum of amounts across all line items.
func TotalItems(cart Cart) int {
	var total int
	for _, item := range cart {
		total += item.Amount
	}
	return total
}

// TotalItems returns the sum of amounts across all line items.
func (c Cart) TotalItems() int {
	return TotalItems(c)
}

// Index returns the position of the line item for the given product ID,
// or -1 if the product is not in the cart.
func (c Cart) Index(id int) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Amount returns the quantity held for the given product ID, 0 if absent.
func (c Cart) Amount(id int) int {
	if i := c.Index(id); i >= 0 {
		return c[i].Amount
	}
	return 0
}

// Equal reports whether both carts hold the same line items in the same order.
// A nil cart equals an empty one.
func (c Cart) Equal(other Cart) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// clone copies the cart into a new slice with room for extra appended items.
func (c Cart) clone(extra int) Cart {
	next := make(Cart, len(c), len(c)+extra)
	copy(next, c)
	return next
}
