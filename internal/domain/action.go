package domain

// Action is a cart transition dispatched by the UI.
type Action interface {
	// Name identifies the action kind in logs and metrics.
	Name() string
}

// AddAction adds one unit of Product.
type AddAction struct {
	Product Product
}

// Name implements Action.
func (AddAction) Name() string { return "add" }

// RemoveAction removes one unit of the product with the given ID.
type RemoveAction struct {
	ID int
}

// Name implements Action.
func (RemoveAction) Name() string { return "remove" }

// Reduce applies action to cart and returns the resulting cart.
// Unknown actions yield an equal copy of cart.
func Reduce(cart Cart, action Action) Cart {
	switch a := action.(type) {
	case AddAction:
		return AddToCart(cart, a.Product)
	case RemoveAction:
		return RemoveFromCart(cart, a.ID)
	default:
		return cart.clone(0)
	}
}
