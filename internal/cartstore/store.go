// Package cartstore holds the session's cart and applies cart actions to it.
package cartstore

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/pkg/logger"
)

// Listener is notified after an action changed the cart.
type Listener func(prev, next domain.Cart)

// Store owns the current cart for one shopping session. Each action replaces
// the held cart with the value returned by domain.Reduce.
//
// A Store is not safe for concurrent use; it belongs to the UI event loop.
type Store struct {
	cart      domain.Cart
	sessionID string
	listeners []Listener
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for action logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

// New creates a store holding an empty cart.
func New(opts ...Option) *Store {
	s := &Store{
		cart:      domain.Cart{},
		sessionID: uuid.New().String(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session_id", s.sessionID))
	observe(s.cart)
	return s
}

// Cart returns the current cart. Callers must not modify it.
func (s *Store) Cart() domain.Cart {
	return s.cart
}

// TotalItems returns the number of units in the cart.
func (s *Store) TotalItems() int {
	return domain.TotalItems(s.cart)
}

// SessionID identifies the shopping session in logs and outgoing requests.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Subscribe registers l to be called after every action that changes the cart.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// AddToCart dispatches an AddAction for p.
func (s *Store) AddToCart(ctx context.Context, p domain.Product) domain.Cart {
	return s.Dispatch(ctx, domain.AddAction{Product: p})
}

// RemoveFromCart dispatches a RemoveAction for id.
func (s *Store) RemoveFromCart(ctx context.Context, id int) domain.Cart {
	return s.Dispatch(ctx, domain.RemoveAction{ID: id})
}

// Dispatch applies action to the current cart, stores the result and returns it.
// Listeners are only notified when the cart actually changed.
func (s *Store) Dispatch(ctx context.Context, action domain.Action) domain.Cart {
	prev := s.cart
	next := domain.Reduce(prev, action)
	outcome := classify(prev, next, action)

	cartActionsTotal.WithLabelValues(action.Name(), outcome).Inc()
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "cart action",
		slog.String("action", action.Name()),
		slog.String("outcome", outcome),
		slog.Int("line_items", len(next)),
		slog.Int("total_items", domain.TotalItems(next)),
	)

	if next.Equal(prev) {
		return prev
	}

	s.cart = next
	observe(next)
	for _, l := range s.listeners {
		l(prev, next)
	}
	return next
}

// classify names the change an action made, for metrics and logs.
func classify(prev, next domain.Cart, action domain.Action) string {
	var id int
	switch a := action.(type) {
	case domain.AddAction:
		id = a.Product.ID
	case domain.RemoveAction:
		id = a.ID
	default:
		return OutcomeNoop
	}

	before, after := prev.Amount(id), next.Amount(id)
	switch {
	case before == 0 && after > 0:
		return OutcomeAdded
	case after > before:
		return OutcomeIncremented
	case before > 0 && after == 0:
		return OutcomeRemoved
	case after < before:
		return OutcomeDecremented
	default:
		return OutcomeNoop
	}
}

func observe(cart domain.Cart) {
	cartLineItems.Set(float64(len(cart)))
	cartTotalItems.Set(float64(domain.TotalItems(cart)))
}
