// Package cart owns the client-visible cart state. State only ever changes
// by calling the backend and then refetching the authoritative cart; the
// synchronizer never trusts its own optimistic projection. Transient write
// conflicts on add are reconciled by treating the refetch as the outcome.
package cart

import (
	"context"
	"sync"

	"vitrine/internal/api"
	"vitrine/internal/models"
)

// API is the slice of the API client the synchronizer drives.
type API interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}

// Synchronizer holds the last-fetched cart projection. Operations are
// serialized by the mutex; each mutate-then-refetch chain completes before
// the next caller observes state.
type Synchronizer struct {
	mu    sync.Mutex
	api   API
	state models.CartState
}

// New creates a Synchronizer with an empty cart.
func New(a API) *Synchronizer {
	return &Synchronizer{api: a, state: models.EmptyCartState()}
}

// State returns a snapshot of the current cart projection.
func (s *Synchronizer) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Synchronizer) snapshot() models.CartState {
	copied := s.state
	copied.Items = make([]models.CartItem, len(s.state.Items))
	copy(copied.Items, s.state.Items)
	return copied
}

// Reset drops the cart back to empty. Called when authentication becomes
// false, including logout; no network call is made.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.EmptyCartState()
}

// Refresh fetches the authoritative cart and replaces the projection
// wholesale. On failure the error message is recorded but the last-known
// item list stays in place.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	fetched, err := s.api.GetCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Err = api.ErrorMessage(err)
		return err
	}

	count := 0
	for _, item := range fetched.Items {
		count += item.Quantity
	}
	s.state = models.CartState{
		Items: fetched.Items,
		Total: fetched.Total,
		Count: count,
	}
	return nil
}

// AddToCart adds quantity of a product (floored at 1) and then refreshes,
// whatever the add outcome. A concurrency conflict on the add is resolved by
// the refresh and reported as success; any other add failure records the
// message and is returned to the caller.
func (s *Synchronizer) AddToCart(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	addErr := s.api.AddCartItem(ctx, productID, quantity)
	refreshErr := s.Refresh(ctx)

	if addErr == nil {
		return refreshErr
	}
	if api.IsConcurrencyError(addErr) {
		// The backend raced two writes on this cart; the refetched state is
		// already ground truth.
		return nil
	}
	s.setError(api.ErrorMessage(addErr))
	return addErr
}

// RemoveFromCart removes a line, best effort. A failed remove records the
// message but is not returned; the cart is resynchronized either way.
func (s *Synchronizer) RemoveFromCart(ctx context.Context, productID string) error {
	if err := s.api.RemoveCartItem(ctx, productID); err != nil {
		s.setError(api.ErrorMessage(err))
	}
	return s.Refresh(ctx)
}

// UpdateQuantity sets the quantity of a line. Quantities at or below zero
// delegate to RemoveFromCart. The backend has no set-quantity endpoint, so
// the line is removed and re-added. Failures are returned to the caller.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}

	if err := s.api.RemoveCartItem(ctx, productID); err != nil {
		s.setError(api.ErrorMessage(err))
		return err
	}
	if err := s.api.AddCartItem(ctx, productID, quantity); err != nil {
		s.setError(api.ErrorMessage(err))
		return err
	}
	return s.Refresh(ctx)
}

// ClearCart empties the cart and refreshes. Failures are returned to the
// caller.
func (s *Synchronizer) ClearCart(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil {
		s.setError(api.ErrorMessage(err))
		return err
	}
	return s.Refresh(ctx)
}

func (s *Synchronizer) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = message
}
