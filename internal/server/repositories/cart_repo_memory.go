package repositories

import (
	"sync"

	"github.com/shopspring/decimal"

	"vitrine/internal/models"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]models.Cart)}
}

// GetByUser returns the user's cart, or an empty cart when none exists yet.
func (r *MemoryCartRepository) GetByUser(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}, Total: decimal.Zero}, nil
	}
	copied := cart
	copied.Items = make([]models.CartItem, len(cart.Items))
	copy(copied.Items, cart.Items)
	return &copied, nil
}

// Save stores the cart wholesale.
func (r *MemoryCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.UserID] = *cart
	return nil
}

// DeleteByUser drops the user's cart.
func (r *MemoryCartRepository) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
