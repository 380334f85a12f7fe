package repositories

import "vitrine/internal/models"

// CartRepository defines the interface for cart data access. Every user has
// at most one cart, keyed by user ID; a missing cart reads as empty.
type CartRepository interface {
	GetByUser(userID string) (*models.Cart, error)
	Save(cart *models.Cart) error
	DeleteByUser(userID string) error
}
