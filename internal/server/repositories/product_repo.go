// Package repositories holds the devserver's data access layer: one
// interface per entity, with an in-memory implementation for tests and quick
// starts and a GORM implementation for persistent runs.
package repositories

import "vitrine/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
