package services

import (
	"fmt"

	"vitrine/internal/models"
	"vitrine/internal/server/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves the whole catalog.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("product price must not be negative")
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("product price must not be negative")
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ImportProducts bulk-creates products. Products whose ID already exists are
// skipped; per-product failures are collected, not fatal.
func (s *ProductService) ImportProducts(products []models.Product) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for i := range products {
		product := products[i]
		if product.ID != "" {
			if _, err := s.repo.GetByID(product.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		if err := s.CreateProduct(&product); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", product.Name, err))
			continue
		}
		result.Created++
	}
	return result, nil
}
