package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vitrine/internal/models"
	"vitrine/internal/server/repositories"
)

// CartService handles business logic for per-user carts. Line totals and the
// cart total are recomputed from catalog prices on every write; the cart is
// always returned with server-computed money fields.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the user's cart with totals filled in.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	recompute(cart)
	return cart, nil
}

// AddItem adds quantity of a product to the user's cart, merging with an
// existing line for the same product. The merged quantity may not exceed the
// product's stock.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	merged := quantity
	lineIndex := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			merged += item.Quantity
			lineIndex = i
			break
		}
	}
	if merged > product.Stock {
		return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", product.Name, merged, product.Stock)
	}

	line := models.CartItem{
		ProductID: productID,
		Product:   *product,
		Quantity:  merged,
	}
	if lineIndex >= 0 {
		cart.Items[lineIndex] = line
	} else {
		cart.Items = append(cart.Items, line)
	}

	recompute(cart)
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product's line from the cart. Removing a line that is
// not there is not an error.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	recompute(cart)
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.DeleteByUser(userID)
}

func recompute(cart *models.Cart) {
	total := decimal.Zero
	for i := range cart.Items {
		line := cart.Items[i].Product.Price.Mul(decimal.NewFromInt(int64(cart.Items[i].Quantity)))
		cart.Items[i].LineTotal = line
		total = total.Add(line)
	}
	cart.Total = total
}
