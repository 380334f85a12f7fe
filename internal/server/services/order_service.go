package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vitrine/internal/models"
	"vitrine/internal/server/repositories"
)

// OrderEventPublisher publishes order lifecycle events to the message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// CheckoutRequest is the submission the client posts at checkout.
type CheckoutRequest struct {
	Items           []models.CartItem  `json:"items"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	PaymentData     models.PaymentData `json:"paymentData"`
	Total           decimal.Decimal    `json:"total"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	publisher   OrderEventPublisher // may be nil when no broker is configured
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves every order.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves one user's orders.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// Checkout turns the submitted cart into a pending order: item prices are
// snapshotted from the catalog, stock is decremented, the user's cart is
// cleared, and an order.created event is published when a broker is wired.
// The submitted total (cart plus shipping and tax, computed by the client)
// becomes the order total.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("cannot checkout an empty cart")
	}

	items := make([]models.CartItem, 0, len(req.Items))
	for _, submitted := range req.Items {
		product, err := s.productRepo.GetByID(submitted.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", submitted.ProductID, err)
		}
		if product.Stock < submitted.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", product.Name, submitted.Quantity, product.Stock)
		}

		items = append(items, models.CartItem{
			ProductID: submitted.ProductID,
			Product:   *product,
			Quantity:  submitted.Quantity,
			LineTotal: product.Price.Mul(decimal.NewFromInt(int64(submitted.Quantity))),
		})
	}

	// All lines validated; commit the stock decrements.
	for _, item := range items {
		product := item.Product
		product.Stock -= item.Quantity
		if err := s.productRepo.Update(&product); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", product.ID, err)
		}
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		Total:           req.Total,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShippingAddress: req.ShippingAddress,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if err := s.cartRepo.DeleteByUser(userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after checkout: %v", userID, err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID": order.ID,
			"userID":  order.UserID,
			"status":  order.Status,
			"total":   order.Total,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		} else {
			log.Printf("Published order created event for order %s", order.ID)
		}
	}

	return order, nil
}

// UpdateOrderStatus transitions an order to a new status.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status: %s", status)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
