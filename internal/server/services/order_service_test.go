package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vitrine/internal/models"
	"vitrine/internal/server/repositories"
	"vitrine/internal/server/services"
)

// MockPublisher is a mock implementation of services.OrderEventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(orderData map[string]interface{}) error {
	args := m.Called(orderData)
	return args.Error(0)
}

func checkoutFixture(t *testing.T, publisher services.OrderEventPublisher) (*services.OrderService, *repositories.MemoryProductRepository, *repositories.MemoryCartRepository) {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	require.NoError(t, productRepo.Create(&models.Product{
		ID:    "1",
		Name:  "Apple AirPods Pro",
		Price: decimal.RequireFromString("199.99"),
		Stock: 50,
	}))
	cartRepo := repositories.NewMemoryCartRepository()
	orderRepo := repositories.NewMemoryOrderRepository()
	return services.NewOrderService(orderRepo, productRepo, cartRepo, publisher), productRepo, cartRepo
}

func airpodsLine(quantity int) models.CartItem {
	return models.CartItem{ProductID: "1", Quantity: quantity}
}

func TestOrderService_Checkout(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishOrderCreated", mock.Anything).Return(nil).Once()
	svc, productRepo, cartRepo := checkoutFixture(t, publisher)

	require.NoError(t, cartRepo.Save(&models.Cart{UserID: "u-1", Items: []models.CartItem{airpodsLine(2)}}))

	order, err := svc.Checkout("u-1", services.CheckoutRequest{
		Items:           []models.CartItem{airpodsLine(2)},
		ShippingAddress: models.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"},
		Total:           decimal.RequireFromString("441.58"), // cart + shipping + tax, client-computed
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "u-1", order.UserID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("441.58")))
	require.Len(t, order.Items, 1)
	// Item prices are snapshotted from the catalog, not the submission.
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.RequireFromString("399.98")))

	// Stock decremented and cart cleared.
	product, err := productRepo.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, 48, product.Stock)
	cart, err := cartRepo.GetByUser("u-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	publisher.AssertExpectations(t)
}

func TestOrderService_CheckoutRejectsEmptyAndOverdraft(t *testing.T) {
	svc, _, _ := checkoutFixture(t, nil)

	_, err := svc.Checkout("u-1", services.CheckoutRequest{})
	assert.Error(t, err)

	_, err = svc.Checkout("u-1", services.CheckoutRequest{Items: []models.CartItem{airpodsLine(51)}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestOrderService_CheckoutSurvivesPublishFailure(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishOrderCreated", mock.Anything).Return(assert.AnError).Once()
	svc, _, _ := checkoutFixture(t, publisher)

	// A broker failure is logged, not surfaced; the order stands.
	order, err := svc.Checkout("u-1", services.CheckoutRequest{Items: []models.CartItem{airpodsLine(1)}})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	publisher.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	svc, _, _ := checkoutFixture(t, nil)

	order, err := svc.Checkout("u-1", services.CheckoutRequest{Items: []models.CartItem{airpodsLine(1)}})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderStatus(order.ID, models.OrderShipped))

	err = svc.UpdateOrderStatus(order.ID, models.OrderStatus("teleported"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")

	err = svc.UpdateOrderStatus("missing", models.OrderShipped)
	assert.Error(t, err)
}

func TestOrderService_OrderListings(t *testing.T) {
	svc, _, _ := checkoutFixture(t, nil)

	_, err := svc.Checkout("u-1", services.CheckoutRequest{Items: []models.CartItem{airpodsLine(1)}})
	require.NoError(t, err)
	_, err = svc.Checkout("u-2", services.CheckoutRequest{Items: []models.CartItem{airpodsLine(1)}})
	require.NoError(t, err)

	mine, err := svc.GetOrdersByUser("u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
