package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/models"
	"vitrine/internal/server/repositories"
	"vitrine/internal/server/services"
)

func seededCartService(t *testing.T) *services.CartService {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	require.NoError(t, productRepo.Create(&models.Product{
		ID:    "1",
		Name:  "Apple AirPods Pro",
		Price: decimal.RequireFromString("199.99"),
		Stock: 50,
	}))
	require.NoError(t, productRepo.Create(&models.Product{
		ID:    "5",
		Name:  "Artisan Coffee Beans",
		Price: decimal.RequireFromString("24.99"),
		Stock: 2,
	}))
	return services.NewCartService(repositories.NewMemoryCartRepository(), productRepo)
}

func TestCartService_AddItemComputesTotals(t *testing.T) {
	svc := seededCartService(t)

	cart, err := svc.AddItem("u-1", "1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].LineTotal.Equal(decimal.RequireFromString("399.98")))
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("399.98")))
}

func TestCartService_AddItemMergesLines(t *testing.T) {
	svc := seededCartService(t)

	_, err := svc.AddItem("u-1", "1", 1)
	require.NoError(t, err)
	cart, err := svc.AddItem("u-1", "1", 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1) // one line per product, merged quantity
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_AddItemChecksStock(t *testing.T) {
	svc := seededCartService(t)

	_, err := svc.AddItem("u-1", "5", 2)
	require.NoError(t, err)
	_, err = svc.AddItem("u-1", "5", 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc := seededCartService(t)

	_, err := svc.AddItem("u-1", "missing", 1)
	assert.Error(t, err)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc := seededCartService(t)

	_, err := svc.AddItem("u-1", "1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem("u-1", "5", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem("u-1", "1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "5", cart.Items[0].ProductID)

	// Removing an absent line is idempotent.
	_, err = svc.RemoveItem("u-1", "1")
	require.NoError(t, err)

	require.NoError(t, svc.Clear("u-1"))
	cart, err = svc.GetCart("u-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}
