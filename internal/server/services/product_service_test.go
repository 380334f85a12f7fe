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

func TestProductService_ImportProducts(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	require.NoError(t, repo.Create(&models.Product{ID: "1", Name: "Existing", Price: decimal.NewFromInt(10), Stock: 1}))
	require.NoError(t, repo.Create(&models.Product{ID: "2", Name: "Also Existing", Price: decimal.NewFromInt(10), Stock: 1}))
	svc := services.NewProductService(repo)

	batch := []models.Product{
		{ID: "1", Name: "Existing", Price: decimal.NewFromInt(10), Stock: 1},       // skipped
		{ID: "2", Name: "Also Existing", Price: decimal.NewFromInt(10), Stock: 1},  // skipped
		{ID: "3", Name: "Fresh", Price: decimal.RequireFromString("5.99"), Stock: 3},
		{Name: "No ID Given", Price: decimal.NewFromInt(1), Stock: 1},
		{ID: "4", Name: "Bad Price", Price: decimal.NewFromInt(-1), Stock: 1},      // error
	}

	result, err := svc.ImportProducts(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Bad Price")

	catalog, err := svc.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, catalog, 4)
}

func TestProductService_CreateRejectsNegativePrice(t *testing.T) {
	svc := services.NewProductService(repositories.NewMemoryProductRepository())
	err := svc.CreateProduct(&models.Product{Name: "Bad", Price: decimal.NewFromInt(-5)})
	assert.Error(t, err)
}
