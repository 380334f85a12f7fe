package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/models"
	"vitrine/internal/server"
	"vitrine/internal/server/services"
)

const testJWTSecret = "test_jwt_secret"

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func setupApp() *fiberApp {
	repos := server.MemoryRepositories()
	server.Seed(repos)
	return &fiberApp{app: server.New(repos, testJWTSecret, nil)}
}

// fiberApp wraps the app with request helpers shared by the tests.
type fiberApp struct {
	app *fiber.App
}

func (f *fiberApp) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *fiberApp) login(t *testing.T, email, password string) models.Credential {
	t.Helper()
	resp := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cred models.Credential
	decodeBody(t, resp, &cred)
	require.NotEmpty(t, cred.Token)
	return cred
}

func TestLoginWithDemoAccounts(t *testing.T) {
	f := setupApp()

	customer := f.login(t, "customer@demo.com", "password")
	assert.Equal(t, models.RoleCustomer, customer.User.Role)
	assert.Equal(t, "Demo Customer", customer.User.Name)

	admin := f.login(t, "admin@demo.com", "admin123")
	assert.Equal(t, models.RoleAdmin, admin.User.Role)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := setupApp()

	resp := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "customer@demo.com",
		"password": "wrong",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterThenLogin(t *testing.T) {
	f := setupApp()

	resp := f.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cred models.Credential
	decodeBody(t, resp, &cred)
	assert.Equal(t, "new@example.com", cred.User.Email)
	assert.Equal(t, models.RoleCustomer, cred.User.Role)
	assert.NotEmpty(t, cred.Token)

	// Duplicate registration conflicts.
	resp = f.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "secret123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	f.login(t, "new@example.com", "secret123")
}

func TestProductListingIsPublic(t *testing.T) {
	f := setupApp()

	resp := f.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 12)

	resp = f.request(t, http.MethodGet, "/api/products/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.Equal(t, "Apple AirPods Pro", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(199.99)))

	resp = f.request(t, http.MethodGet, "/api/products/unknown", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRequiresAuth(t *testing.T) {
	f := setupApp()

	resp := f.request(t, http.MethodGet, "/api/cart", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartLifecycle(t *testing.T) {
	f := setupApp()
	cred := f.login(t, "customer@demo.com", "password")

	// Empty cart to start.
	resp := f.request(t, http.MethodGet, "/api/cart", cred.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart models.Cart
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)

	// Add two AirPods.
	resp = f.request(t, http.MethodPost, "/api/cart/items", cred.Token, map[string]interface{}{
		"productId": "1",
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.NewFromFloat(399.98)), "total = %s", cart.Total)

	// Adding the same product merges lines.
	resp = f.request(t, http.MethodPost, "/api/cart/items", cred.Token, map[string]interface{}{
		"productId": "1",
		"quantity":  1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Remove the line.
	resp = f.request(t, http.MethodDelete, "/api/cart/items/1", cred.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestCartRejectsUnknownProductAndOverdraft(t *testing.T) {
	f := setupApp()
	cred := f.login(t, "customer@demo.com", "password")

	resp := f.request(t, http.MethodPost, "/api/cart/items", cred.Token, map[string]interface{}{
		"productId": "no-such-product",
		"quantity":  1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.request(t, http.MethodPost, "/api/cart/items", cred.Token, map[string]interface{}{
		"productId": "1",
		"quantity":  9999,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutCreatesPendingOrderAndClearsCart(t *testing.T) {
	f := setupApp()
	cred := f.login(t, "customer@demo.com", "password")

	resp := f.request(t, http.MethodPost, "/api/cart/items", cred.Token, map[string]interface{}{
		"productId": "1",
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	decodeBody(t, resp, &cart)

	// Cart subtotal 399.98 plus 8% tax; order over 100 ships free.
	checkout := services.CheckoutRequest{
		Items: cart.Items,
		ShippingAddress: models.Address{
			Street:  "1 Demo Street",
			City:    "Demoville",
			State:   "CA",
			ZipCode: "12345",
			Country: "US",
		},
		PaymentData: models.PaymentData{
			CardholderName: "Demo Customer",
			CardNumber:     "4242424242424242",
			ExpiryDate:     "12/30",
			CVV:            "123",
		},
		Total: decimal.NewFromFloat(431.98),
	}
	resp = f.request(t, http.MethodPost, "/api/orders/checkout", cred.Token, checkout)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(431.98)))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.NewFromFloat(399.98)))

	// Stock decremented.
	resp = f.request(t, http.MethodGet, "/api/products/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.Equal(t, 48, product.Stock)

	// Cart cleared.
	resp = f.request(t, http.MethodGet, "/api/cart", cred.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)

	// Order shows up in the caller's history.
	resp = f.request(t, http.MethodGet, "/api/orders/my", cred.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestAdminGating(t *testing.T) {
	f := setupApp()
	customer := f.login(t, "customer@demo.com", "password")
	admin := f.login(t, "admin@demo.com", "admin123")

	// Customers cannot list all orders or mutate the catalog.
	resp := f.request(t, http.MethodGet, "/api/orders", customer.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.request(t, http.MethodDelete, "/api/products/1", customer.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admins can.
	resp = f.request(t, http.MethodGet, "/api/orders", admin.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodPost, "/api/products", admin.Token, map[string]interface{}{
		"name":        "Limited Edition Poster",
		"description": "Numbered print",
		"price":       19.99,
		"stock":       10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
}

func TestOrderStatusUpdateByAdmin(t *testing.T) {
	f := setupApp()
	customer := f.login(t, "customer@demo.com", "password")
	admin := f.login(t, "admin@demo.com", "admin123")

	resp := f.request(t, http.MethodPost, "/api/cart/items", customer.Token, map[string]interface{}{
		"productId": "5",
		"quantity":  1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	decodeBody(t, resp, &cart)

	resp = f.request(t, http.MethodPost, "/api/orders/checkout", customer.Token, services.CheckoutRequest{
		Items:           cart.Items,
		ShippingAddress: models.Address{Street: "1 Demo Street", City: "Demoville", State: "CA", ZipCode: "12345", Country: "US"},
		PaymentData:     models.PaymentData{CardholderName: "Demo Customer", CardNumber: "4242424242424242", ExpiryDate: "12/30", CVV: "123"},
		Total:           decimal.NewFromFloat(36.97),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	resp = f.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", admin.Token, map[string]string{
		"status": "shipped",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", admin.Token, map[string]string{
		"status": "teleported",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/api/orders/my", customer.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderShipped, orders[0].Status)
}

func TestBulkImportReportsCounts(t *testing.T) {
	f := setupApp()
	admin := f.login(t, "admin@demo.com", "admin123")

	payload := []map[string]interface{}{
		{"id": "imp-1", "name": "Imported One", "price": 10.00, "stock": 5},
		{"id": "imp-2", "name": "Imported Two", "price": 20.00, "stock": 5},
		{"id": "1", "name": "Duplicate of seeded", "price": 1.00, "stock": 1},
	}
	resp := f.request(t, http.MethodPost, "/api/admin-seed/import", admin.Token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result services.ImportResult
	decodeBody(t, resp, &result)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	// Imported products are visible in the listing.
	resp = f.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 14)
}
