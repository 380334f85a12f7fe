// Package api is the HTTP client for the storefront backend. It attaches the
// stored credential to every call, normalizes failures into a single message
// format, classifies transient concurrency conflicts, and broadcasts
// unhandled failures on the process-wide event bus.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vitrine/internal/models"
	"vitrine/pkg/events"
)

// Responses larger than this are truncated before message extraction.
const maxBodyBytes = 1 << 20

// SessionStore is the slice of the session store the client needs: the token
// for outbound calls, and Clear for the 401 side effect.
type SessionStore interface {
	Token() string
	Clear()
}

// Client talks to the storefront REST backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	session SessionStore
	bus     *events.Bus
}

// New creates a Client. A trailing slash on baseURL is stripped. bus may be
// nil when no failure observer exists (tests).
func New(baseURL string, sess SessionStore, bus *events.Bus) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		session: sess,
		bus:     bus,
	}
}

type requestOptions struct {
	header http.Header
	// quietConflict suppresses the failure broadcast for concurrency
	// conflicts; set only on the cart-add call, whose conflicts the
	// synchronizer reconciles silently.
	quietConflict bool
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doWithOptions(ctx, method, path, body, out, requestOptions{})
}

func (c *Client) doWithOptions(ctx context.Context, method, path string, body, out interface{}, opts requestOptions) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range opts.header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		apiErr := &Error{Message: err.Error()}
		c.report(method, path, apiErr, opts)
		return apiErr
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	// An expired credential invalidates the whole session, no matter which
	// call surfaced it.
	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(respBody),
			Body:       string(respBody),
		}
		c.report(method, path, apiErr, opts)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) report(method, path string, apiErr *Error, opts requestOptions) {
	conflict := IsConcurrencyError(apiErr)
	if opts.quietConflict && conflict {
		return
	}
	if !conflict {
		log.Printf("API error: %s %s - %s", method, path, apiErr.Error())
	}
	if c.bus != nil {
		c.bus.Publish(events.Failure{Message: apiErr.Error()})
	}
}

// --- Auth ---

// Login authenticates and returns the credential the backend issued.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Credential, error) {
	payload := map[string]string{"email": email, "password": password}
	var cred models.Credential
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Register creates an account; same contract as Login.
func (c *Client) Register(ctx context.Context, email, password, name string) (*models.Credential, error) {
	payload := map[string]string{"email": email, "password": password, "name": name}
	var cred models.Credential
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// --- Products ---

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product (admin).
func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates a product (admin).
func (c *Client) UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a product (admin).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

// ImportResult is the backend's bulk-import summary.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ImportProducts bulk-imports a catalog (admin).
func (c *Client) ImportProducts(ctx context.Context, products []models.Product) (*ImportResult, error) {
	var result ImportResult
	if err := c.do(ctx, http.MethodPost, "/api/admin-seed/import", products, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Cart ---

// GetCart fetches the authoritative cart and normalizes it: aliased fields
// are resolved, stringly-typed numbers coerced, missing product sub-fields
// filled with safe defaults, and a missing total computed from the lines.
// The request carries no-cache headers and a cache-buster query so stale
// intermediaries never answer it.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	header := http.Header{}
	header.Set("Cache-Control", "no-cache")
	header.Set("Pragma", "no-cache")

	path := fmt.Sprintf("/api/cart?t=%d", time.Now().UnixNano())

	var wire wireCart
	if err := c.doWithOptions(ctx, http.MethodGet, path, nil, &wire, requestOptions{header: header}); err != nil {
		return nil, err
	}
	return wire.normalize(), nil
}

// AddCartItem adds a line to the cart. The quantity is clamped to a minimum
// of 1. Concurrency conflicts on this call are not broadcast or logged; the
// synchronizer resolves them by refetching.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	payload := map[string]interface{}{"productId": productID, "quantity": quantity}
	return c.doWithOptions(ctx, http.MethodPost, "/api/cart/items", payload, nil, requestOptions{quietConflict: true})
}

// RemoveCartItem removes one line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/items/"+productID, nil, nil)
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/cart/clear", nil, nil)
}

// --- Orders ---

// CheckoutRequest is the order submission composed from the cart.
type CheckoutRequest struct {
	Items           []models.CartItem  `json:"items"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	PaymentData     models.PaymentData `json:"paymentData"`
	Total           decimal.Decimal    `json:"total"`
}

// Checkout submits an order and returns the server's view of it.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the caller's own orders.
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders lists every order (admin).
func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order's status (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	payload := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/api/orders/"+id+"/status", payload, nil)
}
