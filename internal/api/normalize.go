package api

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine/internal/models"
)

// The backend's cart payload is loosely shaped: product fields arrive under
// aliases (name/title, price/unitPrice), either on the line or nested under
// "product", numerics sometimes as strings, and IDs sometimes as numbers.
// The wire types below absorb all of that; normalize resolves each field with
// a fixed precedence and fills the gaps with safe defaults.

type wireCart struct {
	UserID json.RawMessage  `json:"userId"`
	Items  []wireItem       `json:"items"`
	Total  *decimal.Decimal `json:"total"`
}

type wireItem struct {
	ID          json.RawMessage  `json:"id"`
	ProductID   json.RawMessage  `json:"productId"`
	Name        *string          `json:"name"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Quantity    *decimal.Decimal `json:"quantity"`
	LineTotal   *decimal.Decimal `json:"lineTotal"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Stock       *decimal.Decimal `json:"stock"`
	Product     *wireProduct     `json:"product"`
}

type wireProduct struct {
	ID          json.RawMessage  `json:"id"`
	Name        *string          `json:"name"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Stock       *decimal.Decimal `json:"stock"`
}

func (w *wireCart) normalize() *models.Cart {
	cart := &models.Cart{
		UserID: rawString(w.UserID),
		Items:  make([]models.CartItem, 0, len(w.Items)),
	}

	sum := decimal.Zero
	for _, item := range w.Items {
		normalized := item.normalize()
		cart.Items = append(cart.Items, normalized)
		sum = sum.Add(normalized.Product.Price.Mul(decimal.NewFromInt(int64(normalized.Quantity))))
	}

	// The server-supplied total is authoritative; only compute one when it
	// is absent.
	if w.Total != nil {
		cart.Total = *w.Total
	} else {
		cart.Total = sum
	}
	return cart
}

func (w *wireItem) normalize() models.CartItem {
	var nested wireProduct
	if w.Product != nil {
		nested = *w.Product
	}

	productID := rawString(w.ProductID)
	if productID == "" {
		productID = rawString(w.ID)
	}
	if productID == "" {
		productID = rawString(nested.ID)
	}

	name := firstString(w.Name, nested.Name, w.Title, nested.Title)
	if name == "" {
		name = "Unknown Product"
	}

	price := firstDecimal(w.Price, nested.Price, w.UnitPrice)

	quantity := 1
	if w.Quantity != nil {
		quantity = int(w.Quantity.IntPart())
	}

	lineTotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	if w.LineTotal != nil {
		lineTotal = *w.LineTotal
	}

	return models.CartItem{
		ProductID: productID,
		Product: models.Product{
			ID:          productID,
			Name:        name,
			Description: firstString(w.Description, nested.Description),
			Price:       price,
			ImageURL:    firstString(w.ImageURL, nested.ImageURL),
			Category:    firstString(w.Category, nested.Category),
			Stock:       int(firstDecimal(w.Stock, nested.Stock).IntPart()),
		},
		Quantity:  quantity,
		LineTotal: lineTotal,
	}
}

// rawString stringifies an ID that may arrive as a JSON string or a number.
func rawString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}

func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return ""
}

func firstDecimal(candidates ...*decimal.Decimal) decimal.Decimal {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return decimal.Zero
}
