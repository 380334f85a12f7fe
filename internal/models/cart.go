package models

import "github.com/shopspring/decimal"

// CartItem is one line of a cart: a product snapshot plus a quantity and the
// line total. The server may supply the line total directly; when it does,
// the server value is authoritative over price times quantity.
type CartItem struct {
	ProductID string          `json:"productId"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the server-declared cart for one user.
type Cart struct {
	UserID string          `json:"userId" gorm:"primaryKey;type:varchar(36)"`
	Items  []CartItem      `json:"items" gorm:"serializer:json"`
	Total  decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
}

// CartState is the client-visible cart projection. It is always a copy of
// the last successful server fetch, never of an intermediate optimistic edit.
type CartState struct {
	Items   []CartItem      `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Loading bool            `json:"loading"`
	Err     string          `json:"error,omitempty"`
}

// EmptyCartState returns the state a cart has before any fetch and after
// logout.
func EmptyCartState() CartState {
	return CartState{Items: []CartItem{}, Total: decimal.Zero}
}
