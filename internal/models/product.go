package models

import "github.com/shopspring/decimal"

// Product represents a product in the store catalog. The backend owns every
// field; the client only mutates products through explicit admin calls.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Featured    bool            `json:"featured,omitempty"`
}
