// Package cartrepo persists carts in the "carts" collection, keyed by the
// owning customer's id.
package cartrepo

import (
	"time"

	"storefront/internal/adapters/out/docrepo"
	"storefront/internal/core/domain/model/cart"
)

// Collection holds cart documents.
const Collection = "carts"

// CartDTO is the stored cart document. ID repeats CustomerID so a customer
// can never hold two carts.
type CartDTO struct {
	ID         string                `json:"_id"`
	CustomerID string                `json:"customer_id"`
	Items      []docrepo.LineItemDTO `json:"items"`
	TotalPrice float64               `json:"total_price"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

func fromDomain(c *cart.Cart) CartDTO {
	return CartDTO{
		ID:         c.CustomerID(),
		CustomerID: c.CustomerID(),
		Items:      docrepo.LineItemsFromDomain(c.Items()),
		TotalPrice: c.TotalPrice(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	items, err := docrepo.LineItemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	return cart.RestoreCart(dto.CustomerID, items, dto.CreatedAt, dto.UpdatedAt)
}
