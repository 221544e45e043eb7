// Package orderrepo persists order aggregates in the "orders" collection.
package orderrepo

import (
	"time"

	"storefront/internal/adapters/out/docrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Collection holds order documents.
const Collection = "orders"

// OrderDTO is the stored order document.
type OrderDTO struct {
	ID         string                `json:"_id"`
	OrderID    string                `json:"order_id"`
	CustomerID string                `json:"customer_id"`
	Items      []docrepo.LineItemDTO `json:"items"`
	TotalPrice float64               `json:"total_price"`
	Status     string                `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  *time.Time            `json:"updated_at,omitempty"`
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID().String(),
		OrderID:    o.Number().String(),
		CustomerID: o.CustomerID(),
		Items:      docrepo.LineItemsFromDomain(o.Items()),
		TotalPrice: o.TotalPrice(),
		Status:     o.Status().String(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.OrderID)
	if err != nil {
		return nil, err
	}
	items, err := docrepo.LineItemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, number, dto.CustomerID, items, dto.TotalPrice,
		order.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
