package docrepo

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
)

// LineItemDTO is the stored shape of an order or cart line.
type LineItemDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func LineItemsFromDomain(items []kernel.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemDTO{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
		})
	}
	return out
}

func LineItemsToDomain(dtos []LineItemDTO) ([]kernel.LineItem, error) {
	items := make([]kernel.LineItem, 0, len(dtos))
	var problems []error
	for i, dto := range dtos {
		item, err := kernel.NewLineItem(dto.ProductID, dto.Name, dto.Price, dto.Quantity)
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}
