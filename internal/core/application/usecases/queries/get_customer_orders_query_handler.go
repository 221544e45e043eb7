package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type GetCustomerOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

func NewGetCustomerOrdersQueryHandler(orderRepo ports.OrderRepository) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle reports a customer without orders as errs.ObjectNotFoundError,
// unlike GetAllOrdersQueryHandler.
func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("customer_id", query.CustomerID())
	}
	return orders, nil
}
