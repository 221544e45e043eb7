package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
}

type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type NewOrder struct {
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type Order struct {
	ID         string     `json:"_id"`
	OrderID    string     `json:"order_id"`
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type StatusUpdateResponse struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"`
	Order   Order  `json:"order"`
}

type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartResponse struct {
	Message string `json:"message"`
	Cart    Cart   `json:"cart"`
}

type RegisterRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	GSTRequired    bool    `json:"gst_required"`
	GSTNumber      *string `json:"gst_number"`
	CompanyName    *string `json:"company_name"`
	BillingAddress *string `json:"billing_address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message    string    `json:"message"`
	CustomerID string    `json:"customer_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (i LineItem) toInput() commands.LineItemInput {
	return commands.LineItemInput{
		ProductID: i.ProductID,
		Name:      i.Name,
		Price:     i.Price,
		Quantity:  i.Quantity,
	}
}

func lineItemsToInput(items []LineItem) []commands.LineItemInput {
	res := make([]commands.LineItemInput, len(items))
	for i, item := range items {
		res[i] = item.toInput()
	}
	return res
}

func lineItemsFromDomain(items []kernel.LineItem) []LineItem {
	res := make([]LineItem, len(items))
	for i, item := range items {
		res[i] = LineItem{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
		}
	}
	return res
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:         o.ID().String(),
		OrderID:    o.Number().String(),
		CustomerID: o.CustomerID(),
		Items:      lineItemsFromDomain(o.Items()),
		TotalPrice: o.TotalPrice(),
		Status:     o.Status().String(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func ordersFromDomain(orders []*order.Order) []Order {
	res := make([]Order, len(orders))
	for i, o := range orders {
		res[i] = orderFromDomain(o)
	}
	return res
}

func cartFromDomain(c *cart.Cart) Cart {
	return Cart{
		CustomerID: c.CustomerID(),
		Items:      lineItemsFromDomain(c.Items()),
		TotalPrice: c.TotalPrice(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
