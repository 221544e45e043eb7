package http

import (
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/ports"
	"storefront/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const welcomeMessage = "Welcome to the E-commerce API"

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Commands
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	RegisterCustomer  commands.RegisterCustomerCommandHandler
	LoginCustomer     commands.LoginCustomerCommandHandler
	LoginOwner        commands.LoginOwnerCommandHandler
	AddCartItem       commands.AddCartItemCommandHandler
	UpdateCartItem    commands.UpdateCartItemCommandHandler
	RemoveCartItem    commands.RemoveCartItemCommandHandler
	ClearCart         commands.ClearCartCommandHandler

	// Queries
	GetAllOrders      queries.GetAllOrdersQueryHandler
	GetCustomerOrders queries.GetCustomerOrdersQueryHandler
	GetCart           queries.GetCartQueryHandler
}

// Server adapts HTTP requests to the storefront use cases.
type Server struct {
	handlers Handlers
	tokens   ports.TokenIssuer
	metrics  *metrics.StoreMetrics
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	tokens ports.TokenIssuer,
	storeMetrics *metrics.StoreMetrics,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		metrics:  storeMetrics,
		logger:   logger,
	}
}

// RegisterRoutes mounts every API route on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.Home)
	e.GET("/health", s.Health)

	e.POST("/customer-auth/register", s.RegisterCustomer)
	e.POST("/customer-auth/login", s.LoginCustomer)
	e.POST("/owner-auth/login", s.LoginOwner)

	e.POST("/orders", s.CreateOrder, s.authenticate)
	e.GET("/orders", s.ListOrders, s.authenticate, s.requireOwner)
	e.GET("/orders/customer/:customer_id", s.ListCustomerOrders, s.authenticate, s.requireCustomerAccess)
	e.PATCH("/orders/:order_id", s.UpdateOrderStatus, s.authenticate, s.requireOwner)

	cart := []echo.MiddlewareFunc{s.authenticate, s.requireCustomerAccess}
	e.GET("/cart/:customer_id", s.GetCart, cart...)
	e.POST("/cart/:customer_id/add", s.AddCartItem, cart...)
	e.PUT("/cart/:customer_id/update/:product_id", s.UpdateCartItem, cart...)
	e.DELETE("/cart/:customer_id/remove/:product_id", s.RemoveCartItem, cart...)
	e.DELETE("/cart/:customer_id/clear", s.ClearCart, cart...)
}

// Home handles GET /.
func (s *Server) Home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Message{Message: welcomeMessage})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterCustomer handles POST /customer-auth/register.
func (s *Server) RegisterCustomer(ctx echo.Context) error {
	var req RegisterRequest
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterCustomerCommand(req.Name, req.Email, req.Password, customer.GST{
		Required:       req.GSTRequired,
		Number:         deref(req.GSTNumber),
		CompanyName:    deref(req.CompanyName),
		BillingAddress: deref(req.BillingAddress),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.RegisterCustomer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AuthResponse{
		Message:    "Registration successful",
		CustomerID: res.CustomerID,
		Email:      res.Email,
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
	})
}

// LoginCustomer handles POST /customer-auth/login.
func (s *Server) LoginCustomer(ctx echo.Context) error {
	cmd, err := s.bindLogin(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.LoginCustomer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AuthResponse{
		Message:    "Login successful",
		CustomerID: res.CustomerID,
		Email:      res.Email,
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
	})
}

// LoginOwner handles POST /owner-auth/login.
func (s *Server) LoginOwner(ctx echo.Context) error {
	cmd, err := s.bindLogin(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.LoginOwner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AuthResponse{
		Message:   "Owner login successful",
		Email:     res.Email,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

func (s *Server) bindLogin(ctx echo.Context) (commands.LoginCustomerCommand, error) {
	var req LoginRequest
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &req); err != nil {
		return commands.LoginCustomerCommand{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return commands.NewLoginCustomerCommand(req.Email, req.Password)
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.CustomerID, lineItemsToInput(req.Items), req.TotalPrice)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := authorizeCustomer(ctx, cmd.CustomerID()); err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	s.metrics.RecordOrderCreated()

	return ctx.JSON(http.StatusOK, orderFromDomain(created))
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	orders, err := s.handlers.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromDomain(orders))
}

// ListCustomerOrders handles GET /orders/customer/:customer_id.
func (s *Server) ListCustomerOrders(ctx echo.Context) error {
	customerID, err := pathParam(ctx, "customer_id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromDomain(orders))
}

// UpdateOrderStatus handles PATCH /orders/:order_id. The status comes from
// the query string or, when absent there, from a JSON body.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := pathParam(ctx, "order_id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return badRequest(ctx, "Invalid format for parameter status: "+err.Error())
	}
	if status == nil {
		var body StatusUpdate
		if err := (&echo.DefaultBinder{}).BindBody(ctx, &body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
		status = &body.Status
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, *status)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if statusCode(err) == http.StatusConflict {
			s.metrics.RecordStatusConflict()
		}
		return s.fail(ctx, err)
	}

	message := "Order status unchanged"
	if res.Changed {
		s.metrics.RecordStatusChanged(res.Order.Status().String())
		message = "Order status updated successfully"
	}

	return ctx.JSON(http.StatusOK, StatusUpdateResponse{
		Message: message,
		Changed: res.Changed,
		Order:   orderFromDomain(res.Order),
	})
}

// GetCart handles GET /cart/:customer_id.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := pathParam(ctx, "customer_id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// AddCartItem handles POST /cart/:customer_id/add.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, err := pathParam(ctx, "customer_id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var item LineItem
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &item); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, item.toInput())
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartResponse{Message: "Item added to cart", Cart: cartFromDomain(c)})
}

// UpdateCartItem handles PUT /cart/:customer_id/update/:product_id.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	customerID, productID, err := cartItemParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var quantity int
	if err := runtime.BindQueryParameter("form", true, true, "quantity", ctx.QueryParams(), &quantity); err != nil {
		return badRequest(ctx, "Invalid format for parameter quantity: "+err.Error())
	}

	cmd, err := commands.NewUpdateCartItemCommand(customerID, productID, quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartResponse{Message: "Cart updated", Cart: cartFromDomain(c)})
}

// RemoveCartItem handles DELETE /cart/:customer_id/remove/:product_id.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	customerID, productID, err := cartItemParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRemoveCartItemCommand(customerID, productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartResponse{Message: "Item removed from cart", Cart: cartFromDomain(c)})
}

// ClearCart handles DELETE /cart/:customer_id/clear.
func (s *Server) ClearCart(ctx echo.Context) error {
	customerID, err := pathParam(ctx, "customer_id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Message{Message: "Cart cleared"})
}

func pathParam(ctx echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &value,
	); err != nil {
		return "", err
	}
	return value, nil
}

func cartItemParams(ctx echo.Context) (string, string, error) {
	customerID, err := pathParam(ctx, "customer_id")
	if err != nil {
		return "", "", err
	}
	productID, err := pathParam(ctx, "product_id")
	if err != nil {
		return "", "", err
	}
	return customerID, productID, nil
}
