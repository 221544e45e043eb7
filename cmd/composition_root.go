package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/auth"
	"storefront/internal/adapters/out/docrepo/cartrepo"
	"storefront/internal/adapters/out/docrepo/customerrepo"
	"storefront/internal/adapters/out/docrepo/orderrepo"
	firestorestore "storefront/internal/adapters/out/firestore"
	"storefront/internal/adapters/out/memory"
	pgstore "storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/sequence"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/metrics"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	store        ports.DocumentStore
	orderRepo    ports.OrderRepository
	cartRepo     ports.CartRepository
	customerRepo ports.CustomerRepository

	issuer  *auth.JWTIssuer
	hasher  auth.BcryptHasher
	metrics *metrics.StoreMetrics

	closers []func() error
}

// NewCompositionRoot opens the configured document store and builds the
// shared adapters. Close releases the store connection.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	issuer, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create token issuer: %w", err)
	}

	root := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		issuer:  issuer,
		hasher:  auth.NewBcryptHasher(bcrypt.DefaultCost),
		metrics: metrics.NewStoreMetrics(),
	}

	if err := root.openStore(ctx); err != nil {
		return nil, err
	}

	root.orderRepo = orderrepo.NewRepository(root.store)
	root.cartRepo = cartrepo.NewRepository(root.store)
	root.customerRepo = customerrepo.NewRepository(root.store)

	return root, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	indexes := customerrepo.UniqueIndexes()

	switch c.cfg.DocStore {
	case DocStorePostgres:
		db, err := gorm.Open(postgres.Open(c.cfg.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)

		store, err := pgstore.NewDocumentStore(ctx, db, indexes...)
		if err != nil {
			return errors.Join(err, c.Close())
		}
		c.store = store

	case DocStoreFirestore:
		client, err := firestorestore.NewClient(ctx, c.cfg.FirestoreProjectID, c.cfg.FirestoreCredentialsFile)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Close)
		c.store = firestorestore.NewDocumentStore(client, indexes...)

	default:
		c.store = memory.NewDocumentStore(indexes...)
	}

	c.logger.Info("document store ready", slog.String("backend", c.cfg.DocStore))
	return nil
}

// Close releases store connections.
func (c *CompositionRoot) Close() error {
	var problems []error
	for _, closeFn := range c.closers {
		problems = append(problems, closeFn())
	}
	c.closers = nil
	return errors.Join(problems...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(sequence.NewAllocator(c.store), c.orderRepo)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	return commands.NewRegisterCustomerCommandHandler(c.customerRepo, c.hasher, c.issuer)
}

func (c *CompositionRoot) CreateLoginCustomerCommandHandler() commands.LoginCustomerCommandHandler {
	return commands.NewLoginCustomerCommandHandler(c.customerRepo, c.hasher, c.issuer)
}

func (c *CompositionRoot) CreateLoginOwnerCommandHandler() commands.LoginOwnerCommandHandler {
	owner := commands.OwnerCredentials{Email: c.cfg.OwnerEmail, Password: c.cfg.OwnerPassword}
	if !owner.Configured() {
		c.logger.Warn("owner credentials are not configured, owner login is disabled")
	}
	return commands.NewLoginOwnerCommandHandler(owner, c.issuer)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateExpireCartsCommandHandler() commands.ExpireCartsCommandHandler {
	return commands.NewExpireCartsCommandHandler(c.cartRepo)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.cartRepo)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		RegisterCustomer:  c.CreateRegisterCustomerCommandHandler(),
		LoginCustomer:     c.CreateLoginCustomerCommandHandler(),
		LoginOwner:        c.CreateLoginOwnerCommandHandler(),
		AddCartItem:       c.CreateAddCartItemCommandHandler(),
		UpdateCartItem:    c.CreateUpdateCartItemCommandHandler(),
		RemoveCartItem:    c.CreateRemoveCartItemCommandHandler(),
		ClearCart:         c.CreateClearCartCommandHandler(),
		GetAllOrders:      c.CreateGetAllOrdersQueryHandler(),
		GetCustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
		GetCart:           c.CreateGetCartQueryHandler(),
	}, c.issuer, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireCartsCommandHandler(),
		jobs.CartExpiryConfig{Schedule: c.cfg.CartSweepSchedule, TTL: c.cfg.CartTTL},
		c.metrics,
		c.logger,
	)
}
