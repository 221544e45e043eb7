package postgres_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/docstoretest"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DocumentStoreIntegrationTestSuite runs the document store contract against
// a PostgreSQL container.
type DocumentStoreIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	store     *postgres.DocumentStore
}

func (suite *DocumentStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	store, err := postgres.NewDocumentStore(ctx, db, docstoretest.UniqueIndexes()...)
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *DocumentStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DocumentStoreIntegrationTestSuite) TestConformance() {
	docstoretest.Run(suite.T(), func(_ *testing.T) ports.DocumentStore {
		return suite.store
	})
}

func (suite *DocumentStoreIntegrationTestSuite) TestMigrate_IsIdempotent() {
	ctx := context.Background()

	suite.Require().NoError(postgres.Migrate(ctx, suite.db, docstoretest.UniqueIndexes()...))
	suite.Require().NoError(postgres.Migrate(ctx, suite.db, docstoretest.UniqueIndexes()...))
}

func (suite *DocumentStoreIntegrationTestSuite) TestMigrate_RejectsUnsafeIndexNames() {
	err := postgres.Migrate(context.Background(), suite.db, ports.UniqueIndex{
		Collection: "customers'; DROP TABLE documents; --",
		Field:      "email",
	})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "names must match")
}

func (suite *DocumentStoreIntegrationTestSuite) TestBodyIsStoredWithoutID() {
	ctx := context.Background()

	id, err := suite.store.InsertOne(ctx, "orders_raw", ports.Document{"order_id": "ORD-000001"})
	suite.Require().NoError(err)

	var dto postgres.DocumentDTO
	suite.Require().NoError(suite.db.WithContext(ctx).
		First(&dto, "collection = ? AND id = ?", "orders_raw", id).Error)
	suite.JSONEq(`{"order_id": "ORD-000001"}`, dto.Body)
	suite.False(dto.CreatedAt.IsZero())
}

func (suite *DocumentStoreIntegrationTestSuite) TestFilterComparesJSONTypes() {
	ctx := context.Background()

	_, err := suite.store.InsertOne(ctx, "typed", ports.Document{"total_price": 150, "code": "150"})
	suite.Require().NoError(err)

	byNumber, err := suite.store.FindMany(ctx, "typed", ports.Filter{"total_price": 150.0})
	suite.Require().NoError(err)
	suite.Len(byNumber, 1)

	byString, err := suite.store.FindMany(ctx, "typed", ports.Filter{"total_price": "150"})
	suite.Require().NoError(err)
	suite.Empty(byString)
}

func TestDocumentStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreIntegrationTestSuite))
}
