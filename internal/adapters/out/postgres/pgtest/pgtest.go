// Package pgtest starts a disposable postgres for integration suites and
// seeds the catalog tables.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "deliverus/internal/adapters/out/postgres"
	"deliverus/internal/adapters/out/postgres/restaurantrepo"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Start runs postgres:15-alpine, connects GORM to it and migrates the schema.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return container, nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Truncate empties every table and resets the id sequences.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE order_products, orders, products, restaurants RESTART IDENTITY CASCADE").Error
}

// SeedRestaurant inserts a restaurant owned by ownerID.
func SeedRestaurant(db *gorm.DB, ownerID int64, shippingCosts string) (restaurantrepo.RestaurantDTO, error) {
	dto := restaurantrepo.RestaurantDTO{
		UserID:        ownerID,
		Name:          "Restaurant",
		ShippingCosts: decimal.RequireFromString(shippingCosts),
	}
	err := db.Create(&dto).Error
	return dto, err
}

// SeedProduct inserts a product of restaurantID.
func SeedProduct(db *gorm.DB, restaurantID int64, price string, available bool) (restaurantrepo.ProductDTO, error) {
	dto := restaurantrepo.ProductDTO{
		RestaurantID: restaurantID,
		Name:         "Product",
		Price:        decimal.RequireFromString(price),
		Availability: available,
	}
	err := db.Create(&dto).Error
	return dto, err
}
