package postgres

import (
	"fmt"

	"deliverus/internal/adapters/out/postgres/orderrepo"
	"deliverus/internal/adapters/out/postgres/restaurantrepo"

	"gorm.io/gorm"
)

// foreignKeys link tables owned by different repository packages. GORM only
// creates constraints for relations declared on the DTOs.
var foreignKeys = []struct {
	model any
	name  string
	ddl   string
}{
	{
		model: &orderrepo.OrderDTO{},
		name:  "fk_orders_restaurant",
		ddl:   "ALTER TABLE orders ADD CONSTRAINT fk_orders_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)",
	},
	{
		model: &orderrepo.ProductLineDTO{},
		name:  "fk_order_products_product",
		ddl:   "ALTER TABLE order_products ADD CONSTRAINT fk_order_products_product FOREIGN KEY (product_id) REFERENCES products(id)",
	},
}

// Migrate creates or upgrades the schema. Catalog tables come first so the
// order tables can reference them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ProductLineDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range foreignKeys {
		if db.Migrator().HasConstraint(fk.model, fk.name) {
			continue
		}
		if err := db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("create %s: %w", fk.name, err)
		}
	}

	return nil
}
