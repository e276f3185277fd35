// Package restaurantrepo reads the catalog tables restaurants and products
// and writes the one column this service owns, average_service_minutes.
package restaurantrepo

import (
	"deliverus/internal/core/domain/model/restaurant"

	"github.com/shopspring/decimal"
)

// RestaurantDTO is the restaurants row.
type RestaurantDTO struct {
	ID                    int64               `gorm:"primaryKey;autoIncrement"`
	UserID                int64               `gorm:"not null;index"`
	Name                  string              `gorm:"type:varchar(255);not null"`
	ShippingCosts         decimal.Decimal     `gorm:"type:numeric(10,2);not null;check:chk_restaurants_shipping_costs,shipping_costs >= 0"`
	AverageServiceMinutes decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Products              []ProductDTO        `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO is the products row.
type ProductDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_products_price,price >= 0"`
	Availability bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	return restaurant.RestoreRestaurant(dto.ID, dto.UserID, dto.Name, dto.ShippingCosts, dto.AverageServiceMinutes)
}

func productToDomain(dto ProductDTO) (*restaurant.Product, error) {
	return restaurant.RestoreProduct(dto.ID, dto.RestaurantID, dto.Name, dto.Price, dto.Availability)
}
