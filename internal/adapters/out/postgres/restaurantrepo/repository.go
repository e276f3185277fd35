package restaurantrepo

import (
	"context"

	"deliverus/internal/adapters/out/postgres/pgerrs"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) Get(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the restaurant row until the transaction ends.
func (r *GormRestaurantRepository) GetForUpdate(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRestaurantRepository) get(db *gorm.DB, id int64) (*restaurant.Restaurant, error) {
	var dto RestaurantDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerrs.NotFoundOr("select restaurant", "restaurant", id, err)
	}
	return restaurantToDomain(dto)
}

func (r *GormRestaurantRepository) UpdateServiceTime(ctx context.Context, rest *restaurant.Restaurant) error {
	if err := rest.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).
		Where("id = ?", rest.ID()).
		Update("average_service_minutes", rest.AverageServiceMinutes())
	if result.Error != nil {
		return pgerrs.Wrap("update restaurant service time", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", rest.ID())
	}
	return nil
}

func (r *GormRestaurantRepository) ListIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0)
	if err := r.db.WithContext(ctx).Model(&RestaurantDTO{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, pgerrs.Wrap("list restaurants", err)
	}
	return ids, nil
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]*restaurant.Product, error) {
	products := make([]*restaurant.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, pgerrs.Wrap("select products", err)
	}

	for _, dto := range dtos {
		p, err := productToDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
