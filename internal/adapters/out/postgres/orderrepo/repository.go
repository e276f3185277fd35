package orderrepo

import (
	"context"
	"errors"

	"deliverus/internal/adapters/out/postgres/pgerrs"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM. Writes that
// touch both tables run in a nested transaction, so they stay atomic even
// when the repository is used outside a unit of work.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its lines and assigns the generated id.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return pgerrs.Wrap("insert order", err)
		}
		lines := linesFromDomain(dto.ID, aggregate.Lines())
		if err := tx.Create(&lines).Error; err != nil {
			return pgerrs.Wrap("insert product lines", err)
		}
		return nil
	})
	if err != nil {
		return pgerrs.Wrap("add order", err)
	}

	return aggregate.AssignID(dto.ID)
}

// Update writes the order columns and replaces every product line.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
			"address":        dto.Address,
			"price":          dto.Price,
			"shipping_costs": dto.ShippingCosts,
			"updated_at":     dto.UpdatedAt,
			"started_at":     dto.StartedAt,
			"sent_at":        dto.SentAt,
			"delivered_at":   dto.DeliveredAt,
		})
		if result.Error != nil {
			return pgerrs.Wrap("update order", result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", dto.ID)
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&ProductLineDTO{}).Error; err != nil {
			return pgerrs.Wrap("delete product lines", err)
		}
		lines := linesFromDomain(dto.ID, aggregate.Lines())
		if err := tx.Create(&lines).Error; err != nil {
			return pgerrs.Wrap("insert product lines", err)
		}
		return nil
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return pgerrs.Wrap("update order", err)
}

// UpdateLifecycle writes the lifecycle timestamps and updatedAt.
func (r *GormOrderRepository) UpdateLifecycle(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID()).Updates(map[string]any{
		"updated_at":   aggregate.UpdatedAt(),
		"started_at":   aggregate.StartedAt(),
		"sent_at":      aggregate.SentAt(),
		"delivered_at": aggregate.DeliveredAt(),
	})
	if result.Error != nil {
		return pgerrs.Wrap("update order lifecycle", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	return nil
}

// Delete removes the order row; order_products rows go with it through
// ON DELETE CASCADE in the same statement.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, id)
	if result.Error != nil {
		return pgerrs.Wrap("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerrs.NotFoundOr("select order", "order", id, err)
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("position").Find(&dto.Lines).Error; err != nil {
		return nil, pgerrs.Wrap("select product lines", err)
	}

	return toDomain(dto)
}

// DeliveredServiceMinutes returns the minutes from creation to delivery of
// the restaurant's delivered orders, oldest delivery first.
func (r *GormOrderRepository) DeliveredServiceMinutes(ctx context.Context, restaurantID int64) ([]decimal.Decimal, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(EPOCH FROM (delivered_at - created_at)) / 60
		FROM orders
		WHERE restaurant_id = ? AND delivered_at IS NOT NULL
		ORDER BY delivered_at, id
	`, restaurantID).Rows()
	if err != nil {
		return nil, pgerrs.Wrap("select service minutes", err)
	}
	defer rows.Close()

	minutes := make([]decimal.Decimal, 0)
	for rows.Next() {
		var m decimal.Decimal
		if err = rows.Scan(&m); err != nil {
			return nil, pgerrs.Wrap("scan service minutes", err)
		}
		minutes = append(minutes, m)
	}
	if err = rows.Err(); err != nil {
		return nil, pgerrs.Wrap("read service minutes", err)
	}

	return minutes, nil
}
