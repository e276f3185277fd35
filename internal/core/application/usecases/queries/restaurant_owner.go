package queries

import (
	"context"
	"database/sql"
	"errors"

	"deliverus/internal/pkg/errs"

	"gorm.io/gorm"
)

// restaurantOwner returns the owner id of a restaurant, or an
// *errs.ObjectNotFoundError when it does not exist.
func restaurantOwner(ctx context.Context, db *gorm.DB, restaurantID int64) (int64, error) {
	var ownerID int64
	err := db.WithContext(ctx).Raw("SELECT user_id FROM restaurants WHERE id = ?", restaurantID).Row().Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errs.NewObjectNotFoundError("restaurant", restaurantID)
	}
	if err != nil {
		return 0, errs.NewPersistenceError("select restaurant owner", err)
	}
	return ownerID, nil
}
