package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/ports"
	"deliverus/internal/pkg/errs"
)

// ProductLineInput is one requested product line before it is priced.
type ProductLineInput struct {
	ProductID int64
	Quantity  int
}

// validateAddress adds the address violations to verr.
func validateAddress(verr *errs.ValidationError, address string) {
	switch {
	case strings.TrimSpace(address) == "":
		verr.Add("address", "address is required")
	case utf8.RuneCountInString(address) > order.MaxAddressLength:
		verr.Add("address", fmt.Sprintf("address must be at most %d characters", order.MaxAddressLength))
	}
}

// validateProductLines adds the structural violations of the requested lines to verr.
func validateProductLines(verr *errs.ValidationError, lines []ProductLineInput) {
	if len(lines) == 0 {
		verr.Add("products", "at least one product is required")
		return
	}

	seen := make(map[int64]int, len(lines))
	for i, l := range lines {
		field := fmt.Sprintf("products[%d]", i)
		if l.ProductID <= 0 {
			verr.Add(field+".productId", "productId must be a positive integer")
		} else if first, dup := seen[l.ProductID]; dup {
			verr.Add(field+".productId", fmt.Sprintf("product %d is already listed at products[%d]", l.ProductID, first))
		} else {
			seen[l.ProductID] = i
		}
		if l.Quantity <= 0 {
			verr.Add(field+".quantity", "quantity must be a positive integer")
		}
	}
}

// OrderRules are the catalog-backed checks run before an order is created or
// edited. Each rule reports every offending field but the rules themselves
// short-circuit: the first failing rule ends validation.
type OrderRules struct{}

// ExistingRestaurant loads the restaurant an order is placed against. A
// missing restaurant is a validation failure on restaurantId.
func (OrderRules) ExistingRestaurant(
	ctx context.Context,
	repo ports.RestaurantRepository,
	restaurantID int64,
) (*restaurant.Restaurant, error) {
	r, err := repo.Get(ctx, restaurantID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewFieldValidationError("restaurantId", fmt.Sprintf("restaurant %d does not exist", restaurantID))
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// PricedLines resolves the requested products against the catalog and builds
// product lines priced at the current catalog price. Every product must exist,
// be available and belong to restaurantID.
func (OrderRules) PricedLines(
	ctx context.Context,
	repo ports.ProductRepository,
	restaurantID int64,
	inputs []ProductLineInput,
) ([]order.ProductLine, error) {
	ids := make([]int64, len(inputs))
	for i, in := range inputs {
		ids[i] = in.ProductID
	}

	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*restaurant.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}

	verr := errs.NewValidationError()
	for i, in := range inputs {
		p, ok := byID[in.ProductID]
		if !ok || !p.IsAvailable() {
			verr.Add(fmt.Sprintf("products[%d].productId", i), fmt.Sprintf("product %d is not available", in.ProductID))
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	for i, in := range inputs {
		if p := byID[in.ProductID]; !p.BelongsTo(restaurantID) {
			verr.Add(fmt.Sprintf("products[%d].productId", i),
				fmt.Sprintf("product %d does not belong to restaurant %d", in.ProductID, restaurantID))
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	lines := make([]order.ProductLine, 0, len(inputs))
	for _, in := range inputs {
		line, lineErr := order.NewProductLine(in.ProductID, in.Quantity, byID[in.ProductID].Price())
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}
	return lines, nil
}
