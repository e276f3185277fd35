package order

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/pricing"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProductLineIsNotConstructed is returned when a zero ProductLine is used.
var ErrProductLineIsNotConstructed = errors.New("ProductLine must be created via NewProductLine constructor")

// ProductLine is one product of an order. The unit price is the catalog price
// at the moment the line was priced and does not follow later catalog changes.
type ProductLine struct {
	productID  int64
	quantity   int
	unityPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewProductLine validates and builds a product line.
func NewProductLine(productID int64, quantity int, unityPrice decimal.Decimal) (ProductLine, error) {
	line := ProductLine{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
		line.setUnityPrice(unityPrice),
	); err != nil {
		return ProductLine{}, err
	}

	return line, nil
}

// Validate reports whether the line was built by NewProductLine.
func (l ProductLine) Validate() error {
	return l.guard.Validate(ErrProductLineIsNotConstructed)
}

func (l ProductLine) ProductID() int64 {
	return l.productID
}

func (l ProductLine) Quantity() int {
	return l.quantity
}

func (l ProductLine) UnityPrice() decimal.Decimal {
	return l.unityPrice
}

// Subtotal is quantity times unit price.
func (l ProductLine) Subtotal() decimal.Decimal {
	return l.unityPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l ProductLine) pricingLine() pricing.Line {
	return pricing.NewLine(l.productID, l.quantity, l.unityPrice)
}

func (l *ProductLine) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", productID))
	}
	l.productID = productID
	return nil
}

func (l *ProductLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *ProductLine) setUnityPrice(unityPrice decimal.Decimal) error {
	if unityPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unity price", fmt.Errorf("%s is negative", unityPrice))
	}
	l.unityPrice = unityPrice
	return nil
}
