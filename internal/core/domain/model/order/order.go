package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"deliverus/internal/core/domain/model/pricing"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxAddressLength is the longest delivery address accepted, in characters.
const MaxAddressLength = 255

// Domain errors for order operations.
var (
	// ErrAddressIsRequired is returned when the address is empty or blank.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrProductLinesAreRequired is returned when an order has no product lines.
	ErrProductLinesAreRequired = errs.NewValueIsRequiredError("products")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrIDAlreadyAssigned is returned when AssignID is called on a persisted order.
	ErrIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of the order lifecycle. It owns its product
// lines, derives its price from them and guards every state transition.
//
// Business rules:
//   - price == sum(quantity * unityPrice) + shippingCosts
//   - shippingCosts is zero when the merchandise total exceeds
//     pricing.FreeShippingThreshold, the restaurant's cost otherwise
//   - startedAt, sentAt and deliveredAt are set once, in that order
//   - address and lines change only while Pending
//
// Example usage:
//
//	line, _ := order.NewProductLine(3, 2, decimal.RequireFromString("4.00"))
//	o, err := order.NewOrder(userID, restaurantID, "Calle Falsa 123", []order.ProductLine{line},
//	    decimal.RequireFromString("3.50"), clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	_ = o.Price() // 11.50
type Order struct {
	id           int64
	userID       int64
	restaurantID int64
	address      string
	lines        []ProductLine

	price         decimal.Decimal
	shippingCosts decimal.Decimal

	createdAt   time.Time
	updatedAt   time.Time
	startedAt   *time.Time
	sentAt      *time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order and prices it against the restaurant's
// current shipping costs. The id stays zero until the order is persisted.
func NewOrder(
	userID int64,
	restaurantID int64,
	address string,
	lines []ProductLine,
	restaurantShippingCosts decimal.Decimal,
	now time.Time,
) (*Order, error) {
	o := &Order{
		guard:     guard.NewConstructorGuard(),
		createdAt: now,
		updatedAt: now,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	if err := o.reprice(restaurantShippingCosts); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order, used by RestoreOrder.
type Snapshot struct {
	ID            int64
	UserID        int64
	RestaurantID  int64
	Address       string
	Lines         []ProductLine
	Price         decimal.Decimal
	ShippingCosts decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
}

// RestoreOrder reconstructs an order from storage. The stored price is kept
// as is; callers that need to check it use VerifyPrice.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		guard:         guard.NewConstructorGuard(),
		price:         s.Price,
		shippingCosts: s.ShippingCosts,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		startedAt:     s.StartedAt,
		sentAt:        s.SentAt,
		deliveredAt:   s.DeliveredAt,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setRestaurantID(s.RestaurantID),
		o.setAddress(s.Address),
		o.setLines(s.Lines),
		o.Status().Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() int64 {
	return o.id
}

// AssignID records the id generated by storage for a new order.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	return o.setID(id)
}

func (o *Order) UserID() int64 {
	return o.userID
}

func (o *Order) RestaurantID() int64 {
	return o.restaurantID
}

func (o *Order) Address() string {
	return o.address
}

// Lines returns a copy of the product lines.
func (o *Order) Lines() []ProductLine {
	lines := make([]ProductLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) Price() decimal.Decimal {
	return o.price
}

// ShippingCosts is the shipping cost applied to this order, zero when free.
func (o *Order) ShippingCosts() decimal.Decimal {
	return o.shippingCosts
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

func (o *Order) SentAt() *time.Time {
	return o.sentAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Status derives the lifecycle state from the timestamps.
func (o *Order) Status() Status {
	return StatusOf(o.startedAt, o.sentAt, o.deliveredAt)
}

// MerchandiseTotal is the sum of the line subtotals.
func (o *Order) MerchandiseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Revise replaces the address and product lines of a Pending order and
// reprices it against the restaurant's current shipping costs.
func (o *Order) Revise(address string, lines []ProductLine, restaurantShippingCosts decimal.Decimal, now time.Time) error {
	if err := o.Status().ValidateEditable(); err != nil {
		return err
	}

	revised := *o
	if err := errors.Join(
		revised.setAddress(address),
		revised.setLines(lines),
	); err != nil {
		return err
	}
	if err := revised.reprice(restaurantShippingCosts); err != nil {
		return err
	}

	revised.updatedAt = now
	*o = revised
	return nil
}

// EnsureDeletable returns a ConflictError unless the order is Pending.
func (o *Order) EnsureDeletable() error {
	return o.Status().ValidateEditable()
}

// Confirm moves a Pending order to InProcess.
func (o *Order) Confirm(now time.Time) error {
	if _, err := o.Status().Confirm(); err != nil {
		return err
	}
	o.startedAt = &now
	o.updatedAt = now
	return nil
}

// Send moves an InProcess order to Sent.
func (o *Order) Send(now time.Time) error {
	if _, err := o.Status().Send(); err != nil {
		return err
	}
	o.sentAt = &now
	o.updatedAt = now
	return nil
}

// Deliver moves a Sent order to Delivered.
func (o *Order) Deliver(now time.Time) error {
	if _, err := o.Status().Deliver(); err != nil {
		return err
	}
	o.deliveredAt = &now
	o.updatedAt = now
	return nil
}

// ServiceMinutes is the time from creation to delivery, in minutes. It
// reports false for orders that were not delivered yet.
func (o *Order) ServiceMinutes() (decimal.Decimal, bool) {
	if o.deliveredAt == nil {
		return decimal.Zero, false
	}
	elapsed := o.deliveredAt.Sub(o.createdAt)
	return decimal.NewFromFloat(elapsed.Minutes()), true
}

// VerifyPrice checks the stored price against the stored lines and the
// applied shipping cost.
func (o *Order) VerifyPrice() error {
	merchandise := o.MerchandiseTotal()
	if merchandise.GreaterThan(pricing.FreeShippingThreshold) && !o.shippingCosts.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("shipping costs",
			fmt.Errorf("%s charged on a merchandise total of %s", o.shippingCosts, merchandise))
	}
	if expected := merchandise.Add(o.shippingCosts); !expected.Equal(o.price) {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("stored %s does not match computed %s", o.price, expected))
	}
	return nil
}

func (o *Order) reprice(restaurantShippingCosts decimal.Decimal) error {
	pricingLines := make([]pricing.Line, len(o.lines))
	for i, l := range o.lines {
		pricingLines[i] = l.pricingLine()
	}

	quote, err := pricing.Compute(pricingLines, restaurantShippingCosts)
	if err != nil {
		return err
	}

	o.price = quote.Total
	o.shippingCosts = quote.ShippingCost
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", fmt.Errorf("%d is not greater than 0", restaurantID))
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressIsRequired
	}
	if n := utf8.RuneCountInString(address); n > MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", n, 1, MaxAddressLength)
	}
	o.address = address
	return nil
}

func (o *Order) setLines(lines []ProductLine) error {
	if len(lines) == 0 {
		return ErrProductLinesAreRequired
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("products",
				fmt.Errorf("product %d appears more than once", l.ProductID()))
		}
		seen[l.ProductID()] = struct{}{}
	}

	o.lines = make([]ProductLine, len(lines))
	copy(o.lines, lines)
	return nil
}
