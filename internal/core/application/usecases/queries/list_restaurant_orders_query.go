package queries

import (
	"errors"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
	"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
)

// ListRestaurantOrdersQuery lists the orders of one restaurant, optionally
// narrowed to one derived status and to a range of creation days.
//
// from and to are calendar dates: only their year, month and day are used,
// in the location the handler was built with. Both ends are inclusive, so
// to covers its whole day.
type ListRestaurantOrdersQuery struct {
	actor        kernel.Actor
	restaurantID int64
	status       order.Status
	from         *civilDate
	to           *civilDate

	guard guard.ConstructorGuard
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civilDateOf(t *time.Time) *civilDate {
	if t == nil {
		return nil
	}
	d := civilDate{year: t.Year(), month: t.Month(), day: t.Day()}
	return &d
}

func (d civilDate) at(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d civilDate) after(other civilDate) bool {
	return d.at(time.UTC).After(other.at(time.UTC))
}

// NewListRestaurantOrdersQuery reports every malformed filter at once in an
// *errs.ValidationError. An empty status means any status.
func NewListRestaurantOrdersQuery(
	actor kernel.Actor,
	restaurantID int64,
	status string,
	from, to *time.Time,
) (ListRestaurantOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	verr := errs.NewValidationError()
	if restaurantID <= 0 {
		verr.Add("restaurantId", "restaurantId must be a positive integer")
	}

	parsed := order.Unknown
	if status != "" {
		var err error
		if parsed, err = order.ParseStatus(status); err != nil {
			verr.Add("status", "status must be one of pending, in_process, sent, delivered")
		}
	}

	fromDate, toDate := civilDateOf(from), civilDateOf(to)
	if fromDate != nil && toDate != nil && fromDate.after(*toDate) {
		verr.Add("from", "from must not be after to")
	}

	if err := verr.OrNil(); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	return ListRestaurantOrdersQuery{
		actor:        actor,
		restaurantID: restaurantID,
		status:       parsed,
		from:         fromDate,
		to:           toDate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}

func (q ListRestaurantOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListRestaurantOrdersQuery) RestaurantID() int64 {
	return q.restaurantID
}

// Status is order.Unknown when the listing is not filtered by status.
func (q ListRestaurantOrdersQuery) Status() order.Status {
	return q.status
}

// CreatedFrom is the first instant of the from day in loc.
func (q ListRestaurantOrdersQuery) CreatedFrom(loc *time.Location) (time.Time, bool) {
	if q.from == nil {
		return time.Time{}, false
	}
	return q.from.at(loc), true
}

// CreatedBefore is the first instant of the day after to, in loc.
func (q ListRestaurantOrdersQuery) CreatedBefore(loc *time.Location) (time.Time, bool) {
	if q.to == nil {
		return time.Time{}, false
	}
	return q.to.at(loc).AddDate(0, 0, 1), true
}
