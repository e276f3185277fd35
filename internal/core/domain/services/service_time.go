package services

import (
	"fmt"

	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Service time strategy names accepted by NewServiceTimeEstimator.
const (
	ServiceTimeMean = "mean"
	ServiceTimeEWMA = "ewma"
)

// serviceTimePlaces is the precision stored for average service minutes.
const serviceTimePlaces = 2

// ServiceTimeEstimator reduces the service minutes of a restaurant's
// delivered orders, oldest delivery first, to a single average. It returns
// null when there are no samples.
type ServiceTimeEstimator interface {
	Estimate(minutes []decimal.Decimal) decimal.NullDecimal
}

// NewServiceTimeEstimator picks a strategy by name. alpha is only used by "ewma".
func NewServiceTimeEstimator(strategy string, alpha float64) (ServiceTimeEstimator, error) {
	switch strategy {
	case "", ServiceTimeMean:
		return MeanServiceTime{}, nil
	case ServiceTimeEWMA:
		return NewEWMAServiceTime(alpha)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("service time strategy",
			fmt.Errorf("%q is not one of %s, %s", strategy, ServiceTimeMean, ServiceTimeEWMA))
	}
}

// MeanServiceTime is the arithmetic mean of all samples.
type MeanServiceTime struct{}

func (MeanServiceTime) Estimate(minutes []decimal.Decimal) decimal.NullDecimal {
	if len(minutes) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Avg(minutes[0], minutes[1:]...).Round(serviceTimePlaces))
}

// EWMAServiceTime weights recent deliveries more: each sample contributes
// Alpha and the running average keeps 1 - Alpha.
type EWMAServiceTime struct {
	Alpha decimal.Decimal
}

// NewEWMAServiceTime validates alpha in (0, 1].
func NewEWMAServiceTime(alpha float64) (EWMAServiceTime, error) {
	if alpha <= 0 || alpha > 1 {
		return EWMAServiceTime{}, errs.NewValueIsOutOfRangeError("ewma alpha", alpha, "0 (exclusive)", 1)
	}
	return EWMAServiceTime{Alpha: decimal.NewFromFloat(alpha)}, nil
}

func (e EWMAServiceTime) Estimate(minutes []decimal.Decimal) decimal.NullDecimal {
	if len(minutes) == 0 {
		return decimal.NullDecimal{}
	}
	keep := decimal.NewFromInt(1).Sub(e.Alpha)
	avg := minutes[0]
	for _, m := range minutes[1:] {
		avg = e.Alpha.Mul(m).Add(keep.Mul(avg))
	}
	return decimal.NewNullDecimal(avg.Round(serviceTimePlaces))
}
