package commands

import (
	"errors"

	"deliverus/internal/pkg/guard"
)

var ErrRecomputeServiceTimesCommandIsNotConstructed = errors.New(
	"RecomputeServiceTimesCommand must be created via NewRecomputeServiceTimesCommand constructor",
)

// RecomputeServiceTimesCommand recomputes the average service time of every
// restaurant. It reconciles values written by older estimators or by
// deliveries made outside this service.
type RecomputeServiceTimesCommand struct {
	guard guard.ConstructorGuard
}

func NewRecomputeServiceTimesCommand() RecomputeServiceTimesCommand {
	return RecomputeServiceTimesCommand{guard: guard.NewConstructorGuard()}
}

func (c RecomputeServiceTimesCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeServiceTimesCommandIsNotConstructed)
}
