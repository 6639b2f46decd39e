package commands

import (
	"errors"
	"time"

	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/guard"
)

var ErrPruneDriverLocationsCommandIsNotConstructed = errors.New(
	"PruneDriverLocationsCommand must be created via NewPruneDriverLocationsCommand constructor",
)

// PruneDriverLocationsCommand drops ledger history older than retention.
// Each driver's latest record is always kept.
type PruneDriverLocationsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPruneDriverLocationsCommand(retention time.Duration) (PruneDriverLocationsCommand, error) {
	if retention <= 0 {
		return PruneDriverLocationsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, time.Duration(1), "unbounded")
	}
	return PruneDriverLocationsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PruneDriverLocationsCommand) Validate() error {
	return c.guard.Validate(ErrPruneDriverLocationsCommandIsNotConstructed)
}

func (c PruneDriverLocationsCommand) Retention() time.Duration {
	return c.retention
}
