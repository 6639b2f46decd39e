package commands

import (
	"errors"

	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/guard"
)

var ErrDispatchPendingOrdersCommandIsNotConstructed = errors.New(
	"DispatchPendingOrdersCommand must be created via NewDispatchPendingOrdersCommand constructor",
)

// DispatchPendingOrdersCommand retries automatic assignment for up to
// batchSize orders that are ACCEPTED or READY and still have no driver.
type DispatchPendingOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchPendingOrdersCommand(batchSize int) (DispatchPendingOrdersCommand, error) {
	if batchSize <= 0 {
		return DispatchPendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return DispatchPendingOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrdersCommandIsNotConstructed)
}

func (c DispatchPendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
