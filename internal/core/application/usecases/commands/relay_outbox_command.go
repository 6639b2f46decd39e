package commands

import (
	"errors"

	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes up to batchSize pending outbox messages.
type RelayOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return RelayOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
