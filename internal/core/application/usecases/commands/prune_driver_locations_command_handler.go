package commands

import (
	"context"

	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/metrics"
)

type PruneDriverLocationsCommandHandler struct {
	uowFactory DriverLedgerUoWFactory
	clock      ports.Clock
}

func NewPruneDriverLocationsCommandHandler(uowFactory DriverLedgerUoWFactory, clock ports.Clock) PruneDriverLocationsCommandHandler {
	return PruneDriverLocationsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of deleted records.
func (h PruneDriverLocationsCommandHandler) Handle(ctx context.Context, command PruneDriverLocationsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.clock.Now().Add(-command.Retention())

	// a single DELETE statement, no explicit transaction
	n, err := h.uowFactory.Create().DriverLocationRepository().PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	metrics.DriverLocationsPrunedTotal.Add(float64(n))
	return n, nil
}
