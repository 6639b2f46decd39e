package services

import (
	"cmp"
	"errors"
	"iter"
	"slices"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
)

// ErrNoIdleDriver is returned when no ranked candidate could be assigned.
var ErrNoIdleDriver = errors.New("no idle driver available")

// Candidate is an idle driver together with its straight-line distance to
// the pickup point.
type Candidate struct {
	Record     *driver.LocationRecord
	DistanceKm float64
}

// DriverDispatcher selects drivers for automatic assignment by straight-line
// distance from the cafe. It holds no state and performs no I/O; the caller
// supplies the latest ledger record of every known driver.
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Rank returns the idle drivers among records ordered by distance to
// origin. Equal distances are ordered by ascending driver id. Non-idle
// records are skipped and the first iteration error is returned. An empty
// result is not an error.
//
// Example:
//
//	ranked, err := services.NewDriverDispatcher().Rank(cafeLocation, ledger.AllIdle(ctx))
//	if err != nil {
//		return err
//	}
//	for _, c := range ranked {
//		// try c.Record.DriverID(), nearest first
//	}
func (d DriverDispatcher) Rank(origin kernel.Location, records iter.Seq2[*driver.LocationRecord, error]) ([]Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	var out []Candidate
	for rec, err := range records {
		if err != nil {
			return nil, err
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if !rec.IsIdle() {
			continue
		}
		out = append(out, Candidate{Record: rec, DistanceKm: origin.DistanceTo(rec.Location())})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return a.Record.DriverID().Compare(b.Record.DriverID())
	})
	return out, nil
}
