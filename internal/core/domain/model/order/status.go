package order

import (
	"fmt"
	"strings"

	"cafedelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PENDING ──┬──> ACCEPTED ──┬──> READY ──> PICKED_UP ──> DELIVERED
//	          │               │
//	          └──> DECLINED   └──> CANCELLED
//
// DECLINED, CANCELLED, REFUNDED and DELIVERED are terminal. REFUNDED is never
// reached through the transition table; it exists for orders refunded by an
// external payment process.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota
	Pending
	Accepted
	Declined
	Ready
	PickedUp
	Cancelled
	Refunded
	Delivered
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Accepted:  "ACCEPTED",
	Declined:  "DECLINED",
	Ready:     "READY",
	PickedUp:  "PICKED_UP",
	Cancelled: "CANCELLED",
	Refunded:  "REFUNDED",
	Delivered: "DELIVERED",
}

// transitions is the complete table of allowed status changes.
var transitions = map[Status][]Status{
	Pending:  {Accepted, Declined},
	Accepted: {Ready, Cancelled},
	Ready:    {PickedUp},
	PickedUp: {Delivered},
}

// Statuses returns every valid status in declaration order.
func Statuses() []Status {
	return []Status{Pending, Accepted, Declined, Ready, PickedUp, Cancelled, Refunded, Delivered}
}

// ParseStatus converts external input such as "picked_up" or " Accepted "
// into a Status. Matching is case-insensitive and ignores surrounding spaces.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == norm {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// AllowedNext returns the statuses reachable from s in one step. Terminal and
// invalid statuses yield an empty slice.
func (s Status) AllowedNext() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, n := range transitions[s] {
		if n == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case Declined, Cancelled, Refunded, Delivered:
		return true
	default:
		return false
	}
}

// IsActive reports whether an order in s keeps its driver occupied.
func (s Status) IsActive() bool {
	return s == Accepted || s == Ready || s == PickedUp
}

// IsAssignable reports whether a driver may be assigned to an order in s.
func (s Status) IsAssignable() bool {
	return s == Accepted || s == Ready
}

// CanHaveDriver reports whether an order in s may reference a driver. Cancelled
// orders keep the driver that had been assigned before cancellation.
func (s Status) CanHaveDriver() bool {
	return s.IsActive() || s == Delivered || s == Cancelled
}

// Transition returns to if the table allows s -> to, ErrInvalidTransition otherwise.
func (s Status) Transition(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	return to, nil
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
