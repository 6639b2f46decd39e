package driver

import (
	"fmt"
	"strings"

	"cafedelivery/internal/pkg/errs"
)

// Status is a driver's availability as carried by a location record.
type Status string

const (
	Idle     Status = "IDLE"
	Occupied Status = "OCCUPIED"
)

// ParseStatus is case-insensitive; an empty string yields Idle.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Idle, nil
	}
	st := Status(strings.ToUpper(s))
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	if s != Idle && s != Occupied {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not IDLE or OCCUPIED", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
