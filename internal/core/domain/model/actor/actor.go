// Package actor describes who performs an operation. Identification is done
// by the inbound adapter; the domain only needs the id and the role.
package actor

import (
	"errors"
	"fmt"
	"strings"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"
)

type Role string

const (
	Customer Role = "CUSTOMER"
	Owner    Role = "OWNER"
	Staff    Role = "STAFF"
	Driver   Role = "DRIVER"
	Admin    Role = "ADMIN"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ParseRole is case-insensitive and ignores surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Customer, Owner, Staff, Driver, Admin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

type Actor struct {
	id   kernel.UUID
	role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// systemID identifies background jobs acting on behalf of the platform.
var systemID = kernel.MustUUID("00000000-0000-0000-0000-00000000a0a0")

// System is the admin actor used by background jobs such as pending dispatch.
func System() Actor {
	return Actor{id: systemID, role: Admin}
}

func (a Actor) Validate() error {
	if a.role == "" {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// HasRole reports whether the actor holds any of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.role == r {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.role == Admin
}

func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.id)
}
