package kernel

import (
	"bytes"
	"fmt"

	"cafedelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, cafes, customers and drivers. It wraps
// github.com/google/uuid so that the zero value is rejected by Validate.
// A UUID is immutable and safe to share between goroutines.
//
// The zero value is not a valid identifier. Build one with NewUUID,
// UUIDFromString or UUIDFromBytes.
//
// Example usage:
//
//	// a fresh identifier for a new aggregate
//	orderID := kernel.NewUUID()
//
//	// an identifier coming from a request or a row
//	driverID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("driver_id", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID. The result always
// passes Validate.
//
// Example:
//
//	id := kernel.NewUUID()
//	fmt.Println(id) // e.g. "9b2f4c1e-7a0d-4e7b-8c55-0f3a1d2e6b90"
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical, braced, urn-prefixed and hyphen-less forms:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// Example:
//
//	cafeID, err := kernel.UUIDFromString(c.Param("cafeId"))
//	if err != nil {
//	    return err
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte form. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// MustUUID is UUIDFromString for literals known to be valid. It panics otherwise.
func MustUUID(s string) UUID {
	id, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values hold the same identifier.
//
// Example:
//
//	if !a.ID().IsEqual(driverID) {
//	    return errs.NewForbiddenError("record driver location")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders UUIDs by their byte representation, which is the order
// PostgreSQL uses for the uuid type. It returns -1, 0 or +1.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u.id[:], other.id[:])
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText renders the canonical string form, so a UUID encodes as a JSON string.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}
