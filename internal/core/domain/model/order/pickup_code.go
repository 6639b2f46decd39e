package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// pickupCodeBytes random bytes become twice as many hex characters.
const pickupCodeBytes = 3

// NewPickupCode returns a random code of six uppercase hex characters that
// the driver shows at the cafe counter.
func NewPickupCode() (string, error) {
	b := make([]byte, pickupCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate pickup code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
