// Package gameid generates sortable, collision-free match identifiers.
//
// Identifiers are UUIDv7 values rendered as 26 lowercase Crockford base32
// characters (the TypeID suffix format), so they sort by creation time and are
// safe to embed in file names.
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh match identifier
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system random source fails
		panic("gameid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left-padded
// with two zero bits so the first character is always in 0-7.
func Encode(id uuid.UUID) string {
	out := make([]byte, 26)
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks if an identifier is well formed (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("game ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
