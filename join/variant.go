package join

import (
	"fmt"

	"github.com/kode4food/tandem/window"
)

// Variant selects the temporal rule an Operator applies when pairing a
// primary (left) Timestamp with a secondary (right) Timestamp
type Variant uint8

// Variants
const (
	// Symmetric pairs every live entry, regardless of Timestamps
	Symmetric Variant = iota

	// Prior only pairs a left entry with right entries at or before it
	Prior
)

// Matches reports whether a left Timestamp and a right Timestamp qualify as
// a match. Retention is not considered here, the Stores handle that
func (v Variant) Matches(primary, secondary window.Timestamp) bool {
	switch v {
	case Prior:
		return primary >= secondary
	default:
		return true
	}
}

// ParseVariant converts the name of a Variant back into a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "symmetric":
		return Symmetric, nil
	case "prior":
		return Prior, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariant, s)
	}
}

func (v Variant) String() string {
	switch v {
	case Symmetric:
		return "symmetric"
	case Prior:
		return "prior"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}
