package join

import (
	"errors"
	"fmt"

	"github.com/kode4food/tandem/window"
)

type (
	// Operator joins two keyed streams. Each arrival is matched against the
	// live Entries of the opposite side's window Store and then stored on
	// its own side for future lookups. The left side is always the primary
	// side, no matter which side triggered the lookup
	Operator[Key comparable, Left, Right any] interface {
		// OnLeft delivers a record arriving on the left (primary) stream
		OnLeft(Key, Left, window.Timestamp) error

		// OnRight delivers a record arriving on the right (secondary) stream
		OnRight(Key, Right, window.Timestamp) error

		// Close releases the metric series labeled with this Operator's name,
		// along with any window Stores the Operator created for itself
		Close() error
	}

	// Side identifies one of the two input streams of an Operator
	Side uint8
)

// Sides
const (
	LeftSide Side = iota
	RightSide
)

// Error messages
var (
	ErrUnknownSide    = errors.New("unknown join side")
	ErrUnknownVariant = errors.New("unknown join variant")
)

// Deliver routes a record to the Operator input identified by Side. It is
// only available to Operators whose left and right values share a type
func Deliver[Key comparable, Value any](
	op Operator[Key, Value, Value], s Side, k Key, v Value, ts window.Timestamp,
) error {
	switch s {
	case LeftSide:
		return op.OnLeft(k, v, ts)
	case RightSide:
		return op.OnRight(k, v, ts)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownSide, s)
	}
}

// ParseSide converts the name of a Side back into a Side
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return LeftSide, nil
	case "right":
		return RightSide, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownSide, s)
	}
}

func (s Side) String() string {
	switch s {
	case LeftSide:
		return "left"
	case RightSide:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// PartitionedOperator is an Operator that routes each record, by key, to one
// of several independent Operators. Records sharing a key always land on the
// same partition, and distinct partitions may be driven concurrently
type PartitionedOperator[Key comparable, Left, Right any] interface {
	Operator[Key, Left, Right]

	// Partition returns the partition a key is routed to
	Partition(Key) uint64

	// Partitions returns the number of partitions records are spread over
	Partitions() int
}
