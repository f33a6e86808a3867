package retention

import (
	"fmt"

	"github.com/kode4food/tandem/window"
)

type (
	// Policy describes and implements a policy that a window Store will use
	// to discard Entries
	Policy interface {
		// Retain reports whether an Entry put at the given Timestamp should
		// still be visible to a Store whose clock reads now. For a given now,
		// an Entry must never outlive a newer one
		Retain(now, ts window.Timestamp) bool

		// Bounded reports whether this Policy can ever discard an Entry
		Bounded() bool

		fmt.Stringer
	}

	// UnlimitedPolicy keeps every Entry for the life of the Store
	UnlimitedPolicy struct{}

	// TimedPolicy keeps Entries no older than Span ticks, relative to the
	// Store's clock
	TimedPolicy struct {
		span window.Timestamp
	}
)

// Unlimited is the retention Policy that never discards anything
var Unlimited Policy = UnlimitedPolicy{}

// MakeTimedPolicy returns a Policy that discards Entries once the Store's
// clock has moved more than span ticks past them. A negative span is treated
// as zero, so an Entry at the Store's clock is always kept
func MakeTimedPolicy(span window.Timestamp) *TimedPolicy {
	span = max(span, 0)
	return &TimedPolicy{
		span: span,
	}
}

func (UnlimitedPolicy) Retain(_, _ window.Timestamp) bool {
	return true
}

func (UnlimitedPolicy) Bounded() bool {
	return false
}

func (UnlimitedPolicy) String() string {
	return "unlimited"
}

// Span returns the number of ticks an Entry is retained for
func (p *TimedPolicy) Span() window.Timestamp {
	return p.span
}

func (p *TimedPolicy) Retain(now, ts window.Timestamp) bool {
	return now-ts <= p.span
}

func (*TimedPolicy) Bounded() bool {
	return true
}

func (p *TimedPolicy) String() string {
	return fmt.Sprintf("timed(%d)", p.span)
}
