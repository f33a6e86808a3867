package config

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/window"
	"github.com/kode4food/tandem/window/retention"
)

// Defaults applies the expected defaults to a Config: a symmetric join with
// unlimited retention, a single partition, and a generated name
func Defaults(c *Config) error {
	if !c.variantSet {
		c.Variant = join.Symmetric
		c.variantSet = true
	}
	if c.RetentionPolicy == nil {
		c.RetentionPolicy = retention.Unlimited
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
	if c.Partitions == 0 {
		c.Partitions = DefaultPartitions
	}
	return nil
}

// Symmetric configures a join that pairs every live entry sharing a key
func Symmetric(c *Config) error {
	return Variant(join.Symmetric)(c)
}

// Prior configures a join that only pairs left entries with right entries
// at or before them
func Prior(c *Config) error {
	return Variant(join.Prior)(c)
}

// Variant configures the join Variant
func Variant(v join.Variant) Option {
	return func(c *Config) error {
		if c.variantSet {
			return ErrVariantAlreadySet
		}
		switch v {
		case join.Symmetric, join.Prior:
			c.Variant = v
			c.variantSet = true
			return nil
		default:
			return fmt.Errorf("%w: %d", join.ErrUnknownVariant, v)
		}
	}
}

// Unlimited configures window Stores that never discard entries
func Unlimited(c *Config) error {
	return RetentionPolicy(retention.Unlimited)(c)
}

// Retention configures window Stores that discard entries once their clock
// has moved more than span ticks past them
func Retention(span window.Timestamp) Option {
	return func(c *Config) error {
		if span < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRetention, span)
		}
		return RetentionPolicy(retention.MakeTimedPolicy(span))(c)
	}
}

// RetentionPolicy configures a custom retention Policy
func RetentionPolicy(p retention.Policy) Option {
	return func(c *Config) error {
		if c.RetentionPolicy != nil {
			return ErrRetentionAlreadySet
		}
		c.RetentionPolicy = p
		return nil
	}
}

// Name configures the name used for logging and metrics. Metric series are
// labeled by name, so names should be unique among live Operators and Stores.
// Closing an Operator or Store removes its series
func Name(n string) Option {
	return func(c *Config) error {
		if n == "" {
			return ErrInvalidName
		}
		c.Name = n
		return nil
	}
}

// Logger configures the slog.Logger used by an Operator and its Stores
func Logger(l *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// Partitions configures the number of independent partitions a partitioned
// join will route records to
func Partitions(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidPartitions, n)
		}
		c.Partitions = n
		return nil
	}
}
