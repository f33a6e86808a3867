package config

import (
	"errors"
	"log/slog"

	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/window/retention"
)

type (
	// Config conveys the properties of a join Operator and its window Stores
	// that one can configure using Options
	Config struct {
		RetentionPolicy retention.Policy
		Logger          *slog.Logger
		Name            string
		Partitions      int
		Variant         join.Variant
		variantSet      bool
	}

	// Option applies an option to a join configuration instance
	Option func(*Config) error
)

// Defaults
const (
	DefaultPartitions = 1
)

// Error messages
var (
	ErrVariantAlreadySet   = errors.New("join variant already set")
	ErrRetentionAlreadySet = errors.New("retention policy already set")
	ErrInvalidRetention    = errors.New("retention span must not be negative")
	ErrInvalidPartitions   = errors.New("partition count must be positive")
	ErrInvalidName         = errors.New("name must not be empty")
)

// Apply builds a Config from the provided Options. Defaults fill in whatever
// the Options leave unset
func Apply(o ...Option) (*Config, error) {
	cfg := &Config{}
	for _, opt := range o {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := Defaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
