package tandem

import (
	joinImpl "github.com/kode4food/tandem/internal/join"
	windowImpl "github.com/kode4food/tandem/internal/window"
	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/join/config"
	"github.com/kode4food/tandem/window"
)

// NewWindowStore instantiates a new window Store. Only the name, retention,
// and logger settings of the Options apply to a Store
func NewWindowStore[Key comparable, Value any](
	o ...config.Option,
) (window.Store[Key, Value], error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return windowImpl.Make[Key, Value](
		cfg.Name, cfg.RetentionPolicy, cfg.Logger,
	), nil
}

// NewJoin instantiates a new join Operator that owns a fresh window Store for
// each of its sides
func NewJoin[Key comparable, Left, Right, Out any](
	joiner join.ValueJoiner[Left, Right, Out], sink join.Sink[Key, Out],
	o ...config.Option,
) (join.Operator[Key, Left, Right], error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return joinImpl.Make(cfg, joiner, sink), nil
}

// NewJoinWithStores instantiates a new join Operator over a pair of existing
// window Stores. The retention settings of the Options are ignored, since
// the Stores carry their own
func NewJoinWithStores[Key comparable, Left, Right, Out any](
	left window.Store[Key, Left], right window.Store[Key, Right],
	joiner join.ValueJoiner[Left, Right, Out], sink join.Sink[Key, Out],
	o ...config.Option,
) (join.Operator[Key, Left, Right], error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return joinImpl.MakeWithStores(cfg, left, right, joiner, sink), nil
}

// NewPartitionedJoin instantiates a join Operator that spreads keys over
// independent partitions, each owning its own pair of window Stores. A nil
// Partitioner hashes the keys
func NewPartitionedJoin[Key comparable, Left, Right, Out any](
	joiner join.ValueJoiner[Left, Right, Out], sink join.Sink[Key, Out],
	p join.Partitioner[Key], o ...config.Option,
) (join.PartitionedOperator[Key, Left, Right], error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return joinImpl.MakePartitioned(cfg, joiner, sink, p), nil
}
