package join

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kode4food/tandem/internal/metrics"
	internal "github.com/kode4food/tandem/internal/window"
	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/join/config"
	"github.com/kode4food/tandem/window"
)

type (
	// Operator is the internal implementation of a join.Operator. Both
	// entry points share the same pair of Stores and the same Variant
	Operator[Key comparable, Left, Right, Out any] struct {
		left    window.Store[Key, Left]
		right   window.Store[Key, Right]
		joiner  join.ValueJoiner[Left, Right, Out]
		sink    join.Sink[Key, Out]
		logger  *slog.Logger
		name    string
		stats   [2]sideStats
		variant join.Variant
		owned   bool
	}

	sideStats struct {
		received   prometheus.Counter
		emitted    prometheus.Counter
		violations prometheus.Counter
	}
)

// Make instantiates a new internal Operator, along with a fresh window Store
// for each side
func Make[Key comparable, Left, Right, Out any](
	cfg *config.Config,
	joiner join.ValueJoiner[Left, Right, Out],
	sink join.Sink[Key, Out],
) join.Operator[Key, Left, Right] {
	left := internal.Make[Key, Left](
		cfg.Name+"-"+join.LeftSide.String(), cfg.RetentionPolicy, cfg.Logger,
	)
	right := internal.Make[Key, Right](
		cfg.Name+"-"+join.RightSide.String(), cfg.RetentionPolicy, cfg.Logger,
	)
	res := makeOperator(cfg, left, right, joiner, sink)
	res.owned = true
	return res
}

// MakeWithStores instantiates a new internal Operator over existing Stores
func MakeWithStores[Key comparable, Left, Right, Out any](
	cfg *config.Config,
	left window.Store[Key, Left], right window.Store[Key, Right],
	joiner join.ValueJoiner[Left, Right, Out],
	sink join.Sink[Key, Out],
) join.Operator[Key, Left, Right] {
	return makeOperator(cfg, left, right, joiner, sink)
}

func makeOperator[Key comparable, Left, Right, Out any](
	cfg *config.Config,
	left window.Store[Key, Left], right window.Store[Key, Right],
	joiner join.ValueJoiner[Left, Right, Out],
	sink join.Sink[Key, Out],
) *Operator[Key, Left, Right, Out] {
	return &Operator[Key, Left, Right, Out]{
		name:    cfg.Name,
		left:    left,
		right:   right,
		joiner:  joiner,
		sink:    sink,
		variant: cfg.Variant,
		logger: cfg.Logger.With(
			slog.String("operator", cfg.Name),
			slog.String("variant", cfg.Variant.String()),
		),
		stats: [2]sideStats{
			makeSideStats(cfg.Name, join.LeftSide),
			makeSideStats(cfg.Name, join.RightSide),
		},
	}
}

func makeSideStats(name string, s join.Side) sideStats {
	side := s.String()
	return sideStats{
		received:   metrics.RecordsReceived.WithLabelValues(name, side),
		emitted:    metrics.RecordsEmitted.WithLabelValues(name, side),
		violations: metrics.ContractViolations.WithLabelValues(name, side),
	}
}

// OnLeft matches a left arrival against the right Store. The arrival's own
// Timestamp is the primary Timestamp
func (o *Operator[Key, Left, Right, Out]) OnLeft(
	k Key, v Left, ts window.Timestamp,
) error {
	if err := o.accept(join.LeftSide, k, ts); err != nil {
		return err
	}
	for _, e := range o.right.FetchAll(k) {
		if !o.variant.Matches(ts, e.Timestamp) {
			continue
		}
		if err := o.emit(join.LeftSide, k, v, e.Value); err != nil {
			return err
		}
	}
	return store(o.left, k, v, ts)
}

// OnRight matches a right arrival against the left Store. The stored left
// Timestamps remain the primary Timestamps
func (o *Operator[Key, Left, Right, Out]) OnRight(
	k Key, v Right, ts window.Timestamp,
) error {
	if err := o.accept(join.RightSide, k, ts); err != nil {
		return err
	}
	for _, e := range o.left.FetchAll(k) {
		if !o.variant.Matches(e.Timestamp, ts) {
			continue
		}
		if err := o.emit(join.RightSide, k, e.Value, v); err != nil {
			return err
		}
	}
	return store(o.right, k, v, ts)
}

// Close removes this Operator's metric series. Stores are only closed if
// the Operator created them
func (o *Operator[_, _, _, _]) Close() error {
	for _, s := range []join.Side{join.LeftSide, join.RightSide} {
		side := s.String()
		metrics.RecordsReceived.DeleteLabelValues(o.name, side)
		metrics.RecordsEmitted.DeleteLabelValues(o.name, side)
		metrics.ContractViolations.DeleteLabelValues(o.name, side)
	}
	if !o.owned {
		return nil
	}
	return errors.Join(o.left.Close(), o.right.Close())
}

func (o *Operator[Key, _, _, _]) accept(
	s join.Side, k Key, ts window.Timestamp,
) error {
	st := &o.stats[s]
	st.received.Inc()
	if err := window.CheckRecord(k, ts); err != nil {
		st.violations.Inc()
		o.logger.Warn("rejected record",
			slog.String("side", s.String()),
			slog.Any("key", k),
			slog.Int64("timestamp", int64(ts)),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (o *Operator[Key, Left, Right, _]) emit(
	s join.Side, k Key, l Left, r Right,
) error {
	res, err := o.joiner(l, r)
	if err != nil {
		o.logger.Error("value joiner failed",
			slog.String("side", s.String()),
			slog.Any("key", k),
			slog.Any("error", err),
		)
		return err
	}
	if err := o.sink(k, res); err != nil {
		o.logger.Error("sink rejected joined record",
			slog.String("side", s.String()),
			slog.Any("key", k),
			slog.Any("error", err),
		)
		return err
	}
	o.stats[s].emitted.Inc()
	return nil
}

// store inserts an arrival only after its lookup has completed, so that a
// record can never match itself
func store[Key comparable, Value any](
	s window.Store[Key, Value], k Key, v Value, ts window.Timestamp,
) error {
	if err := s.Put(k, v, ts); err != nil {
		return err
	}
	return s.AdvanceClock(ts)
}
