package window

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kode4food/tandem/internal/metrics"
	"github.com/kode4food/tandem/window"
	"github.com/kode4food/tandem/window/retention"
)

type (
	// Store is the internal implementation of a window.Store. It performs no
	// locking; callers serialize access per partition
	Store[Key comparable, Value any] struct {
		policy  retention.Policy
		logger  *slog.Logger
		buckets map[Key]*bucket[Value]
		expiry  expiryQueue[Key]
		evicted prometheus.Counter
		held    prometheus.Gauge
		name    string
		clock   window.Timestamp
		clocked bool
	}

	// bucket holds the Entries of a single key in insertion order. Expired
	// Entries are usually at the front, and are trimmed from there
	bucket[Value any] struct {
		entries []window.Entry[Value]
	}
)

// Make instantiates a new internal Store
func Make[Key comparable, Value any](
	name string, p retention.Policy, l *slog.Logger,
) window.Store[Key, Value] {
	if p == nil {
		p = retention.Unlimited
	}
	if l == nil {
		l = slog.Default()
	}
	return &Store[Key, Value]{
		name:    name,
		policy:  p,
		logger:  l.With(slog.String("store", name)),
		buckets: map[Key]*bucket[Value]{},
		evicted: metrics.EntriesEvicted.WithLabelValues(name),
		held:    metrics.Entries.WithLabelValues(name),
	}
}

func (s *Store[_, _]) Name() string {
	return s.name
}

func (s *Store[Key, Value]) Put(k Key, v Value, ts window.Timestamp) error {
	if err := window.CheckRecord(k, ts); err != nil {
		return err
	}
	b, ok := s.buckets[k]
	if !ok {
		b = &bucket[Value]{}
		s.buckets[k] = b
	}
	b.entries = append(b.entries, window.Entry[Value]{
		Value:     v,
		Timestamp: ts,
	})
	if s.policy.Bounded() {
		s.expiry.push(k, ts)
	}
	s.held.Inc()
	return nil
}

func (s *Store[Key, Value]) FetchAll(k Key) []window.Entry[Value] {
	b, ok := s.buckets[k]
	if !ok {
		return nil
	}
	return s.live(b.entries)
}

func (s *Store[_, _]) AdvanceClock(ts window.Timestamp) error {
	if err := window.CheckTimestamp(ts); err != nil {
		return err
	}
	if s.clocked && ts <= s.clock {
		return nil
	}
	s.clock = ts
	s.clocked = true
	if s.policy.Bounded() {
		s.sweep()
	}
	return nil
}

func (s *Store[_, _]) Clock() (window.Timestamp, bool) {
	return s.clock, s.clocked
}

func (s *Store[Key, _]) Keys() []Key {
	keys := make([]Key, 0, len(s.buckets))
	for k, b := range s.buckets {
		if len(s.live(b.entries)) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *Store[_, _]) Count() int {
	var res int
	for _, b := range s.buckets {
		res += len(s.live(b.entries))
	}
	return res
}

func (s *Store[Key, Value]) Range(fn func(Key, []window.Entry[Value]) bool) {
	for k, b := range s.buckets {
		if e := s.live(b.entries); len(e) > 0 && !fn(k, e) {
			return
		}
	}
}

// live returns a copy of the provided Entries, leaving out any that the
// retention Policy no longer allows to be seen
func (s *Store[_, Value]) live(
	entries []window.Entry[Value],
) []window.Entry[Value] {
	res := make([]window.Entry[Value], 0, len(entries))
	for _, e := range entries {
		if s.visible(e.Timestamp) {
			res = append(res, e)
		}
	}
	return res
}

func (s *Store[_, _]) visible(ts window.Timestamp) bool {
	return !s.clocked || s.policy.Retain(s.clock, ts)
}

// sweep evicts only the Entries the expiry queue reports as expired, so its
// cost follows the number of evictions rather than the size of the Store
func (s *Store[_, _]) sweep() {
	expired := s.expiry.popExpired(s.visible)
	if len(expired) == 0 {
		return
	}
	var evicted int
	for k, n := range expired {
		b, ok := s.buckets[k]
		if !ok {
			continue
		}
		evicted += b.evict(n, s.visible)
		if len(b.entries) == 0 {
			delete(s.buckets, k)
		}
	}
	s.evicted.Add(float64(evicted))
	s.held.Sub(float64(evicted))
	s.logger.Debug("evicted window entries",
		slog.Int64("clock", int64(s.clock)),
		slog.Int("evicted", evicted),
	)
}

// Close drops every Entry and removes this Store's metric series
func (s *Store[Key, Value]) Close() error {
	s.buckets = map[Key]*bucket[Value]{}
	s.expiry = nil
	metrics.EntriesEvicted.DeleteLabelValues(s.name)
	metrics.Entries.DeleteLabelValues(s.name)
	return nil
}

// evict drops n expired Entries, keeping the survivors in their original
// order. Returns the number of Entries dropped
func (b *bucket[Value]) evict(
	n int, visible func(window.Timestamp) bool,
) int {
	head := 0
	for head < n && head < len(b.entries) &&
		!visible(b.entries[head].Timestamp) {
		head++
	}
	clear(b.entries[:head])
	b.entries = b.entries[head:]
	if head == n {
		return head
	}

	// out of order arrivals left expired Entries behind the front
	live := b.entries[:0]
	for _, e := range b.entries {
		if visible(e.Timestamp) {
			live = append(live, e)
		}
	}
	evicted := len(b.entries) - len(live)
	clear(b.entries[len(live):])
	b.entries = live
	return head + evicted
}
