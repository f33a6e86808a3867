package join

import (
	"errors"
	"fmt"
	"hash/maphash"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/join/config"
	"github.com/kode4food/tandem/window"
)

type (
	// Partitioned is the internal implementation of a
	// join.PartitionedOperator. Partitions are created on first use
	Partitioned[Key comparable, Left, Right any] struct {
		partitions  *xsync.MapOf[uint64, *partition[Key, Left, Right]]
		partitioner join.Partitioner[Key]
		makeOp      func(uint64) join.Operator[Key, Left, Right]
		count       uint64
	}

	// partition serializes deliveries to the Operator it owns
	partition[Key comparable, Left, Right any] struct {
		op join.Operator[Key, Left, Right]
		mu sync.Mutex
	}
)

// MakePartitioned instantiates a new internal Partitioned Operator. If no
// Partitioner is provided, keys are hashed. The Sink may be called from
// several partitions at once and must be safe for concurrent use
func MakePartitioned[Key comparable, Left, Right, Out any](
	cfg *config.Config,
	joiner join.ValueJoiner[Left, Right, Out],
	sink join.Sink[Key, Out],
	p join.Partitioner[Key],
) join.PartitionedOperator[Key, Left, Right] {
	if p == nil {
		p = HashPartitioner[Key]()
	}
	return &Partitioned[Key, Left, Right]{
		partitions:  xsync.NewMapOf[uint64, *partition[Key, Left, Right]](),
		partitioner: p,
		count:       uint64(cfg.Partitions),
		makeOp: func(id uint64) join.Operator[Key, Left, Right] {
			pc := *cfg
			pc.Name = fmt.Sprintf("%s-%d", cfg.Name, id)
			return Make(&pc, joiner, sink)
		},
	}
}

// HashPartitioner returns a Partitioner that hashes keys with a random seed
func HashPartitioner[Key comparable]() join.Partitioner[Key] {
	seed := maphash.MakeSeed()
	return func(k Key) uint64 {
		return maphash.Comparable(seed, k)
	}
}

func (p *Partitioned[Key, _, _]) Partition(k Key) uint64 {
	return p.partitioner(k) % p.count
}

func (p *Partitioned[_, _, _]) Partitions() int {
	return int(p.count)
}

func (p *Partitioned[Key, Left, Right]) OnLeft(
	k Key, v Left, ts window.Timestamp,
) error {
	part := p.partitionFor(k)
	part.mu.Lock()
	defer part.mu.Unlock()
	return part.op.OnLeft(k, v, ts)
}

func (p *Partitioned[Key, Left, Right]) OnRight(
	k Key, v Right, ts window.Timestamp,
) error {
	part := p.partitionFor(k)
	part.mu.Lock()
	defer part.mu.Unlock()
	return part.op.OnRight(k, v, ts)
}

// Close closes every partition that has been created so far
func (p *Partitioned[Key, Left, Right]) Close() error {
	var errs []error
	p.partitions.Range(
		func(id uint64, part *partition[Key, Left, Right]) bool {
			part.mu.Lock()
			defer part.mu.Unlock()
			errs = append(errs, part.op.Close())
			p.partitions.Delete(id)
			return true
		},
	)
	return errors.Join(errs...)
}

func (p *Partitioned[Key, Left, Right]) partitionFor(
	k Key,
) *partition[Key, Left, Right] {
	id := p.Partition(k)
	part, _ := p.partitions.LoadOrCompute(id,
		func() *partition[Key, Left, Right] {
			return &partition[Key, Left, Right]{
				op: p.makeOp(id),
			}
		},
	)
	return part
}
