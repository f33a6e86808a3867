package window

import (
	"container/heap"

	"github.com/kode4food/tandem/window"
)

type (
	// expiryQueue orders every Entry held by a bounded Store by Timestamp,
	// so that a sweep only ever visits the keys that have something to evict
	expiryQueue[Key comparable] []expiryItem[Key]

	expiryItem[Key comparable] struct {
		key Key
		ts  window.Timestamp
	}
)

func (q *expiryQueue[Key]) push(k Key, ts window.Timestamp) {
	heap.Push(q, expiryItem[Key]{key: k, ts: ts})
}

// popExpired removes every item the visible function rejects, returning how
// many Entries each affected key has to give up
func (q *expiryQueue[Key]) popExpired(
	visible func(window.Timestamp) bool,
) map[Key]int {
	var res map[Key]int
	for q.Len() > 0 && !visible((*q)[0].ts) {
		if res == nil {
			res = map[Key]int{}
		}
		it := heap.Pop(q).(expiryItem[Key])
		res[it.key]++
	}
	return res
}

func (q expiryQueue[_]) Len() int {
	return len(q)
}

func (q expiryQueue[_]) Less(i, j int) bool {
	return q[i].ts < q[j].ts
}

func (q expiryQueue[_]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *expiryQueue[Key]) Push(x any) {
	*q = append(*q, x.(expiryItem[Key]))
}

func (q *expiryQueue[Key]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = expiryItem[Key]{}
	*q = old[:n-1]
	return it
}
