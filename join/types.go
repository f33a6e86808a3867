package join

// Function signature types used to assemble an Operator

type (
	// ValueJoiner combines a matched pair of values into a joined value. A
	// returned error aborts the delivery that triggered the join
	ValueJoiner[Left, Right, Out any] func(Left, Right) (Out, error)

	// Sink receives joined records as they are emitted. Emission happens
	// synchronously, before the triggering delivery returns
	Sink[Key comparable, Out any] func(Key, Out) error

	// Partitioner assigns a key to a partition. The result is reduced
	// modulo the number of partitions
	Partitioner[Key comparable] func(Key) uint64
)

// Joiner lifts an infallible combining function into a ValueJoiner
func Joiner[Left, Right, Out any](
	fn func(Left, Right) Out,
) ValueJoiner[Left, Right, Out] {
	return func(l Left, r Right) (Out, error) {
		return fn(l, r), nil
	}
}
