// Package series provides the fixed-capacity sample windows behind the
// dashboard charts.
package series

// Buffer is a sliding window over the most recent samples: appending past
// capacity evicts the oldest entry first, so Len never exceeds the
// capacity and points stay in insertion order.
type Buffer[T any] struct {
	capacity int
	points   []T
}

func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{
		capacity: capacity,
		points:   make([]T, 0, capacity),
	}
}

func (b *Buffer[T]) Append(p T) {
	if len(b.points) == b.capacity {
		copy(b.points, b.points[1:])
		b.points[len(b.points)-1] = p
		return
	}
	b.points = append(b.points, p)
}

func (b *Buffer[T]) Len() int {
	return len(b.points)
}

// Points returns a copy of the current window, oldest first.
func (b *Buffer[T]) Points() []T {
	out := make([]T, len(b.points))
	copy(out, b.points)
	return out
}
