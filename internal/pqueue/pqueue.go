// Package pqueue provides a generic binary min-heap.
package pqueue

import "container/heap"

// Prioritized is implemented by items ordered by an integer priority.
type Prioritized interface {
	Priority() int
}

// ByPriority orders items by ascending Priority().
func ByPriority[T Prioritized](a, b T) bool {
	return a.Priority() < b.Priority()
}

// Queue is a min-heap ordered by the supplied less function.
// Not safe for concurrent use.
type Queue[T any] struct {
	h items[T]
}

// New creates an empty queue ordered by less.
func New[T any](less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{h: items[T]{less: less}}
}

// NewWithCapacity creates an empty queue with room for n items.
func NewWithCapacity[T any](less func(a, b T) bool, n int) *Queue[T] {
	return &Queue[T]{h: items[T]{less: less, data: make([]T, 0, n)}}
}

// Push adds an item. O(log n).
func (q *Queue[T]) Push(item T) {
	heap.Push(&q.h, item)
}

// Pop removes and returns the minimum item. ok is false on an empty queue.
func (q *Queue[T]) Pop() (item T, ok bool) {
	if len(q.h.data) == 0 {
		return item, false
	}
	return heap.Pop(&q.h).(T), true
}

// Peek returns the minimum item without removing it. O(1).
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.h.data) == 0 {
		return item, false
	}
	return q.h.data[0], true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.h.data)
}

// IsEmpty reports whether the queue has no items.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.h.data) == 0
}

// items implements container/heap.Interface.
type items[T any] struct {
	data []T
	less func(a, b T) bool
}

func (h items[T]) Len() int           { return len(h.data) }
func (h items[T]) Less(i, j int) bool { return h.less(h.data[i], h.data[j]) }
func (h items[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }
func (h *items[T]) Push(x any)        { h.data = append(h.data, x.(T)) }
func (h *items[T]) Pop() any {
	old := h.data
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // GC
	h.data = old[:n-1]
	return item
}
