package uniqueq

import (
	"fmt"
	"iter"
	"math"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// Queue is a generic FIFO queue of unique values. Push ignores values already
// present in the queue. After a value is removed (via Pop/Remove) it can be
// pushed again. The zero value is an empty queue ready for use.
type Queue[T comparable] struct {
	seq deque.Deque[T]
	set map[T]struct{}
}

// New creates an empty queue.
func New[T comparable]() *Queue[T] {
	return NewWithCapacity[T](0)
}

// NewWithCapacity creates an empty queue with room for capacity values.
// Capacity preallocates both the ordered buffer and the presence set; behavior
// is otherwise identical to New. A negative capacity is treated as zero.
func NewWithCapacity[T comparable](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	q := &Queue[T]{set: make(map[T]struct{}, capacity)}
	if capacity > 0 {
		q.seq.Grow(capacity)
	}
	return q
}

// From builds a queue by pushing every value of seq in order. Duplicates
// collapse to the position of their first occurrence.
func From[T comparable](seq iter.Seq[T]) *Queue[T] {
	q := New[T]()
	q.Extend(seq)
	return q
}

// FromSlice builds a queue from items, keeping the first occurrence of each
// value.
func FromSlice[T comparable](items []T) *Queue[T] {
	q := NewWithCapacity[T](len(items))
	q.PushMany(items...)
	return q
}

// Push appends v to the back.
//
// Returns true if the value was added, or false when v is already present, in
// which case the queue is left untouched. Amortized complexity: O(1).
func (q *Queue[T]) Push(v T) bool {
	if _, exists := q.set[v]; exists {
		return false
	}
	if q.set == nil {
		q.set = make(map[T]struct{})
	}
	q.set[v] = struct{}{}
	q.seq.PushBack(v)
	return true
}

// PushMany pushes items in order and returns the count actually added.
func (q *Queue[T]) PushMany(items ...T) int {
	added := 0
	for _, v := range items {
		if q.Push(v) {
			added++
		}
	}
	return added
}

// Extend pushes every value of seq in order and returns the count actually
// added.
func (q *Queue[T]) Extend(seq iter.Seq[T]) int {
	added := 0
	for v := range seq {
		if q.Push(v) {
			added++
		}
	}
	return added
}

// Pop removes and returns the value that has been queued longest.
//
// The second result is false when the queue is empty. Complexity: O(1).
func (q *Queue[T]) Pop() (T, bool) {
	if q.seq.Len() == 0 {
		var zero T
		return zero, false
	}
	v := q.seq.PopFront()
	delete(q.set, v)
	return v, true
}

// Peek returns the head value without removing it.
// The second result is false when the queue is empty. Complexity: O(1).
func (q *Queue[T]) Peek() (T, bool) {
	if q.seq.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.seq.Front(), true
}

// Remove deletes and returns the value at position index, counting from the
// head. Later values move one position toward the head. The second result is
// false when index is out of range.
// Complexity: O(min(index, Len()-index)).
func (q *Queue[T]) Remove(index int) (T, bool) {
	if !q.inBounds(index) {
		var zero T
		return zero, false
	}
	v := q.seq.Remove(index)
	delete(q.set, v)
	return v, true
}

// RemoveValue deletes v from the queue if present. Returns true if removed.
// Complexity: O(1) when v is absent; otherwise O(n).
func (q *Queue[T]) RemoveValue(v T) bool {
	if !q.Contains(v) {
		return false
	}
	_, ok := q.Remove(q.seq.Index(func(x T) bool { return x == v }))
	return ok
}

// Contains reports whether v is currently present in the queue.
// Complexity: O(1).
func (q *Queue[T]) Contains(v T) bool {
	_, ok := q.set[v]
	return ok
}

func (q *Queue[T]) inBounds(i int) bool {
	return i >= 0 && i < q.seq.Len()
}

// Get returns the value at position index. The second result is false when
// index is out of range.
func (q *Queue[T]) Get(index int) (T, bool) {
	if !q.inBounds(index) {
		var zero T
		return zero, false
	}
	return q.seq.At(index), true
}

// At returns the value at position index. Unlike Get, it panics if index is
// out of range, like indexing a slice.
func (q *Queue[T]) At(index int) T {
	if !q.inBounds(index) {
		panic(errors.Errorf("uniqueq: index %d out of range with length %d", index, q.Len()))
	}
	return q.seq.At(index)
}

// Swap exchanges the values at positions i and j. Membership is unaffected;
// only the order changes. It returns false, leaving the queue untouched, when
// either position is out of range.
func (q *Queue[T]) Swap(i, j int) bool {
	if !q.inBounds(i) || !q.inBounds(j) {
		return false
	}
	q.seq.Swap(i, j)
	return true
}

// All returns an iterator over the queued values from head to tail.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.seq.Len(); i++ {
			if !yield(q.seq.At(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over the queued values from tail to head.
func (q *Queue[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.seq.Len() - 1; i >= 0; i-- {
			if !yield(q.seq.At(i)) {
				return
			}
		}
	}
}

// Range returns an iterator over positions [lo, hi). Bounds are checked
// against the length when iteration starts; bounds outside [0, Len()] or
// lo > hi yield nothing.
func (q *Queue[T]) Range(lo, hi int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if lo < 0 || hi > q.seq.Len() || lo > hi {
			return
		}
		for i := lo; i < hi; i++ {
			if !yield(q.seq.At(i)) {
				return
			}
		}
	}
}

// Len returns the number of values currently queued.
// Complexity: O(1).
func (q *Queue[T]) Len() int {
	return q.seq.Len()
}

// IsEmpty reports whether the queue is empty.
// Complexity: O(1). Equivalent to Len() == 0.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Cap returns the number of values the queue can hold before its ordered
// buffer has to grow.
func (q *Queue[T]) Cap() int {
	return q.seq.Cap()
}

// Reserve ensures room for at least n more values in both the ordered buffer
// and the presence set. It panics if Len()+n overflows int.
func (q *Queue[T]) Reserve(n int) {
	if n <= 0 {
		return
	}
	if n > math.MaxInt-q.Len() {
		panic(errors.Errorf("uniqueq: capacity overflow reserving %d more with length %d", n, q.Len()))
	}
	if q.Len()+n <= q.seq.Cap() {
		return
	}
	q.seq.Grow(n)
	// maps cannot grow in place; rehash into a set sized like the buffer
	set := make(map[T]struct{}, q.seq.Cap())
	maps.Copy(set, q.set)
	q.set = set
}

// Clear removes all values from the queue, keeping allocated storage.
// Complexity: O(n).
func (q *Queue[T]) Clear() {
	q.seq.Clear()
	clear(q.set)
}

// Clone returns an independent copy of the queue.
func (q *Queue[T]) Clone() *Queue[T] {
	c := &Queue[T]{set: maps.Clone(q.set)}
	if n := q.Len(); n > 0 {
		c.seq.Grow(n)
	}
	for v := range q.All() {
		c.seq.PushBack(v)
	}
	return c
}

// ToSlice returns a copy of the queue's contents in FIFO order.
// Complexity: O(n). The returned slice is independent of the queue.
func (q *Queue[T]) ToSlice() []T {
	out := make([]T, 0, q.Len())
	for v := range q.All() {
		out = append(out, v)
	}
	return out
}

// String formats the queue as uniqueq[v1 v2 ...], head first.
func (q *Queue[T]) String() string {
	return "uniqueq" + fmt.Sprint(q.ToSlice())
}
