package blockingqueue

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	base "github.com/xyhelper/uniqueq"
)

// Queue is a blocking, concurrency-safe FIFO of unique values built on
// uniqueq. Put skips values already present; after removal the value can be
// added again.
//
// All methods are safe for concurrent use by multiple goroutines.
type Queue[T comparable] struct {
	mu     sync.Mutex
	cv     *sync.Cond
	q      *base.Queue[T]
	closed bool

	log   logrus.FieldLogger
	clock clock.Clock
	m     *metrics
}

// ErrClosed is returned by Put after Close, and by Take once the queue is
// closed and drained.
var ErrClosed = errors.New("blockingqueue: queue closed")

// New creates a new blocking queue.
func New[T comparable](opts ...Option) *Queue[T] {
	c := newConfig(opts)
	b := &Queue[T]{
		q:     base.NewWithCapacity[T](c.capacity),
		log:   c.logger,
		clock: c.clock,
	}
	b.cv = sync.NewCond(&b.mu)
	if c.registerer != nil {
		m, err := newMetrics(c.registerer, c.name)
		if err != nil {
			b.log.WithError(err).Warn("queue metrics disabled")
		}
		b.m = m
	}
	return b
}

// Put appends v to the tail. Returns true if the value was added, or false
// when v is already present. Wakes waiters only when an element is actually
// added. Returns ErrClosed once the queue is closed.
func (b *Queue[T]) Put(v T) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false, ErrClosed
	}
	added := b.q.Push(v)
	if added {
		b.m.put(1, 0, b.q.Len())
		b.cv.Broadcast()
	} else {
		b.m.put(0, 1, b.q.Len())
	}
	return added, nil
}

// PutMany enqueues items and returns the count actually added.
// Broadcasts once if any element is added.
func (b *Queue[T]) PutMany(items ...T) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	n := b.q.PushMany(items...)
	b.m.put(n, len(items)-n, b.q.Len())
	if n > 0 {
		b.cv.Broadcast()
	}
	return n, nil
}

// TryTake removes and returns the head value without blocking.
// ok is false if the queue is empty.
func (b *Queue[T]) TryTake() (v T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok = b.q.Pop()
	if ok {
		b.m.take(b.q.Len())
	}
	return
}

// Take blocks until an element is available, ctx is done, or the queue is
// closed and empty. On success returns (value, nil). On cancellation returns
// the zero value and ctx.Err(); on a closed, drained queue ErrClosed.
func (b *Queue[T]) Take(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var stop func() bool
	for {
		if v, ok := b.q.Pop(); ok {
			b.m.take(b.q.Len())
			return v, nil
		}
		var zero T
		if b.closed {
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			b.log.WithError(context.Cause(ctx)).Debug("take abandoned")
			return zero, err
		}
		if stop == nil {
			// wake Wait once ctx is done
			stop = context.AfterFunc(ctx, b.broadcast)
			defer stop()
		}
		b.cv.Wait() // releases and re-acquires b.mu
	}
}

func (b *Queue[T]) broadcast() {
	b.mu.Lock()
	b.cv.Broadcast()
	b.mu.Unlock()
}

// TakeTimeout is Take bounded by d, measured on the queue's clock. On expiry
// it returns ErrDeadlineExceeded.
func (b *Queue[T]) TakeTimeout(d time.Duration) (T, error) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	t := b.clock.AfterFunc(d, func() { cancel(context.DeadlineExceeded) })
	defer t.Stop()
	v, err := b.Take(ctx)
	if errors.Is(err, context.Canceled) {
		return v, context.Cause(ctx)
	}
	return v, err
}

// Peek returns the head value without removing it. ok is false when empty.
func (b *Queue[T]) Peek() (v T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Peek()
}

// Len returns the number of elements currently queued.
func (b *Queue[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Len()
}

// IsEmpty reports whether the queue is empty.
func (b *Queue[T]) IsEmpty() bool { return b.Len() == 0 }

// Contains reports whether v is currently present in the queue.
func (b *Queue[T]) Contains(v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Contains(v)
}

// Remove deletes and returns the element at position index.
// ok is false when index is out of range.
func (b *Queue[T]) Remove(index int) (v T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok = b.q.Remove(index)
	b.m.resize(b.q.Len())
	return
}

// RemoveValue deletes v from the queue if present. Returns true if removed.
func (b *Queue[T]) RemoveValue(v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := b.q.RemoveValue(v)
	b.m.resize(b.q.Len())
	return removed
}

// Clear removes all elements from the queue.
func (b *Queue[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.q.Clear()
	b.m.resize(0)
}

// Snapshot returns a copy of the queued values in FIFO order.
func (b *Queue[T]) Snapshot() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.ToSlice()
}

// Close stops the queue from accepting new values and wakes all waiting
// takers. Values already queued can still be taken. Close is idempotent.
func (b *Queue[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.log.WithField("remaining", b.q.Len()).Debug("queue closed")
	b.cv.Broadcast()
}

// ErrCanceled is returned by Take when the context is canceled.
var ErrCanceled = context.Canceled

// ErrDeadlineExceeded is returned by Take when the context deadline expires.
var ErrDeadlineExceeded = context.DeadlineExceeded

// IsContextError reports whether err equals context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
