// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import "sync"

// Queue is an unbounded FIFO hand-off point between producers and
// suspending consumers. Offer never blocks; Take suspends the calling fiber
// until an item is available. Items are delivered in the order offered — no
// item is dropped, duplicated, or reordered, including when a suspended
// take is cancelled.
//
// Being unbounded, producers never experience backpressure; under sustained
// producer/consumer imbalance the buffer grows without limit.
type Queue[A any] struct {
	mu      sync.Mutex
	items   []A
	waiters []*waiter[A]
}

// waiter is a suspended take. taken and cancelled are guarded by the
// queue's mutex; the hand-off commits under the lock, so a cancelled take
// can always return an already-assigned item to the buffer.
type waiter[A any] struct {
	resolve   func(A)
	value     A
	taken     bool
	cancelled bool
}

// NewQueue creates an empty queue.
func NewQueue[A any]() *Queue[A] {
	return &Queue[A]{}
}

// Offer appends an item, or hands it directly to the earliest suspended
// take. Never blocks; capacity is unbounded.
func (q *Queue[A]) Offer(a A) {
	q.mu.Lock()
	for len(q.waiters) > 0 {
		w := q.waiters[0]
		q.waiters = q.waiters[1:]
		if w.cancelled {
			continue
		}
		w.taken = true
		w.value = a
		q.mu.Unlock()
		w.resolve(a)
		return
	}
	q.items = append(q.items, a)
	q.mu.Unlock()
}

// Len returns the number of buffered items.
func (q *Queue[A]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Take suspends the calling fiber until an item is available. Cancelling a
// suspended take removes the waiter; an item already handed to it is
// returned to the front of the buffer, preserving order for the next take.
func Take[R, E, A any](q *Queue[A]) Effect[R, E, A] {
	return Async[R, E, A](func(resolve func(Result[E, A])) func() {
		q.mu.Lock()
		if len(q.items) > 0 {
			a := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			resolve(Ok[E](a))
			return func() {}
		}
		w := &waiter[A]{resolve: func(a A) { resolve(Ok[E](a)) }}
		q.waiters = append(q.waiters, w)
		q.mu.Unlock()
		return func() {
			q.mu.Lock()
			if w.taken {
				// The hand-off won; the cancelled fiber ignores the resolve,
				// so the item goes back in front.
				q.items = append([]A{w.value}, q.items...)
			} else {
				w.cancelled = true
				for i, other := range q.waiters {
					if other == w {
						q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
						break
					}
				}
			}
			q.mu.Unlock()
		}
	})
}
