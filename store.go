// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Store is a single mutable cell of application state with multicast
// subscriptions. Updates are serialized: Get always reflects the most
// recently completed Next, never a half-applied value, and concurrent Next
// calls compose without lost updates.
//
// Subscriptions are true multicast: every subscriber owns an independent
// queue and observes every value pushed after its subscription, in issue
// order, regardless of how many other subscribers exist. History before
// subscription time is not replayed.
type Store[A any] struct {
	// The ref's lock also serializes the fan-out: the update and the
	// offers to every subscriber queue happen as one unit, so two
	// concurrent Next calls cannot interleave their deliveries.
	ref  *Ref[Option[A]]
	subs *Ref[[]*Queue[A]]
}

// NewStore creates a store seeded with the initial state.
func NewStore[A any](seed A) *Store[A] {
	return &Store[A]{
		ref:  NewRef(Some(seed)),
		subs: NewRef([]*Queue[A]{}),
	}
}

// Next atomically applies f to the current state and delivers the new state
// to every subscriber. Concurrent Next calls are serialized; the resulting
// state is exactly the left-to-right composition of the update functions.
func Next[R, E, A any](s *Store[A], f func(A) A) Effect[R, E, struct{}] {
	return Sync[R, E](func() struct{} {
		s.ref.mu.Lock()
		cur, _ := s.ref.v.Get()
		updated := f(cur)
		s.ref.v = Some(updated)
		for _, q := range s.subs.Get() {
			q.Offer(updated)
		}
		s.ref.mu.Unlock()
		return struct{}{}
	})
}

// Get reads the most recently completed state.
func Get[R, E, A any](s *Store[A]) Effect[R, E, Option[A]] {
	return RefGet[R, E](s.ref)
}

// Subscribers reports the number of live subscriptions.
func (s *Store[A]) Subscribers() int {
	return len(s.subs.Get())
}

// Subscribe returns a stream of every state delivered after the stream is
// acquired. Each acquisition registers an independent subscriber queue;
// cancelling or finishing the consuming stream deregisters it.
func Subscribe[R, E, A any](s *Store[A]) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Sync[R, E](func() Source[R, E, A] {
		q := NewQueue[A]()
		s.subs.Update(func(subs []*Queue[A]) []*Queue[A] {
			return append(subs, q)
		})
		return Source[R, E, A]{
			Pull: Map(Take[R, E](q), Some[A]),
			Release: func() {
				s.subs.Update(func(subs []*Queue[A]) []*Queue[A] {
					out := subs[:0:0]
					for _, other := range subs {
						if other != q {
							out = append(out, other)
						}
					}
					return out
				})
			},
		}
	})}
}
