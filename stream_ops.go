// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import (
	"sync"
	"sync/atomic"
)

// Stream operators. Each preserves the at-most-one-terminal-emission
// invariant: after a failure or natural end, nothing further is pulled from
// upstream.

// MapStream applies a pure transformation to every element. Order and
// cardinality are preserved.
func MapStream[R, E, A, B any](st Stream[R, E, A], f func(A) B) Stream[R, E, B] {
	return Stream[R, E, B]{acquire: Map(st.acquire, func(src Source[R, E, A]) Source[R, E, B] {
		return Source[R, E, B]{
			Pull: Map(src.Pull, func(o Option[A]) Option[B] {
				return MapOption(o, f)
			}),
			Release: src.Release,
		}
	})}
}

// MapStreamEffect applies an effectful transformation to every element. A
// failure of the effect terminates the stream with that failure.
func MapStreamEffect[R, E, A, B any](st Stream[R, E, A], f func(A) Effect[R, E, B]) Stream[R, E, B] {
	return Stream[R, E, B]{acquire: Map(st.acquire, func(src Source[R, E, A]) Source[R, E, B] {
		return Source[R, E, B]{
			Pull: Chain(src.Pull, func(o Option[A]) Effect[R, E, Option[B]] {
				if v, ok := o.Get(); ok {
					return Map(f(v), Some[B])
				}
				return Pure[R, E](None[B]())
			}),
			Release: src.Release,
		}
	})}
}

// FilterStream drops elements not matching the predicate. Order among the
// surviving elements is preserved.
func FilterStream[R, E, A any](st Stream[R, E, A], pred func(A) bool) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Map(st.acquire, func(src Source[R, E, A]) Source[R, E, A] {
		var pull Effect[R, E, Option[A]]
		pull = Chain(src.Pull, func(o Option[A]) Effect[R, E, Option[A]] {
			if v, ok := o.Get(); ok && !pred(v) {
				return pull
			}
			return Pure[R, E](o)
		})
		return Source[R, E, A]{Pull: pull, Release: src.Release}
	})}
}

// Scan is a stateful left-fold emitting one output per input: the first
// emission is f(seed, x1), the next f(f(seed, x1), x2), and so on.
func Scan[R, E, A, B any](st Stream[R, E, A], seed B, f func(B, A) B) Stream[R, E, B] {
	return Stream[R, E, B]{acquire: Map(st.acquire, func(src Source[R, E, A]) Source[R, E, B] {
		acc := seed
		return Source[R, E, B]{
			Pull: Map(src.Pull, func(o Option[A]) Option[B] {
				if v, ok := o.Get(); ok {
					acc = f(acc, v)
					return Some(acc)
				}
				return None[B]()
			}),
			Release: src.Release,
		}
	})}
}

// TakeStream stops after n elements. Reaching n releases the upstream
// resource immediately; upstream is pulled exactly n times, never n+1.
func TakeStream[R, E, A any](st Stream[R, E, A], n int) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Map(st.acquire, func(src Source[R, E, A]) Source[R, E, A] {
		remaining := n
		release := sync.OnceFunc(src.Release)
		return Source[R, E, A]{
			Pull: Suspend(func() Effect[R, E, Option[A]] {
				if remaining <= 0 {
					release()
					return Pure[R, E](None[A]())
				}
				return Map(src.Pull, func(o Option[A]) Option[A] {
					if o.IsSome() {
						remaining--
						if remaining == 0 {
							release()
						}
					}
					return o
				})
			}),
			Release: release,
		}
	})}
}

// TakeUntil races the stream against a signal: the instant the signal
// produces a value or terminates — success or failure — the stream ends and
// the upstream resource is released. When both become ready in the same
// scheduling tick, the signal wins, favoring prompt resource release.
func TakeUntil[R, E, A, B any](st Stream[R, E, A], signal Stream[R, E, B]) Stream[R, E, A] {
	acquire := Chain(signal.acquire, func(sig Source[R, E, B]) Effect[R, E, Source[R, E, A]] {
		return Chain(st.acquire, func(src Source[R, E, A]) Effect[R, E, Source[R, E, A]] {
			// Watch a single signal emission on a concurrent fiber; any
			// completion of the watcher, including failure, fires the stop.
			watch := Map(sig.Pull, func(Option[B]) struct{} { return struct{}{} })
			watch = Catch(watch, func(E) Effect[R, E, struct{}] {
				return Pure[R, E](struct{}{})
			})
			return Map(Fork(watch), func(w *Task[E, struct{}]) Source[R, E, A] {
				var fired atomic.Bool
				release := sync.OnceFunc(func() {
					w.Cancel()
					sig.Release()
					src.Release()
				})
				stopped := Async[R, E, struct{}](func(resolve func(Result[E, struct{}])) func() {
					stop := make(chan struct{})
					go func() {
						select {
						case <-w.Done():
							resolve(Ok[E](struct{}{}))
						case <-stop:
						}
					}()
					return func() { close(stop) }
				})
				var pull Effect[R, E, Option[A]]
				pull = Suspend(func() Effect[R, E, Option[A]] {
					if fired.Load() {
						return Pure[R, E](None[A]())
					}
					select {
					case <-w.Done():
						fired.Store(true)
						release()
						return Pure[R, E](None[A]())
					default:
					}
					return Chain(Race(stopped, src.Pull), func(e Either[struct{}, Option[A]]) Effect[R, E, Option[A]] {
						if e.IsLeft() {
							fired.Store(true)
							release()
							return Pure[R, E](None[A]())
						}
						o, _ := e.GetRight()
						return Pure[R, E](o)
					})
				})
				return Source[R, E, A]{Pull: pull, Release: release}
			})
		})
	})
	return Stream[R, E, A]{acquire: acquire}
}

// mergeEvent is the hand-off record between merge pumps and the merged
// pull.
type mergeEvent[E, A any] struct {
	kind mergeKind
	item A
	err  E
}

type mergeKind int

const (
	mergeItem mergeKind = iota
	mergeDone
	mergeFail
)

// MergeAll interleaves the given streams nondeterministically by arrival.
// The merged stream ends only once every input has ended; a failure in any
// input immediately fails the merged stream and cancels the remaining
// inputs.
func MergeAll[R, E, A any](streams []Stream[R, E, A]) Stream[R, E, A] {
	acquire := Suspend(func() Effect[R, E, Source[R, E, A]] {
		out := NewQueue[mergeEvent[E, A]]()
		srcs := make([]Source[R, E, A], 0, len(streams))
		tasks := make([]*Task[E, struct{}], 0, len(streams))

		acquireAll := Pure[R, E](struct{}{})
		for _, st := range streams {
			s := st
			acquireAll = Chain(acquireAll, func(struct{}) Effect[R, E, struct{}] {
				return Map(s.acquire, func(src Source[R, E, A]) struct{} {
					srcs = append(srcs, src)
					return struct{}{}
				})
			})
		}
		// A failed acquisition releases whatever was already acquired.
		acquireAll = Catch(acquireAll, func(e E) Effect[R, E, struct{}] {
			for _, s := range srcs {
				s.Release()
			}
			return Throw[R, E, struct{}](e)
		})

		pumps := Chain(acquireAll, func(struct{}) Effect[R, E, struct{}] {
			return Suspend(func() Effect[R, E, struct{}] {
				eff := Pure[R, E](struct{}{})
				for _, src := range srcs {
					s := src
					eff = Chain(eff, func(struct{}) Effect[R, E, struct{}] {
						return Map(Fork(pumpLoop(s, out)), func(t *Task[E, struct{}]) struct{} {
							tasks = append(tasks, t)
							return struct{}{}
						})
					})
				}
				return eff
			})
		})

		return Map(pumps, func(struct{}) Source[R, E, A] {
			release := sync.OnceFunc(func() {
				for _, t := range tasks {
					t.Cancel()
				}
				for _, s := range srcs {
					s.Release()
				}
			})
			active := len(srcs)
			if active == 0 {
				return Source[R, E, A]{Pull: Pure[R, E](None[A]()), Release: release}
			}
			var pull Effect[R, E, Option[A]]
			pull = Chain(Take[R, E](out), func(ev mergeEvent[E, A]) Effect[R, E, Option[A]] {
				switch ev.kind {
				case mergeItem:
					return Pure[R, E](Some(ev.item))
				case mergeDone:
					active--
					if active == 0 {
						return Pure[R, E](None[A]())
					}
					return pull
				default:
					release()
					return Throw[R, E, Option[A]](ev.err)
				}
			})
			return Source[R, E, A]{Pull: pull, Release: release}
		})
	})
	return Stream[R, E, A]{acquire: acquire}
}

// pumpLoop drains one merge input into the shared event queue. A failure is
// converted into a fail event so the pump task itself always succeeds.
func pumpLoop[R, E, A any](src Source[R, E, A], out *Queue[mergeEvent[E, A]]) Effect[R, E, struct{}] {
	var loop Effect[R, E, struct{}]
	loop = Chain(src.Pull, func(o Option[A]) Effect[R, E, struct{}] {
		if v, ok := o.Get(); ok {
			out.Offer(mergeEvent[E, A]{kind: mergeItem, item: v})
			return loop
		}
		out.Offer(mergeEvent[E, A]{kind: mergeDone})
		return Pure[R, E](struct{}{})
	})
	return Catch(loop, func(e E) Effect[R, E, struct{}] {
		out.Offer(mergeEvent[E, A]{kind: mergeFail, err: e})
		return Pure[R, E](struct{}{})
	})
}

// Drain is terminal consumption for effects only: it pulls to completion,
// discarding values, and completes when the stream naturally ends or fails.
// The source's teardown runs exactly once however consumption ends.
func Drain[R, E, A any](st Stream[R, E, A]) Effect[R, E, struct{}] {
	return Bracket(st.acquire,
		func(src Source[R, E, A]) { src.Release() },
		func(src Source[R, E, A]) Effect[R, E, struct{}] {
			var loop Effect[R, E, struct{}]
			loop = Chain(src.Pull, func(o Option[A]) Effect[R, E, struct{}] {
				if o.IsNone() {
					return Pure[R, E](struct{}{})
				}
				return loop
			})
			return loop
		})
}

// Collect is terminal consumption gathering every element in order.
func Collect[R, E, A any](st Stream[R, E, A]) Effect[R, E, []A] {
	return Bracket(st.acquire,
		func(src Source[R, E, A]) { src.Release() },
		func(src Source[R, E, A]) Effect[R, E, []A] {
			out := make([]A, 0)
			var loop Effect[R, E, []A]
			loop = Chain(src.Pull, func(o Option[A]) Effect[R, E, []A] {
				if v, ok := o.Get(); ok {
					out = append(out, v)
					return loop
				}
				return Pure[R, E](out)
			})
			return loop
		})
}
