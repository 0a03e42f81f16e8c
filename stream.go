// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Stream describes a process that may push zero or more values over time,
// then terminate — naturally, with a failure, or because the consumer
// cancelled early. Like [Effect], a Stream is an immutable description:
// each terminal consumption acquires fresh resources and per-run state.
//
// Internally a stream is pull-driven: acquisition yields a [Source] whose
// Pull produces the next element, with None marking natural end. After a
// failure or None nothing further is pulled.
type Stream[R, E, A any] struct {
	acquire Effect[R, E, Source[R, E, A]]
}

// Source is an acquired stream handle: a pull effect paired with the
// teardown procedure for whatever the acquisition attached. Terminal
// consumers guarantee Release runs exactly once via [Bracket]; operators
// that release early wrap it one-shot.
type Source[R, E, A any] struct {
	Pull    Effect[R, E, Option[A]]
	Release func()
}

// FromSource builds a stream from an acquisition effect. The effect runs
// once per terminal consumption and must allocate all per-run state.
func FromSource[R, E, A any](acquire Effect[R, E, Source[R, E, A]]) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: acquire}
}

// FromQueue emits every item taken from the queue, indefinitely. The stream
// never ends naturally; it stops via [TakeStream], [TakeUntil], or consumer
// cancellation.
func FromQueue[R, E, A any](q *Queue[A]) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Sync[R, E](func() Source[R, E, A] {
		return Source[R, E, A]{
			Pull:    Map(Take[R, E](q), Some[A]),
			Release: func() {},
		}
	})}
}

// FromItems emits the given items in order, then ends.
func FromItems[R, E, A any](items ...A) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Sync[R, E](func() Source[R, E, A] {
		i := 0
		return Source[R, E, A]{
			Pull: Sync[R, E](func() Option[A] {
				if i < len(items) {
					v := items[i]
					i++
					return Some(v)
				}
				return None[A]()
			}),
			Release: func() {},
		}
	})}
}

// Repeat emits the result of m for every pull, indefinitely. A failure of m
// terminates the stream with that failure.
func Repeat[R, E, A any](m Effect[R, E, A]) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Sync[R, E](func() Source[R, E, A] {
		return Source[R, E, A]{
			Pull:    Map(m, Some[A]),
			Release: func() {},
		}
	})}
}

// EncaseEffect lifts a single effect into a one-item stream: a success
// emits the one value then ends; a failure ends the stream with that
// failure.
func EncaseEffect[R, E, A any](m Effect[R, E, A]) Stream[R, E, A] {
	return Stream[R, E, A]{acquire: Sync[R, E](func() Source[R, E, A] {
		done := false
		return Source[R, E, A]{
			Pull: Suspend(func() Effect[R, E, Option[A]] {
				if done {
					return Pure[R, E](None[A]())
				}
				done = true
				return Map(m, Some[A])
			}),
			Release: func() {},
		}
	})}
}
