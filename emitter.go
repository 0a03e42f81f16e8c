// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import "sync"

// EventSource is the native callback-registration boundary: attaching a
// listener returns the matching detach procedure, tying registration and
// deregistration 1:1 to the subscription lifetime.
type EventSource[T any] interface {
	// AddListener attaches fn for the named event and returns the procedure
	// that detaches exactly that listener.
	AddListener(event string, fn func(T)) (remove func())
}

// Listen adapts an EventSource into a stream. Acquisition attaches a
// listener that enqueues one item per event invocation into an unbounded
// queue; teardown detaches the listener unconditionally — whether the
// consumer cancels mid-flight, the process fails, or the stream is taken to
// its natural end. Detach is one-shot even if teardown runs on multiple
// paths.
//
// The stream never ends naturally; bound it with [TakeStream] or
// [TakeUntil], or cancel the consuming fiber.
func Listen[R, E, T any](src EventSource[T], event string) Stream[R, E, T] {
	return Stream[R, E, T]{acquire: Sync[R, E](func() Source[R, E, T] {
		q := NewQueue[T]()
		remove := src.AddListener(event, q.Offer)
		return Source[R, E, T]{
			Pull:    Map(Take[R, E](q), Some[T]),
			Release: sync.OnceFunc(remove),
		}
	})}
}

// EventSourceFunc adapts a plain function to the EventSource interface.
type EventSourceFunc[T any] func(event string, fn func(T)) (remove func())

// AddListener implements EventSource.
func (f EventSourceFunc[T]) AddListener(event string, fn func(T)) (remove func()) {
	return f(event, fn)
}
