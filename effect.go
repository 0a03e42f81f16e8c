// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import "time"

// Effect describes a computation that needs an environment R, may fail with
// an error E, and produces a value A. An Effect is immutable once
// constructed; running it is repeatable, and each run is a fresh execution.
//
// The three type parameters are phantom at the struct level: the node tree
// carries erased values, and the typed constructors and runners recover
// concrete types at node boundaries.
type Effect[R, E, A any] struct {
	n node
}

// Pure lifts a value into an Effect with nothing left to do.
func Pure[R, E, A any](a A) Effect[R, E, A] {
	return Effect[R, E, A]{n: pureNode{value: a}}
}

// Sync wraps a synchronous side-effecting thunk. The thunk runs once per
// execution, never fails, and cannot suspend.
func Sync[R, E, A any](thunk func() A) Effect[R, E, A] {
	return Effect[R, E, A]{n: syncNode{thunk: func() Erased { return thunk() }}}
}

// Throw fails immediately with the given error value.
func Throw[R, E, A any](err E) Effect[R, E, A] {
	return Effect[R, E, A]{n: failNode{err: err}}
}

// Async bridges a callback-based API into an Effect. register is invoked
// exactly once per run; it must arrange for resolve to be called exactly
// once with the outcome, and returns a cancellation procedure. If the fiber
// is interrupted before resolution, the cancellation procedure is invoked
// exactly once and any eventual resolve is ignored.
func Async[R, E, A any](register func(resolve func(Result[E, A])) (cancel func())) Effect[R, E, A] {
	return Effect[R, E, A]{n: asyncNode{
		register: func(resolve func(ok bool, value, err Erased)) func() {
			return register(func(r Result[E, A]) {
				if v, ok := r.Get(); ok {
					resolve(true, v, nil)
					return
				}
				e, _ := r.GetErr()
				resolve(false, nil, e)
			})
		},
	}}
}

// Suspend defers construction of an Effect until execution time. Each run
// invokes f afresh, which is how per-execution state is allocated.
func Suspend[R, E, A any](f func() Effect[R, E, A]) Effect[R, E, A] {
	return Effect[R, E, A]{n: chainNode{
		prior: pureNode{},
		next:  func(Erased) node { return f().n },
	}}
}

// Catch wraps an Effect with an error handler. A failure in m resumes at
// handler instead of propagating; a success passes through untouched.
func Catch[R, E, A any](m Effect[R, E, A], handler func(E) Effect[R, E, A]) Effect[R, E, A] {
	return Effect[R, E, A]{n: catchNode{
		body:    m.n,
		handler: func(err Erased) node { return handler(err.(E)).n },
	}}
}

// Sleep suspends the fiber for the given duration. Interruption stops the
// timer.
func Sleep[R, E any](d time.Duration) Effect[R, E, struct{}] {
	return Async[R, E, struct{}](func(resolve func(Result[E, struct{}])) func() {
		t := time.AfterFunc(d, func() {
			resolve(Ok[E](struct{}{}))
		})
		return func() { t.Stop() }
	})
}
