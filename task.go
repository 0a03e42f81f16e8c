// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Task is the handle to a fiber started by [Fork] or [Start]. A task can be
// awaited, cancelled, or explicitly discarded; a failure that completes
// unobserved is logged and dropped by the [Runtime].
type Task[E, A any] struct {
	fb *fiber
}

// Cancel requests interruption of the task's fiber and all of its children.
// Safe to call multiple times and after completion.
func (t *Task[E, A]) Cancel() {
	t.fb.cancel()
}

// Done returns a channel closed when the task has completed — by success,
// failure, or interruption.
func (t *Task[E, A]) Done() <-chan struct{} {
	return t.fb.done
}

// Wait blocks until the task completes and returns its resolution. A
// cancelled task resolves as a failure carrying [Interrupted] when E is
// error-shaped, and the zero E otherwise.
func (t *Task[E, A]) Wait() Result[E, A] {
	t.fb.markObserved()
	<-t.fb.done
	return fiberResult[E, A](t.fb)
}

// Await suspends the calling fiber until the task completes, propagating
// its resolution. Cancelling the await detaches from the task without
// cancelling it.
func Await[R, E, A any](t *Task[E, A]) Effect[R, E, A] {
	return Async[R, E, A](func(resolve func(Result[E, A])) func() {
		t.fb.markObserved()
		stop := make(chan struct{})
		go func() {
			select {
			case <-t.fb.done:
				resolve(fiberResult[E, A](t.fb))
			case <-stop:
			}
		}()
		return func() { close(stop) }
	})
}
