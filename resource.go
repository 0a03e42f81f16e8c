// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Resource safety primitives for exception-safe resource management.
// These provide the minimal interface for bracketed resource handling.

// Bracket provides exception-safe resource acquisition and release.
// This follows the bracket pattern: acquire → use → release, where release
// is guaranteed to run exactly once whether use completes, fails, or the
// fiber is cancelled mid-flight. If acquire itself fails, release does not
// run.
//
// release is a plain procedure, not an effect: teardown must be able to run
// during cancellation unwinding without re-entering the interpreter.
func Bracket[R, E, A, B any](
	acquire Effect[R, E, A],
	release func(resource A),
	use func(resource A) Effect[R, E, B],
) Effect[R, E, B] {
	return Effect[R, E, B]{n: bracketNode{
		acquire: acquire.n,
		release: func(v Erased) { release(v.(A)) },
		use:     func(v Erased) node { return use(v.(A)).n },
	}}
}

// Ensuring runs cleanup after m completes, fails, or is cancelled.
// Equivalent to a bracket acquiring nothing.
func Ensuring[R, E, A any](m Effect[R, E, A], cleanup func()) Effect[R, E, A] {
	return Bracket(
		Pure[R, E](struct{}{}),
		func(struct{}) { cleanup() },
		func(struct{}) Effect[R, E, A] { return m },
	)
}
