// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Monad operations for effects.
//
// Minimal definition: Pure (unit) and Chain are necessary and sufficient.
// Map and Then are derived operations kept as optimizations to avoid
// intermediate node allocations.

// Chain sequences two effects (monadic bind). It runs m, then passes the
// result to f to get the next effect. If m fails, f is never invoked and
// the failure propagates unchanged.
func Chain[R, E, A, B any](m Effect[R, E, A], f func(A) Effect[R, E, B]) Effect[R, E, B] {
	return Effect[R, E, B]{n: chainNode{
		prior: m.n,
		next:  func(v Erased) node { return f(v.(A)).n },
	}}
}

// Map applies a pure function to the result of an effect.
//
// Allocation note: Map is equivalent to Chain(m, compose(Pure, f)) but
// resumes with a pure node directly, skipping the intermediate Effect
// wrapper, making it the preferred choice when the transformation is pure.
func Map[R, E, A, B any](m Effect[R, E, A], f func(A) B) Effect[R, E, B] {
	return Effect[R, E, B]{n: chainNode{
		prior: m.n,
		next:  func(v Erased) node { return pureNode{value: f(v.(A))} },
	}}
}

// Then sequences two effects, discarding the first result. This is more
// efficient than Chain when the second effect does not depend on the first
// result.
func Then[R, E, A, B any](m Effect[R, E, A], next Effect[R, E, B]) Effect[R, E, B] {
	return Effect[R, E, B]{n: chainNode{
		prior: m.n,
		next:  func(Erased) node { return next.n },
	}}
}
