// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Environment threading.
//
// Capabilities flow through the effect tree as an explicit environment
// value: no ambient globals. The environment is resolved once — either by
// [Provide] or by the root environment passed to [Run]/[Start] — and never
// mutated thereafter. Executing an AccessEnv with no environment supplied
// is a programming error, not a recoverable failure; the runners make it
// unrepresentable by always requiring a root environment.

// AccessEnv parameterizes an effect on the environment. The function f
// receives the innermost provided environment at execution time.
func AccessEnv[R, E, A any](f func(env R) Effect[R, E, A]) Effect[R, E, A] {
	return Effect[R, E, A]{n: accessNode{
		f: func(env Erased) node { return f(env.(R)).n },
	}}
}

// MapEnv fuses AccessEnv + Map: reads the environment and applies a pure
// projection.
func MapEnv[R, E, A any](f func(env R) A) Effect[R, E, A] {
	return Effect[R, E, A]{n: accessNode{
		f: func(env Erased) node { return pureNode{value: f(env.(R))} },
	}}
}

// Provide substitutes a concrete environment for every AccessEnv beneath m.
// The surrounding environment is restored once m completes.
func Provide[R, E, A any](env R, m Effect[R, E, A]) Effect[R, E, A] {
	return Effect[R, E, A]{n: provideNode{env: env, inner: m.n}}
}
