// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Result represents the resolution of a computation: either Ok (success)
// or Fail (an error value on the E channel). Asynchronous effects resolve
// with a Result, and stream emissions carry Results internally.
type Result[E, A any] struct {
	ok    bool
	value A
	err   E
}

// Ok creates a successful Result.
func Ok[E, A any](a A) Result[E, A] {
	return Result[E, A]{ok: true, value: a}
}

// Fail creates a failed Result.
func Fail[E, A any](e E) Result[E, A] {
	return Result[E, A]{ok: false, err: e}
}

// IsOk returns true if this is a successful Result.
func (r Result[E, A]) IsOk() bool {
	return r.ok
}

// IsFail returns true if this is a failed Result.
func (r Result[E, A]) IsFail() bool {
	return !r.ok
}

// Get returns the success value and true, or zero and false.
func (r Result[E, A]) Get() (A, bool) {
	if r.ok {
		return r.value, true
	}
	var zero A
	return zero, false
}

// GetErr returns the error value and true, or zero and false.
func (r Result[E, A]) GetErr() (E, bool) {
	if !r.ok {
		return r.err, true
	}
	var zero E
	return zero, false
}

// MatchResult pattern matches on the Result, calling onFail or onOk.
func MatchResult[E, A, T any](r Result[E, A], onFail func(E) T, onOk func(A) T) T {
	if r.ok {
		return onOk(r.value)
	}
	return onFail(r.err)
}

// MapResult applies a function to the success value.
func MapResult[E, A, B any](r Result[E, A], f func(A) B) Result[E, B] {
	if r.ok {
		return Ok[E](f(r.value))
	}
	return Fail[E, B](r.err)
}

// FlatMapResult sequences a result-producing function over the success
// value; a failure passes through unchanged.
func FlatMapResult[E, A, B any](r Result[E, A], f func(A) Result[E, B]) Result[E, B] {
	if r.ok {
		return f(r.value)
	}
	return Fail[E, B](r.err)
}

// MapErr applies a function to the error value.
func MapErr[E, F, A any](r Result[E, A], f func(E) F) Result[F, A] {
	if r.ok {
		return Ok[F](r.value)
	}
	return Fail[F, A](f(r.err))
}

// Either represents a value that is either Left or Right. Unlike [Result]
// the two sides carry no success/failure connotation; [Race] uses Either to
// report which operand won.
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

// Left creates a Left value.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{isRight: false, left: l}
}

// Right creates a Right value.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{isRight: true, right: r}
}

// IsLeft returns true if this is a Left value.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight returns true if this is a Right value.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// GetLeft returns the Left value and true, or zero and false.
func (e Either[L, R]) GetLeft() (L, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero L
	return zero, false
}

// GetRight returns the Right value and true, or zero and false.
func (e Either[L, R]) GetRight() (R, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero R
	return zero, false
}
