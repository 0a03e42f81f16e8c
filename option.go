// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Option represents an optional value: Some or None.
// Streams use None as the end-of-sequence marker, and capability lookups
// use it as the absent-value sentinel instead of raising.
type Option[A any] struct {
	present bool
	value   A
}

// Some creates a present Option.
func Some[A any](a A) Option[A] {
	return Option[A]{present: true, value: a}
}

// None creates an absent Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome returns true if a value is present.
func (o Option[A]) IsSome() bool {
	return o.present
}

// IsNone returns true if no value is present.
func (o Option[A]) IsNone() bool {
	return !o.present
}

// Get returns the value and true, or zero and false.
func (o Option[A]) Get() (A, bool) {
	if o.present {
		return o.value, true
	}
	var zero A
	return zero, false
}

// OrElse returns the value if present, or fallback otherwise.
func (o Option[A]) OrElse(fallback A) A {
	if o.present {
		return o.value
	}
	return fallback
}

// MapOption applies a function to the value if present.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.present {
		return Some(f(o.value))
	}
	return None[B]()
}
