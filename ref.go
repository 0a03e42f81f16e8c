// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import "sync"

// Ref is a single-slot mutable cell with atomic access. Update serializes
// concurrent callers: each sees the value left by the previous update, so
// no update is lost and no half-applied value is observable.
type Ref[A any] struct {
	mu sync.Mutex
	v  A
}

// NewRef creates a cell holding the initial value.
func NewRef[A any](a A) *Ref[A] {
	return &Ref[A]{v: a}
}

// Get returns the current value.
func (r *Ref[A]) Get() A {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.v
}

// Set replaces the current value.
func (r *Ref[A]) Set(a A) {
	r.mu.Lock()
	r.v = a
	r.mu.Unlock()
}

// Update applies f to the current value atomically and returns the new
// value.
func (r *Ref[A]) Update(f func(A) A) A {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v = f(r.v)
	return r.v
}

// RefGet reads the cell as an effect.
func RefGet[R, E, A any](r *Ref[A]) Effect[R, E, A] {
	return Sync[R, E](r.Get)
}

// RefUpdate applies an atomic update as an effect, producing the new value.
func RefUpdate[R, E, A any](r *Ref[A], f func(A) A) Effect[R, E, A] {
	return Sync[R, E](func() A { return r.Update(f) })
}
