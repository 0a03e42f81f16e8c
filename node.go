// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Erased represents a type-erased value in the effect node tree.
// Node types use Erased parameters to process heterogeneous value types
// through a homogeneous evaluation pipeline. Concrete types are recovered
// via type assertions at node boundaries.
type Erased = any

// node is the interface for effect nodes. The set of implementations below
// is closed; the fiber loop dispatches with a type switch, not tags — node
// is a pure marker interface.
type node interface {
	node() // unexported marker method
}

// pureNode holds a value with nothing left to do.
type pureNode struct {
	value Erased
}

func (pureNode) node() {}

// syncNode defers a synchronous side-effecting thunk.
type syncNode struct {
	thunk func() Erased
}

func (syncNode) node() {}

// failNode aborts the computation with an error value on the E channel.
type failNode struct {
	err Erased
}

func (failNode) node() {}

// asyncNode bridges a callback-based API. The register function is invoked
// exactly once per run and must call resolve exactly once; it returns the
// cancellation procedure. A resolve arriving after cancellation is ignored
// by the fiber.
type asyncNode struct {
	register func(resolve func(ok bool, value, err Erased)) (cancel func())
}

func (asyncNode) node() {}

// accessNode parameterizes the computation on the fiber's environment.
type accessNode struct {
	f func(env Erased) node
}

func (accessNode) node() {}

// provideNode substitutes a concrete environment for every accessNode
// beneath it. The previous environment is restored afterwards.
type provideNode struct {
	env   Erased
	inner node
}

func (provideNode) node() {}

// chainNode represents sequential composition: run prior, pass its value to
// next. If prior fails, next is never invoked.
type chainNode struct {
	prior node
	next  func(Erased) node
}

func (chainNode) node() {}

// catchNode installs an error handler over body. A failure in body resumes
// at handler instead of propagating.
type catchNode struct {
	body    node
	handler func(err Erased) node
}

func (catchNode) node() {}

// parNode runs all operands on concurrent child fibers and waits for every
// one to complete. The first detected failure wins; the remaining operands
// are best-effort cancelled. The value is the []Erased of operand results.
type parNode struct {
	operands []node
}

func (parNode) node() {}

// raceNode runs two operands concurrently; the first completion wins and
// the loser is cancelled. When both are ready in the same scheduling tick,
// first wins. The value is a raceOutcome.
type raceNode struct {
	first  node
	second node
}

func (raceNode) node() {}

// raceOutcome is the erased value produced by a raceNode.
type raceOutcome struct {
	first bool
	value Erased
}

// forkNode begins evaluating inner on a child fiber without waiting.
// The value is the child *fiber, wrapped into a typed [Task] by [Fork].
type forkNode struct {
	inner node
}

func (forkNode) node() {}

// bracketNode acquires a resource, uses it, and guarantees release runs
// exactly once — on success, failure, or cancellation. If acquire itself
// fails, release does not run.
type bracketNode struct {
	acquire node
	release func(resource Erased)
	use     func(resource Erased) node
}

func (bracketNode) node() {}
