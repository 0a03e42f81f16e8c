// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rill provides composable asynchronous effects, cancellable push
// streams, and a multicast reactive store.
//
// The core type [Effect] is a description of a computation that needs an
// environment R, may fail with an error E, and produces a value A. An Effect
// carries no mutable state; all state lives in its execution. Running the
// same Effect twice produces two fresh, independent executions.
//
// # Design Philosophy
//
// rill provides:
//   - A closed node algebra for effects, interpreted by an iterative fiber
//     loop with an explicit continuation stack
//   - Structural resource safety: bracketed acquisition with release
//     guaranteed exactly once on success, failure, or cancellation
//   - Pull-driven streams over effects, with cancellation tied 1:1 to
//     resource teardown
//
// # Type Erasure
//
// Effect nodes carry type-erased [Erased] values through a homogeneous
// evaluation pipeline. Concrete types are recovered via type assertions at
// node boundaries; the typed constructors and runners keep the erasure
// invisible to callers.
//
// # Core Operations
//
// Construction:
//
//   - [Pure]: Lift a value into an Effect with nothing left to do
//   - [Sync]: Wrap a synchronous side-effecting thunk
//   - [Throw]: Fail immediately with an error value
//   - [Async]: Bridge a callback-based API; the registration function
//     returns the cancellation procedure
//
// Composition:
//
//   - [Chain]: Sequential bind; failures short-circuit past the continuation
//   - [Map], [Then]: Derived from Chain, kept as allocation-avoiding
//     optimizations
//   - [Catch]: Explicit recovery from the error channel
//   - [AccessEnv], [Provide]: Environment threading; Provide substitutes a
//     concrete environment for every AccessEnv beneath it
//
// Concurrency:
//
//   - [ParZip], [ParAll]: Start operands concurrently, wait for all, fail
//     with the first detected failure and best-effort cancel the rest
//   - [Race]: First completion wins, the loser is cancelled
//   - [Fork]: Begin evaluation on a concurrent timeline and return a [Task]
//     handle; unobserved failures are logged and dropped by the [Runtime]
//   - [Forever]: Repeat an effect until failure or cancellation
//
// Execution:
//
//   - [Run]: Interpret an Effect to completion on the calling goroutine
//   - [Start]: Interpret on a new fiber, returning a Task handle
//   - [Supervise]: Run at top level, log a failure, report an exit status
//
// # Streams
//
// [Stream] describes a process that pushes zero or more values over time and
// can be cancelled before natural completion. Internally a stream is
// pull-driven: acquisition yields a [Source] pairing a pull effect with a
// teardown procedure. Every terminal consumer ([Drain], [Collect]) brackets
// the acquisition, so teardown runs exactly once however the stream ends.
//
// Operators: [MapStream], [FilterStream], [TakeStream], [TakeUntil], [Scan],
// [MergeAll], [MapStreamEffect], [EncaseEffect].
//
// # Emitter
//
// [Listen] adapts a callback-registration API ([EventSource]) into a Stream.
// Acquisition attaches a listener feeding an unbounded [Queue]; teardown
// detaches it. No listener leaks, even when the consumer cancels mid-flight.
//
// # Store
//
// [Store] is a single mutable cell with multicast subscriptions. [Next]
// applies an atomic update; [Subscribe] returns a stream of every value
// pushed after subscription, in issue order, independently per subscriber.
//
// # Scheduling
//
// Fibers execute on goroutines; suspension occurs at Async nodes and at
// queue takes. Cancellation propagates from a fiber to its children and
// unwinds the continuation stack, running every pending release.
package rill
