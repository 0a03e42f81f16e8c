// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

// Parallel combination and forking.
//
// "Parallel" here means concurrent child fibers; relative order between
// branches is unspecified except where a shared resource imposes FIFO
// discipline. Side effects already performed by a cancelled branch are not
// rolled back.

// Pair holds the results of [ParZip].
type Pair[A, B any] struct {
	First  A
	Second B
}

// ParZip starts both effects concurrently and waits until both have
// completed. If either fails, the combinator fails with that error as soon
// as detected and the other operand is best-effort cancelled.
func ParZip[R, E, A, B any](a Effect[R, E, A], b Effect[R, E, B]) Effect[R, E, Pair[A, B]] {
	return Effect[R, E, Pair[A, B]]{n: chainNode{
		prior: parNode{operands: []node{a.n, b.n}},
		next: func(v Erased) node {
			vs := v.([]Erased)
			return pureNode{value: Pair[A, B]{First: vs[0].(A), Second: vs[1].(B)}}
		},
	}}
}

// ParAll starts every effect concurrently and waits until all have
// completed, producing results in operand order. The first detected failure
// wins and the remaining operands are best-effort cancelled.
func ParAll[R, E, A any](xs []Effect[R, E, A]) Effect[R, E, []A] {
	operands := make([]node, len(xs))
	for i, x := range xs {
		operands[i] = x.n
	}
	return Effect[R, E, []A]{n: chainNode{
		prior: parNode{operands: operands},
		next: func(v Erased) node {
			vs := v.([]Erased)
			out := make([]A, len(vs))
			for i, ev := range vs {
				out[i] = ev.(A)
			}
			return pureNode{value: out}
		},
	}}
}

// Race runs two effects concurrently and yields the winner's result,
// cancelling the loser. If both complete in the same scheduling tick, a
// wins — this favors prompt resource release in [TakeUntil]. A failure of
// the winner fails the race.
func Race[R, E, A, B any](a Effect[R, E, A], b Effect[R, E, B]) Effect[R, E, Either[A, B]] {
	return Effect[R, E, Either[A, B]]{n: chainNode{
		prior: raceNode{first: a.n, second: b.n},
		next: func(v Erased) node {
			o := v.(raceOutcome)
			if o.first {
				return pureNode{value: Left[A, B](o.value.(A))}
			}
			return pureNode{value: Right[A, B](o.value.(B))}
		},
	}}
}

// Fork begins evaluating m on a concurrent child fiber and returns
// immediately with a [Task] handle. The parent does not wait for it. A
// failure in a forked effect that is never awaited is logged and dropped by
// the [Runtime] — fire-and-forget, but never silently swallowed.
func Fork[R, E, A any](m Effect[R, E, A]) Effect[R, E, *Task[E, A]] {
	return Effect[R, E, *Task[E, A]]{n: chainNode{
		prior: forkNode{inner: m.n},
		next: func(v Erased) node {
			return pureNode{value: &Task[E, A]{fb: v.(*fiber)}}
		},
	}}
}

// Forever repeats m indefinitely. It terminates only via failure or
// external cancellation; the success value type is never produced.
func Forever[R, E, A any](m Effect[R, E, A]) Effect[R, E, A] {
	var loop func(Erased) node
	loop = func(Erased) node {
		return chainNode{prior: m.n, next: loop}
	}
	return Effect[R, E, A]{n: chainNode{prior: pureNode{}, next: loop}}
}
