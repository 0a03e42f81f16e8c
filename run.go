// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Interrupted is the failure recorded for a fiber that was cancelled before
// completing. Awaiting a cancelled [Task] whose error type is error-shaped
// observes this value.
var Interrupted = errors.New("rill: interrupted")

// Runtime owns fiber execution policy: where dropped failures from
// fire-and-forget tasks are reported.
type Runtime struct {
	logger *zap.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the logger used to report dropped failures and supervised
// program failures.
func WithLogger(logger *zap.Logger) RuntimeOption {
	return func(rt *Runtime) { rt.logger = logger }
}

// New creates a Runtime. Without options, dropped failures are discarded
// silently (Nop logger).
func New(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Run interprets an effect to completion on the calling goroutine and
// returns its resolution. The root environment supplies every capability
// the effect accesses.
func Run[R, E, A any](rt *Runtime, env R, m Effect[R, E, A]) Result[E, A] {
	f := newFiber(rt, env)
	f.observed = true
	f.run(m.n)
	return fiberResult[E, A](f)
}

// Start interprets an effect on a new fiber and returns a [Task] handle
// immediately. The handle can be awaited, cancelled, or discarded.
func Start[R, E, A any](rt *Runtime, env R, m Effect[R, E, A]) *Task[E, A] {
	f := newFiber(rt, env)
	f.reportDrop = true
	go f.run(m.n)
	return &Task[E, A]{fb: f}
}

// Supervise runs an effect at top level: a failure is logged through the
// runtime's logger and reported as a non-zero exit status.
func Supervise[R, E, A any](rt *Runtime, env R, m Effect[R, E, A]) int {
	res := Run(rt, env, m)
	if e, failed := res.GetErr(); failed {
		rt.logger.Error("program failed", zap.Any("error", e))
		return 1
	}
	return 0
}

// fiberResult converts a completed fiber's recorded outcome back to typed
// form. A nil success value (completion by convention) yields the zero A.
func fiberResult[E, A any](f *fiber) Result[E, A] {
	if f.resOK {
		if f.resValue == nil {
			var zero A
			return Ok[E](zero)
		}
		return Ok[E](f.resValue.(A))
	}
	if e, ok := f.resErr.(E); ok {
		return Fail[E, A](e)
	}
	var zero E
	return Fail[E, A](zero)
}

// cont entries form the fiber's explicit continuation stack.
type cont interface {
	cont() // unexported marker method
}

// contNext resumes a chainNode's continuation with the produced value.
type contNext struct {
	f func(Erased) node
}

func (contNext) cont() {}

// contRestoreEnv restores the environment shadowed by a provideNode.
type contRestoreEnv struct {
	env Erased
}

func (contRestoreEnv) cont() {}

// contCatch marks an installed error handler. Popped without effect on the
// success path; unwinding stops here on failure.
type contCatch struct {
	handler func(err Erased) node
}

func (contCatch) cont() {}

// contAcquire switches a bracket from acquisition to use, installing the
// release entry once the resource value is known.
type contAcquire struct {
	release func(resource Erased)
	use     func(resource Erased) node
}

func (contAcquire) cont() {}

// contRelease runs a pending bracket release. The wrapped procedure is
// one-shot; it runs on the success path, on unwinding to a handler, and on
// cancellation — whichever comes first.
type contRelease struct {
	release func()
}

func (contRelease) cont() {}

// fiber is one logical execution of an effect tree. Result fields are
// written before done is closed and must only be read after it.
type fiber struct {
	rt  *Runtime
	env Erased

	stack []cont

	cancelOnce sync.Once
	cancelCh   chan struct{}
	done       chan struct{}

	mu       sync.Mutex
	children map[*fiber]struct{}

	resOK       bool
	resValue    Erased
	resErr      Erased
	interrupted bool
	observed    bool
	reportDrop  bool
}

func newFiber(rt *Runtime, env Erased) *fiber {
	return &fiber{
		rt:       rt,
		env:      env,
		cancelCh: make(chan struct{}),
		done:     make(chan struct{}),
		children: make(map[*fiber]struct{}),
	}
}

// cancel requests interruption of the fiber and all of its children.
// Safe to call multiple times and after completion.
func (f *fiber) cancel() {
	f.cancelOnce.Do(func() { close(f.cancelCh) })
	f.mu.Lock()
	kids := make([]*fiber, 0, len(f.children))
	for c := range f.children {
		kids = append(kids, c)
	}
	f.mu.Unlock()
	for _, c := range kids {
		c.cancel()
	}
}

func (f *fiber) isCancelled() bool {
	select {
	case <-f.cancelCh:
		return true
	default:
		return false
	}
}

// markObserved records that some consumer will read the fiber's failure,
// suppressing the dropped-failure report.
func (f *fiber) markObserved() {
	f.mu.Lock()
	f.observed = true
	f.mu.Unlock()
}

func (f *fiber) isObserved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observed
}

// spawn starts a child fiber inheriting the current environment.
// Cancellation of the parent propagates to the child.
func (f *fiber) spawn(n node, reportDrop bool) *fiber {
	c := newFiber(f.rt, f.env)
	c.reportDrop = reportDrop
	f.mu.Lock()
	f.children[c] = struct{}{}
	cancelled := f.isCancelled()
	f.mu.Unlock()
	if cancelled {
		c.cancel()
	}
	go func() {
		c.run(n)
		f.mu.Lock()
		delete(f.children, c)
		f.mu.Unlock()
	}()
	return c
}

// run is the interpreter loop: an iterative type switch over the closed
// node set, with the continuation stack held explicitly so that failure
// unwinding and cancellation can walk it.
func (f *fiber) run(n node) {
	defer close(f.done)
	cur := n
	var value Erased

steps:
	for {
		if f.isCancelled() {
			f.finishInterrupted()
			return
		}

		switch t := cur.(type) {
		case pureNode:
			value = t.value
		case syncNode:
			value = t.thunk()
		case failNode:
			handler, ok := f.unwindToCatch()
			if !ok {
				f.finishFail(t.err)
				return
			}
			cur = handler(t.err)
			continue steps
		case accessNode:
			cur = t.f(f.env)
			continue steps
		case provideNode:
			f.stack = append(f.stack, contRestoreEnv{env: f.env})
			f.env = t.env
			cur = t.inner
			continue steps
		case chainNode:
			f.stack = append(f.stack, contNext{f: t.next})
			cur = t.prior
			continue steps
		case catchNode:
			f.stack = append(f.stack, contCatch{handler: t.handler})
			cur = t.body
			continue steps
		case bracketNode:
			f.stack = append(f.stack, contAcquire{release: t.release, use: t.use})
			cur = t.acquire
			continue steps
		case asyncNode:
			v, errv, ok, interrupted := f.await(t)
			if interrupted {
				f.finishInterrupted()
				return
			}
			if !ok {
				handler, caught := f.unwindToCatch()
				if !caught {
					f.finishFail(errv)
					return
				}
				cur = handler(errv)
				continue steps
			}
			value = v
		case parNode:
			v, errv, ok, interrupted := f.runAll(t.operands)
			if interrupted {
				f.finishInterrupted()
				return
			}
			if !ok {
				handler, caught := f.unwindToCatch()
				if !caught {
					f.finishFail(errv)
					return
				}
				cur = handler(errv)
				continue steps
			}
			value = v
		case raceNode:
			v, errv, ok, interrupted := f.race(t)
			if interrupted {
				f.finishInterrupted()
				return
			}
			if !ok {
				handler, caught := f.unwindToCatch()
				if !caught {
					f.finishFail(errv)
					return
				}
				cur = handler(errv)
				continue steps
			}
			value = v
		case forkNode:
			value = f.spawn(t.inner, true)
		}

		// Value produced; deliver it down the continuation stack.
		for {
			if len(f.stack) == 0 {
				f.resOK = true
				f.resValue = value
				return
			}
			top := f.stack[len(f.stack)-1]
			f.stack = f.stack[:len(f.stack)-1]
			switch c := top.(type) {
			case contNext:
				cur = c.f(value)
				continue steps
			case contRestoreEnv:
				f.env = c.env
			case contCatch:
				// Body succeeded; the handler is discarded.
			case contRelease:
				c.release()
			case contAcquire:
				resource := value
				release := sync.OnceFunc(func() { c.release(resource) })
				f.stack = append(f.stack, contRelease{release: release})
				cur = c.use(resource)
				continue steps
			}
		}
	}
}

// unwindToCatch pops the continuation stack on failure: pending releases
// run, shadowed environments are restored, and the nearest handler is
// returned. Returns false when no handler is installed.
func (f *fiber) unwindToCatch() (func(Erased) node, bool) {
	for len(f.stack) > 0 {
		top := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		switch c := top.(type) {
		case contRelease:
			c.release()
		case contRestoreEnv:
			f.env = c.env
		case contCatch:
			return c.handler, true
		}
	}
	return nil, false
}

// unwindAll pops the whole stack on cancellation, running every pending
// release.
func (f *fiber) unwindAll() {
	for len(f.stack) > 0 {
		top := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		if c, ok := top.(contRelease); ok {
			c.release()
		}
	}
}

func (f *fiber) finishInterrupted() {
	f.unwindAll()
	f.interrupted = true
	f.resErr = Interrupted
}

func (f *fiber) finishFail(err Erased) {
	f.resOK = false
	f.resErr = err
	if f.reportDrop && !f.isObserved() {
		f.rt.logger.Error("dropped failure from forked task", zap.Any("error", err))
	}
}

// await suspends the fiber on an asyncNode until resolution or
// cancellation. The registered resolve is one-shot; a resolve arriving
// after cancellation is ignored.
func (f *fiber) await(t asyncNode) (value, errv Erased, ok, interrupted bool) {
	type outcome struct {
		ok         bool
		value, err Erased
	}
	ch := make(chan outcome, 1)
	var once sync.Once
	cancel := t.register(func(ok bool, v, e Erased) {
		once.Do(func() { ch <- outcome{ok: ok, value: v, err: e} })
	})
	select {
	case o := <-ch:
		return o.value, o.err, o.ok, false
	case <-f.cancelCh:
		if cancel != nil {
			cancel()
		}
		return nil, nil, false, true
	}
}

// runAll executes parNode operands on child fibers and waits for every one
// to complete. The first detected failure cancels the rest; the combinator
// still waits for the cancelled operands to finish unwinding.
func (f *fiber) runAll(operands []node) (value, errv Erased, ok, interrupted bool) {
	kids := make([]*fiber, len(operands))
	doneCh := make(chan int, len(operands))
	for i, n := range operands {
		c := f.spawn(n, false)
		c.markObserved()
		kids[i] = c
		go func(i int, c *fiber) {
			<-c.done
			doneCh <- i
		}(i, c)
	}

	values := make([]Erased, len(operands))
	var firstErr Erased
	failed := false
	parentCancelled := false
	for remaining := len(operands); remaining > 0; remaining-- {
		var i int
		if parentCancelled {
			i = <-doneCh
		} else {
			select {
			case i = <-doneCh:
			case <-f.cancelCh:
				parentCancelled = true
				for _, c := range kids {
					c.cancel()
				}
				i = <-doneCh
			}
		}
		c := kids[i]
		switch {
		case c.resOK:
			values[i] = c.resValue
		case c.interrupted:
			// Cancelled operand; nothing to record.
		case !failed:
			failed = true
			firstErr = c.resErr
			for _, other := range kids {
				other.cancel()
			}
		}
	}

	if parentCancelled {
		return nil, nil, false, true
	}
	if failed {
		return nil, firstErr, false, false
	}
	return values, nil, true, false
}

// race executes raceNode operands on child fibers; the first completion
// wins and the loser is cancelled and waited for. Ties favor the first
// operand.
func (f *fiber) race(t raceNode) (value, errv Erased, ok, interrupted bool) {
	a := f.spawn(t.first, false)
	a.markObserved()
	b := f.spawn(t.second, false)
	b.markObserved()

	var winner, loser *fiber
	firstWon := false
	select {
	case <-a.done:
	case <-b.done:
	case <-f.cancelCh:
		a.cancel()
		b.cancel()
		<-a.done
		<-b.done
		return nil, nil, false, true
	}

	// Tie-break: if the first operand is done by the time we wake, it wins
	// even when the wake-up came from the second.
	select {
	case <-a.done:
		winner, loser, firstWon = a, b, true
	default:
		winner, loser, firstWon = b, a, false
	}

	loser.cancel()
	<-loser.done

	switch {
	case winner.resOK:
		return raceOutcome{first: firstWon, value: winner.resValue}, nil, true, false
	case winner.interrupted:
		// Winner can only be interrupted through the parent.
		return nil, nil, false, true
	default:
		return nil, winner.resErr, false, false
	}
}
