// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill_test

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/rill"
)

// countingSource records listener attach/detach pairs. Attach and detach run
// on fiber goroutines while the test fires events, so state is locked.
type countingSource struct {
	mu       sync.Mutex
	attached int
	detached int
	listener func(int)
}

func (s *countingSource) AddListener(event string, fn func(int)) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached++
	s.listener = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.detached++
		s.listener = nil
	}
}

func (s *countingSource) fire(v int) {
	s.mu.Lock()
	fn := s.listener
	s.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

func (s *countingSource) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

func (s *countingSource) counts() (attached, detached int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached, s.detached
}

func TestListenDeliversEventsInOrder(t *testing.T) {
	src := &countingSource{}
	st := rill.TakeStream(rill.Listen[noEnv, error, int](src, "tick"), 3)
	task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))

	for !src.ready() {
		time.Sleep(time.Millisecond)
	}
	src.fire(1)
	src.fire(2)
	src.fire(3)

	<-task.Done()
	got, ok := task.Wait().Get()
	if !ok {
		t.Fatal("collect failed")
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestListenDetachesOnNaturalEnd(t *testing.T) {
	src := &countingSource{}
	st := rill.TakeStream(rill.Listen[noEnv, error, int](src, "tick"), 1)
	task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))
	for !src.ready() {
		time.Sleep(time.Millisecond)
	}
	src.fire(42)
	<-task.Done()
	if a, d := src.counts(); a != 1 || d != 1 {
		t.Fatalf("attached %d detached %d, want 1/1", a, d)
	}
}

func TestListenDetachesOnCancellation(t *testing.T) {
	src := &countingSource{}
	st := rill.Listen[noEnv, error, int](src, "tick")
	task := rill.Start(rill.New(), noEnv{}, rill.Drain(st))
	for !src.ready() {
		time.Sleep(time.Millisecond)
	}
	task.Cancel()
	<-task.Done()

	if a, d := src.counts(); a != 1 || d != 1 {
		t.Fatalf("attached %d detached %d, want 1/1", a, d)
	}
}

func TestListenDetachesOnDownstreamFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &countingSource{}
	st := rill.MapStreamEffect(
		rill.Listen[noEnv, error, int](src, "tick"),
		func(int) rill.Effect[noEnv, error, int] {
			return rill.Throw[noEnv, error, int](boom)
		},
	)
	task := rill.Start(rill.New(), noEnv{}, rill.Drain(st))
	for !src.ready() {
		time.Sleep(time.Millisecond)
	}
	src.fire(1)
	<-task.Done()

	res := task.Wait()
	e, failed := res.GetErr()
	if !failed || !errors.Is(e, boom) {
		t.Fatalf("got %v, want boom", e)
	}
	if a, d := src.counts(); a != 1 || d != 1 {
		t.Fatalf("attached %d detached %d, want 1/1", a, d)
	}
}

func TestListenAttachesPerConsumption(t *testing.T) {
	src := &countingSource{}
	st := rill.TakeStream(rill.Listen[noEnv, error, int](src, "tick"), 1)
	for i := 0; i < 2; i++ {
		task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))
		for !src.ready() {
			time.Sleep(time.Millisecond)
		}
		src.fire(i)
		<-task.Done()
	}
	if a, d := src.counts(); a != 2 || d != 2 {
		t.Fatalf("attached %d detached %d, want 2/2", a, d)
	}
}
