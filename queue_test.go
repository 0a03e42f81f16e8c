// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill_test

import (
	"testing"
	"time"

	"code.hybscloud.com/rill"
)

func TestQueueBufferedTakeIsFIFO(t *testing.T) {
	q := rill.NewQueue[int]()
	q.Offer(1)
	q.Offer(2)
	q.Offer(3)
	for want := 1; want <= 3; want++ {
		if got := mustOk(t, rill.Take[noEnv, error](q)); got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("queue holds %d items after draining", q.Len())
	}
}

func TestQueueTakeSuspendsUntilOffer(t *testing.T) {
	q := rill.NewQueue[string]()
	task := rill.Start(rill.New(), noEnv{}, rill.Take[noEnv, error](q))
	select {
	case <-task.Done():
		t.Fatal("take completed on an empty queue")
	case <-time.After(10 * time.Millisecond):
	}
	q.Offer("ready")
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("offer did not wake the suspended take")
	}
	got, ok := task.Wait().Get()
	if !ok || got != "ready" {
		t.Fatalf("got %q, want ready", got)
	}
}

func TestQueueWaitersWakeInOrder(t *testing.T) {
	q := rill.NewQueue[int]()
	rt := rill.New()
	first := rill.Start(rt, noEnv{}, rill.Take[noEnv, error](q))
	// Give the first take time to register before the second.
	time.Sleep(5 * time.Millisecond)
	second := rill.Start(rt, noEnv{}, rill.Take[noEnv, error](q))
	time.Sleep(5 * time.Millisecond)

	q.Offer(1)
	q.Offer(2)
	<-first.Done()
	<-second.Done()

	a, _ := first.Wait().Get()
	b, _ := second.Wait().Get()
	if a != 1 || b != 2 {
		t.Fatalf("got %d/%d, want 1/2", a, b)
	}
}

func TestQueueCancelledTakeLosesNoItem(t *testing.T) {
	q := rill.NewQueue[int]()
	task := rill.Start(rill.New(), noEnv{}, rill.Take[noEnv, error](q))
	time.Sleep(5 * time.Millisecond)
	task.Cancel()
	<-task.Done()

	// Offers racing the cancellation may have committed the hand-off; either
	// way every item must remain takeable in order.
	q.Offer(7)
	q.Offer(8)
	if got := mustOk(t, rill.Take[noEnv, error](q)); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	if got := mustOk(t, rill.Take[noEnv, error](q)); got != 8 {
		t.Fatalf("got %d, want 8", got)
	}
}

func TestRefUpdateComposes(t *testing.T) {
	r := rill.NewRef(10)
	comp := rill.Then(
		rill.RefUpdate[noEnv, error](r, func(x int) int { return x + 1 }),
		rill.RefUpdate[noEnv, error](r, func(x int) int { return x * 2 }),
	)
	if got := mustOk(t, comp); got != 22 {
		t.Fatalf("got %d, want 22", got)
	}
	if got := mustOk(t, rill.RefGet[noEnv, error](r)); got != 22 {
		t.Fatalf("get returned %d, want 22", got)
	}
}
