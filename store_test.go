// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill_test

import (
	"slices"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/rill"
)

func waitForSubscribers[A any](s *rill.Store[A], n int) {
	for s.Subscribers() != n {
		time.Sleep(time.Millisecond)
	}
}

func TestStoreGetReflectsLatestNext(t *testing.T) {
	s := rill.NewStore(10)
	comp := rill.Then(
		rill.Next[noEnv, error](s, func(x int) int { return x + 1 }),
		rill.Get[noEnv, error](s),
	)
	got := mustOk(t, comp)
	v, ok := got.Get()
	if !ok || v != 11 {
		t.Fatalf("got %+v, want Some(11)", got)
	}
}

func TestStoreConcurrentNextComposes(t *testing.T) {
	const writers = 8
	const perWriter = 100
	s := rill.NewStore(0)
	inc := rill.Next[noEnv, error](s, func(x int) int { return x + 1 })

	rt := rill.New()
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				rill.Run(rt, noEnv{}, inc)
			}
		}()
	}
	wg.Wait()

	got := mustOk(t, rill.Get[noEnv, error](s))
	v, _ := got.Get()
	if v != writers*perWriter {
		t.Fatalf("got %d, want %d", v, writers*perWriter)
	}
}

func TestStoreSubscriberSeesEveryUpdateInOrder(t *testing.T) {
	s := rill.NewStore(0)
	st := rill.TakeStream(rill.Subscribe[noEnv, error](s), 3)
	task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))

	waitForSubscribers(s, 1)
	for i := 1; i <= 3; i++ {
		v := i
		mustOk(t, rill.Next[noEnv, error](s, func(int) int { return v }))
	}

	<-task.Done()
	got, ok := task.Wait().Get()
	if !ok {
		t.Fatal("collect failed")
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestStoreMulticastDeliversToEverySubscriber(t *testing.T) {
	s := rill.NewStore(0)
	rt := rill.New()
	st := rill.TakeStream(rill.Subscribe[noEnv, error](s), 3)

	first := rill.Start(rt, noEnv{}, rill.Collect(st))
	second := rill.Start(rt, noEnv{}, rill.Collect(st))
	waitForSubscribers(s, 2)

	for i := 1; i <= 3; i++ {
		v := i * 10
		mustOk(t, rill.Next[noEnv, error](s, func(int) int { return v }))
	}

	<-first.Done()
	<-second.Done()
	a, _ := first.Wait().Get()
	b, _ := second.Wait().Get()
	want := []int{10, 20, 30}
	if !slices.Equal(a, want) || !slices.Equal(b, want) {
		t.Fatalf("got %v and %v, want %v for both subscribers", a, b, want)
	}
}

func TestStoreDoesNotReplayHistory(t *testing.T) {
	s := rill.NewStore(0)
	mustOk(t, rill.Next[noEnv, error](s, func(int) int { return 1 }))
	mustOk(t, rill.Next[noEnv, error](s, func(int) int { return 2 }))

	st := rill.TakeStream(rill.Subscribe[noEnv, error](s), 1)
	task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))
	waitForSubscribers(s, 1)

	mustOk(t, rill.Next[noEnv, error](s, func(int) int { return 3 }))
	<-task.Done()
	got, _ := task.Wait().Get()
	if !slices.Equal(got, []int{3}) {
		t.Fatalf("got %v, want [3]: history must not replay", got)
	}
}

func TestStoreSubscribeDeregistersOnEnd(t *testing.T) {
	s := rill.NewStore(0)
	st := rill.TakeStream(rill.Subscribe[noEnv, error](s), 1)
	task := rill.Start(rill.New(), noEnv{}, rill.Collect(st))
	waitForSubscribers(s, 1)
	mustOk(t, rill.Next[noEnv, error](s, func(int) int { return 1 }))
	<-task.Done()
	waitForSubscribers(s, 0)
}
