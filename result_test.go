// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rill_test

import (
	"errors"
	"strconv"
	"testing"

	"code.hybscloud.com/rill"
)

func TestMatchResult(t *testing.T) {
	ok := rill.Ok[error](21)
	got := rill.MatchResult(ok,
		func(error) int { return -1 },
		func(x int) int { return x * 2 },
	)
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}

	fail := rill.Fail[error, int](errors.New("boom"))
	got = rill.MatchResult(fail,
		func(error) int { return -1 },
		func(x int) int { return x * 2 },
	)
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestFlatMapResultShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	invoked := false
	out := rill.FlatMapResult(rill.Fail[error, int](boom), func(int) rill.Result[error, string] {
		invoked = true
		return rill.Ok[error]("unreachable")
	})
	if invoked {
		t.Fatal("continuation invoked on failure")
	}
	if e, _ := out.GetErr(); !errors.Is(e, boom) {
		t.Fatalf("got %v, want boom", e)
	}

	out = rill.FlatMapResult(rill.Ok[error](7), func(x int) rill.Result[error, string] {
		return rill.Ok[error](strconv.Itoa(x))
	})
	if v, ok := out.Get(); !ok || v != "7" {
		t.Fatalf("got %q, want 7", v)
	}
}

func TestMapErr(t *testing.T) {
	out := rill.MapErr(rill.Fail[string, int]("raw"), func(s string) error {
		return errors.New("wrapped: " + s)
	})
	e, failed := out.GetErr()
	if !failed || e.Error() != "wrapped: raw" {
		t.Fatalf("got %v", e)
	}

	ok := rill.MapErr(rill.Ok[string](5), func(string) error { return nil })
	if v, isOk := ok.Get(); !isOk || v != 5 {
		t.Fatalf("got %d, want 5", v)
	}
}

func TestOptionAccessors(t *testing.T) {
	some := rill.Some(3)
	if v, ok := some.Get(); !ok || v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
	if got := rill.None[int]().OrElse(9); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
	mapped := rill.MapOption(some, strconv.Itoa)
	if v, ok := mapped.Get(); !ok || v != "3" {
		t.Fatalf("got %q, want 3", v)
	}
	if rill.MapOption(rill.None[int](), strconv.Itoa).IsSome() {
		t.Fatal("mapped None is Some")
	}
}
