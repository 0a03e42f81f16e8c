// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"bufio"
	"io"
	"sync"

	"code.hybscloud.com/rill"
)

// LineSource turns a reader into an event source firing one "line" event
// per input line. Lines arriving while no listener is attached are dropped,
// matching native event semantics.
type LineSource struct {
	mu        sync.Mutex
	listeners []*lineListener
}

type lineListener struct {
	event string
	fn    func(string)
}

var _ rill.EventSource[string] = (*LineSource)(nil)

// NewLineSource starts reading r line by line on a background goroutine.
// The source stops firing when r reaches EOF or fails.
func NewLineSource(r io.Reader) *LineSource {
	s := &LineSource{}
	go s.read(r)
	return s
}

func (s *LineSource) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.emit(sc.Text())
	}
}

func (s *LineSource) emit(line string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.listeners))
	for _, l := range s.listeners {
		if l.event == "line" {
			fns = append(fns, l.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(line)
	}
}

// AddListener implements rill.EventSource.
func (s *LineSource) AddListener(event string, fn func(string)) (remove func()) {
	l := &lineListener{event: event, fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		for i, other := range s.listeners {
			if other == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}
