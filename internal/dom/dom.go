// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dom provides a lightweight in-memory element tree: creation,
// selector lookup, event dispatch with upward propagation, and a plain-text
// projection. Lookups are pure and synchronous; an absent element is an
// Option sentinel, never a panic.
//
// Tree structure is guarded by a document-wide lock, so a fiber may query
// or dispatch while another rebuilds a subtree. Element data fields (ID,
// Classes, Attrs, Text) are set between creation and attachment; after
// attachment, post-hoc text changes go through SetText.
package dom

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"code.hybscloud.com/rill"
)

// Event is one dispatched occurrence. Target is the element the event was
// fired on, which may be a descendant of the element whose listener runs.
type Event struct {
	Type   string
	Target *Element
}

type listener struct {
	event string
	fn    func(Event)
}

// Element is one node of the tree.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Text    string
	Attrs   map[string]string

	doc      *Document
	parent   *Element
	children []*Element

	mu        sync.Mutex
	listeners []*listener
}

var _ rill.EventSource[Event] = (*Element)(nil)

// Append attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) Append(child *Element) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. Detaching a non-child is a no-op.
func (e *Element) RemoveChild(child *Element) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.removeChild(child)
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveChildren detaches every child.
func (e *Element) RemoveChildren() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// SetText replaces the element's text after attachment.
func (e *Element) SetText(text string) {
	e.doc.mu.Lock()
	e.Text = text
	e.doc.mu.Unlock()
}

// Children returns a snapshot of the current child list.
func (e *Element) Children() []*Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return slices.Clone(e.children)
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.parent
}

// AddListener attaches fn for the named event and returns the procedure
// detaching exactly that listener. Detaching twice is a no-op.
func (e *Element) AddListener(event string, fn func(Event)) (remove func()) {
	l := &listener{event: event, fn: fn}
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		for i, other := range e.listeners {
			if other == l {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				break
			}
		}
		e.mu.Unlock()
	}
}

// Dispatch fires an event on e and propagates it upward: every listener for
// the event type on e and each of its ancestors runs, target-most first.
// Listeners run outside the tree lock.
func (e *Element) Dispatch(eventType string) {
	ev := Event{Type: eventType, Target: e}
	e.doc.mu.RLock()
	var chain []*Element
	for n := e; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	e.doc.mu.RUnlock()
	for _, n := range chain {
		n.emit(ev)
	}
}

func (e *Element) emit(ev Event) {
	e.mu.Lock()
	fns := make([]func(Event), 0, len(e.listeners))
	for _, l := range e.listeners {
		if l.event == ev.Type {
			fns = append(fns, l.fn)
		}
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Closest walks from e upward, self included, and returns the first element
// matching the simple selector.
func (e *Element) Closest(sel string) rill.Option[*Element] {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := e; n != nil; n = n.parent {
		if matches(n, sel) {
			return rill.Some(n)
		}
	}
	return rill.None[*Element]()
}

// Document owns an element tree rooted at a single synthetic root element.
type Document struct {
	mu   sync.RWMutex
	root *Element
}

// NewDocument creates a document with an empty root.
func NewDocument() *Document {
	d := &Document{}
	d.root = &Element{Tag: "root", doc: d}
	return d
}

// Root returns the root element.
func (d *Document) Root() *Element {
	return d.root
}

// CreateElement creates a detached element with the given tag. The element
// joins the tree through Append.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: tag, doc: d}
}

// QuerySelector returns the first element, in depth-first document order,
// matching the selector. Supported forms: `tag`, `#id`, `.class`, and
// whitespace-separated descendant chains of those.
func (d *Document) QuerySelector(sel string) rill.Option[*Element] {
	parts := strings.Fields(sel)
	if len(parts) == 0 {
		return rill.None[*Element]()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return query(d.root, parts)
}

func query(root *Element, parts []string) rill.Option[*Element] {
	for _, c := range root.children {
		if matches(c, parts[0]) {
			if len(parts) == 1 {
				return rill.Some(c)
			}
			if found := query(c, parts[1:]); found.IsSome() {
				return found
			}
		}
		if found := query(c, parts); found.IsSome() {
			return found
		}
	}
	return rill.None[*Element]()
}

func matches(e *Element, sel string) bool {
	switch {
	case strings.HasPrefix(sel, "#"):
		return e.ID == sel[1:]
	case strings.HasPrefix(sel, "."):
		return slices.Contains(e.Classes, sel[1:])
	default:
		return e.Tag == sel
	}
}

// Render writes an indented text projection of the tree.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.root.children {
		if err := render(w, c, 0); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, e *Element, depth int) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(e.Tag)
	if e.ID != "" {
		sb.WriteString("#" + e.ID)
	}
	for _, c := range e.Classes {
		sb.WriteString("." + c)
	}
	if e.Text != "" {
		fmt.Fprintf(&sb, " %q", e.Text)
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	for _, c := range e.children {
		if err := render(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
