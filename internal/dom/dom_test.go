// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/rill/internal/dom"
)

func buildDoc(t *testing.T) (*dom.Document, *dom.Element, *dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	list := doc.CreateElement("ul")
	list.ID = "todo-list"
	doc.Root().Append(list)

	li := doc.CreateElement("li")
	li.ID = "todo-1"
	li.Classes = []string{"completed"}
	label := doc.CreateElement("label")
	label.Classes = []string{"title"}
	label.Text = "write tests"
	li.Append(label)
	list.Append(li)
	return doc, li, label
}

func TestQuerySelectorByID(t *testing.T) {
	doc, li, _ := buildDoc(t)
	found, ok := doc.QuerySelector("#todo-1").Get()
	require.True(t, ok)
	assert.Same(t, li, found)
}

func TestQuerySelectorByClassAndTag(t *testing.T) {
	doc, li, label := buildDoc(t)

	found, ok := doc.QuerySelector(".completed").Get()
	require.True(t, ok)
	assert.Same(t, li, found)

	found, ok = doc.QuerySelector("label").Get()
	require.True(t, ok)
	assert.Same(t, label, found)
}

func TestQuerySelectorDescendant(t *testing.T) {
	doc, _, label := buildDoc(t)
	found, ok := doc.QuerySelector("#todo-list .title").Get()
	require.True(t, ok)
	assert.Same(t, label, found)
}

func TestQuerySelectorAbsentIsNone(t *testing.T) {
	doc, _, _ := buildDoc(t)
	assert.True(t, doc.QuerySelector("#nope").IsNone())
	assert.True(t, doc.QuerySelector("ul #nope").IsNone())
	assert.True(t, doc.QuerySelector("").IsNone())
}

func TestDispatchBubbles(t *testing.T) {
	_, li, label := buildDoc(t)

	var order []string
	remove := li.AddListener("click", func(ev dom.Event) {
		order = append(order, "li")
		assert.Same(t, label, ev.Target)
	})
	defer remove()
	label.AddListener("click", func(dom.Event) {
		order = append(order, "label")
	})

	label.Dispatch("click")
	assert.Equal(t, []string{"label", "li"}, order)
}

func TestRemovedListenerDoesNotFire(t *testing.T) {
	_, li, _ := buildDoc(t)
	fired := 0
	remove := li.AddListener("click", func(dom.Event) { fired++ })
	li.Dispatch("click")
	remove()
	remove() // detaching twice is safe
	li.Dispatch("click")
	assert.Equal(t, 1, fired)
}

func TestListenerFiltersByEventType(t *testing.T) {
	_, li, _ := buildDoc(t)
	fired := 0
	li.AddListener("change", func(dom.Event) { fired++ })
	li.Dispatch("click")
	assert.Zero(t, fired)
}

func TestClosestWalksAncestors(t *testing.T) {
	_, li, label := buildDoc(t)

	found, ok := label.Closest("li").Get()
	require.True(t, ok)
	assert.Same(t, li, found)

	// Self counts.
	found, ok = li.Closest("li").Get()
	require.True(t, ok)
	assert.Same(t, li, found)

	assert.True(t, label.Closest("#nope").IsNone())
}

func TestAppendReparents(t *testing.T) {
	doc := dom.NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")
	a.Append(child)
	b.Append(child)
	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, child.Parent())
}

func TestRenderProjection(t *testing.T) {
	doc, _, _ := buildDoc(t)
	var sb strings.Builder
	require.NoError(t, doc.Render(&sb))

	out := sb.String()
	assert.Contains(t, out, "ul#todo-list")
	assert.Contains(t, out, "  li#todo-1.completed")
	assert.Contains(t, out, `    label.title "write tests"`)
}
