// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"fmt"
	"strconv"

	"code.hybscloud.com/rill"
)

// Mount builds the static document skeleton: header, todo list, footer.
func Mount() rill.Effect[Env, error, struct{}] {
	return rill.AccessEnv(func(env Env) rill.Effect[Env, error, struct{}] {
		return rill.Sync[Env, error](func() struct{} {
			header := env.Doc.CreateElement("h1")
			header.ID = "header"
			header.Text = "todos"
			list := env.Doc.CreateElement("ul")
			list.ID = "todo-list"
			footer := env.Doc.CreateElement("footer")
			footer.ID = "footer"
			root := env.Doc.Root()
			root.Append(header)
			root.Append(list)
			root.Append(footer)
			return struct{}{}
		})
	})
}

// RenderState projects a state into the element tree and writes the tree to
// the output. The list is rebuilt from the visible todos; each entry
// carries its id both as the element id and as a data attribute for event
// delegation.
func RenderState(env Env, s State) rill.Effect[Env, error, struct{}] {
	return rill.Suspend(func() rill.Effect[Env, error, struct{}] {
		list, ok := env.Doc.QuerySelector("#todo-list").Get()
		if !ok {
			return rill.Throw[Env, error, struct{}](&ElementNotFoundError{Selector: "#todo-list"})
		}
		footer, ok := env.Doc.QuerySelector("#footer").Get()
		if !ok {
			return rill.Throw[Env, error, struct{}](&ElementNotFoundError{Selector: "#footer"})
		}

		list.RemoveChildren()
		for _, t := range s.Visible() {
			li := env.Doc.CreateElement("li")
			li.ID = fmt.Sprintf("todo-%d", t.ID)
			li.Attrs = map[string]string{"data-id": strconv.Itoa(t.ID)}
			if t.Completed {
				li.Classes = []string{"completed"}
			}
			label := env.Doc.CreateElement("label")
			label.Classes = []string{"title"}
			label.Text = t.Title
			li.Append(label)
			list.Append(li)
		}
		footer.SetText(fmt.Sprintf("%d left / filter: %s", s.Remaining(), s.FilterBy))

		if err := env.Doc.Render(env.Out); err != nil {
			return rill.Throw[Env, error, struct{}](err)
		}
		return rill.Pure[Env, error](struct{}{})
	})
}

// RenderLoop re-renders on every store update, for the lifetime of the
// subscription. It never ends naturally; the program cancels it on exit.
func RenderLoop() rill.Effect[Env, error, struct{}] {
	return rill.AccessEnv(func(env Env) rill.Effect[Env, error, struct{}] {
		updates := rill.Subscribe[Env, error](env.Store)
		return rill.Drain(rill.MapStreamEffect(updates, func(s State) rill.Effect[Env, error, struct{}] {
			return RenderState(env, s)
		}))
	})
}
