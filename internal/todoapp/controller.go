// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"code.hybscloud.com/rill"
	"code.hybscloud.com/rill/internal/dom"
)

// CommandLoop merges the input-line stream with the todo list's click
// stream and executes the resulting commands until quit. Malformed input is
// logged and skipped; structural failures (missing elements, broken
// ancestor chains) propagate to the supervisor.
func CommandLoop() rill.Effect[Env, error, struct{}] {
	return rill.AccessEnv(func(env Env) rill.Effect[Env, error, struct{}] {
		list, ok := env.Doc.QuerySelector("#todo-list").Get()
		if !ok {
			return rill.Throw[Env, error, struct{}](&EmptyOptionOfElementError{Message: "#todo-list"})
		}
		quit := rill.NewQueue[struct{}]()

		lines := rill.Listen[Env, error](env.Input, "line")
		commands := rill.MapStreamEffect(lines, func(line string) rill.Effect[Env, error, struct{}] {
			return execLine(env, quit, line)
		})

		clicks := rill.Listen[Env, error, dom.Event](list, "click")
		toggles := rill.MapStreamEffect(clicks, func(ev dom.Event) rill.Effect[Env, error, struct{}] {
			return handleClick(env, ev)
		})

		merged := rill.MergeAll([]rill.Stream[Env, error, struct{}]{commands, toggles})
		return rill.Drain(rill.TakeUntil(merged, rill.FromQueue[Env, error, struct{}](quit)))
	})
}

// execLine parses one input line into a command effect.
//
//	add <title>            append a new todo
//	toggle <id>            flip completion (via click dispatch)
//	rm <id>                remove a todo
//	filter all|active|completed
//	load                   fetch todos from the source
//	quit                   end the program
func execLine(env Env, quit *rill.Queue[struct{}], line string) rill.Effect[Env, error, struct{}] {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return rill.Pure[Env, error](struct{}{})
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch fields[0] {
	case "add":
		if arg == "" {
			return warn(env, "add needs a title", line)
		}
		return rill.Next[Env, error](env.Store, AddTodo(arg))
	case "toggle":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return warn(env, "toggle needs a numeric id", line)
		}
		return dispatchToggle(env, id)
	case "rm":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return warn(env, "rm needs a numeric id", line)
		}
		return rill.Next[Env, error](env.Store, RemoveTodo(id))
	case "filter":
		f, ok := ParseFilter(arg)
		if !ok {
			return warn(env, "filter needs all, active, or completed", line)
		}
		return rill.Next[Env, error](env.Store, SetFilter(f))
	case "load":
		return FetchAndStoreTodos()
	case "quit":
		return rill.Sync[Env, error](func() struct{} {
			quit.Offer(struct{}{})
			return struct{}{}
		})
	default:
		return warn(env, "unknown command", line)
	}
}

func warn(env Env, msg, line string) rill.Effect[Env, error, struct{}] {
	return rill.Sync[Env, error](func() struct{} {
		env.Logger.Warn(msg, zap.String("input", line))
		return struct{}{}
	})
}

// dispatchToggle fires a click on the rendered entry's label, exercising
// the same delegation path a pointer device would.
func dispatchToggle(env Env, id int) rill.Effect[Env, error, struct{}] {
	return rill.Suspend(func() rill.Effect[Env, error, struct{}] {
		sel := fmt.Sprintf("#todo-%d .title", id)
		label, ok := env.Doc.QuerySelector(sel).Get()
		if !ok {
			return rill.Throw[Env, error, struct{}](&ElementNotFoundError{Selector: sel})
		}
		label.Dispatch("click")
		return rill.Pure[Env, error](struct{}{})
	})
}

// handleClick resolves the clicked node's todo by walking to its list
// entry. A target outside an entry violates the delegation invariant.
func handleClick(env Env, ev dom.Event) rill.Effect[Env, error, struct{}] {
	return rill.Suspend(func() rill.Effect[Env, error, struct{}] {
		li, ok := ev.Target.Closest("li").Get()
		if !ok {
			return rill.Throw[Env, error, struct{}](&ParentElementNotFoundError{Tag: "li"})
		}
		id, err := strconv.Atoi(li.Attrs["data-id"])
		if err != nil {
			return rill.Throw[Env, error, struct{}](&ParentElementNotFoundError{Tag: "li"})
		}
		return rill.Next[Env, error](env.Store, ToggleTodo(id))
	})
}
