// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package todoapp holds the task-list application: the state model, the
// todo source client, and the controller/view wiring over the reactive
// runtime.
package todoapp

// Todo is one task record, matching the source payload shape.
type Todo struct {
	ID        int    `json:"id" validate:"required"`
	UserID    int    `json:"userId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Completed bool   `json:"completed"`
}

// Filter selects which todos are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a user-entered filter name to a Filter.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s), true
	}
	return "", false
}

// State is the whole application state held by the store.
type State struct {
	Todos    []Todo
	FilterBy Filter
}

// NewState returns the initial state: no todos, all visible.
func NewState() State {
	return State{FilterBy: FilterAll}
}

// Visible projects the todos selected by the current filter.
func (s State) Visible() []Todo {
	if s.FilterBy == FilterAll {
		return s.Todos
	}
	wantCompleted := s.FilterBy == FilterCompleted
	out := make([]Todo, 0, len(s.Todos))
	for _, t := range s.Todos {
		if t.Completed == wantCompleted {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts the todos not yet completed.
func (s State) Remaining() int {
	n := 0
	for _, t := range s.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// nextID picks an identifier one past the current maximum, so locally added
// todos never collide with fetched ones.
func nextID(todos []Todo) int {
	max := 0
	for _, t := range todos {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// State update functions. Each is pure: it returns the updated state and is
// applied atomically through the store, so concurrent updates compose
// left-to-right without loss.

// AddTodo appends a new uncompleted todo with the given title.
func AddTodo(title string) func(State) State {
	return func(s State) State {
		todos := append(append([]Todo(nil), s.Todos...), Todo{
			ID:     nextID(s.Todos),
			UserID: 1,
			Title:  title,
		})
		s.Todos = todos
		return s
	}
}

// ToggleTodo flips the completion of the todo with the given id. Unknown
// ids leave the state unchanged.
func ToggleTodo(id int) func(State) State {
	return func(s State) State {
		todos := append([]Todo(nil), s.Todos...)
		for i := range todos {
			if todos[i].ID == id {
				todos[i].Completed = !todos[i].Completed
				break
			}
		}
		s.Todos = todos
		return s
	}
}

// RemoveTodo deletes the todo with the given id. Unknown ids leave the
// state unchanged.
func RemoveTodo(id int) func(State) State {
	return func(s State) State {
		todos := make([]Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID != id {
				todos = append(todos, t)
			}
		}
		s.Todos = todos
		return s
	}
}

// SetFilter replaces the visibility filter.
func SetFilter(f Filter) func(State) State {
	return func(s State) State {
		s.FilterBy = f
		return s
	}
}

// SetTodos replaces the whole todo list, as after a fetch.
func SetTodos(todos []Todo) func(State) State {
	return func(s State) State {
		s.Todos = todos
		return s
	}
}
