// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/rill/internal/todoapp"
)

func TestAddTodoAssignsFreshID(t *testing.T) {
	s := todoapp.NewState()
	s = todoapp.AddTodo("first")(s)
	s = todoapp.AddTodo("second")(s)
	require.Len(t, s.Todos, 2)
	assert.Equal(t, 1, s.Todos[0].ID)
	assert.Equal(t, 2, s.Todos[1].ID)
	assert.Equal(t, "second", s.Todos[1].Title)
	assert.False(t, s.Todos[1].Completed)
}

func TestAddTodoDoesNotReuseRemovedIDs(t *testing.T) {
	s := todoapp.NewState()
	s = todoapp.SetTodos([]todoapp.Todo{{ID: 7, UserID: 1, Title: "kept"}})(s)
	s = todoapp.AddTodo("new")(s)
	require.Len(t, s.Todos, 2)
	assert.Equal(t, 8, s.Todos[1].ID)
}

func TestToggleTodo(t *testing.T) {
	s := todoapp.NewState()
	s = todoapp.AddTodo("a")(s)
	s = todoapp.ToggleTodo(1)(s)
	assert.True(t, s.Todos[0].Completed)
	s = todoapp.ToggleTodo(1)(s)
	assert.False(t, s.Todos[0].Completed)
}

func TestToggleUnknownIDLeavesStateUnchanged(t *testing.T) {
	s := todoapp.AddTodo("a")(todoapp.NewState())
	got := todoapp.ToggleTodo(99)(s)
	assert.Equal(t, s.Todos, got.Todos)
}

func TestRemoveTodo(t *testing.T) {
	s := todoapp.NewState()
	s = todoapp.AddTodo("a")(s)
	s = todoapp.AddTodo("b")(s)
	s = todoapp.RemoveTodo(1)(s)
	require.Len(t, s.Todos, 1)
	assert.Equal(t, "b", s.Todos[0].Title)
}

func TestUpdatesDoNotAliasPriorState(t *testing.T) {
	s0 := todoapp.AddTodo("a")(todoapp.NewState())
	s1 := todoapp.ToggleTodo(1)(s0)
	assert.False(t, s0.Todos[0].Completed)
	assert.True(t, s1.Todos[0].Completed)
}

func TestVisibleRespectsFilter(t *testing.T) {
	s := todoapp.NewState()
	s = todoapp.SetTodos([]todoapp.Todo{
		{ID: 1, UserID: 1, Title: "open"},
		{ID: 2, UserID: 1, Title: "done", Completed: true},
	})(s)

	assert.Len(t, s.Visible(), 2)

	active := todoapp.SetFilter(todoapp.FilterActive)(s)
	require.Len(t, active.Visible(), 1)
	assert.Equal(t, "open", active.Visible()[0].Title)

	completed := todoapp.SetFilter(todoapp.FilterCompleted)(s)
	require.Len(t, completed.Visible(), 1)
	assert.Equal(t, "done", completed.Visible()[0].Title)

	assert.Equal(t, 1, s.Remaining())
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"all", "active", "completed"} {
		f, ok := todoapp.ParseFilter(name)
		require.True(t, ok)
		assert.Equal(t, todoapp.Filter(name), f)
	}
	_, ok := todoapp.ParseFilter("bogus")
	assert.False(t, ok)
}
