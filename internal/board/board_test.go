package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoboard/internal/model"
)

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: 1, UserID: 1, Title: "Buy milk", Completed: false},
		{ID: 2, UserID: 2, Title: "Write report", Completed: true},
		{ID: 3, UserID: 9, Title: "milk the cow", Completed: false},
		{ID: 4, UserID: 1, Title: "Call Milkman", Completed: true},
	}
}

func sampleUsers() []model.User {
	return []model.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
}

func ids(todos []model.Todo) []int {
	out := make([]int, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestLoadScenario(t *testing.T) {
	b := New()
	b.SetTodos([]model.Todo{{ID: 1, UserID: 1, Title: "Buy milk", Completed: false}})
	b.SetUsers([]model.User{{ID: 1, Name: "Alice"}})

	rows := b.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Todo.ID)
	assert.Equal(t, "Alice", rows[0].UserName)
	assert.Equal(t, "No", rows[0].CompletedLabel)
	assert.Equal(t, []Segment{{Text: "Buy milk"}}, rows[0].Segments)
}

func TestSearchScenarios(t *testing.T) {
	b := New()
	b.SetTodos([]model.Todo{{ID: 1, UserID: 1, Title: "Buy milk", Completed: false}})
	b.SetUsers([]model.User{{ID: 1, Name: "Alice"}})

	b.Search("milk")
	rows := b.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []Segment{{Text: "Buy "}, {Text: "milk", Match: true}}, rows[0].Segments)

	b.Search("xyz")
	assert.Empty(t, b.Rows())
	assert.Empty(t, b.Filtered())
	assert.Len(t, b.Todos(), 1, "search never touches the full collection")
}

func TestDeleteScenario(t *testing.T) {
	b := New()
	b.SetTodos([]model.Todo{{ID: 1, UserID: 1, Title: "Buy milk", Completed: false}})

	assert.True(t, b.Delete(1))
	assert.Empty(t, b.Todos())
	assert.Empty(t, b.Filtered())
	assert.Empty(t, b.Rows())
}

func TestInitialFilteredEqualsTodos(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	assert.Equal(t, b.Todos(), b.Filtered())
	assert.Equal(t, "", b.Term())
}

func TestSearchIsCaseSensitiveSubstring(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	tests := []struct {
		term string
		want []int
	}{
		{term: "", want: []int{1, 2, 3, 4}},
		{term: "milk", want: []int{1, 3}},
		{term: "Milk", want: []int{4}},
		{term: "r", want: []int{2}},
		{term: " ", want: []int{1, 2, 3, 4}},
		{term: "xyz", want: []int{}},
		{term: ".", want: []int{}},
	}

	for _, tt := range tests {
		t.Run("term="+tt.term, func(t *testing.T) {
			b.Search(tt.term)
			assert.Equal(t, tt.want, ids(b.Filtered()))
			assert.Equal(t, tt.term, b.Term())
		})
	}
}

func TestSearchMatchesDefinition(t *testing.T) {
	b := New()
	todos := sampleTodos()
	b.SetTodos(todos)

	for _, term := range []string{"", "m", "milk", "ow", "Buy milk", "k", "zzz", "e"} {
		b.Search(term)

		var want []model.Todo
		for _, todo := range todos {
			if strings.Contains(todo.Title, term) {
				want = append(want, todo)
			}
		}
		assert.ElementsMatch(t, want, b.Filtered(), "term %q", term)
		assert.Equal(t, ids(want), ids(b.Filtered()), "order preserved for %q", term)
	}
}

func TestSetTodosReappliesTerm(t *testing.T) {
	b := New()
	b.Search("milk")
	b.SetTodos(sampleTodos())

	assert.Equal(t, []int{1, 3}, ids(b.Filtered()))
	assert.Len(t, b.Todos(), 4)
}

func TestDeleteRemovesFromBothCollections(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())
	b.Search("milk")

	assert.True(t, b.Delete(3))
	assert.Equal(t, []int{1, 2, 4}, ids(b.Todos()))
	assert.Equal(t, []int{1}, ids(b.Filtered()))

	// Clearing the search must not resurrect the deleted todo.
	b.Search("")
	assert.Equal(t, []int{1, 2, 4}, ids(b.Filtered()))
}

func TestDeleteHiddenTodo(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())
	b.Search("milk")

	assert.True(t, b.Delete(2), "deleting a todo hidden by the filter still removes it")
	assert.Equal(t, []int{1, 3}, ids(b.Filtered()))
	assert.Equal(t, []int{1, 3, 4}, ids(b.Todos()))
}

func TestDeleteIsIdempotent(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	assert.True(t, b.Delete(1))
	before := b.Todos()

	assert.False(t, b.Delete(1))
	assert.False(t, b.Delete(42))
	assert.Equal(t, before, b.Todos())
	assert.Equal(t, before, b.Filtered())
}

func TestDeleteLeavesOtherIDsUntouched(t *testing.T) {
	for _, todo := range sampleTodos() {
		b := New()
		b.SetTodos(sampleTodos())

		require.True(t, b.Delete(todo.ID))
		for _, other := range sampleTodos() {
			present := false
			for _, kept := range b.Todos() {
				if kept.ID == other.ID {
					present = true
				}
			}
			assert.Equal(t, other.ID != todo.ID, present, "delete %d, check %d", todo.ID, other.ID)
		}
	}
}

func TestFilteredIsSubsetOfTodos(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	steps := []func(){
		func() { b.Search("milk") },
		func() { b.Delete(1) },
		func() { b.Search("") },
		func() { b.Delete(2) },
		func() { b.Search("o") },
		func() { b.SetTodos(sampleTodos()[:2]) },
	}
	for i, step := range steps {
		step()
		all := map[int]bool{}
		for _, todo := range b.Todos() {
			all[todo.ID] = true
		}
		for _, todo := range b.Filtered() {
			assert.True(t, all[todo.ID], "step %d: filtered id %d not in todos", i, todo.ID)
		}
	}
}

func TestUserJoin(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	// Users not loaded yet: every row is Unknown.
	for _, row := range b.Rows() {
		assert.Equal(t, model.UnknownUserName, row.UserName)
	}

	b.SetUsers(sampleUsers())
	got := map[int]string{}
	for _, row := range b.Rows() {
		got[row.Todo.ID] = row.UserName
	}
	assert.Equal(t, map[int]string{
		1: "Alice",
		2: "Bob",
		3: model.UnknownUserName,
		4: "Alice",
	}, got)
}

func TestUserNameEdgeCases(t *testing.T) {
	b := New()
	b.SetUsers([]model.User{
		{ID: 1, Name: "First"},
		{ID: 1, Name: "Second"},
		{ID: 2, Name: ""},
	})

	assert.Equal(t, "First", b.UserName(1), "first user with a given id wins")
	assert.Equal(t, model.UnknownUserName, b.UserName(2), "empty name falls back")
	assert.Equal(t, model.UnknownUserName, b.UserName(3))
	assert.Len(t, b.Users(), 3)
}

func TestSetUsersReplacesIndex(t *testing.T) {
	b := New()
	b.SetUsers(sampleUsers())
	b.SetUsers([]model.User{{ID: 2, Name: "Robert"}})

	assert.Equal(t, model.UnknownUserName, b.UserName(1))
	assert.Equal(t, "Robert", b.UserName(2))
}

func TestAccessorsReturnCopies(t *testing.T) {
	b := New()
	b.SetTodos(sampleTodos())

	todos := b.Todos()
	todos[0].Title = "mutated"
	filtered := b.Filtered()
	filtered[0].Title = "mutated"

	assert.Equal(t, "Buy milk", b.Todos()[0].Title)
	assert.Equal(t, "Buy milk", b.Filtered()[0].Title)
}

func TestStats(t *testing.T) {
	b := New()
	assert.Equal(t, Stats{}, b.Stats())

	b.SetTodos(sampleTodos())
	b.SetUsers(sampleUsers())
	b.Search("milk")

	assert.Equal(t, Stats{Total: 4, Shown: 2, Completed: 2, Users: 2}, b.Stats())
}
