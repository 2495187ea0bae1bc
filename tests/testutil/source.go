package testutil

import (
	"context"
	"sync"

	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/source"
)

// FakeSource is an in-memory source.Source with canned results.
// Counters are safe to read after the fetch commands have returned.
type FakeSource struct {
	Todos    []model.Todo
	Users    []model.User
	TodosErr error
	UsersErr error

	mu        sync.Mutex
	todoCalls int
	userCalls int
}

var _ source.Source = (*FakeSource)(nil)

// FetchTodos returns the canned todos or TodosErr.
func (f *FakeSource) FetchTodos(ctx context.Context) ([]model.Todo, error) {
	f.mu.Lock()
	f.todoCalls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.TodosErr != nil {
		return nil, f.TodosErr
	}
	return append([]model.Todo(nil), f.Todos...), nil
}

// FetchUsers returns the canned users or UsersErr.
func (f *FakeSource) FetchUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	return append([]model.User(nil), f.Users...), nil
}

// Calls reports how many times each collection was fetched.
func (f *FakeSource) Calls() (todos, users int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.todoCalls, f.userCalls
}
