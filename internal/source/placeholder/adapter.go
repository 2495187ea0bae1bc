package placeholder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/source"
)

// Adapter implements source.Source on top of the REST client.
type Adapter struct {
	client    *Client
	todosPath string
	usersPath string
}

var _ source.Source = (*Adapter)(nil)

// NewAdapter creates a source adapter from the source configuration.
func NewAdapter(cfg model.SourceConfig, logger *zap.Logger) *Adapter {
	todosPath := cfg.TodosPath
	if todosPath == "" {
		todosPath = model.DefaultTodosPath
	}
	usersPath := cfg.UsersPath
	if usersPath == "" {
		usersPath = model.DefaultUsersPath
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	return &Adapter{
		client:    NewClient(cfg.BaseURL, timeout, cfg.MaxRetries, logger),
		todosPath: todosPath,
		usersPath: usersPath,
	}
}

// FetchTodos retrieves every todo from the API.
func (a *Adapter) FetchTodos(ctx context.Context) ([]model.Todo, error) {
	var resp []Todo
	if err := a.client.Get(ctx, a.todosPath, &resp); err != nil {
		return nil, fmt.Errorf("fetching todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(resp))
	for _, t := range resp {
		todos = append(todos, model.Todo{
			ID:        t.ID,
			UserID:    t.UserID,
			Title:     sanitize(t.Title),
			Completed: t.Completed,
		})
	}
	return todos, nil
}

// FetchUsers retrieves every user from the API.
func (a *Adapter) FetchUsers(ctx context.Context) ([]model.User, error) {
	var resp []User
	if err := a.client.Get(ctx, a.usersPath, &resp); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}

	users := make([]model.User, 0, len(resp))
	for _, u := range resp {
		users = append(users, model.User{
			ID:       u.ID,
			Name:     sanitize(u.Name),
			Username: sanitize(u.Username),
			Email:    u.Email,
		})
	}
	return users, nil
}

// sanitize strips terminal escape sequences and flattens line breaks so
// remote strings always render as a single inert table cell.
func sanitize(s string) string {
	s = lineBreaks.Replace(s)
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
