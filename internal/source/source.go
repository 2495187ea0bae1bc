package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/todoboard/internal/model"
)

// StatusError is returned when the remote API answers with a non-2xx
// status code.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d on %s %s", e.StatusCode, e.Method, e.Path)
	}
	return fmt.Sprintf("unexpected status %d on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// StatusCode reports the HTTP status carried by err (or any error in
// its chain), or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Source defines the contract for fetching the two collections the
// board is built from. The fetches are independent of each other.
type Source interface {
	// FetchTodos retrieves the full todo collection.
	FetchTodos(ctx context.Context) ([]model.Todo, error)

	// FetchUsers retrieves the full user collection.
	FetchUsers(ctx context.Context) ([]model.User, error)
}
