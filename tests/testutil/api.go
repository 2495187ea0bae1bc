package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// SampleTodosJSON and SampleUsersJSON mirror the shape of the public
// JSONPlaceholder API.
const (
	SampleTodosJSON = `[
  {"userId": 1, "id": 1, "title": "Buy milk", "completed": false},
  {"userId": 2, "id": 2, "title": "Write report", "completed": true},
  {"userId": 9, "id": 3, "title": "milk the cow", "completed": false}
]`
	SampleUsersJSON = `[
  {"id": 1, "name": "Alice", "username": "alice", "email": "alice@example.com",
   "address": {"city": "Gwenborough"}},
  {"id": 2, "name": "Bob", "username": "bob", "email": "bob@example.com"}
]`
)

// NewAPIServer starts an httptest server answering GET /todos and
// GET /users with the given bodies. An empty body answers 500.
// The server is closed when the test completes.
func NewAPIServer(t *testing.T, todosBody, usersBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/todos", jsonHandler(todosBody))
	mux.HandleFunc("/users", jsonHandler(usersBody))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if body == "" {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}
