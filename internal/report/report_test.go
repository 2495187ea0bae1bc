package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/model"
)

func sampleBoard() *board.Board {
	b := board.New()
	b.SetTodos([]model.Todo{
		{ID: 1, UserID: 1, Title: "Buy milk"},
		{ID: 2, UserID: 2, Title: "Write report", Completed: true},
		{ID: 3, UserID: 9, Title: "milk the cow"},
	})
	b.SetUsers([]model.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}})
	return b
}

func TestRenderAllRows(t *testing.T) {
	b := sampleBoard()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, b.Rows(), b.Stats(), 0))

	out := buf.String()
	for _, want := range []string{"ID", "User", "Title", "Completed", "Buy milk", "Write report", "milk the cow", "Alice", "Bob", "Unknown", "Yes", "No"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "3 of 3 todos shown, 1 completed, 2 users")
}

func TestRenderFiltered(t *testing.T) {
	b := sampleBoard()
	b.Search("report")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, b.Rows(), b.Stats(), 80))

	out := buf.String()
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Buy milk")
	assert.Contains(t, out, "1 of 3 todos shown")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRenderWriteError(t *testing.T) {
	b := sampleBoard()
	assert.EqualError(t, Render(failingWriter{}, b.Rows(), b.Stats(), 0), "closed pipe")
}
