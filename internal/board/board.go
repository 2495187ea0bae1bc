// Package board holds the view state of the todo table: the fetched
// todo and user collections, the current search term and the filtered
// subsequence derived from them.
//
// A Board is not safe for concurrent use. It is owned by a single
// update loop and mutated only in response to user or network events.
package board

import (
	"strings"

	"github.com/nhle/todoboard/internal/model"
)

// Row is a todo prepared for display: owner name resolved and title
// split into highlight segments for the current search term.
type Row struct {
	Todo           model.Todo
	UserName       string
	Segments       []Segment
	CompletedLabel string
}

// Stats summarizes the board for headers and status lines.
type Stats struct {
	Total     int
	Shown     int
	Completed int
	Users     int
}

// Board is the view-state controller.
type Board struct {
	todos     []model.Todo
	filtered  []model.Todo
	users     []model.User
	userNames map[int]string
	term      string
}

// New returns an empty board.
func New() *Board {
	return &Board{userNames: make(map[int]string)}
}

// SetTodos replaces the todo collection and recomputes the filtered
// view for the current search term.
func (b *Board) SetTodos(todos []model.Todo) {
	b.todos = append([]model.Todo(nil), todos...)
	b.refilter()
}

// SetUsers replaces the user collection. When ids repeat, the first
// user with that id wins.
func (b *Board) SetUsers(users []model.User) {
	b.users = append([]model.User(nil), users...)
	b.userNames = make(map[int]string, len(users))
	for _, u := range b.users {
		if _, ok := b.userNames[u.ID]; !ok {
			b.userNames[u.ID] = u.Name
		}
	}
}

// Search stores term and recomputes the filtered view as the todos whose
// title contains term. Matching is case-sensitive; an empty term
// matches everything.
func (b *Board) Search(term string) {
	b.term = term
	b.refilter()
}

// Delete removes the todo with the given id from both the full and the
// filtered collections. It reports whether anything was removed;
// deleting an absent id is a no-op.
func (b *Board) Delete(id int) bool {
	todos, removed := without(b.todos, id)
	if !removed {
		return false
	}
	b.todos = todos
	b.filtered, _ = without(b.filtered, id)
	return true
}

// Rows resolves owner names and highlight segments for every todo in
// the filtered view.
func (b *Board) Rows() []Row {
	rows := make([]Row, 0, len(b.filtered))
	for _, t := range b.filtered {
		rows = append(rows, Row{
			Todo:           t,
			UserName:       b.UserName(t.UserID),
			Segments:       Highlight(t.Title, b.term),
			CompletedLabel: t.CompletedLabel(),
		})
	}
	return rows
}

// UserName returns the display name of the user with the given id, or
// model.UnknownUserName when the user is absent or has no name.
func (b *Board) UserName(userID int) string {
	if name := b.userNames[userID]; name != "" {
		return name
	}
	return model.UnknownUserName
}

// Term returns the current search term.
func (b *Board) Term() string { return b.term }

// Todos returns a copy of the full todo collection.
func (b *Board) Todos() []model.Todo { return append([]model.Todo(nil), b.todos...) }

// Filtered returns a copy of the filtered todo collection.
func (b *Board) Filtered() []model.Todo { return append([]model.Todo(nil), b.filtered...) }

// Users returns a copy of the user collection.
func (b *Board) Users() []model.User { return append([]model.User(nil), b.users...) }

// Stats returns counts over the current state.
func (b *Board) Stats() Stats {
	s := Stats{
		Total: len(b.todos),
		Shown: len(b.filtered),
		Users: len(b.users),
	}
	for _, t := range b.todos {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}

func (b *Board) refilter() {
	if b.term == "" {
		b.filtered = append([]model.Todo(nil), b.todos...)
		return
	}
	filtered := make([]model.Todo, 0, len(b.todos))
	for _, t := range b.todos {
		if strings.Contains(t.Title, b.term) {
			filtered = append(filtered, t)
		}
	}
	b.filtered = filtered
}

// without returns a fresh slice holding every todo except those with id.
func without(todos []model.Todo, id int) ([]model.Todo, bool) {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out, len(out) != len(todos)
}
