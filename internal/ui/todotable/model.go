package todotable

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/keys"
	"github.com/nhle/todoboard/internal/theme"
)

// RowDeletedMsg is sent after a todo has been removed from the board.
type RowDeletedMsg struct {
	ID    int
	Title string
}

// confirmBindings lives on the heap so the huh form keeps writing to
// the same value across Model copies.
type confirmBindings struct {
	confirm bool
}

// Model is the todo table view. It renders the board's rows and owns
// the search input and the delete interaction; the board itself is
// shared with the parent.
type Model struct {
	list          list.Model
	delegate      RowDelegate
	board         *board.Board
	keys          *keys.KeyMap
	searchMode    bool
	searchInput   textinput.Model
	confirmDelete bool
	confirmForm   *huh.Form
	fb            *confirmBindings
	pending       board.Row
	loading       bool
	width         int
	height        int
}

// New creates a table view over b. When confirmDelete is set, the
// delete key asks for confirmation before removing a row.
func New(b *board.Board, k *keys.KeyMap, confirmDelete bool, width, height int) Model {
	delegate := newRowDelegate(width)
	l := list.New([]list.Item{}, delegate, width, listHeight(height))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	si := textinput.New()
	si.Placeholder = "search titles..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		list:          l,
		delegate:      delegate,
		board:         b,
		keys:          k,
		searchInput:   si,
		confirmDelete: confirmDelete,
		fb:            &confirmBindings{},
		width:         width,
		height:        height,
	}
	m.Refresh()
	return m
}

// listHeight leaves room for the search bar and the column header.
func listHeight(height int) int {
	h := height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// Update handles messages for the table view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm != nil {
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while the search bar is focused.
// The board is re-filtered on every change to the input.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.ClearSearch):
		m.searchMode = false
		m.searchInput.Blur()
		m.clearSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if term := m.searchInput.Value(); term != m.board.Term() {
		m.board.Search(term)
		m.list.Select(0)
		m.Refresh()
	}
	return m, cmd
}

// handleNormalKeys processes key input when the search bar is not focused.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.board.Term())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.board.Term() != "" {
			m.clearSearch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.SelectedRow()
		if !ok {
			return m, nil
		}
		if m.confirmDelete {
			m.pending = row
			m.fb.confirm = false
			m.confirmForm = m.buildConfirmForm(row)
			return m, m.confirmForm.Init()
		}
		return m, m.deleteRow(row)
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) clearSearch() {
	m.searchInput.Reset()
	m.board.Search("")
	m.Refresh()
}

// deleteRow removes the todo from the board and reports it.
func (m *Model) deleteRow(row board.Row) tea.Cmd {
	if !m.board.Delete(row.Todo.ID) {
		return nil
	}
	m.Refresh()
	msg := RowDeletedMsg{ID: row.Todo.ID, Title: row.Todo.Title}
	return func() tea.Msg { return msg }
}

func (m Model) buildConfirmForm(row board.Row) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete todo #%d?", row.Todo.ID)).
				Description(row.Todo.Title).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		return m.resolveConfirm(false)
	}

	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		return m.resolveConfirm(m.fb.confirm)
	case huh.StateAborted:
		return m.resolveConfirm(false)
	}
	return m, cmd
}

// resolveConfirm closes the confirmation form and deletes the pending
// row if the user accepted.
func (m Model) resolveConfirm(accepted bool) (Model, tea.Cmd) {
	row := m.pending
	m.confirmForm = nil
	m.pending = board.Row{}
	if !accepted {
		return m, nil
	}
	return m, m.deleteRow(row)
}

// Refresh rebuilds the list items from the board, keeping the cursor
// in range.
func (m *Model) Refresh() {
	rows := m.board.Rows()
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = RowItem{Row: row}
	}

	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() (board.Row, bool) {
	item, ok := m.list.SelectedItem().(RowItem)
	if !ok {
		return board.Row{}, false
	}
	return item.Row, true
}

// Searching reports whether the search bar has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Confirming reports whether a delete confirmation is open.
func (m Model) Confirming() bool {
	return m.confirmForm != nil
}

// SetLoading controls the empty-state message while data is in flight.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// View renders the table view.
func (m Model) View() string {
	if m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}

	var parts []string
	if m.searchMode || m.board.Term() != "" {
		parts = append(parts, m.renderSearchBar())
	}

	if len(m.list.Items()) == 0 {
		parts = append(parts, m.renderEmptyState())
	} else {
		parts = append(parts, m.delegate.renderColumnHeader(), m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderSearchBar() string {
	style := lipgloss.NewStyle().Foreground(theme.ColorWhite).Padding(0, 1)
	if m.searchMode {
		return style.Render(m.searchInput.View())
	}
	// Search accepted: show the active term without the cursor.
	return style.Render(m.searchInput.Prompt + theme.HighlightStyle.Render(m.board.Term()))
}

// renderEmptyState shows guidance text when there are no rows to show.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(listHeight(m.height)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case m.loading:
		return style.Render("Loading todos...")
	case m.board.Term() != "":
		return style.Render(fmt.Sprintf("No todos match %q.\nPress esc to clear the search.", m.board.Term()))
	default:
		return style.Render("No todos.\n\nPress r to reload.")
	}
}

// SetSize updates the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.delegate = newRowDelegate(width)
	m.list.SetDelegate(m.delegate)
	m.list.SetSize(width, listHeight(height))
	m.searchInput.Width = width - 4
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
