package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/keys"
	"github.com/nhle/todoboard/internal/source"
	appsync "github.com/nhle/todoboard/internal/sync"
	"github.com/nhle/todoboard/internal/ui"
	helpview "github.com/nhle/todoboard/internal/ui/help"
	"github.com/nhle/todoboard/internal/ui/todotable"
)

// refreshTickMsg fires when the periodic refresh interval elapses.
type refreshTickMsg struct{}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewTable ViewState = iota
	ViewHelp
)

// Options tunes the root model. The zero value loads once, deletes
// without confirmation and discards logs.
type Options struct {
	ConfirmDelete   bool
	RefreshInterval time.Duration
	LoadTimeout     time.Duration
	Logger          *zap.Logger
}

// Model is the root Bubble Tea model. It owns the board, starts loads
// through the loader and routes input between the table and the help
// overlay.
type Model struct {
	currentView     ViewState
	layout          ui.Layout
	board           *board.Board
	loader          *appsync.Loader
	keys            *keys.KeyMap
	table           todotable.Model
	helpView        helpview.Model
	logger          *zap.Logger
	refreshInterval time.Duration
	ready           bool
}

// New creates the root model reading from src.
func New(src source.Source, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	b := board.New()

	table := todotable.New(b, k, opts.ConfirmDelete, 80, 24)
	table.SetLoading(true)

	return Model{
		currentView:     ViewTable,
		board:           b,
		loader:          appsync.New(src, opts.LoadTimeout, logger),
		keys:            k,
		table:           table,
		helpView:        helpview.New(k, 80, 24),
		logger:          logger,
		refreshInterval: opts.RefreshInterval,
	}
}

// Init starts the first load of both collections.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loader.Load(), m.scheduleRefresh())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.table.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward so an open confirmation form can recalculate its layout.
		return m.updateActiveView(msg)

	case appsync.TodosLoadedMsg:
		if msg.Generation != m.loader.Generation() {
			m.logger.Debug("dropping superseded todos", zap.Uint64("generation", msg.Generation))
			return m, nil
		}
		m.table.SetLoading(false)
		if msg.Err == nil {
			m.board.SetTodos(msg.Todos)
			m.table.Refresh()
		}
		return m, nil

	case appsync.UsersLoadedMsg:
		if msg.Generation != m.loader.Generation() {
			m.logger.Debug("dropping superseded users", zap.Uint64("generation", msg.Generation))
			return m, nil
		}
		if msg.Err == nil {
			m.board.SetUsers(msg.Users)
			m.table.Refresh()
		}
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.refresh(), m.scheduleRefresh())

	case todotable.RowDeletedMsg:
		m.logger.Info("todo removed locally",
			zap.Int("id", msg.ID),
			zap.String("title", msg.Title),
		)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Text entry and confirmation own the keyboard.
		if m.currentView == ViewTable && (m.table.Searching() || m.table.Confirming()) {
			return m.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = ViewTable
				return m, nil
			}
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp {
				m.currentView = ViewTable
				return m, nil
			}

		case key.Matches(msg, m.keys.Refresh):
			if m.currentView == ViewTable {
				return m, m.refresh()
			}
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.currentView == ViewTable {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// refresh reloads both collections. Rows deleted locally come back and
// the current search term is applied to the new data.
func (m *Model) refresh() tea.Cmd {
	m.logger.Info("refreshing", zap.Uint64("generation", m.loader.Generation()+1))
	m.table.SetLoading(len(m.board.Todos()) == 0)
	return m.loader.Load()
}

func (m Model) scheduleRefresh() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Todos", m.syncStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	if m.currentView == ViewHelp {
		return m.helpView.View()
	}
	return m.table.View()
}

// syncStatus summarizes row counts and in-flight loads. Load failures
// are only logged, so they never show up here.
func (m Model) syncStatus() string {
	stats := m.board.Stats()
	counts := fmt.Sprintf("%d/%d todos · %d users", stats.Shown, stats.Total, stats.Users)
	if n := m.loader.InFlight(); n > 0 {
		return fmt.Sprintf("loading (%d) · %s", n, counts)
	}
	return counts
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch {
	case m.currentView == ViewHelp:
		return "? close help | esc back"
	case m.table.Confirming():
		return "y/n choose | enter confirm | esc cancel"
	case m.table.Searching():
		return "type to filter | enter keep | esc clear"
	case m.board.Term() != "":
		return fmt.Sprintf("search %q | esc clear | d delete | r refresh | q quit", m.board.Term())
	default:
		return "q quit | ? help | / search | d delete | r refresh"
	}
}
