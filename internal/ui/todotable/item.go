package todotable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/theme"
)

// Fixed column widths; the title column takes what is left.
const (
	idWidth        = 4
	userWidth      = 20
	completedWidth = 9
	minTitleWidth  = 10
	columnGap      = "  "
	rowIndent      = 2
)

// RowItem wraps a board.Row so it can be used in a bubbles/list.
type RowItem struct {
	Row board.Row
}

// FilterValue returns the plain title; list filtering is disabled and
// searching goes through the board instead.
func (i RowItem) FilterValue() string { return i.Row.Todo.Title }

// columns holds the computed width of each column for a given
// terminal width.
type columns struct {
	id, user, title, completed int
}

func layoutColumns(width int) columns {
	c := columns{id: idWidth, user: userWidth, completed: completedWidth}
	c.title = width - rowIndent - c.id - c.user - c.completed - 3*len(columnGap)
	if c.title < minTitleWidth {
		// Give up user-column space before squeezing the title further.
		c.user -= minTitleWidth - c.title
		if c.user < 8 {
			c.user = 8
		}
		c.title = minTitleWidth
	}
	return c
}

// line joins cells padded to their column widths.
func (c columns) line(id, user, title, completed string) string {
	return strings.Join([]string{
		cell(id, c.id),
		cell(user, c.user),
		cell(title, c.title),
		cell(completed, c.completed),
	}, columnGap)
}

// cell truncates s (which may carry ANSI styling) to width and pads it
// with spaces so columns line up.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func renderUser(name string) string {
	if name == model.UnknownUserName {
		return theme.UnknownUserStyle.Render(name)
	}
	return name
}

// RowDelegate implements list.ItemDelegate for rendering table rows.
type RowDelegate struct {
	cols columns
}

func newRowDelegate(width int) RowDelegate {
	return RowDelegate{cols: layoutColumns(width)}
}

// Height returns the number of lines each row takes.
func (d RowDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between rows.
func (d RowDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d RowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single table row.
func (d RowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(RowItem)
	if !ok {
		return
	}
	row := ri.Row

	line := d.cols.line(
		strconv.Itoa(row.Todo.ID),
		renderUser(row.UserName),
		board.RenderSegments(row.Segments, theme.Highlight),
		theme.CompletedStyle(row.Todo.Completed).Render(row.CompletedLabel),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// renderColumnHeader draws the column titles aligned with the rows.
func (d RowDelegate) renderColumnHeader() string {
	return theme.ListItemStyle.Render(
		theme.ColumnHeaderStyle.Render(d.cols.line("ID", "User", "Title", "Completed")),
	)
}
