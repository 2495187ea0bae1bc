// Package report renders the board as a static table for the
// non-interactive list command.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/theme"
)

// Render writes rows as a bordered table followed by a summary line.
// A positive width caps the table width.
func Render(w io.Writer, rows []board.Row, stats board.Stats, width int) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("ID", "User", "Title", "Completed").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(theme.ColorGray)
			}
			return style
		})
	if width > 0 {
		t = t.Width(width)
	}

	for _, row := range rows {
		t.Row(
			strconv.Itoa(row.Todo.ID),
			row.UserName,
			board.RenderSegments(row.Segments, theme.Highlight),
			theme.CompletedStyle(row.Todo.Completed).Render(row.CompletedLabel),
		)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, theme.DimmedStyle.Render(summary(stats)))
	return err
}

func summary(s board.Stats) string {
	return fmt.Sprintf("%d of %d todos shown, %d completed, %d users", s.Shown, s.Total, s.Completed, s.Users)
}
