package help

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/todoboard/internal/keys"
)

func TestViewListsBindings(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	for _, want := range []string{"search", "clear search", "delete", "refresh", "quit"} {
		assert.Contains(t, view, want)
	}
}

func TestSetSize(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	assert.Equal(t, 96, m.help.Width)

	m.SetSize(60, 20)
	assert.Equal(t, 60, m.width)
	assert.Equal(t, 56, m.help.Width)
	assert.NotEmpty(t, m.View())
}

func TestViewFitsNarrowPanel(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.SetSize(40, 20)

	assert.LessOrEqual(t, lipgloss.Width(m.View()), 40)
}
