package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/genwaves/internal/ui/playerbar"
)

const (
	headerHeight = 1
	statusHeight = 1
	listTop      = headerHeight
)

// helpHeight returns the rows taken by the help view.
func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	return lipgloss.Height(m.help.View(m.helpMap))
}

// listHeight returns the rows available to the track tiles.
func (m Model) listHeight() int {
	return max(m.Height-headerHeight-playerbar.Height-statusHeight-m.helpHeight(), 0)
}

// playerTop returns the first row of the player bar.
func (m Model) playerTop() int {
	return listTop + m.listHeight()
}

// ResizeComponents propagates the window size to child components.
func (m *Model) ResizeComponents() {
	m.help.Width = m.Width
	m.list.SetSize(m.Width, m.listHeight())
}

// buttonRegion returns the columns of the generate button on the header row.
func (m Model) buttonRegion() (x, w int) {
	w = lipgloss.Width(m.renderButton())
	return max(m.Width-w, 0), w
}
