package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/genwaves/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
	filledBlock = "━"
	emptyBlock  = "─"
)

var (
	filledStyle    = lipgloss.NewStyle().Foreground(styles.T().Primary)
	draggingStyle  = lipgloss.NewStyle().Foreground(styles.T().Warning)
	emptyStyle     = lipgloss.NewStyle().Foreground(styles.T().FgSubtle)
	indicatorStyle = lipgloss.NewStyle().Foreground(styles.T().FgMuted)
	repeatStyle    = lipgloss.NewStyle().Foreground(styles.T().Primary)
)
