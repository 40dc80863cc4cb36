package update

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/storyterm/internal/presentation/tui/metrics"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
)

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	sidebarListHeight int
	mainListHeight    int
	detailHeight      int
}

// UpdateListSizes recomputes list and viewport sizes from the terminal size.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.NavList.SetSize(layout.sidebarWidth, layout.sidebarListHeight)
	s.StoryList.SetSize(layout.mainWidth, layout.mainListHeight)
	s.Viewport.Width = max(layout.mainWidth-1, 1)
	s.Viewport.Height = layout.detailHeight
}

// SidebarWidth returns the sidebar width for a terminal of the given width.
func SidebarWidth(width int) int {
	return min(max(width/4, metrics.SidebarMinWidth), metrics.SidebarMaxWidth)
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	availableHeight := max(s.Height-footerHeight(s), 1)

	sidebarWidth := SidebarWidth(s.Width)
	mainWidth := max(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)

	mainListHeight := availableHeight - metrics.HeaderLines - metrics.PaginationLines
	if s.Feed.LastError != nil {
		mainListHeight -= metrics.ErrorPanelLines
	}

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		sidebarListHeight: max(availableHeight-metrics.SidebarTitleLines-metrics.SidebarAccountLines, 1),
		mainListHeight:    max(mainListHeight, 1),
		detailHeight:      max(availableHeight-metrics.HeaderLines, 1),
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	helpText := s.Help.ShortHelpView(s.Keys.ShortHelp())
	return lipgloss.Height(state.FooterText(s.Screen, s.Loading(), s.StatusMessage, helpText))
}
