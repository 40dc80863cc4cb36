// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines         = 2
	SidebarTitleLines   = 2
	SidebarAccountLines = 2
	PaginationLines     = 2
	ErrorPanelLines     = 4

	SidebarMinWidth         = 18
	SidebarMaxWidth         = 28
	SidebarRightBorderWidth = 1
	HeaderWidthPadding      = 3

	ItemRightPadding  = 1
	ItemSafetyPadding = 1

	ModalWidth = 52
)
