// Package styles provides centralized Lipgloss styling for the sift UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette for the sift UI
var (
	// UI element colors
	ColorBorder  = lipgloss.Color("240") // Gray - all borders
	ColorAccent  = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted   = lipgloss.Color("8")   // Dark gray - secondary text
	ColorSuccess = lipgloss.Color("10")  // Green - success messages
	ColorError   = lipgloss.Color("9")   // Red - error messages
	ColorWarning = lipgloss.Color("11")  // Yellow - warnings

	// Selection colors
	ColorSelectedFg = lipgloss.Color("229") // Light yellow text
	ColorSelectedBg = lipgloss.Color("57")  // Purple background

	// Tab bar and sash colors
	ColorTabActiveBg = lipgloss.Color("236") // Dark gray behind the active tab
	ColorTabInactive = lipgloss.Color("245") // Light gray inactive tab labels
	ColorSash        = lipgloss.Color("238") // Divider between split panels
)
