package styles

import "github.com/charmbracelet/lipgloss"

// Common border styles
var (
	// BorderNormal is the standard border for most UI elements
	BorderNormal = lipgloss.NormalBorder()

	// BorderRounded is used for the prompt and dialogs
	BorderRounded = lipgloss.RoundedBorder()
)

// Tab bar styles
var (
	// TabActiveStyle is for the active tab label
	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorTabActiveBg).
			Padding(0, 2)

	// TabInactiveStyle is for inactive tab labels
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTabInactive).
				Padding(0, 2)

	// TabSeparatorStyle is for the divider between tab labels
	TabSeparatorStyle = lipgloss.NewStyle().
				Foreground(ColorSash)
)

// Table styles
var (
	// TableHeaderStyle is for grid column headers
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	// TableSelectedStyle is for the selected grid row
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg)
)

// Sash style for split panel dividers
var SashStyle = lipgloss.NewStyle().Foreground(ColorSash)

// Message styles
var (
	// SuccessStyle is for success messages
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// ErrorStyle is for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	// InfoStyle is for informational messages
	InfoStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// TitleStyle is for view titles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	// HintStyle is for keyboard hints
	HintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PromptStyle wraps the SQL input line
var PromptStyle = lipgloss.NewStyle().
	Border(BorderRounded).
	BorderForeground(ColorBorder).
	Padding(0, 1)
