package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the application
type KeyMap struct {
	Quit        key.Binding
	ToggleFocus key.Binding
	Run         key.Binding

	// Results pane
	NextTab     key.Binding
	PrevTab     key.Binding
	ShowChart   key.Binding
	HideChart   key.Binding
	HidePlan    key.Binding
	GrowGrid    key.Binding
	ShrinkGrid  key.Binding
	Up          key.Binding
	Down        key.Binding
	NextColumn  key.Binding
	Yank        key.Binding
}

// DefaultKeyMap returns the default keyboard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Run: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "run query"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous tab"),
		),
		ShowChart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart result"),
		),
		HideChart: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "hide chart"),
		),
		HidePlan: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "hide plan"),
		),
		GrowGrid: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "grow grid"),
		),
		ShrinkGrid: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink grid"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j", "down"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next chart column"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy selected row"),
		),
	}
}
