// Package components provides reusable UI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/siftdb/sift/internal/ui/styles"
)

// Tab is a named view hosted by a TabContainer.
type Tab interface {
	ID() string
	Title() string
	SetSize(width, height int)
	View() string
}

// TabContainer holds an ordered collection of named tabs with one
// active at a time. Size changes are forwarded to the active tab only;
// newly shown tabs are sized on activation.
type TabContainer struct {
	tabs     []Tab
	activeID string
	width    int
	height   int

	// OnActiveChanged is invoked whenever the active tab changes,
	// including activation of the first added tab.
	OnActiveChanged func(id string)
}

// NewTabContainer creates an empty tab container.
func NewTabContainer() *TabContainer {
	return &TabContainer{}
}

// Add appends a tab. Adding an id already present is a no-op.
// The first tab added becomes active.
func (c *TabContainer) Add(t Tab) {
	c.AddAt(len(c.tabs), t)
}

// AddAt inserts a tab at the given index without forcing activation,
// except when the container was empty. Out-of-range indices clamp.
func (c *TabContainer) AddAt(index int, t Tab) {
	if c.Contains(t.ID()) {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(c.tabs) {
		index = len(c.tabs)
	}
	c.tabs = append(c.tabs, nil)
	copy(c.tabs[index+1:], c.tabs[index:])
	c.tabs[index] = t

	if c.activeID == "" {
		c.activate(t.ID())
	}
}

// Remove drops the tab with the given id. Removing an absent id is a
// no-op. Removing the active tab activates the first remaining tab.
func (c *TabContainer) Remove(id string) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.tabs = append(c.tabs[:idx], c.tabs[idx+1:]...)
	if c.activeID == id {
		if len(c.tabs) > 0 {
			c.activate(c.tabs[0].ID())
		} else {
			c.activeID = ""
		}
	}
}

// Show activates the tab with the given id. Showing an absent id is a
// no-op; showing the already-active tab does not re-fire the callback.
func (c *TabContainer) Show(id string) {
	if id == c.activeID || !c.Contains(id) {
		return
	}
	c.activate(id)
}

// Contains reports whether a tab with the given id is present.
func (c *TabContainer) Contains(id string) bool {
	return c.indexOf(id) >= 0
}

// Active returns the active tab, or nil if the container is empty.
func (c *TabContainer) Active() Tab {
	if idx := c.indexOf(c.activeID); idx >= 0 {
		return c.tabs[idx]
	}
	return nil
}

// ActiveID returns the id of the active tab, or "".
func (c *TabContainer) ActiveID() string { return c.activeID }

// Tabs returns the tabs in display order.
func (c *TabContainer) Tabs() []Tab {
	out := make([]Tab, len(c.tabs))
	copy(out, c.tabs)
	return out
}

// Len returns the number of tabs.
func (c *TabContainer) Len() int { return len(c.tabs) }

// SetSize sets the container dimensions and forwards the body size to
// the active tab. One line is reserved for the tab bar.
func (c *TabContainer) SetSize(width, height int) {
	c.width = width
	c.height = height
	if t := c.Active(); t != nil {
		t.SetSize(width, c.bodyHeight())
	}
}

// View renders the tab bar and the active tab's body.
func (c *TabContainer) View() string {
	if len(c.tabs) == 0 {
		return ""
	}
	var body string
	if t := c.Active(); t != nil {
		body = t.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.tabBar(), body)
}

// tabBar renders the tab labels with the active tab highlighted.
func (c *TabContainer) tabBar() string {
	var parts []string
	for i, t := range c.tabs {
		if t.ID() == c.activeID {
			parts = append(parts, styles.TabActiveStyle.Render(t.Title()))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(t.Title()))
		}
		if i < len(c.tabs)-1 {
			parts = append(parts, styles.TabSeparatorStyle.Render("│"))
		}
	}
	return strings.Join(parts, "")
}

func (c *TabContainer) activate(id string) {
	c.activeID = id
	if t := c.Active(); t != nil && c.width > 0 {
		t.SetSize(c.width, c.bodyHeight())
	}
	if c.OnActiveChanged != nil {
		c.OnActiveChanged(id)
	}
}

func (c *TabContainer) bodyHeight() int {
	h := c.height - 1
	if h < 0 {
		h = 0
	}
	return h
}

func (c *TabContainer) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range c.tabs {
		if t.ID() == id {
			return i
		}
	}
	return -1
}
