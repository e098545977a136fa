package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/ui/styles"
)

// Panel ids inside the results split.
const (
	GridPanelID     = "grid"
	MessagesPanelID = "messages"
)

// GridPanel renders a result set as a column-aligned table with row
// selection and scrolling. It reports its renderable content size so
// the owning view can auto-show or auto-hide it.
type GridPanel struct {
	width  int
	height int

	result     *query.ResultSet
	runner     *query.Runner
	hideHeader bool
	st         *GridState

	// onChange is the combined change notification consumed by
	// ResultsView; fired whenever renderable content changes.
	onChange func()
}

// NewGridPanel creates an empty grid panel.
func NewGridPanel() *GridPanel {
	return &GridPanel{}
}

// ID implements components.Panel.
func (g *GridPanel) ID() string { return GridPanelID }

// OnChange registers the change notification callback.
func (g *GridPanel) OnChange(fn func()) { g.onChange = fn }

// RowCount returns the grid's renderable content size: the number of
// rows in the current result set.
func (g *GridPanel) RowCount() int { return g.result.RowCount() }

// SetResult replaces the displayed result set.
func (g *GridPanel) SetResult(rs *query.ResultSet) {
	g.result = rs
	if g.st != nil {
		g.st.Selected = 0
		g.st.Scroll = 0
	}
	g.notify()
}

// Clear drops the displayed result without destroying the panel.
func (g *GridPanel) Clear() {
	g.result = nil
	g.notify()
}

// SetRunner rebinds the panel to a new query runner.
func (g *GridPanel) SetRunner(r *query.Runner) { g.runner = r }

// HideHeader suppresses the column header chrome.
func (g *GridPanel) HideHeader() { g.hideHeader = true }

// SetState attaches the nested grid state.
func (g *GridPanel) SetState(st *GridState) { g.st = st }

// State returns the attached nested state.
func (g *GridPanel) State() *GridState { return g.st }

// SetSize implements components.Panel.
func (g *GridPanel) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.clampScroll()
}

// Width returns the panel's current width.
func (g *GridPanel) Width() int { return g.width }

// Height returns the panel's current height.
func (g *GridPanel) Height() int { return g.height }

// MoveSelection moves the selected row by delta, scrolling as needed.
func (g *GridPanel) MoveSelection(delta int) {
	if g.result.RowCount() == 0 || g.st == nil {
		return
	}
	g.st.Selected += delta
	if g.st.Selected < 0 {
		g.st.Selected = 0
	}
	if g.st.Selected >= g.result.RowCount() {
		g.st.Selected = g.result.RowCount() - 1
	}
	g.ensureVisible()
}

// SelectedRow returns the values of the selected row, or nil.
func (g *GridPanel) SelectedRow() []string {
	if g.st == nil || g.result.RowCount() == 0 {
		return nil
	}
	if g.st.Selected < 0 || g.st.Selected >= len(g.result.Rows) {
		return nil
	}
	return g.result.Rows[g.st.Selected]
}

// View renders the grid.
func (g *GridPanel) View() string {
	if g.height <= 0 {
		return ""
	}
	if g.result.RowCount() == 0 {
		return styles.InfoStyle.Render("No results")
	}

	var lines []string
	if !g.hideHeader {
		lines = append(lines, styles.TableHeaderStyle.Render(g.renderHeader()))
		lines = append(lines, styles.SashStyle.Render(strings.Repeat("─", max(g.width, 0))))
	}

	scroll, selected := 0, -1
	if g.st != nil {
		scroll, selected = g.st.Scroll, g.st.Selected
	}
	body := g.bodyHeight()
	end := min(scroll+body, len(g.result.Rows))
	for i := scroll; i < end; i++ {
		line := g.renderRow(g.result.Rows[i])
		if i == selected {
			line = styles.TableSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, styles.HintStyle.Render(
		fmt.Sprintf("%s rows", humanize.Comma(int64(g.result.RowCount())))))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (g *GridPanel) renderHeader() string {
	cells := make([]string, len(g.result.Columns))
	for i, col := range g.result.Columns {
		cells[i] = pad(col.Name, col.Width)
	}
	return strings.Join(cells, "  ")
}

func (g *GridPanel) renderRow(row []string) string {
	cells := make([]string, len(g.result.Columns))
	for i := range g.result.Columns {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		cells[i] = pad(val, g.result.Columns[i].Width)
	}
	return strings.Join(cells, "  ")
}

// bodyHeight returns rows available for data after header and footer.
func (g *GridPanel) bodyHeight() int {
	h := g.height - 1 // footer
	if !g.hideHeader {
		h -= 2 // header + separator
	}
	return max(h, 1)
}

func (g *GridPanel) ensureVisible() {
	if g.st == nil {
		return
	}
	body := g.bodyHeight()
	if g.st.Selected < g.st.Scroll {
		g.st.Scroll = g.st.Selected
	} else if g.st.Selected >= g.st.Scroll+body {
		g.st.Scroll = g.st.Selected - body + 1
	}
	g.clampScroll()
}

func (g *GridPanel) clampScroll() {
	if g.st == nil {
		return
	}
	maxScroll := g.result.RowCount() - g.bodyHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if g.st.Scroll > maxScroll {
		g.st.Scroll = maxScroll
	}
	if g.st.Scroll < 0 {
		g.st.Scroll = 0
	}
}

func (g *GridPanel) notify() {
	if g.onChange != nil {
		g.onChange()
	}
}

// pad truncates or right-pads s to width display cells.
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
