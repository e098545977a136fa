package results

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/ui/styles"
)

// ChartView renders one numeric column of a result set coordinate as
// an ascii line chart.
type ChartView struct {
	width  int
	height int

	runner   *query.Runner
	resultID int
	batchID  int
	hasCoord bool
	st       *ChartState
}

// NewChartView creates an empty chart view.
func NewChartView() *ChartView {
	return &ChartView{}
}

// SetRunner rebinds the chart to a new query runner and drops the
// stale coordinate.
func (c *ChartView) SetRunner(r *query.Runner) {
	c.runner = r
	c.hasCoord = false
}

// SetCoordinate selects the result set to chart.
func (c *ChartView) SetCoordinate(resultID, batchID int) {
	c.resultID = resultID
	c.batchID = batchID
	c.hasCoord = true
}

// Clear drops the charted coordinate without destroying the view.
func (c *ChartView) Clear() { c.hasCoord = false }

// SetState attaches the nested chart state.
func (c *ChartView) SetState(st *ChartState) { c.st = st }

// State returns the attached nested state.
func (c *ChartView) State() *ChartState { return c.st }

// NextColumn cycles the charted column through the result's columns.
func (c *ChartView) NextColumn() {
	rs := c.resultSet()
	if rs == nil || c.st == nil || len(rs.Columns) == 0 {
		return
	}
	c.st.Column = (c.st.Column + 1) % len(rs.Columns)
}

// SetSize sets the view dimensions.
func (c *ChartView) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// View renders the chart.
func (c *ChartView) View() string {
	rs := c.resultSet()
	if rs == nil {
		return styles.InfoStyle.Render("No chart data")
	}

	col := c.chartColumn(rs)
	if col < 0 {
		return styles.InfoStyle.Render("No numeric column to chart")
	}
	vals := rs.NumericColumn(col)
	if len(vals) < 2 {
		return styles.InfoStyle.Render("Not enough data points to chart")
	}

	height := c.height - 2 // title line + caption
	if height < 3 {
		height = 3
	}
	width := c.width - 12 // asciigraph y-axis labels
	if width < 20 {
		width = 20
	}
	if len(vals) > width {
		vals = vals[len(vals)-width:]
	}

	graph := asciigraph.Plot(vals,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green),
	)

	title := styles.TitleStyle.Render(
		fmt.Sprintf("%s (batch %d)", rs.Columns[col].Name, c.batchID))
	hint := styles.HintStyle.Render("[n]next column")
	return lipgloss.JoinVertical(lipgloss.Left, title, graph, hint)
}

// chartColumn returns the column to chart: the state's pick when it is
// numeric, else the first numeric column.
func (c *ChartView) chartColumn(rs *query.ResultSet) int {
	if c.st != nil && len(rs.NumericColumn(c.st.Column)) > 0 {
		return c.st.Column
	}
	return rs.FirstNumericColumn()
}

func (c *ChartView) resultSet() *query.ResultSet {
	if c.runner == nil || !c.hasCoord {
		return nil
	}
	return c.runner.Result(c.resultID, c.batchID)
}

// ChartTab adapts a ChartView as a tab entry.
type ChartTab struct {
	view *ChartView
}

// NewChartTab wraps a fresh ChartView.
func NewChartTab() *ChartTab {
	return &ChartTab{view: NewChartView()}
}

// ID implements components.Tab.
func (t *ChartTab) ID() string { return TabChart }

// Title implements components.Tab.
func (t *ChartTab) Title() string { return "Chart" }

// ChartView returns the underlying chart view.
func (t *ChartTab) ChartView() *ChartView { return t.view }

// SetRunner forwards the runner assignment to the view.
func (t *ChartTab) SetRunner(r *query.Runner) { t.view.SetRunner(r) }

// Clear forwards to the view.
func (t *ChartTab) Clear() { t.view.Clear() }

// SetSize implements components.Tab.
func (t *ChartTab) SetSize(width, height int) { t.view.SetSize(width, height) }

// View implements components.Tab.
func (t *ChartTab) View() string { return t.view.View() }
