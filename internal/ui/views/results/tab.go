package results

import "github.com/siftdb/sift/internal/query"

// Tab identifiers inside the query results container.
const (
	TabResults = "results"
	TabChart   = "chart"
	TabPlan    = "plan"
)

// ResultsTab adapts a ResultsView as a tab entry for the outer tab
// container.
type ResultsTab struct {
	view *ResultsView
}

// NewResultsTab wraps a fresh ResultsView.
func NewResultsTab() *ResultsTab {
	return &ResultsTab{view: NewResultsView()}
}

// ID implements components.Tab.
func (t *ResultsTab) ID() string { return TabResults }

// Title implements components.Tab.
func (t *ResultsTab) Title() string { return "Results" }

// ResultsView returns the underlying results view.
func (t *ResultsTab) ResultsView() *ResultsView { return t.view }

// SetRunner forwards the runner assignment to the view.
func (t *ResultsTab) SetRunner(r *query.Runner) { t.view.SetRunner(r) }

// Clear forwards to the view.
func (t *ResultsTab) Clear() { t.view.Clear() }

// SetSize forwards the dimension to the view's layout.
func (t *ResultsTab) SetSize(width, height int) { t.view.Layout(width, height) }

// View implements components.Tab.
func (t *ResultsTab) View() string { return t.view.View() }
