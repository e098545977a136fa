package results

import (
	"math"

	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/ui/components"
)

const (
	// gridHeightRatio sizes a newly shown grid when no recorded size
	// exists but the container height is known.
	gridHeightRatio = 0.7

	// gridSizeFallback sizes a newly shown grid before any height is
	// known; a deferred resize is owed once one is.
	gridSizeFallback = 200
)

// ResultsView composes the grid and messages panels in a vertical
// split. Messages is always shown; the grid is auto-shown only while
// it has renderable content, sized from recorded state, a proportion
// of the container height, or a fixed fallback, in that order.
type ResultsView struct {
	split    *components.SplitPanel
	grid     *GridPanel
	messages *MessagesPanel

	state  *ViewState
	runner *query.Runner

	lastWidth  int
	lastHeight int

	gridVisible bool
	// autoSize keeps reapplying the computed grid size on content
	// changes until the user drags the sash once.
	autoSize bool
	// deferredResize is owed when the grid was shown with the fixed
	// fallback size before any real height was known.
	deferredResize bool
}

// NewResultsView creates the split with the messages panel added and
// the grid created but hidden.
func NewResultsView() *ResultsView {
	v := &ResultsView{
		split:    components.NewSplitPanel(),
		grid:     NewGridPanel(),
		messages: NewMessagesPanel(),
		autoSize: true,
	}
	v.grid.OnChange(v.onContentChanged)
	v.messages.OnChange(v.onContentChanged)
	v.split.OnSashDrag = v.onSashDrag
	v.split.AddAt(0, v.messages, 0)
	return v
}

// Grid returns the grid sub-panel.
func (v *ResultsView) Grid() *GridPanel { return v.grid }

// Messages returns the messages sub-panel.
func (v *ResultsView) Messages() *MessagesPanel { return v.messages }

// GridVisible reports whether the grid is currently shown.
func (v *ResultsView) GridVisible() bool { return v.gridVisible }

// GridSize returns the grid panel's current size in the split.
func (v *ResultsView) GridSize() int { return v.split.Size(GridPanelID) }

// onContentChanged is the combined change notification from the grid
// and messages panels. Grid visibility is a pure function of the
// grid's renderable content size.
func (v *ResultsView) onContentChanged() {
	rows := v.grid.RowCount()
	switch {
	case rows == 0 && v.gridVisible:
		v.gridVisible = false
		v.split.Remove(GridPanelID)
	case rows > 0 && !v.gridVisible:
		v.gridVisible = true
		v.split.AddAt(0, v.grid, v.computeGridSize())
	}
	// Reapply the computed size on every change until the user drags
	// the sash once.
	if v.gridVisible && v.autoSize {
		v.split.Resize(GridPanelID, v.computeGridSize())
	}
}

// computeGridSize picks the grid size by priority: recorded state,
// proportion of the last known height, fixed fallback.
func (v *ResultsView) computeGridSize() int {
	if v.state != nil && v.state.GridPanelSize > 0 {
		return v.state.GridPanelSize
	}
	if v.lastHeight > 0 {
		return int(math.Round(gridHeightRatio * float64(v.lastHeight)))
	}
	v.deferredResize = true
	return gridSizeFallback
}

// onSashDrag records expanded panel sizes into state and stops the
// automatic sizing so it cannot fight the user's choice.
func (v *ResultsView) onSashDrag(sizes map[string]int) {
	v.autoSize = false
	if v.state == nil {
		return
	}
	if sz, ok := sizes[GridPanelID]; ok && sz > 0 && v.gridVisible {
		v.state.GridPanelSize = sz
	}
	if sz, ok := sizes[MessagesPanelID]; ok && sz > 0 {
		v.state.MessagePanelSize = sz
	}
}

// DragSash forwards a user resize of the grid/messages boundary.
func (v *ResultsView) DragSash(delta int) {
	if !v.gridVisible {
		return
	}
	v.split.DragSash(0, delta)
}

// Layout forwards the dimension to the split. When the height is
// unchanged the split skips child layout, so the grid is re-laid out
// explicitly. Applies any owed deferred resize once a height is known.
func (v *ResultsView) Layout(width, height int) {
	sameHeight := height == v.lastHeight
	v.split.SetSize(width, height)
	if sameHeight && v.gridVisible {
		v.grid.SetSize(width, v.split.Size(GridPanelID))
	}
	v.lastWidth = width
	v.lastHeight = height

	if v.deferredResize && height > 0 && v.gridVisible {
		v.deferredResize = false
		v.split.Resize(GridPanelID, v.computeGridSize())
	}
}

// View renders the split.
func (v *ResultsView) View() string { return v.split.View() }

// Clear empties both sub-panels without destroying them.
func (v *ResultsView) Clear() {
	v.grid.Clear()
	v.messages.Clear()
}

// SetRunner propagates the new runner to both sub-panels.
func (v *ResultsView) SetRunner(r *query.Runner) {
	v.runner = r
	v.grid.SetRunner(r)
	v.messages.SetRunner(r)
}

// HideResultHeader suppresses the grid's header chrome.
func (v *ResultsView) HideResultHeader() { v.grid.HideHeader() }

// SetState stores the view state and propagates the nested states to
// the sub-panels.
func (v *ResultsView) SetState(s *ViewState) {
	v.state = s
	if s != nil {
		v.grid.SetState(&s.Grid)
		v.messages.SetState(&s.Messages)
	} else {
		v.grid.SetState(nil)
		v.messages.SetState(nil)
	}
}

// State returns the stored view state reference.
func (v *ResultsView) State() *ViewState { return v.state }
