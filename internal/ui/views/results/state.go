// Package results provides the query results view stack: a tabbed
// container holding the results grid/messages split, the chart view,
// and the query plan view, wired to query lifecycle events.
package results

// ViewState is the persisted UI configuration for one query results
// view. It is created by the host, injected via SetState, and mutated
// in place as the user resizes panels or switches tabs. The host
// serializes it as an opaque blob; no wire format is defined here.
//
// Single writer per field: ActiveTab and VisibleTabs are written by
// QueryResultsView, GridPanelSize and MessagePanelSize by ResultsView,
// and each nested state by its own sub-view.
type ViewState struct {
	ActiveTab        string   `json:"activeTab,omitempty"`
	VisibleTabs      []string `json:"visibleTabs,omitempty"`
	GridPanelSize    int      `json:"gridPanelSize,omitempty"`
	MessagePanelSize int      `json:"messagePanelSize,omitempty"`

	Grid     GridState     `json:"grid"`
	Messages MessagesState `json:"messages"`
	Chart    ChartState    `json:"chart"`
	Plan     PlanState     `json:"plan"`
}

// GridState is the grid sub-view's nested state.
type GridState struct {
	Selected int `json:"selected"`
	Scroll   int `json:"scroll"`
}

// MessagesState is the messages sub-view's nested state.
type MessagesState struct {
	Scroll int `json:"scroll"`
}

// ChartState is the chart sub-view's nested state.
type ChartState struct {
	Column int `json:"column"`
}

// PlanState is the plan sub-view's nested state.
type PlanState struct {
	Scroll int `json:"scroll"`
}

// HasVisibleTab reports whether id is in the visible tabs set.
func (s *ViewState) HasVisibleTab(id string) bool {
	if s == nil {
		return false
	}
	for _, t := range s.VisibleTabs {
		if t == id {
			return true
		}
	}
	return false
}

// MarkVisible adds id to the visible tabs set.
func (s *ViewState) MarkVisible(id string) {
	if s == nil || s.HasVisibleTab(id) {
		return
	}
	s.VisibleTabs = append(s.VisibleTabs, id)
}

// UnmarkVisible removes id from the visible tabs set.
func (s *ViewState) UnmarkVisible(id string) {
	if s == nil {
		return
	}
	for i, t := range s.VisibleTabs {
		if t == id {
			s.VisibleTabs = append(s.VisibleTabs[:i], s.VisibleTabs[i+1:]...)
			return
		}
	}
}

// ClearVisible empties the visible tabs set.
func (s *ViewState) ClearVisible() {
	if s == nil {
		return
	}
	s.VisibleTabs = nil
}
