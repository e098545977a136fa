package results

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siftdb/sift/internal/logger"
	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/ui/components"
)

// Input identifies the editor buffer whose query results this view
// displays. The execution service maps its URI to the active runner.
type Input struct {
	URI string
}

// QueryResultsView owns the outer tab container holding the Results,
// Chart and Query Plan tabs and reacts to query lifecycle events. The
// Results tab is always present; Chart and Plan are added on demand
// and tracked in the view state's visible tabs set.
type QueryResultsView struct {
	service *query.Service

	tabs       *components.TabContainer
	resultsTab *ResultsTab
	chartTab   *ChartTab
	planTab    *PlanTab

	state  *ViewState
	input  *Input
	runner *query.Runner

	// generation counts input bindings; async plan fetches are tagged
	// with it so results for a superseded binding are dropped.
	generation int
}

// NewQueryResultsView creates the coordinator with the Results and
// Chart tabs built eagerly and the Plan tab created but not displayed.
// Only the Results tab is pushed into the container.
func NewQueryResultsView(service *query.Service) *QueryResultsView {
	v := &QueryResultsView{
		service:    service,
		tabs:       components.NewTabContainer(),
		resultsTab: NewResultsTab(),
		chartTab:   NewChartTab(),
		planTab:    NewPlanTab(),
	}
	v.tabs.OnActiveChanged = func(id string) {
		if v.state != nil {
			v.state.ActiveTab = id
		}
	}
	v.tabs.Add(v.resultsTab)
	return v
}

// ResultsView returns the inner results view.
func (v *QueryResultsView) ResultsView() *ResultsView { return v.resultsTab.ResultsView() }

// ChartView returns the chart view.
func (v *QueryResultsView) ChartView() *ChartView { return v.chartTab.ChartView() }

// PlanView returns the plan view.
func (v *QueryResultsView) PlanView() *PlanView { return v.planTab.PlanView() }

// Tabs returns the outer tab container.
func (v *QueryResultsView) Tabs() *components.TabContainer { return v.tabs }

// Runner returns the currently bound runner, if any.
func (v *QueryResultsView) Runner() *query.Runner { return v.runner }

// SetState stores the state reference and propagates nested states to
// the results, plan and chart views.
func (v *QueryResultsView) SetState(s *ViewState) {
	v.state = s
	v.resultsTab.ResultsView().SetState(s)
	if s != nil {
		v.planTab.PlanView().SetState(&s.Plan)
		v.chartTab.ChartView().SetState(&s.Chart)
	} else {
		v.planTab.PlanView().SetState(nil)
		v.chartTab.ChartView().SetState(nil)
	}
}

// State returns the stored state reference.
func (v *QueryResultsView) State() *ViewState { return v.state }

// BindInput rebinds the view to a new input. The runner for the
// input's URI is looked up via the execution service and bound to the
// Results and Chart tabs; tabs recorded visible in state are re-added
// without forcing visibility, then the recorded active tab is shown.
func (v *QueryResultsView) BindInput(input *Input) {
	v.input = input
	v.generation++
	v.runner = v.service.Lookup(input.URI)
	v.resultsTab.SetRunner(v.runner)
	v.chartTab.SetRunner(v.runner)

	if v.state != nil {
		if v.state.HasVisibleTab(TabChart) {
			v.tabs.Add(v.chartTab)
		}
		if v.state.HasVisibleTab(TabPlan) {
			v.tabs.Add(v.planTab)
		}
		if v.state.ActiveTab != "" {
			v.tabs.Show(v.state.ActiveTab)
		}
	}
}

// Input returns the current input, if any.
func (v *QueryResultsView) Input() *Input { return v.input }

// ClearInput drops the input reference and clears the Results, Plan
// and Chart tabs without removing them from the container.
func (v *QueryResultsView) ClearInput() {
	v.input = nil
	v.resultsTab.Clear()
	v.planTab.Clear()
	v.chartTab.Clear()
}

// Update reacts to query lifecycle messages. Messages addressed to a
// runner other than the bound one are ignored; that is how a rebind
// disposes the previous binding's subscriptions.
func (v *QueryResultsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case QueryStartedMsg:
		if v.runner == nil || msg.RunnerID != v.runner.ID() {
			return nil
		}
		// Reset the visible tabs: a fresh execution invalidates the
		// previous chart and plan.
		v.tabs.Remove(TabChart)
		v.tabs.Remove(TabPlan)
		v.state.ClearVisible()
		v.tabs.Show(TabResults)

	case QueryFinishedMsg:
		if v.runner == nil || msg.RunnerID != v.runner.ID() {
			return nil
		}
		if msg.Result != nil {
			v.resultsTab.ResultsView().Grid().SetResult(msg.Result)
		}
		// Reload runner messages accumulated during execution.
		v.resultsTab.ResultsView().Messages().SetRunner(v.runner)
		if msg.Err == nil && v.runner.IsPlanQuery() {
			return v.fetchPlanCmd()
		}

	case PlanFetchedMsg:
		if msg.Generation != v.generation {
			logger.Debug("dropping stale plan fetch",
				"generation", msg.Generation, "current", v.generation)
			return nil
		}
		if msg.Err != nil {
			v.resultsTab.ResultsView().Messages().Append(query.Message{
				Time:    time.Now(),
				Text:    msg.Err.Error(),
				IsError: true,
			})
			return nil
		}
		v.ShowPlan(msg.XML)
	}
	return nil
}

// fetchPlanCmd fetches the plan XML for the bound runner's query,
// tagged with the current binding generation.
func (v *QueryResultsView) fetchPlanCmd() tea.Cmd {
	gen := v.generation
	r := v.runner
	return func() tea.Msg {
		xml, err := r.PlanXML(context.Background())
		return PlanFetchedMsg{Generation: gen, XML: xml, Err: err}
	}
}

// ChartData marks the Chart tab visible, ensures it is present,
// switches to it and charts the given result coordinate.
func (v *QueryResultsView) ChartData(resultID, batchID int) {
	v.state.MarkVisible(TabChart)
	v.tabs.Add(v.chartTab)
	v.tabs.Show(TabChart)
	v.chartTab.ChartView().SetCoordinate(resultID, batchID)
}

// HideChart removes the Chart tab. A no-op when it is absent.
func (v *QueryResultsView) HideChart() {
	v.tabs.Remove(TabChart)
	v.state.UnmarkVisible(TabChart)
}

// ShowPlan marks the Plan tab visible, ensures it is present without
// duplicating it, switches to it and forwards the plan XML unchanged.
func (v *QueryResultsView) ShowPlan(xml string) {
	v.state.MarkVisible(TabPlan)
	v.tabs.Add(v.planTab)
	v.tabs.Show(TabPlan)
	if v.runner != nil {
		v.planTab.PlanView().SetQuery(v.runner.SQL())
	}
	v.planTab.PlanView().SetPlan(xml)
}

// HidePlan removes the Plan tab. A no-op when it is absent.
func (v *QueryResultsView) HidePlan() {
	v.tabs.Remove(TabPlan)
	v.state.UnmarkVisible(TabPlan)
}

// Layout forwards the dimension to the outer tab container.
func (v *QueryResultsView) Layout(width, height int) {
	v.tabs.SetSize(width, height)
}

// View renders the tab container.
func (v *QueryResultsView) View() string { return v.tabs.View() }

// Dispose detaches the container's callbacks. Member tabs hold no
// resources beyond their views.
func (v *QueryResultsView) Dispose() {
	v.tabs.OnActiveChanged = nil
}
