package results

import (
	"testing"

	"github.com/siftdb/sift/internal/query"
)

const samplePlanXML = `<explain xmlns="http://www.postgresql.org/2009/explain">
  <Query>
    <Plan>
      <Node-Type>Sort</Node-Type>
      <Startup-Cost>64.33</Startup-Cost>
      <Total-Cost>66.83</Total-Cost>
      <Plan-Rows>1000</Plan-Rows>
      <Plan-Width>8</Plan-Width>
      <Plans>
        <Plan>
          <Node-Type>Seq Scan</Node-Type>
          <Relation-Name>orders</Relation-Name>
          <Alias>orders</Alias>
          <Startup-Cost>0.00</Startup-Cost>
          <Total-Cost>14.50</Total-Cost>
          <Plan-Rows>1000</Plan-Rows>
          <Plan-Width>8</Plan-Width>
          <Filter>(amount &gt; 10)</Filter>
        </Plan>
      </Plans>
    </Plan>
  </Query>
</explain>`

func newBoundView(t *testing.T) *QueryResultsView {
	t.Helper()
	v := NewQueryResultsView(query.NewService(nil))
	v.SetState(&ViewState{})
	v.Layout(80, 24)
	v.BindInput(&Input{URI: "untitled:1"})
	return v
}

func TestInitialTabLayout(t *testing.T) {
	v := NewQueryResultsView(query.NewService(nil))

	if v.Tabs().Len() != 1 {
		t.Fatalf("container holds %d tabs, want only Results", v.Tabs().Len())
	}
	if !v.Tabs().Contains(TabResults) {
		t.Error("Results tab must always be present")
	}
	if v.Tabs().ActiveID() != TabResults {
		t.Errorf("active tab = %q, want results", v.Tabs().ActiveID())
	}
}

func TestQueryStartResetsVisibleTabs(t *testing.T) {
	v := newBoundView(t)
	st := v.State()

	v.ChartData(0, 0)
	v.ShowPlan(samplePlanXML)
	if !v.Tabs().Contains(TabChart) || !v.Tabs().Contains(TabPlan) {
		t.Fatal("chart and plan tabs should be present before query start")
	}
	if v.Tabs().ActiveID() != TabPlan {
		t.Fatalf("active tab = %q, want plan", v.Tabs().ActiveID())
	}

	v.Update(QueryStartedMsg{RunnerID: v.Runner().ID()})

	if v.Tabs().Contains(TabChart) || v.Tabs().Contains(TabPlan) {
		t.Error("query start must hide the chart and plan tabs")
	}
	if len(st.VisibleTabs) != 0 {
		t.Errorf("visible tabs set = %v, want empty", st.VisibleTabs)
	}
	if v.Tabs().ActiveID() != TabResults {
		t.Errorf("active tab = %q, want results", v.Tabs().ActiveID())
	}
}

func TestQueryStartIgnoresForeignRunner(t *testing.T) {
	v := newBoundView(t)
	v.ChartData(0, 0)

	v.Update(QueryStartedMsg{RunnerID: v.Runner().ID() + 999})

	if !v.Tabs().Contains(TabChart) {
		t.Error("lifecycle events for a foreign runner must be ignored")
	}
}

func TestShowPlanAddsOnceAndForwardsXML(t *testing.T) {
	v := newBoundView(t)

	v.ShowPlan(samplePlanXML)
	if !v.Tabs().Contains(TabPlan) {
		t.Fatal("plan tab should be added")
	}
	if v.Tabs().ActiveID() != TabPlan {
		t.Errorf("active tab = %q, want plan", v.Tabs().ActiveID())
	}
	if !v.State().HasVisibleTab(TabPlan) {
		t.Error("plan must be marked visible in state")
	}
	if v.PlanView().Plan() != samplePlanXML {
		t.Error("plan XML must be forwarded unchanged")
	}

	// Calling again with new XML does not duplicate the tab.
	other := samplePlanXML + "\n"
	n := v.Tabs().Len()
	v.ShowPlan(other)
	if v.Tabs().Len() != n {
		t.Error("showing the plan again must not duplicate the tab")
	}
	if v.PlanView().Plan() != other {
		t.Error("new plan XML must replace the old one")
	}
}

func TestHideChartHidePlanNoOpWhenAbsent(t *testing.T) {
	v := newBoundView(t)
	st := v.State()

	v.HideChart()
	v.HidePlan()

	if v.Tabs().Len() != 1 {
		t.Errorf("container holds %d tabs, want 1", v.Tabs().Len())
	}
	if len(st.VisibleTabs) != 0 {
		t.Errorf("visible tabs set = %v, want unchanged empty set", st.VisibleTabs)
	}
}

func TestHideChartRemovesTabAndStateMark(t *testing.T) {
	v := newBoundView(t)

	v.ChartData(2, 1)
	if !v.Tabs().Contains(TabChart) || !v.State().HasVisibleTab(TabChart) {
		t.Fatal("chart should be present and marked visible")
	}
	if v.ChartView().resultID != 2 || v.ChartView().batchID != 1 {
		t.Errorf("chart coordinate = {%d,%d}, want {2,1}",
			v.ChartView().resultID, v.ChartView().batchID)
	}

	v.HideChart()
	if v.Tabs().Contains(TabChart) {
		t.Error("chart tab should be removed")
	}
	if v.State().HasVisibleTab(TabChart) {
		t.Error("chart should be unmarked in state")
	}
}

func TestBindInputRestoresRecordedTabs(t *testing.T) {
	service := query.NewService(nil)
	v := NewQueryResultsView(service)
	v.SetState(&ViewState{
		ActiveTab:   TabChart,
		VisibleTabs: []string{TabChart, TabPlan},
	})
	v.Layout(80, 24)

	v.BindInput(&Input{URI: "untitled:1"})

	if !v.Tabs().Contains(TabChart) || !v.Tabs().Contains(TabPlan) {
		t.Error("recorded visible tabs should be re-added on bind")
	}
	if v.Tabs().ActiveID() != TabChart {
		t.Errorf("active tab = %q, want restored chart", v.Tabs().ActiveID())
	}
	if v.Runner() != service.Lookup("untitled:1") {
		t.Error("runner must come from the execution service")
	}
}

func TestRebindChangesGenerationAndDropsStalePlan(t *testing.T) {
	v := newBoundView(t) // generation 1

	stale := v.generation
	v.BindInput(&Input{URI: "untitled:2"}) // generation 2

	v.Update(PlanFetchedMsg{Generation: stale, XML: samplePlanXML})
	if v.Tabs().Contains(TabPlan) {
		t.Error("stale plan fetch must be dropped")
	}

	v.Update(PlanFetchedMsg{Generation: v.generation, XML: samplePlanXML})
	if !v.Tabs().Contains(TabPlan) {
		t.Error("current-generation plan fetch must be shown")
	}
}

func TestQueryFinishedPopulatesGrid(t *testing.T) {
	v := newBoundView(t)

	rs := testResultSet(4)
	v.Update(QueryFinishedMsg{RunnerID: v.Runner().ID(), Result: rs})

	if !v.ResultsView().GridVisible() {
		t.Error("grid should be shown after a result arrives")
	}
	if v.ResultsView().Grid().RowCount() != 4 {
		t.Errorf("grid rows = %d, want 4", v.ResultsView().Grid().RowCount())
	}
}

func TestClearInputKeepsTabsInContainer(t *testing.T) {
	v := newBoundView(t)
	v.ChartData(0, 0)
	v.ShowPlan(samplePlanXML)
	v.Update(QueryFinishedMsg{RunnerID: v.Runner().ID(), Result: testResultSet(3)})

	n := v.Tabs().Len()
	v.ClearInput()

	if v.Input() != nil {
		t.Error("input reference should be dropped")
	}
	if v.Tabs().Len() != n {
		t.Error("clearing input must not remove tabs from the container")
	}
	if v.ResultsView().Grid().RowCount() != 0 {
		t.Error("results grid should be cleared")
	}
	if v.PlanView().Plan() != "" {
		t.Error("plan view should be cleared")
	}
}

func TestActiveTabPersistedIntoState(t *testing.T) {
	v := newBoundView(t)
	v.ChartData(0, 0)
	if v.State().ActiveTab != TabChart {
		t.Errorf("ActiveTab = %q, want chart", v.State().ActiveTab)
	}
	v.Tabs().Show(TabResults)
	if v.State().ActiveTab != TabResults {
		t.Errorf("ActiveTab = %q, want results", v.State().ActiveTab)
	}
}
