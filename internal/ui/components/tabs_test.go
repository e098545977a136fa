package components

import "testing"

// stubTab is a minimal Tab for container tests.
type stubTab struct {
	id     string
	title  string
	width  int
	height int
}

func (t *stubTab) ID() string     { return t.id }
func (t *stubTab) Title() string  { return t.title }
func (t *stubTab) View() string   { return t.title }
func (t *stubTab) SetSize(w, h int) {
	t.width = w
	t.height = h
}

func TestTabContainerAddShowRemove(t *testing.T) {
	c := NewTabContainer()
	results := &stubTab{id: "results", title: "Results"}
	chart := &stubTab{id: "chart", title: "Chart"}

	c.Add(results)
	if c.ActiveID() != "results" {
		t.Errorf("first added tab should become active, got %q", c.ActiveID())
	}

	c.Add(chart)
	if c.ActiveID() != "results" {
		t.Error("adding a second tab must not steal activation")
	}
	if !c.Contains("chart") || c.Len() != 2 {
		t.Fatal("chart tab should be present")
	}

	// No duplicates
	c.Add(&stubTab{id: "chart", title: "Chart2"})
	if c.Len() != 2 {
		t.Errorf("duplicate add should be a no-op, len = %d", c.Len())
	}

	c.Show("chart")
	if c.ActiveID() != "chart" {
		t.Errorf("Show should activate, got %q", c.ActiveID())
	}

	// Showing an absent id is a no-op
	c.Show("plan")
	if c.ActiveID() != "chart" {
		t.Error("showing an absent tab must not change activation")
	}

	// Removing the active tab falls back to the first remaining
	c.Remove("chart")
	if c.Contains("chart") {
		t.Error("chart should be removed")
	}
	if c.ActiveID() != "results" {
		t.Errorf("removal of active tab should activate first remaining, got %q", c.ActiveID())
	}

	// Removing an absent id is a no-op
	c.Remove("chart")
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestTabContainerActiveChangedCallback(t *testing.T) {
	c := NewTabContainer()
	var changes []string
	c.OnActiveChanged = func(id string) { changes = append(changes, id) }

	c.Add(&stubTab{id: "results"})
	c.Add(&stubTab{id: "chart"})
	c.Show("chart")
	c.Show("chart") // already active, no re-fire
	c.Remove("chart")

	want := []string{"results", "chart", "results"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}

func TestTabContainerSizeForwarding(t *testing.T) {
	c := NewTabContainer()
	results := &stubTab{id: "results"}
	chart := &stubTab{id: "chart"}
	c.Add(results)
	c.Add(chart)

	c.SetSize(80, 24)
	if results.width != 80 || results.height != 23 {
		t.Errorf("active tab sized %dx%d, want 80x23 (one line for the tab bar)",
			results.width, results.height)
	}
	if chart.width != 0 {
		t.Error("inactive tab must not be sized")
	}

	// Newly shown tab gets sized on activation
	c.Show("chart")
	if chart.width != 80 || chart.height != 23 {
		t.Errorf("shown tab sized %dx%d, want 80x23", chart.width, chart.height)
	}
}

func TestTabContainerAddAtOrder(t *testing.T) {
	c := NewTabContainer()
	c.Add(&stubTab{id: "results", title: "Results"})
	c.Add(&stubTab{id: "plan", title: "Plan"})
	c.AddAt(1, &stubTab{id: "chart", title: "Chart"})

	tabs := c.Tabs()
	ids := []string{tabs[0].ID(), tabs[1].ID(), tabs[2].ID()}
	want := []string{"results", "chart", "plan"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("order = %v, want %v", ids, want)
			break
		}
	}
	if c.ActiveID() != "results" {
		t.Error("AddAt must not force activation on a non-empty container")
	}
}
