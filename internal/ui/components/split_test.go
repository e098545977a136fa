package components

import "testing"

// stubPanel is a minimal Panel for split tests.
type stubPanel struct {
	id     string
	width  int
	height int
}

func (p *stubPanel) ID() string { return p.id }
func (p *stubPanel) View() string { return p.id }
func (p *stubPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func TestSplitPanelInsertTakesSpaceProportionally(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	grid := &stubPanel{id: "grid"}

	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)

	// Two panels leave 30 rows after the sash.
	s.AddAt(0, grid, 21)
	if got := s.Size("grid"); got != 21 {
		t.Errorf("grid size = %d, want the requested 21", got)
	}
	if got := s.Size("messages"); got != 9 {
		t.Errorf("messages size = %d, want 9 (remainder)", got)
	}
	if grid.height != 21 || messages.height != 9 {
		t.Errorf("panel layout %d/%d, want 21/9", grid.height, messages.height)
	}
}

func TestSplitPanelRemoveRedistributes(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	grid := &stubPanel{id: "grid"}
	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)
	s.AddAt(0, grid, 21)

	s.Remove("grid")
	if s.Contains("grid") {
		t.Fatal("grid should be removed")
	}
	if got := s.Size("messages"); got != 31 {
		t.Errorf("messages size = %d, want full 31 after removal", got)
	}

	// Removing an absent id is a no-op.
	s.Remove("grid")
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestSplitPanelHeightChangeScalesProportionally(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	grid := &stubPanel{id: "grid"}
	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)
	s.AddAt(0, grid, 21) // 21/9 of 30 available

	s.SetSize(80, 41) // available grows 30 -> 40
	if got := s.Size("grid"); got != 28 {
		t.Errorf("grid size = %d, want 28 (21*40/30)", got)
	}
	if got := s.Size("messages"); got != 12 {
		t.Errorf("messages size = %d, want 12 (remainder)", got)
	}
}

func TestSplitPanelUnchangedHeightSkipsLayout(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)

	// Same height: the split does not re-lay out its panels.
	s.SetSize(100, 31)
	if messages.width != 80 {
		t.Errorf("panel width = %d; unchanged height must not re-trigger panel layout", messages.width)
	}

	// Different height does.
	s.SetSize(100, 32)
	if messages.width != 100 {
		t.Errorf("panel width = %d, want 100 after height change", messages.width)
	}
}

func TestSplitPanelDragSash(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	grid := &stubPanel{id: "grid"}
	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)
	s.AddAt(0, grid, 21)

	var dragged []map[string]int
	s.OnSashDrag = func(sizes map[string]int) { dragged = append(dragged, sizes) }

	s.DragSash(0, 3)
	if s.Size("grid") != 24 || s.Size("messages") != 6 {
		t.Errorf("after drag: %d/%d, want 24/6", s.Size("grid"), s.Size("messages"))
	}
	if len(dragged) != 1 {
		t.Fatalf("OnSashDrag fired %d times, want 1", len(dragged))
	}
	if dragged[0]["grid"] != 24 || dragged[0]["messages"] != 6 {
		t.Errorf("drag callback sizes = %v", dragged[0])
	}

	// Drag clamps at the neighbor's extent.
	s.DragSash(0, 100)
	if s.Size("messages") != 0 {
		t.Errorf("messages size = %d, want 0 (clamped)", s.Size("messages"))
	}

	// Every drag fires, not just the first.
	if len(dragged) != 2 {
		t.Errorf("OnSashDrag fired %d times, want 2", len(dragged))
	}

	// Out-of-range sash index is a no-op.
	s.DragSash(5, 1)
	if len(dragged) != 2 {
		t.Error("invalid sash index must not fire the callback")
	}
}

func TestSplitPanelResizePinsTarget(t *testing.T) {
	s := NewSplitPanel()
	messages := &stubPanel{id: "messages"}
	grid := &stubPanel{id: "grid"}
	s.SetSize(80, 31)
	s.AddAt(0, messages, 31)
	s.AddAt(0, grid, 21)

	s.Resize("grid", 15)
	if s.Size("grid") != 15 {
		t.Errorf("grid size = %d, want 15", s.Size("grid"))
	}
	if s.Size("messages") != 15 {
		t.Errorf("messages size = %d, want 15 (absorbed difference)", s.Size("messages"))
	}

	// Resizing an absent panel is a no-op.
	s.Resize("plan", 10)
	if s.Size("grid") != 15 {
		t.Error("resize of absent panel must not disturb sizes")
	}
}
