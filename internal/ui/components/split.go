package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/siftdb/sift/internal/ui/styles"
)

// Panel is a resizable sub-view hosted by a SplitPanel.
type Panel interface {
	ID() string
	SetSize(width, height int)
	View() string
}

type panelEntry struct {
	panel Panel
	size  int // height in rows
}

// SplitPanel stacks panels vertically with a one-row sash between
// neighbors. Panel sizes are absolute row counts; a height change is
// distributed proportionally across panels.
type SplitPanel struct {
	entries []panelEntry
	width   int
	height  int

	// OnSashDrag is invoked on every user-initiated resize with the
	// resulting panel sizes keyed by panel id.
	OnSashDrag func(sizes map[string]int)
}

// NewSplitPanel creates an empty split panel.
func NewSplitPanel() *SplitPanel {
	return &SplitPanel{}
}

// AddAt inserts a panel at the given index with the given size. The
// space is taken proportionally from existing panels. Adding an id
// already present is a no-op; out-of-range indices clamp.
func (s *SplitPanel) AddAt(index int, p Panel, size int) {
	if s.Contains(p.ID()) {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.entries) {
		index = len(s.entries)
	}
	s.entries = append(s.entries, panelEntry{})
	copy(s.entries[index+1:], s.entries[index:])
	s.entries[index] = panelEntry{panel: p, size: size}
	s.fit(index)
	s.applySizes()
}

// Remove drops the panel with the given id and gives its space to the
// remaining panels proportionally. Removing an absent id is a no-op.
func (s *SplitPanel) Remove(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.fit(-1)
	s.applySizes()
}

// Resize sets the size of the panel with the given id; the remaining
// panels absorb the difference proportionally.
func (s *SplitPanel) Resize(id string, size int) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	if size < 0 {
		size = 0
	}
	s.entries[idx].size = size
	s.fit(idx)
	s.applySizes()
}

// DragSash moves the boundary below panel index by delta rows (positive
// grows the panel above the sash) and fires OnSashDrag.
func (s *SplitPanel) DragSash(index, delta int) {
	if index < 0 || index >= len(s.entries)-1 {
		return
	}
	above := &s.entries[index]
	below := &s.entries[index+1]
	if delta > below.size {
		delta = below.size
	}
	if -delta > above.size {
		delta = -above.size
	}
	above.size += delta
	below.size -= delta
	s.applySizes()

	if s.OnSashDrag != nil {
		s.OnSashDrag(s.Sizes())
	}
}

// Contains reports whether a panel with the given id is present.
func (s *SplitPanel) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Size returns the current size of the panel with the given id, or 0.
func (s *SplitPanel) Size(id string) int {
	if idx := s.indexOf(id); idx >= 0 {
		return s.entries[idx].size
	}
	return 0
}

// Sizes returns the current panel sizes keyed by id.
func (s *SplitPanel) Sizes() map[string]int {
	out := make(map[string]int, len(s.entries))
	for _, e := range s.entries {
		out[e.panel.ID()] = e.size
	}
	return out
}

// Len returns the number of panels.
func (s *SplitPanel) Len() int { return len(s.entries) }

// Height returns the last height given to SetSize.
func (s *SplitPanel) Height() int { return s.height }

// SetSize sets the split dimensions. An unchanged height returns early
// without re-laying out the panels; callers that need a child re-laid
// out anyway must size it explicitly.
func (s *SplitPanel) SetSize(width, height int) {
	if height == s.height {
		s.width = width
		return
	}
	old := s.available()
	s.width = width
	s.height = height
	s.rescale(old)
	s.applySizes()
}

// View renders the panels joined by sash lines.
func (s *SplitPanel) View() string {
	if len(s.entries) == 0 {
		return ""
	}
	sash := styles.SashStyle.Render(strings.Repeat("─", max(s.width, 0)))
	var parts []string
	for _, e := range s.entries {
		if e.size == 0 {
			continue // collapsed
		}
		if len(parts) > 0 {
			parts = append(parts, sash)
		}
		parts = append(parts, e.panel.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// available returns the rows left for panel bodies after sashes.
func (s *SplitPanel) available() int {
	n := len(s.entries)
	if n == 0 {
		return s.height
	}
	a := s.height - (n - 1)
	if a < 0 {
		a = 0
	}
	return a
}

// rescale scales panel sizes proportionally from oldAvailable to the
// current available height. The last panel takes the rounding slack.
func (s *SplitPanel) rescale(oldAvailable int) {
	if len(s.entries) == 0 {
		return
	}
	avail := s.available()
	if oldAvailable <= 0 {
		// No previous height to scale from: give everything to the
		// last panel, preserving explicitly sized predecessors.
		used := 0
		for i := 0; i < len(s.entries)-1; i++ {
			used += s.entries[i].size
		}
		s.entries[len(s.entries)-1].size = max(avail-used, 0)
		return
	}
	used := 0
	for i := range s.entries {
		if i == len(s.entries)-1 {
			s.entries[i].size = max(avail-used, 0)
			break
		}
		s.entries[i].size = s.entries[i].size * avail / oldAvailable
		used += s.entries[i].size
	}
}

// fit adjusts panel sizes so they sum to the available height. The
// panel at pinned (if >= 0) keeps its size; the others absorb the
// difference, proportionally where possible.
func (s *SplitPanel) fit(pinned int) {
	n := len(s.entries)
	if n == 0 || s.height == 0 {
		return
	}
	avail := s.available()
	pinnedSize := 0
	if pinned >= 0 {
		if s.entries[pinned].size > avail {
			s.entries[pinned].size = avail
		}
		pinnedSize = s.entries[pinned].size
	}
	rest := avail - pinnedSize

	others := 0
	for i, e := range s.entries {
		if i != pinned {
			others += e.size
		}
	}
	if others == 0 {
		// Distribute evenly among unpinned panels.
		count := n
		if pinned >= 0 {
			count--
		}
		if count == 0 {
			return
		}
		each := rest / count
		assigned := 0
		last := -1
		for i := range s.entries {
			if i == pinned {
				continue
			}
			s.entries[i].size = each
			assigned += each
			last = i
		}
		if last >= 0 {
			s.entries[last].size += rest - assigned
		}
		return
	}
	assigned := 0
	last := -1
	for i := range s.entries {
		if i == pinned {
			continue
		}
		s.entries[i].size = s.entries[i].size * rest / others
		assigned += s.entries[i].size
		last = i
	}
	if last >= 0 {
		s.entries[last].size += rest - assigned
		if s.entries[last].size < 0 {
			s.entries[last].size = 0
		}
	}
}

// applySizes pushes current dimensions into the panels.
func (s *SplitPanel) applySizes() {
	for _, e := range s.entries {
		e.panel.SetSize(s.width, e.size)
	}
}

func (s *SplitPanel) indexOf(id string) int {
	for i, e := range s.entries {
		if e.panel.ID() == id {
			return i
		}
	}
	return -1
}
