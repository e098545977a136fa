package results

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/xlab/treeprint"

	"github.com/siftdb/sift/internal/ui/styles"
)

// planDoc mirrors the document produced by EXPLAIN (FORMAT XML).
type planDoc struct {
	XMLName xml.Name    `xml:"explain"`
	Queries []planQuery `xml:"Query"`
}

type planQuery struct {
	Plan planNode `xml:"Plan"`
}

type planNode struct {
	NodeType     string     `xml:"Node-Type"`
	Strategy     string     `xml:"Strategy"`
	JoinType     string     `xml:"Join-Type"`
	RelationName string     `xml:"Relation-Name"`
	IndexName    string     `xml:"Index-Name"`
	Alias        string     `xml:"Alias"`
	StartupCost  float64    `xml:"Startup-Cost"`
	TotalCost    float64    `xml:"Total-Cost"`
	PlanRows     int64      `xml:"Plan-Rows"`
	PlanWidth    int        `xml:"Plan-Width"`
	Filter       string     `xml:"Filter"`
	Children     []planNode `xml:"Plans>Plan"`
}

// label renders a plan node the way psql's text EXPLAIN output does.
func (n *planNode) label() string {
	name := n.NodeType
	if n.JoinType != "" && n.JoinType != "Inner" {
		name += " " + n.JoinType
	}
	if n.Strategy != "" && n.Strategy != "Plain" {
		name += " (" + n.Strategy + ")"
	}
	switch {
	case n.IndexName != "":
		name += " using " + n.IndexName
		if n.RelationName != "" {
			name += " on " + n.RelationName
		}
	case n.RelationName != "":
		name += " on " + n.RelationName
		if n.Alias != "" && n.Alias != n.RelationName {
			name += " " + n.Alias
		}
	}
	return fmt.Sprintf("%s  (cost=%.2f..%.2f rows=%d width=%d)",
		name, n.StartupCost, n.TotalCost, n.PlanRows, n.PlanWidth)
}

// PlanView renders a query execution plan fetched as XML. The plan
// tree is drawn with treeprint below the (highlighted) query text,
// scrollable as one document.
type PlanView struct {
	width  int
	height int

	query   string
	planXML string
	content string
	err     string
	st      *PlanState
}

// NewPlanView creates an empty plan view.
func NewPlanView() *PlanView {
	return &PlanView{}
}

// SetQuery sets the query text shown above the plan.
func (v *PlanView) SetQuery(sql string) {
	v.query = sql
}

// SetPlan parses and displays the raw plan XML.
func (v *PlanView) SetPlan(planXML string) {
	v.planXML = planXML
	v.err = ""
	if v.st != nil {
		v.st.Scroll = 0
	}

	tree, err := renderPlanTree(planXML)
	if err != nil {
		v.err = err.Error()
		v.content = ""
		return
	}
	if v.query != "" {
		v.content = highlightSQL(v.query) + "\n\n" + tree
	} else {
		v.content = tree
	}
}

// Plan returns the raw plan XML.
func (v *PlanView) Plan() string { return v.planXML }

// Clear drops the displayed plan without destroying the view.
func (v *PlanView) Clear() {
	v.planXML = ""
	v.query = ""
	v.content = ""
	v.err = ""
	if v.st != nil {
		v.st.Scroll = 0
	}
}

// SetState attaches the nested plan state.
func (v *PlanView) SetState(st *PlanState) { v.st = st }

// State returns the attached nested state.
func (v *PlanView) State() *PlanState { return v.st }

// SetSize sets the viewport dimensions.
func (v *PlanView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// ScrollDown scrolls down by n lines.
func (v *PlanView) ScrollDown(n int) {
	if v.st == nil {
		return
	}
	maxOffset := max(0, len(v.lines())-v.contentHeight())
	v.st.Scroll = min(v.st.Scroll+n, maxOffset)
}

// ScrollUp scrolls up by n lines.
func (v *PlanView) ScrollUp(n int) {
	if v.st == nil {
		return
	}
	v.st.Scroll = max(0, v.st.Scroll-n)
}

// View renders the plan view.
func (v *PlanView) View() string {
	title := styles.TitleStyle.Render("Query Plan")

	var content string
	switch {
	case v.err != "":
		content = styles.ErrorStyle.Render("Error: " + v.err)
	case v.content == "":
		content = styles.InfoStyle.Render("No plan available")
	default:
		lines := v.lines()
		scroll := 0
		if v.st != nil {
			scroll = min(v.st.Scroll, max(0, len(lines)-1))
		}
		end := min(scroll+v.contentHeight(), len(lines))
		content = strings.Join(lines[scroll:end], "\n")
	}

	footer := styles.HintStyle.Render("[j/k]scroll")
	return lipgloss.JoinVertical(lipgloss.Left, title, content, footer)
}

func (v *PlanView) lines() []string {
	if v.content == "" {
		return nil
	}
	return strings.Split(v.content, "\n")
}

// contentHeight returns the rows available for plan content.
func (v *PlanView) contentHeight() int {
	return max(1, v.height-2) // title + footer
}

// renderPlanTree parses plan XML and renders the node tree.
func renderPlanTree(planXML string) (string, error) {
	var doc planDoc
	if err := xml.Unmarshal([]byte(planXML), &doc); err != nil {
		return "", fmt.Errorf("parsing plan XML: %w", err)
	}
	if len(doc.Queries) == 0 {
		return "", fmt.Errorf("plan XML contains no query")
	}

	var out []string
	for _, q := range doc.Queries {
		tree := treeprint.NewWithRoot(q.Plan.label())
		for i := range q.Plan.Children {
			addPlanBranch(tree, &q.Plan.Children[i])
		}
		out = append(out, tree.String())
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n"), nil
}

func addPlanBranch(parent treeprint.Tree, n *planNode) {
	branch := parent.AddBranch(n.label())
	if n.Filter != "" {
		branch.AddNode("Filter: " + n.Filter)
	}
	for i := range n.Children {
		addPlanBranch(branch, &n.Children[i])
	}
}

// highlightSQL applies terminal syntax highlighting to the query text.
func highlightSQL(sql string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, sql, "postgresql", "terminal256", "monokai"); err != nil {
		return sql
	}
	return strings.TrimRight(buf.String(), "\n")
}

// PlanTab adapts a PlanView as a tab entry.
type PlanTab struct {
	view *PlanView
}

// NewPlanTab wraps a fresh PlanView.
func NewPlanTab() *PlanTab {
	return &PlanTab{view: NewPlanView()}
}

// ID implements components.Tab.
func (t *PlanTab) ID() string { return TabPlan }

// Title implements components.Tab.
func (t *PlanTab) Title() string { return "Query Plan" }

// PlanView returns the underlying plan view.
func (t *PlanTab) PlanView() *PlanView { return t.view }

// Clear forwards to the view.
func (t *PlanTab) Clear() { t.view.Clear() }

// SetSize implements components.Tab.
func (t *PlanTab) SetSize(width, height int) { t.view.SetSize(width, height) }

// View implements components.Tab.
func (t *PlanTab) View() string { return t.view.View() }
