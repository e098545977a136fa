package results

import (
	"strings"
	"testing"
)

func TestRenderPlanTree(t *testing.T) {
	out, err := renderPlanTree(samplePlanXML)
	if err != nil {
		t.Fatalf("renderPlanTree: %v", err)
	}
	if !strings.Contains(out, "Sort  (cost=64.33..66.83 rows=1000 width=8)") {
		t.Errorf("missing root node label in:\n%s", out)
	}
	if !strings.Contains(out, "Seq Scan on orders  (cost=0.00..14.50 rows=1000 width=8)") {
		t.Errorf("missing child node label in:\n%s", out)
	}
	if !strings.Contains(out, "Filter: (amount > 10)") {
		t.Errorf("missing filter annotation in:\n%s", out)
	}
}

func TestRenderPlanTreeErrors(t *testing.T) {
	if _, err := renderPlanTree("not xml"); err == nil {
		t.Error("want error for malformed XML")
	}
	if _, err := renderPlanTree(`<explain></explain>`); err == nil {
		t.Error("want error for plan without queries")
	}
}

func TestPlanNodeLabel(t *testing.T) {
	tests := []struct {
		name string
		node planNode
		want string
	}{
		{
			name: "index scan",
			node: planNode{
				NodeType:     "Index Scan",
				IndexName:    "orders_pkey",
				RelationName: "orders",
				StartupCost:  0.29,
				TotalCost:    8.31,
				PlanRows:     1,
				PlanWidth:    16,
			},
			want: "Index Scan using orders_pkey on orders  (cost=0.29..8.31 rows=1 width=16)",
		},
		{
			name: "hash join",
			node: planNode{
				NodeType:  "Hash Join",
				JoinType:  "Left",
				PlanRows:  50,
				PlanWidth: 4,
			},
			want: "Hash Join Left  (cost=0.00..0.00 rows=50 width=4)",
		},
		{
			name: "inner join type elided",
			node: planNode{NodeType: "Nested Loop", JoinType: "Inner"},
			want: "Nested Loop  (cost=0.00..0.00 rows=0 width=0)",
		},
		{
			name: "aliased relation",
			node: planNode{NodeType: "Seq Scan", RelationName: "orders", Alias: "o"},
			want: "Seq Scan on orders o  (cost=0.00..0.00 rows=0 width=0)",
		},
		{
			name: "aggregate strategy",
			node: planNode{NodeType: "Aggregate", Strategy: "Hashed"},
			want: "Aggregate (Hashed)  (cost=0.00..0.00 rows=0 width=0)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.label(); got != tt.want {
				t.Errorf("label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlanViewClearResetsScroll(t *testing.T) {
	st := &PlanState{Scroll: 7}
	v := NewPlanView()
	v.SetState(st)
	v.SetQuery("SELECT 1")
	v.SetPlan(samplePlanXML)

	if v.Plan() != samplePlanXML {
		t.Error("Plan must return the raw XML")
	}
	if st.Scroll != 0 {
		t.Errorf("scroll = %d after SetPlan, want 0", st.Scroll)
	}

	v.ScrollDown(3)
	v.Clear()
	if v.Plan() != "" || st.Scroll != 0 {
		t.Error("Clear must drop the plan and reset scroll")
	}
}
