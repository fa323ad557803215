package transform

import (
	"reflect"
	"testing"

	"github.com/brooklinpub/brooklin/pkg/dag"
)

func buildGraph(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New(nil)
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  []Cycle
	}{
		{
			name:  "empty graph",
			ids:   nil,
			edges: nil,
			want:  nil,
		},
		{
			name:  "chain without back edge",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  nil,
		},
		{
			name:  "two cycle",
			ids:   []string{"a", "b"},
			edges: [][2]string{{"a", "b"}, {"b", "a"}},
			want:  []Cycle{{"a", "b", "a"}},
		},
		{
			name:  "three cycle",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  []Cycle{{"a", "b", "c", "a"}},
		},
		{
			name:  "self loop",
			ids:   []string{"a"},
			edges: [][2]string{{"a", "a"}},
			want:  []Cycle{{"a", "a"}},
		},
		{
			name:  "two independent cycles",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			want:  []Cycle{{"a", "b", "a"}, {"c", "d", "c"}},
		},
		{
			name:  "overlapping cycles share a node",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}},
			want:  []Cycle{{"a", "b", "a"}, {"b", "c", "b"}},
		},
		{
			name:  "diamond",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			want:  nil,
		},
		{
			name:  "cycle below the entry point",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}},
			want:  []Cycle{{"b", "c", "d", "b"}},
		},
		{
			name:  "edge into finished node is ignored",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}, {"d", "c"}},
			want:  []Cycle{{"b", "c", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(tt.ids, tt.edges)
			got := FindCycles(g)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindCycles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindCyclesDoesNotModifyGraph(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	FindCycles(g)

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestFindCyclesDeterministic(t *testing.T) {
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "b"}, {"e", "e"}}
	ids := []string{"a", "b", "c", "d", "e"}

	first := FindCycles(buildGraph(ids, edges))
	for range 5 {
		if got := FindCycles(buildGraph(ids, edges)); !reflect.DeepEqual(got, first) {
			t.Fatalf("FindCycles() = %v, want %v", got, first)
		}
	}
}

func TestCycleString(t *testing.T) {
	c := Cycle{"index.js", "menu.js", "index.js"}
	if got, want := c.String(), "index.js -> menu.js -> index.js"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if (Cycle{"a", "a"}).Len() != 1 {
		t.Error("self loop Len() should be 1")
	}
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if removed := BreakCycles(g); removed != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", removed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_SelfLoop(t *testing.T) {
	g := buildGraph([]string{"a"}, [][2]string{{"a", "a"}})

	if removed := BreakCycles(g); removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBreakCycles_ResultIsAcyclic(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}, {"c", "a"}},
	)

	BreakCycles(g)

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles() = %v, want nil", err)
	}
	if removed := BreakCycles(g); removed != 0 {
		t.Errorf("second BreakCycles() removed %d edges, want 0", removed)
	}
}

func TestBackEdges(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	got := BackEdges(g)
	if len(got) != 1 || got[0].From != "c" || got[0].To != "a" {
		t.Errorf("BackEdges() = %v, want [c -> a]", got)
	}
}
