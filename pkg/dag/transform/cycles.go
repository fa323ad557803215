package transform

import (
	"strings"

	"github.com/brooklinpub/brooklin/pkg/dag"
)

// Cycle is a closed walk through the graph. The first node repeats as the
// last element, so a self-import of a is [a a] and a two-module loop is
// [a b a].
type Cycle []string

// String joins the cycle with arrows, e.g. "a.js -> b.js -> a.js".
func (c Cycle) String() string { return strings.Join(c, " -> ") }

// Len returns the number of distinct modules in the cycle.
func (c Cycle) Len() int { return max(len(c)-1, 0) }

// FindCycles reports every cycle closed by a back edge during a depth-first
// traversal of g.
//
// Each node is white (unvisited), gray (on the current path) or black
// (finished). Reaching a gray node records the path from that node to the
// top of the stack, plus the node again. Edges into black nodes are skipped.
// Traversal starts from every remaining white node in insertion order, and
// children are followed in discovery order, so the result is deterministic.
//
// One cycle is reported per back edge. Overlapping loops can share nodes,
// and a node may appear in several reported cycles.
func FindCycles(g *dag.DAG) []Cycle {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	pos := make(map[string]int)
	var path []string
	var cycles []Cycle

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		pos[node] = len(path)
		path = append(path, node)

		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				loop := path[pos[child]:]
				c := make(Cycle, 0, len(loop)+1)
				c = append(c, loop...)
				c = append(c, child)
				cycles = append(cycles, c)
			}
		}

		path = path[:len(path)-1]
		delete(pos, node)
		color[node] = black
	}

	for _, id := range g.IDs() {
		if color[id] == white {
			dfs(id)
		}
	}
	return cycles
}

// BackEdges returns the edges that close a cycle in the same traversal
// order used by [FindCycles]. Removing all of them leaves g acyclic.
func BackEdges(g *dag.DAG) []dag.Edge {
	var edges []dag.Edge
	for _, c := range FindCycles(g) {
		n := len(c)
		edges = append(edges, dag.Edge{From: c[n-2], To: c[n-1]})
	}
	return edges
}

// BreakCycles removes every back edge from g and returns how many were
// removed. Run it on a [dag.DAG.Clone] to compute suggested cuts without
// modifying the scanned graph.
func BreakCycles(g *dag.DAG) int {
	backEdges := BackEdges(g)
	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return len(backEdges)
}
