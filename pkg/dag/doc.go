// Package dag provides the directed module graph used by the post-build
// import checker.
//
// # Overview
//
// Each emitted bundle chunk is a node, identified by its file basename, and
// each static same-directory import is an edge from the importing chunk to
// the imported one. A healthy build produces a directed acyclic graph; the
// checker exists to catch the builds that do not, so the type accepts cycles
// and self-loops and leaves reporting to [DAG.Validate] and the [transform]
// subpackage.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "index.js"})
//	g.AddNode(dag.Node{ID: "vendor.js"})
//	g.AddEdge(dag.Edge{From: "index.js", To: "vendor.js"})
//
// Nodes and adjacency lists preserve insertion order, and adding an edge that
// already exists is a no-op. Together these make every traversal, and
// therefore every cycle report, deterministic for a given input.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The checker builds a graph
// once and only reads it afterwards.
//
// [transform]: github.com/brooklinpub/brooklin/pkg/dag/transform
package dag
