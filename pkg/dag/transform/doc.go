// Package transform provides analyses and rewrites over a module graph.
//
// [FindCycles] enumerates circular imports with a three-colour depth-first
// search that keeps an explicit path stack, so each report is the actual
// chain of modules rather than just a yes/no answer:
//
//	for _, c := range transform.FindCycles(g) {
//	    fmt.Println(c) // index.js -> menu.js -> index.js
//	}
//
// [BreakCycles] removes the back edges found by the same traversal. The
// checker runs it on a clone to suggest which imports to cut.
package transform
