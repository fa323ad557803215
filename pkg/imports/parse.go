package imports

import (
	"path"
	"regexp"
)

// staticImportRe matches static ES module imports whose specifier is a
// same-directory relative path:
//
//	import Foo from './foo.js'
//	import { a as b, c } from "./chunk-3f2a.js"
//	import{x}from"./x.js"
//
// Side-effect imports (import './x.js'), dynamic import() calls, re-exports
// and parent-directory paths (../) are not matched.
var staticImportRe = regexp.MustCompile(`\bimport\s*[\w$*{},\s]+?\s*from\s*["'](\./[^"']+)["']`)

// ParseImports returns the basenames of every same-directory module that
// src statically imports, in order of first appearance and without
// duplicates. Import statements that do not fit the pattern are skipped.
func ParseImports(src []byte) []string {
	var (
		targets []string
		seen    = make(map[string]bool)
	)
	for _, m := range staticImportRe.FindAllSubmatch(src, -1) {
		name := path.Base(string(m[1]))
		if name == "." || name == "/" || seen[name] {
			continue
		}
		seen[name] = true
		targets = append(targets, name)
	}
	return targets
}
