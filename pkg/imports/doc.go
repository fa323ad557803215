// Package imports builds a module graph from bundler output.
//
// The scan is a heuristic, not a JavaScript parser: it looks for static
// import declarations whose specifier starts with "./" and treats the
// specifier's basename as the imported module. Only same-directory imports
// are resolved, which matches how the bundler lays out its chunks in a
// single assets directory. Anything else (bare package specifiers, ../
// paths, dynamic import(), malformed statements) is silently ignored, so
// the checker may under-report but never invents an edge.
//
//	res, err := imports.Scan(ctx, "dist/assets", imports.Options{})
//	if err != nil {
//	    return err
//	}
//	cycles := transform.FindCycles(res.Graph)
package imports
