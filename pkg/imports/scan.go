package imports

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brooklinpub/brooklin/pkg/dag"
	"github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/observability"
)

// DefaultExt is the module file extension of the bundler's output.
const DefaultExt = ".js"

// Options configures a directory scan.
type Options struct {
	// Ext selects module files by extension. Defaults to DefaultExt.
	Ext string

	// Logger receives per-file debug output. Nil disables logging.
	Logger *log.Logger
}

// Result is the outcome of scanning one build output directory.
type Result struct {
	Dir     string   // Scanned directory
	Modules []string // Module basenames in directory order
	Graph   *dag.DAG // One node per module, one edge per local import

	// Dropped counts imports whose target is not a module in Dir.
	Dropped int
}

// Scan enumerates the module files directly inside dir (no recursion),
// extracts their static same-directory imports and builds the module graph.
//
// A missing dir, or a path that is not a directory, fails with
// errors.ErrCodeInputMissing. Files that cannot be read abort the scan.
func Scan(ctx context.Context, dir string, opts Options) (*Result, error) {
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}
	start := time.Now()
	observability.Check().OnScanStart(ctx, dir)

	res, err := scan(ctx, dir, opts)

	var files, edges int
	if res != nil {
		files, edges = len(res.Modules), res.Graph.EdgeCount()
	}
	observability.Check().OnScanComplete(ctx, dir, files, edges, time.Since(start), err)
	return res, err
}

func scan(ctx context.Context, dir string, opts Options) (*Result, error) {
	modules, err := ListModules(dir, opts.Ext)
	if err != nil {
		return nil, err
	}

	sources := make(map[string][]string, len(modules))
	sizes := make(map[string]int, len(modules))
	for _, name := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sources[name] = ParseImports(data)
		sizes[name] = len(data)
		if opts.Logger != nil {
			opts.Logger.Debug("scanned module", "file", name, "bytes", len(data), "imports", len(sources[name]))
		}
	}

	g, dropped := Build(modules, sources)
	for _, n := range g.Nodes() {
		n.Meta["bytes"] = sizes[n.ID]
	}
	return &Result{Dir: dir, Modules: modules, Graph: g, Dropped: dropped}, nil
}

// ListModules returns the basenames of the regular files in dir whose name
// ends in ext, in lexical order.
func ListModules(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeInputMissing, "build output directory %s does not exist", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInputMissing, "%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", dir)
	}

	var modules []string
	for _, e := range entries {
		if !e.Type().IsRegular() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if strings.HasSuffix(e.Name(), ext) {
			modules = append(modules, e.Name())
		}
	}
	return modules, nil
}

// Build assembles the module graph from the enumerated modules and the
// import targets found in each. Targets that are not themselves modules
// never become edges; their count is returned as dropped.
func Build(modules []string, imports map[string][]string) (*dag.DAG, int) {
	g := dag.New(nil)
	for _, name := range modules {
		_ = g.AddNode(dag.Node{ID: name})
	}

	dropped := 0
	for _, name := range modules {
		for _, target := range imports[name] {
			if _, ok := g.Node(target); !ok {
				dropped++
				continue
			}
			_ = g.AddEdge(dag.Edge{From: name, To: target})
		}
	}
	return g, dropped
}
