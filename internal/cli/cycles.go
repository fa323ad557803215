package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/pkg/dag/transform"
	"github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/imports"
	"github.com/brooklinpub/brooklin/pkg/observability"
	"github.com/brooklinpub/brooklin/pkg/render"
	"github.com/brooklinpub/brooklin/pkg/render/nodelink"
)

// CycleReport is the outcome of one cycle check.
type CycleReport struct {
	Dir     string            `json:"dir"`
	Modules int               `json:"modules"`
	Imports int               `json:"imports"`
	Dropped int               `json:"unresolved"`
	Cycles  []transform.Cycle `json:"cycles"`

	// Cuts lists the imports whose removal makes the graph acyclic, as
	// "from -> to". Only filled when requested.
	Cuts []string `json:"cuts,omitempty"`

	result *imports.Result
}

// CheckOptions configures [CheckCycles].
type CheckOptions struct {
	Ext     string
	Suggest bool

	// Stdout receives the success line, Stderr one line per cycle.
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger
}

// CheckCycles scans dir for circular imports. Each cycle is written to
// Stderr as "a.js -> b.js -> a.js"; a clean graph gets a success line on
// Stdout. It fails with errors.ErrCodeInputMissing when dir does not exist
// and errors.ErrCodeCyclesFound when any cycle was reported.
func CheckCycles(ctx context.Context, dir string, opts CheckOptions) (*CycleReport, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if err := errors.ValidateDir(dir); err != nil {
		return nil, err
	}

	rep, err := detect(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	if len(rep.Cycles) == 0 {
		fmt.Fprintf(opts.Stdout, "%s No circular imports found in %s (%d modules)\n",
			styleIconSuccess.Render(iconSuccess), dir, rep.Modules)
		return rep, nil
	}
	for _, c := range rep.Cycles {
		fmt.Fprintln(opts.Stderr, c.String())
	}
	return rep, errors.New(errors.ErrCodeCyclesFound, "%d circular import(s) in %s", len(rep.Cycles), dir)
}

// detect scans dir and enumerates cycles without printing anything.
func detect(ctx context.Context, dir string, opts CheckOptions) (*CycleReport, error) {
	res, err := imports.Scan(ctx, dir, imports.Options{Ext: opts.Ext, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	cycles := transform.FindCycles(res.Graph)
	observability.Check().OnCyclesFound(ctx, dir, len(cycles))

	rep := &CycleReport{
		Dir:     dir,
		Modules: len(res.Modules),
		Imports: res.Graph.EdgeCount(),
		Dropped: res.Dropped,
		Cycles:  cycles,
		result:  res,
	}
	if rep.Cycles == nil {
		rep.Cycles = []transform.Cycle{}
	}
	if opts.Suggest {
		for _, e := range transform.BackEdges(res.Graph) {
			rep.Cuts = append(rep.Cuts, e.From+" -> "+e.To)
		}
	}
	return rep, nil
}

type cyclesOpts struct {
	ext      string
	graph    string
	suggest  bool
	jsonOut  bool
	detailed bool
}

// cyclesCommand creates the cycles command.
func (c *CLI) cyclesCommand() *cobra.Command {
	var opts cyclesOpts

	cmd := &cobra.Command{
		Use:   "cycles [dir]",
		Short: "Check build output for circular imports",
		Long: `Scan the module files in a build output directory for static same-directory
imports and report every import cycle.

Each cycle is printed to stderr as "a.js -> b.js -> a.js". The exit status is
0 when the graph is acyclic, 1 when cycles were found and 2 when the
directory does not exist.`,
		Example: `  brooklin cycles
  brooklin cycles dist/assets --suggest
  brooklin cycles --graph modules.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cycles.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runCycles(cmd.Context(), dir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ext, "ext", "", "module file extension (default from config, .js)")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "write the module graph to a .dot, .svg, .pdf or .png file")
	cmd.Flags().BoolVar(&opts.suggest, "suggest", false, "list imports whose removal breaks every cycle")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print a JSON report instead of text")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include module sizes in the graph labels")

	return cmd
}

func (c *CLI) runCycles(ctx context.Context, dir string, opts cyclesOpts) error {
	ext := opts.ext
	if ext == "" {
		ext = c.Config.Cycles.Ext
	}
	if err := errors.ValidateModuleExt(ext); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	checkOpts := CheckOptions{Ext: ext, Suggest: opts.suggest, Stdout: stdout, Stderr: stderr, Logger: c.Logger}

	var (
		rep *CycleReport
		err error
	)
	if opts.jsonOut {
		if err = errors.ValidateDir(dir); err == nil {
			rep, err = detect(ctx, dir, checkOpts)
		}
	} else {
		rep, err = CheckCycles(ctx, dir, checkOpts)
	}
	if rep == nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d modules", rep.Modules))

	if opts.graph != "" {
		if gerr := writeGraph(ctx, rep, opts.graph, opts.detailed); gerr != nil {
			return gerr
		}
	}

	if opts.jsonOut {
		if jerr := printJSON(rep); jerr != nil {
			return jerr
		}
		if len(rep.Cycles) > 0 {
			return errors.New(errors.ErrCodeCyclesFound, "%d circular import(s) in %s", len(rep.Cycles), dir)
		}
		return nil
	}

	printStats(rep.Modules, rep.Imports, rep.Dropped)
	if opts.graph != "" {
		printFile(opts.graph)
	}
	if len(rep.Cuts) > 0 {
		printNewline()
		printInfo("Removing these imports breaks every cycle:")
		for _, cut := range rep.Cuts {
			printDetail("%s", cut)
		}
	} else if len(rep.Cycles) > 0 && !opts.suggest {
		printNextStep("Suggest imports to cut", "brooklin cycles "+dir+" --suggest")
	}
	return err
}

// writeGraph renders the scanned graph with cycle edges highlighted. The
// format follows the file extension; ".dot" writes the DOT source.
func writeGraph(ctx context.Context, rep *CycleReport, path string, detailed bool) error {
	format := render.FormatFromPath(path)
	if strings.EqualFold(filepath.Ext(path), ".dot") {
		format = "dot"
	}
	if format == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (want .dot, .svg, .pdf or .png)", filepath.Ext(path))
	}

	dot := nodelink.ToDOT(rep.result.Graph, nodelink.Options{
		Detailed: detailed,
		Cycles:   rep.Cycles,
	})
	data, err := nodelink.Render(ctx, dot, format)
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
