package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/placement"
	"github.com/brooklinpub/brooklin/pkg/render"
	"github.com/brooklinpub/brooklin/pkg/render/sink"
)

type placeOpts struct {
	count    int
	width    float64
	height   float64
	path     string
	pathFile string
	output   string
	labels   string
	specials bool
	bounds   bool
	padding  float64
	minSize  float64
	noCache  bool
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place hotspots along a curve",
		Long: `Resolve the positions of N circular hotspots along a curve inside a viewport.

The curve is SVG path data, stretched onto the padded viewport. Without
--output the placements are printed as a table; with it they are written as
SVG, JSON, PDF or PNG depending on the file extension.`,
		Example: `  brooklin place --count 6 --width 1280 --height 720
  brooklin place --count 4 --path "M0,0 C50,100 150,100 200,0" -o menu.svg
  brooklin place --count 8 --specials -o hotspots.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 5, "number of hotspots")
	cmd.Flags().Float64Var(&opts.width, "width", 1200, "viewport width in px")
	cmd.Flags().Float64Var(&opts.height, "height", 600, "viewport height in px")
	cmd.Flags().StringVar(&opts.path, "path", "", "SVG path data for the curve (default from config)")
	cmd.Flags().StringVar(&opts.pathFile, "path-file", "", "read SVG path data from a file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg, .json, .pdf, .png)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "comma-separated hotspot labels, in order")
	cmd.Flags().BoolVar(&opts.specials, "specials", false, "label hotspots with the active specials")
	cmd.Flags().BoolVar(&opts.bounds, "bounds", false, "outline the padded area in SVG output")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "override the configured padding")
	cmd.Flags().Float64Var(&opts.minSize, "min-size", 0, "override the configured minimum hotspot size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the specials cache")
	cmd.MarkFlagsMutuallyExclusive("path", "path-file")
	cmd.MarkFlagsMutuallyExclusive("labels", "specials")

	return cmd
}

func (c *CLI) runPlace(ctx context.Context, opts placeOpts) error {
	if opts.count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--count must be at least 1")
	}
	if opts.width <= 0 || opts.height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--width and --height must be positive")
	}

	path, err := c.loadCurve(opts.path, opts.pathFile)
	if err != nil {
		return err
	}

	popts := c.Config.Placement.Options
	if opts.padding > 0 {
		popts.Padding = opts.padding
	}
	if opts.minSize > 0 {
		popts.MinSize = opts.minSize
	}
	popts = popts.WithDefaults()

	vp := placement.Viewport{Width: opts.width, Height: opts.height}
	fitted := fitCurve(path, vp, popts.Padding)
	layout, ok := placement.ResolveContext(ctx, fitted, opts.count, vp, popts)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "viewport %gx%g leaves no room inside padding %g", opts.width, opts.height, popts.Padding)
	}

	hotspots, err := c.hotspotLabels(ctx, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		printLayout(layout, hotspots)
		return nil
	}
	data, err := encodeLayout(ctx, layout, opts.output, fitted, hotspots, opts.bounds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Placed %d hotspots at size %.1f", len(layout.Placements), layout.Size)
	printFile(opts.output)
	return nil
}

// loadCurve parses the curve from a flag, a file or the config.
func (c *CLI) loadCurve(d, file string) (*curve.Polyline, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read path file")
		}
		d = string(data)
	}
	if strings.TrimSpace(d) == "" {
		d = c.Config.Placement.Path
	}
	return curve.ParsePath(d)
}

// fitCurve stretches path over the padded viewport.
func fitCurve(path *curve.Polyline, vp placement.Viewport, padding float64) *curve.Polyline {
	return curve.Fit(path, curve.Rect{
		MinX: padding,
		MinY: padding,
		MaxX: vp.Width - padding,
		MaxY: vp.Height - padding,
	})
}

func (c *CLI) hotspotLabels(ctx context.Context, opts placeOpts) ([]sink.Hotspot, error) {
	if opts.labels != "" {
		var hs []sink.Hotspot
		for _, l := range strings.Split(opts.labels, ",") {
			hs = append(hs, sink.Hotspot{Label: strings.TrimSpace(l)})
		}
		return hs, nil
	}
	if !opts.specials {
		return nil, nil
	}

	client, closeCache, err := c.newSpecialsClient(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	spin := newSpinnerWithContext(ctx, "Fetching active specials...")
	spin.Start()
	list, err := client.Active(ctx, opts.noCache)
	spin.Stop()
	if err != nil {
		return nil, fmt.Errorf("fetch specials: %w", err)
	}
	hs := make([]sink.Hotspot, len(list))
	for i, s := range list {
		hs[i] = sink.Hotspot{Label: s.Title, URL: client.BaseURL() + "/specials/" + s.ID}
	}
	return hs, nil
}

// encodeLayout renders l in the format implied by the output path.
func encodeLayout(ctx context.Context, l placement.Layout, path string, c *curve.Polyline, hs []sink.Hotspot, bounds bool) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == sink.FormatJSON {
		return sink.RenderJSON(l, sink.WithJSONCurve(c.Points()), sink.WithJSONHotspots(hs))
	}

	format := render.FormatFromPath(path)
	if format == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want .svg, .json, .pdf or .png)", filepath.Ext(path))
	}
	svgOpts := []sink.SVGOption{sink.WithCurve(c.Points()), sink.WithHotspots(hs)}
	if bounds {
		svgOpts = append(svgOpts, sink.WithBounds())
	}
	return render.Convert(ctx, sink.RenderSVG(l, svgOpts...), format)
}

// printLayout prints a layout summary and a placement table.
func printLayout(l placement.Layout, hs []sink.Hotspot) {
	printKeyValue("Viewport", fmt.Sprintf("%gx%g (%s)", l.Viewport.Width, l.Viewport.Height, l.Device))
	printKeyValue("Size", StyleNumber.Render(fmt.Sprintf("%.1f", l.Size)))
	printKeyValue("Shrinks", strconv.Itoa(l.ShrinkAttempts))
	printKeyValue("Jitter", strconv.Itoa(l.JitterPasses))
	if l.Fallback {
		printWarning("Fell back to the minimum size")
	}
	if l.Collision {
		printWarning("Some hotspots still overlap")
	}
	printNewline()
	fmt.Fprintln(stdout, renderTable([]string{"#", "X", "Y", "Size", "Label"}, placementRows(l, hs)))
}

func placementRows(l placement.Layout, hs []sink.Hotspot) [][]string {
	rows := make([][]string, 0, len(l.Placements))
	for _, p := range l.Placements {
		label := ""
		if p.Index <= len(hs) {
			label = hs[p.Index-1].Label
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			fmt.Sprintf("%.1f", p.X),
			fmt.Sprintf("%.1f", p.Y),
			fmt.Sprintf("%.1f", p.Size),
			label,
		})
	}
	return rows
}
