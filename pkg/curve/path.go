package curve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brooklinpub/brooklin/pkg/errors"
)

// DefaultSegments is the number of line segments each Bézier command is
// flattened into.
const DefaultSegments = 24

// DefaultPath is the wave the hotspot menu follows when no path is
// configured.
const DefaultPath = "M0,300 C150,120 300,120 450,300 S750,480 900,300"

// pathTokenRe matches one command letter or one number of SVG path data.
var pathTokenRe = regexp.MustCompile(`[MmLlHhVvCcSsQqTtZzAa]|[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// ParsePath parses SVG path data and flattens it into a polyline.
//
// Supported commands are M, L, H, V, C, S, Q, T and Z in absolute and
// relative form, including implicit repetition ("M0 0 10 10" draws a line).
// Elliptical arcs (A) are rejected. Errors carry errors.ErrCodeInvalidFormat.
func ParsePath(d string) (*Polyline, error) {
	return ParsePathSegments(d, DefaultSegments)
}

// ParsePathSegments is ParsePath with an explicit flattening resolution.
func ParsePathSegments(d string, segments int) (*Polyline, error) {
	toks, err := tokenize(d)
	if err != nil {
		return nil, err
	}
	if segments < 1 {
		segments = 1
	}
	pr := pathReader{toks: toks, segments: segments}
	if err := pr.run(); err != nil {
		return nil, err
	}
	return NewPolyline(pr.out), nil
}

type token struct {
	cmd byte // non-zero for a command letter
	num float64
}

func tokenize(d string) ([]token, error) {
	var toks []token
	prev := 0
	for _, loc := range pathTokenRe.FindAllStringIndex(d, -1) {
		if gap := d[prev:loc[0]]; strings.Trim(gap, " \t\r\n,") != "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "path data: unexpected %q at offset %d", gap, prev)
		}
		prev = loc[1]

		s := d[loc[0]:loc[1]]
		if len(s) == 1 && isCommand(s[0]) {
			toks = append(toks, token{cmd: s[0]})
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "path data: bad number %q", s)
		}
		toks = append(toks, token{num: v})
	}
	if tail := d[prev:]; strings.Trim(tail, " \t\r\n,") != "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "path data: unexpected %q at offset %d", tail, prev)
	}
	if len(toks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "path data is empty")
	}
	if toks[0].cmd != 'M' && toks[0].cmd != 'm' {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "path data must start with a moveto")
	}
	return toks, nil
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtZzAa", c) >= 0
}

// argCount is the number of numbers each command consumes per repetition.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'Z': 0,
}

type pathReader struct {
	toks     []token
	pos      int
	segments int

	out   []Point
	cur   Point
	start Point // subpath start, target of Z
	ctrl  Point // last control point, reflected by S and T
	last  byte  // previous command (upper case)
}

func (r *pathReader) run() error {
	var cmd byte
	for r.pos < len(r.toks) {
		if c := r.toks[r.pos].cmd; c != 0 {
			cmd = c
			r.pos++
		} else if cmd == 'M' {
			cmd = 'L' // extra moveto pairs are lineto
		} else if cmd == 'm' {
			cmd = 'l'
		}

		upper := cmd &^ 0x20
		if upper == 'A' {
			return errors.New(errors.ErrCodeInvalidFormat, "path data: arc commands are not supported")
		}
		n := argCount[upper]
		args, err := r.numbers(n)
		if err != nil {
			return err
		}
		r.apply(upper, cmd != upper, args)
		r.last = upper

		// Z takes no arguments; a following number is an error.
		if upper == 'Z' && r.pos < len(r.toks) && r.toks[r.pos].cmd == 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "path data: number after closepath")
		}
	}
	return nil
}

func (r *pathReader) numbers(n int) ([]float64, error) {
	args := make([]float64, n)
	for i := range n {
		if r.pos >= len(r.toks) || r.toks[r.pos].cmd != 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "path data: command needs %d numbers", n)
		}
		args[i] = r.toks[r.pos].num
		r.pos++
	}
	return args, nil
}

func (r *pathReader) abs(rel bool, x, y float64) Point {
	if rel {
		return Point{X: r.cur.X + x, Y: r.cur.Y + y}
	}
	return Point{X: x, Y: y}
}

func (r *pathReader) apply(cmd byte, rel bool, a []float64) {
	switch cmd {
	case 'M':
		r.cur = r.abs(rel, a[0], a[1])
		r.start = r.cur
		r.out = append(r.out, r.cur)
		r.ctrl = r.cur
	case 'L':
		r.lineTo(r.abs(rel, a[0], a[1]))
	case 'H':
		x := a[0]
		if rel {
			x += r.cur.X
		}
		r.lineTo(Point{X: x, Y: r.cur.Y})
	case 'V':
		y := a[0]
		if rel {
			y += r.cur.Y
		}
		r.lineTo(Point{X: r.cur.X, Y: y})
	case 'Z':
		r.lineTo(r.start)
	case 'C':
		r.cubic(r.abs(rel, a[0], a[1]), r.abs(rel, a[2], a[3]), r.abs(rel, a[4], a[5]))
	case 'S':
		c1 := r.cur
		if r.last == 'C' || r.last == 'S' {
			c1 = reflect(r.ctrl, r.cur)
		}
		r.cubic(c1, r.abs(rel, a[0], a[1]), r.abs(rel, a[2], a[3]))
	case 'Q':
		r.quad(r.abs(rel, a[0], a[1]), r.abs(rel, a[2], a[3]))
	case 'T':
		c := r.cur
		if r.last == 'Q' || r.last == 'T' {
			c = reflect(r.ctrl, r.cur)
		}
		r.quad(c, r.abs(rel, a[0], a[1]))
	}
}

func reflect(ctrl, about Point) Point {
	return Point{X: 2*about.X - ctrl.X, Y: 2*about.Y - ctrl.Y}
}

func (r *pathReader) lineTo(p Point) {
	r.out = append(r.out, p)
	r.cur = p
	r.ctrl = p
}

func (r *pathReader) cubic(c1, c2, end Point) {
	p0 := r.cur
	for i := 1; i <= r.segments; i++ {
		t := float64(i) / float64(r.segments)
		u := 1 - t
		r.out = append(r.out, Point{
			X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
			Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
		})
	}
	r.cur = end
	r.ctrl = c2
}

func (r *pathReader) quad(c, end Point) {
	p0 := r.cur
	for i := 1; i <= r.segments; i++ {
		t := float64(i) / float64(r.segments)
		u := 1 - t
		r.out = append(r.out, Point{
			X: u*u*p0.X + 2*u*t*c.X + t*t*end.X,
			Y: u*u*p0.Y + 2*u*t*c.Y + t*t*end.Y,
		})
	}
	r.cur = end
	r.ctrl = c
}
