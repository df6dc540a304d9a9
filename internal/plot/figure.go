package plot

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/bocop/internal/interp"
)

var phaseEnd = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}

func xys(times, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}
	return pts
}

func newFigure(title, xlabel, ylabel string, style Style) *gplot.Plot {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	if style.Grid {
		p.Add(plotter.NewGrid())
	}
	return p
}

// Figure plots a variable against time.
func Figure(s interp.TimeSeries, style Style) (*gplot.Plot, error) {
	style = style.withDefaults()
	if len(s.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, s.Name)
	}
	c, err := ParseColor(style.Color)
	if err != nil {
		return nil, err
	}

	p := newFigure(style.Title, "time", s.Name, style)
	line, err := plotter.NewLine(xys(s.Times, s.Values))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(style.LineWidth)
	line.LineStyle.Color = c
	p.Add(line)
	return p, nil
}

// StepFigure draws the samples of s with the piecewise-constant fit on top.
// Each sample value is held over the interval that ends at it.
func StepFigure(s interp.TimeSeries, step *interp.Step, style Style) (*gplot.Plot, error) {
	style = style.withDefaults()
	if len(s.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, s.Name)
	}
	c, err := ParseColor(style.Color)
	if err != nil {
		return nil, err
	}

	p := newFigure(style.Title, "time", s.Name, style)

	points, err := plotter.NewScatter(xys(s.Times, s.Values))
	if err != nil {
		return nil, err
	}
	points.GlyphStyle.Color = color.Gray{Y: 0x80}
	points.GlyphStyle.Radius = vg.Points(1.5)
	points.GlyphStyle.Shape = draw.CircleGlyph{}

	var times, levels []float64
	for _, seg := range step.Segments() {
		if len(times) == 0 {
			times, levels = append(times, seg.Start), append(levels, seg.Level)
		}
		times, levels = append(times, seg.End), append(levels, seg.Level)
	}
	fit, err := plotter.NewLine(xys(times, levels))
	if err != nil {
		return nil, err
	}
	fit.StepStyle = plotter.PreStep
	fit.LineStyle.Width = vg.Points(style.LineWidth)
	fit.LineStyle.Color = c

	p.Add(points, fit)
	p.Legend.Add("samples", points)
	p.Legend.Add("step fit", fit)
	return p, nil
}

// PhaseFigure draws y against x, shading the samples from the start color to
// red as time advances.
func PhaseFigure(ph *Phase, style Style) (*gplot.Plot, error) {
	style = style.withDefaults()
	if ph == nil || len(ph.Points) == 0 {
		return nil, ErrEmpty
	}
	start, err := ParseColor(style.Color)
	if err != nil {
		return nil, err
	}

	p := newFigure(style.Title, ph.XName, ph.YName, style)

	pts := make(plotter.XYs, len(ph.Points))
	for i, pt := range ph.Points {
		pts[i].X, pts[i].Y = pt.X, pt.Y
	}
	path, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	path.LineStyle.Width = vg.Points(style.LineWidth / 2)
	path.LineStyle.Color = color.Gray{Y: 0xb0}

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	marks.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  lerpColor(start, phaseEnd, ph.timeFraction(i)),
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(path, marks)
	return p, nil
}

// Grid lays out one figure per series, row by row.
type Grid struct {
	Rows, Cols int
	Title      string
	Plots      [][]*gplot.Plot
}

// NewGrid expects rows*cols to equal the number of series.
func NewGrid(series []interp.TimeSeries, rows, cols int, style Style) (*Grid, error) {
	if rows <= 0 || cols <= 0 || rows*cols != len(series) {
		return nil, fmt.Errorf("plot: a %dx%d grid cannot hold %d series", rows, cols, len(series))
	}

	g := &Grid{Rows: rows, Cols: cols, Title: style.Title, Plots: make([][]*gplot.Plot, rows)}
	cellStyle := style
	cellStyle.Title = ""
	for r := range g.Plots {
		g.Plots[r] = make([]*gplot.Plot, cols)
		for c := range g.Plots[r] {
			p, err := Figure(series[r*cols+c], cellStyle)
			if err != nil {
				return nil, err
			}
			g.Plots[r][c] = p
		}
	}
	return g, nil
}

// WriteTo renders the grid; each cell gets the style's image size.
func (g *Grid) WriteTo(w io.Writer, format string, style Style) error {
	style = style.withDefaults()
	width := vg.Length(style.ImageWidth) * vg.Inch * vg.Length(g.Cols)
	height := vg.Length(style.ImageHeight) * vg.Inch * vg.Length(g.Rows)

	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	dc := draw.New(c)

	if g.Title != "" {
		sty := gplot.New().Title.TextStyle
		descent := sty.FontExtents().Descent
		dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y + descent}, g.Title)
		dc = draw.Crop(dc, 0, 0, 0, -2*sty.Font.Size)
	}

	tiles := draw.Tiles{
		Rows: g.Rows, Cols: g.Cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(2), PadBottom: vg.Points(2),
		PadLeft: vg.Points(2), PadRight: vg.Points(2),
	}
	canvases := gplot.Align(g.Plots, tiles, dc)
	for r := range g.Plots {
		for col := range g.Plots[r] {
			g.Plots[r][col].Draw(canvases[r][col])
		}
	}

	_, err = c.WriteTo(w)
	return err
}

// Save writes the grid, picking the format from the file extension.
func (g *Grid) Save(path string, style Style) error {
	return saveTo(path, func(w io.Writer, format string) error {
		return g.WriteTo(w, format, style)
	})
}

// WriteFigure renders a single figure at the style's image size.
func WriteFigure(w io.Writer, p *gplot.Plot, format string, style Style) error {
	style = style.withDefaults()
	wt, err := p.WriterTo(vg.Length(style.ImageWidth)*vg.Inch, vg.Length(style.ImageHeight)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveFigure writes p to path, picking the format from the file extension.
func SaveFigure(path string, p *gplot.Plot, style Style) error {
	return saveTo(path, func(w io.Writer, format string) error {
		return WriteFigure(w, p, format, style)
	})
}

// Format returns the image format implied by a file name.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func saveTo(path string, write func(io.Writer, string) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := write(bw, Format(path)); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
