package plot

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/bocop/internal/interp"
)

// PhasePoint is one sample of a phase portrait.
type PhasePoint struct {
	T, X, Y float64
}

// Phase holds two variables plotted against each other, ordered by time.
type Phase struct {
	XName, YName string
	Points       []PhasePoint
}

// NewPhase pairs x and y sample by sample. Both must share the same times.
func NewPhase(x, y interp.TimeSeries) (*Phase, error) {
	if len(x.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, x.Name)
	}
	if len(x.Times) != len(y.Times) || !floats.Equal(x.Times, y.Times) {
		return nil, fmt.Errorf("%w: %s and %s", ErrMismatch, x.Name, y.Name)
	}

	p := &Phase{XName: x.Name, YName: y.Name, Points: make([]PhasePoint, len(x.Times))}
	for i, t := range x.Times {
		p.Points[i] = PhasePoint{T: t, X: x.Values[i], Y: y.Values[i]}
	}
	return p, nil
}

// timeFraction maps the i-th point to [0, 1] along the time axis.
func (p *Phase) timeFraction(i int) float64 {
	t0, t1 := p.Points[0].T, p.Points[len(p.Points)-1].T
	if t1 == t0 {
		return 0
	}
	return (p.Points[i].T - t0) / (t1 - t0)
}

func (p *Phase) bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	return
}

// phaseMarks grade points from the start of the horizon to its end.
var phaseMarks = []rune{'.', 'o', 'O', '@'}

// PhaseASCII renders the portrait on a width x height character grid. Later
// samples overwrite earlier ones and use heavier marks.
func PhaseASCII(p *Phase, width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := p.bounds()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(x, y float64) (int, int) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col
	}

	if minX <= 0 && maxX >= 0 {
		_, col := cell(0, minY)
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _ := cell(minX, 0)
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for i, pt := range p.Points {
		row, col := cell(pt.X, pt.Y)
		mark := int(p.timeFraction(i) * float64(len(phaseMarks)))
		canvas[row][col] = phaseMarks[min(mark, len(phaseMarks)-1)]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s (%s early, %s late)\n", p.YName, p.XName, string(phaseMarks[0]), string(phaseMarks[len(phaseMarks)-1]))
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
