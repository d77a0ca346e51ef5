package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/taylor-green/internal/vortex"
)

const (
	// contourLevels is the number of colour bands in a filled contour.
	contourLevels = 20
	dpi           = 96

	// colourBarShare is the fraction of the image width given to the colour bar.
	colourBarShare = 0.15
)

// Figure is one filled-contour plot of a scalar field, optionally overlaid
// with velocity arrows.
type Figure struct {
	Name   string // file-safe identifier, e.g. "u_theory"
	Title  string
	Field  vortex.Field
	U, V   vortex.Field // arrow components, used when Quiver is set
	Range  [2]float64   // colour limits
	Quiver bool
}

// Draw renders f on g into a widthPx by heightPx image: the field on equal
// x and y scales with a colour bar for f.Range on its right.
func Draw(g vortex.Grid, f Figure, widthPx, heightPx int) (image.Image, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", widthPx, heightPx)
	}

	c := vgimg.NewWith(
		vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))),
		vgimg.UseDPI(dpi),
	)
	l, err := layoutFigure(g, f, draw.New(c))
	if err != nil {
		return nil, err
	}
	l.field.Draw(l.fieldArea)
	l.bar.Draw(l.barArea)
	return c.Image(), nil
}

// figureLayout places the field plot and its colour bar side by side.
type figureLayout struct {
	field     *plot.Plot
	fieldArea draw.Canvas
	bar       *plot.Plot
	barArea   draw.Canvas
	colourBar *plotter.ColorBar
}

func layoutFigure(g vortex.Grid, f Figure, dc draw.Canvas) (figureLayout, error) {
	p, err := newPlot(g, f)
	if err != nil {
		return figureLayout{}, err
	}

	barWidth := (dc.Max.X - dc.Min.X) * colourBarShare
	fieldArea := draw.Crop(dc, 0, -barWidth, 0, 0)
	equalAspect(p, fieldArea)

	cb := &plotter.ColorBar{
		ColorMap: JetMap(f.Range[0], f.Range[1]),
		Vertical: true,
		Colors:   contourLevels,
	}
	bar := plot.New()
	bar.HideX()
	bar.X.Padding = 0
	bar.Add(cb)

	// Line the bar up with the field's data area.
	data := p.DataCanvas(fieldArea)
	barArea := draw.Crop(dc, dc.Max.X-dc.Min.X-barWidth, 0, 0, 0)
	barArea.Min.Y, barArea.Max.Y = data.Min.Y, data.Max.Y

	return figureLayout{
		field:     p,
		fieldArea: fieldArea,
		bar:       bar,
		barArea:   barArea,
		colourBar: cb,
	}, nil
}

// equalAspect widens one axis range so x and y have the same data units per
// length on the canvas. Tick labels move the data area when ranges change,
// so the adjustment is applied twice.
func equalAspect(p *plot.Plot, c draw.Canvas) {
	for range 2 {
		da := p.DataCanvas(c)
		w, h := float64(da.Max.X-da.Min.X), float64(da.Max.Y-da.Min.Y)
		if w <= 0 || h <= 0 {
			return
		}
		xr, yr := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
		if xr/w > yr/h {
			grow(&p.Y.Min, &p.Y.Max, xr/w*h)
		} else {
			grow(&p.X.Min, &p.X.Max, yr/h*w)
		}
	}
}

// grow recentres [*lo, *hi] to span width, never shrinking it.
func grow(lo, hi *float64, width float64) {
	if width <= *hi-*lo {
		return
	}
	mid := (*lo + *hi) / 2
	*lo, *hi = mid-width/2, mid+width/2
}

func newPlot(g vortex.Grid, f Figure) (*plot.Plot, error) {
	if f.Field.Nx() != g.Nx() || f.Field.Ny() != g.Ny() {
		return nil, fmt.Errorf("figure %q: field is %dx%d on a %dx%d grid",
			f.Name, f.Field.Nx(), f.Field.Ny(), g.Nx(), g.Ny())
	}
	if g.Nx() < 2 || g.Ny() < 2 {
		return nil, errors.New("rendering needs at least 2 points per axis")
	}
	if !(f.Range[1] > f.Range[0]) {
		return nil, fmt.Errorf("figure %q: colour range [%g, %g] is empty", f.Name, f.Range[0], f.Range[1])
	}

	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"

	jet := JetMap(f.Range[0], f.Range[1]).Palette(contourLevels)
	colors := jet.Colors()
	hm := plotter.NewHeatMap(fieldGrid{g: g, f: f.Field}, jet)
	hm.Min, hm.Max = f.Range[0], f.Range[1]
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = color.Transparent
	p.Add(hm)

	if f.Quiver {
		if !f.U.SameShape(f.Field) || !f.V.SameShape(f.Field) {
			return nil, fmt.Errorf("figure %q: quiver components do not match the field", f.Name)
		}
		q := plotter.NewField(vectorGrid{g: g, u: f.U, v: f.V})
		q.LineStyle.Color = color.Black
		q.LineStyle.Width = vg.Points(0.5)
		p.Add(q)
	}
	return p, nil
}

// fieldGrid adapts a field to plotter.GridXYZ with columns along x.
type fieldGrid struct {
	g vortex.Grid
	f vortex.Field
}

func (fg fieldGrid) Dims() (c, r int)    { return fg.g.Nx(), fg.g.Ny() }
func (fg fieldGrid) Z(c, r int) float64 { return fg.f.At(c, r) }
func (fg fieldGrid) X(c int) float64    { return fg.g.X[c] }
func (fg fieldGrid) Y(r int) float64    { return fg.g.Y[r] }

// vectorGrid adapts two velocity fields to plotter.FieldXY.
type vectorGrid struct {
	g    vortex.Grid
	u, v vortex.Field
}

func (vgd vectorGrid) Dims() (c, r int) { return vgd.g.Nx(), vgd.g.Ny() }
func (vgd vectorGrid) Vector(c, r int) plotter.XY {
	return plotter.XY{X: vgd.u.At(c, r), Y: vgd.v.At(c, r)}
}
func (vgd vectorGrid) X(c int) float64 { return vgd.g.X[c] }
func (vgd vectorGrid) Y(r int) float64 { return vgd.g.Y[r] }
