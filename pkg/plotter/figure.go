package plotter

import (
	"image/color"

	"gonum.org/v1/plot"
	gplot "gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/system"
)

// Figure is a styled plot bound to a fixed output basename.
type Figure struct {
	plot *plot.Plot
	cfg  Config
	base string
}

// newFigure creates an empty styled plot.
func newFigure(cfg Config, base, xlabel, ylabel string) *Figure {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Label.TextStyle.Font.Size = vg.Points(cfg.LabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(cfg.LabelSize)
	p.X.Tick.Label.Font.Size = vg.Points(cfg.TickSize)
	p.Y.Tick.Label.Font.Size = vg.Points(cfg.TickSize)
	return &Figure{plot: p, cfg: cfg, base: base}
}

// Conductance builds a line plot of transmission against the swept quantity.
// xlabel names the swept quantity, e.g. "energy [t]" or "flux [flux quantum]".
func Conductance(cfg Config, xlabel string, x, t []float64) (*Figure, error) {
	if len(x) != len(t) || len(x) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"curve needs matching non-empty x and t, got %d and %d", len(x), len(t))
	}

	f := newFigure(cfg, BaseConductance, xlabel, "conductance [e^2/h]")
	line, err := gplot.NewLine(toXYs(x, t))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building curve")
	}
	line.LineStyle.Width = vg.Points(cfg.LineWidth)
	line.LineStyle.Color = plotutil.Color(0)
	f.plot.Add(line)
	return f, nil
}

// Bands builds a multi-line plot of a lead band structure: one line per band
// over the momentum grid.
func Bands(cfg Config, momenta []float64, energies [][]float64) (*Figure, error) {
	if len(momenta) == 0 || len(energies) != len(momenta) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"band structure needs one energy slice per momentum, got %d and %d",
			len(energies), len(momenta))
	}

	f := newFigure(cfg, BaseBands, "momentum [1/lattice constant]", "energy [t]")
	bands := len(energies[0])
	for b := 0; b < bands; b++ {
		ys := make([]float64, len(momenta))
		for i := range momenta {
			if len(energies[i]) != bands {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"ragged band structure: %d bands at momentum %d, expected %d",
					len(energies[i]), i, bands)
			}
			ys[i] = energies[i][b]
		}
		line, err := gplot.NewLine(toXYs(momenta, ys))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "building band %d", b)
		}
		line.LineStyle.Width = vg.Points(cfg.LineWidth)
		line.LineStyle.Color = plotutil.Color(b)
		f.plot.Add(line)
	}
	return f, nil
}

// System builds a geometry plot of a finalized system: one marker per site,
// colored by site family, with hoppings drawn as segments.
func System(cfg Config, sys *system.FiniteSystem) (*Figure, error) {
	if sys.NumSites() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot plot an empty system")
	}

	f := newFigure(cfg, BaseSystem, "x [lattice constant]", "y [lattice constant]")

	// Hoppings first so markers draw on top.
	sites := sys.Sites()
	hopColor := color.Gray{Y: 140}
	for _, hop := range sys.Hoppings() {
		x1, y1 := sites[hop.I].Pos()
		x2, y2 := sites[hop.J].Pos()
		seg, err := gplot.NewLine(gplot.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "building hopping segment")
		}
		seg.LineStyle.Width = vg.Points(cfg.LineWidth / 2)
		seg.LineStyle.Color = hopColor
		f.plot.Add(seg)
	}

	// Group sites by family for per-family marker colors. Canonical site
	// order means families come out in a stable order too.
	var familyOrder []string
	byFamily := make(map[string]gplot.XYs)
	for _, site := range sites {
		name := site.Family.Name()
		if _, ok := byFamily[name]; !ok {
			familyOrder = append(familyOrder, name)
		}
		x, y := site.Pos()
		byFamily[name] = append(byFamily[name], gplot.XY{X: x, Y: y})
	}
	for i, name := range familyOrder {
		scatter, err := gplot.NewScatter(byFamily[name])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "building site markers")
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(cfg.MarkerSize)
		scatter.GlyphStyle.Color = plotutil.Color(i)
		f.plot.Add(scatter)
	}
	return f, nil
}

func toXYs(x, y []float64) gplot.XYs {
	xys := make(gplot.XYs, len(x))
	for i := range x {
		xys[i] = gplot.XY{X: x[i], Y: y[i]}
	}
	return xys
}
