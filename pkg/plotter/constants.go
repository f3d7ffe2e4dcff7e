// Package plotter renders transmission curves, band structures and system
// geometry to image files.
//
// All figures share one set of sizing constants so that plots from different
// examples line up when placed side by side: same canvas, same fonts, same
// resolution. Output filenames are fixed per figure kind; callers choose
// only the directory.
package plotter

import "gonum.org/v1/plot/vg"

// Shared figure constants. Every figure in the repository uses these unless
// a config file overrides them.
const (
	// DefaultWidthIn and DefaultHeightIn size the figure canvas in inches.
	DefaultWidthIn  = 6.0
	DefaultHeightIn = 4.0

	// DefaultDPI is the raster export resolution.
	DefaultDPI = 300

	// DefaultLabelSize and DefaultTickSize are font sizes in points for
	// axis labels and tick labels.
	DefaultLabelSize = 12.0
	DefaultTickSize  = 10.0

	// DefaultLineWidth is the curve stroke width in points.
	DefaultLineWidth = 1.5

	// DefaultMarkerSize is the site marker radius in points for geometry
	// plots.
	DefaultMarkerSize = 2.5
)

// Fixed output basenames per figure kind. Export appends one extension per
// requested format.
const (
	BaseConductance = "conductance"
	BaseBands       = "bands"
	BaseSystem      = "system"
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatPDF: true,
}

// Config carries the figure settings actually used for a render. The zero
// value is not useful; start from DefaultConfig.
type Config struct {
	WidthIn    float64 `toml:"width_in"`
	HeightIn   float64 `toml:"height_in"`
	DPI        int     `toml:"dpi"`
	LabelSize  float64 `toml:"label_size"`
	TickSize   float64 `toml:"tick_size"`
	LineWidth  float64 `toml:"line_width"`
	MarkerSize float64 `toml:"marker_size"`
}

// DefaultConfig returns the compiled-in figure settings.
func DefaultConfig() Config {
	return Config{
		WidthIn:    DefaultWidthIn,
		HeightIn:   DefaultHeightIn,
		DPI:        DefaultDPI,
		LabelSize:  DefaultLabelSize,
		TickSize:   DefaultTickSize,
		LineWidth:  DefaultLineWidth,
		MarkerSize: DefaultMarkerSize,
	}
}

func (c Config) width() vg.Length  { return vg.Length(c.WidthIn) * vg.Inch }
func (c Config) height() vg.Length { return vg.Length(c.HeightIn) * vg.Inch }
