package plotter

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/tbsim/tbsim/pkg/errors"
)

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
		}
	}
	return nil
}

// SaveAll writes the figure into dir once per requested format, using the
// figure's fixed basename. It returns the written paths. The directory is
// created if needed.
func (f *Figure) SaveAll(dir string, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = []string{FormatPNG}
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating output directory %s", dir)
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, f.base+"."+format)
		var err error
		switch format {
		case FormatPNG:
			err = f.writePNG(path)
		case FormatPDF:
			err = f.writePDF(path)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writePNG rasters the figure at the configured DPI.
func (f *Figure) writePNG(path string) error {
	canvas := vgimg.NewWith(
		vgimg.UseWH(f.cfg.width(), f.cfg.height()),
		vgimg.UseDPI(f.cfg.DPI),
	)
	f.plot.Draw(draw.New(canvas))

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return w.Close()
}

// writePDF writes the figure as a vector PDF.
func (f *Figure) writePDF(path string) error {
	canvas := vgpdf.New(f.cfg.width(), f.cfg.height())
	f.plot.Draw(draw.New(canvas))

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := canvas.WriteTo(w); err != nil {
		return err
	}
	return w.Close()
}
