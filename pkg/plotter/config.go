package plotter

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tbsim/tbsim/pkg/errors"
)

// LoadConfig reads figure settings from a TOML file, filling unset fields
// from the defaults. A missing file is not an error; the defaults apply.
//
// Example file:
//
//	width_in = 8.0
//	dpi = 150
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading figure config %s", path)
	}

	var override Config
	if err := toml.Unmarshal(data, &override); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing figure config %s", path)
	}
	cfg.merge(override)

	if err := cfg.validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// merge copies the set (non-zero) fields of o over c.
func (c *Config) merge(o Config) {
	if o.WidthIn != 0 {
		c.WidthIn = o.WidthIn
	}
	if o.HeightIn != 0 {
		c.HeightIn = o.HeightIn
	}
	if o.DPI != 0 {
		c.DPI = o.DPI
	}
	if o.LabelSize != 0 {
		c.LabelSize = o.LabelSize
	}
	if o.TickSize != 0 {
		c.TickSize = o.TickSize
	}
	if o.LineWidth != 0 {
		c.LineWidth = o.LineWidth
	}
	if o.MarkerSize != 0 {
		c.MarkerSize = o.MarkerSize
	}
}

func (c Config) validate() error {
	if c.WidthIn < 0 || c.HeightIn < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure size %gx%g must be positive", c.WidthIn, c.HeightIn)
	}
	if c.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi %d must be positive", c.DPI)
	}
	return nil
}
