// Package scenario loads declarative simulation definitions from HCL files.
//
// A scenario file describes a geometry, a sweep and the output artifacts in
// one place, so a complete transport calculation runs without writing Go:
//
//	name = "wire"
//
//	geometry {
//	  kind    = "wire"
//	  length  = 30
//	  width   = 10
//	  hopping = -1.0
//	}
//
//	sweep {
//	  quantity = "energy"
//	  min      = 0.0
//	  max      = 2.0
//	  samples  = 200
//	}
//
//	output {
//	  directory = "out"
//	  formats   = ["png", "pdf"]
//	}
//
// Expressions may use the constant pi, e.g. `max = 2 * pi` for flux sweeps.
package scenario

import (
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/plotter"
	"github.com/tbsim/tbsim/pkg/sweep"
)

// Geometry kinds.
const (
	KindWire = "wire"
	KindRing = "ring"
)

// Lattice kinds.
const (
	LatticeSquare    = "square"
	LatticeHoneycomb = "honeycomb"
)

// Scenario is a complete simulation definition.
type Scenario struct {
	Name     string      `hcl:"name,optional"`
	Geometry *Geometry   `hcl:"geometry,block"`
	Sweep    *SweepBlock `hcl:"sweep,block"`
	Output   *Output     `hcl:"output,block"`
}

// Geometry describes the scattering region and its leads.
type Geometry struct {
	// Kind selects the construction: KindWire or KindRing.
	Kind string `hcl:"kind"`

	// Lattice selects the underlying lattice. Defaults to square.
	// Rings support only the square lattice.
	Lattice string `hcl:"lattice,optional"`

	// Length and Width size a wire in lattice constants.
	Length int `hcl:"length,optional"`
	Width  int `hcl:"width,optional"`

	// InnerRadius and OuterRadius size a ring.
	InnerRadius float64 `hcl:"inner_radius,optional"`
	OuterRadius float64 `hcl:"outer_radius,optional"`

	// LeadWidth is the transverse lead size for rings; defaults to the
	// annulus thickness.
	LeadWidth int `hcl:"lead_width,optional"`

	// Onsite and Hopping are the uniform matrix elements. Onsite defaults
	// to 4|t| on the square lattice and 0 on honeycomb; Hopping defaults
	// to -1.
	Onsite  *float64 `hcl:"onsite,optional"`
	Hopping *float64 `hcl:"hopping,optional"`
}

// SweepBlock configures the parameter sweep.
type SweepBlock struct {
	Quantity string  `hcl:"quantity,optional"`
	Min      float64 `hcl:"min"`
	Max      float64 `hcl:"max"`
	Samples  int     `hcl:"samples"`

	// Energy is the fixed carrier energy for flux sweeps.
	Energy   float64 `hcl:"energy,optional"`
	FromLead int     `hcl:"from_lead,optional"`
	ToLead   int     `hcl:"to_lead,optional"`
}

// Output selects artifacts and their destination.
type Output struct {
	Directory  string   `hcl:"directory,optional"`
	Formats    []string `hcl:"formats,optional"`
	PlotSystem bool     `hcl:"plot_system,optional"`
}

// evalContext returns the expression scope scenario files evaluate in.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi": cty.NumberFloatVal(math.Pi),
		},
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, diags, "parsing scenario %s", path)
	}
	return decode(file)
}

// Parse decodes and validates a scenario from source bytes. The filename is
// used in diagnostics only.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, diags, "parsing scenario %s", filename)
	}
	return decode(file)
}

func decode(file *hcl.File) (*Scenario, error) {
	var s Scenario
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &s); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, diags, "decoding scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario and fills in defaults. Parse and Load call
// it automatically; scenarios assembled in code (e.g. from CLI flags) must
// call it before BuildSystem.
func (s *Scenario) Validate() error {
	if s.Geometry == nil {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario needs a geometry block")
	}
	if s.Sweep == nil {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario needs a sweep block")
	}
	g := s.Geometry

	if g.Lattice == "" {
		g.Lattice = LatticeSquare
	}
	if g.Lattice != LatticeSquare && g.Lattice != LatticeHoneycomb {
		return errors.New(errors.ErrCodeInvalidScenario, "unknown lattice %q", g.Lattice)
	}
	if g.Hopping == nil {
		t := -1.0
		g.Hopping = &t
	}
	if g.Onsite == nil {
		e := 0.0
		if g.Lattice == LatticeSquare {
			e = 4 * math.Abs(*g.Hopping)
		}
		g.Onsite = &e
	}

	switch g.Kind {
	case KindWire:
		if g.Length <= 0 || g.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidScenario,
				"wire needs positive length and width, got %dx%d", g.Length, g.Width)
		}
	case KindRing:
		if g.Lattice != LatticeSquare {
			return errors.New(errors.ErrCodeInvalidScenario, "rings support only the square lattice")
		}
		if g.InnerRadius <= 0 || g.OuterRadius <= g.InnerRadius {
			return errors.New(errors.ErrCodeInvalidScenario,
				"ring needs 0 < inner_radius < outer_radius, got %g and %g",
				g.InnerRadius, g.OuterRadius)
		}
		if g.LeadWidth == 0 {
			g.LeadWidth = int(g.OuterRadius - g.InnerRadius)
		}
		if g.LeadWidth <= 0 {
			return errors.New(errors.ErrCodeInvalidScenario, "ring lead_width must be positive")
		}
	default:
		return errors.New(errors.ErrCodeInvalidScenario, "unknown geometry kind %q", g.Kind)
	}

	if s.Output == nil {
		s.Output = &Output{}
	}
	if s.Output.Directory == "" {
		s.Output.Directory = "out"
	}
	if len(s.Output.Formats) == 0 {
		s.Output.Formats = []string{plotter.FormatPNG}
	}
	if err := plotter.ValidateFormats(s.Output.Formats); err != nil {
		return err
	}

	// Sweep grid and lead pair are validated by the sweep options proper.
	opts := s.SweepOptions()
	return opts.ValidateAndSetDefaults()
}

// SweepOptions converts the sweep block into runner options.
func (s *Scenario) SweepOptions() sweep.Options {
	return sweep.Options{
		Quantity: s.Sweep.Quantity,
		Range: sweep.Range{
			Min:     s.Sweep.Min,
			Max:     s.Sweep.Max,
			Samples: s.Sweep.Samples,
		},
		Energy:   s.Sweep.Energy,
		FromLead: s.Sweep.FromLead,
		ToLead:   s.Sweep.ToLead,
	}
}
