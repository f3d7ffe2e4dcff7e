package scenario

import (
	"math"
	"testing"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/sweep"
)

const wireSrc = `
name = "wire"

geometry {
  kind   = "wire"
  length = 8
  width  = 3
}

sweep {
  quantity = "energy"
  min      = 0.0
  max      = 2.0
  samples  = 50
}

output {
  directory = "out"
  formats   = ["png", "pdf"]
}
`

func TestParseWire(t *testing.T) {
	s, err := Parse([]byte(wireSrc), "wire.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Name != "wire" {
		t.Errorf("Name = %q, want wire", s.Name)
	}
	if s.Geometry.Lattice != LatticeSquare {
		t.Errorf("Lattice = %q, want default square", s.Geometry.Lattice)
	}
	if got := *s.Geometry.Hopping; got != -1 {
		t.Errorf("Hopping = %g, want default -1", got)
	}
	if got := *s.Geometry.Onsite; got != 4 {
		t.Errorf("Onsite = %g, want default 4", got)
	}

	opts := s.SweepOptions()
	if opts.Quantity != sweep.QuantityEnergy || opts.Range.Samples != 50 {
		t.Errorf("SweepOptions() = %+v", opts)
	}
	if len(s.Output.Formats) != 2 {
		t.Errorf("Formats = %v, want [png pdf]", s.Output.Formats)
	}
}

func TestParsePiExpression(t *testing.T) {
	src := `
geometry {
  kind         = "ring"
  inner_radius = 5
  outer_radius = 9
}

sweep {
  quantity = "flux"
  min      = -2 * pi
  max      = 2 * pi
  samples  = 100
  energy   = 0.5
}
`
	s, err := Parse([]byte(src), "ring.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if math.Abs(s.Sweep.Min+2*math.Pi) > 1e-12 || math.Abs(s.Sweep.Max-2*math.Pi) > 1e-12 {
		t.Errorf("flux range = [%g, %g], want [-2pi, 2pi]", s.Sweep.Min, s.Sweep.Max)
	}
	if s.Geometry.LeadWidth != 4 {
		t.Errorf("LeadWidth = %d, want annulus thickness 4", s.Geometry.LeadWidth)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"MissingGeometry", `
sweep {
  min = 0
  max = 1
  samples = 10
}`},
		{"MissingSweep", `
geometry {
  kind = "wire"
  length = 4
  width = 2
}`},
		{"UnknownKind", `
geometry {
  kind = "torus"
}
sweep {
  min = 0
  max = 1
  samples = 10
}`},
		{"ZeroWidthWire", `
geometry {
  kind = "wire"
  length = 4
}
sweep {
  min = 0
  max = 1
  samples = 10
}`},
		{"InvertedRadii", `
geometry {
  kind = "ring"
  inner_radius = 9
  outer_radius = 5
}
sweep {
  min = 0
  max = 1
  samples = 10
}`},
		{"HoneycombRing", `
geometry {
  kind = "ring"
  lattice = "honeycomb"
  inner_radius = 5
  outer_radius = 9
}
sweep {
  min = 0
  max = 1
  samples = 10
}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src), tt.name+".hcl"); !errors.Is(err, errors.ErrCodeInvalidScenario) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidScenario)
			}
		})
	}
}

func TestParseBadSyntax(t *testing.T) {
	if _, err := Parse([]byte(`geometry {`), "broken.hcl"); !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidScenario)
	}
}

func TestBuildWireSystem(t *testing.T) {
	s, err := Parse([]byte(wireSrc), "wire.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	sys, err := s.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem() error = %v", err)
	}
	if got := sys.NumSites(); got != 8*3 {
		t.Errorf("NumSites() = %d, want 24", got)
	}
	if got := sys.NumLeads(); got != 2 {
		t.Errorf("NumLeads() = %d, want 2", got)
	}
}

func TestBuildHoneycombWireLeads(t *testing.T) {
	src := `
geometry {
  kind    = "wire"
  lattice = "honeycomb"
  length  = 12
  width   = 4
}

sweep {
  quantity = "energy"
  min      = -1
  max      = 1
  samples  = 10
}
`
	s, err := Parse([]byte(src), "hc.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	sys, err := s.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem() error = %v", err)
	}
	if sys.NumLeads() != 2 {
		t.Fatalf("NumLeads() = %d, want 2", sys.NumLeads())
	}

	// The lead cell must span the full cross-section. For width 4 that is
	// sublattice a rows at y = j*sqrt(3)/2, j = 0..4, plus sublattice b rows
	// shifted up by 1/sqrt(3), j = 0..3: nine sites. Reduced honeycomb
	// positions spread in x, so an x-bounded cross-section would cut this
	// down to the first column or two.
	for i, lead := range sys.Leads() {
		if got := lead.Cell.NumSites(); got != 9 {
			t.Errorf("lead %d cell sites = %d, want 9", i, got)
		}
		if got := len(lead.Interface); got != 9 {
			t.Errorf("lead %d interface sites = %d, want 9", i, got)
		}
		for _, site := range lead.Cell.Sites() {
			if _, y := site.Pos(); y < 0 || y >= 4 {
				t.Errorf("lead %d cell site %v outside cross-section", i, site)
			}
		}
	}
}

func TestBuildRingSystem(t *testing.T) {
	src := `
geometry {
  kind         = "ring"
  inner_radius = 5
  outer_radius = 9
  lead_width   = 4
}

sweep {
  quantity = "flux"
  min      = 0
  max      = 2 * pi
  samples  = 20
  energy   = 0.5
}
`
	s, err := Parse([]byte(src), "ring.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	sys, err := s.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem() error = %v", err)
	}
	if sys.NumLeads() != 2 {
		t.Fatalf("NumLeads() = %d, want 2", sys.NumLeads())
	}

	// The annulus excludes the hole: no site closer to the origin than the
	// inner radius.
	for _, site := range sys.Sites() {
		x, y := site.Pos()
		if r := math.Hypot(x, y); r < 5 || r > 9 {
			t.Fatalf("site %v at radius %g outside annulus [5, 9]", site, r)
		}
	}
}

func TestRunOptionsFixesFluxForEnergySweep(t *testing.T) {
	src := `
geometry {
  kind         = "ring"
  inner_radius = 5
  outer_radius = 9
}

sweep {
  quantity = "energy"
  min      = 0.1
  max      = 1.0
  samples  = 10
}
`
	s, err := Parse([]byte(src), "ring.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	opts := s.RunOptions()
	if v, ok := opts.Params[sweep.DefaultFluxParam]; !ok || v != 0 {
		t.Errorf("Params[%q] = %v, %v; want 0, true", sweep.DefaultFluxParam, v, ok)
	}
}
