package plotter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tbsim/tbsim/pkg/builder"
	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/system"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}

	// A missing file also yields the defaults.
	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig(absent) error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(absent) = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.toml")
	if err := os.WriteFile(path, []byte("width_in = 8.0\ndpi = 150\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.WidthIn != 8.0 {
		t.Errorf("WidthIn = %g, want 8.0", cfg.WidthIn)
	}
	if cfg.DPI != 150 {
		t.Errorf("DPI = %d, want 150", cfg.DPI)
	}
	// Unset fields keep their defaults.
	if cfg.HeightIn != DefaultHeightIn {
		t.Errorf("HeightIn = %g, want default %g", cfg.HeightIn, DefaultHeightIn)
	}
	if cfg.TickSize != DefaultTickSize {
		t.Errorf("TickSize = %g, want default %g", cfg.TickSize, DefaultTickSize)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.toml")
	if err := os.WriteFile(path, []byte("width_in = [not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestConductanceValidation(t *testing.T) {
	if _, err := Conductance(DefaultConfig(), "energy [t]", []float64{1, 2}, []float64{1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("mismatched lengths: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := Conductance(DefaultConfig(), "energy [t]", nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty curve: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestBandsRagged(t *testing.T) {
	_, err := Bands(DefaultConfig(), []float64{0, 1}, [][]float64{{1, 2}, {1}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Bands() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestSaveAllFixedNames(t *testing.T) {
	fig, err := Conductance(DefaultConfig(), "energy [t]", []float64{0, 1, 2}, []float64{0, 1, 1})
	if err != nil {
		t.Fatalf("Conductance() error = %v", err)
	}

	dir := t.TempDir()
	paths, err := fig.SaveAll(dir, []string{FormatPNG, FormatPDF})
	if err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "conductance.png"),
		filepath.Join(dir, "conductance.pdf"),
	}
	if len(paths) != len(want) {
		t.Fatalf("SaveAll() returned %d paths, want %d", len(paths), len(want))
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], p)
		}
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("output %s missing: %v", p, err)
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", p)
		}
	}

	// PNG magic bytes confirm the raster path really produced a PNG.
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("conductance.png does not start with PNG magic")
	}
}

func TestSaveAllRejectsUnknownFormat(t *testing.T) {
	fig, err := Conductance(DefaultConfig(), "energy [t]", []float64{0, 1}, []float64{0, 1})
	if err != nil {
		t.Fatalf("Conductance() error = %v", err)
	}
	if _, err := fig.SaveAll(t.TempDir(), []string{"svg"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("SaveAll() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestSystemPlot(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := builder.New()
	if _, err := b.Fill(lat, builder.Rectangle(3, 3), f.Site(0, 0), system.Real(4)); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if _, err := b.ConnectNeighbors(lat, system.Real(-1)); err != nil {
		t.Fatalf("ConnectNeighbors() error = %v", err)
	}
	sys, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	fig, err := System(DefaultConfig(), sys)
	if err != nil {
		t.Fatalf("System() error = %v", err)
	}

	dir := t.TempDir()
	paths, err := fig.SaveAll(dir, []string{FormatPNG})
	if err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "system.png" {
		t.Errorf("SaveAll() = %v, want [.../system.png]", paths)
	}
}
