package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/visualizer"
	"github.com/spf13/afero"
)

func testScene(t *testing.T) *visualizer.Scene {
	t.Helper()
	v, err := visualizer.New(25, 16)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := v.Scene()
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestRenderWritesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewSVG(fs, "out/figure.svg", nil)
	if err := r.Render(testScene(t)); err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fs, "out/figure.svg")
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"<svg",
		visualizer.ContourTitle,
		visualizer.SurfaceTitle,
		visualizer.LegendLabel,
		visualizer.ValueLabel,
		"<polygon",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteWellFormed(t *testing.T) {
	var buf bytes.Buffer
	if err := NewSVG(afero.NewMemMapFs(), "x.svg", nil).Write(&buf, testScene(t)); err != nil {
		t.Fatal(err)
	}
	dec := xml.NewDecoder(&buf)
	circles := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("malformed svg: %v", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "circle" {
			circles++
		}
	}
	// one marker per sample in each panel plus the legend marker
	if circles != 2*25+1 {
		t.Errorf("circles = %d, want %d", circles, 2*25+1)
	}
}

func TestRenderInvalidScene(t *testing.T) {
	scene := testScene(t)
	scene.Samples = field.NewSamples([]float64{0.5}, []float64{0.5, 0.6})
	err := NewSVG(afero.NewMemMapFs(), "x.svg", nil).Render(scene)
	if !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestRenderReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if err := NewSVG(fs, "figure.svg", nil).Render(testScene(t)); err == nil {
		t.Error("expected error writing to read-only fs")
	}
}

func TestSurfaceCoversLastStrip(t *testing.T) {
	v, err := visualizer.New(25, 70)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := v.Scene()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewSVG(afero.NewMemMapFs(), "x.svg", nil).Write(&buf, scene); err != nil {
		t.Fatal(err)
	}
	// stride 2 over 69 cells leaves a final one-cell strip on each axis
	const strips = 35
	if got := strings.Count(buf.String(), "<polygon"); got != strips*strips {
		t.Errorf("polygons = %d, want %d", got, strips*strips)
	}
}
