package gui

import (
	"math"
	"testing"

	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

func testScene(t *testing.T) *visualizer.Scene {
	t.Helper()
	v, err := visualizer.New(20, 11)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := v.Scene()
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestSurfaceTriangles(t *testing.T) {
	scene := testScene(t)
	tests := []struct {
		stride int
		want   int
	}{
		{1, 2 * 10 * 10},
		{2, 2 * 5 * 5},
		{3, 2 * 4 * 4},
		{0, 2 * 10 * 10},
	}

	for _, tt := range tests {
		tris := SurfaceTriangles(scene, tt.stride)
		if len(tris) != tt.want {
			t.Errorf("stride %d: %d triangles, want %d", tt.stride, len(tris), tt.want)
		}
		for _, tri := range tris {
			if tri.T < 0 || tri.T > 1 {
				t.Fatalf("stride %d: height %g outside [0,1]", tt.stride, tri.T)
			}
			for _, v := range [...]float64{tri.A.X, tri.B.Z, tri.C.X} {
				if math.Abs(v) > worldScale/2+1e-9 {
					t.Fatalf("vertex coordinate %g outside the surface", v)
				}
			}
		}
	}
}

func TestSamplePoints(t *testing.T) {
	scene := testScene(t)
	pts := SamplePoints(scene)
	if len(pts) != scene.Samples.Len() {
		t.Fatalf("got %d points", len(pts))
	}
	want := (scene.Samples.X[0] - 0.5) * worldScale
	if math.Abs(pts[0].X-want) > 1e-9 {
		t.Errorf("x = %g, want %g", pts[0].X, want)
	}
}

func TestContourImage(t *testing.T) {
	scene := testScene(t)
	img := ContourImage(scene, 64, colormap.Viridis)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds = %v", b)
	}

	// cos(πx)·sin(πy) peaks at (0, 0.5) and bottoms out at (1, 0.5)
	hi := img.RGBAAt(0, 32)
	lo := img.RGBAAt(63, 32)
	if hi == lo {
		t.Error("opposite top corners share a colour")
	}
	if hi.A != 255 || lo.A != 255 {
		t.Error("image should be opaque after compositing")
	}
	if hi.G <= lo.G {
		t.Errorf("viridis high end should be greener: hi=%v lo=%v", hi, lo)
	}
}

func TestOrbit(t *testing.T) {
	o := NewOrbit()
	if d := o.Position().Length(); math.Abs(d-defaultDistance) > 1e-9 {
		t.Errorf("distance = %g", d)
	}

	o.Rotate(0, 10)
	if o.Pitch != maxPitch {
		t.Errorf("pitch = %g, want clamp at %g", o.Pitch, maxPitch)
	}
	o.Zoom(1000)
	if o.Distance != minDistance {
		t.Errorf("distance = %g, want clamp at %g", o.Distance, minDistance)
	}
	o.Zoom(-1000)
	if o.Distance != maxDistance {
		t.Errorf("distance = %g, want clamp at %g", o.Distance, maxDistance)
	}
}
