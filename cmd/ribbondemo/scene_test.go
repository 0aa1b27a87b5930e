package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ribbon/render"
)

const testScene = `
virtual: {width: 100, height: 100}
fit: stretch
background: "#000000"
passes: [back, front]
curves:
  - name: bar
    pass: front
    color: "#ff0000"
    priority: 3
    points: [[10, 50], [90, 50]]
  - points: [[10, 20], [90, 20]]
    color: "#00ff0080"
    drift: [0, 1]
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(testScene))
	if err != nil {
		t.Fatalf("ParseScene() = %v", err)
	}
	if s.Fit != "stretch" || s.Virtual.Width != 100 {
		t.Errorf("scene = %+v", s)
	}
	if len(s.Curves) != 2 {
		t.Fatalf("curves = %d, want 2", len(s.Curves))
	}
	bar := s.Curves[0]
	if bar.Name != "bar" || bar.Pass != "front" || bar.Priority != 3 {
		t.Errorf("bar = %+v", bar)
	}
	if bar.Color.RGBA != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bar colour = %v", bar.Color.RGBA)
	}

	second := s.Curves[1]
	if second.Name != "curve1" || second.Pass != "back" {
		t.Errorf("defaults not applied: %+v", second)
	}
	// #00ff0080 premultiplied.
	if second.Color.RGBA != (color.RGBA{G: 128, A: 128}) {
		t.Errorf("second colour = %v, want premultiplied green", second.Color.RGBA)
	}
	if pts := second.pointsAt(2); pts[0].Y != 22 {
		t.Errorf("drifted point = %v, want y 22", pts[0])
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "passes: [world]\n", "no curves"},
		{"bad fit", "fit: zoom\ncurves: [{points: [[0,0],[1,1]]}]\n", "unknown fit"},
		{"bad pass", "curves: [{pass: nowhere, points: [[0,0],[1,1]]}]\n", "unknown pass"},
		{"bad colour", "curves: [{color: red, points: [[0,0],[1,1]]}]\n", "invalid colour"},
		{"bad yaml", "curves: [\n", "parse scene"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScene() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene() = %v", err)
	}
	if len(s.Passes) != 2 {
		t.Errorf("passes = %v", s.Passes)
	}
	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScene(missing) should fail")
	}
}

func TestRenderScene(t *testing.T) {
	s, err := ParseScene([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	target := render.NewPixmapTarget(100, 100)
	if err := renderScene(s, target, 3, true); err != nil {
		t.Fatalf("renderScene() = %v", err)
	}

	// The red bar spans y 49..51 at x 10..90.
	if got := target.Image().RGBAAt(20, 49); got.R < 200 {
		t.Errorf("pixel on red bar = %v", got)
	}
	if got := target.Image().RGBAAt(20, 80); got != (color.RGBA{A: 255}) {
		t.Errorf("background pixel = %v, want opaque black", got)
	}
}

func TestDefaultSceneIsValid(t *testing.T) {
	s := DefaultScene()
	if err := s.normalize(); err != nil {
		t.Fatalf("default scene invalid: %v", err)
	}
	target := render.NewPixmapTarget(80, 60)
	if err := renderScene(s, target, 1, false); err != nil {
		t.Fatalf("renderScene(default) = %v", err)
	}
}
