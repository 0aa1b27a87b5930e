package viewport

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/tessellate"
)

func TestFlipsOffscreenY(t *testing.T) {
	tests := []struct {
		backend gputypes.Backend
		want    bool
	}{
		{gputypes.BackendGL, true},
		{gputypes.BackendVulkan, false},
		{gputypes.BackendMetal, false},
		{gputypes.BackendDX12, false},
		{gputypes.BackendBrowserWebGPU, false},
		{gputypes.BackendEmpty, false},
	}
	for _, tt := range tests {
		t.Run(tt.backend.String(), func(t *testing.T) {
			if got := FlipsOffscreenY(tt.backend); got != tt.want {
				t.Errorf("FlipsOffscreenY(%v) = %v, want %v", tt.backend, got, tt.want)
			}
		})
	}
}

func TestStretchAndLetterbox(t *testing.T) {
	s := NewStretch(100, 50, 400, 400)
	if x, y := s.TranslateX(10), s.TranslateY(10); x != 40 || y != 80 {
		t.Errorf("stretch (10,10) = (%v,%v), want (40,80)", x, y)
	}

	l := NewLetterbox(100, 50, 400, 400)
	// Uniform scale 4, vertical bars of (400-200)/2 = 100.
	if x, y := l.TranslateX(0), l.TranslateY(0); x != 0 || y != 100 {
		t.Errorf("letterbox origin = (%v,%v), want (0,100)", x, y)
	}
	if x, y := l.TranslateX(100), l.TranslateY(50); x != 400 || y != 300 {
		t.Errorf("letterbox corner = (%v,%v), want (400,300)", x, y)
	}

	if z := NewStretch(0, 0, 10, 10); z.TranslateX(3) != 3 {
		t.Error("degenerate virtual size should fall back to identity scale")
	}
}

func TestTransformerApply(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		wantY   float32
	}{
		{"onscreen GL", StaticSurface{IsOffscreen: false, API: gputypes.BackendGL, PixelHeight: 600}, 40},
		{"offscreen GL", StaticSurface{IsOffscreen: true, API: gputypes.BackendGL, PixelHeight: 600}, 560},
		{"offscreen DX12", StaticSurface{IsOffscreen: true, API: gputypes.BackendDX12, PixelHeight: 600}, 40},
		{"offscreen Vulkan", StaticSurface{IsOffscreen: true, API: gputypes.BackendVulkan, PixelHeight: 600}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransformer(Linear{ScaleX: 2, ScaleY: 2}, tt.surface, 1)
			vs := []tessellate.Vertex{{Position: [3]float32{5, 20, 0}}}
			tr.Apply(vs)
			if vs[0].Position[0] != 10 {
				t.Errorf("x = %v, want 10", vs[0].Position[0])
			}
			if vs[0].Position[1] != tt.wantY {
				t.Errorf("y = %v, want %v", vs[0].Position[1], tt.wantY)
			}
			if vs[0].Position[2] != 1 {
				t.Errorf("z = %v, want 1", vs[0].Position[2])
			}

			x, y := tr.Point(5, 20)
			if float32(x) != 10 || float32(y) != tt.wantY {
				t.Errorf("Point(5,20) = (%v,%v), want (10,%v)", x, y, tt.wantY)
			}
		})
	}
}

type switchingSurface struct {
	StaticSurface
}

func TestTransformerFollowsSurfaceChanges(t *testing.T) {
	s := &switchingSurface{StaticSurface{API: gputypes.BackendGL, PixelHeight: 100}}
	tr := NewTransformer(Identity{}, s, 1)

	if _, y := tr.Point(0, 10); y != 10 {
		t.Errorf("onscreen y = %v, want 10", y)
	}
	s.IsOffscreen = true
	if _, y := tr.Point(0, 10); y != 90 {
		t.Errorf("offscreen y = %v, want 90", y)
	}
}
