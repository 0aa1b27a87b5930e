package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/ribbon"
	"gopkg.in/yaml.v3"
)

// maxSceneSize bounds scene files read from disk.
const maxSceneSize = 4 << 20

// Scene describes what the demo renders.
type Scene struct {
	// Virtual is the builder-space resolution mapped onto the output image.
	// Zero means builder space equals output pixels.
	Virtual Size `yaml:"virtual"`

	// Fit is "stretch" or "letterbox" (default).
	Fit string `yaml:"fit"`

	Background HexColor `yaml:"background"`

	// Passes lists render pass names in execution order. Default ["world"].
	Passes []string `yaml:"passes"`

	Curves []CurveConfig `yaml:"curves"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CurveConfig is one curve of the scene.
type CurveConfig struct {
	Name     string       `yaml:"name"`
	Pass     string       `yaml:"pass"`
	Points   [][2]float64 `yaml:"points"`
	Color    HexColor     `yaml:"color"`
	Tint     HexColor     `yaml:"tint"`
	Priority int          `yaml:"priority"`
	Depth    *float32     `yaml:"depth"`

	// Drift moves every point by this offset each frame.
	Drift [2]float64 `yaml:"drift"`
}

// HexColor is a colour written as "#rrggbb" or "#rrggbbaa" in scene files.
// It is stored premultiplied.
type HexColor struct {
	color.RGBA
	Set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	c, err := parseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	h.RGBA = c
	h.Set = true
	return nil
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b, a := uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v) //nolint:gosec // masked by width
	premul := func(c uint8) uint8 {
		return uint8((uint16(c)*uint16(a) + 127) / 255) //nolint:gosec // <= 255
	}
	return color.RGBA{R: premul(r), G: premul(g), B: premul(b), A: a}, nil
}

var errEmptyScene = errors.New("scene has no curves")

// ParseScene decodes a YAML scene and fills defaults.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSceneSize {
		return nil, fmt.Errorf("scene file %s too large: %d bytes", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

func (s *Scene) normalize() error {
	if len(s.Curves) == 0 {
		return errEmptyScene
	}
	if len(s.Passes) == 0 {
		s.Passes = []string{"world"}
	}
	switch s.Fit {
	case "":
		s.Fit = "letterbox"
	case "letterbox", "stretch":
	default:
		return fmt.Errorf("unknown fit %q: want stretch or letterbox", s.Fit)
	}

	known := make(map[string]bool, len(s.Passes))
	for _, p := range s.Passes {
		known[p] = true
	}
	for i := range s.Curves {
		c := &s.Curves[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("curve%d", i)
		}
		if c.Pass == "" {
			c.Pass = s.Passes[0]
		}
		if !known[c.Pass] {
			return fmt.Errorf("curve %s: unknown pass %q", c.Name, c.Pass)
		}
	}
	return nil
}

// options returns the ribbon options for the curve.
func (c *CurveConfig) options(debug bool) []ribbon.CurveOption {
	opts := []ribbon.CurveOption{ribbon.WithPriority(c.Priority), ribbon.WithDebug(debug)}
	if c.Color.Set {
		opts = append(opts, ribbon.WithColor(c.Color.RGBA))
	}
	if c.Depth != nil {
		opts = append(opts, ribbon.WithDepth(*c.Depth))
	}
	return opts
}

// material returns the curve material.
func (c *CurveConfig) material() ribbon.Material {
	m := ribbon.Material{Pass: c.Pass}
	if c.Tint.Set {
		m.Tint = c.Tint.RGBA
	}
	return m
}

// pointsAt returns the curve points at frame f.
func (c *CurveConfig) pointsAt(f int) []ribbon.Point {
	dx, dy := c.Drift[0]*float64(f), c.Drift[1]*float64(f)
	pts := make([]ribbon.Point, len(c.Points))
	for i, p := range c.Points {
		pts[i] = ribbon.Pt(p[0]+dx, p[1]+dy)
	}
	return pts
}

// DefaultScene is rendered when no scene file is given: a few sine waves
// in a 400x300 virtual space.
func DefaultScene() *Scene {
	wave := func(y0, amp, phase float64) [][2]float64 {
		pts := make([][2]float64, 0, 41)
		for i := 0; i <= 40; i++ {
			x := 10 + float64(i)*9.5
			pts = append(pts, [2]float64{x, y0 + amp*math.Sin(float64(i)*0.3+phase)})
		}
		return pts
	}
	colour := func(s string) HexColor {
		c, _ := parseHexColor(s)
		return HexColor{RGBA: c, Set: true}
	}
	return &Scene{
		Virtual:    Size{Width: 400, Height: 300},
		Fit:        "letterbox",
		Background: colour("#1a1a2e"),
		Passes:     []string{"world"},
		Curves: []CurveConfig{
			{Name: "red", Pass: "world", Points: wave(80, 30, 0), Color: colour("#e94560")},
			{Name: "gold", Pass: "world", Points: wave(150, 40, 1), Color: colour("#f5c518"), Priority: 1},
			{Name: "teal", Pass: "world", Points: wave(220, 25, 2), Color: colour("#0f9b8e"), Priority: 2},
		},
	}
}
