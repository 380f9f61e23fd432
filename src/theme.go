package main

import (
	_ "embed" // Support for go:embed resources
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed resources/defaultTheme.toml
var defaultTheme []byte

// WidgetStyle is how one widget type is drawn. Empty colours inherit from
// the theme's default style.
type WidgetStyle struct {
	Background string      `toml:"background"`
	Border     string      `toml:"border"`
	Text       string      `toml:"text"`
	Hover      string      `toml:"hover"`
	Disabled   string      `toml:"disabled"`
	Padding    *[4]float32 `toml:"padding"`
}

type Theme struct {
	Background     string                 `toml:"background"`
	Font           string                 `toml:"font"`
	FontSize       uint32                 `toml:"font_size"`
	TitleBarHeight float32                `toml:"title_bar_height"`
	ScrollbarWidth float32                `toml:"scrollbar_width"`
	ItemHeight     float32                `toml:"item_height"`
	Default        WidgetStyle            `toml:"default"`
	Widgets        map[string]WidgetStyle `toml:"widgets"`
}

// LoadTheme reads path over the embedded default theme. A missing path
// gives the default theme alone.
func LoadTheme(path string) (*Theme, error) {
	t := &Theme{}
	if err := toml.Unmarshal(defaultTheme, t); err != nil {
		return nil, resourceErr(err, "embedded theme is invalid")
	}
	if !fileExists(path) {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, resourceErr(err, "could not read theme %q", path)
	}
	var over Theme
	if err := toml.Unmarshal(data, &over); err != nil {
		return nil, resourceErr(err, "failed to parse theme %q", path)
	}
	t.merge(&over)
	return t, nil
}

func (t *Theme) merge(o *Theme) {
	if o.Background != "" {
		t.Background = o.Background
	}
	if o.Font != "" {
		t.Font = o.Font
	}
	if o.FontSize > 0 {
		t.FontSize = o.FontSize
	}
	if o.TitleBarHeight > 0 {
		t.TitleBarHeight = o.TitleBarHeight
	}
	if o.ScrollbarWidth > 0 {
		t.ScrollbarWidth = o.ScrollbarWidth
	}
	if o.ItemHeight > 0 {
		t.ItemHeight = o.ItemHeight
	}
	t.Default = o.Default.over(t.Default)
	if t.Widgets == nil {
		t.Widgets = make(map[string]WidgetStyle)
	}
	for name, s := range o.Widgets {
		t.Widgets[name] = s.over(t.Widgets[name])
	}
}

// over returns s with its empty fields taken from base.
func (s WidgetStyle) over(base WidgetStyle) WidgetStyle {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	out := WidgetStyle{
		Background: pick(s.Background, base.Background),
		Border:     pick(s.Border, base.Border),
		Text:       pick(s.Text, base.Text),
		Hover:      pick(s.Hover, base.Hover),
		Disabled:   pick(s.Disabled, base.Disabled),
		Padding:    s.Padding,
	}
	if out.Padding == nil {
		out.Padding = base.Padding
	}
	return out
}

// Style returns the resolved style of a widget type by its registry name.
func (t *Theme) Style(typeName string) WidgetStyle {
	return t.Widgets[typeName].over(t.Default)
}

// Apply pushes the theme's metrics into the canvas.
func (t *Theme) Apply(c *Canvas) {
	c.SetMetrics(t.TitleBarHeight, t.ScrollbarWidth, t.ItemHeight)
}

// parseColour reads "#rrggbb" or "#rrggbbaa". Anything else is transparent.
func parseColour(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
