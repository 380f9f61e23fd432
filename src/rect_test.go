package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
	}{
		{"50%", pct(50)},
		{"10px", px(10)},
		{"12", px(12)},
		{" 100% - 20px ", Layout{Pct: 100, Px: -20}},
		{"25% + 4", Layout{Pct: 25, Px: 4}},
		{"-8px", px(-8)},
		{"1.5PX", px(1.5)},
	}
	for _, tt := range tests {
		got, err := parseLayout(tt.in)
		if err != nil {
			t.Errorf("parseLayout(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLayout(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "abc", "10% +", "5 5", "%"} {
		if _, err := parseLayout(bad); err == nil {
			t.Errorf("parseLayout(%q) succeeded, want error", bad)
		}
	}
}

func TestLayoutEval(t *testing.T) {
	l := Layout2{{Pct: 50, Px: -10}, pct(100)}
	got := l.Eval(mgl.Vec2{200, 80})
	if got != (mgl.Vec2{90, 80}) {
		t.Errorf("Eval = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Pos: mgl.Vec2{10, 10}, Size: mgl.Vec2{20, 10}}
	if !r.Contains(mgl.Vec2{10, 10}) || !r.Contains(mgl.Vec2{29.9, 19.9}) {
		t.Error("inside points rejected")
	}
	if r.Contains(mgl.Vec2{30, 15}) || r.Contains(mgl.Vec2{15, 20}) {
		t.Error("far edges are exclusive")
	}
}
