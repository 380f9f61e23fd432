package main

import (
	"fmt"
	"strconv"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// Layout is a one dimensional layout expression: a percentage of the parent's
// inner length plus a fixed pixel offset. "50%", "10px", "12", and
// "100% - 20px" are all valid.
type Layout struct {
	Pct float32
	Px  float32
}

func px(v float32) Layout  { return Layout{Px: v} }
func pct(v float32) Layout { return Layout{Pct: v} }

func parseLayout(s string) (Layout, error) {
	var l Layout
	src := strings.ToLower(strings.TrimSpace(s))
	if src == "" {
		return l, fmt.Errorf("empty layout expression")
	}
	sign := float32(1)
	expectTerm := true
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case !expectTerm && (c == '+' || c == '-'):
			if c == '-' {
				sign = -1
			} else {
				sign = 1
			}
			expectTerm = true
			i++
		case expectTerm:
			j := i
			if src[j] == '-' || src[j] == '+' {
				j++
			}
			for j < len(src) && (src[j] == '.' || (src[j] >= '0' && src[j] <= '9')) {
				j++
			}
			v, err := strconv.ParseFloat(src[i:j], 32)
			if err != nil {
				return Layout{}, fmt.Errorf("invalid number in layout %q", s)
			}
			switch {
			case strings.HasPrefix(src[j:], "%"):
				l.Pct += sign * float32(v)
				j++
			case strings.HasPrefix(src[j:], "px"):
				l.Px += sign * float32(v)
				j += 2
			default:
				l.Px += sign * float32(v)
			}
			i = j
			expectTerm = false
		default:
			return Layout{}, fmt.Errorf("unexpected %q in layout %q", c, s)
		}
	}
	if expectTerm {
		return Layout{}, fmt.Errorf("incomplete layout expression %q", s)
	}
	return l, nil
}

// Eval resolves the expression against the parent's inner length.
func (l Layout) Eval(parent float32) float32 {
	return l.Pct/100*parent + l.Px
}

func (l Layout) String() string {
	switch {
	case l.Pct == 0:
		return strconv.FormatFloat(float64(l.Px), 'g', -1, 32) + "px"
	case l.Px == 0:
		return strconv.FormatFloat(float64(l.Pct), 'g', -1, 32) + "%"
	case l.Px < 0:
		return fmt.Sprintf("%g%% - %gpx", l.Pct, -l.Px)
	}
	return fmt.Sprintf("%g%% + %gpx", l.Pct, l.Px)
}

// Layout2 pairs horizontal and vertical expressions.
type Layout2 [2]Layout

func (l Layout2) Eval(parent mgl.Vec2) mgl.Vec2 {
	return mgl.Vec2{l[0].Eval(parent[0]), l[1].Eval(parent[1])}
}

func parseLayout2(x, y string) (Layout2, error) {
	lx, err := parseLayout(x)
	if err != nil {
		return Layout2{}, err
	}
	ly, err := parseLayout(y)
	if err != nil {
		return Layout2{}, err
	}
	return Layout2{lx, ly}, nil
}

// Rect is an axis aligned rectangle in screen space.
type Rect struct {
	Pos  mgl.Vec2
	Size mgl.Vec2
}

func (r Rect) Max() mgl.Vec2 {
	return r.Pos.Add(r.Size)
}

func (r Rect) Contains(p mgl.Vec2) bool {
	m := r.Max()
	return p[0] >= r.Pos[0] && p[1] >= r.Pos[1] && p[0] < m[0] && p[1] < m[1]
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
