package main

import (
	"strings"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	BC_upperLeft = iota
	BC_upperRight
	BC_lowerLeft
	BC_lowerRight
)

var bracketCornerNames = [...]string{"ul", "ur", "ll", "lr"}

// Seconds taken by the brackets to glide to a new selection.
const bracketGlideTime = 0.12

// angleBrackets are the four corner sprites framing the directional flow
// selection.
type angleBrackets struct {
	corners [4]*AnimatedSprite
	target  *Widget
	from    Rect
	rect    Rect
	glide   *gween.Tween
	shown   bool
}

func (ab *angleBrackets) init(log *Logger) {
	for i := range ab.corners {
		ab.corners[i] = NewAnimatedSprite(nil, "", log)
	}
	ab.target = nil
	ab.shown = false
	ab.glide = nil
}

func (ab *angleBrackets) reset() {
	for _, c := range ab.corners {
		c.SetFrame(0)
	}
	ab.shown = false
}

// follow moves the brackets onto target's rect, gliding when the target
// changed since the last frame.
func (ab *angleBrackets) follow(w *Widget, r Rect, dt time.Duration) {
	if !ab.shown || ab.target == nil {
		ab.rect = r
		ab.glide = nil
	} else if w != ab.target {
		ab.from = ab.rect
		ab.glide = gween.New(0, 1, bracketGlideTime, ease.OutQuad)
	}
	ab.target = w
	ab.shown = true
	if ab.glide == nil {
		ab.rect = r
	} else {
		t, done := ab.glide.Update(float32(dt.Seconds()))
		ab.rect = Rect{
			Pos:  lerpVec2(ab.from.Pos, r.Pos, t),
			Size: lerpVec2(ab.from.Size, r.Size, t),
		}
		if done {
			ab.glide = nil
		}
	}
	for _, c := range ab.corners {
		c.Animate(dt)
	}
}

// position returns where corner i is drawn: its sprite tucked inside the
// corresponding corner of the framed rect.
func (ab *angleBrackets) position(i int) mgl.Vec2 {
	pos, size := ab.rect.Pos, ab.rect.Size
	s := ab.corners[i].Size()
	switch i {
	case BC_upperRight:
		return pos.Add(mgl.Vec2{size[0] - s[0], 0})
	case BC_lowerLeft:
		return pos.Add(mgl.Vec2{0, size[1] - s[1]})
	case BC_lowerRight:
		return pos.Add(size).Sub(s)
	}
	return pos
}

func lerpVec2(a, b mgl.Vec2, t float32) mgl.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// BracketSprite is one corner to draw this frame.
type BracketSprite struct {
	Sprite   *AnimatedSprite
	Position mgl.Vec2
}

// AngleBrackets returns the corners to draw, or nil when nothing is
// selected.
func (g *GUI) AngleBrackets() []BracketSprite {
	if !g.brackets.shown {
		return nil
	}
	out := make([]BracketSprite, 0, len(g.brackets.corners))
	for i, c := range g.brackets.corners {
		if c.Spritesheet() == nil || c.Sprite() == "" {
			continue
		}
		out = append(out, BracketSprite{Sprite: c, Position: g.brackets.position(i)})
	}
	return out
}

// SetDirectionalFlowAngleBracketSprite sets the sprite of one corner, named
// UL, UR, LL or LR in any case.
func (g *GUI) SetDirectionalFlowAngleBracketSprite(corner, sheet, sprite string) error {
	var s *Spritesheet
	if g.sheets != nil {
		s = g.sheets.Spritesheet(sheet)
	}
	if s == nil {
		return notFound("setDirectionalFlowAngleBracketSprite: spritesheet %q does not exist", sheet)
	}
	if !s.HasSprite(sprite) {
		return notFound("setDirectionalFlowAngleBracketSprite: sprite %q does not exist in %q", sprite, sheet)
	}
	name := strings.ToLower(strings.TrimSpace(corner))
	for i, n := range bracketCornerNames {
		if n == name {
			g.brackets.corners[i].SetSpritesheet(s)
			g.brackets.corners[i].SetSprite(sprite)
			return nil
		}
	}
	return precondition("setDirectionalFlowAngleBracketSprite: unrecognised corner %q, must be UL, UR, LL or LR", corner)
}

// Animate advances one frame of the active menu: captions are retranslated
// if the language changed, every visible sprite widget is animated, and the
// angle brackets follow the selection.
func (g *GUI) Animate(dt time.Duration) {
	m := g.menus[g.current]
	if m != nil {
		if g.lang != nil && g.lang.Language() != g.lastLang {
			g.lastLang = g.lang.Language()
			g.translateAll()
		}
		if r := g.store.find(m.root); r != nil && r.ptr != nil {
			g.animateContainer(r.ptr, dt)
		}
	}
	if m == nil || m.current == NO_WIDGET || !g.flowEnabled || !g.fullyVisible(m.current) {
		g.brackets.reset()
		return
	}
	w := g.store.find(m.current).ptr
	r := w.Rect()
	if g.reg.Has(w.wtype, WC_scrollable) {
		r.Pos = r.Pos.Sub(mgl.Vec2{w.scroll[AXIS_horizontal].Value, w.scroll[AXIS_vertical].Value})
	}
	g.brackets.follow(w, r, dt)
}

// animateContainer walks a copy of the child list: AnimationFinished
// handlers may delete siblings.
func (g *GUI) animateContainer(c *Widget, dt time.Duration) {
	for _, w := range append([]*Widget(nil), c.children...) {
		if !w.visible {
			continue
		}
		if g.reg.Has(w.wtype, WC_sprite) {
			g.animateWidget(w, dt)
		}
		if g.reg.Has(w.wtype, WC_container) {
			g.animateContainer(w, dt)
		}
	}
}

func (g *GUI) animateWidget(w *Widget, dt time.Duration) {
	r := g.store.find(w.userID)
	if r == nil || r.ptr != w || r.spritesheet == "" {
		return
	}
	var sheet *Spritesheet
	if g.sheets != nil {
		sheet = g.sheets.Spritesheet(r.spritesheet)
	}
	anim := g.widgetSprites[w]
	if sheet == nil {
		// The sheet went away: drop the image so sizing falls back.
		if anim != nil && anim.Spritesheet() != nil {
			g.setWidgetImage(w, r, mgl.Vec2{})
			anim.SetSpritesheet(nil)
		}
		return
	}
	if anim == nil {
		anim = NewAnimatedSprite(nil, "", g.log)
		g.widgetSprites[w] = anim
	}
	if r.sprite == "" {
		if anim.Sprite() != "" {
			anim.SetSprite("")
			g.setWidgetImage(w, r, mgl.Vec2{})
		}
		return
	}
	if anim.Spritesheet() != sheet || anim.Sprite() != r.sprite {
		anim.SetSpritesheet(sheet)
		anim.SetSprite(r.sprite)
		anim.Animate(dt)
		g.setWidgetImage(w, r, anim.Size())
		return
	}
	prev := anim.Frame()
	if anim.Animate(dt) && anim.Frame() != prev {
		w.emit("AnimationFinished")
	}
}

// setWidgetImage gives w a blank image of the sprite's size so layout
// matches what is drawn over it. Pictures also take that size unless told
// to keep their own.
func (g *GUI) setWidgetImage(w *Widget, r *WidgetRecord, size mgl.Vec2) {
	w.SetImage(blankImage(size))
	if w.wtype == WT_Picture && !r.keepSize {
		b := w.image.Bounds()
		w.SetSize(Layout2{px(float32(b.Dx())), px(float32(b.Dy()))})
	}
}

// WidgetSprite returns the animated sprite drawn over w, if any.
func (g *GUI) WidgetSprite(w *Widget) *AnimatedSprite {
	if a := g.widgetSprites[w]; a != nil && a.Spritesheet() != nil && a.Sprite() != "" {
		return a
	}
	return nil
}

// SetWidgetSprite assigns a sprite to a BitmapButton or Picture. It takes
// effect on the next Animate.
func (g *GUI) SetWidgetSprite(id WidgetID, sheet, sprite string) error {
	r, err := g.lookup(id, "setWidgetSprite", WC_sprite)
	if err != nil {
		return err
	}
	r.spritesheet = sheet
	r.sprite = sprite
	return nil
}

// ClearWidgetSprite removes the sprite of a BitmapButton or Picture.
func (g *GUI) ClearWidgetSprite(id WidgetID) error {
	r, err := g.lookup(id, "clearWidgetSprite", WC_sprite)
	if err != nil {
		return err
	}
	r.spritesheet, r.sprite = "", ""
	delete(g.widgetSprites, r.ptr)
	r.ptr.SetImage(nil)
	return nil
}

// MatchWidgetSizeToSprite sets whether a Picture is resized to its sprite.
func (g *GUI) MatchWidgetSizeToSprite(id WidgetID, match bool) error {
	r, err := g.lookup(id, "matchWidgetSizeToSprite", WC_sprite)
	if err != nil {
		return err
	}
	if r.ptr.wtype != WT_Picture {
		return unsupported("matchWidgetSizeToSprite: widget %s is not a Picture", g.describe(id))
	}
	r.keepSize = !match
	return nil
}

// ApplySpritesToWidgetsInContainer hands out sprites from one sheet to the
// sprite widgets directly inside a container, in order, until either runs
// out.
func (g *GUI) ApplySpritesToWidgetsInContainer(id WidgetID, sheet string, sprites []string) error {
	r, err := g.lookup(id, "applySpritesToWidgetsInContainer", WC_container)
	if err != nil {
		return err
	}
	if len(sprites) == 0 {
		return precondition("applySpritesToWidgetsInContainer: no sprites given")
	}
	i := 0
	for _, c := range r.ptr.children {
		if i >= len(sprites) {
			break
		}
		if !g.reg.Has(c.wtype, WC_sprite) {
			continue
		}
		if cr := g.store.find(c.userID); cr != nil && cr.ptr == c {
			cr.spritesheet, cr.sprite = sheet, sprites[i]
			i++
		}
	}
	return nil
}
