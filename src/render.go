package main

import (
	"image"
	"image/color"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Renderer draws the active menu's widget tree with the theme's colours.
type Renderer struct {
	theme  *Theme
	fonts  FontSource
	sheets map[*Spritesheet]*ebiten.Image
	faces  map[font.Face]*text.GoXFace
}

func NewRenderer(theme *Theme, fonts FontSource) *Renderer {
	return &Renderer{
		theme:  theme,
		fonts:  fonts,
		sheets: make(map[*Spritesheet]*ebiten.Image),
		faces:  make(map[font.Face]*text.GoXFace),
	}
}

func (rd *Renderer) Draw(dst *ebiten.Image, g *GUI) {
	dst.Fill(parseColour(rd.theme.Background))
	m := g.Menu(g.CurrentMenu())
	if m == nil {
		return
	}
	if r := g.store.find(m.Root()); r != nil && r.ptr != nil {
		rd.drawChildren(dst, g, r.ptr)
	}
	if mb := g.canvas.OpenMenuBar(); mb != nil && mb.parent != nil {
		rd.drawDropdown(dst, g, mb)
	}
	for _, b := range g.AngleBrackets() {
		rd.drawSprite(dst, b.Sprite, b.Position)
	}
}

func (rd *Renderer) drawDropdown(dst *ebiten.Image, g *GUI, mb *Widget) {
	box, items := mb.MenuDropdown()
	st := rd.theme.Style(g.reg.Name(mb.wtype))
	var pad [4]float32
	if st.Padding != nil {
		pad = *st.Padding
	}
	fillRect(dst, box, parseColour(st.Background))
	strokeRect(dst, box, parseColour(st.Border))
	h := g.canvas.ItemHeight()
	for i, it := range items {
		fg := parseColour(st.Text)
		if !it.Enabled {
			fg = parseColour(st.Disabled)
		}
		row := Rect{Pos: box.Pos.Add(mgl.Vec2{0, h * float32(i)}), Size: mgl.Vec2{box.Size[0], h}}
		label := it.Text
		if len(it.Items) > 0 {
			label += " >"
		}
		rd.drawText(dst, mb, label, row, pad, fg)
	}
}

func (rd *Renderer) drawChildren(dst *ebiten.Image, g *GUI, c *Widget) {
	for _, w := range c.children {
		rd.drawWidget(dst, g, w)
	}
}

func (rd *Renderer) face(w *Widget) (font.Face, *text.GoXFace) {
	name, size := w.font, w.TextSize()
	if name == "" {
		name = rd.theme.Font
	}
	if size == 0 {
		size = rd.theme.FontSize
	}
	var f font.Face
	if rd.fonts != nil {
		f = rd.fonts.Face(name, size)
	} else {
		f = basicfont.Face7x13
	}
	xf := rd.faces[f]
	if xf == nil {
		xf = text.NewGoXFace(f)
		rd.faces[f] = xf
	}
	return f, xf
}

func fillRect(dst *ebiten.Image, r Rect, c color.RGBA) {
	if c.A == 0 || r.Size[0] <= 0 || r.Size[1] <= 0 {
		return
	}
	vector.DrawFilledRect(dst, r.Pos[0], r.Pos[1], r.Size[0], r.Size[1], c, false)
}

func strokeRect(dst *ebiten.Image, r Rect, c color.RGBA) {
	if c.A == 0 || r.Size[0] <= 0 || r.Size[1] <= 0 {
		return
	}
	vector.StrokeRect(dst, r.Pos[0], r.Pos[1], r.Size[0], r.Size[1], 1, c, false)
}

func (rd *Renderer) drawWidget(dst *ebiten.Image, g *GUI, w *Widget) {
	if !w.Visible() {
		return
	}
	st := rd.theme.Style(g.reg.Name(w.wtype))
	r := w.Rect()
	bg := parseColour(st.Background)
	if g.canvas.Hovered() == w && w.enabled && st.Hover != "" && w.has(WC_activatable) {
		bg = parseColour(st.Hover)
	}
	fg := parseColour(st.Text)
	if !w.enabled {
		fg = parseColour(st.Disabled)
	}
	accent := parseColour(st.Hover)
	var pad [4]float32
	if st.Padding != nil {
		pad = *st.Padding
	}
	fillRect(dst, r, bg)
	strokeRect(dst, r, parseColour(st.Border))

	body := r
	switch {
	case w.has(WC_childWindow):
		bar := Rect{Pos: r.Pos, Size: mgl.Vec2{r.Size[0], g.canvas.TitleBarHeight()}}
		fillRect(dst, bar, accent)
		rd.drawText(dst, w, w.title, bar, pad, fg)
		body.Pos[1] += bar.Size[1]
		body.Size[1] -= bar.Size[1]
	case w.wtype == WT_ProgressBar || w.wtype == WT_Slider:
		if span := w.max - w.min; span > 0 {
			fill := r
			fill.Size[0] *= (w.value - w.min) / span
			fillRect(dst, fill, accent)
		}
	case w.has(WC_checkable) && w.checked:
		box := r.Size[1] / 2
		fillRect(dst, Rect{Pos: r.Pos.Add(mgl.Vec2{box / 2, box / 2}), Size: mgl.Vec2{box, box}}, fg)
		body.Pos[0] += box * 2
		body.Size[0] -= box * 2
	}

	switch {
	case w.has(WC_items):
		rd.drawRows(dst, g, w, body, pad, fg, accent)
	case w.has(WC_tabs):
		rd.drawStrip(dst, w, w.tabs, w.selectedTab, body, pad, fg, accent)
	case w.has(WC_menuBar):
		names := make([]string, len(w.menus))
		for i, m := range w.menus {
			names[i] = m.Text
		}
		rd.drawStrip(dst, w, names, -1, body, pad, fg, accent)
	case w.wtype == WT_MessageBox:
		rd.drawText(dst, w, w.text, body, pad, fg)
		if n := len(w.buttons); n > 0 {
			row := Rect{
				Pos:  mgl.Vec2{body.Pos[0], body.Max()[1] - g.canvas.ItemHeight()},
				Size: mgl.Vec2{body.Size[0], g.canvas.ItemHeight()},
			}
			rd.drawStrip(dst, w, w.buttons, -1, row, pad, fg, accent)
		}
	case w.has(WC_editable):
		s := w.text
		if s == "" {
			s = w.defaultText
			fg = parseColour(st.Disabled)
		}
		rd.drawText(dst, w, s, body, pad, fg)
	case w.has(WC_caption):
		rd.drawText(dst, w, w.text, body, pad, fg)
	}

	if a := g.WidgetSprite(w); a != nil {
		rd.drawSprite(dst, a, r.Pos)
	}

	if w.has(WC_container) {
		if w.wtype == WT_ScrollablePanel {
			clip := image.Rect(int(r.Pos[0]), int(r.Pos[1]), int(r.Max()[0]), int(r.Max()[1]))
			if sub, ok := dst.SubImage(clip).(*ebiten.Image); ok {
				rd.drawChildren(sub, g, w)
			}
			rd.drawScrollbars(dst, g, w, r, accent)
			return
		}
		rd.drawChildren(dst, g, w)
	}
}

// drawText draws s inside box, wrapped to the widget's maximum text width
// and aligned horizontally. Lines are centred vertically as a block.
func (rd *Renderer) drawText(dst *ebiten.Image, w *Widget, s string, box Rect, pad [4]float32, c color.RGBA) {
	if s == "" {
		return
	}
	f, xf := rd.face(w)
	lines := wrapText(f, s, w.MaximumTextWidth())
	lh := lineHeight(f)
	inner := Rect{
		Pos:  box.Pos.Add(mgl.Vec2{pad[0], pad[1]}),
		Size: mgl.Vec2{box.Size[0] - pad[0] - pad[2], box.Size[1] - pad[1] - pad[3]},
	}
	y := inner.Pos[1] + (inner.Size[1]-lh*float32(len(lines)))/2
	for _, line := range lines {
		x := inner.Pos[0]
		switch w.TextAlignment() {
		case HA_centre:
			x += (inner.Size[0] - measureString(f, line)) / 2
		case HA_right:
			x += inner.Size[0] - measureString(f, line)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(c)
		text.Draw(dst, line, xf, op)
		if w.textStyle&(TS_underlined|TS_strike) != 0 {
			width := measureString(f, line)
			if w.textStyle&TS_underlined != 0 {
				fillRect(dst, Rect{Pos: mgl.Vec2{x, y + lh - 1}, Size: mgl.Vec2{width, 1}}, c)
			}
			if w.textStyle&TS_strike != 0 {
				fillRect(dst, Rect{Pos: mgl.Vec2{x, y + lh/2}, Size: mgl.Vec2{width, 1}}, c)
			}
		}
		y += lh
	}
}

func (rd *Renderer) drawRows(dst *ebiten.Image, g *GUI, w *Widget, box Rect, pad [4]float32, fg, accent color.RGBA) {
	h := g.canvas.ItemHeight()
	if w.wtype == WT_ComboBox {
		s := ""
		if w.selected >= 0 && w.selected < len(w.items) {
			s = w.items[w.selected]
		}
		rd.drawText(dst, w, s, box, pad, fg)
		return
	}
	for i, item := range w.items {
		row := Rect{Pos: box.Pos.Add(mgl.Vec2{0, float32(i) * h}), Size: mgl.Vec2{box.Size[0], h}}
		if row.Max()[1] > box.Max()[1] {
			break
		}
		if i == w.selected {
			fillRect(dst, row, accent)
		}
		rd.drawText(dst, w, item, row, pad, fg)
	}
}

// drawStrip lays names out left to right in equal cells.
func (rd *Renderer) drawStrip(dst *ebiten.Image, w *Widget, names []string, sel int, box Rect, pad [4]float32, fg, accent color.RGBA) {
	if len(names) == 0 {
		return
	}
	h := box.Size[1]
	if w.wtype != WT_MessageBox {
		h = w.canvas.ItemHeight()
	}
	cw := box.Size[0] / float32(len(names))
	for i, n := range names {
		cell := Rect{Pos: box.Pos.Add(mgl.Vec2{cw * float32(i), 0}), Size: mgl.Vec2{cw, h}}
		if i == sel {
			fillRect(dst, cell, accent)
		}
		rd.drawText(dst, w, strings.TrimSpace(n), cell, pad, fg)
	}
}

func (rd *Renderer) drawScrollbars(dst *ebiten.Image, g *GUI, w *Widget, r Rect, c color.RGBA) {
	sw := g.canvas.ScrollbarWidth()
	if w.ScrollbarShown(AXIS_vertical) {
		if most := w.MaxScroll(AXIS_vertical); most > 0 {
			track := r.Size[1]
			thumb := track * track / (track + most)
			y := (track - thumb) * w.scroll[AXIS_vertical].Value / most
			fillRect(dst, Rect{Pos: mgl.Vec2{r.Max()[0] - sw, r.Pos[1] + y}, Size: mgl.Vec2{sw, thumb}}, c)
		}
	}
	if w.ScrollbarShown(AXIS_horizontal) {
		if most := w.MaxScroll(AXIS_horizontal); most > 0 {
			track := r.Size[0]
			thumb := track * track / (track + most)
			x := (track - thumb) * w.scroll[AXIS_horizontal].Value / most
			fillRect(dst, Rect{Pos: mgl.Vec2{r.Pos[0] + x, r.Max()[1] - sw}, Size: mgl.Vec2{thumb, sw}}, c)
		}
	}
}

func (rd *Renderer) drawSprite(dst *ebiten.Image, a *AnimatedSprite, at mgl.Vec2) {
	sheet := a.Spritesheet()
	if sheet == nil || sheet.Image() == nil {
		return
	}
	src := rd.sheets[sheet]
	if src == nil {
		src = ebiten.NewImageFromImage(sheet.Image())
		rd.sheets[sheet] = src
	}
	fr, ok := sheet.FrameRect(a.Sprite(), a.Frame())
	if !ok || fr.Empty() {
		return
	}
	frame, ok := src.SubImage(fr).(*ebiten.Image)
	if !ok {
		return
	}
	p := at.Add(a.Offset())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p[0]), float64(p[1]))
	dst.DrawImage(frame, op)
}
