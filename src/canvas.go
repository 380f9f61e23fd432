package main

import (
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Clipboard is the system clipboard as seen by editable widgets.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type EditKey int32

const (
	EK_backspace EditKey = iota
	EK_return
	EK_copy
	EK_paste
	EK_cut
)

// Canvas owns the widget tree's root and routes mouse and keyboard input to
// the widgets inside it.
type Canvas struct {
	reg            *Registry
	root           *Widget
	size           mgl.Vec2
	titleBarHeight float32
	scrollbarWidth float32
	itemHeight     float32
	clipboard      Clipboard

	hovered   *Widget
	pressed   *Widget
	focused   *Widget
	mouse     mgl.Vec2
	mouseDown bool

	openMenuBar *Widget
}

func NewCanvas(reg *Registry, size mgl.Vec2) *Canvas {
	c := &Canvas{
		reg:            reg,
		size:           size,
		titleBarHeight: 20,
		scrollbarWidth: 16,
		itemHeight:     22,
		clipboard:      systemClipboard{},
	}
	c.root = c.NewWidget(WT_Group)
	return c
}

func (c *Canvas) Root() *Widget { return c.root }

func (c *Canvas) SetSize(size mgl.Vec2) { c.size = size }

func (c *Canvas) Size() mgl.Vec2 { return c.size }

func (c *Canvas) TitleBarHeight() float32 { return c.titleBarHeight }

func (c *Canvas) ScrollbarWidth() float32 { return c.scrollbarWidth }

// SetMetrics sets the fixed sizes of title bars, scrollbars and list rows.
// Values that are not positive leave the current size.
func (c *Canvas) SetMetrics(titleBar, scrollbar, item float32) {
	if titleBar > 0 {
		c.titleBarHeight = titleBar
	}
	if scrollbar > 0 {
		c.scrollbarWidth = scrollbar
	}
	if item > 0 {
		c.itemHeight = item
	}
}

func (c *Canvas) ItemHeight() float32 { return c.itemHeight }

// NewWidget creates a detached widget with the defaults of its type.
func (c *Canvas) NewWidget(t WidgetType) *Widget {
	w := &Widget{
		canvas:      c,
		wtype:       t,
		visible:     true,
		enabled:     true,
		selected:    -1,
		selectedTab: -1,
		textSize:    18,
		max:         100,
	}
	switch {
	case c.reg.Has(t, WC_childWindow) && t == WT_MessageBox:
		w.size = Layout2{px(300), px(150)}
		w.titleButtons = TB_close
	case c.reg.Has(t, WC_childWindow):
		w.size = Layout2{px(400), px(300)}
		w.titleButtons = TB_close
		w.resizable = true
	case c.reg.Has(t, WC_container):
		w.size = Layout2{pct(100), pct(100)}
	case t == WT_MenuBar:
		w.size = Layout2{pct(100), px(22)}
	case t == WT_ListBox || t == WT_TextArea:
		w.size = Layout2{px(150), px(150)}
	case t == WT_Picture:
		w.size = Layout2{px(0), px(0)}
	default:
		w.size = Layout2{px(120), px(30)}
	}
	if t == WT_ScrollablePanel {
		w.scroll[AXIS_horizontal].Amount = 5
		w.scroll[AXIS_vertical].Amount = 5
	}
	return w
}

// Geometry

// ownSize evaluates the widget's size expressions against its parent.
func (w *Widget) ownSize() mgl.Vec2 {
	var ref mgl.Vec2
	if w.parent != nil {
		ref = w.parent.InnerSize()
	} else {
		ref = w.canvas.size
	}
	return w.size.Eval(ref)
}

// Size is the outer size of the widget.
func (w *Widget) Size() mgl.Vec2 {
	if w.parent == nil {
		if w == w.canvas.root {
			return w.canvas.size
		}
		return w.ownSize()
	}
	if r, ok := w.parent.slot(w); ok {
		return r.Size
	}
	return w.ownSize()
}

// Position is the top left corner relative to the parent's inner area.
func (w *Widget) Position() mgl.Vec2 {
	if w.parent == nil {
		return mgl.Vec2{}
	}
	if r, ok := w.parent.slot(w); ok {
		return r.Pos
	}
	s := w.Size()
	p := w.position.Eval(w.parent.InnerSize())
	return mgl.Vec2{p[0] - w.origin[0]*s[0], p[1] - w.origin[1]*s[1]}
}

func (w *Widget) topInset() float32 {
	switch {
	case w.has(WC_childWindow):
		return w.canvas.titleBarHeight
	case w.wtype == WT_TabContainer:
		return w.canvas.itemHeight
	}
	return 0
}

// InnerSize is the area available to children.
func (w *Widget) InnerSize() mgl.Vec2 {
	s := w.Size()
	s[0] -= w.padding[0] + w.padding[2]
	s[1] -= w.padding[1] + w.padding[3] + w.topInset()
	s[0] = maxF(0, s[0])
	s[1] = maxF(0, s[1])
	return s
}

// AbsolutePosition is the top left corner in canvas space.
func (w *Widget) AbsolutePosition() mgl.Vec2 {
	if w.parent == nil {
		return w.Position()
	}
	return w.parent.InnerAbsolutePosition().Add(w.Position())
}

// InnerAbsolutePosition is where a child positioned at (0,0) ends up,
// including any scroll offset.
func (w *Widget) InnerAbsolutePosition() mgl.Vec2 {
	p := w.AbsolutePosition()
	p[0] += w.padding[0]
	p[1] += w.padding[1] + w.topInset()
	if w.wtype == WT_ScrollablePanel {
		p[0] -= w.scroll[AXIS_horizontal].Value
		p[1] -= w.scroll[AXIS_vertical].Value
	}
	return p
}

func (w *Widget) Rect() Rect {
	return Rect{Pos: w.AbsolutePosition(), Size: w.Size()}
}

// slot returns the rectangle a layout container assigns to child.
func (w *Widget) slot(child *Widget) (Rect, bool) {
	switch w.wtype {
	case WT_VerticalLayout, WT_HorizontalLayout:
		axis := AXIS_vertical
		if w.wtype == WT_HorizontalLayout {
			axis = AXIS_horizontal
		}
		var shown []*Widget
		for _, c := range w.children {
			if c.visible {
				shown = append(shown, c)
			}
		}
		idx := -1
		for i, c := range shown {
			if c == child {
				idx = i
			}
		}
		if idx < 0 {
			return Rect{}, false
		}
		inner := w.InnerSize()
		n := float32(len(shown))
		length := maxF(0, (inner[axis]-w.spacing*(n-1))/n)
		var r Rect
		r.Size = inner
		r.Size[axis] = length
		r.Pos[axis] = float32(idx) * (length + w.spacing)
		return r, true
	case WT_HorizontalWrap:
		inner := w.InnerSize()
		var x, y, rowH float32
		for _, c := range w.children {
			if !c.visible {
				continue
			}
			s := c.ownSize()
			if x > 0 && x+s[0] > inner[0] {
				x = 0
				y += rowH + w.spacing
				rowH = 0
			}
			if c == child {
				return Rect{Pos: mgl.Vec2{x, y}, Size: s}, true
			}
			x += s[0] + w.spacing
			rowH = maxF(rowH, s[1])
		}
	case WT_Grid:
		cell := w.cells[child]
		if cell == nil {
			return Rect{}, false
		}
		cols, rows := w.GridDimensions()
		colW := make([]float32, cols)
		rowH := make([]float32, rows)
		for c, gc := range w.cells {
			s := c.ownSize()
			colW[gc.col] = maxF(colW[gc.col], s[0]+gc.padding[0]+gc.padding[2])
			rowH[gc.row] = maxF(rowH[gc.row], s[1]+gc.padding[1]+gc.padding[3])
		}
		var cx, cy float32
		for i := 0; i < cell.col; i++ {
			cx += colW[i]
		}
		for i := 0; i < cell.row; i++ {
			cy += rowH[i]
		}
		s := child.ownSize()
		free := mgl.Vec2{
			colW[cell.col] - s[0] - cell.padding[0] - cell.padding[2],
			rowH[cell.row] - s[1] - cell.padding[1] - cell.padding[3],
		}
		fx, fy := gridAlignFactors(cell.align)
		return Rect{
			Pos:  mgl.Vec2{cx + cell.padding[0] + free[0]*fx, cy + cell.padding[1] + free[1]*fy},
			Size: s,
		}, true
	}
	return Rect{}, false
}

func gridAlignFactors(a GridAlign) (float32, float32) {
	switch a {
	case GA_upperLeft:
		return 0, 0
	case GA_up:
		return 0.5, 0
	case GA_upperRight:
		return 1, 0
	case GA_right:
		return 1, 0.5
	case GA_lowerRight:
		return 1, 1
	case GA_down:
		return 0.5, 1
	case GA_lowerLeft:
		return 0, 1
	case GA_left:
		return 0, 0.5
	}
	return 0.5, 0.5
}

// Hit testing and input

// WidgetAt returns the top-most visible widget under p.
func (c *Canvas) WidgetAt(p mgl.Vec2) *Widget {
	return c.root.widgetAt(p)
}

func (w *Widget) widgetAt(p mgl.Vec2) *Widget {
	if !w.visible {
		return nil
	}
	inside := w == w.canvas.root || w.Rect().Contains(p)
	if !inside {
		return nil
	}
	for i := len(w.children) - 1; i >= 0; i-- {
		if hit := w.children[i].widgetAt(p); hit != nil {
			return hit
		}
	}
	if w == w.canvas.root || w.wtype == WT_Group || w.has(WC_layout) || w.wtype == WT_Grid {
		return nil
	}
	return w
}

func (c *Canvas) Hovered() *Widget { return c.hovered }
func (c *Canvas) Focused() *Widget { return c.focused }

func (c *Canvas) focus(w *Widget) {
	if c.focused == w {
		return
	}
	old := c.focused
	c.focused = w
	if old != nil {
		old.emit("Unfocused")
	}
	if w != nil {
		w.emit("Focused")
	}
}

// Focus gives keyboard focus to w, or removes it when w is nil.
func (c *Canvas) Focus(w *Widget) { c.focus(w) }

// HandleMouse updates hover state and raises press, release and click
// signals. down is the state of the primary mouse button.
func (c *Canvas) HandleMouse(p mgl.Vec2, down bool) {
	c.mouse = p
	if mb := c.openMenuBar; mb != nil {
		if !mb.visible || mb.parent == nil {
			mb.closeMenu()
		} else if box, _ := mb.MenuDropdown(); box.Contains(p) {
			if !down && c.mouseDown {
				mb.clickDropdown(p)
			}
			c.mouseDown = down
			return
		} else if down && !c.mouseDown && c.WidgetAt(p) != mb {
			mb.closeMenu()
		}
	}
	hit := c.WidgetAt(p)
	if hit != nil && !hit.enabled {
		hit = nil
	}
	if hit != c.hovered {
		if c.hovered != nil {
			c.hovered.emit("MouseLeft")
		}
		c.hovered = hit
		if hit != nil {
			hit.emit("MouseEntered")
		}
	}
	switch {
	case down && !c.mouseDown:
		c.pressed = hit
		c.focus(hit)
		if hit != nil {
			hit.emit("MousePressed", p)
		}
	case !down && c.mouseDown:
		if hit != nil {
			hit.emit("MouseReleased", p)
			if hit == c.pressed {
				hit.click(p)
			}
		}
		c.pressed = nil
	}
	c.mouseDown = down
}

// click performs the widget's own reaction to a mouse click at p.
func (w *Widget) click(p mgl.Vec2) {
	switch w.wtype {
	case WT_Button, WT_BitmapButton:
		w.emit("Pressed")
	case WT_CheckBox, WT_ToggleButton:
		w.SetChecked(!w.checked)
	case WT_RadioButton:
		w.SetChecked(true)
	case WT_ListBox, WT_ComboBox:
		row := int((p[1] - w.AbsolutePosition()[1]) / w.canvas.itemHeight)
		w.SetSelectedItem(row)
	case WT_Tabs:
		if n := len(w.tabs); n > 0 {
			i := int((p[0] - w.AbsolutePosition()[0]) / (w.Size()[0] / float32(n)))
			w.SetSelectedTab(i)
		}
	case WT_ChildWindow:
		w.clickTitleBar(p)
	case WT_MessageBox:
		w.clickTitleBar(p)
		w.clickButtonRow(p)
	case WT_MenuBar:
		w.clickMenuStrip(p)
	}
	w.emit("Clicked", p)
}

// clickTitleBar presses whichever title button sits under p. Buttons are
// laid out right to left: close, maximize, minimize.
func (w *Widget) clickTitleBar(p mgl.Vec2) {
	r := w.Rect()
	h := w.canvas.titleBarHeight
	if p[1] < r.Pos[1] || p[1] >= r.Pos[1]+h {
		return
	}
	x := r.Max()[0]
	for _, b := range []TitleButton{TB_close, TB_maximize, TB_minimize} {
		if w.TitleButtons()&b == 0 {
			continue
		}
		x -= h
		if p[0] >= x && p[0] < x+h {
			switch b {
			case TB_close:
				w.Close()
			case TB_maximize:
				w.Maximize()
			case TB_minimize:
				w.Minimize()
			}
			return
		}
	}
}

// clickButtonRow presses the message box button under p. The buttons
// share the bottom row of the box equally.
func (w *Widget) clickButtonRow(p mgl.Vec2) {
	n := len(w.buttons)
	if n == 0 {
		return
	}
	r := w.Rect()
	if p[1] < r.Max()[1]-w.canvas.itemHeight || p[1] >= r.Max()[1] {
		return
	}
	if i := int((p[0] - r.Pos[0]) / (r.Size[0] / float32(n))); i >= 0 && i < n {
		w.PressButton(i)
	}
}

// clickMenuStrip opens or closes the top-level menu under p. A top-level
// item without children is clicked straight away.
func (w *Widget) clickMenuStrip(p mgl.Vec2) {
	if len(w.menus) == 0 {
		return
	}
	for i, it := range w.menus {
		if !w.menuCell(i).Contains(p) {
			continue
		}
		switch {
		case len(it.Items) == 0:
			w.closeMenu()
			w.ClickMenuItem(it)
		case w.menuOpen == it:
			w.closeMenu()
		default:
			w.openMenu(it)
		}
		return
	}
}

// clickDropdown picks the open menu's row under p. A row with children
// replaces the list with its submenu.
func (w *Widget) clickDropdown(p mgl.Vec2) {
	box, items := w.MenuDropdown()
	row := int((p[1] - box.Pos[1]) / w.canvas.itemHeight)
	if row < 0 || row >= len(items) || !items[row].Enabled {
		return
	}
	if it := items[row]; len(it.Items) > 0 {
		w.openMenu(it)
	} else {
		w.closeMenu()
		w.ClickMenuItem(it)
	}
}

// OpenMenuBar returns the menu bar showing a dropdown, or nil.
func (c *Canvas) OpenMenuBar() *Widget { return c.openMenuBar }

// Activate raises the signals a click on w would, without a mouse.
func (w *Widget) Activate() {
	p := w.Rect().Pos
	w.emit("MouseReleased", p)
	switch w.wtype {
	case WT_ListBox:
		if w.selected >= 0 {
			w.emit("DoubleClicked", w.selected, w.items[w.selected])
		}
	case WT_Button, WT_BitmapButton:
		w.emit("Pressed")
		w.emit("Clicked", p)
	default:
		w.emit("Clicked", p)
	}
}

// HandleText types r into the focused editable widget.
func (c *Canvas) HandleText(r rune) {
	w := c.focused
	if w == nil || !w.has(WC_editable) || !w.enabled {
		return
	}
	if w.wtype == WT_EditBox && (r == '\n' || r == '\r') {
		return
	}
	w.setEditText(w.text + string(r))
}

// setEditText replaces the text if it passes the widget's validator.
func (w *Widget) setEditText(s string) {
	if w.validator != nil && s != "" && !w.validator.MatchString(s) {
		return
	}
	if s != w.text {
		w.text = s
		w.emit("TextChanged", w.text)
	}
}

// HandleKey applies an editing key to the focused editable widget.
func (c *Canvas) HandleKey(k EditKey) {
	w := c.focused
	if w == nil || !w.has(WC_editable) || !w.enabled {
		return
	}
	switch k {
	case EK_backspace:
		if w.text != "" {
			_, n := utf8.DecodeLastRuneInString(w.text)
			w.setEditText(w.text[:len(w.text)-n])
		}
	case EK_return:
		if w.wtype == WT_EditBox {
			w.emit("ReturnKeyPressed", w.text)
		} else {
			c.HandleText('\n')
		}
	case EK_copy, EK_cut:
		if c.clipboard != nil {
			c.clipboard.WriteAll(w.text)
		}
		if k == EK_cut {
			w.setEditText("")
		}
	case EK_paste:
		if c.clipboard == nil {
			return
		}
		s, err := c.clipboard.ReadAll()
		if err != nil || s == "" {
			return
		}
		if w.wtype == WT_EditBox {
			s = strings.NewReplacer("\r", "", "\n", " ").Replace(s)
		}
		w.setEditText(w.text + s)
	}
}
