package main

import (
	"image"
	"regexp"

	mgl "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

type TextStyle uint8

const (
	TS_regular    TextStyle = 0
	TS_bold       TextStyle = 1 << 0
	TS_italic     TextStyle = 1 << 1
	TS_underlined TextStyle = 1 << 2
	TS_strike     TextStyle = 1 << 3
)

type HAlign int32

const (
	HA_left HAlign = iota
	HA_centre
	HA_right
)

type ScrollbarPolicy int32

const (
	SP_automatic ScrollbarPolicy = iota
	SP_always
	SP_never
)

type TitleButton uint8

const (
	TB_none     TitleButton = 0
	TB_close    TitleButton = 1 << 0
	TB_maximize TitleButton = 1 << 1
	TB_minimize TitleButton = 1 << 2
)

type GridAlign int32

const (
	GA_centre GridAlign = iota
	GA_upperLeft
	GA_up
	GA_upperRight
	GA_right
	GA_lowerRight
	GA_down
	GA_lowerLeft
	GA_left
)

const (
	AXIS_horizontal = 0
	AXIS_vertical   = 1
)

// Scrollbar state of one axis of a ScrollablePanel.
type Scrollbar struct {
	Policy ScrollbarPolicy
	Amount float32
	Value  float32
}

// MenuBarItem is a node of a MenuBar's menu tree.
type MenuBarItem struct {
	Text    string
	ID      int
	Enabled bool
	Items   []*MenuBarItem
	parent  *MenuBarItem
}

type gridCell struct {
	row, col int
	align    GridAlign
	padding  [4]float32
}

// SignalSink receives every connected signal a widget emits.
type SignalSink func(w *Widget, signal string, args ...interface{})

// Widget is a node of the retained widget tree. The tree owns parent/child
// structure, geometry and widget state. Engine bookkeeping lives elsewhere,
// linked through userID.
type Widget struct {
	canvas   *Canvas
	wtype    WidgetType
	name     string
	parent   *Widget
	children []*Widget

	position Layout2
	size     Layout2
	origin   mgl.Vec2
	visible  bool
	enabled  bool

	text         string
	defaultText  string
	validator    *regexp.Regexp
	font         string
	textSize     uint32
	textStyle    TextStyle
	textAlign    HAlign
	maxTextWidth float32

	items       []string
	selected    int
	tabs        []string
	selectedTab int
	checked     bool
	image       *image.RGBA

	scroll [2]Scrollbar

	title          string
	titleButtons   TitleButton
	resizable      bool
	positionLocked bool
	buttons        []string

	menus    []*MenuBarItem
	menuOpen *MenuBarItem

	cells   map[*Widget]*gridCell
	padding [4]float32
	spacing float32

	value, min, max float32

	userID    WidgetID
	sink      SignalSink
	connected map[string]bool
}

func (w *Widget) Type() WidgetType    { return w.wtype }
func (w *Widget) Name() string        { return w.name }
func (w *Widget) Parent() *Widget     { return w.parent }
func (w *Widget) Children() []*Widget { return w.children }
func (w *Widget) Visible() bool       { return w.visible }
func (w *Widget) Enabled() bool       { return w.enabled }
func (w *Widget) Text() string        { return w.text }
func (w *Widget) Items() []string     { return w.items }
func (w *Widget) Tabs() []string      { return w.tabs }
func (w *Widget) Image() *image.RGBA  { return w.image }
func (w *Widget) Title() string       { return w.title }
func (w *Widget) Buttons() []string   { return w.buttons }
func (w *Widget) Checked() bool       { return w.checked }
func (w *Widget) SelectedItem() int   { return w.selected }
func (w *Widget) SelectedTab() int    { return w.selectedTab }
func (w *Widget) Origin() mgl.Vec2    { return w.origin }
func (w *Widget) Layouts() (pos, size Layout2) {
	return w.position, w.size
}

func (w *Widget) has(c Capability) bool {
	return w.canvas.reg.Has(w.wtype, c)
}

// Connect routes the listed signals to sink. Signals not listed are dropped.
func (w *Widget) Connect(signals []string, sink SignalSink) {
	w.sink = sink
	w.connected = make(map[string]bool, len(signals))
	for _, s := range signals {
		w.connected[s] = true
	}
}

func (w *Widget) Disconnect() {
	w.sink = nil
	w.connected = nil
}

func (w *Widget) emit(signal string, args ...interface{}) {
	if w.sink != nil && w.connected[signal] {
		w.sink(w, signal, args...)
	}
}

// Emit fires a signal as if the toolkit had raised it.
func (w *Widget) Emit(signal string, args ...interface{}) {
	w.emit(signal, args...)
}

func (w *Widget) SetVisible(v bool) {
	w.visible = v
	if !v && w.canvas.focused == w {
		w.canvas.focus(nil)
	}
}

func (w *Widget) SetEnabled(e bool) {
	w.enabled = e
	if !e && w.canvas.focused == w {
		w.canvas.focus(nil)
	}
}

func (w *Widget) SetPosition(p Layout2) {
	w.position = p
	w.emit("PositionChanged")
}

func (w *Widget) SetSize(s Layout2) {
	w.size = s
	w.emit("SizeChanged")
}

func (w *Widget) SetOrigin(o mgl.Vec2) {
	w.origin = o
}

func (w *Widget) SetText(s string) {
	w.text = s
}

func (w *Widget) SetFont(name string)           { w.font = name }
func (w *Widget) SetTextSize(size uint32)       { w.textSize = size }
func (w *Widget) SetTextStyle(s TextStyle)      { w.textStyle = s }
func (w *Widget) SetTextAlignment(a HAlign)     { w.textAlign = a }
func (w *Widget) SetMaximumTextWidth(v float32) { w.maxTextWidth = v }
func (w *Widget) Font() string                  { return w.font }
func (w *Widget) TextSize() uint32              { return w.textSize }
func (w *Widget) TextStyle() TextStyle          { return w.textStyle }
func (w *Widget) TextAlignment() HAlign         { return w.textAlign }
func (w *Widget) MaximumTextWidth() float32     { return w.maxTextWidth }

// Placeholder shown by an empty EditBox or TextArea.
func (w *Widget) SetDefaultText(s string) { w.defaultText = s }
func (w *Widget) DefaultText() string     { return w.defaultText }

// SetValidator restricts an EditBox's text to strings matching re.
func (w *Widget) SetValidator(re *regexp.Regexp) { w.validator = re }

func (w *Widget) SetImage(img *image.RGBA) {
	w.image = img
}

func (w *Widget) SetTitle(s string) { w.title = s }

func (w *Widget) SetTitleButtons(b TitleButton) { w.titleButtons = b }
func (w *Widget) SetResizable(r bool)           { w.resizable = r }
func (w *Widget) SetPositionLocked(l bool)      { w.positionLocked = l }
func (w *Widget) Resizable() bool               { return w.resizable }
func (w *Widget) PositionLocked() bool          { return w.positionLocked }
func (w *Widget) TitleButtons() TitleButton     { return w.titleButtons }

// Items

func (w *Widget) AddItem(text string) int {
	w.items = append(w.items, text)
	return len(w.items) - 1
}

func (w *Widget) SetItemText(i int, text string) bool {
	if i < 0 || i >= len(w.items) {
		return false
	}
	w.items[i] = text
	return true
}

func (w *Widget) RemoveAllItems() {
	w.items = nil
	w.selected = -1
}

// SetSelectedItem selects row i, emitting ItemSelected on a change.
func (w *Widget) SetSelectedItem(i int) bool {
	if i < 0 || i >= len(w.items) {
		return false
	}
	if w.selected != i {
		w.selected = i
		w.emit("ItemSelected", i, w.items[i])
	}
	return true
}

func (w *Widget) DeselectItem() {
	if w.selected != -1 {
		w.selected = -1
		w.emit("ItemSelected", -1, "")
	}
}

// Tabs

func (w *Widget) AddTab(text string, sel bool) int {
	w.tabs = append(w.tabs, text)
	i := len(w.tabs) - 1
	if sel || w.selectedTab < 0 {
		w.SetSelectedTab(i)
	}
	return i
}

// RemoveTab drops tab i. The selection moves to the previous tab.
func (w *Widget) RemoveTab(i int) bool {
	if i < 0 || i >= len(w.tabs) {
		return false
	}
	w.tabs = append(w.tabs[:i], w.tabs[i+1:]...)
	switch {
	case len(w.tabs) == 0:
		w.selectedTab = -1
	case w.selectedTab >= i && w.selectedTab > 0:
		w.SetSelectedTab(w.selectedTab - 1)
	default:
		w.SetSelectedTab(w.selectedTab)
	}
	return true
}

func (w *Widget) SetTabText(i int, text string) bool {
	if i < 0 || i >= len(w.tabs) {
		return false
	}
	w.tabs[i] = text
	return true
}

func (w *Widget) SetSelectedTab(i int) bool {
	if i < 0 || i >= len(w.tabs) {
		return false
	}
	if w.wtype == WT_TabContainer {
		w.emit("SelectionChanging", i)
		for j, c := range w.children {
			c.visible = j == i
		}
	}
	if w.selectedTab != i {
		w.selectedTab = i
		if w.wtype == WT_TabContainer {
			w.emit("SelectionChanged", i)
		} else {
			w.emit("TabSelected", i, w.tabs[i])
		}
	}
	return true
}

// Check state

func (w *Widget) SetChecked(c bool) {
	if w.checked == c {
		return
	}
	if w.wtype == WT_RadioButton && c && w.parent != nil {
		for _, sib := range w.parent.children {
			if sib != w && sib.wtype == WT_RadioButton && sib.checked {
				sib.SetChecked(false)
			}
		}
	}
	w.checked = c
	switch w.wtype {
	case WT_ToggleButton:
		w.emit("Toggled", c)
	default:
		if c {
			w.emit("Checked")
		} else {
			w.emit("Unchecked")
		}
		w.emit("Changed", c)
	}
}

// Progress

func (w *Widget) SetValue(v float32) {
	v = clampF(v, w.min, w.max)
	if v != w.value {
		w.value = v
		w.emit("ValueChanged", v)
		if w.wtype == WT_ProgressBar && v == w.max {
			w.emit("Full")
		}
	}
}

func (w *Widget) Value() float32 { return w.value }

// Message box

func (w *Widget) AddButton(text string) int {
	w.buttons = append(w.buttons, text)
	return len(w.buttons) - 1
}

func (w *Widget) SetButtonText(i int, text string) bool {
	if i < 0 || i >= len(w.buttons) {
		return false
	}
	w.buttons[i] = text
	return true
}

func (w *Widget) PressButton(i int) bool {
	if i < 0 || i >= len(w.buttons) {
		return false
	}
	w.emit("ButtonPressed", w.buttons[i], i)
	return true
}

// Menu bar

func (w *Widget) AddMenu(text string) *MenuBarItem {
	m := &MenuBarItem{Text: text, ID: -1, Enabled: true}
	w.menus = append(w.menus, m)
	return m
}

func (m *MenuBarItem) Add(text string) *MenuBarItem {
	it := &MenuBarItem{Text: text, ID: -1, Enabled: true, parent: m}
	m.Items = append(m.Items, it)
	return it
}

func (m *MenuBarItem) Parent() *MenuBarItem { return m.parent }

// Path returns the texts from the top level menu down to m.
func (m *MenuBarItem) Path() []string {
	var p []string
	for it := m; it != nil; it = it.parent {
		p = append([]string{it.Text}, p...)
	}
	return p
}

// WalkMenus visits every menu bar item depth first.
func (w *Widget) WalkMenus(fn func(*MenuBarItem)) {
	var walk func(items []*MenuBarItem)
	walk = func(items []*MenuBarItem) {
		for _, it := range items {
			fn(it)
			walk(it.Items)
		}
	}
	walk(w.menus)
}

func (w *Widget) Menus() []*MenuBarItem { return w.menus }

func (w *Widget) ClickMenuItem(it *MenuBarItem) {
	if it != nil && it.Enabled && len(it.Items) == 0 {
		w.emit("MenuItemClicked", it)
	}
}

// MenuOpen returns the item whose children are listed below the bar, or nil.
func (w *Widget) MenuOpen() *MenuBarItem { return w.menuOpen }

func (w *Widget) openMenu(it *MenuBarItem) {
	w.menuOpen = it
	w.canvas.openMenuBar = w
}

func (w *Widget) closeMenu() {
	w.menuOpen = nil
	if w.canvas.openMenuBar == w {
		w.canvas.openMenuBar = nil
	}
}

// menuCell is the strip cell of top-level menu i.
func (w *Widget) menuCell(i int) Rect {
	r := w.Rect()
	cw := r.Size[0] / float32(len(w.menus))
	return Rect{Pos: r.Pos.Add(mgl.Vec2{cw * float32(i), 0}), Size: mgl.Vec2{cw, w.canvas.itemHeight}}
}

// MenuDropdown returns the box listing the open menu's items, one row
// each, under the cell of the top-level menu it belongs to.
func (w *Widget) MenuDropdown() (Rect, []*MenuBarItem) {
	if w.menuOpen == nil {
		return Rect{}, nil
	}
	top := w.menuOpen
	for top.parent != nil {
		top = top.parent
	}
	i := slices.Index(w.menus, top)
	if i < 0 {
		return Rect{}, nil
	}
	cell := w.menuCell(i)
	h := w.canvas.itemHeight
	return Rect{
		Pos:  mgl.Vec2{cell.Pos[0], cell.Max()[1]},
		Size: mgl.Vec2{cell.Size[0], h * float32(len(w.menuOpen.Items))},
	}, w.menuOpen.Items
}

// Child windows

// Close asks the window's owner whether it may close. Returns true if the
// window was removed from its parent.
func (w *Widget) Close() bool {
	abort := false
	w.emit("Closing", &abort)
	if abort {
		return false
	}
	if w.parent != nil {
		w.parent.Remove(w)
	}
	w.emit("Closed")
	return true
}

func (w *Widget) Minimize() { w.emit("Minimized") }
func (w *Widget) Maximize() { w.emit("Maximized") }

// Scrolling

func (w *Widget) Scrollbar(axis int) Scrollbar { return w.scroll[axis] }

func (w *Widget) SetScrollbarPolicy(axis int, p ScrollbarPolicy) {
	w.scroll[axis].Policy = p
}

func (w *Widget) SetScrollbarAmount(axis int, amount float32) {
	w.scroll[axis].Amount = amount
}

// SetScrollbarValue sets the scroll offset, clamped to [0, max].
func (w *Widget) SetScrollbarValue(axis int, v float32) {
	w.scroll[axis].Value = clampF(v, 0, w.MaxScroll(axis))
}

// ContentSize is the extent of a container's children.
func (w *Widget) ContentSize() mgl.Vec2 {
	var m mgl.Vec2
	for _, c := range w.children {
		if !c.visible {
			continue
		}
		end := Rect{Pos: c.Position(), Size: c.Size()}.Max()
		m[0] = maxF(m[0], end[0])
		m[1] = maxF(m[1], end[1])
	}
	return m
}

// MaxScroll is the largest scroll offset along axis.
func (w *Widget) MaxScroll(axis int) float32 {
	return maxF(0, w.ContentSize()[axis]-w.InnerSize()[axis])
}

// ScrollbarShown reports whether the scrollbar along axis is displayed.
func (w *Widget) ScrollbarShown(axis int) bool {
	switch w.scroll[axis].Policy {
	case SP_always:
		return true
	case SP_never:
		return false
	}
	return w.MaxScroll(axis) > 0
}

// Layout containers

func (w *Widget) SetGroupPadding(p [4]float32) { w.padding = p }
func (w *Widget) SetSpacing(s float32)         { w.spacing = s }
func (w *Widget) Padding() [4]float32          { return w.padding }

func (w *Widget) AddToGrid(child *Widget, row, col int) {
	if w.cells == nil {
		w.cells = make(map[*Widget]*gridCell)
	}
	if child.parent != w {
		w.Add(child, child.name)
	}
	w.cells[child] = &gridCell{row: row, col: col}
}

func (w *Widget) SetGridAlignment(child *Widget, a GridAlign) bool {
	if c := w.cells[child]; c != nil {
		c.align = a
		return true
	}
	return false
}

func (w *Widget) SetGridPadding(child *Widget, p [4]float32) bool {
	if c := w.cells[child]; c != nil {
		c.padding = p
		return true
	}
	return false
}

// GridDimensions returns the number of columns and rows in use.
func (w *Widget) GridDimensions() (cols, rows int) {
	for _, c := range w.cells {
		if c.col+1 > cols {
			cols = c.col + 1
		}
		if c.row+1 > rows {
			rows = c.row + 1
		}
	}
	return
}

// Containers

// Add appends child to w. A child already attached elsewhere is moved.
func (w *Widget) Add(child *Widget, name string) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = w
	child.name = name
	w.children = append(w.children, child)
}

// Remove detaches child from w. Returns false if child was not a child of w.
func (w *Widget) Remove(child *Widget) bool {
	i := w.indexOf(child)
	if i < 0 {
		return false
	}
	w.children = append(w.children[:i], w.children[i+1:]...)
	delete(w.cells, child)
	child.parent = nil
	c := w.canvas
	if c.hovered != nil && c.hovered.isWithin(child) {
		c.hovered = nil
	}
	if c.pressed != nil && c.pressed.isWithin(child) {
		c.pressed = nil
	}
	if c.focused != nil && c.focused.isWithin(child) {
		c.focused = nil
	}
	return true
}

func (w *Widget) indexOf(child *Widget) int {
	for i, c := range w.children {
		if c == child {
			return i
		}
	}
	return -1
}

// isWithin reports whether w is root or a descendant of root.
func (w *Widget) isWithin(root *Widget) bool {
	for it := w; it != nil; it = it.parent {
		if it == root {
			return true
		}
	}
	return false
}

func (w *Widget) MoveToFront() {
	if p := w.parent; p != nil {
		i := p.indexOf(w)
		p.children = append(append(p.children[:i:i], p.children[i+1:]...), w)
	}
}

func (w *Widget) MoveToBack() {
	if p := w.parent; p != nil {
		i := p.indexOf(w)
		rest := append(p.children[:i:i], p.children[i+1:]...)
		p.children = append([]*Widget{w}, rest...)
	}
}

// SetIndex moves w to position i among its siblings.
func (w *Widget) SetIndex(i int) bool {
	p := w.parent
	if p == nil || i < 0 || i >= len(p.children) {
		return false
	}
	cur := p.indexOf(w)
	rest := append(p.children[:cur:cur], p.children[cur+1:]...)
	p.children = append(rest[:i:i], append([]*Widget{w}, rest[i:]...)...)
	return true
}

func (w *Widget) Index() int {
	if w.parent == nil {
		return -1
	}
	return w.parent.indexOf(w)
}
