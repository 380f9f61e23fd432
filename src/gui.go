package main

import (
	"fmt"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

// controlBinding names the input control that drives one navigation action
// and the sound it plays by default.
type controlBinding struct {
	Name  string
	Sound SoundBinding
}

// GUI is the widget engine: the widget tree, the per-widget metadata store
// keyed by WidgetID, the menus and the directional flow state.
type GUI struct {
	reg    *Registry
	log    *Logger
	canvas *Canvas
	store  *WidgetStore

	menus     map[string]*Menu
	menuOrder []string
	current   string
	previous  string
	// Name of the menu whose SetUp is running, if any.
	constructing string

	lang     Translator
	lastLang string
	scripts  *ScriptHost
	sheets   SpriteSource
	sounds   SoundPlayer
	fonts    FontSource

	controls        [5]controlBinding
	input           Controls
	flowEnabled     bool
	selectTriggered bool
	preHandler      *lua.LFunction

	widgetSprites map[*Widget]*AnimatedSprite
	brackets      angleBrackets
}

func newGUI(reg *Registry, log *Logger, size mgl.Vec2, reserve int) *GUI {
	g := &GUI{
		reg:           reg,
		log:           log,
		canvas:        NewCanvas(reg, size),
		menus:         make(map[string]*Menu),
		widgetSprites: make(map[*Widget]*AnimatedSprite),
	}
	g.store = newWidgetStore(reserve, log)
	g.resetRoot()
	g.brackets.init(log)
	return g
}

func (g *GUI) resetRoot() {
	r := g.store.find(ROOT_WIDGET)
	*r = WidgetRecord{ptr: g.canvas.root, lastButton: -1}
	g.canvas.root.userID = ROOT_WIDGET
}

func (g *GUI) Canvas() *Canvas { return g.canvas }

func (g *GUI) SetLanguageDictionary(t Translator) { g.lang = t }
func (g *GUI) SetSpritesheets(s SpriteSource)     { g.sheets = s }
func (g *GUI) SetSoundPlayer(s SoundPlayer)       { g.sounds = s }
func (g *GUI) SetFonts(f FontSource)              { g.fonts = f }

// SetScripts attaches the script host and registers the GUI's functions in it.
func (g *GUI) SetScripts(h *ScriptHost) {
	g.scripts = h
	if h != nil {
		registerGUIFunctions(h.State(), g)
	}
}

// SetControls sets the controls for up, down, left, right and select, in
// that order. Widgets stored afterwards copy their sounds.
func (g *GUI) SetControls(c [5]controlBinding) { g.controls = c }

// clearState deletes every widget and menu.
func (g *GUI) clearState(reserve int) {
	for _, c := range append([]*Widget(nil), g.canvas.root.children...) {
		g.canvas.root.Remove(c)
	}
	g.store.reset(reserve)
	g.resetRoot()
	g.menus = make(map[string]*Menu)
	g.menuOrder = nil
	g.current, g.previous, g.constructing = "", "", ""
	g.flowEnabled = false
	g.preHandler = nil
	g.widgetSprites = make(map[*Widget]*AnimatedSprite)
}

// Store

// storeWidget gives w an ID and a fresh record, and connects its signals.
func (g *GUI) storeWidget(w *Widget) WidgetID {
	id := g.store.allocate()
	r := g.store.find(id)
	*r = WidgetRecord{ptr: w, lastButton: -1}
	w.userID = id
	for i := range g.controls {
		r.sounds[i] = g.controls[i].Sound
	}
	if g.reg.Has(w.wtype, WC_childWindow) {
		r.childWindow = &childWindowProps{}
	}
	if g.reg.Has(w.wtype, WC_menuBar) {
		r.menuBar = &menuBarState{lastClicked: -1}
	}
	g.connectSignals(w)
	return id
}

func (g *GUI) connectSignals(w *Widget) {
	w.Connect(g.reg.Signals(w.wtype), g.signalHandler)
}

// lookup resolves id. If caps is non-zero the widget's type must support at
// least one of its bits.
func (g *GUI) lookup(id WidgetID, op string, caps Capability) (*WidgetRecord, error) {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return nil, notFound("%s: widget %d does not exist", op, id)
	}
	if caps != 0 {
		ti := g.reg.types[r.ptr.wtype]
		if ti == nil || ti.caps&caps == 0 {
			return nil, unsupported("%s: widget %s does not support this operation", op, g.describe(id))
		}
	}
	return r, nil
}

func (g *GUI) widgetExists(id WidgetID) bool {
	r := g.store.find(id)
	return r != nil && r.ptr != nil
}

// describe formats a widget for log lines: ID, full name and type.
func (g *GUI) describe(id WidgetID) string {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%d (%q, %s)", id, g.fullName(r.ptr), g.reg.Name(r.ptr.wtype))
}

// fullName joins the names from the menu root down to w with dots.
func (g *GUI) fullName(w *Widget) string {
	var parts []string
	for it := w; it != nil && it != g.canvas.root; it = it.parent {
		parts = append([]string{it.name}, parts...)
	}
	return strings.Join(parts, ".")
}

// fullyVisible reports whether id and every ancestor up to the root are
// visible and enabled. Detached widgets are never fully visible.
func (g *GUI) fullyVisible(id WidgetID) bool {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return false
	}
	for w := r.ptr; w != nil; w = w.parent {
		if w == g.canvas.root {
			return true
		}
		if !w.visible || !w.enabled {
			return false
		}
	}
	return false
}

// menuRootOf returns the menu rooted at id, if any.
func (g *GUI) menuRootOf(id WidgetID) *Menu {
	for _, m := range g.menus {
		if m.root == id {
			return m
		}
	}
	return nil
}

// Creation and deletion

func (g *GUI) createWidget(t WidgetType) WidgetID {
	return g.storeWidget(g.canvas.NewWidget(t))
}

// CreateWidget creates a detached widget of the named type.
func (g *GUI) CreateWidget(typeName string) (WidgetID, error) {
	t, ok := g.reg.ParseType(typeName)
	if !ok {
		return NO_WIDGET, notFound("createWidget: unknown widget type %q", typeName)
	}
	return g.createWidget(t), nil
}

// DeleteWidget deletes id and everything inside it.
func (g *GUI) DeleteWidget(id WidgetID) error {
	if id == ROOT_WIDGET {
		return precondition("deleteWidget: the root widget cannot be deleted")
	}
	if _, err := g.lookup(id, "deleteWidget", 0); err != nil {
		return err
	}
	if m := g.menuRootOf(id); m != nil {
		return precondition("deleteWidget: widget %d is the root of menu %q", id, m.name)
	}
	g.deleteWidget(id)
	return nil
}

func (g *GUI) deleteWidget(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return
	}
	w := r.ptr
	for _, c := range append([]*Widget(nil), w.children...) {
		g.deleteWidget(c.userID)
	}
	tab := -1
	if p := w.parent; p != nil && p.wtype == WT_TabContainer {
		tab = p.indexOf(w)
	}
	parent := w.parent
	g.detach(w)
	if tab >= 0 {
		parent.RemoveTab(tab)
		if pr := g.store.find(parent.userID); pr != nil {
			pr.caption.removeItem(tab)
		}
	}
	w.Disconnect()
	g.store.each(func(_ WidgetID, rec *WidgetRecord) {
		for d := range rec.flow {
			if rec.flow[d] == id {
				rec.flow[d] = NO_WIDGET
			}
		}
	})
	for _, m := range g.menus {
		m.forget(id)
	}
	delete(g.widgetSprites, w)
	g.store.release(id)
}

// Tree structure. attach and detach are the only places the widget tree
// and the metadata store are changed together.

func (g *GUI) attach(parent, child *Widget, name string) {
	g.detach(child)
	parent.Add(child, name)
}

func (g *GUI) detach(child *Widget) {
	p := child.parent
	if p == nil {
		return
	}
	if pr := g.store.find(p.userID); pr != nil {
		pr.minimised.restore(child.userID)
	}
	p.Remove(child)
}

// Add places child inside parent. Children of the root widget are hidden.
func (g *GUI) Add(parent, child WidgetID) error {
	if parent == NO_WIDGET || child == NO_WIDGET || child == ROOT_WIDGET {
		return precondition("add: cannot add widget %d to widget %d", child, parent)
	}
	pr, err := g.lookup(parent, "add", WC_container)
	if err != nil {
		return err
	}
	cr, err := g.lookup(child, "add", 0)
	if err != nil {
		return err
	}
	if m := g.menuRootOf(child); m != nil {
		return precondition("add: widget %d is the root of menu %q", child, m.name)
	}
	p, c := pr.ptr, cr.ptr
	if p.isWithin(c) {
		return precondition("add: widget %s cannot be added to its own descendant %s",
			g.describe(child), g.describe(parent))
	}
	g.attach(p, c, c.name)
	if parent == ROOT_WIDGET {
		c.SetVisible(false)
	}
	return nil
}

// Remove detaches id from its container without deleting it.
func (g *GUI) Remove(id WidgetID) error {
	r, err := g.lookup(id, "remove", 0)
	if err != nil {
		return err
	}
	if m := g.menuRootOf(id); m != nil {
		return precondition("remove: widget %d is the root of menu %q", id, m.name)
	}
	if r.ptr.parent == nil {
		return precondition("remove: widget %s has no parent", g.describe(id))
	}
	g.detach(r.ptr)
	return nil
}

// RemoveAll detaches every child of a container.
func (g *GUI) RemoveAll(id WidgetID) error {
	r, err := g.lookup(id, "removeAll", WC_container)
	if err != nil {
		return err
	}
	for _, c := range append([]*Widget(nil), r.ptr.children...) {
		if g.menuRootOf(c.userID) == nil {
			g.detach(c)
		}
	}
	return nil
}

// DeleteWidgetsFromContainer deletes every child of a container.
func (g *GUI) DeleteWidgetsFromContainer(id WidgetID) error {
	r, err := g.lookup(id, "deleteWidgetsFromContainer", WC_container)
	if err != nil {
		return err
	}
	for _, c := range append([]*Widget(nil), r.ptr.children...) {
		if g.menuRootOf(c.userID) == nil {
			g.deleteWidget(c.userID)
		}
	}
	return nil
}

// AddTabAndPanel adds a tab to a TabContainer along with the Panel shown
// while it is selected, returning the Panel.
func (g *GUI) AddTabAndPanel(id WidgetID, caption Caption) (WidgetID, error) {
	r, err := g.lookup(id, "addTabAndPanel", WC_tabs)
	if err != nil {
		return NO_WIDGET, err
	}
	if r.ptr.wtype != WT_TabContainer {
		return NO_WIDGET, unsupported("addTabAndPanel: widget %s is not a TabContainer", g.describe(id))
	}
	panel := g.createWidget(WT_Panel)
	r = g.store.find(id)
	pw := g.store.find(panel).ptr
	g.attach(r.ptr, pw, "")
	r.caption.appendItem(caption)
	r.ptr.AddTab(g.getTranslatedText(caption), false)
	pw.visible = r.ptr.selectedTab == len(r.ptr.tabs)-1
	return panel, nil
}

// AddToGrid places child in a Grid cell.
func (g *GUI) AddToGrid(grid, child WidgetID, row, col int) error {
	gr, err := g.lookup(grid, "addWidgetToGrid", WC_grid)
	if err != nil {
		return err
	}
	cr, err := g.lookup(child, "addWidgetToGrid", 0)
	if err != nil {
		return err
	}
	if row < 0 || col < 0 {
		return precondition("addWidgetToGrid: invalid cell (%d, %d)", row, col)
	}
	g.attach(gr.ptr, cr.ptr, cr.ptr.name)
	gr.ptr.AddToGrid(cr.ptr, row, col)
	return nil
}

// WidgetUnderMouse returns the ID of the widget under p, or NO_WIDGET.
func (g *GUI) WidgetUnderMouse(p mgl.Vec2) WidgetID {
	if w := g.canvas.WidgetAt(p); w != nil && g.widgetExists(w.userID) {
		return w.userID
	}
	return NO_WIDGET
}

// Parent returns the ID of id's container, or NO_WIDGET.
func (g *GUI) Parent(id WidgetID) WidgetID {
	r := g.store.find(id)
	if r == nil || r.ptr == nil || r.ptr.parent == nil {
		return NO_WIDGET
	}
	return r.ptr.parent.userID
}

// Reserve is the number of records to pre-allocate on the next load.
func (g *GUI) Reserve() (reserve int, grown bool) {
	return g.store.capacity(), g.store.grown
}
