package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

// Controls is the per-frame input the GUI reads.
type Controls interface {
	Control(name string) bool
	Signals() map[string]bool
	MousePosition() mgl.Vec2
	PreviousMousePosition() mgl.Vec2
}

var flowDirections = [...]Direction{DIR_up, DIR_down, DIR_left, DIR_right}

// HandleInput runs one frame of directional flow and then the active
// menu's periodic callback.
func (g *GUI) HandleInput(ui Controls) {
	g.selectTriggered = false
	g.input = ui
	if g.menus[g.current] == nil {
		return
	}
	moved := ui.MousePosition() != ui.PreviousMousePosition()
	if moved {
		g.flowEnabled = false
	}
	if g.flowEnabled {
		g.moveDirectionalFlow(ui)
		if ui.Control(g.controls[selectSound].Name) {
			g.activateSelection()
		}
	} else if !moved {
		g.flowEnabled = g.anyDirection(ui)
		if g.flowEnabled {
			if m := g.menus[g.current]; m.current == NO_WIDGET {
				g.moveDirectionalFlow(ui)
			} else {
				g.showWidgetInScrollablePanel(m.current)
			}
		}
	}
	g.periodic(ui)
}

func (g *GUI) anyDirection(ui Controls) bool {
	for _, d := range flowDirections {
		if ui.Control(g.controls[d].Name) {
			return true
		}
	}
	return false
}

// FlowEnabled reports whether directional flow currently owns selection.
func (g *GUI) FlowEnabled() bool { return g.flowEnabled }

func (g *GUI) moveDirectionalFlow(ui Controls) {
	m := g.menus[g.current]
	if m == nil {
		g.log.Errorf("Current menu %q does not exist.", g.current)
		return
	}
	if m.current == NO_WIDGET {
		if g.anyDirection(ui) {
			g.selectFirst(m)
		}
		return
	}
	for _, d := range flowDirections {
		if ui.Control(g.controls[d].Name) {
			g.navigate(m, d)
		}
	}
}

// navigate moves the selection of m one step in direction d.
func (g *GUI) navigate(m *Menu, d Direction) {
	id := m.current
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		g.log.Errorf("Selected widget %d of menu %q no longer exists, clearing the selection.", id, m.name)
		m.current = NO_WIDGET
		return
	}
	w := r.ptr
	link := r.flow[d]
	switch {
	case g.reg.Has(w.wtype, WC_selectableList) && (d == DIR_up || d == DIR_down):
		n, i := len(w.items), w.selected
		if n > 0 {
			if d == DIR_up {
				switch {
				case i < 0:
					w.SetSelectedItem(0)
					return
				case i > 0:
					w.SetSelectedItem(i - 1)
					return
				case link == NO_WIDGET:
					w.SetSelectedItem(n - 1)
					return
				}
			} else {
				switch {
				case i < 0:
					w.SetSelectedItem(0)
					return
				case i < n-1:
					w.SetSelectedItem(i + 1)
					return
				case link == NO_WIDGET:
					w.SetSelectedItem(0)
					return
				}
			}
		}
	case g.reg.Has(w.wtype, WC_scrollable):
		axis := AXIS_vertical
		if d == DIR_left || d == DIR_right {
			axis = AXIS_horizontal
		}
		sb := w.Scrollbar(axis)
		if sb.Amount > 0 && w.ScrollbarShown(axis) {
			if (d == DIR_up || d == DIR_left) && sb.Value > 0 {
				w.SetScrollbarValue(axis, sb.Value-sb.Amount)
				return
			}
			if (d == DIR_down || d == DIR_right) && sb.Value < w.MaxScroll(axis) {
				w.SetScrollbarValue(axis, sb.Value+sb.Amount)
				return
			}
		}
	}
	if link != NO_WIDGET {
		g.makeNewDirectionalSelection(m, link, d)
	}
}

func (g *GUI) selectFirst(m *Menu) {
	if m.selectFirst != NO_WIDGET {
		g.makeNewDirectionalSelection(m, m.selectFirst, DIR_none)
	}
}

// makeNewDirectionalSelection moves m's selection to target. The previous
// widget sentinel swaps the current and previous selections. Targets that
// are not fully visible are refused.
func (g *GUI) makeNewDirectionalSelection(m *Menu, target WidgetID, d Direction) bool {
	if target == GOTO_PREVIOUS_WIDGET {
		if m.previous == NO_WIDGET || !g.fullyVisible(m.previous) {
			return false
		}
		m.previous, m.current = m.current, m.previous
	} else {
		if !g.fullyVisible(target) {
			return false
		}
		m.previous, m.current = m.current, target
	}
	id := m.current
	r := g.store.find(id)
	if d != DIR_none {
		g.playSound(r.sounds[d])
	}
	r.ptr.Emit("MouseEntered")
	g.showWidgetInScrollablePanel(id)
	return true
}

// MakeSelection selects id in the current menu as directional flow would.
func (g *GUI) MakeSelection(id WidgetID) bool {
	m := g.menus[g.current]
	if m == nil {
		return false
	}
	return g.makeNewDirectionalSelection(m, id, DIR_none)
}

// activateSelection raises the click signals of the selected widget.
func (g *GUI) activateSelection() {
	m := g.menus[g.current]
	id := m.current
	if id == NO_WIDGET || !g.fullyVisible(id) {
		return
	}
	r := g.store.find(id)
	if !g.reg.Has(r.ptr.wtype, WC_activatable) {
		return
	}
	g.playSound(r.sounds[selectSound])
	g.selectTriggered = true
	r.ptr.Activate()
}

// showWidgetInScrollablePanel scrolls every ScrollablePanel containing id so
// that id is in view, preferring its top left corner when it does not fit.
func (g *GUI) showWidgetInScrollablePanel(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return
	}
	w := r.ptr
	for p := w.parent; p != nil; p = p.parent {
		if !g.reg.Has(p.wtype, WC_scrollable) {
			continue
		}
		view := p.InnerSize()
		if p.ScrollbarShown(AXIS_vertical) {
			view[0] = maxF(0, view[0]-g.canvas.scrollbarWidth)
		}
		if p.ScrollbarShown(AXIS_horizontal) {
			view[1] = maxF(0, view[1]-g.canvas.scrollbarWidth)
		}
		rel := w.AbsolutePosition().Sub(p.InnerAbsolutePosition())
		size := w.Size()
		for axis := AXIS_horizontal; axis <= AXIS_vertical; axis++ {
			v := p.scroll[axis].Value
			if rel[axis]+size[axis] > v+view[axis] {
				v = rel[axis] + size[axis] - view[axis]
			}
			if rel[axis] < v {
				v = rel[axis]
			}
			p.SetScrollbarValue(axis, v)
		}
	}
}

func (g *GUI) playSound(s SoundBinding) {
	if g.sounds != nil && !s.empty() {
		g.sounds.Play(s.Object, s.Sound)
	}
}

func (g *GUI) stopSound(object string) {
	if g.sounds != nil && object != "" {
		g.sounds.Stop(object)
	}
}

func (g *GUI) setAudioVolume(object string, v float64) {
	if g.sounds != nil && object != "" {
		g.sounds.SetVolume(object, v)
	}
}

// periodic calls the active menu's per-frame callback, unless this frame's
// select input already activated a widget.
func (g *GUI) periodic(ui Controls) {
	if g.selectTriggered || g.scripts == nil {
		return
	}
	m := g.menus[g.current]
	if m == nil {
		return
	}
	t := g.controlsTable(ui)
	if _, ok := g.scripts.CallMethod(m.controller, "Periodic", t); ok {
		return
	}
	if _, ok := g.scripts.CallGlobal(m.name+"HandleInput", t); ok {
		return
	}
	g.scripts.CallGlobal(m.name+"Periodic", t)
}

// controlsTable builds the table passed to periodic callbacks: every
// control's signal by name, the navigation actions as up, down, left,
// right and select, and the mouse positions.
func (g *GUI) controlsTable(ui Controls) *lua.LTable {
	l := g.scripts.State()
	t := l.NewTable()
	for name, v := range ui.Signals() {
		t.RawSetString(name, lua.LBool(v))
	}
	for i, n := range [...]string{"up", "down", "left", "right", "select"} {
		t.RawSetString(n, lua.LBool(ui.Control(g.controls[i].Name)))
	}
	t.RawSetString("mouse", toLValue(l, ui.MousePosition()))
	t.RawSetString("previousMouse", toLValue(l, ui.PreviousMousePosition()))
	return t
}

// Directional flow wiring

// SetDirectionalFlow sets the widgets selected from id in each direction.
func (g *GUI) SetDirectionalFlow(id WidgetID, up, down, left, right WidgetID) error {
	r, err := g.lookup(id, "setWidgetDirectionalFlow", 0)
	if err != nil {
		return err
	}
	for _, t := range []WidgetID{up, down, left, right} {
		if t != NO_WIDGET && t != GOTO_PREVIOUS_WIDGET && !g.widgetExists(t) {
			return notFound("setWidgetDirectionalFlow: widget %d does not exist", t)
		}
	}
	r.flow = [4]WidgetID{up, down, left, right}
	return nil
}

// SetDirectionalFlowStart sets the widget a menu selects on first input.
func (g *GUI) SetDirectionalFlowStart(menu string, id WidgetID) error {
	m := g.menus[menu]
	if m == nil {
		return notFound("setWidgetDirectionalFlowStart: menu %q does not exist", menu)
	}
	if id != NO_WIDGET && !g.widgetExists(id) {
		return notFound("setWidgetDirectionalFlowStart: widget %d does not exist", id)
	}
	m.selectFirst = id
	return nil
}

// SetDirectionalFlowSelection selects id in menu directly.
func (g *GUI) SetDirectionalFlowSelection(menu string, id WidgetID) error {
	m := g.menus[menu]
	if m == nil {
		return notFound("setWidgetDirectionalFlowSelection: menu %q does not exist", menu)
	}
	if id != NO_WIDGET && !g.widgetExists(id) {
		return notFound("setWidgetDirectionalFlowSelection: widget %d does not exist", id)
	}
	if m.current != id {
		m.previous, m.current = m.current, id
	}
	if menu == g.current && id != NO_WIDGET {
		g.showWidgetInScrollablePanel(id)
	}
	return nil
}

// DirectionalFlowSelection returns the selected widget of menu.
func (g *GUI) DirectionalFlowSelection(menu string) (WidgetID, error) {
	m := g.menus[menu]
	if m == nil {
		return NO_WIDGET, notFound("getWidgetDirectionalFlowSelection: menu %q does not exist", menu)
	}
	return m.current, nil
}

// SetWidgetSounds overrides the sound played when flow moves onto id in
// direction d, or when id is activated for selectSound.
func (g *GUI) SetWidgetSounds(id WidgetID, i int, s SoundBinding) error {
	r, err := g.lookup(id, "setWidgetSounds", 0)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(r.sounds) {
		return precondition("setWidgetSounds: invalid sound slot %d", i)
	}
	r.sounds[i] = s
	return nil
}
