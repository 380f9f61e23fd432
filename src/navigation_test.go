package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// flowMenu builds a menu with three buttons linked a -> b -> c downwards,
// b linked back up to the previous selection, and a selected on open.
func flowMenu(t *testing.T) (g *GUI, m *Menu, a, b, c WidgetID, snd *recordingSounds) {
	t.Helper()
	g, _ = newTestGUI(t)
	snd = &recordingSounds{}
	g.SetSoundPlayer(snd)
	m, err := g.AddMenu("Main", nil)
	if err != nil {
		t.Fatal(err)
	}
	a = addWidget(t, g, m.Root(), "Button", "a")
	b = addWidget(t, g, m.Root(), "Button", "b")
	c = addWidget(t, g, m.Root(), "Button", "c")
	g.SetDirectionalFlow(a, NO_WIDGET, b, NO_WIDGET, NO_WIDGET)
	g.SetDirectionalFlow(b, GOTO_PREVIOUS_WIDGET, c, NO_WIDGET, NO_WIDGET)
	g.SetDirectionalFlowStart("Main", a)
	if err := g.SetGUI("Main", false, false); err != nil {
		t.Fatal(err)
	}
	return
}

func selection(t *testing.T, g *GUI) WidgetID {
	t.Helper()
	id, err := g.DirectionalFlowSelection(g.CurrentMenu())
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestOpeningMenuSelectsFirstSilently(t *testing.T) {
	g, _, a, _, _, snd := flowMenu(t)
	if got := selection(t, g); got != a {
		t.Fatalf("selection = %d, want %d", got, a)
	}
	if len(snd.played) != 0 {
		t.Errorf("select-first played %v", snd.played)
	}
}

func TestFirstDirectionEnablesFlowWithoutMoving(t *testing.T) {
	g, _, a, b, _, snd := flowMenu(t)
	g.HandleInput(press("down"))
	if !g.FlowEnabled() {
		t.Fatal("flow should be enabled")
	}
	if got := selection(t, g); got != a {
		t.Fatalf("selection moved to %d on the enabling press", got)
	}
	g.HandleInput(press("down"))
	if got := selection(t, g); got != b {
		t.Fatalf("selection = %d, want %d", got, b)
	}
	if len(snd.played) != 1 || snd.played[0] != (SoundBinding{"system", "move"}) {
		t.Errorf("played %v", snd.played)
	}
}

func TestMouseMovementDisablesFlow(t *testing.T) {
	g, _, _, _, _, _ := flowMenu(t)
	g.HandleInput(press("down"))
	ui := press("down")
	ui.mouse = mgl.Vec2{10, 10}
	g.HandleInput(ui)
	if g.FlowEnabled() {
		t.Fatal("moving the mouse should disable flow")
	}
}

func TestFlowSkipsHiddenTargets(t *testing.T) {
	g, _, _, b, c, _ := flowMenu(t)
	g.HandleInput(press("down"))
	g.HandleInput(press("down"))
	g.SetWidgetVisibility(c, false)
	g.HandleInput(press("down"))
	if got := selection(t, g); got != b {
		t.Fatalf("selection = %d, want %d", got, b)
	}
	g.SetWidgetVisibility(c, true)
	g.SetWidgetEnabled(c, false)
	g.HandleInput(press("down"))
	if got := selection(t, g); got != b {
		t.Fatalf("disabled target selected: %d", got)
	}
}

func TestGotoPreviousSwapsSelections(t *testing.T) {
	g, m, a, b, _, _ := flowMenu(t)
	g.HandleInput(press("down"))
	g.HandleInput(press("down"))
	g.HandleInput(press("up"))
	prev, cur := m.Selection()
	if cur != a || prev != b {
		t.Fatalf("selection = (%d, %d), want (%d, %d)", prev, cur, b, a)
	}
}

func TestListWrapsWithoutLink(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	list := addWidget(t, g, m.Root(), "ListBox", "list")
	for _, s := range []string{"x", "y", "z"} {
		if _, err := g.AddItem(list, Caption{Text: s}); err != nil {
			t.Fatal(err)
		}
	}
	g.SetDirectionalFlowStart("Main", list)
	g.SetGUI("Main", false, false)
	g.HandleInput(press("down"))

	want := []int{0, 1, 2, 0}
	for i, w := range want {
		g.HandleInput(press("down"))
		if got, _ := g.SelectedItem(list); got != w {
			t.Fatalf("step %d: selected %d, want %d", i, got, w)
		}
	}
	g.HandleInput(press("up"))
	if got, _ := g.SelectedItem(list); got != 2 {
		t.Fatalf("up from the first item selected %d", got)
	}
}

func TestListFollowsLinkAtEdge(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	list := addWidget(t, g, m.Root(), "ListBox", "list")
	next := addWidget(t, g, m.Root(), "Button", "next")
	g.AddItem(list, Caption{Text: "only"})
	g.SetDirectionalFlow(list, NO_WIDGET, next, NO_WIDGET, NO_WIDGET)
	g.SetDirectionalFlowStart("Main", list)
	g.SetGUI("Main", false, false)
	g.HandleInput(press("down"))
	g.HandleInput(press("down"))
	if got, _ := g.SelectedItem(list); got != 0 {
		t.Fatalf("selected %d", got)
	}
	g.HandleInput(press("down"))
	if got := selection(t, g); got != next {
		t.Fatalf("selection = %d, want %d", got, next)
	}
}

func TestScrollablePanelScrollsBeforeLeaving(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	panel := addWidget(t, g, m.Root(), "ScrollablePanel", "panel")
	g.SetWidgetSize(panel, "200px", "100px")
	tall := addWidget(t, g, panel, "Label", "tall")
	g.SetWidgetSize(tall, "10px", "300px")
	g.SetScrollbarAmount(panel, AXIS_vertical, 50)
	g.SetDirectionalFlowStart("Main", panel)
	g.SetGUI("Main", false, false)
	g.HandleInput(press("down"))
	g.HandleInput(press("down"))
	r := g.store.find(panel)
	if v := r.ptr.Scrollbar(AXIS_vertical).Value; v != 50 {
		t.Fatalf("scroll value = %v, want 50", v)
	}
	g.HandleInput(press("up"))
	if v := r.ptr.Scrollbar(AXIS_vertical).Value; v != 0 {
		t.Fatalf("scroll value = %v, want 0", v)
	}
}

func TestSelectActivatesAndSkipsPeriodic(t *testing.T) {
	g, m, a, _, _, snd := flowMenu(t)
	h := g.scripts
	if err := h.DoString(`
		clicks = 0
		ticks = 0
		function onClick(id) clicks = clicks + 1 end
		function MainPeriodic(ui) ticks = ticks + 1 end
	`); err != nil {
		t.Fatal(err)
	}
	if err := g.ConnectSignal(a, "Clicked", h.Function("onClick")); err != nil {
		t.Fatal(err)
	}
	g.HandleInput(press("down"))
	if luaNumber(h, "ticks") != 1 {
		t.Fatalf("ticks = %v", luaNumber(h, "ticks"))
	}
	g.HandleInput(press("select"))
	if luaNumber(h, "clicks") != 1 {
		t.Fatalf("clicks = %v", luaNumber(h, "clicks"))
	}
	if luaNumber(h, "ticks") != 1 {
		t.Errorf("periodic ran on a select frame")
	}
	if n := len(snd.played); n == 0 || snd.played[n-1] != (SoundBinding{"system", "select"}) {
		t.Errorf("played %v", snd.played)
	}
	if _, cur := m.Selection(); cur != a {
		t.Errorf("selection changed to %d", cur)
	}
}

func TestSetWidgetSoundsOverridesDefault(t *testing.T) {
	g, _, _, b, _, snd := flowMenu(t)
	if err := g.SetWidgetSounds(b, int(DIR_down), SoundBinding{"ui", "tick"}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetWidgetSounds(b, 7, SoundBinding{}); !isKind(err, ErrPrecondition) {
		t.Errorf("bad slot: %v", err)
	}
	g.HandleInput(press("down"))
	g.HandleInput(press("down"))
	if len(snd.played) != 1 || snd.played[0] != (SoundBinding{"ui", "tick"}) {
		t.Errorf("played %v", snd.played)
	}
}

func TestSetDirectionalFlowValidatesTargets(t *testing.T) {
	g, _, a, _, _, _ := flowMenu(t)
	if err := g.SetDirectionalFlow(a, 500, NO_WIDGET, NO_WIDGET, NO_WIDGET); !isKind(err, ErrNotFound) {
		t.Errorf("unknown target: %v", err)
	}
	if err := g.SetDirectionalFlowSelection("Nope", a); !isKind(err, ErrNotFound) {
		t.Errorf("unknown menu: %v", err)
	}
}
