package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

var testControls = [5]controlBinding{
	{Name: "up", Sound: SoundBinding{"system", "move"}},
	{Name: "down", Sound: SoundBinding{"system", "move"}},
	{Name: "left", Sound: SoundBinding{"system", "move"}},
	{Name: "right", Sound: SoundBinding{"system", "move"}},
	{Name: "select", Sound: SoundBinding{"system", "select"}},
}

type fakeControls struct {
	pressed   map[string]bool
	mouse     mgl.Vec2
	prevMouse mgl.Vec2
}

func (c *fakeControls) Control(name string) bool        { return c.pressed[name] }
func (c *fakeControls) Signals() map[string]bool        { return c.pressed }
func (c *fakeControls) MousePosition() mgl.Vec2         { return c.mouse }
func (c *fakeControls) PreviousMousePosition() mgl.Vec2 { return c.prevMouse }

func press(names ...string) *fakeControls {
	c := &fakeControls{pressed: make(map[string]bool)}
	for _, n := range names {
		c.pressed[n] = true
	}
	return c
}

type recordingSounds struct {
	played  []SoundBinding
	stopped []string
	volume  map[string]float64
}

func (s *recordingSounds) Play(object, sound string) bool {
	s.played = append(s.played, SoundBinding{object, sound})
	return true
}

func (s *recordingSounds) Stop(object string) { s.stopped = append(s.stopped, object) }

func (s *recordingSounds) SetVolume(object string, v float64) {
	if s.volume == nil {
		s.volume = make(map[string]float64)
	}
	s.volume[object] = v
}

func newTestGUI(t *testing.T) (*GUI, *ScriptHost) {
	t.Helper()
	g := newGUI(newRegistry(), newDiscardLogger(), mgl.Vec2{800, 600}, 16)
	g.SetControls(testControls)
	h := NewScriptHost(newDiscardLogger())
	t.Cleanup(h.Close)
	g.SetScripts(h)
	return g, h
}

// addWidget creates a named widget inside parent.
func addWidget(t *testing.T, g *GUI, parent WidgetID, typeName, name string) WidgetID {
	t.Helper()
	id, err := g.CreateWidget(typeName)
	if err != nil {
		t.Fatalf("CreateWidget(%q): %v", typeName, err)
	}
	if err := g.SetWidgetName(id, name); err != nil {
		t.Fatalf("SetWidgetName: %v", err)
	}
	if err := g.Add(parent, id); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return id
}

func luaNumber(h *ScriptHost, name string) float64 {
	n, _ := h.State().GetGlobal(name).(lua.LNumber)
	return float64(n)
}

func TestCreateWidgetUnknownType(t *testing.T) {
	g, _ := newTestGUI(t)
	if _, err := g.CreateWidget("Spinner"); !isKind(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRefusesRootAndMenuRoots(t *testing.T) {
	g, _ := newTestGUI(t)
	m, err := g.AddMenu("Main", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteWidget(ROOT_WIDGET); !isKind(err, ErrPrecondition) {
		t.Errorf("deleting root: %v", err)
	}
	if err := g.DeleteWidget(m.Root()); !isKind(err, ErrPrecondition) {
		t.Errorf("deleting menu root: %v", err)
	}
	if err := g.DeleteWidget(999); !isKind(err, ErrNotFound) {
		t.Errorf("deleting unknown widget: %v", err)
	}
}

func TestDeleteIsRecursiveAndClearsReferences(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	panel := addWidget(t, g, m.Root(), "Panel", "panel")
	inner := addWidget(t, g, panel, "Button", "inner")
	other := addWidget(t, g, m.Root(), "Button", "other")
	if err := g.SetDirectionalFlow(other, inner, inner, NO_WIDGET, NO_WIDGET); err != nil {
		t.Fatal(err)
	}
	if err := g.SetDirectionalFlowStart("Main", inner); err != nil {
		t.Fatal(err)
	}

	if err := g.DeleteWidget(panel); err != nil {
		t.Fatal(err)
	}
	if g.widgetExists(panel) || g.widgetExists(inner) {
		t.Fatal("panel and its child should be gone")
	}
	if f := g.store.find(other).flow; f[DIR_up] != NO_WIDGET || f[DIR_down] != NO_WIDGET {
		t.Errorf("flow links to deleted widget remain: %v", f)
	}
	if m.selectFirst != NO_WIDGET {
		t.Errorf("menu still starts at %d", m.selectFirst)
	}
	// The lowest released ID is handed out first.
	id, _ := g.CreateWidget("Label")
	if id != panel && id != inner {
		t.Errorf("expected a recycled ID, got %d", id)
	}
}

func TestAddRejectsCycles(t *testing.T) {
	g, _ := newTestGUI(t)
	outer, _ := g.CreateWidget("Panel")
	inner, _ := g.CreateWidget("Panel")
	if err := g.Add(outer, inner); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(inner, outer); !isKind(err, ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	btn, _ := g.CreateWidget("Button")
	if err := g.Add(btn, inner); !isKind(err, ErrUnsupported) {
		t.Fatalf("adding to a button: %v", err)
	}
}

func TestAddToRootHides(t *testing.T) {
	g, _ := newTestGUI(t)
	id, _ := g.CreateWidget("Label")
	if err := g.Add(ROOT_WIDGET, id); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.WidgetVisibility(id); v {
		t.Error("children of the root should start hidden")
	}
}

func TestRemoveKeepsWidgetAlive(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	id := addWidget(t, g, m.Root(), "Button", "b")
	if err := g.Remove(id); err != nil {
		t.Fatal(err)
	}
	if !g.widgetExists(id) || g.Parent(id) != NO_WIDGET {
		t.Fatal("removed widget should exist without a parent")
	}
	if err := g.Remove(id); !isKind(err, ErrPrecondition) {
		t.Errorf("removing a detached widget: %v", err)
	}
}

func TestFullNameAndDotNames(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	panel := addWidget(t, g, m.Root(), "Panel", "panel")
	btn := addWidget(t, g, panel, "Button", "ok")
	if got, _ := g.WidgetFullName(btn); got != "Main.panel.ok" {
		t.Errorf("full name = %q", got)
	}
	if err := g.SetWidgetName(btn, "a.b"); !isKind(err, ErrPrecondition) {
		t.Errorf("dotted name: %v", err)
	}
}

func TestTabContainerDeleteRemovesTab(t *testing.T) {
	g, _ := newTestGUI(t)
	tc, _ := g.CreateWidget("TabContainer")
	p1, err := g.AddTabAndPanel(tc, Caption{Text: "one"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddTabAndPanel(tc, Caption{Text: "two"}); err != nil {
		t.Fatal(err)
	}
	if n, _ := g.TabCount(tc); n != 2 {
		t.Fatalf("tab count = %d", n)
	}
	if err := g.DeleteWidget(p1); err != nil {
		t.Fatal(err)
	}
	if n, _ := g.TabCount(tc); n != 1 {
		t.Errorf("tab count after delete = %d", n)
	}
	if r := g.store.find(tc); len(r.caption.list) != 1 || r.caption.list[0].Text != "two" {
		t.Errorf("caption list = %+v", r.caption.list)
	}
}

func TestReserveReportsGrowth(t *testing.T) {
	g := newGUI(newRegistry(), newDiscardLogger(), mgl.Vec2{800, 600}, 2)
	for i := 0; i < 5; i++ {
		g.CreateWidget("Label")
	}
	n, grown := g.Reserve()
	if !grown || n < 6 {
		t.Errorf("Reserve() = %d, %v", n, grown)
	}
}

func TestScriptAudioControls(t *testing.T) {
	g, h := newTestGUI(t)
	snd := &recordingSounds{}
	g.SetSoundPlayer(snd)
	err := h.DoString(`
		playSound("music", "title")
		setAudioVolume("music", 40)
		stopSound("music")
		stopSound("")
	`)
	if err != nil {
		t.Fatal(err)
	}
	if len(snd.played) != 1 || snd.played[0] != (SoundBinding{"music", "title"}) {
		t.Errorf("played %v", snd.played)
	}
	if snd.volume["music"] != 40 {
		t.Errorf("volume = %v", snd.volume)
	}
	if len(snd.stopped) != 1 || snd.stopped[0] != "music" {
		t.Errorf("stopped %v", snd.stopped)
	}
}
