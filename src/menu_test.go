package main

import (
	"strings"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"

	lua "github.com/yuin/gopher-lua"
)

const twoMenuScript = `
calls = {}
local function log(s) calls[#calls + 1] = s end

local Title = Menu:extend("Title")
function Title:SetUp(root)
	log("Title.SetUp")
	local b = createWidget("Button")
	setWidgetName(b, "start")
	add(root, b)
	setWidgetDirectionalFlowStart(self.name, b)
end
function Title:Open(previous) log("Title.Open:" .. previous) end
function Title:Close(next) log("Title.Close:" .. next) end

local Options = Menu:extend("Options")
function Options:SetUp(root) log("Options.SetUp") end
function Options:Open(previous) log("Options.Open:" .. previous) end
function Options:Close(next) log("Options.Close:" .. next) end
`

func scriptCalls(h *ScriptHost) []string {
	var out []string
	if t, ok := h.State().GetGlobal("calls").(*lua.LTable); ok {
		t.ForEach(func(_, v lua.LValue) { out = append(out, v.String()) })
	}
	return out
}

func loadTwoMenus(t *testing.T) (*GUI, *ScriptHost) {
	t.Helper()
	g, h := newTestGUI(t)
	if err := h.DoString(twoMenuScript); err != nil {
		t.Fatal(err)
	}
	if err := g.LoadMenus(&GUIConfig{Reserve: 16, Controls: testControls}); err != nil {
		t.Fatal(err)
	}
	return g, h
}

func TestLoadMenusDiscoversClassesInOrder(t *testing.T) {
	g, h := loadTwoMenus(t)
	if got := strings.Join(g.MenuNames(), ","); got != "Title,Options" {
		t.Fatalf("menus = %s", got)
	}
	if g.CurrentMenu() != "Title" {
		t.Fatalf("current = %q", g.CurrentMenu())
	}
	want := "Title.SetUp,Options.SetUp,Title.Open:"
	if got := strings.Join(scriptCalls(h), ","); got != want {
		t.Fatalf("calls = %s, want %s", got, want)
	}
	m := g.Menu("Title")
	if sel, _ := g.DirectionalFlowSelection("Title"); sel == NO_WIDGET || sel != m.selectFirst {
		t.Errorf("first widget not selected: %d", sel)
	}
	if v, _ := g.WidgetVisibility(g.Menu("Options").Root()); v {
		t.Error("inactive menu root should be hidden")
	}
}

func TestSetGUICallsCloseThenOpen(t *testing.T) {
	g, h := loadTwoMenus(t)
	h.DoString(`calls = {}`)
	if err := g.SetGUI("Options", true, true); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(scriptCalls(h), ","); got != "Title.Close:Options,Options.Open:Title" {
		t.Fatalf("calls = %s", got)
	}
	if g.PreviousMenu() != "Title" {
		t.Errorf("previous = %q", g.PreviousMenu())
	}
	if v, _ := g.WidgetVisibility(g.Menu("Title").Root()); v {
		t.Error("old menu root should be hidden")
	}
	if v, _ := g.WidgetVisibility(g.Menu("Options").Root()); !v {
		t.Error("new menu root should be shown")
	}

	h.DoString(`calls = {}`)
	g.SetGUI("Options", true, true)
	if n := len(scriptCalls(h)); n != 0 {
		t.Errorf("switching to the current menu made %d calls", n)
	}
	if err := g.SetGUI("Missing", true, true); !isKind(err, ErrNotFound) {
		t.Errorf("unknown menu: %v", err)
	}
}

func TestGlobalMenuCallbacks(t *testing.T) {
	g, h := newTestGUI(t)
	h.DoString(`
		opened = ""
		function PlainSetUp(root)
			local l = createWidget("Label")
			add(root, l)
		end
		function PlainOpen(previous) opened = "yes" end
	`)
	err := g.LoadMenus(&GUIConfig{Reserve: 16, Controls: testControls, Menus: []string{"Plain"}})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := g.WidgetCount(g.Menu("Plain").Root()); n != 1 {
		t.Errorf("SetUp added %d widgets", n)
	}
	if s := h.State().GetGlobal("opened").String(); s != "yes" {
		t.Errorf("opened = %q", s)
	}
}

func TestLoadMenusWithoutMenus(t *testing.T) {
	g, _ := newTestGUI(t)
	if err := g.LoadMenus(&GUIConfig{Reserve: 16}); !isKind(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSignalDispatchOrder(t *testing.T) {
	g, h := loadTwoMenus(t)
	h.DoString(`
		calls = {}
		function pre(id, sig) log2("pre:" .. sig) end
		function log2(s) calls[#calls + 1] = s end
		function Title_start_Clicked(id) log2("convention") end
		function handler(id) log2("handler") end
		function all(id, sig) log2("all:" .. sig) end
	`)
	start := g.Menu("Title").selectFirst
	w := g.store.find(start).ptr

	w.Emit("Clicked")
	if got := strings.Join(scriptCalls(h), ","); got != "convention" {
		t.Fatalf("without handlers: %s", got)
	}

	h.DoString(`calls = {}`)
	g.SetGlobalSignalHandler(h.Function("pre"))
	g.ConnectSignal(start, "Clicked", h.Function("handler"))
	g.ConnectAllSignals(start, h.Function("all"))
	w.Emit("Clicked")
	if got := strings.Join(scriptCalls(h), ","); got != "pre:Clicked,handler,all:Clicked" {
		t.Fatalf("with handlers: %s", got)
	}

	h.DoString(`calls = {}`)
	g.DisconnectSignals(start)
	g.SetGlobalSignalHandler(nil)
	h.DoString(`function Renamed(name, sig) log2(name .. ":" .. sig) end`)
	g.SetSignalHandlerOverride(start, "Renamed")
	w.Emit("Clicked")
	if got := strings.Join(scriptCalls(h), ","); got != "Title.start:Clicked" {
		t.Fatalf("override: %s", got)
	}
}

func TestConnectSignalRejectsUnknownSignal(t *testing.T) {
	g, h := newTestGUI(t)
	h.DoString(`function f() end`)
	id, _ := g.CreateWidget("Label")
	if err := g.ConnectSignal(id, "Pressed", h.Function("f")); !isKind(err, ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestHandlerMayDeleteItsWidget(t *testing.T) {
	g, h := newTestGUI(t)
	h.DoString(`
		clicks = 0
		function kill(id) deleteWidget(id) end
		function click(id) clicks = clicks + 1 end
	`)
	id, _ := g.CreateWidget("Button")
	g.ConnectSignal(id, "Pressed", h.Function("kill"))
	g.ConnectSignal(id, "Clicked", h.Function("click"))
	g.store.find(id).ptr.Activate()
	if g.widgetExists(id) {
		t.Fatal("widget should have been deleted")
	}
	if luaNumber(h, "clicks") != 0 {
		t.Error("signal reached a deleted widget")
	}
}

func TestClosingVeto(t *testing.T) {
	g, h := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	win := addWidget(t, g, m.Root(), "ChildWindow", "win")
	box := addWidget(t, g, m.Root(), "MessageBox", "box")
	h.DoString(`function veto() return false end`)

	g.ConnectSignal(win, "Closing", h.Function("veto"))
	g.CloseChildWindowAndEmitSignal(win)
	if open, _ := g.IsChildWindowOpen(win); !open {
		t.Error("vetoed child window closed")
	}
	g.DisconnectSignals(win)
	g.CloseChildWindowAndEmitSignal(win)
	if open, _ := g.IsChildWindowOpen(win); open {
		t.Error("child window should be hidden")
	}
	if g.Parent(win) != m.Root() {
		t.Error("closed child window should stay in its container")
	}

	g.CloseChildWindowAndEmitSignal(box)
	if !g.widgetExists(box) || g.Parent(box) != NO_WIDGET {
		t.Error("closed message box should be removed but alive")
	}
}

func TestChildWindowMinimiseSlots(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	var wins []WidgetID
	for _, n := range []string{"a", "b", "c"} {
		wins = append(wins, addWidget(t, g, m.Root(), "ChildWindow", n))
	}
	x := func(id WidgetID) float32 {
		pos, _ := g.store.find(id).ptr.Layouts()
		return pos[0].Px
	}
	g.store.find(wins[0]).ptr.Minimize()
	g.store.find(wins[1]).ptr.Minimize()
	if x(wins[0]) != 5 || x(wins[1]) != 110 {
		t.Fatalf("slots at %v, %v", x(wins[0]), x(wins[1]))
	}
	_, size := g.store.find(wins[0]).ptr.Layouts()
	if size[0].Px != minimisedChildWindowWidth || size[1].Px != g.canvas.TitleBarHeight() {
		t.Errorf("minimised size = %+v", size)
	}

	g.RestoreChildWindow(wins[0])
	_, size = g.store.find(wins[0]).ptr.Layouts()
	if size[0].Px != 400 || size[1].Px != 300 {
		t.Errorf("restored size = %+v", size)
	}
	g.store.find(wins[2]).ptr.Minimize()
	if x(wins[2]) != 5 {
		t.Errorf("freed slot not reused: %v", x(wins[2]))
	}
}

func TestChildWindowMaximiseToggles(t *testing.T) {
	g, _ := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	win := addWidget(t, g, m.Root(), "ChildWindow", "win")
	w := g.store.find(win).ptr
	w.Maximize()
	if _, size := w.Layouts(); size[0].Pct != 100 || size[1].Pct != 100 {
		t.Fatalf("maximised size = %+v", size)
	}
	if w.Resizable() {
		t.Error("maximised window should not be resizable")
	}
	w.Maximize()
	if _, size := w.Layouts(); size[0].Px != 400 {
		t.Fatalf("second maximise should restore, size = %+v", size)
	}
	if !w.Resizable() {
		t.Error("restored window should be resizable again")
	}
}

func TestMenuBarConstruction(t *testing.T) {
	g, h := newTestGUI(t)
	h.DoString(`
		clicked = -1
		function BarSetUp(root)
			bar = createWidget("MenuBar")
			add(root, bar)
			addMenu(bar, "File")
			addMenuItem(bar, "Open")
			addMenuItemIntoLastItem(bar, "Recent")
			exitSubmenu(bar)
			addMenuItem(bar, "Quit")
		end
		function Bar_bar_MenuItemClicked(id, item) clicked = item end
	`)
	if err := g.LoadMenus(&GUIConfig{Reserve: 16, Menus: []string{"Bar"}}); err != nil {
		t.Fatal(err)
	}
	bar := WidgetID(luaNumber(h, "bar"))
	g.SetWidgetName(bar, "bar")
	w := g.store.find(bar).ptr
	var paths []string
	w.WalkMenus(func(it *MenuBarItem) {
		paths = append(paths, strings.Join(it.Path(), "/"))
	})
	want := "File,File/Open,File/Open/Recent,File/Quit"
	if got := strings.Join(paths, ","); got != want {
		t.Fatalf("items = %s, want %s", got, want)
	}

	quit := w.Menus()[0].Items[1]
	w.ClickMenuItem(quit)
	if id, _ := g.LastSelectedMenuItem(bar); id != 3 {
		t.Errorf("last selected = %d", id)
	}
	if luaNumber(h, "clicked") != 3 {
		t.Errorf("clicked = %v", luaNumber(h, "clicked"))
	}
	if _, err := g.AddMenuBarMenu(bar, Caption{Text: "Late"}); !isKind(err, ErrPrecondition) {
		t.Errorf("adding outside SetUp: %v", err)
	}
}

func clickAt(c *Canvas, x, y float32) {
	p := mgl.Vec2{x, y}
	c.HandleMouse(p, true)
	c.HandleMouse(p, false)
}

func TestMenuBarClickedWithMouse(t *testing.T) {
	g, h := newTestGUI(t)
	h.DoString(`
		clicked = -1
		function BarSetUp(root)
			bar = createWidget("MenuBar")
			add(root, bar)
			addMenu(bar, "File")
			addMenuItem(bar, "Open")
			addMenuItemIntoLastItem(bar, "Recent")
			exitSubmenu(bar)
			addMenuItem(bar, "Quit")
		end
		function Bar_bar_MenuItemClicked(id, item) clicked = item end
	`)
	if err := g.LoadMenus(&GUIConfig{Reserve: 16, Menus: []string{"Bar"}}); err != nil {
		t.Fatal(err)
	}
	bar := WidgetID(luaNumber(h, "bar"))
	g.SetWidgetName(bar, "bar")
	g.SetWidgetPosition(bar, "0px", "0px")
	g.SetWidgetSize(bar, "300px", "22px")
	w := g.store.find(bar).ptr
	file := w.Menus()[0]

	// Rows of the dropdown start under the 22px strip.
	clickAt(g.canvas, 10, 10)
	if w.MenuOpen() != file {
		t.Fatalf("open menu = %v", w.MenuOpen())
	}
	clickAt(g.canvas, 10, 49)
	if luaNumber(h, "clicked") != 3 || w.MenuOpen() != nil {
		t.Fatalf("clicked = %v, open = %v", luaNumber(h, "clicked"), w.MenuOpen())
	}
	if id, _ := g.LastSelectedMenuItem(bar); id != 3 {
		t.Errorf("last selected = %d", id)
	}

	clickAt(g.canvas, 10, 10)
	clickAt(g.canvas, 10, 30)
	if w.MenuOpen() != file.Items[0] || luaNumber(h, "clicked") != 3 {
		t.Fatalf("submenu not opened: %v", w.MenuOpen())
	}
	clickAt(g.canvas, 10, 30)
	if luaNumber(h, "clicked") != 2 {
		t.Errorf("clicked = %v, want Recent", luaNumber(h, "clicked"))
	}

	clickAt(g.canvas, 10, 10)
	clickAt(g.canvas, 10, 10)
	if w.MenuOpen() != nil {
		t.Error("second click on the strip should close the menu")
	}
	clickAt(g.canvas, 10, 10)
	clickAt(g.canvas, 500, 500)
	if w.MenuOpen() != nil || g.canvas.OpenMenuBar() != nil {
		t.Error("clicking elsewhere should close the menu")
	}
	if luaNumber(h, "clicked") != 2 {
		t.Errorf("clicked = %v after closing", luaNumber(h, "clicked"))
	}
}

func TestMessageBoxButtonsClickedWithMouse(t *testing.T) {
	g, h := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	box := addWidget(t, g, m.Root(), "MessageBox", "box")
	g.SetGUI("Main", false, false)
	g.SetWidgetPosition(box, "0px", "0px")
	g.SetMessageBoxStrings(box, Caption{Text: "Quit"}, Caption{Text: "Sure?"},
		[]Caption{{Text: "Yes"}, {Text: "No"}})
	h.DoString(`pressed = -1 function Main_box_ButtonPressed(id, i) pressed = i end`)

	// 300x150 box, buttons share the bottom 22px row.
	clickAt(g.canvas, 225, 140)
	if i, _ := g.LastSelectedButton(box); i != 1 || luaNumber(h, "pressed") != 1 {
		t.Fatalf("last button = %d, script saw %v", i, luaNumber(h, "pressed"))
	}
	clickAt(g.canvas, 75, 140)
	if i, _ := g.LastSelectedButton(box); i != 0 {
		t.Errorf("last button = %d", i)
	}
	clickAt(g.canvas, 150, 70)
	if i, _ := g.LastSelectedButton(box); i != 0 || luaNumber(h, "pressed") != 0 {
		t.Errorf("a click on the text pressed button %d", i)
	}
}

func TestOpenMaySetSelectFirst(t *testing.T) {
	g, h := newTestGUI(t)
	err := h.DoString(`
		clicks = 0
		local Main = Menu:extend("Main")
		function Main:SetUp(root)
			self.panel = root
			local a = createWidget("Button")
			add(root, a)
			setWidgetDirectionalFlowStart(self.name, a)
		end
		function Main:Open(previous)
			btn = createWidget("Button")
			add(self.panel, btn)
			setWidgetDirectionalFlowStart(self.name, btn)
			connectSignal(btn, "Clicked", function(id) clicks = clicks + 1 end)
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.LoadMenus(&GUIConfig{Reserve: 16, Controls: testControls}); err != nil {
		t.Fatal(err)
	}
	btn := WidgetID(luaNumber(h, "btn"))
	if got := selection(t, g); got != btn {
		t.Fatalf("selection = %d, want the widget Open created (%d)", got, btn)
	}
	g.HandleInput(press("down"))
	if got := selection(t, g); got != btn {
		t.Fatalf("enabling flow moved the selection to %d", got)
	}
	g.HandleInput(press("select"))
	if luaNumber(h, "clicks") != 1 {
		t.Errorf("clicks = %v", luaNumber(h, "clicks"))
	}
}

func TestClosedFollowsUnvetoedClosing(t *testing.T) {
	g, h := newTestGUI(t)
	m, _ := g.AddMenu("Main", nil)
	win := addWidget(t, g, m.Root(), "ChildWindow", "win")
	box := addWidget(t, g, m.Root(), "MessageBox", "box")
	h.DoString(`
		allow = false
		closed = 0
		function closing() return allow end
		function onClosed(id) closed = closed + 1 end
	`)
	for _, id := range []WidgetID{win, box} {
		g.ConnectSignal(id, "Closing", h.Function("closing"))
		if err := g.ConnectSignal(id, "Closed", h.Function("onClosed")); err != nil {
			t.Fatal(err)
		}
	}
	g.CloseChildWindowAndEmitSignal(win)
	g.CloseChildWindowAndEmitSignal(box)
	if luaNumber(h, "closed") != 0 {
		t.Fatalf("Closed ran %v times after a veto", luaNumber(h, "closed"))
	}
	h.DoString(`allow = true`)
	g.CloseChildWindowAndEmitSignal(win)
	if luaNumber(h, "closed") != 1 {
		t.Errorf("child window: Closed ran %v times", luaNumber(h, "closed"))
	}
	g.CloseChildWindowAndEmitSignal(box)
	if luaNumber(h, "closed") != 2 {
		t.Errorf("message box: Closed ran %v times", luaNumber(h, "closed"))
	}
}
