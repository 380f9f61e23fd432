package main

import (
	lua "github.com/yuin/gopher-lua"
)

// Menu is one screen of the GUI: a root Group holding its widgets, the
// script controller, and its directional flow selection.
type Menu struct {
	name        string
	controller  *lua.LTable
	root        WidgetID
	selectFirst WidgetID
	previous    WidgetID
	current     WidgetID
}

func (m *Menu) Name() string   { return m.name }
func (m *Menu) Root() WidgetID { return m.root }

func (m *Menu) Selection() (prev, cur WidgetID) { return m.previous, m.current }

// forget clears every reference m holds to id.
func (m *Menu) forget(id WidgetID) {
	if m.selectFirst == id {
		m.selectFirst = NO_WIDGET
	}
	if m.previous == id {
		m.previous = NO_WIDGET
	}
	if m.current == id {
		m.current = NO_WIDGET
	}
}

// AddMenu creates a menu with its own hidden root Group and runs its SetUp.
func (g *GUI) AddMenu(name string, controller *lua.LTable) (*Menu, error) {
	if name == "" {
		return nil, precondition("a menu must have a name")
	}
	if g.menus[name] != nil {
		return nil, precondition("menu %q already exists", name)
	}
	root := g.createWidget(WT_Group)
	rw := g.store.find(root).ptr
	g.attach(g.canvas.root, rw, name)
	rw.SetVisible(false)
	m := &Menu{name: name, controller: controller, root: root}
	g.menus[name] = m
	g.menuOrder = append(g.menuOrder, name)
	if controller != nil {
		controller.RawSetString("name", lua.LString(name))
		controller.RawSetString("root", lua.LNumber(root))
	}
	g.setUpMenu(m)
	return m, nil
}

func (g *GUI) setUpMenu(m *Menu) {
	if g.scripts == nil {
		return
	}
	g.constructing = m.name
	defer func() { g.constructing = "" }()
	if _, ok := g.scripts.CallMethod(m.controller, "SetUp", m.root); ok {
		return
	}
	if _, ok := g.scripts.CallGlobal(m.name+"SetUp", m.root); !ok {
		g.log.Debugf("Menu %q has no SetUp function.", m.name)
	}
}

// LoadMenus rebuilds the GUI from a configuration: runs its scripts, then
// creates every declared menu and opens the first one.
func (g *GUI) LoadMenus(cfg *GUIConfig) error {
	g.clearState(cfg.Reserve)
	g.controls = cfg.Controls
	if g.scripts == nil {
		return precondition("no script host to load menus from")
	}
	for _, path := range cfg.Scripts {
		if err := g.scripts.DoFile(path); err != nil {
			return err
		}
	}
	names := cfg.Menus
	if len(names) == 0 {
		names = g.scripts.MenuClasses()
	}
	for _, n := range names {
		ctrl := g.scripts.NewController(n)
		if ctrl == nil {
			g.log.Debugf("Menu %q has no controller class, using global callbacks.", n)
		}
		if _, err := g.AddMenu(n, ctrl); err != nil {
			g.log.Errorf("Could not add menu: %v", err)
		}
	}
	first := cfg.FirstMenu
	if first == "" && len(g.menuOrder) > 0 {
		first = g.menuOrder[0]
	}
	if first == "" {
		return notFound("no menus were declared")
	}
	if g.menus[first] == nil {
		return notFound("first menu %q does not exist", first)
	}
	return g.SetGUI(first, false, true)
}

// SetGUI hides the current menu and shows name. Close is called on the old
// menu's controller, then Open on the new one, then the new menu's first
// widget is selected if nothing is. Switching to the current menu does
// nothing.
func (g *GUI) SetGUI(name string, callClose, callOpen bool) error {
	if name == g.current {
		return nil
	}
	m := g.menus[name]
	if m == nil {
		return notFound("setGUI: menu %q does not exist", name)
	}
	old := g.menus[g.current]
	if old != nil {
		if r := g.store.find(old.root); r != nil {
			r.ptr.SetVisible(false)
		}
	}
	if r := g.store.find(m.root); r != nil {
		r.ptr.SetVisible(true)
	}
	if callClose && old != nil {
		g.callMenu(old, "Close", name)
	}
	g.widgetSprites = make(map[*Widget]*AnimatedSprite)
	g.previous = g.current
	g.current = name
	if callOpen {
		g.callMenu(m, "Open", g.previous)
	}
	if m.current == NO_WIDGET {
		g.selectFirst(m)
	}
	return nil
}

func (g *GUI) callMenu(m *Menu, fn string, arg string) {
	if g.scripts == nil {
		return
	}
	if _, ok := g.scripts.CallMethod(m.controller, fn, arg); !ok {
		g.scripts.CallGlobal(m.name+fn, arg)
	}
}

func (g *GUI) CurrentMenu() string  { return g.current }
func (g *GUI) PreviousMenu() string { return g.previous }

func (g *GUI) Menu(name string) *Menu { return g.menus[name] }

func (g *GUI) MenuNames() []string { return append([]string(nil), g.menuOrder...) }

// Menu bars. Items can only be added while a menu's SetUp runs. Each bar
// numbers its items from 0 in the order they are added.

const NO_MENU_ITEM_ID = -1

func (g *GUI) menuBar(id WidgetID, op string) (*WidgetRecord, error) {
	if g.constructing == "" {
		return nil, precondition("%s can only be called while a menu is being set up", op)
	}
	r, err := g.lookup(id, op, WC_menuBar)
	if err != nil {
		return nil, err
	}
	if r.menuBar == nil {
		r.menuBar = &menuBarState{lastClicked: NO_MENU_ITEM_ID}
	}
	return r, nil
}

func (g *GUI) addMenuItemTo(r *WidgetRecord, parent *MenuBarItem, caption Caption) *MenuBarItem {
	st := r.menuBar
	var item *MenuBarItem
	text := g.getTranslatedText(caption)
	if parent == nil {
		item = r.ptr.AddMenu(text)
	} else {
		item = parent.Add(text)
	}
	item.ID = st.counter
	st.counter++
	st.items = append(st.items, item)
	st.last = item
	r.caption.appendItem(caption)
	return item
}

// AddMenuBarMenu adds a top level menu.
func (g *GUI) AddMenuBarMenu(id WidgetID, caption Caption) (int, error) {
	r, err := g.menuBar(id, "addMenu")
	if err != nil {
		return NO_MENU_ITEM_ID, err
	}
	st := r.menuBar
	if len(st.path) > 0 && len(st.path[0].Items) == 0 {
		g.log.Warnf("addMenu: the previous menu %q of menu bar %s has no items.", st.path[0].Text, g.describe(id))
	}
	item := g.addMenuItemTo(r, nil, caption)
	st.path = []*MenuBarItem{item}
	return item.ID, nil
}

// AddMenuBarItem adds an item to the most recent menu or submenu.
func (g *GUI) AddMenuBarItem(id WidgetID, caption Caption) (int, error) {
	r, err := g.menuBar(id, "addMenuItem")
	if err != nil {
		return NO_MENU_ITEM_ID, err
	}
	st := r.menuBar
	if len(st.path) == 0 {
		return NO_MENU_ITEM_ID, precondition("addMenuItem: menu bar %s has no menus", g.describe(id))
	}
	return g.addMenuItemTo(r, st.path[len(st.path)-1], caption).ID, nil
}

// AddMenuBarItemIntoLastItem turns the most recent item into a submenu and
// adds an item to it.
func (g *GUI) AddMenuBarItemIntoLastItem(id WidgetID, caption Caption) (int, error) {
	r, err := g.menuBar(id, "addMenuItemIntoLastItem")
	if err != nil {
		return NO_MENU_ITEM_ID, err
	}
	st := r.menuBar
	if len(st.path) == 0 {
		return NO_MENU_ITEM_ID, precondition("addMenuItemIntoLastItem: menu bar %s has no menus", g.describe(id))
	}
	if st.last == st.path[len(st.path)-1] {
		g.log.Warnf("addMenuItemIntoLastItem: the last menu of menu bar %s is empty, adding %q to it instead.",
			g.describe(id), caption.Text)
	} else {
		st.path = append(st.path, st.last)
	}
	return g.addMenuItemTo(r, st.path[len(st.path)-1], caption).ID, nil
}

// ExitSubmenu moves construction up one level.
func (g *GUI) ExitSubmenu(id WidgetID) error {
	r, err := g.menuBar(id, "exitSubmenu")
	if err != nil {
		return err
	}
	st := r.menuBar
	if len(st.path) < 2 {
		return precondition("exitSubmenu: menu bar %s is not in a submenu", g.describe(id))
	}
	st.last = st.path[len(st.path)-1]
	st.path = st.path[:len(st.path)-1]
	return nil
}

// LastSelectedMenuItem returns the ID of the item last clicked.
func (g *GUI) LastSelectedMenuItem(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getLastSelectedMenuItem", WC_menuBar)
	if err != nil {
		return NO_MENU_ITEM_ID, err
	}
	if r.menuBar == nil {
		return NO_MENU_ITEM_ID, nil
	}
	return r.menuBar.lastClicked, nil
}
