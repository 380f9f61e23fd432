package main

import (
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// report logs a failed script call. Script functions never raise errors
// for bad widget state; they log and return their sentinel instead.
func (g *GUI) report(err error) bool {
	if err != nil {
		g.log.Errorf("%v", err)
		return false
	}
	return true
}

func captionArg(l *lua.LState, argi int) Caption {
	return Caption{Text: strArg(l, argi), Vars: varArgs(l, argi+1)}
}

// captionsArg reads a table of strings, or of {text, var...} tables.
func captionsArg(l *lua.LState, argi int) []Caption {
	t, ok := l.Get(argi).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []Caption
	t.ForEach(func(_, v lua.LValue) {
		switch x := v.(type) {
		case *lua.LTable:
			c := Caption{Text: x.RawGetInt(1).String()}
			for i := 2; i <= x.Len(); i++ {
				c.Vars = append(c.Vars, fromLValue(x.RawGetInt(i)))
			}
			out = append(out, c)
		default:
			out = append(out, Caption{Text: lua.LVAsString(v)})
		}
	})
	return out
}

func stringsArg(l *lua.LState, argi int) []string {
	t, ok := l.Get(argi).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	t.ForEach(func(_, v lua.LValue) { out = append(out, lua.LVAsString(v)) })
	return out
}

func paddingArg(l *lua.LState, argi int) [4]float32 {
	var p [4]float32
	if t, ok := l.Get(argi).(*lua.LTable); ok {
		for i := range p {
			if n, ok := t.RawGetInt(i + 1).(lua.LNumber); ok {
				p[i] = float32(n)
			}
		}
		return p
	}
	v := float32(numArg(l, argi))
	return [4]float32{v, v, v, v}
}

func optBoolArg(l *lua.LState, argi int, def bool) bool {
	if l.GetTop() < argi || nilArg(l, argi) {
		return def
	}
	return boolArg(l, argi)
}

func pushID(l *lua.LState, id WidgetID) int {
	l.Push(lua.LNumber(id))
	return 1
}

func pushBool(l *lua.LState, b bool) int {
	l.Push(lua.LBool(b))
	return 1
}

func pushInt(l *lua.LState, n int) int {
	l.Push(lua.LNumber(n))
	return 1
}

func pushString(l *lua.LState, s string) int {
	l.Push(lua.LString(s))
	return 1
}

func enumTable(l *lua.LState, name string, values map[string]int) {
	t := l.NewTable()
	for k, v := range values {
		t.RawSetString(k, lua.LNumber(v))
	}
	l.SetGlobal(name, t)
}

// soundSlotArg accepts a slot number or one of up, down, left, right and
// select.
func soundSlotArg(l *lua.LState, argi int) int {
	if n, ok := l.Get(argi).(lua.LNumber); ok {
		return int(n)
	}
	s := strings.ToLower(strings.TrimSpace(strArg(l, argi)))
	if s == "select" {
		return selectSound
	}
	if d, ok := parseDirection(s); ok {
		return int(d)
	}
	return -1
}

// registerGUIFunctions installs the GUI's script functions and constants
// into l.
func registerGUIFunctions(l *lua.LState, g *GUI) {
	l.SetGlobal("NO_WIDGET", lua.LNumber(NO_WIDGET))
	l.SetGlobal("ROOT_WIDGET", lua.LNumber(ROOT_WIDGET))
	l.SetGlobal("GOTO_PREVIOUS_WIDGET", lua.LNumber(GOTO_PREVIOUS_WIDGET))
	l.SetGlobal("NO_MENU_ITEM_ID", lua.LNumber(NO_MENU_ITEM_ID))
	enumTable(l, "ScrollbarPolicy", map[string]int{
		"Automatic": int(SP_automatic), "Always": int(SP_always), "Never": int(SP_never)})
	enumTable(l, "HorizontalAlignment", map[string]int{
		"Left": int(HA_left), "Centre": int(HA_centre), "Right": int(HA_right)})
	enumTable(l, "WidgetAlignment", map[string]int{
		"Centre": int(GA_centre), "UpperLeft": int(GA_upperLeft), "Up": int(GA_up),
		"UpperRight": int(GA_upperRight), "Right": int(GA_right), "LowerRight": int(GA_lowerRight),
		"Down": int(GA_down), "LowerLeft": int(GA_lowerLeft), "Left": int(GA_left)})
	enumTable(l, "TitleButton", map[string]int{
		"None": int(TB_none), "Close": int(TB_close), "Maximize": int(TB_maximize), "Minimize": int(TB_minimize)})

	// Menus
	luaRegister(l, "setGUI", func(l *lua.LState) int {
		g.report(g.SetGUI(strArg(l, 1), optBoolArg(l, 2, true), optBoolArg(l, 3, true)))
		return 0
	})
	luaRegister(l, "menuExists", func(l *lua.LState) int {
		return pushBool(l, g.menus[strArg(l, 1)] != nil)
	})
	luaRegister(l, "getMenu", func(l *lua.LState) int {
		if l.GetTop() == 0 {
			return pushString(l, g.current)
		}
		m := g.menus[strArg(l, 1)]
		if m == nil || m.controller == nil {
			l.Push(lua.LNil)
			return 1
		}
		l.Push(m.controller)
		return 1
	})
	luaRegister(l, "getPreviousMenu", func(l *lua.LState) int {
		return pushString(l, g.previous)
	})
	luaRegister(l, "getMenuRoot", func(l *lua.LState) int {
		m := g.menus[strArg(l, 1)]
		if m == nil {
			g.log.Errorf("getMenuRoot: menu %q does not exist", strArg(l, 1))
			return pushID(l, NO_WIDGET)
		}
		return pushID(l, m.root)
	})
	luaRegister(l, "getWidgetUnderMouse", func(l *lua.LState) int {
		if g.input == nil {
			return pushID(l, NO_WIDGET)
		}
		return pushID(l, g.WidgetUnderMouse(g.input.MousePosition()))
	})

	// Widget life cycle
	luaRegister(l, "widgetExists", func(l *lua.LState) int {
		return pushBool(l, g.widgetExists(idArg(l, 1)))
	})
	luaRegister(l, "createWidget", func(l *lua.LState) int {
		id, err := g.CreateWidget(strArg(l, 1))
		g.report(err)
		return pushID(l, id)
	})
	luaRegister(l, "deleteWidget", func(l *lua.LState) int {
		g.report(g.DeleteWidget(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "getParent", func(l *lua.LState) int {
		return pushID(l, g.Parent(idArg(l, 1)))
	})
	luaRegister(l, "setWidgetName", func(l *lua.LState) int {
		g.report(g.SetWidgetName(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "getWidgetName", func(l *lua.LState) int {
		s, err := g.WidgetName(idArg(l, 1))
		g.report(err)
		return pushString(l, s)
	})
	luaRegister(l, "getWidgetFullName", func(l *lua.LState) int {
		s, err := g.WidgetFullName(idArg(l, 1))
		g.report(err)
		return pushString(l, s)
	})
	luaRegister(l, "getWidgetType", func(l *lua.LState) int {
		s, err := g.WidgetTypeName(idArg(l, 1))
		g.report(err)
		return pushString(l, s)
	})

	// Signals
	luaRegister(l, "connectSignal", func(l *lua.LState) int {
		id := idArg(l, 1)
		if fn, ok := l.Get(2).(*lua.LFunction); ok || nilArg(l, 2) {
			g.report(g.ConnectAllSignals(id, fn))
			return 0
		}
		fn, _ := l.Get(3).(*lua.LFunction)
		g.report(g.ConnectSignal(id, strArg(l, 2), fn))
		return 0
	})
	luaRegister(l, "disconnectSignals", func(l *lua.LState) int {
		g.report(g.DisconnectSignals(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "setWidgetSignalHandlerOverride", func(l *lua.LState) int {
		g.report(g.SetSignalHandlerOverride(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "setGlobalSignalHandler", func(l *lua.LState) int {
		fn, _ := l.Get(1).(*lua.LFunction)
		g.SetGlobalSignalHandler(fn)
		return 0
	})

	// Geometry
	luaRegister(l, "setWidgetPosition", func(l *lua.LState) int {
		g.report(g.SetWidgetPosition(idArg(l, 1), strArg(l, 2), strArg(l, 3)))
		return 0
	})
	luaRegister(l, "getWidgetAbsolutePosition", func(l *lua.LState) int {
		p, err := g.WidgetAbsolutePosition(idArg(l, 1))
		g.report(err)
		l.Push(toLValue(l, p))
		return 1
	})
	luaRegister(l, "setWidgetOrigin", func(l *lua.LState) int {
		g.report(g.SetWidgetOrigin(idArg(l, 1), float32(numArg(l, 2)), float32(numArg(l, 3))))
		return 0
	})
	luaRegister(l, "setWidgetSize", func(l *lua.LState) int {
		g.report(g.SetWidgetSize(idArg(l, 1), strArg(l, 2), strArg(l, 3)))
		return 0
	})
	luaRegister(l, "getWidgetSize", func(l *lua.LState) int {
		s, err := g.WidgetSize(idArg(l, 1))
		g.report(err)
		l.Push(toLValue(l, s))
		return 1
	})

	// State
	luaRegister(l, "setWidgetFocus", func(l *lua.LState) int {
		g.report(g.SetWidgetFocus(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "getWidgetFocused", func(l *lua.LState) int {
		b, err := g.WidgetFocused(idArg(l, 1))
		g.report(err)
		return pushBool(l, b)
	})
	luaRegister(l, "setWidgetEnabled", func(l *lua.LState) int {
		g.report(g.SetWidgetEnabled(idArg(l, 1), boolArg(l, 2)))
		return 0
	})
	luaRegister(l, "getWidgetEnabled", func(l *lua.LState) int {
		b, err := g.WidgetEnabled(idArg(l, 1))
		g.report(err)
		return pushBool(l, b)
	})
	luaRegister(l, "setWidgetVisibility", func(l *lua.LState) int {
		g.report(g.SetWidgetVisibility(idArg(l, 1), boolArg(l, 2)))
		return 0
	})
	luaRegister(l, "getWidgetVisibility", func(l *lua.LState) int {
		b, err := g.WidgetVisibility(idArg(l, 1))
		g.report(err)
		return pushBool(l, b)
	})
	luaRegister(l, "moveWidgetToFront", func(l *lua.LState) int {
		g.report(g.MoveWidgetToFront(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "moveWidgetToBack", func(l *lua.LState) int {
		g.report(g.MoveWidgetToBack(idArg(l, 1)))
		return 0
	})

	// Text
	luaRegister(l, "setWidgetText", func(l *lua.LState) int {
		g.report(g.SetWidgetText(idArg(l, 1), captionArg(l, 2)))
		return 0
	})
	luaRegister(l, "getWidgetText", func(l *lua.LState) int {
		s, err := g.WidgetText(idArg(l, 1))
		g.report(err)
		return pushString(l, s)
	})
	luaRegister(l, "setEditBoxDefaultText", func(l *lua.LState) int {
		g.report(g.SetWidgetDefaultText(idArg(l, 1), captionArg(l, 2)))
		return 0
	})
	luaRegister(l, "setEditBoxRegexValidator", func(l *lua.LState) int {
		g.report(g.SetEditBoxRegexValidator(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetFont", func(l *lua.LState) int {
		g.report(g.SetWidgetFont(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetInheritedFont", func(l *lua.LState) int {
		g.report(g.SetWidgetInheritedFont(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetTextSize", func(l *lua.LState) int {
		g.report(g.SetWidgetTextSize(idArg(l, 1), uint32(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "setWidgetTextStyles", func(l *lua.LState) int {
		g.report(g.SetWidgetTextStyles(idArg(l, 1), strArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetTextMaximumWidth", func(l *lua.LState) int {
		g.report(g.SetWidgetTextMaximumWidth(idArg(l, 1), float32(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "setWidgetTextAlignment", func(l *lua.LState) int {
		g.report(g.SetWidgetTextAlignment(idArg(l, 1), HAlign(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "translate", func(l *lua.LState) int {
		return pushString(l, g.getTranslatedText(captionArg(l, 1)))
	})

	// Directional flow
	luaRegister(l, "setWidgetDirectionalFlow", func(l *lua.LState) int {
		g.report(g.SetDirectionalFlow(idArg(l, 1), idArg(l, 2), idArg(l, 3), idArg(l, 4), idArg(l, 5)))
		return 0
	})
	luaRegister(l, "setWidgetDirectionalFlowStart", func(l *lua.LState) int {
		g.report(g.SetDirectionalFlowStart(strArg(l, 1), idArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetDirectionalFlowSelection", func(l *lua.LState) int {
		g.report(g.SetDirectionalFlowSelection(strArg(l, 1), idArg(l, 2)))
		return 0
	})
	luaRegister(l, "getWidgetDirectionalFlowSelection", func(l *lua.LState) int {
		id, err := g.DirectionalFlowSelection(strArg(l, 1))
		g.report(err)
		return pushID(l, id)
	})
	luaRegister(l, "setDirectionalFlowAngleBracketSprite", func(l *lua.LState) int {
		g.report(g.SetDirectionalFlowAngleBracketSprite(strArg(l, 1), strArg(l, 2), strArg(l, 3)))
		return 0
	})
	luaRegister(l, "setWidgetSounds", func(l *lua.LState) int {
		g.report(g.SetWidgetSounds(idArg(l, 1), soundSlotArg(l, 2),
			SoundBinding{Object: strArg(l, 3), Sound: strArg(l, 4)}))
		return 0
	})

	// Sprites
	luaRegister(l, "setWidgetSprite", func(l *lua.LState) int {
		g.report(g.SetWidgetSprite(idArg(l, 1), strArg(l, 2), strArg(l, 3)))
		return 0
	})
	luaRegister(l, "clearWidgetSprite", func(l *lua.LState) int {
		g.report(g.ClearWidgetSprite(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "matchWidgetSizeToSprite", func(l *lua.LState) int {
		g.report(g.MatchWidgetSizeToSprite(idArg(l, 1), optBoolArg(l, 2, true)))
		return 0
	})
	luaRegister(l, "applySpritesToWidgetsInContainer", func(l *lua.LState) int {
		g.report(g.ApplySpritesToWidgetsInContainer(idArg(l, 1), strArg(l, 2), stringsArg(l, 3)))
		return 0
	})

	// Lists
	luaRegister(l, "addItem", func(l *lua.LState) int {
		i, err := g.AddItem(idArg(l, 1), captionArg(l, 2))
		g.report(err)
		return pushInt(l, i)
	})
	luaRegister(l, "clearItems", func(l *lua.LState) int {
		g.report(g.ClearItems(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "setSelectedItem", func(l *lua.LState) int {
		g.report(g.SetSelectedItem(idArg(l, 1), int(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "deselectItem", func(l *lua.LState) int {
		g.report(g.DeselectItem(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "getSelectedItem", func(l *lua.LState) int {
		i, err := g.SelectedItem(idArg(l, 1))
		g.report(err)
		return pushInt(l, i)
	})
	luaRegister(l, "getSelectedItemText", func(l *lua.LState) int {
		s, err := g.SelectedItemText(idArg(l, 1))
		g.report(err)
		return pushString(l, s)
	})
	luaRegister(l, "getItemCount", func(l *lua.LState) int {
		n, err := g.ItemCount(idArg(l, 1))
		g.report(err)
		return pushInt(l, n)
	})

	// Tabs
	luaRegister(l, "addTab", func(l *lua.LState) int {
		i, err := g.AddTab(idArg(l, 1), captionArg(l, 2), false)
		g.report(err)
		return pushInt(l, i)
	})
	luaRegister(l, "addTabAndPanel", func(l *lua.LState) int {
		id, err := g.AddTabAndPanel(idArg(l, 1), captionArg(l, 2))
		g.report(err)
		return pushID(l, id)
	})
	luaRegister(l, "setSelectedTab", func(l *lua.LState) int {
		g.report(g.SetSelectedTab(idArg(l, 1), int(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "getSelectedTab", func(l *lua.LState) int {
		i, err := g.SelectedTab(idArg(l, 1))
		g.report(err)
		return pushInt(l, i)
	})
	luaRegister(l, "getTabCount", func(l *lua.LState) int {
		n, err := g.TabCount(idArg(l, 1))
		g.report(err)
		return pushInt(l, n)
	})

	// Check state
	luaRegister(l, "isWidgetChecked", func(l *lua.LState) int {
		b, err := g.IsWidgetChecked(idArg(l, 1))
		g.report(err)
		return pushBool(l, b)
	})
	luaRegister(l, "setWidgetChecked", func(l *lua.LState) int {
		g.report(g.SetWidgetChecked(idArg(l, 1), boolArg(l, 2)))
		return 0
	})

	// Containers
	luaRegister(l, "add", func(l *lua.LState) int {
		g.report(g.Add(idArg(l, 1), idArg(l, 2)))
		return 0
	})
	luaRegister(l, "remove", func(l *lua.LState) int {
		g.report(g.Remove(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "removeAll", func(l *lua.LState) int {
		g.report(g.RemoveAll(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "deleteWidgetsFromContainer", func(l *lua.LState) int {
		g.report(g.DeleteWidgetsFromContainer(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "setWidgetIndexInContainer", func(l *lua.LState) int {
		g.report(g.SetWidgetIndexInContainer(idArg(l, 1), int(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "getWidgetCount", func(l *lua.LState) int {
		n, err := g.WidgetCount(idArg(l, 1))
		g.report(err)
		return pushInt(l, n)
	})
	luaRegister(l, "setGroupPadding", func(l *lua.LState) int {
		g.report(g.SetGroupPadding(idArg(l, 1), paddingArg(l, 2)))
		return 0
	})
	luaRegister(l, "setSpaceBetweenWidgets", func(l *lua.LState) int {
		g.report(g.SetSpaceBetweenWidgets(idArg(l, 1), float32(numArg(l, 2))))
		return 0
	})

	// Scrolling
	for _, ax := range []struct {
		name string
		axis int
	}{{"Horizontal", AXIS_horizontal}, {"Vertical", AXIS_vertical}} {
		axis := ax.axis
		luaRegister(l, "set"+ax.name+"ScrollbarPolicy", func(l *lua.LState) int {
			g.report(g.SetScrollbarPolicy(idArg(l, 1), axis, ScrollbarPolicy(numArg(l, 2))))
			return 0
		})
		luaRegister(l, "set"+ax.name+"ScrollbarAmount", func(l *lua.LState) int {
			g.report(g.SetScrollbarAmount(idArg(l, 1), axis, float32(numArg(l, 2))))
			return 0
		})
		luaRegister(l, "set"+ax.name+"ScrollbarValue", func(l *lua.LState) int {
			g.report(g.SetScrollbarValue(idArg(l, 1), axis, float32(numArg(l, 2))))
			return 0
		})
	}
	luaRegister(l, "getScrollbarWidth", func(l *lua.LState) int {
		l.Push(lua.LNumber(g.canvas.scrollbarWidth))
		return 1
	})

	// Grids
	luaRegister(l, "addWidgetToGrid", func(l *lua.LState) int {
		g.report(g.AddToGrid(idArg(l, 1), idArg(l, 2), int(numArg(l, 3)), int(numArg(l, 4))))
		return 0
	})
	luaRegister(l, "setWidgetAlignmentInGrid", func(l *lua.LState) int {
		g.report(g.SetWidgetAlignmentInGrid(idArg(l, 1), int(numArg(l, 2)), int(numArg(l, 3)),
			GridAlign(numArg(l, 4))))
		return 0
	})
	luaRegister(l, "setWidgetPaddingInGrid", func(l *lua.LState) int {
		g.report(g.SetWidgetPaddingInGrid(idArg(l, 1), int(numArg(l, 2)), int(numArg(l, 3)), paddingArg(l, 4)))
		return 0
	})
	luaRegister(l, "getWidgetColumnCount", func(l *lua.LState) int {
		cols, _, err := g.GridDimensions(idArg(l, 1))
		g.report(err)
		return pushInt(l, cols)
	})
	luaRegister(l, "getWidgetRowCount", func(l *lua.LState) int {
		_, rows, err := g.GridDimensions(idArg(l, 1))
		g.report(err)
		return pushInt(l, rows)
	})

	// Menu bars
	luaRegister(l, "addMenu", func(l *lua.LState) int {
		id, err := g.AddMenuBarMenu(idArg(l, 1), captionArg(l, 2))
		g.report(err)
		return pushInt(l, id)
	})
	luaRegister(l, "addMenuItem", func(l *lua.LState) int {
		id, err := g.AddMenuBarItem(idArg(l, 1), captionArg(l, 2))
		g.report(err)
		return pushInt(l, id)
	})
	luaRegister(l, "addMenuItemIntoLastItem", func(l *lua.LState) int {
		id, err := g.AddMenuBarItemIntoLastItem(idArg(l, 1), captionArg(l, 2))
		g.report(err)
		return pushInt(l, id)
	})
	luaRegister(l, "exitSubmenu", func(l *lua.LState) int {
		g.report(g.ExitSubmenu(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "getLastSelectedMenuItem", func(l *lua.LState) int {
		id, err := g.LastSelectedMenuItem(idArg(l, 1))
		g.report(err)
		return pushInt(l, id)
	})
	luaRegister(l, "formatMenuItemID", func(l *lua.LState) int {
		id := int(numArg(l, 1))
		if id == NO_MENU_ITEM_ID {
			return pushString(l, "NO_MENU_ITEM_ID")
		}
		return pushString(l, strconv.Itoa(id))
	})

	// Child windows
	luaRegister(l, "autoHandleMinMax", func(l *lua.LState) int {
		g.report(g.AutoHandleMinMax(idArg(l, 1), boolArg(l, 2)))
		return 0
	})
	luaRegister(l, "setChildWindowTitleButtons", func(l *lua.LState) int {
		g.report(g.SetChildWindowTitleButtons(idArg(l, 1), TitleButton(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "setWidgetResizable", func(l *lua.LState) int {
		g.report(g.SetWidgetResizable(idArg(l, 1), boolArg(l, 2)))
		return 0
	})
	luaRegister(l, "setWidgetPositionLocked", func(l *lua.LState) int {
		g.report(g.SetWidgetPositionLocked(idArg(l, 1), boolArg(l, 2)))
		return 0
	})
	luaRegister(l, "getTitleBarHeight", func(l *lua.LState) int {
		l.Push(lua.LNumber(g.canvas.titleBarHeight))
		return 1
	})
	luaRegister(l, "openChildWindow", func(l *lua.LState) int {
		g.report(g.OpenChildWindow(idArg(l, 1), strArg(l, 2), strArg(l, 3)))
		return 0
	})
	luaRegister(l, "closeChildWindow", func(l *lua.LState) int {
		g.report(g.CloseChildWindow(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "closeChildWindowAndEmitSignal", func(l *lua.LState) int {
		g.report(g.CloseChildWindowAndEmitSignal(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "restoreChildWindow", func(l *lua.LState) int {
		g.report(g.RestoreChildWindow(idArg(l, 1)))
		return 0
	})
	luaRegister(l, "isChildWindowOpen", func(l *lua.LState) int {
		b, err := g.IsChildWindowOpen(idArg(l, 1))
		g.report(err)
		return pushBool(l, b)
	})
	luaRegister(l, "setChildWindowTitle", func(l *lua.LState) int {
		g.report(g.SetChildWindowTitle(idArg(l, 1), captionArg(l, 2)))
		return 0
	})

	// Message boxes
	luaRegister(l, "setMessageBoxStrings", func(l *lua.LState) int {
		g.report(g.SetMessageBoxStrings(idArg(l, 1), Caption{Text: strArg(l, 2)},
			Caption{Text: strArg(l, 3)}, captionsArg(l, 4)))
		return 0
	})
	luaRegister(l, "getLastSelectedButton", func(l *lua.LState) int {
		i, err := g.LastSelectedButton(idArg(l, 1))
		g.report(err)
		return pushInt(l, i)
	})

	// Progress
	luaRegister(l, "setProgress", func(l *lua.LState) int {
		g.report(g.SetProgress(idArg(l, 1), float32(numArg(l, 2))))
		return 0
	})
	luaRegister(l, "getProgress", func(l *lua.LState) int {
		v, err := g.Progress(idArg(l, 1))
		g.report(err)
		l.Push(lua.LNumber(v))
		return 1
	})

	// Languages
	luaRegister(l, "getLanguage", func(l *lua.LState) int {
		if g.lang == nil {
			return pushString(l, "")
		}
		return pushString(l, g.lang.Language())
	})
	luaRegister(l, "setLanguage", func(l *lua.LState) int {
		d, ok := g.lang.(*LanguageDictionary)
		if !ok {
			g.log.Errorf("setLanguage: no language dictionary has been loaded")
			return pushBool(l, false)
		}
		return pushBool(l, d.SetLanguage(strArg(l, 1)))
	})

	// Audio and input
	luaRegister(l, "playSound", func(l *lua.LState) int {
		g.playSound(SoundBinding{Object: strArg(l, 1), Sound: strArg(l, 2)})
		return 0
	})
	luaRegister(l, "stopSound", func(l *lua.LState) int {
		g.stopSound(strArg(l, 1))
		return 0
	})
	luaRegister(l, "setAudioVolume", func(l *lua.LState) int {
		g.setAudioVolume(strArg(l, 1), numArg(l, 2))
		return 0
	})
	luaRegister(l, "isControlPressed", func(l *lua.LState) int {
		return pushBool(l, g.input != nil && g.input.Control(strArg(l, 1)))
	})
}
