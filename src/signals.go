package main

import (
	lua "github.com/yuin/gopher-lua"
)

// signalHandler receives every signal a stored widget emits.
func (g *GUI) signalHandler(w *Widget, signal string, args ...interface{}) {
	id := w.userID
	// A previous signal's handler may have deleted the widget.
	if r := g.store.find(id); r == nil || r.ptr != w {
		return
	}
	switch signal {
	case "Closing":
		abort, _ := args[0].(*bool)
		g.closingSignalHandler(id, w, abort)
	case "Minimized":
		g.minimiseChildWindow(id)
		g.dispatch(id, signal)
	case "Maximized":
		g.maximiseChildWindow(id)
		g.dispatch(id, signal)
	case "MenuItemClicked":
		item, _ := args[0].(*MenuBarItem)
		if item == nil {
			return
		}
		if r := g.store.find(id); r.menuBar != nil {
			r.menuBar.lastClicked = item.ID
		}
		g.dispatch(id, signal, item.ID)
	case "ButtonPressed":
		text, _ := args[0].(string)
		r := g.store.find(id)
		r.lastButton = -1
		for i, b := range w.buttons {
			if b == text {
				r.lastButton = i
				break
			}
		}
		g.dispatch(id, signal, r.lastButton)
	default:
		g.dispatch(id, signal, args...)
	}
}

// closingSignalHandler lets the Closing handler veto by returning false.
// A child window is hidden rather than removed. A message box is removed
// from its container but stays alive. Closed follows a close that went
// ahead.
func (g *GUI) closingSignalHandler(id WidgetID, w *Widget, abort *bool) {
	if abort != nil {
		*abort = true
	}
	_, vetoed := g.invoke(id, "Closing")
	r := g.store.find(id)
	if vetoed || r == nil || r.ptr != w {
		return
	}
	if w.wtype == WT_MessageBox {
		g.detach(w)
	} else {
		if r.childWindow != nil && r.childWindow.isMinimised {
			g.restoreChildWindow(id)
		}
		w.SetVisible(false)
	}
	g.dispatch(id, "Closed")
}

// dispatch runs the script handlers for a widget's signal. It returns
// true if any handler ran.
func (g *GUI) dispatch(id WidgetID, signal string, extra ...interface{}) bool {
	called, _ := g.invoke(id, signal, extra...)
	return called
}

// invoke runs, in order: the global pre-handler; the widget's connected
// handler for this signal and then its catch-all handler; and only if
// neither exists, the override function or else the conventionally named
// function <Menu>_<Widget>_<Signal>. Records are looked up again after
// each call because handlers may add or delete widgets. vetoed is true if
// a handler returned false.
func (g *GUI) invoke(id WidgetID, signal string, extra ...interface{}) (called, vetoed bool) {
	if g.scripts == nil {
		return false, false
	}
	note := func(ret lua.LValue) {
		called = true
		if ret == lua.LFalse {
			vetoed = true
		}
	}
	if g.preHandler != nil {
		g.scripts.Call(g.preHandler, id, signal)
	}
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return
	}
	if fn := r.handlers[signal]; fn != nil {
		ret, _ := g.scripts.Call(fn, append([]interface{}{id}, extra...)...)
		note(ret)
	}
	if r = g.store.find(id); r == nil || r.ptr == nil {
		return
	}
	if fn := r.catchAll; fn != nil {
		ret, _ := g.scripts.Call(fn, append([]interface{}{id, signal}, extra...)...)
		note(ret)
	}
	if called {
		return
	}
	if r = g.store.find(id); r == nil || r.ptr == nil {
		return
	}
	if r.override != "" {
		if fn := g.scripts.Function(r.override); fn != nil {
			ret, _ := g.scripts.Call(fn, g.fullName(r.ptr), signal)
			note(ret)
			return
		}
		g.log.Warnf("Signal handler override %q of widget %s does not exist.", r.override, g.describe(id))
	}
	if g.current == "" || r.ptr.name == "" {
		return
	}
	name := g.current + "_" + r.ptr.name + "_" + signal
	if fn := g.scripts.Function(name); fn != nil {
		ret, _ := g.scripts.Call(fn, append([]interface{}{id}, extra...)...)
		note(ret)
	}
	return
}

// ConnectSignal binds fn to one signal of id. A nil fn disconnects.
func (g *GUI) ConnectSignal(id WidgetID, signal string, fn *lua.LFunction) error {
	r, err := g.lookup(id, "connectSignal", 0)
	if err != nil {
		return err
	}
	if !g.reg.Emits(r.ptr.wtype, signal) {
		return unsupported("connectSignal: widget %s does not emit %q", g.describe(id), signal)
	}
	if fn == nil {
		delete(r.handlers, signal)
		return nil
	}
	if r.handlers == nil {
		r.handlers = make(map[string]*lua.LFunction)
	}
	r.handlers[signal] = fn
	return nil
}

// ConnectAllSignals binds fn to every signal of id. A nil fn disconnects.
func (g *GUI) ConnectAllSignals(id WidgetID, fn *lua.LFunction) error {
	r, err := g.lookup(id, "connectSignal", 0)
	if err != nil {
		return err
	}
	r.catchAll = fn
	return nil
}

func (g *GUI) DisconnectSignals(id WidgetID) error {
	r, err := g.lookup(id, "disconnectSignals", 0)
	if err != nil {
		return err
	}
	r.handlers = nil
	r.catchAll = nil
	return nil
}

// SetSignalHandlerOverride routes id's signals to the global function
// name instead of the conventional one. An empty name clears it.
func (g *GUI) SetSignalHandlerOverride(id WidgetID, name string) error {
	r, err := g.lookup(id, "setWidgetSignalHandlerOverride", 0)
	if err != nil {
		return err
	}
	r.override = name
	return nil
}

// SetGlobalSignalHandler sets the function run before every dispatch.
func (g *GUI) SetGlobalSignalHandler(fn *lua.LFunction) { g.preHandler = fn }
