package main

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"sort"

	mgl "github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

// Data handlers
func luaRegister(l *lua.LState, name string, f func(*lua.LState) int) {
	l.Register(name, f)
}
func nilArg(l *lua.LState, argi int) bool {
	lv := l.Get(argi)
	return lua.LVIsFalse(lv) && lv != lua.LFalse
}
func strArg(l *lua.LState, argi int) string {
	if !lua.LVCanConvToString(l.Get(argi)) {
		l.RaiseError("\nArgument %v is not a string: %v\n", argi, l.Get(argi))
	}
	return l.ToString(argi)
}
func numArg(l *lua.LState, argi int) float64 {
	num, ok := l.Get(argi).(lua.LNumber)
	if !ok {
		l.RaiseError("\nArgument %v is not a number: %v\n", argi, l.Get(argi))
	}
	return float64(num)
}
func boolArg(l *lua.LState, argi int) bool {
	return l.ToBool(argi)
}
func idArg(l *lua.LState, argi int) WidgetID {
	n := numArg(l, argi)
	if n < 0 || n > math.MaxUint32 {
		return NO_WIDGET
	}
	return WidgetID(n)
}

// varArgs collects caption variables from argument argi onwards. A single
// table argument is read as an array of variables.
func varArgs(l *lua.LState, argi int) []interface{} {
	if l.GetTop() == argi {
		if t, ok := l.Get(argi).(*lua.LTable); ok {
			var vars []interface{}
			t.ForEach(func(_, v lua.LValue) {
				vars = append(vars, fromLValue(v))
			})
			return vars
		}
	}
	var vars []interface{}
	for i := argi; i <= l.GetTop(); i++ {
		vars = append(vars, fromLValue(l.Get(i)))
	}
	return vars
}

// fromLValue converts a script value into a caption variable. Integral
// numbers become int64. Unsupported values are passed through unchanged.
func fromLValue(v lua.LValue) interface{} {
	switch x := v.(type) {
	case lua.LNumber:
		f := float64(x)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(x)
	}
	return v
}

func toLValue(l *lua.LState, v interface{}) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case mgl.Vec2:
		t := l.NewTable()
		t.RawSetString("x", lua.LNumber(x[0]))
		t.RawSetString("y", lua.LNumber(x[1]))
		return t
	case *MenuBarItem:
		return lua.LNumber(x.ID)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return lua.LNil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		table := l.NewTable()
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if field.PkgPath != "" {
				continue
			}
			key := field.Tag.Get("lua")
			if key == "" {
				key = field.Tag.Get("ini")
			}
			if key == "" {
				key = field.Name
			}
			table.RawSetString(key, toLValue(l, rv.Field(i).Interface()))
		}
		return table
	case reflect.Map:
		table := l.NewTable()
		for _, key := range rv.MapKeys() {
			table.RawSet(lua.LString(fmt.Sprintf("%v", key.Interface())),
				toLValue(l, rv.MapIndex(key).Interface()))
		}
		return table
	case reflect.Array, reflect.Slice:
		table := l.NewTable()
		for i := 0; i < rv.Len(); i++ {
			table.Append(toLValue(l, rv.Index(i).Interface()))
		}
		return table
	case reflect.String:
		return lua.LString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(math.Round(rv.Float()*1e6) / 1e6)
	case reflect.Bool:
		return lua.LBool(rv.Bool())
	}
	return lua.LString(fmt.Sprintf("%v", rv.Interface()))
}

// ScriptHost owns the Lua state the menus run in.
type ScriptHost struct {
	l        *lua.LState
	log      *Logger
	menuBase *lua.LTable
	classes  []string
	menus    map[string]*lua.LTable
}

func NewScriptHost(log *Logger) *ScriptHost {
	l := lua.NewState()
	l.Options.IncludeGoStackTrace = true
	h := &ScriptHost{l: l, log: log, menus: make(map[string]*lua.LTable)}
	h.registerMenuBase()
	return h
}

func (h *ScriptHost) State() *lua.LState { return h.l }

func (h *ScriptHost) Close() { h.l.Close() }

// registerMenuBase installs the Menu base table. Menus are declared with
//
//	local Title = Menu:extend("Title")
//	function Title:Open(previous) ... end
func (h *ScriptHost) registerMenuBase() {
	l := h.l
	h.menuBase = l.NewTable()
	h.menuBase.RawSetString("__index", h.menuBase)
	l.SetField(h.menuBase, "extend", l.NewFunction(func(l *lua.LState) int {
		base := l.CheckTable(1)
		name := strArg(l, 2)
		cls := l.NewTable()
		cls.RawSetString("__index", cls)
		cls.RawSetString("name", lua.LString(name))
		l.SetMetatable(cls, base)
		if _, ok := h.menus[name]; !ok {
			h.classes = append(h.classes, name)
		}
		h.menus[name] = cls
		l.SetGlobal(name, cls)
		l.Push(cls)
		return 1
	}))
	l.SetGlobal("Menu", h.menuBase)
}

func (h *ScriptHost) DoFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return resourceErr(err, "script %q", path)
	}
	if err := h.l.DoFile(path); err != nil {
		return resourceErr(err, "could not run script %q", path)
	}
	return nil
}

func (h *ScriptHost) DoString(src string) error {
	if err := h.l.DoString(src); err != nil {
		return resourceErr(err, "could not run script")
	}
	return nil
}

// Function returns the global function called name, or nil.
func (h *ScriptHost) Function(name string) *lua.LFunction {
	fn, _ := h.l.GetGlobal(name).(*lua.LFunction)
	return fn
}

// Call invokes fn and returns its first result. Script errors are logged
// and reported through err; they never propagate as panics.
func (h *ScriptHost) Call(fn *lua.LFunction, args ...interface{}) (lua.LValue, error) {
	l := h.l
	lv := make([]lua.LValue, len(args))
	for i, a := range args {
		lv[i] = toLValue(l, a)
	}
	top := l.GetTop()
	defer l.SetTop(top)
	if err := l.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lv...); err != nil {
		h.log.Errorf("Script error: %v", err)
		return lua.LNil, err
	}
	return l.Get(-1), nil
}

// CallGlobal invokes the global function name if it is defined.
func (h *ScriptHost) CallGlobal(name string, args ...interface{}) (ret lua.LValue, called bool) {
	fn := h.Function(name)
	if fn == nil {
		return lua.LNil, false
	}
	ret, _ = h.Call(fn, args...)
	return ret, true
}

// Method looks name up on obj, following __index chains.
func (h *ScriptHost) Method(obj *lua.LTable, name string) *lua.LFunction {
	if obj == nil {
		return nil
	}
	fn, _ := h.l.GetField(obj, name).(*lua.LFunction)
	return fn
}

// CallMethod calls obj:name(args...) if the method exists.
func (h *ScriptHost) CallMethod(obj *lua.LTable, name string, args ...interface{}) (ret lua.LValue, called bool) {
	fn := h.Method(obj, name)
	if fn == nil {
		return lua.LNil, false
	}
	ret, _ = h.Call(fn, append([]interface{}{obj}, args...)...)
	return ret, true
}

// MenuClasses lists the declared menu classes: those created through
// Menu:extend in declaration order, then any other global table whose
// metatable chain reaches Menu, sorted by name.
func (h *ScriptHost) MenuClasses() []string {
	names := append([]string(nil), h.classes...)
	var found []string
	h.l.G.Global.ForEach(func(k, v lua.LValue) {
		t, ok := v.(*lua.LTable)
		name, isStr := k.(lua.LString)
		if !ok || !isStr || t == h.menuBase {
			return
		}
		if _, known := h.menus[string(name)]; known {
			return
		}
		if h.extendsMenu(t) {
			found = append(found, string(name))
			h.menus[string(name)] = t
		}
	})
	sort.Strings(found)
	return append(names, found...)
}

func (h *ScriptHost) extendsMenu(t *lua.LTable) bool {
	for depth := 0; t != nil && depth < 32; depth++ {
		mt, ok := h.l.GetMetatable(t).(*lua.LTable)
		if !ok {
			return false
		}
		if mt == h.menuBase {
			return true
		}
		t = mt
	}
	return false
}

// NewController instantiates the menu class name. Returns nil if there is
// no such class.
func (h *ScriptHost) NewController(name string) *lua.LTable {
	cls := h.menus[name]
	if cls == nil {
		return nil
	}
	if cls.RawGetString("__index") == lua.LNil {
		cls.RawSetString("__index", cls)
	}
	obj := h.l.NewTable()
	h.l.SetMetatable(obj, cls)
	return obj
}
