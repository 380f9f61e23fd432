package main

import (
	"os"
	"sort"
	"strings"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ControlType decides when a held control signals.
type ControlType int32

const (
	// Signals every frame the control is held.
	CT_freeForm ControlType = iota
	// Signals once, on release.
	CT_buttonForm
	// Signals on press, then repeatedly while held, waiting each delay in
	// turn and repeating the last one.
	CT_delayedForm
)

var defaultControlDelays = []time.Duration{1000 * time.Millisecond, 100 * time.Millisecond}

// ControlConfig binds a named control to keys and mouse buttons.
type ControlConfig struct {
	Keys   []string
	Mouse  []string
	Type   ControlType
	Delays []time.Duration
}

type controlState struct {
	cfg        ControlConfig
	signal     bool
	wasDown    bool
	cancelled  bool
	held       time.Duration
	delayIndex int
	nextRepeat time.Duration
}

// InputSample is the raw device state for one frame.
type InputSample struct {
	Keys  map[string]bool
	Mouse map[string]bool
	Pos   mgl.Vec2
	// Whether the mouse is over an enabled widget.
	OverWidget bool
	Dt         time.Duration
}

// UserInput turns raw key and mouse states into named control signals.
type UserInput struct {
	controls  map[string]*controlState
	mouse     mgl.Vec2
	prevMouse mgl.Vec2
	sampled   bool
	log       *Logger
}

func NewUserInput(log *Logger) *UserInput {
	return &UserInput{controls: make(map[string]*controlState), log: log}
}

// Load reads a control list:
//
//	{"<control>": {"keys": ["ArrowUp"], "mouse": ["Left"], "type": 0,
//	 "delays": [1000, 100]}}
func (ui *UserInput) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read control list %q", path)
	}
	return ui.LoadBytes(data)
}

func (ui *UserInput) LoadBytes(data []byte) error {
	if !gjson.ValidBytes(data) {
		return resourceErr(nil, "control list is not valid JSON")
	}
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		cfg := ControlConfig{Type: ControlType(v.Get("type").Int())}
		for _, key := range v.Get("keys").Array() {
			cfg.Keys = append(cfg.Keys, key.String())
		}
		for _, b := range v.Get("mouse").Array() {
			cfg.Mouse = append(cfg.Mouse, b.String())
		}
		for _, d := range v.Get("delays").Array() {
			cfg.Delays = append(cfg.Delays, time.Duration(d.Int())*time.Millisecond)
		}
		if cfg.Type < CT_freeForm || cfg.Type > CT_delayedForm {
			ui.log.Warnf("Control %q has unknown type %d, treating it as free form.", k.String(), cfg.Type)
			cfg.Type = CT_freeForm
		}
		ui.SetControl(k.String(), cfg)
		return true
	})
	return nil
}

// Save writes the control list back out.
func (ui *UserInput) Save(path string) error {
	data := []byte("{}")
	var err error
	for _, name := range ui.Names() {
		cfg := ui.controls[name].cfg
		key := escapeJSONPath(name)
		delays := make([]int64, len(cfg.Delays))
		for i, d := range cfg.Delays {
			delays[i] = d.Milliseconds()
		}
		for _, kv := range []struct {
			path  string
			value interface{}
		}{
			{key + ".keys", cfg.Keys},
			{key + ".mouse", cfg.Mouse},
			{key + ".type", int(cfg.Type)},
			{key + ".delays", delays},
		} {
			if data, err = sjson.SetBytes(data, kv.path, kv.value); err != nil {
				return resourceErr(err, "could not serialise control %q", name)
			}
		}
	}
	return os.WriteFile(path, data, 0644)
}

// SetControl adds or replaces a control. DelayedForm controls without
// delays get the default ones.
func (ui *UserInput) SetControl(name string, cfg ControlConfig) {
	if cfg.Type == CT_delayedForm && len(cfg.Delays) == 0 {
		cfg.Delays = append([]time.Duration(nil), defaultControlDelays...)
	}
	ui.controls[name] = &controlState{cfg: cfg}
}

func (ui *UserInput) Exists(name string) bool {
	_, ok := ui.controls[name]
	return ok
}

// Names lists the controls, sorted.
func (ui *UserInput) Names() []string {
	names := make([]string, 0, len(ui.controls))
	for n := range ui.controls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Control reports whether the control signalled this frame. Unknown names
// never signal.
func (ui *UserInput) Control(name string) bool {
	if c := ui.controls[name]; c != nil {
		return c.signal
	}
	return false
}

// Signals returns every control's state this frame.
func (ui *UserInput) Signals() map[string]bool {
	m := make(map[string]bool, len(ui.controls))
	for n, c := range ui.controls {
		m[n] = c.signal
	}
	return m
}

func (ui *UserInput) MousePosition() mgl.Vec2 { return ui.mouse }

func (ui *UserInput) PreviousMousePosition() mgl.Vec2 { return ui.prevMouse }

// Update samples one frame of input.
func (ui *UserInput) Update(s InputSample) {
	if ui.sampled {
		ui.prevMouse = ui.mouse
	} else {
		ui.prevMouse = s.Pos
		ui.sampled = true
	}
	ui.mouse = s.Pos
	for _, c := range ui.controls {
		keyDown := anyDown(s.Keys, c.cfg.Keys)
		mouseDown := anyDown(s.Mouse, c.cfg.Mouse)
		c.step(keyDown || mouseDown, mouseDown && !keyDown, s)
	}
}

func anyDown(state map[string]bool, names []string) bool {
	for _, n := range names {
		if state[n] || state[strings.ToLower(n)] {
			return true
		}
	}
	return false
}

func (c *controlState) step(down, byMouse bool, s InputSample) {
	pressed := down && !c.wasDown
	released := !down && c.wasDown
	if pressed {
		// A mouse press that lands on a widget belongs to the widget.
		c.cancelled = byMouse && s.OverWidget
	}
	c.signal = false
	switch c.cfg.Type {
	case CT_freeForm:
		c.signal = down
	case CT_buttonForm:
		c.signal = released
	case CT_delayedForm:
		switch {
		case pressed:
			c.signal = true
			c.held = 0
			c.delayIndex = 0
			c.nextRepeat = c.cfg.Delays[0]
		case down:
			c.held += s.Dt
			if c.held >= c.nextRepeat {
				c.signal = true
				if c.delayIndex < len(c.cfg.Delays)-1 {
					c.delayIndex++
				}
				c.nextRepeat += c.cfg.Delays[c.delayIndex]
			}
		}
	}
	if c.cancelled {
		c.signal = false
	}
	if !down {
		c.cancelled = false
	}
	c.wasDown = down
}
