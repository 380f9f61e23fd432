package main

import (
	"path/filepath"
	"testing"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
)

func frame(keys ...string) InputSample {
	s := InputSample{Keys: make(map[string]bool), Mouse: make(map[string]bool), Dt: 100 * time.Millisecond}
	for _, k := range keys {
		s.Keys[k] = true
	}
	return s
}

func signals(ui *UserInput, name string, frames ...InputSample) []bool {
	out := make([]bool, len(frames))
	for i, f := range frames {
		ui.Update(f)
		out[i] = ui.Control(name)
	}
	return out
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestControlForms(t *testing.T) {
	ui := NewUserInput(newDiscardLogger())
	ui.SetControl("free", ControlConfig{Keys: []string{"A"}, Type: CT_freeForm})
	ui.SetControl("button", ControlConfig{Keys: []string{"A"}, Type: CT_buttonForm})
	ui.SetControl("delayed", ControlConfig{Keys: []string{"A"}, Type: CT_delayedForm,
		Delays: []time.Duration{250 * time.Millisecond, 100 * time.Millisecond}})

	held := []InputSample{frame("A"), frame("A"), frame("A"), frame("A"), frame("A"), frame()}
	tests := []struct {
		name string
		want []bool
	}{
		{"free", []bool{true, true, true, true, true, false}},
		{"button", []bool{false, false, false, false, false, true}},
		// Press, then 250ms of holding, then every 100ms.
		{"delayed", []bool{true, false, false, true, true, false}},
	}
	var got [3][]bool
	for i := range got {
		got[i] = make([]bool, len(held))
	}
	for f, s := range held {
		ui.Update(s)
		for i, tt := range tests {
			got[i][f] = ui.Control(tt.name)
		}
	}
	for i, tt := range tests {
		if !equalBools(got[i], tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got[i], tt.want)
		}
	}
}

func TestMousePressOverWidgetIsCancelled(t *testing.T) {
	ui := NewUserInput(newDiscardLogger())
	ui.SetControl("select", ControlConfig{Keys: []string{"Enter"}, Mouse: []string{"Left"}, Type: CT_buttonForm})
	click := func(over bool) InputSample {
		s := frame()
		s.Mouse["Left"] = true
		s.OverWidget = over
		return s
	}
	if got := signals(ui, "select", click(true), frame()); !equalBools(got, []bool{false, false}) {
		t.Errorf("click on a widget: %v", got)
	}
	if got := signals(ui, "select", click(false), frame()); !equalBools(got, []bool{false, true}) {
		t.Errorf("click on the background: %v", got)
	}
	if got := signals(ui, "select", frame("Enter"), frame()); !equalBools(got, []bool{false, true}) {
		t.Errorf("key press: %v", got)
	}
}

func TestKeyNamesMatchLowerCase(t *testing.T) {
	ui := NewUserInput(newDiscardLogger())
	ui.SetControl("up", ControlConfig{Keys: []string{"ArrowUp"}})
	if got := signals(ui, "up", frame("arrowup")); !got[0] {
		t.Error("lower case key name not matched")
	}
	if ui.Control("missing") {
		t.Error("unknown control signalled")
	}
}

func TestMousePositions(t *testing.T) {
	ui := NewUserInput(newDiscardLogger())
	s := frame()
	s.Pos = mgl.Vec2{3, 4}
	ui.Update(s)
	if ui.PreviousMousePosition() != ui.MousePosition() {
		t.Error("the first sample should not look like movement")
	}
	s.Pos = mgl.Vec2{7, 8}
	ui.Update(s)
	if ui.PreviousMousePosition() != (mgl.Vec2{3, 4}) || ui.MousePosition() != (mgl.Vec2{7, 8}) {
		t.Errorf("positions %v -> %v", ui.PreviousMousePosition(), ui.MousePosition())
	}
}

func TestControlListRoundTrip(t *testing.T) {
	ui := NewUserInput(newDiscardLogger())
	if err := ui.LoadBytes(defaultControls); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"up", "down", "left", "right", "select", "back"} {
		if !ui.Exists(n) {
			t.Errorf("default control %q missing", n)
		}
	}
	ui.SetControl("dot.name", ControlConfig{Keys: []string{"X"}, Type: CT_delayedForm})
	path := filepath.Join(t.TempDir(), "controls.json")
	if err := ui.Save(path); err != nil {
		t.Fatal(err)
	}
	back := NewUserInput(newDiscardLogger())
	if err := back.Load(path); err != nil {
		t.Fatal(err)
	}
	got := back.controls["dot.name"]
	if got == nil || got.cfg.Type != CT_delayedForm || len(got.cfg.Delays) != 2 || got.cfg.Delays[0] != time.Second {
		t.Fatalf("reloaded control = %+v", got)
	}
	if err := back.LoadBytes([]byte(`[`)); !isKind(err, ErrResource) {
		t.Errorf("bad JSON: %v", err)
	}
}

func TestUnknownControlTypeIsFreeForm(t *testing.T) {
	log := newDiscardLogger()
	ui := NewUserInput(log)
	ui.LoadBytes([]byte(`{"odd": {"keys": ["Q"], "type": 9}}`))
	if ui.controls["odd"].cfg.Type != CT_freeForm {
		t.Error("unknown type kept")
	}
	if !log.Contains(`Control "odd" has unknown type 9`) {
		t.Errorf("no warning logged: %v", log.Lines())
	}
}
