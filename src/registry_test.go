package main

import "testing"

func TestRegistryParseType(t *testing.T) {
	reg := newRegistry()
	for _, name := range []string{"Button", "button", "  BUTTON ", "tgui::Button", "TGUI::button"} {
		if typ, ok := reg.ParseType(name); !ok || typ != WT_Button {
			t.Errorf("ParseType(%q) = %v, %v", name, typ, ok)
		}
	}
	if _, ok := reg.ParseType("Spinner"); ok {
		t.Error("unknown type parsed")
	}
	if n := len(reg.TypeNames()); n != 25 {
		t.Errorf("%d widget types registered, want 25", n)
	}
}

func TestRegistryCapabilities(t *testing.T) {
	reg := newRegistry()
	tests := []struct {
		typ  WidgetType
		caps Capability
		want bool
	}{
		{WT_Button, WC_caption | WC_activatable, true},
		{WT_Button, WC_container, false},
		{WT_ListBox, WC_captionList | WC_items | WC_selectableList, true},
		{WT_ScrollablePanel, WC_scrollable, true},
		{WT_MessageBox, WC_childWindow | WC_messageBox, true},
		{WT_Picture, WC_sprite, true},
		{WT_Label, WC_sprite, false},
		{WT_none, WC_caption, false},
	}
	for _, tt := range tests {
		if got := reg.Has(tt.typ, tt.caps); got != tt.want {
			t.Errorf("Has(%s, %b) = %v, want %v", reg.Name(tt.typ), tt.caps, got, tt.want)
		}
	}
}

func TestRegistrySignals(t *testing.T) {
	reg := newRegistry()
	if !reg.Emits(WT_Button, "Clicked") || !reg.Emits(WT_Button, "MouseEntered") {
		t.Error("Button should emit Clicked and MouseEntered")
	}
	if reg.Emits(WT_Group, "Clicked") {
		t.Error("Group should not emit Clicked")
	}
	if !reg.Emits(WT_MessageBox, "ButtonPressed") || reg.Emits(WT_ChildWindow, "ButtonPressed") {
		t.Error("only MessageBox emits ButtonPressed")
	}
	names := reg.SignalNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("signal names not sorted: %v", names)
		}
	}
}
