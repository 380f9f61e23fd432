package main

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type WidgetType int32

const (
	WT_none WidgetType = iota
	WT_Button
	WT_BitmapButton
	WT_Label
	WT_Picture
	WT_EditBox
	WT_TextArea
	WT_CheckBox
	WT_RadioButton
	WT_ToggleButton
	WT_ListBox
	WT_ComboBox
	WT_Tabs
	WT_TabContainer
	WT_MenuBar
	WT_ProgressBar
	WT_Slider
	WT_Panel
	WT_ScrollablePanel
	WT_Group
	WT_VerticalLayout
	WT_HorizontalLayout
	WT_HorizontalWrap
	WT_Grid
	WT_ChildWindow
	WT_MessageBox
)

// Capability is a bitset of behaviours a widget type supports.
type Capability uint32

const (
	WC_caption Capability = 1 << iota
	WC_captionList
	WC_container
	WC_scrollable
	WC_selectableList
	WC_activatable
	WC_sprite
	WC_editable
	WC_items
	WC_tabs
	WC_checkable
	WC_childWindow
	WC_menuBar
	WC_layout
	WC_grid
	WC_progress
	WC_messageBox
)

// Signals every widget emits.
var commonSignals = []string{
	"PositionChanged", "SizeChanged", "Focused", "Unfocused",
	"MouseEntered", "MouseLeft", "AnimationFinished",
}

// Signals emitted by clickable widgets.
var clickableSignals = []string{
	"MousePressed", "MouseReleased", "Clicked", "RightMousePressed",
	"RightMouseReleased", "RightClicked",
}

type typeInfo struct {
	name    string
	caps    Capability
	signals []string
}

// Registry is the immutable table of widget types, their capabilities and
// the signals they emit. Build it once with newRegistry.
type Registry struct {
	types   map[WidgetType]*typeInfo
	byName  map[string]WidgetType
	signals map[string]map[WidgetType]bool
}

func newRegistry() *Registry {
	r := &Registry{
		types:   make(map[WidgetType]*typeInfo),
		byName:  make(map[string]WidgetType),
		signals: make(map[string]map[WidgetType]bool),
	}
	clickable := func(extra ...string) []string {
		return append(append([]string{}, clickableSignals...), extra...)
	}
	r.add(WT_Button, "Button", WC_caption|WC_activatable, clickable("Pressed"))
	r.add(WT_BitmapButton, "BitmapButton", WC_caption|WC_activatable|WC_sprite, clickable("Pressed"))
	r.add(WT_Label, "Label", WC_caption, clickable("DoubleClicked"))
	r.add(WT_Picture, "Picture", WC_sprite, clickable("DoubleClicked"))
	r.add(WT_EditBox, "EditBox", WC_caption|WC_editable, clickable("TextChanged", "ReturnKeyPressed"))
	r.add(WT_TextArea, "TextArea", WC_caption|WC_editable, clickable("TextChanged", "SelectionChanged"))
	r.add(WT_CheckBox, "CheckBox", WC_caption|WC_checkable, clickable("Checked", "Unchecked", "Changed"))
	r.add(WT_RadioButton, "RadioButton", WC_caption|WC_checkable, clickable("Checked", "Unchecked", "Changed"))
	r.add(WT_ToggleButton, "ToggleButton", WC_caption|WC_checkable, clickable("Toggled"))
	r.add(WT_ListBox, "ListBox", WC_captionList|WC_selectableList|WC_activatable|WC_items,
		clickable("ItemSelected", "DoubleClicked", "Scrolled"))
	r.add(WT_ComboBox, "ComboBox", WC_captionList|WC_items, clickable("ItemSelected"))
	r.add(WT_Tabs, "Tabs", WC_captionList|WC_tabs, clickable("TabSelected"))
	r.add(WT_TabContainer, "TabContainer", WC_captionList|WC_tabs|WC_container, []string{"SelectionChanging", "SelectionChanged"})
	r.add(WT_MenuBar, "MenuBar", WC_captionList|WC_menuBar, []string{"MenuItemClicked"})
	r.add(WT_ProgressBar, "ProgressBar", WC_caption|WC_progress, clickable("ValueChanged", "Full"))
	r.add(WT_Slider, "Slider", WC_progress, []string{"ValueChanged"})
	r.add(WT_Panel, "Panel", WC_container, clickable("DoubleClicked"))
	r.add(WT_ScrollablePanel, "ScrollablePanel", WC_container|WC_scrollable, clickable("DoubleClicked"))
	r.add(WT_Group, "Group", WC_container, nil)
	r.add(WT_VerticalLayout, "VerticalLayout", WC_container|WC_layout, nil)
	r.add(WT_HorizontalLayout, "HorizontalLayout", WC_container|WC_layout, nil)
	r.add(WT_HorizontalWrap, "HorizontalWrap", WC_container|WC_layout, nil)
	r.add(WT_Grid, "Grid", WC_container|WC_grid, nil)
	r.add(WT_ChildWindow, "ChildWindow", WC_caption|WC_container|WC_childWindow,
		[]string{"MousePressed", "Closing", "Closed", "Minimized", "Maximized", "EscapeKeyPressed"})
	r.add(WT_MessageBox, "MessageBox", WC_captionList|WC_container|WC_childWindow|WC_messageBox,
		[]string{"MousePressed", "Closing", "Closed", "Minimized", "Maximized", "EscapeKeyPressed", "ButtonPressed"})
	return r
}

func (r *Registry) add(t WidgetType, name string, caps Capability, signals []string) {
	all := append(append([]string{}, commonSignals...), signals...)
	r.types[t] = &typeInfo{name: name, caps: caps, signals: all}
	r.byName[strings.ToLower(name)] = t
	for _, s := range all {
		if r.signals[s] == nil {
			r.signals[s] = make(map[WidgetType]bool)
		}
		r.signals[s][t] = true
	}
}

// Has reports whether t supports every capability in c.
func (r *Registry) Has(t WidgetType, c Capability) bool {
	if ti := r.types[t]; ti != nil {
		return ti.caps&c == c
	}
	return false
}

// Name returns the canonical name of t, or "" for an unknown type.
func (r *Registry) Name(t WidgetType) string {
	if ti := r.types[t]; ti != nil {
		return ti.name
	}
	return ""
}

// ParseType resolves a type name. Matching ignores case, surrounding
// whitespace and a leading "tgui::" namespace.
func (r *Registry) ParseType(name string) (WidgetType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "tgui::")
	t, ok := r.byName[name]
	return t, ok
}

// Emits reports whether widgets of type t emit the named signal.
func (r *Registry) Emits(t WidgetType, signal string) bool {
	return r.signals[signal][t]
}

// Signals lists the signals t emits.
func (r *Registry) Signals(t WidgetType) []string {
	if ti := r.types[t]; ti != nil {
		return append([]string(nil), ti.signals...)
	}
	return nil
}

// SignalNames lists every known signal, sorted.
func (r *Registry) SignalNames() []string {
	names := maps.Keys(r.signals)
	slices.Sort(names)
	return names
}

// TypeNames lists every widget type name, sorted.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for _, ti := range r.types {
		names = append(names, ti.name)
	}
	slices.Sort(names)
	return names
}
