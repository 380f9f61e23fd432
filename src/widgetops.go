package main

import (
	"regexp"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// Per-widget operations exposed to menus. Each resolves the ID, checks the
// widget type supports the operation, and applies it to the widget.

func (g *GUI) SetWidgetName(id WidgetID, name string) error {
	r, err := g.lookup(id, "setWidgetName", 0)
	if err != nil {
		return err
	}
	if strings.Contains(name, ".") {
		return precondition("setWidgetName: %q cannot contain a dot", name)
	}
	if m := g.menuRootOf(id); m != nil {
		return precondition("setWidgetName: widget %d is the root of menu %q", id, m.name)
	}
	r.ptr.name = name
	return nil
}

func (g *GUI) WidgetName(id WidgetID) (string, error) {
	r, err := g.lookup(id, "getWidgetName", 0)
	if err != nil {
		return "", err
	}
	return r.ptr.name, nil
}

func (g *GUI) WidgetFullName(id WidgetID) (string, error) {
	r, err := g.lookup(id, "getWidgetFullName", 0)
	if err != nil {
		return "", err
	}
	return g.fullName(r.ptr), nil
}

func (g *GUI) WidgetTypeName(id WidgetID) (string, error) {
	r, err := g.lookup(id, "getWidgetType", 0)
	if err != nil {
		return "", err
	}
	return g.reg.Name(r.ptr.wtype), nil
}

// Geometry

// SetWidgetPosition takes layout expressions such as "50%", "10px" or "10".
func (g *GUI) SetWidgetPosition(id WidgetID, x, y string) error {
	r, err := g.lookup(id, "setWidgetPosition", 0)
	if err != nil {
		return err
	}
	l, err := parseLayout2(x, y)
	if err != nil {
		return precondition("setWidgetPosition: %v", err)
	}
	r.ptr.SetPosition(l)
	return nil
}

func (g *GUI) SetWidgetSize(id WidgetID, w, h string) error {
	r, err := g.lookup(id, "setWidgetSize", 0)
	if err != nil {
		return err
	}
	l, err := parseLayout2(w, h)
	if err != nil {
		return precondition("setWidgetSize: %v", err)
	}
	r.ptr.SetSize(l)
	return nil
}

func (g *GUI) SetWidgetOrigin(id WidgetID, x, y float32) error {
	r, err := g.lookup(id, "setWidgetOrigin", 0)
	if err != nil {
		return err
	}
	r.ptr.SetOrigin(mgl.Vec2{clampF(x, 0, 1), clampF(y, 0, 1)})
	return nil
}

func (g *GUI) WidgetAbsolutePosition(id WidgetID) (mgl.Vec2, error) {
	r, err := g.lookup(id, "getWidgetAbsolutePosition", 0)
	if err != nil {
		return mgl.Vec2{}, err
	}
	return r.ptr.AbsolutePosition(), nil
}

func (g *GUI) WidgetSize(id WidgetID) (mgl.Vec2, error) {
	r, err := g.lookup(id, "getWidgetSize", 0)
	if err != nil {
		return mgl.Vec2{}, err
	}
	return r.ptr.Size(), nil
}

// State

func (g *GUI) SetWidgetFocus(id WidgetID) error {
	r, err := g.lookup(id, "setWidgetFocus", 0)
	if err != nil {
		return err
	}
	g.canvas.Focus(r.ptr)
	return nil
}

func (g *GUI) WidgetFocused(id WidgetID) (bool, error) {
	r, err := g.lookup(id, "getWidgetFocused", 0)
	if err != nil {
		return false, err
	}
	return g.canvas.focused == r.ptr, nil
}

func (g *GUI) SetWidgetEnabled(id WidgetID, enabled bool) error {
	r, err := g.lookup(id, "setWidgetEnabled", 0)
	if err != nil {
		return err
	}
	r.ptr.SetEnabled(enabled)
	return nil
}

func (g *GUI) WidgetEnabled(id WidgetID) (bool, error) {
	r, err := g.lookup(id, "getWidgetEnabled", 0)
	if err != nil {
		return false, err
	}
	return r.ptr.enabled, nil
}

// SetWidgetVisibility shows or hides id. Menu roots are shown by setGUI.
func (g *GUI) SetWidgetVisibility(id WidgetID, visible bool) error {
	r, err := g.lookup(id, "setWidgetVisibility", 0)
	if err != nil {
		return err
	}
	if m := g.menuRootOf(id); m != nil {
		return precondition("setWidgetVisibility: widget %d is the root of menu %q", id, m.name)
	}
	r.ptr.SetVisible(visible)
	return nil
}

func (g *GUI) WidgetVisibility(id WidgetID) (bool, error) {
	r, err := g.lookup(id, "getWidgetVisibility", 0)
	if err != nil {
		return false, err
	}
	return r.ptr.Visible(), nil
}

func (g *GUI) MoveWidgetToFront(id WidgetID) error {
	r, err := g.lookup(id, "moveWidgetToFront", 0)
	if err != nil {
		return err
	}
	r.ptr.MoveToFront()
	return nil
}

func (g *GUI) MoveWidgetToBack(id WidgetID) error {
	r, err := g.lookup(id, "moveWidgetToBack", 0)
	if err != nil {
		return err
	}
	r.ptr.MoveToBack()
	return nil
}

// Text appearance

func (g *GUI) SetWidgetFont(id WidgetID, name string) error {
	r, err := g.lookup(id, "setWidgetFont", WC_caption|WC_captionList)
	if err != nil {
		return err
	}
	if g.fonts == nil {
		return resourceErr(nil, "setWidgetFont: no fonts have been loaded")
	}
	if !g.fonts.Has(name) {
		return notFound("setWidgetFont: font %q does not exist", name)
	}
	r.ptr.SetFont(name)
	return nil
}

// SetWidgetInheritedFont sets the font of a container and of every widget
// inside it that has not chosen its own.
func (g *GUI) SetWidgetInheritedFont(id WidgetID, name string) error {
	r, err := g.lookup(id, "setWidgetInheritedFont", WC_container)
	if err != nil {
		return err
	}
	if g.fonts == nil {
		return resourceErr(nil, "setWidgetInheritedFont: no fonts have been loaded")
	}
	if !g.fonts.Has(name) {
		return notFound("setWidgetInheritedFont: font %q does not exist", name)
	}
	old := r.ptr.font
	var apply func(w *Widget)
	apply = func(w *Widget) {
		w.SetFont(name)
		for _, c := range w.children {
			if c.font == "" || c.font == old {
				apply(c)
			}
		}
	}
	apply(r.ptr)
	return nil
}

func (g *GUI) SetWidgetTextSize(id WidgetID, size uint32) error {
	r, err := g.lookup(id, "setWidgetTextSize", WC_caption|WC_captionList)
	if err != nil {
		return err
	}
	r.ptr.SetTextSize(size)
	return nil
}

var textStyleNames = map[string]TextStyle{
	"regular":       TS_regular,
	"bold":          TS_bold,
	"italic":        TS_italic,
	"underlined":    TS_underlined,
	"strikethrough": TS_strike,
}

// SetWidgetTextStyles takes a space separated list of style names.
func (g *GUI) SetWidgetTextStyles(id WidgetID, styles string) error {
	r, err := g.lookup(id, "setWidgetTextStyles", WC_caption)
	if err != nil {
		return err
	}
	var s TextStyle
	for _, f := range strings.Fields(strings.ToLower(styles)) {
		v, ok := textStyleNames[f]
		if !ok {
			return precondition("setWidgetTextStyles: unknown text style %q", f)
		}
		s |= v
	}
	r.ptr.SetTextStyle(s)
	return nil
}

func (g *GUI) SetWidgetTextMaximumWidth(id WidgetID, width float32) error {
	r, err := g.lookup(id, "setWidgetTextMaximumWidth", WC_caption)
	if err != nil {
		return err
	}
	if r.ptr.wtype != WT_Label {
		return unsupported("setWidgetTextMaximumWidth: widget %s is not a Label", g.describe(id))
	}
	r.ptr.SetMaximumTextWidth(maxF(0, width))
	return nil
}

func (g *GUI) SetWidgetTextAlignment(id WidgetID, a HAlign) error {
	r, err := g.lookup(id, "setWidgetTextAlignment", WC_caption)
	if err != nil {
		return err
	}
	if a < HA_left || a > HA_right {
		return precondition("setWidgetTextAlignment: invalid alignment %d", a)
	}
	r.ptr.SetTextAlignment(a)
	return nil
}

// SetEditBoxRegexValidator restricts what can be typed into an EditBox. An
// empty expression removes the restriction.
func (g *GUI) SetEditBoxRegexValidator(id WidgetID, expr string) error {
	r, err := g.lookup(id, "setEditBoxRegexValidator", WC_editable)
	if err != nil {
		return err
	}
	if r.ptr.wtype != WT_EditBox {
		return unsupported("setEditBoxRegexValidator: widget %s is not an EditBox", g.describe(id))
	}
	if expr == "" {
		r.ptr.SetValidator(nil)
		return nil
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return resourceErr(err, "setEditBoxRegexValidator: invalid expression %q", expr)
	}
	r.ptr.SetValidator(re)
	return nil
}

// Lists

func (g *GUI) SetSelectedItem(id WidgetID, i int) error {
	r, err := g.lookup(id, "setSelectedItem", WC_items)
	if err != nil {
		return err
	}
	if !r.ptr.SetSelectedItem(i) {
		return precondition("setSelectedItem: widget %s has no item %d", g.describe(id), i)
	}
	return nil
}

func (g *GUI) DeselectItem(id WidgetID) error {
	r, err := g.lookup(id, "deselectItem", WC_items)
	if err != nil {
		return err
	}
	r.ptr.DeselectItem()
	return nil
}

func (g *GUI) SelectedItem(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getSelectedItem", WC_items)
	if err != nil {
		return -1, err
	}
	return r.ptr.selected, nil
}

func (g *GUI) SelectedItemText(id WidgetID) (string, error) {
	r, err := g.lookup(id, "getSelectedItemText", WC_items)
	if err != nil {
		return "", err
	}
	if r.ptr.selected < 0 {
		return "", nil
	}
	return r.ptr.items[r.ptr.selected], nil
}

func (g *GUI) ItemCount(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getItemCount", WC_items)
	if err != nil {
		return 0, err
	}
	return len(r.ptr.items), nil
}

// Tabs

func (g *GUI) SetSelectedTab(id WidgetID, i int) error {
	r, err := g.lookup(id, "setSelectedTab", WC_tabs)
	if err != nil {
		return err
	}
	if !r.ptr.SetSelectedTab(i) {
		return precondition("setSelectedTab: widget %s has no tab %d", g.describe(id), i)
	}
	return nil
}

func (g *GUI) SelectedTab(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getSelectedTab", WC_tabs)
	if err != nil {
		return -1, err
	}
	return r.ptr.selectedTab, nil
}

func (g *GUI) TabCount(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getTabCount", WC_tabs)
	if err != nil {
		return 0, err
	}
	return len(r.ptr.tabs), nil
}

// Check state

func (g *GUI) SetWidgetChecked(id WidgetID, checked bool) error {
	r, err := g.lookup(id, "setWidgetChecked", WC_checkable)
	if err != nil {
		return err
	}
	r.ptr.SetChecked(checked)
	return nil
}

func (g *GUI) IsWidgetChecked(id WidgetID) (bool, error) {
	r, err := g.lookup(id, "isWidgetChecked", WC_checkable)
	if err != nil {
		return false, err
	}
	return r.ptr.checked, nil
}

// Containers

func (g *GUI) SetWidgetIndexInContainer(id WidgetID, i int) error {
	r, err := g.lookup(id, "setWidgetIndexInContainer", 0)
	if err != nil {
		return err
	}
	if r.ptr.parent == nil {
		return precondition("setWidgetIndexInContainer: widget %s has no parent", g.describe(id))
	}
	if !r.ptr.SetIndex(i) {
		return precondition("setWidgetIndexInContainer: index %d is out of range for widget %s", i, g.describe(id))
	}
	return nil
}

func (g *GUI) WidgetCount(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getWidgetCount", WC_container)
	if err != nil {
		return 0, err
	}
	return len(r.ptr.children), nil
}

func (g *GUI) SetGroupPadding(id WidgetID, p [4]float32) error {
	r, err := g.lookup(id, "setGroupPadding", WC_container)
	if err != nil {
		return err
	}
	r.ptr.SetGroupPadding(p)
	return nil
}

func (g *GUI) SetSpaceBetweenWidgets(id WidgetID, s float32) error {
	r, err := g.lookup(id, "setSpaceBetweenWidgets", WC_layout)
	if err != nil {
		return err
	}
	r.ptr.SetSpacing(maxF(0, s))
	return nil
}

// Scrolling

func (g *GUI) SetScrollbarPolicy(id WidgetID, axis int, p ScrollbarPolicy) error {
	r, err := g.lookup(id, "setScrollbarPolicy", WC_scrollable)
	if err != nil {
		return err
	}
	if p < SP_automatic || p > SP_never {
		return precondition("setScrollbarPolicy: invalid policy %d", p)
	}
	r.ptr.SetScrollbarPolicy(axis, p)
	return nil
}

func (g *GUI) SetScrollbarAmount(id WidgetID, axis int, amount float32) error {
	r, err := g.lookup(id, "setScrollbarAmount", WC_scrollable)
	if err != nil {
		return err
	}
	r.ptr.SetScrollbarAmount(axis, maxF(0, amount))
	return nil
}

func (g *GUI) SetScrollbarValue(id WidgetID, axis int, v float32) error {
	r, err := g.lookup(id, "setScrollbarValue", WC_scrollable)
	if err != nil {
		return err
	}
	r.ptr.SetScrollbarValue(axis, v)
	return nil
}

// Grids

func (g *GUI) gridChild(grid WidgetID, row, col int, op string) (*Widget, *Widget, error) {
	r, err := g.lookup(grid, op, WC_grid)
	if err != nil {
		return nil, nil, err
	}
	for c, cell := range r.ptr.cells {
		if cell.row == row && cell.col == col {
			return r.ptr, c, nil
		}
	}
	return nil, nil, notFound("%s: grid %s has no widget at (%d, %d)", op, g.describe(grid), row, col)
}

func (g *GUI) SetWidgetAlignmentInGrid(grid WidgetID, row, col int, a GridAlign) error {
	gw, c, err := g.gridChild(grid, row, col, "setWidgetAlignmentInGrid")
	if err != nil {
		return err
	}
	if a < GA_centre || a > GA_left {
		return precondition("setWidgetAlignmentInGrid: invalid alignment %d", a)
	}
	gw.SetGridAlignment(c, a)
	return nil
}

func (g *GUI) SetWidgetPaddingInGrid(grid WidgetID, row, col int, p [4]float32) error {
	gw, c, err := g.gridChild(grid, row, col, "setWidgetPaddingInGrid")
	if err != nil {
		return err
	}
	gw.SetGridPadding(c, p)
	return nil
}

func (g *GUI) GridDimensions(id WidgetID) (cols, rows int, err error) {
	r, err := g.lookup(id, "getWidgetColumnCount", WC_grid)
	if err != nil {
		return 0, 0, err
	}
	cols, rows = r.ptr.GridDimensions()
	return cols, rows, nil
}

// Child windows

func (g *GUI) SetChildWindowTitleButtons(id WidgetID, b TitleButton) error {
	r, err := g.lookup(id, "setChildWindowTitleButtons", WC_childWindow)
	if err != nil {
		return err
	}
	r.ptr.SetTitleButtons(b & (TB_close | TB_maximize | TB_minimize))
	return nil
}

func (g *GUI) SetWidgetResizable(id WidgetID, resizable bool) error {
	r, err := g.lookup(id, "setWidgetResizable", WC_childWindow)
	if err != nil {
		return err
	}
	r.ptr.SetResizable(resizable)
	return nil
}

func (g *GUI) SetWidgetPositionLocked(id WidgetID, locked bool) error {
	r, err := g.lookup(id, "setWidgetPositionLocked", WC_childWindow)
	if err != nil {
		return err
	}
	r.ptr.SetPositionLocked(locked)
	return nil
}

// Message boxes

func (g *GUI) LastSelectedButton(id WidgetID) (int, error) {
	r, err := g.lookup(id, "getLastSelectedButton", WC_messageBox)
	if err != nil {
		return -1, err
	}
	return r.lastButton, nil
}

// Progress

func (g *GUI) SetProgress(id WidgetID, v float32) error {
	r, err := g.lookup(id, "setProgress", WC_progress)
	if err != nil {
		return err
	}
	r.ptr.SetValue(v)
	return nil
}

func (g *GUI) Progress(id WidgetID) (float32, error) {
	r, err := g.lookup(id, "getProgress", WC_progress)
	if err != nil {
		return 0, err
	}
	return r.ptr.value, nil
}
