package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	minimisedPadding          = 5
	minimisedChildWindowWidth = 100
)

func (p *childWindowProps) cache(w *Widget) {
	p.position, p.size = w.Layouts()
	p.origin = w.Origin()
	p.resizable = w.resizable
	p.positionLocked = w.PositionLocked()
}

func (p *childWindowProps) restore(w *Widget) {
	w.SetSize(p.size)
	w.SetPosition(p.position)
	w.SetOrigin(mgl.Vec2(p.origin))
	w.SetResizable(p.resizable)
	w.SetPositionLocked(p.positionLocked)
	p.isMinimised = false
	p.isMaximised = false
}

// minimiseChildWindow shrinks the window to a title bar parked along the
// bottom of its parent. Nothing happens if it is already minimised.
func (g *GUI) minimiseChildWindow(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.childWindow == nil {
		return
	}
	p, w := r.childWindow, r.ptr
	if p.isMinimised {
		return
	}
	if !p.isMaximised {
		p.cache(w)
	}
	p.isMinimised = true
	p.isMaximised = false
	var x float32
	if w.parent != nil {
		if pr := g.store.find(w.parent.userID); pr != nil {
			x = pr.minimised.minimise(id)
		}
	}
	w.SetSize(Layout2{px(minimisedChildWindowWidth), px(g.canvas.titleBarHeight)})
	w.SetPosition(Layout2{px(x), pct(99)})
	w.SetOrigin(mgl.Vec2{0, 1})
	w.SetResizable(false)
	w.SetPositionLocked(true)
	w.MoveToFront()
}

// maximiseChildWindow fills the parent with the window, or restores it if
// it was already minimised or maximised.
func (g *GUI) maximiseChildWindow(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.childWindow == nil {
		return
	}
	p, w := r.childWindow, r.ptr
	if p.isMinimised || p.isMaximised {
		g.restoreChildWindow(id)
	} else {
		p.cache(w)
		p.isMinimised = false
		p.isMaximised = true
		w.SetSize(Layout2{pct(100), pct(100)})
		w.SetPosition(Layout2{pct(50), pct(50)})
		w.SetOrigin(mgl.Vec2{0.5, 0.5})
		w.SetResizable(false)
		w.SetPositionLocked(true)
	}
	w.MoveToFront()
}

// restoreChildWindow undoes a minimise or maximise.
func (g *GUI) restoreChildWindow(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.childWindow == nil {
		return
	}
	p, w := r.childWindow, r.ptr
	if !p.isMinimised && !p.isMaximised {
		return
	}
	if p.isMinimised && w.parent != nil {
		if pr := g.store.find(w.parent.userID); pr != nil {
			pr.minimised.restore(id)
		}
	}
	p.restore(w)
}

// AutoHandleMinMax turns the engine's minimise and maximise handling on or
// off for a child window. Turning it off restores the window first.
func (g *GUI) AutoHandleMinMax(id WidgetID, handle bool) error {
	r, err := g.lookup(id, "autoHandleMinMax", WC_childWindow)
	if err != nil {
		return err
	}
	switch {
	case handle && r.childWindow == nil:
		r.childWindow = &childWindowProps{}
	case !handle && r.childWindow != nil:
		g.restoreChildWindow(id)
		if r = g.store.find(id); r != nil {
			r.childWindow = nil
		}
	}
	return nil
}

// OpenChildWindow shows the window at the given position, in front of its
// siblings and restored.
func (g *GUI) OpenChildWindow(id WidgetID, x, y string) error {
	r, err := g.lookup(id, "openChildWindow", WC_childWindow)
	if err != nil {
		return err
	}
	pos, err := parseLayout2(x, y)
	if err != nil {
		return precondition("openChildWindow: %v", err)
	}
	w := r.ptr
	g.restoreChildWindow(id)
	w.SetPosition(pos)
	w.SetVisible(true)
	w.MoveToFront()
	return nil
}

// CloseChildWindow hides the window without asking its Closing handler.
func (g *GUI) CloseChildWindow(id WidgetID) error {
	r, err := g.lookup(id, "closeChildWindow", WC_childWindow)
	if err != nil {
		return err
	}
	w := r.ptr
	g.restoreChildWindow(id)
	w.SetVisible(false)
	return nil
}

// CloseChildWindowAndEmitSignal closes the window the way its close button
// would, giving the Closing handler a chance to veto.
func (g *GUI) CloseChildWindowAndEmitSignal(id WidgetID) error {
	r, err := g.lookup(id, "closeChildWindowAndEmitSignal", WC_childWindow)
	if err != nil {
		return err
	}
	r.ptr.Close()
	return nil
}

func (g *GUI) RestoreChildWindow(id WidgetID) error {
	if _, err := g.lookup(id, "restoreChildWindow", WC_childWindow); err != nil {
		return err
	}
	g.restoreChildWindow(id)
	return nil
}

func (g *GUI) IsChildWindowOpen(id WidgetID) (bool, error) {
	r, err := g.lookup(id, "isChildWindowOpen", WC_childWindow)
	if err != nil {
		return false, err
	}
	return r.ptr.visible, nil
}
