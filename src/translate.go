package main

// getTranslatedText looks the caption up in the active language, then
// substitutes its variables. It never fails.
func (g *GUI) getTranslatedText(c Caption) string {
	text := c.Text
	if g.lang != nil {
		text = g.lang.Get(c.Text)
	}
	return expandString(text, c.Vars, func(v interface{}) {
		g.log.Warnf("Unsupported variable of type %T in caption %q, inserting nothing.", v, c.Text)
	})
}

// translateWidget reapplies every caption of id, and of its children.
func (g *GUI) translateWidget(id WidgetID) {
	r := g.store.find(id)
	if r == nil || r.ptr == nil {
		return
	}
	w := r.ptr
	oc := r.caption
	switch oc.kind {
	case captionSingle:
		g.applyCaption(w, g.getTranslatedText(oc.single))
	case captionList:
		texts := make([]string, len(oc.list))
		for i, c := range oc.list {
			texts[i] = g.getTranslatedText(c)
		}
		g.applyCaptionList(w, texts)
	}
	if g.reg.Has(w.wtype, WC_container) {
		for _, c := range append([]*Widget(nil), w.children...) {
			g.translateWidget(c.userID)
		}
	}
}

// applyCaption sets a single caption wherever the widget type shows it.
func (g *GUI) applyCaption(w *Widget, text string) {
	switch {
	case g.reg.Has(w.wtype, WC_childWindow):
		w.SetTitle(text)
	case g.reg.Has(w.wtype, WC_editable):
		w.SetDefaultText(text)
	default:
		w.SetText(text)
	}
}

// applyCaptionList sets one caption per entry. A MessageBox takes its title,
// then its text, then one caption per button.
func (g *GUI) applyCaptionList(w *Widget, texts []string) {
	switch {
	case g.reg.Has(w.wtype, WC_messageBox):
		for i, t := range texts {
			switch i {
			case 0:
				w.SetTitle(t)
			case 1:
				w.SetText(t)
			default:
				w.SetButtonText(i-2, t)
			}
		}
	case g.reg.Has(w.wtype, WC_items):
		for i, t := range texts {
			w.SetItemText(i, t)
		}
	case g.reg.Has(w.wtype, WC_tabs):
		for i, t := range texts {
			w.SetTabText(i, t)
		}
	case g.reg.Has(w.wtype, WC_menuBar):
		i := 0
		w.WalkMenus(func(it *MenuBarItem) {
			if i < len(texts) {
				it.Text = texts[i]
			}
			i++
		})
	}
}

// translateAll retranslates every menu.
func (g *GUI) translateAll() {
	g.translateWidget(ROOT_WIDGET)
}

// SetWidgetText stores a new caption for id and shows it straight away.
// EditBox and TextArea text is set as given, untranslated.
func (g *GUI) SetWidgetText(id WidgetID, c Caption) error {
	r, err := g.lookup(id, "setWidgetText", WC_caption|WC_editable)
	if err != nil {
		return err
	}
	if g.reg.Has(r.ptr.wtype, WC_editable) {
		r.ptr.setEditText(c.Text)
		return nil
	}
	r.caption = singleCaption(c)
	g.translateWidget(id)
	return nil
}

// SetWidgetDefaultText sets an EditBox or TextArea placeholder caption.
func (g *GUI) SetWidgetDefaultText(id WidgetID, c Caption) error {
	r, err := g.lookup(id, "setEditBoxDefaultText", WC_editable)
	if err != nil {
		return err
	}
	r.caption = singleCaption(c)
	g.translateWidget(id)
	return nil
}

// WidgetText returns the displayed text of id.
func (g *GUI) WidgetText(id WidgetID) (string, error) {
	r, err := g.lookup(id, "getWidgetText", WC_caption|WC_editable)
	if err != nil {
		return "", err
	}
	if g.reg.Has(r.ptr.wtype, WC_childWindow) {
		return r.ptr.title, nil
	}
	return r.ptr.text, nil
}

// SetChildWindowTitle sets the title caption of a ChildWindow.
func (g *GUI) SetChildWindowTitle(id WidgetID, c Caption) error {
	r, err := g.lookup(id, "setChildWindowTitle", WC_childWindow)
	if err != nil {
		return err
	}
	if r.ptr.wtype == WT_MessageBox {
		r.caption.setItem(0, c)
	} else {
		r.caption = singleCaption(c)
	}
	g.translateWidget(id)
	return nil
}

// AddItem appends a row to a ListBox or ComboBox.
func (g *GUI) AddItem(id WidgetID, c Caption) (int, error) {
	r, err := g.lookup(id, "addItem", WC_items)
	if err != nil {
		return -1, err
	}
	r.caption.appendItem(c)
	return r.ptr.AddItem(g.getTranslatedText(c)), nil
}

// ClearItems removes every row of a ListBox or ComboBox.
func (g *GUI) ClearItems(id WidgetID) error {
	r, err := g.lookup(id, "clearItems", WC_items)
	if err != nil {
		return err
	}
	r.caption = listCaption()
	r.ptr.RemoveAllItems()
	return nil
}

// AddTab appends a tab to a Tabs widget.
func (g *GUI) AddTab(id WidgetID, c Caption, sel bool) (int, error) {
	r, err := g.lookup(id, "addTab", WC_tabs)
	if err != nil {
		return -1, err
	}
	if r.ptr.wtype == WT_TabContainer {
		return -1, unsupported("addTab: use addTabAndPanel with TabContainer %s", g.describe(id))
	}
	r.caption.appendItem(c)
	return r.ptr.AddTab(g.getTranslatedText(c), sel), nil
}

// SetMessageBoxStrings sets a MessageBox's title, text and buttons. Any
// existing buttons are replaced.
func (g *GUI) SetMessageBoxStrings(id WidgetID, title, text Caption, buttons []Caption) error {
	r, err := g.lookup(id, "setMessageBoxStrings", WC_messageBox)
	if err != nil {
		return err
	}
	r.caption = listCaption(append([]Caption{title, text}, buttons...)...)
	r.ptr.buttons = nil
	for _, b := range buttons {
		r.ptr.AddButton(g.getTranslatedText(b))
	}
	g.translateWidget(id)
	return nil
}
