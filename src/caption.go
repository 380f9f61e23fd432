package main

import (
	"strconv"
	"strings"
)

// Caption is a translation key plus the values substituted into it.
// Supported value kinds are int64, float64 and string.
type Caption struct {
	Text string
	Vars []interface{}
}

type captionKind uint8

const (
	captionNone captionKind = iota
	captionSingle
	captionList
)

// OriginalCaption is what a widget's displayed text is derived from: no
// caption, one caption, or one caption per entry.
type OriginalCaption struct {
	kind   captionKind
	single Caption
	list   []Caption
}

func singleCaption(c Caption) OriginalCaption {
	return OriginalCaption{kind: captionSingle, single: c}
}

func listCaption(cs ...Caption) OriginalCaption {
	return OriginalCaption{kind: captionList, list: cs}
}

func (oc *OriginalCaption) Kind() captionKind { return oc.kind }

// setItem stores c at index i of a list caption, growing it if needed.
func (oc *OriginalCaption) setItem(i int, c Caption) {
	if oc.kind != captionList {
		*oc = OriginalCaption{kind: captionList}
	}
	for len(oc.list) <= i {
		oc.list = append(oc.list, Caption{})
	}
	oc.list[i] = c
}

func (oc *OriginalCaption) appendItem(c Caption) int {
	if oc.kind != captionList {
		*oc = OriginalCaption{kind: captionList}
	}
	oc.list = append(oc.list, c)
	return len(oc.list) - 1
}

func (oc *OriginalCaption) item(i int) (Caption, bool) {
	if oc.kind != captionList || i < 0 || i >= len(oc.list) {
		return Caption{}, false
	}
	return oc.list[i], true
}

func (oc *OriginalCaption) removeItem(i int) {
	if oc.kind == captionList && i >= 0 && i < len(oc.list) {
		oc.list = append(oc.list[:i], oc.list[i+1:]...)
	}
}

const varChar = '#'

// formatVariable renders one interpolation value. ok is false for an
// unsupported kind, in which case the result is empty.
func formatVariable(v interface{}) (s string, ok bool) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64), true
	case string:
		return x, true
	}
	return "", false
}

// expandString substitutes vars into text. Each lone '#' consumes the next
// value, "##" outputs a literal '#', and once the values run out the rest
// of text is copied unchanged. warn is called for unsupported value kinds.
func expandString(text string, vars []interface{}, warn func(v interface{})) string {
	if len(vars) == 0 {
		return text
	}
	var sb strings.Builder
	next := 0
	for i := 0; i < len(text); i++ {
		if next >= len(vars) {
			sb.WriteString(text[i:])
			break
		}
		c := text[i]
		if c != varChar {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(text) && text[i+1] == varChar {
			sb.WriteByte(varChar)
			i++
			continue
		}
		s, ok := formatVariable(vars[next])
		if !ok && warn != nil {
			warn(vars[next])
		}
		sb.WriteString(s)
		next++
	}
	return sb.String()
}
