package main

import (
	"math"

	lua "github.com/yuin/gopher-lua"
	"golang.org/x/exp/slices"
)

// WidgetID identifies a widget for the lifetime of the process. IDs are
// recycled after deletion.
type WidgetID uint32

const (
	NO_WIDGET   WidgetID = 0
	ROOT_WIDGET WidgetID = 1
	// Selecting this swaps the previous and current selections.
	GOTO_PREVIOUS_WIDGET WidgetID = math.MaxUint32
)

const defaultReserve = 1000

type Direction int32

const (
	DIR_up Direction = iota
	DIR_down
	DIR_left
	DIR_right
	DIR_none Direction = -1
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "none"
	}
	return directionNames[d]
}

func parseDirection(s string) (Direction, bool) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), true
		}
	}
	return DIR_none, false
}

// SoundBinding names a sound inside an audio object.
type SoundBinding struct {
	Object string
	Sound  string
}

func (s SoundBinding) empty() bool {
	return s.Object == "" || s.Sound == ""
}

const selectSound = 4

// childWindowProps caches a child window's geometry while it is minimised
// or maximised.
type childWindowProps struct {
	size           Layout2
	position       Layout2
	origin         [2]float32
	resizable      bool
	positionLocked bool
	isMinimised    bool
	isMaximised    bool
}

// menuBarState tracks menu item construction and clicks.
type menuBarState struct {
	counter     int
	path        []*MenuBarItem
	last        *MenuBarItem
	items       []*MenuBarItem
	lastClicked int
}

// minimisedList is a packed row of minimised child windows. Empty slots
// are NO_WIDGET.
type minimisedList struct {
	slots []WidgetID
}

// WidgetRecord is the engine's bookkeeping for one widget.
type WidgetRecord struct {
	ptr         *Widget
	caption     OriginalCaption
	flow        [4]WidgetID
	spritesheet string
	sprite      string
	keepSize    bool
	sounds      [5]SoundBinding
	handlers    map[string]*lua.LFunction
	catchAll    *lua.LFunction
	override    string
	menuBar     *menuBarState
	childWindow *childWindowProps
	minimised   minimisedList
	lastButton  int
}

// WidgetStore allocates widget IDs and holds one record per ID.
type WidgetStore struct {
	records []WidgetRecord
	counter WidgetID
	free    []WidgetID
	grown   bool
	log     *Logger
}

func newWidgetStore(reserve int, log *Logger) *WidgetStore {
	s := &WidgetStore{log: log}
	s.reset(reserve)
	return s
}

// reset drops every record and pre-allocates the root widget.
func (s *WidgetStore) reset(reserve int) {
	if reserve < 2 {
		reserve = 2
	}
	s.records = make([]WidgetRecord, reserve)
	s.free = s.free[:0]
	s.grown = false
	s.counter = ROOT_WIDGET
	s.allocate()
}

// allocate returns a recycled ID if one is available, else a fresh one.
// Growing the store invalidates every *WidgetRecord handed out earlier.
func (s *WidgetStore) allocate() WidgetID {
	if len(s.free) > 0 {
		id := s.free[0]
		s.free = s.free[1:]
		return id
	}
	id := s.counter
	s.counter++
	if int(s.counter) > len(s.records) {
		newCap := len(s.records) * 3 / 2
		if newCap < int(s.counter) {
			newCap = int(s.counter)
		}
		s.log.Warnf("Widget store capacity of %d exceeded, growing to %d. Consider raising the reserve.",
			len(s.records), newCap)
		grown := make([]WidgetRecord, newCap)
		copy(grown, s.records)
		s.records = grown
		s.grown = true
	}
	return id
}

// release resets the record and recycles id. The root widget is never
// released.
func (s *WidgetStore) release(id WidgetID) {
	if id == ROOT_WIDGET || !s.valid(id) {
		return
	}
	s.records[id] = WidgetRecord{}
	i, found := slices.BinarySearch(s.free, id)
	if !found {
		s.free = slices.Insert(s.free, i, id)
	}
}

func (s *WidgetStore) valid(id WidgetID) bool {
	if id == NO_WIDGET || id >= s.counter {
		return false
	}
	_, found := slices.BinarySearch(s.free, id)
	return !found
}

// find returns the record for id, or nil. Re-resolve after any call that
// may allocate or run a script callback.
func (s *WidgetStore) find(id WidgetID) *WidgetRecord {
	if !s.valid(id) {
		return nil
	}
	return &s.records[id]
}

func (s *WidgetStore) capacity() int { return len(s.records) }

// each visits every live record.
func (s *WidgetStore) each(fn func(id WidgetID, r *WidgetRecord)) {
	for id := ROOT_WIDGET; id < s.counter; id++ {
		if s.valid(id) {
			fn(id, &s.records[id])
		}
	}
}

// minimise places id in the first free slot and returns its x position.
func (l *minimisedList) minimise(id WidgetID) float32 {
	slot := -1
	for i, v := range l.slots {
		if v == id {
			slot = i
			break
		}
		if v == NO_WIDGET && slot < 0 {
			slot = i
		}
	}
	if slot < 0 {
		l.slots = append(l.slots, id)
		slot = len(l.slots) - 1
	} else {
		l.slots[slot] = id
	}
	return minimisedPadding + float32(slot)*(minimisedChildWindowWidth+minimisedPadding)
}

// restore frees id's slot and trims trailing empty slots.
func (l *minimisedList) restore(id WidgetID) {
	for i, v := range l.slots {
		if v == id {
			l.slots[i] = NO_WIDGET
		}
	}
	for len(l.slots) > 0 && l.slots[len(l.slots)-1] == NO_WIDGET {
		l.slots = l.slots[:len(l.slots)-1]
	}
}
