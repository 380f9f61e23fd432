package main

import "testing"

func TestStoreAllocatesSequentially(t *testing.T) {
	s := newWidgetStore(10, newDiscardLogger())
	for want := WidgetID(2); want < 6; want++ {
		if got := s.allocate(); got != want {
			t.Fatalf("allocate() = %d, want %d", got, want)
		}
	}
	if !s.valid(ROOT_WIDGET) {
		t.Error("root widget should always be valid")
	}
	if s.valid(NO_WIDGET) || s.valid(6) {
		t.Error("NO_WIDGET and unissued IDs must be invalid")
	}
}

func TestStoreReusesLowestFreeID(t *testing.T) {
	s := newWidgetStore(10, newDiscardLogger())
	for i := 0; i < 5; i++ {
		s.allocate()
	}
	s.release(5)
	s.release(3)
	if s.valid(3) || s.find(3) != nil {
		t.Fatal("released ID is still valid")
	}
	if got := s.allocate(); got != 3 {
		t.Errorf("first reuse = %d, want 3", got)
	}
	if got := s.allocate(); got != 5 {
		t.Errorf("second reuse = %d, want 5", got)
	}
	if got := s.allocate(); got != 7 {
		t.Errorf("fresh ID = %d, want 7", got)
	}
}

func TestStoreNeverReleasesRoot(t *testing.T) {
	s := newWidgetStore(4, newDiscardLogger())
	s.release(ROOT_WIDGET)
	if !s.valid(ROOT_WIDGET) {
		t.Fatal("root was released")
	}
	if got := s.allocate(); got == ROOT_WIDGET {
		t.Fatal("root ID was handed out again")
	}
}

func TestStoreGrowsPastReserve(t *testing.T) {
	log := newDiscardLogger()
	s := newWidgetStore(4, log)
	for i := 0; i < 10; i++ {
		s.allocate()
	}
	if !s.grown {
		t.Fatal("store did not record growth")
	}
	if s.capacity() < 12 {
		t.Errorf("capacity = %d, want at least 12", s.capacity())
	}
	if !log.Contains("capacity of 4 exceeded") {
		t.Errorf("growth was not logged: %v", log.Lines())
	}
	if r := s.find(11); r == nil {
		t.Error("highest allocated ID has no record")
	}
}

func TestStoreResetClearsEverything(t *testing.T) {
	s := newWidgetStore(8, newDiscardLogger())
	id := s.allocate()
	s.find(id).sprite = "x"
	s.release(s.allocate())
	s.reset(8)
	if s.valid(id) {
		t.Error("ID survived reset")
	}
	if len(s.free) != 0 {
		t.Error("free list survived reset")
	}
	if got := s.allocate(); got != 2 {
		t.Errorf("first ID after reset = %d, want 2", got)
	}
	if s.find(2).sprite != "" {
		t.Error("record contents survived reset")
	}
}

func TestMinimisedListPacksSlots(t *testing.T) {
	var l minimisedList
	x0 := l.minimise(10)
	x1 := l.minimise(11)
	l.minimise(12)
	if x0 != minimisedPadding || x1 != x0+minimisedChildWindowWidth+minimisedPadding {
		t.Fatalf("unexpected slot positions %v %v", x0, x1)
	}
	l.restore(11)
	if got := l.minimise(13); got != x1 {
		t.Errorf("freed slot not reused: got %v want %v", got, x1)
	}
	l.restore(12)
	if len(l.slots) != 2 {
		t.Errorf("trailing slot not trimmed: %v", l.slots)
	}
	l.restore(13)
	l.restore(10)
	if len(l.slots) != 0 {
		t.Errorf("slots = %v, want empty", l.slots)
	}
}

func TestParseDirection(t *testing.T) {
	for i, n := range []string{"up", "down", "left", "right"} {
		d, ok := parseDirection(n)
		if !ok || d != Direction(i) || d.String() != n {
			t.Errorf("parseDirection(%q) = %v, %v", n, d, ok)
		}
	}
	if _, ok := parseDirection("sideways"); ok {
		t.Error("unknown direction parsed")
	}
	if DIR_none.String() != "none" {
		t.Error("DIR_none should print as none")
	}
}
