package main

import (
	"image"
	"testing"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const testSheet = `{
	"path": "sheet.png",
	"sprites": {
		"blink": {"frames": [[0, 0, 10, 20], [10, 0, 12, 20]], "durations": [100, 100], "offset": [1, 2]},
		"still": {"frames": [[0, 0, 4, 4]], "durations": [0]},
		"bad": "not an object"
	}
}`

func testSprites(t *testing.T) (*SpritesheetBank, *Spritesheet) {
	t.Helper()
	log := newDiscardLogger()
	s, err := parseSpritesheet([]byte(testSheet), "assets", false, log)
	if err != nil {
		t.Fatal(err)
	}
	b := NewSpritesheetBank(log)
	b.Add("main", s)
	return b, s
}

func TestParseSpritesheet(t *testing.T) {
	_, s := testSprites(t)
	if s.path != "assets/sheet.png" {
		t.Errorf("path = %q", s.path)
	}
	if !s.HasSprite("blink") || !s.HasSprite("still") || s.HasSprite("bad") {
		t.Fatalf("sprites = %v", s.sprites)
	}
	if r, ok := s.FrameRect("blink", 1); !ok || r != image.Rect(10, 0, 22, 20) {
		t.Errorf("frame 1 = %v, %v", r, ok)
	}
	if s.Offset("blink") != (mgl.Vec2{1, 2}) {
		t.Errorf("offset = %v", s.Offset("blink"))
	}
	if _, err := parseSpritesheet([]byte(`{"sprites": {}}`), "", false, newDiscardLogger()); !isKind(err, ErrResource) {
		t.Errorf("missing path: %v", err)
	}
	if _, err := parseSpritesheet([]byte(`{`), "", false, newDiscardLogger()); !isKind(err, ErrResource) {
		t.Errorf("bad JSON: %v", err)
	}
}

func TestAnimatedSpriteAdvances(t *testing.T) {
	_, s := testSprites(t)
	a := NewAnimatedSprite(s, "blink", newDiscardLogger())
	if a.Animate(50 * time.Millisecond) {
		t.Fatal("finished early")
	}
	if !a.Animate(60*time.Millisecond) || a.Frame() != 1 {
		t.Fatalf("frame = %d, want the last frame", a.Frame())
	}
	if a.Size() != (mgl.Vec2{12, 20}) {
		t.Errorf("size = %v", a.Size())
	}
	a.Animate(95 * time.Millisecond)
	if a.Frame() != 0 {
		t.Fatalf("frame = %d, want a wrap to 0", a.Frame())
	}
}

func TestAnimatedSpriteStillAndMissing(t *testing.T) {
	_, s := testSprites(t)
	still := NewAnimatedSprite(s, "still", nil)
	if !still.Animate(time.Hour) || still.Frame() != 0 {
		t.Error("a single zero duration frame never moves")
	}
	log := newDiscardLogger()
	missing := NewAnimatedSprite(s, "nope", log)
	missing.Animate(time.Millisecond)
	missing.Animate(time.Millisecond)
	n := 0
	for _, l := range log.Lines() {
		if l == `Error: Attempted to animate non-existent sprite "nope".` {
			n++
		}
	}
	if n != 1 {
		t.Errorf("logged the missing sprite %d times: %v", n, log.Lines())
	}
}

func TestPictureTakesSpriteSize(t *testing.T) {
	g, h := newTestGUI(t)
	bank, _ := testSprites(t)
	g.SetSpritesheets(bank)
	m, _ := g.AddMenu("Main", nil)
	pic := addWidget(t, g, m.Root(), "Picture", "pic")
	kept := addWidget(t, g, m.Root(), "Picture", "kept")
	g.SetGUI("Main", false, false)

	h.DoString(`finished = 0 function done(id) finished = finished + 1 end`)
	g.ConnectSignal(pic, "AnimationFinished", h.Function("done"))
	if err := g.SetWidgetSprite(pic, "main", "blink"); err != nil {
		t.Fatal(err)
	}
	g.SetWidgetSprite(kept, "main", "blink")
	if err := g.MatchWidgetSizeToSprite(kept, false); err != nil {
		t.Fatal(err)
	}

	g.Animate(0)
	if size, _ := g.WidgetSize(pic); size != (mgl.Vec2{10, 20}) {
		t.Errorf("picture size = %v", size)
	}
	if size, _ := g.WidgetSize(kept); size != (mgl.Vec2{}) {
		t.Errorf("kept size = %v", size)
	}
	g.Animate(100 * time.Millisecond)
	if luaNumber(h, "finished") != 1 {
		t.Errorf("AnimationFinished ran %v times", luaNumber(h, "finished"))
	}
	if g.WidgetSprite(g.store.find(pic).ptr) == nil {
		t.Fatal("no sprite to draw")
	}

	if err := g.ClearWidgetSprite(pic); err != nil {
		t.Fatal(err)
	}
	if g.WidgetSprite(g.store.find(pic).ptr) != nil {
		t.Error("sprite still drawn after clearing")
	}
	btn, _ := g.CreateWidget("Button")
	if err := g.SetWidgetSprite(btn, "main", "blink"); !isKind(err, ErrUnsupported) {
		t.Errorf("sprite on a Button: %v", err)
	}
}

func TestAngleBracketsFollowSelection(t *testing.T) {
	g, _, _, b, _, _ := flowMenu(t)
	bank, _ := testSprites(t)
	g.SetSpritesheets(bank)
	if err := g.SetDirectionalFlowAngleBracketSprite("ul", "main", "still"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetDirectionalFlowAngleBracketSprite("LR", "main", "still"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetDirectionalFlowAngleBracketSprite("middle", "main", "still"); !isKind(err, ErrPrecondition) {
		t.Errorf("bad corner: %v", err)
	}
	if err := g.SetDirectionalFlowAngleBracketSprite("UL", "main", "nope"); !isKind(err, ErrNotFound) {
		t.Errorf("bad sprite: %v", err)
	}
	g.SetWidgetPosition(b, "0px", "100px")

	g.Animate(0)
	if br := g.AngleBrackets(); br != nil {
		t.Fatalf("brackets shown without flow: %v", br)
	}

	g.HandleInput(press("down"))
	g.Animate(0)
	br := g.AngleBrackets()
	if len(br) != 2 {
		t.Fatalf("got %d brackets", len(br))
	}
	if br[0].Position != (mgl.Vec2{0, 0}) || br[1].Position != (mgl.Vec2{116, 26}) {
		t.Fatalf("positions = %v, %v", br[0].Position, br[1].Position)
	}

	g.HandleInput(press("down"))
	g.Animate(60 * time.Millisecond)
	if y := g.AngleBrackets()[0].Position[1]; y <= 0 || y >= 100 {
		t.Errorf("mid glide y = %v", y)
	}
	g.Animate(time.Second)
	if y := g.AngleBrackets()[0].Position[1]; y != 100 {
		t.Errorf("glide ended at y = %v", y)
	}

	g.HandleInput(&fakeControls{mouse: mgl.Vec2{5, 5}})
	g.Animate(0)
	if g.AngleBrackets() != nil {
		t.Error("brackets shown after the mouse took over")
	}
}

func TestAnimationSurvivesDeletedSibling(t *testing.T) {
	g, h := newTestGUI(t)
	bank, _ := testSprites(t)
	g.SetSpritesheets(bank)
	m, _ := g.AddMenu("Main", nil)
	var pics []WidgetID
	for _, n := range []string{"p1", "p2", "p3"} {
		id := addWidget(t, g, m.Root(), "Picture", n)
		g.SetWidgetSprite(id, "main", "blink")
		pics = append(pics, id)
	}
	g.SetGUI("Main", false, false)
	h.DoString(`function kill(id) deleteWidget(id) end`)
	g.ConnectSignal(pics[0], "AnimationFinished", h.Function("kill"))

	g.Animate(0)
	g.Animate(100 * time.Millisecond)
	if g.widgetExists(pics[0]) {
		t.Fatal("handler did not delete p1")
	}
	for i, id := range pics[1:] {
		a := g.widgetSprites[g.store.find(id).ptr]
		if a == nil || a.Frame() != 1 {
			t.Errorf("p%d frame = %v, want 1", i+2, a)
		}
	}
}
