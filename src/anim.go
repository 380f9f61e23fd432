package main

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // Spritesheet image formats
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
	_ "github.com/lukegb/dds"
	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	"github.com/tidwall/gjson"
)

// spriteFrames holds the frames of one named sprite.
type spriteFrames struct {
	frames    []image.Rectangle
	durations []time.Duration
	offset    mgl.Vec2
}

// Spritesheet is one image holding every frame of a set of animated sprites.
type Spritesheet struct {
	path    string
	img     *image.RGBA
	sprites map[string]*spriteFrames
}

// LoadSpritesheet reads a spritesheet definition:
//
//	{"path": "sheet.png", "sprites": {"name": {"frames": [[x,y,w,h],...],
//	 "durations": [ms,...], "offset": [x,y]}}}
func LoadSpritesheet(path string, log *Logger) (*Spritesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, resourceErr(err, "could not read spritesheet %q", path)
	}
	return parseSpritesheet(data, filepath.Dir(path), true, log)
}

func parseSpritesheet(data []byte, baseDir string, loadImage bool, log *Logger) (*Spritesheet, error) {
	if !gjson.ValidBytes(data) {
		return nil, resourceErr(nil, "spritesheet definition is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	imgPath := root.Get("path")
	if !imgPath.Exists() {
		return nil, resourceErr(nil, "no path to a spritesheet graphic was provided")
	}
	s := &Spritesheet{path: imgPath.String(), sprites: make(map[string]*spriteFrames)}
	if baseDir != "" && !filepath.IsAbs(s.path) {
		s.path = filepath.Join(baseDir, s.path)
	}
	if loadImage {
		img, err := loadImageRGBA(s.path)
		if err != nil {
			return nil, err
		}
		s.img = img
	}
	root.Get("sprites").ForEach(func(k, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		sf := &spriteFrames{}
		v.Get("frames").ForEach(func(_, f gjson.Result) bool {
			a := f.Array()
			if len(a) == 4 {
				x, y := int(a[0].Int()), int(a[1].Int())
				sf.frames = append(sf.frames, image.Rect(x, y, x+int(a[2].Int()), y+int(a[3].Int())))
			}
			return true
		})
		v.Get("durations").ForEach(func(_, d gjson.Result) bool {
			sf.durations = append(sf.durations, time.Duration(d.Int())*time.Millisecond)
			return true
		})
		if len(sf.frames) != len(sf.durations) {
			log.Warnf("The number of frames for sprite %q was %d and the number of durations was %d.",
				k.String(), len(sf.frames), len(sf.durations))
		}
		if off := v.Get("offset").Array(); len(off) == 2 {
			sf.offset = mgl.Vec2{float32(off[0].Float()), float32(off[1].Float())}
		}
		s.sprites[k.String()] = sf
		return true
	})
	return s, nil
}

// loadImageRGBA decodes any registered format. Radiance HDR images are
// tone mapped down to 8 bits per channel.
func loadImageRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, resourceErr(err, "could not open image %q", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, resourceErr(err, "could not decode image %q", path)
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if hi, ok := img.(hdr.Image); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := hi.HDRAt(x, y).HDRRGBA()
				out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{
					R: toneMap(r), G: toneMap(g), B: toneMap(bl), A: 255,
				})
			}
		}
		return out, nil
	}
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

// Reinhard operator.
func toneMap(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	return uint8(255 * v / (1 + v))
}

func (s *Spritesheet) Image() *image.RGBA { return s.img }

func (s *Spritesheet) HasSprite(sprite string) bool {
	_, ok := s.sprites[sprite]
	return ok
}

func (s *Spritesheet) FrameCount(sprite string) int {
	if sf := s.sprites[sprite]; sf != nil {
		return len(sf.frames)
	}
	return 0
}

func (s *Spritesheet) FrameRect(sprite string, frame int) (image.Rectangle, bool) {
	sf := s.sprites[sprite]
	if sf == nil || frame < 0 || frame >= len(sf.frames) {
		return image.Rectangle{}, false
	}
	return sf.frames[frame], true
}

func (s *Spritesheet) FrameDuration(sprite string, frame int) time.Duration {
	sf := s.sprites[sprite]
	if sf == nil || frame < 0 || frame >= len(sf.durations) {
		return 0
	}
	return sf.durations[frame]
}

func (s *Spritesheet) Offset(sprite string) mgl.Vec2 {
	if sf := s.sprites[sprite]; sf != nil {
		return sf.offset
	}
	return mgl.Vec2{}
}

// SpriteSource resolves spritesheets by name.
type SpriteSource interface {
	Spritesheet(name string) *Spritesheet
}

// SpritesheetBank is the set of named spritesheets the GUI can draw from.
type SpritesheetBank struct {
	sheets map[string]*Spritesheet
	log    *Logger
}

func NewSpritesheetBank(log *Logger) *SpritesheetBank {
	return &SpritesheetBank{sheets: make(map[string]*Spritesheet), log: log}
}

// Load reads {"<name>": "<definition path>", ...}. Sheets that fail to load
// are logged and skipped.
func (b *SpritesheetBank) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read spritesheet list %q", path)
	}
	dir := filepath.Dir(path)
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		p := v.String()
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		sheet, err := LoadSpritesheet(p, b.log)
		if err != nil {
			b.log.Errorf("Could not load spritesheet %q: %v", k.String(), err)
			return true
		}
		b.sheets[k.String()] = sheet
		return true
	})
	return nil
}

func (b *SpritesheetBank) Add(name string, s *Spritesheet) { b.sheets[name] = s }

func (b *SpritesheetBank) Spritesheet(name string) *Spritesheet {
	if b == nil {
		return nil
	}
	return b.sheets[name]
}

// AnimatedSprite plays one sprite of a spritesheet.
type AnimatedSprite struct {
	sheet   *Spritesheet
	sprite  string
	frame   int
	acc     time.Duration
	errored bool
	log     *Logger
}

func NewAnimatedSprite(sheet *Spritesheet, sprite string, log *Logger) *AnimatedSprite {
	return &AnimatedSprite{sheet: sheet, sprite: sprite, log: log}
}

func (a *AnimatedSprite) Spritesheet() *Spritesheet { return a.sheet }
func (a *AnimatedSprite) Sprite() string            { return a.sprite }
func (a *AnimatedSprite) Frame() int                { return a.frame }

func (a *AnimatedSprite) SetSpritesheet(s *Spritesheet) {
	a.sheet = s
	a.frame = 0
	a.acc = 0
	a.errored = false
}

func (a *AnimatedSprite) SetSprite(sprite string) {
	if sprite != a.sprite {
		a.sprite = sprite
		a.frame = 0
		a.acc = 0
		a.errored = false
	}
}

// SetFrame jumps to frame n, wrapping to 0 when n is out of range.
func (a *AnimatedSprite) SetFrame(n int) {
	if a.sheet == nil {
		return
	}
	if n < 0 || n >= a.sheet.FrameCount(a.sprite) {
		n = 0
	}
	a.frame = n
}

// Animate advances by dt. It returns true once the last frame is showing,
// or when there is nothing to animate.
func (a *AnimatedSprite) Animate(dt time.Duration) bool {
	if a.sheet == nil {
		return true
	}
	count := a.sheet.FrameCount(a.sprite)
	if count == 0 {
		if !a.errored && a.log != nil {
			a.log.Errorf("Attempted to animate non-existent sprite %q.", a.sprite)
			a.errored = true
		}
		return true
	}
	if a.sheet.FrameDuration(a.sprite, a.frame) > 0 {
		a.acc += dt
		for steps := 0; steps < count; steps++ {
			d := a.sheet.FrameDuration(a.sprite, a.frame)
			if d <= 0 || a.acc < d {
				break
			}
			a.acc -= d
			a.SetFrame(a.frame + 1)
		}
	}
	return a.frame == count-1
}

// Size of the current frame.
func (a *AnimatedSprite) Size() mgl.Vec2 {
	if a.sheet == nil {
		return mgl.Vec2{}
	}
	r, _ := a.sheet.FrameRect(a.sprite, a.frame)
	return mgl.Vec2{float32(r.Dx()), float32(r.Dy())}
}

// FrameImage returns the current frame cut from the sheet's image.
func (a *AnimatedSprite) FrameImage() image.Image {
	if a.sheet == nil || a.sheet.img == nil {
		return nil
	}
	r, ok := a.sheet.FrameRect(a.sprite, a.frame)
	if !ok {
		return nil
	}
	return a.sheet.img.SubImage(r)
}

func (a *AnimatedSprite) Offset() mgl.Vec2 {
	if a.sheet == nil {
		return mgl.Vec2{}
	}
	return a.sheet.Offset(a.sprite)
}

// blankImage allocates a transparent placeholder of at least 1x1.
func blankImage(size mgl.Vec2) *image.RGBA {
	w, h := int(size[0]), int(size[1])
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
