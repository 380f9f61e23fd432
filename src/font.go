package main

import (
	"os"
	"path/filepath"
	"strings"

	findfont "github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"github.com/tidwall/gjson"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontSource resolves font names to faces at a given pixel size.
type FontSource interface {
	Has(name string) bool
	Face(name string, size uint32) font.Face
}

type faceKey struct {
	name string
	size uint32
}

// FontBank holds the TrueType fonts listed in fonts.json. The built-in
// 7x13 bitmap face is always available under the empty name.
type FontBank struct {
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
	log   *Logger
}

func NewFontBank(log *Logger) *FontBank {
	return &FontBank{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
		log:   log,
	}
}

// Load reads {"<name>": "<ttf path>", ...}. Paths that do not exist are
// looked up among the system's installed fonts.
func (b *FontBank) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read font list %q", path)
	}
	dir := filepath.Dir(path)
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		p := v.String()
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if err := b.LoadFont(k.String(), p); err != nil {
			b.log.Errorf("Could not load font %q: %v", k.String(), err)
		}
		return true
	})
	return nil
}

func (b *FontBank) LoadFont(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(filepath.Base(path))
		if ferr != nil {
			return resourceErr(ferr, "font file %q not found", path)
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read font %q", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return resourceErr(err, "could not parse font %q", path)
	}
	b.fonts[name] = f
	for k := range b.faces {
		if k.name == name {
			delete(b.faces, k)
		}
	}
	return nil
}

func (b *FontBank) Has(name string) bool {
	if name == "" {
		return true
	}
	_, ok := b.fonts[name]
	return ok
}

// Face returns a cached face. Unknown names fall back to the bitmap face.
func (b *FontBank) Face(name string, size uint32) font.Face {
	f := b.fonts[name]
	if f == nil || size == 0 {
		return basicfont.Face7x13
	}
	key := faceKey{name, size}
	if face, ok := b.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	b.faces[key] = face
	return face
}

func (b *FontBank) Names() []string {
	names := make([]string, 0, len(b.fonts))
	for n := range b.fonts {
		names = append(names, n)
	}
	return names
}

func fixedToF(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// measureString returns the advance width of s.
func measureString(face font.Face, s string) float32 {
	return fixedToF(font.MeasureString(face, s))
}

func lineHeight(face font.Face) float32 {
	return fixedToF(face.Metrics().Height)
}

// wrapText breaks s into lines no wider than maxWidth, splitting at spaces.
// A single word wider than maxWidth is kept on its own line.
func wrapText(face font.Face, s string, maxWidth float32) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			try := word
			if line != "" {
				try = line + " " + word
			}
			if line != "" && measureString(face, try) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = try
		}
		lines = append(lines, line)
	}
	return lines
}
