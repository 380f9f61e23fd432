package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/tidwall/gjson"
)

const (
	audioOutLen          = 2048
	audioFrequency       = 44100
	audioResampleQuality = 1
)

// SoundPlayer plays a named sound of a named audio object.
type SoundPlayer interface {
	Play(object, sound string) bool
	Stop(object string)
	SetVolume(object string, v float64)
}

// ------------------------------------------------------------------
// Loop Streamer

// StreamLooper loops a seekable stream between two sample positions.
type StreamLooper struct {
	s         beep.StreamSeeker
	loopstart int
	loopend   int
	err       error
}

func newStreamLooper(s beep.StreamSeeker, loopstart, loopend int) *StreamLooper {
	sl := &StreamLooper{s: s, loopstart: loopstart, loopend: loopend}
	if sl.loopstart < 0 || sl.loopstart >= s.Len() {
		sl.loopstart = 0
	}
	if sl.loopend <= sl.loopstart || sl.loopend > s.Len() {
		sl.loopend = s.Len()
	}
	return sl
}

func (l *StreamLooper) Stream(samples [][2]float64) (n int, ok bool) {
	if l.err != nil {
		return 0, false
	}
	for len(samples) > 0 {
		untilEnd := l.loopend - l.s.Position()
		if untilEnd <= 0 {
			if err := l.s.Seek(l.loopstart); err != nil {
				l.err = err
				return n, n > 0
			}
			continue
		}
		toStream := len(samples)
		if untilEnd < toStream {
			toStream = untilEnd
		}
		sn, sok := l.s.Stream(samples[:toStream])
		n += sn
		if sn < toStream || !sok {
			l.err = l.s.Err()
			return n, n > 0
		}
		samples = samples[sn:]
	}
	return n, true
}

func (l *StreamLooper) Err() error { return l.s.Err() }

// ------------------------------------------------------------------
// Audio objects

type audioKind int32

const (
	AK_sound audioKind = iota
	AK_music
)

type audioEntry struct {
	kind     audioKind
	path     string
	offset   time.Duration
	loopTo   time.Duration
	loopWhen time.Duration
	buf      *beep.Buffer
}

// AudioObject is one audio.json document: a set of named sounds and music
// tracks sharing a volume.
type AudioObject struct {
	volume  float64
	entries map[string]*audioEntry
	music   *beep.Ctrl
	current string
}

// AudioBank mixes every audio object's output into one stream.
type AudioBank struct {
	mu         sync.Mutex
	objects    map[string]*AudioObject
	mixer      *beep.Mixer
	sampleRate beep.SampleRate
	master     float64
	// Volume of all sounds and of all music, 0 to 100.
	kindVolume [2]float64
	started    bool
	log        *Logger
}

func NewAudioBank(sampleRate int, master float64, log *Logger) *AudioBank {
	if sampleRate <= 0 {
		sampleRate = audioFrequency
	}
	return &AudioBank{
		objects:    make(map[string]*AudioObject),
		mixer:      &beep.Mixer{},
		sampleRate: beep.SampleRate(sampleRate),
		master:     master,
		kindVolume: [2]float64{100, 100},
		log:        log,
	}
}

// Start opens the output device and begins playing the mixer.
func (b *AudioBank) Start() error {
	if err := speaker.Init(b.sampleRate, audioOutLen); err != nil {
		return resourceErr(err, "could not open audio device")
	}
	speaker.Play(b.mixer)
	b.started = true
	return nil
}

func (b *AudioBank) lock() {
	if b.started {
		speaker.Lock()
	}
}

func (b *AudioBank) unlock() {
	if b.started {
		speaker.Unlock()
	}
}

// Load reads {"<object>": "<audio.json path>", ...}.
func (b *AudioBank) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read audio list %q", path)
	}
	dir := filepath.Dir(path)
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		p := v.String()
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if err := b.LoadObject(k.String(), p); err != nil {
			b.log.Errorf("Could not load audio object %q: %v", k.String(), err)
		}
		return true
	})
	return nil
}

// LoadObject reads one audio.json:
//
//	{"volume": 50, "<name>": {"type": "sound"|"music", "path": "...",
//	 "offset": ms, "loopto": ms, "loopwhen": ms}}
func (b *AudioBank) LoadObject(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read %q", path)
	}
	if !gjson.ValidBytes(data) {
		return resourceErr(nil, "%q is not valid JSON", path)
	}
	dir := filepath.Dir(path)
	obj := &AudioObject{volume: 100, entries: make(map[string]*audioEntry)}
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		if k.String() == "volume" {
			obj.volume = clampF64(v.Float(), 0, 100)
			return true
		}
		e := &audioEntry{
			path:     v.Get("path").String(),
			offset:   time.Duration(v.Get("offset").Int()) * time.Millisecond,
			loopTo:   time.Duration(v.Get("loopto").Int()) * time.Millisecond,
			loopWhen: time.Duration(v.Get("loopwhen").Int()) * time.Millisecond,
		}
		if strings.EqualFold(v.Get("type").String(), "music") {
			e.kind = AK_music
		}
		if e.path == "" {
			b.log.Warnf("Audio %q of object %q has no path.", k.String(), name)
			return true
		}
		if !filepath.IsAbs(e.path) {
			e.path = filepath.Join(dir, e.path)
		}
		if e.kind == AK_sound {
			buf, err := decodeToBuffer(e.path)
			if err != nil {
				b.log.Errorf("Could not load sound %q: %v", k.String(), err)
				return true
			}
			e.buf = buf
		}
		obj.entries[k.String()] = e
		return true
	})
	b.mu.Lock()
	b.objects[name] = obj
	b.mu.Unlock()
	return nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var s beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".flac":
		s, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, Error("unsupported audio format " + filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	return s, format, nil
}

func decodeToBuffer(path string) (*beep.Buffer, error) {
	s, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

func (b *AudioBank) volumeFor(obj *AudioObject, kind audioKind, s beep.Streamer) *effects.Volume {
	v := obj.volume / 100 * b.kindVolume[kind] / 100 * b.master / 100
	vol := &effects.Volume{Streamer: s, Base: 2, Silent: v <= 0}
	if v > 0 {
		vol.Volume = math.Log2(v)
	}
	return vol
}

// Play starts a sound, or switches the object's music track. Unknown
// objects or names are logged and return false.
func (b *AudioBank) Play(object, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	obj := b.objects[object]
	if obj == nil {
		b.log.Errorf("Attempted to play %q from non-existent audio object %q.", name, object)
		return false
	}
	e := obj.entries[name]
	if e == nil {
		b.log.Errorf("Audio object %q has no sound or music called %q.", object, name)
		return false
	}
	if !b.started {
		return true
	}
	if e.kind == AK_sound {
		start := e.buf.Format().SampleRate.N(e.offset)
		if start >= e.buf.Len() {
			start = 0
		}
		src := b.volumeFor(obj, AK_sound, e.buf.Streamer(start, e.buf.Len()))
		b.lock()
		b.mixer.Add(beep.Resample(audioResampleQuality, e.buf.Format().SampleRate, b.sampleRate, src))
		b.unlock()
		return true
	}
	if obj.current == name && obj.music != nil {
		return true
	}
	b.stopMusic(obj)
	s, format, err := decodeFile(e.path)
	if err != nil {
		b.log.Errorf("Could not open music %q: %v", name, err)
		return false
	}
	var stream beep.Streamer = s
	if e.loopWhen > 0 {
		stream = newStreamLooper(s, format.SampleRate.N(e.loopTo), format.SampleRate.N(e.loopWhen))
	}
	if start := format.SampleRate.N(e.offset); start > 0 && start < s.Len() {
		s.Seek(start)
	}
	obj.music = &beep.Ctrl{Streamer: beep.Resample(audioResampleQuality, format.SampleRate, b.sampleRate,
		b.volumeFor(obj, AK_music, stream))}
	obj.current = name
	b.lock()
	b.mixer.Add(obj.music)
	b.unlock()
	return true
}

func (b *AudioBank) stopMusic(obj *AudioObject) {
	if obj.music == nil {
		return
	}
	b.lock()
	obj.music.Streamer = nil
	b.unlock()
	obj.music = nil
	obj.current = ""
}

// Stop halts the object's music.
func (b *AudioBank) Stop(object string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if obj := b.objects[object]; obj != nil {
		b.stopMusic(obj)
	}
}

// SetVolume sets an object's volume, 0 to 100. It applies to sounds played
// afterwards.
func (b *AudioBank) SetVolume(object string, v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if obj := b.objects[object]; obj != nil {
		obj.volume = clampF64(v, 0, 100)
	}
}

// SetKindVolumes sets the volume of every sound and of every music track,
// 0 to 100, on top of each object's own volume.
func (b *AudioBank) SetKindVolumes(sound, music float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kindVolume = [2]float64{clampF64(sound, 0, 100), clampF64(music, 0, 100)}
}

// Close stops every music track and releases the output device.
func (b *AudioBank) Close() {
	b.mu.Lock()
	for _, obj := range b.objects {
		b.stopMusic(obj)
	}
	b.mu.Unlock()
	if b.started {
		b.started = false
		speaker.Close()
	}
}

func (b *AudioBank) Has(object, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	obj := b.objects[object]
	return obj != nil && obj.entries[name] != nil
}

func clampF64(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
