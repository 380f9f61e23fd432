package main

import (
	_ "embed" // Support for go:embed resources
	"os"
	"path"
	"runtime"
	"strings"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

//go:embed resources/defaultControls.json
var defaultControls []byte

// sys
// The only instance of a System struct.
// Do not create more than 1.
var sys = System{
	windowSize: [2]int32{1280, 720},
	cmdFlags:   make(map[string]string),
}

// System owns the configuration and every subsystem the GUI engine is
// wired to.
type System struct {
	cfg      Config
	cmdFlags map[string]string
	log      *Logger
	logFile  *os.File

	registry *Registry
	scripts  *ScriptHost
	gui      *GUI
	guiCfg   *GUIConfig
	audio    *AudioBank
	fonts    *FontBank
	sheets   *SpritesheetBank
	langs    *LanguageDictionary
	input    *UserInput
	theme    *Theme

	windowTitle string
	windowSize  [2]int32
	nosound     bool
	headless    bool
	// Frames to run before quitting, 0 for no limit.
	frames    int
	frameNo   int
	gameEnd   bool
	lastMouse mgl.Vec2
	mouseSeen bool
}

// Check if the application is running inside a macOS app bundle
func isRunningInsideAppBundle(exePath string) bool {
	return runtime.GOOS == "darwin" && strings.Contains(exePath, ".app")
}

func chdirToAppBundleRoot() {
	exePath, err := os.Executable()
	if err != nil {
		return
	}
	if isRunningInsideAppBundle(exePath) {
		os.Chdir(path.Dir(exePath))
		os.Chdir("../../../")
	}
}

// init builds every subsystem from the loaded config, runs the main script
// and opens the first menu. Missing optional resources are logged; a missing
// GUI configuration or a failing script is returned.
func (s *System) init() error {
	w, f := openLogFile(s.cfg.Debug.LogFile)
	s.logFile = f
	s.log = NewLogger(w, s.cfg.Debug.Verbose)
	s.log.Infof("Starting %s.", s.windowTitle)

	s.registry = newRegistry()

	var err error
	if s.theme, err = LoadTheme(s.cfg.Config.Theme); err != nil {
		s.log.Warnf("%v, using the default theme.", err)
		s.theme, _ = LoadTheme("")
	}

	s.fonts = NewFontBank(s.log.With("font"))
	s.loadOptional("fonts", s.cfg.Config.Fonts, s.fonts.Load)

	s.sheets = NewSpritesheetBank(s.log.With("sprite"))
	s.loadOptional("spritesheets", s.cfg.Config.Spritesheets, s.sheets.Load)

	s.audio = NewAudioBank(int(s.cfg.Sound.SampleRate), float64(s.cfg.Sound.MasterVolume), s.log.With("audio"))
	s.audio.SetKindVolumes(float64(s.cfg.Sound.SoundVolume), float64(s.cfg.Sound.MusicVolume))
	s.loadOptional("audio", s.cfg.Config.Audio, s.audio.Load)
	if !s.nosound && !s.headless {
		if err := s.audio.Start(); err != nil {
			s.log.Errorf("%v, continuing without sound.", err)
		}
	}

	s.langs = NewLanguageDictionary(s.log.With("lang"))
	s.loadOptional("languages", s.cfg.Config.Languages, s.langs.Load)
	s.selectLanguage()

	s.input = NewUserInput(s.log.With("input"))
	if fileExists(s.cfg.Input.Controls) {
		err = s.input.Load(s.cfg.Input.Controls)
	} else {
		err = s.input.LoadBytes(defaultControls)
	}
	if err != nil {
		s.log.Errorf("Could not load controls: %v", err)
	}

	if s.guiCfg, err = LoadGUIConfig(s.cfg.Config.GUI); err != nil {
		return err
	}
	size := mgl.Vec2{float32(s.windowSize[0]), float32(s.windowSize[1])}
	s.gui = newGUI(s.registry, s.log.With("gui"), size, s.guiCfg.Reserve)
	s.theme.Apply(s.gui.Canvas())
	s.gui.SetLanguageDictionary(s.langs)
	s.gui.SetSpritesheets(s.sheets)
	s.gui.SetSoundPlayer(s.audio)
	s.gui.SetFonts(s.fonts)

	s.scripts = NewScriptHost(s.log.With("lua"))
	s.gui.SetScripts(s.scripts)
	luaRegister(s.scripts.State(), "quit", func(*lua.LState) int {
		s.gameEnd = true
		return 0
	})
	if fileExists(s.cfg.Config.Script) {
		if err := s.scripts.DoFile(s.cfg.Config.Script); err != nil {
			return err
		}
	}
	return s.gui.LoadMenus(s.guiCfg)
}

// loadOptional runs load when path names an existing file.
func (s *System) loadOptional(what, path string, load func(string) error) {
	if !fileExists(path) {
		s.log.Debugf("No %s file at %q.", what, path)
		return
	}
	if err := load(path); err != nil {
		s.log.Errorf("Could not load %s: %v", what, err)
	}
}

// selectLanguage activates the configured language. "system" picks the
// known language closest to the OS locale; nothing matching leaves the
// first listed language active.
func (s *System) selectLanguage() {
	want := strings.TrimSpace(s.cfg.Config.Language)
	if strings.EqualFold(want, "system") {
		pref := osPreferredLanguage()
		want = s.langs.ClosestLanguage(pref)
		if want == "" {
			s.log.Debugf("No language matches the system locale %q.", pref)
			return
		}
	}
	if want != "" && !s.langs.SetLanguage(want) {
		s.log.Warnf("Language %q is not available.", want)
	}
}

// tick runs one frame: input sampling, directional flow and menu callbacks,
// then animation.
func (s *System) tick(sample InputSample) {
	if !s.mouseSeen {
		s.lastMouse = sample.Pos
		s.mouseSeen = true
	}
	// Jitter under the threshold does not count as moving the mouse.
	if sample.Pos.Sub(s.lastMouse).Len() < s.cfg.Input.MouseMoveThreshold {
		sample.Pos = s.lastMouse
	}
	s.lastMouse = sample.Pos

	c := s.gui.Canvas()
	hit := c.WidgetAt(sample.Pos)
	sample.OverWidget = hit != nil && hit.Enabled()
	s.input.Update(sample)
	c.HandleMouse(sample.Pos, sample.Mouse["Left"])
	s.gui.HandleInput(s.input)
	s.gui.Animate(sample.Dt)
	s.frameNo++
	if s.frames > 0 && s.frameNo >= s.frames {
		s.gameEnd = true
	}
}

// runHeadless ticks without a window until the frame limit is reached or a
// script ends the game.
func (s *System) runHeadless(dt time.Duration) {
	for !s.gameEnd {
		s.tick(InputSample{Dt: dt, Pos: s.lastMouse})
		if s.frames == 0 && s.frameNo >= 1 {
			// Without a limit a headless run would never end.
			s.gameEnd = true
		}
	}
}

func (s *System) shutdown() {
	s.gameEnd = true
	if s.guiCfg != nil && s.gui != nil {
		if err := s.guiCfg.SaveReserve(s.gui.Reserve()); err != nil {
			s.log.Warnf("Could not save the widget reserve: %v", err)
		}
	}
	if s.audio != nil {
		s.audio.Close()
	}
	if s.scripts != nil {
		s.scripts.Close()
	}
	if s.cfg.IniFile != nil {
		if err := s.cfg.Save(s.cfg.Def); err != nil && s.log != nil {
			s.log.Warnf("Could not save config: %v", err)
		}
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}
