package main

import (
	_ "embed" // Support for go:embed resources
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

//go:embed resources/defaultConfig.ini
var defaultConfig []byte

var validSampleRates = []int32{22050, 44100, 48000}

const (
	minWindowWidth  = 320
	minWindowHeight = 240
)

// Config is the engine configuration, save/config.ini layered over the
// embedded defaults.
type Config struct {
	Def     string
	IniFile *ini.File
	Config  struct {
		Language     string `ini:"Language"`
		GUI          string `ini:"GUI"`
		Script       string `ini:"Script"`
		Fonts        string `ini:"Fonts"`
		Audio        string `ini:"Audio"`
		Spritesheets string `ini:"Spritesheets"`
		Languages    string `ini:"Languages"`
		Theme        string `ini:"Theme"`
		WindowTitle  string `ini:"WindowTitle"`
	} `ini:"Config"`
	Video struct {
		WindowWidth  int32 `ini:"WindowWidth"`
		WindowHeight int32 `ini:"WindowHeight"`
		Fullscreen   bool  `ini:"Fullscreen"`
		VSync        bool  `ini:"VSync"`
	} `ini:"Video"`
	Sound struct {
		SampleRate   int32 `ini:"SampleRate"`
		MasterVolume int   `ini:"MasterVolume"`
		SoundVolume  int   `ini:"SoundVolume"`
		MusicVolume  int   `ini:"MusicVolume"`
	} `ini:"Sound"`
	Input struct {
		Controls           string  `ini:"Controls"`
		MouseMoveThreshold float32 `ini:"MouseMoveThreshold"`
	} `ini:"Input"`
	Debug struct {
		LogFile string `ini:"LogFile"`
		Verbose bool   `ini:"Verbose"`
	} `ini:"Debug"`
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func loadConfig(def string) (*Config, error) {
	options := ini.LoadOptions{
		Insensitive:                false,
		IgnoreInlineComment:        false,
		SkipUnrecognizableLines:    true,
		AllowShadows:               false,
		UnparseableSections:        []string{},
		AllowPythonMultilineValues: false,
	}

	var iniFile *ini.File
	var err error
	if !fileExists(def) {
		iniFile, err = ini.LoadSources(options, defaultConfig)
	} else {
		iniFile, err = ini.LoadSources(options, defaultConfig, def)
	}
	if err != nil {
		return nil, resourceErr(err, "failed to read config %q", def)
	}
	var c Config
	c.Def = def

	for _, section := range iniFile.Sections() {
		sectionName := section.Name()
		if sectionName == ini.DEFAULT_SECTION {
			continue
		}
		for _, key := range section.Keys() {
			fullKey := strings.ReplaceAll(sectionName, " ", "_") + "." + strings.ReplaceAll(key.Name(), " ", "_")
			if err := assignField(&c, parseQueryPath(fullKey), key.Value()); err != nil {
				fmt.Printf("Warning: Failed to assign key [%s]: %v\n", fullKey, err)
			}
		}
	}

	c.IniFile = iniFile
	c.normalize()
	return &c, nil
}

// normalize clamps values the engine cannot run with, writing the fixed
// value back into the INI file so the next save carries it.
func (c *Config) normalize() {
	clampVolume := func(query string, v *int) {
		if *v < 0 || *v > 100 {
			n := int(clampF64(float64(*v), 0, 100))
			c.SetValueUpdate(query, n)
		}
	}
	clampVolume("Sound.MasterVolume", &c.Sound.MasterVolume)
	clampVolume("Sound.SoundVolume", &c.Sound.SoundVolume)
	clampVolume("Sound.MusicVolume", &c.Sound.MusicVolume)

	valid := false
	for _, r := range validSampleRates {
		if c.Sound.SampleRate == r {
			valid = true
			break
		}
	}
	if !valid {
		fmt.Printf("Warning: Invalid sample rate %d, using 44100\n", c.Sound.SampleRate)
		c.SetValueUpdate("Sound.SampleRate", 44100)
	}

	if c.Video.WindowWidth < minWindowWidth {
		c.SetValueUpdate("Video.WindowWidth", minWindowWidth)
	}
	if c.Video.WindowHeight < minWindowHeight {
		c.SetValueUpdate("Video.WindowHeight", minWindowHeight)
	}
	if c.Input.MouseMoveThreshold < 0 {
		c.SetValueUpdate("Input.MouseMoveThreshold", 0)
	}
}

// applyFlags lets command line options override the loaded values. The
// overrides are not written back to the INI file.
func (c *Config) applyFlags(flags map[string]string) {
	for flag, query := range map[string]string{
		"-gui":    "Config.GUI",
		"-script": "Config.Script",
		"-lang":   "Config.Language",
	} {
		if v, ok := flags[flag]; ok && v != "" {
			SetValue(c, query, v)
		}
	}
	if _, ok := flags["-windowed"]; ok {
		c.Video.Fullscreen = false
	}
	if v, ok := flags["-width"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= minWindowWidth {
			c.Video.WindowWidth = int32(n)
		}
	}
	if v, ok := flags["-height"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= minWindowHeight {
			c.Video.WindowHeight = int32(n)
		}
	}
	if v, ok := flags["-setvolume"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sound.MasterVolume = int(clampF64(float64(n), 0, 100))
		}
	}
}

// sysSet copies what the running system needs out of the config.
func (c *Config) sysSet() {
	c.applyFlags(sys.cmdFlags)
	_, sys.nosound = sys.cmdFlags["-nosound"]
	_, sys.headless = sys.cmdFlags["-headless"]
	if v, ok := sys.cmdFlags["-frames"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sys.frames = n
		}
	}
	sys.windowTitle = c.Config.WindowTitle
	sys.windowSize = [2]int32{c.Video.WindowWidth, c.Video.WindowHeight}
}

func (c *Config) GetValue(query string) (interface{}, error) {
	return GetValue(c, query)
}

func (c *Config) SetValueUpdate(query string, value interface{}) error {
	return SetValueUpdate(c, c.IniFile, query, value)
}

func (c *Config) Save(file string) error {
	return SaveINI(c.IniFile, file)
}
