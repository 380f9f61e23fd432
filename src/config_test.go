package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Config.WindowTitle != "Computer Wars" || c.Config.Language != "system" {
		t.Errorf("config = %+v", c.Config)
	}
	if c.Video.WindowWidth != 1280 || c.Video.WindowHeight != 720 || c.Video.Fullscreen || !c.Video.VSync {
		t.Errorf("video = %+v", c.Video)
	}
	if c.Sound.SampleRate != 44100 || c.Sound.SoundVolume != 80 {
		t.Errorf("sound = %+v", c.Sound)
	}
	if c.Input.MouseMoveThreshold != 2 {
		t.Errorf("threshold = %v", c.Input.MouseMoveThreshold)
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	user := "[Sound]\nMasterVolume = 150\nSampleRate = 1000\n[Video]\nWindowWidth = 100\nFullscreen = true\n"
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Sound.MasterVolume != 100 || c.Sound.SampleRate != 44100 || c.Video.WindowWidth != minWindowWidth {
		t.Errorf("not clamped: sound %+v video %+v", c.Sound, c.Video)
	}
	if !c.Video.Fullscreen {
		t.Error("user override lost")
	}
	if v := c.IniFile.Section("Sound").Key("MasterVolume").String(); v != "100" {
		t.Errorf("INI not updated: %q", v)
	}

	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	again, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Sound.MasterVolume != 100 || !again.Video.Fullscreen || again.Video.WindowWidth != minWindowWidth {
		t.Errorf("reloaded sound %+v video %+v", again.Sound, again.Video)
	}
	if v := again.IniFile.Section("Video").Key("Fullscreen").String(); v != "1" {
		t.Errorf("booleans should be saved as 1/0, got %q", v)
	}
}

func TestApplyFlags(t *testing.T) {
	c, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	c.Video.Fullscreen = true
	c.applyFlags(map[string]string{
		"-gui":       "other/gui.json",
		"-windowed":  "true",
		"-width":     "100",
		"-height":    "900",
		"-setvolume": "250",
	})
	if c.Config.GUI != "other/gui.json" {
		t.Errorf("gui = %q", c.Config.GUI)
	}
	if c.Video.Fullscreen || c.Video.WindowWidth != 1280 || c.Video.WindowHeight != 900 {
		t.Errorf("video = %+v", c.Video)
	}
	if c.Sound.MasterVolume != 100 {
		t.Errorf("volume = %d", c.Sound.MasterVolume)
	}
	if v := c.IniFile.Section("Config").Key("GUI").String(); v != "data/gui.json" {
		t.Errorf("flags leaked into the INI file: %q", v)
	}
}

func TestQueryValues(t *testing.T) {
	c, _ := loadConfig("")
	if err := c.SetValueUpdate("Debug.Verbose", true); err != nil {
		t.Fatal(err)
	}
	if v, err := c.GetValue("Debug.Verbose"); err != nil || v != true {
		t.Errorf("Debug.Verbose = %v, %v", v, err)
	}
	if v := c.IniFile.Section("Debug").Key("Verbose").String(); v != "1" {
		t.Errorf("INI value = %q", v)
	}
	if err := c.SetValueUpdate("Debug.Missing", 1); err == nil {
		t.Error("unknown key accepted")
	}
	if err := SetValue(c, "Video.WindowWidth", "wide"); err == nil {
		t.Error("non-numeric width accepted")
	}
	if v, _ := c.GetValue("Video.WindowWidth"); v != int64(1280) {
		t.Errorf("width = %v", v)
	}
}

func TestProcessCommandLine(t *testing.T) {
	got := processCommandLine([]string{
		"-headless", "-frames", "10", "-lang", "fr", "stray", "-width", "-800", "-gui",
	})
	want := map[string]string{
		"-headless": "true",
		"-frames":   "10",
		"-lang":     "fr",
		"-width":    "-800",
		"-gui":      "true",
	}
	if len(got) != len(want) {
		t.Fatalf("flags = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseGUIConfig(t *testing.T) {
	data := `{
		"reserve": 50,
		"controls": {
			"up": "up",
			"select": {"name": "select", "sound": {"object": "system", "sound": "ok"}}
		},
		"firstMenu": "Title",
		"menus": ["Title", "Options"],
		"scripts": ["menus.lua", "/abs/extra.lua"]
	}`
	cfg, err := parseGUIConfig([]byte(data), "data")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reserve != 50 || cfg.FirstMenu != "Title" || len(cfg.Menus) != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Controls[DIR_up].Name != "up" || cfg.Controls[DIR_down].Name != "" {
		t.Errorf("controls = %+v", cfg.Controls)
	}
	if cfg.Controls[selectSound].Sound != (SoundBinding{"system", "ok"}) {
		t.Errorf("select sound = %+v", cfg.Controls[selectSound].Sound)
	}
	if cfg.Scripts[0] != filepath.Join("data", "menus.lua") || cfg.Scripts[1] != "/abs/extra.lua" {
		t.Errorf("scripts = %v", cfg.Scripts)
	}

	small, _ := parseGUIConfig([]byte(`{"reserve": 1}`), "")
	if small.Reserve != defaultReserve {
		t.Errorf("reserve = %d", small.Reserve)
	}
	if _, err := parseGUIConfig([]byte(`{`), ""); !isKind(err, ErrResource) {
		t.Errorf("bad JSON: %v", err)
	}
}

func TestSaveReserve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gui.json")
	os.WriteFile(path, []byte(`{"reserve": 50, "firstMenu": "Title"}`), 0644)
	cfg, err := LoadGUIConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SaveReserve(75, true); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if r := gjson.GetBytes(data, "reserve").Int(); r != 75 {
		t.Errorf("reserve = %d", r)
	}
	if gjson.GetBytes(data, "firstMenu").String() != "Title" {
		t.Error("other keys were lost")
	}
	cfg.SaveReserve(10, false)
	data, _ = os.ReadFile(path)
	if r := gjson.GetBytes(data, "reserve").Int(); r != 75 {
		t.Errorf("reserve shrank to %d", r)
	}
	if err := (&GUIConfig{}).SaveReserve(1, true); !isKind(err, ErrPrecondition) {
		t.Errorf("unloaded config: %v", err)
	}
}
