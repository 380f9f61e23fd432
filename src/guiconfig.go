package main

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var controlSlotNames = [...]string{"up", "down", "left", "right", "select"}

// GUIConfig is the content of gui.json: how many widget records to reserve,
// the navigation controls and their sounds, and where the menus come from.
type GUIConfig struct {
	Reserve   int
	Controls  [5]controlBinding
	FirstMenu string
	Menus     []string
	Scripts   []string
	path      string
}

func LoadGUIConfig(path string) (*GUIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, resourceErr(err, "could not read GUI configuration %q", path)
	}
	cfg, err := parseGUIConfig(data, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

func parseGUIConfig(data []byte, baseDir string) (*GUIConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, resourceErr(nil, "GUI configuration is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	cfg := &GUIConfig{Reserve: defaultReserve}
	if v := root.Get("reserve"); v.Exists() && v.Int() > 1 {
		cfg.Reserve = int(v.Int())
	}
	for i, slot := range controlSlotNames {
		c := root.Get("controls." + slot)
		if !c.Exists() {
			continue
		}
		if c.Type == gjson.String {
			cfg.Controls[i].Name = c.String()
			continue
		}
		cfg.Controls[i] = controlBinding{
			Name: c.Get("name").String(),
			Sound: SoundBinding{
				Object: c.Get("sound.object").String(),
				Sound:  c.Get("sound.sound").String(),
			},
		}
	}
	cfg.FirstMenu = root.Get("firstMenu").String()
	for _, m := range root.Get("menus").Array() {
		cfg.Menus = append(cfg.Menus, m.String())
	}
	for _, s := range root.Get("scripts").Array() {
		p := s.String()
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		cfg.Scripts = append(cfg.Scripts, p)
	}
	return cfg, nil
}

// SaveReserve writes the reserve count back into the file the
// configuration was loaded from, leaving everything else as it was. If the
// store had to grow, the larger capacity is written instead.
func (cfg *GUIConfig) SaveReserve(capacity int, grown bool) error {
	if cfg.path == "" {
		return precondition("GUI configuration was not loaded from a file")
	}
	if grown && capacity > cfg.Reserve {
		cfg.Reserve = capacity
	}
	data, err := os.ReadFile(cfg.path)
	if err != nil {
		return resourceErr(err, "could not read GUI configuration %q", cfg.path)
	}
	if data, err = sjson.SetBytes(data, "reserve", cfg.Reserve); err != nil {
		return resourceErr(err, "could not update reserve in %q", cfg.path)
	}
	return os.WriteFile(cfg.path, data, 0644)
}
