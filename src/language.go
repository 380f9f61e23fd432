package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/language"
	"gopkg.in/ini.v1"
)

// Keys starting with this are shown as-is, minus the prefix.
const translationOverride = '~'

// Translator maps caption keys to display text in the active language.
type Translator interface {
	Get(key string) string
	Language() string
}

// LanguageDictionary holds the known languages and the string map of the
// active one. The first language listed in its file becomes active on load.
type LanguageDictionary struct {
	order   []string
	files   map[string]string
	current string
	strings map[string]string
	log     *Logger
}

func NewLanguageDictionary(log *Logger) *LanguageDictionary {
	return &LanguageDictionary{files: make(map[string]string), log: log}
}

// Load reads a language list file: {"<id>": "<path>", ...}. Relative paths
// are resolved against the list file's directory.
func (d *LanguageDictionary) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return resourceErr(err, "could not read language list %q", path)
	}
	return d.LoadBytes(data, filepath.Dir(path))
}

func (d *LanguageDictionary) LoadBytes(data []byte, baseDir string) error {
	if !gjson.ValidBytes(data) {
		return resourceErr(nil, "language list is not valid JSON")
	}
	d.order = nil
	d.files = make(map[string]string)
	d.current = ""
	d.strings = nil
	first := ""
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		id := k.String()
		if id == "" || v.Type != gjson.String {
			return true
		}
		p := v.String()
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		if d.AddLanguage(id, p) && first == "" {
			first = id
		}
		return true
	})
	if first == "" {
		return resourceErr(nil, "no languages were defined in the language list")
	}
	if !d.SetLanguage(first) {
		return resourceErr(nil, "could not load the first language %q", first)
	}
	return nil
}

// Save writes the language list back out, active language first.
func (d *LanguageDictionary) Save(path string) error {
	data := []byte("{}")
	ids := d.Languages()
	if d.current != "" {
		ids = append([]string{d.current}, removeString(ids, d.current)...)
	}
	var err error
	for _, id := range ids {
		if data, err = sjson.SetBytes(data, escapeJSONPath(id), d.files[id]); err != nil {
			return resourceErr(err, "could not serialise language %q", id)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (d *LanguageDictionary) AddLanguage(id, path string) bool {
	if id == d.current && id != "" {
		d.log.Warnf("Attempted to replace the path of the current language %q.", id)
		return false
	}
	if id == "" {
		d.log.Warnf("Attempted to add a language with a blank ID.")
		return false
	}
	if _, ok := d.files[id]; !ok {
		d.order = append(d.order, id)
	}
	d.files[id] = path
	return true
}

func (d *LanguageDictionary) RemoveLanguage(id string) bool {
	if _, ok := d.files[id]; !ok {
		d.log.Warnf("Attempted to remove non-existent language %q.", id)
		return false
	}
	if id == d.current {
		d.log.Warnf("Attempted to remove the current language %q.", id)
		return false
	}
	delete(d.files, id)
	d.order = removeString(d.order, id)
	return true
}

// SetLanguage loads and activates id. An empty id clears the active language.
func (d *LanguageDictionary) SetLanguage(id string) bool {
	if id == "" {
		d.current = ""
		d.strings = nil
		return true
	}
	path, ok := d.files[id]
	if !ok {
		d.log.Warnf("Attempted to switch to non-existent language %q.", id)
		return false
	}
	m, err := loadStringMap(path, id)
	if err != nil {
		d.log.Errorf("Failed to load the string map for language %q: %v", id, err)
		return false
	}
	d.current = id
	d.strings = m
	return true
}

func (d *LanguageDictionary) Language() string { return d.current }

// Languages lists known language IDs in the order they were added.
func (d *LanguageDictionary) Languages() []string {
	return append([]string(nil), d.order...)
}

// Get translates key. Unknown keys, or no active language, return the key.
func (d *LanguageDictionary) Get(key string) string {
	if key != "" && key[0] == translationOverride {
		return key[1:]
	}
	if d == nil || d.strings == nil {
		return key
	}
	if s, ok := d.strings[key]; ok {
		return s
	}
	d.log.Debugf("No %q translation for %q.", d.current, key)
	return key
}

// ClosestLanguage returns the known language ID that best matches pref, a
// locale string such as "en_GB.UTF-8". Returns "" if nothing matches.
func (d *LanguageDictionary) ClosestLanguage(pref string) string {
	if len(d.order) == 0 {
		return ""
	}
	pref = strings.TrimSpace(pref)
	if i := strings.IndexAny(pref, ".@"); i >= 0 {
		pref = pref[:i]
	}
	pref = strings.ReplaceAll(pref, "_", "-")
	want, err := language.Parse(pref)
	if err != nil {
		return ""
	}
	var tags []language.Tag
	var ids []string
	for _, id := range d.order {
		if t, err := language.Parse(id); err == nil {
			tags = append(tags, t)
			ids = append(ids, id)
		}
	}
	if len(tags) == 0 {
		return ""
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return ""
	}
	return ids[idx]
}

// loadStringMap reads one language's strings. JSON files are flat
// key/value objects; INI files use a [<lang>.Strings] section, falling back
// to [Strings] and then [en.Strings].
func loadStringMap(path, lang string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		f, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, path)
		if err != nil {
			return nil, err
		}
		sec, err := f.GetSection(resolveLangSectionName(f, "Strings", lang))
		if err != nil {
			return map[string]string{}, nil
		}
		m := make(map[string]string)
		for _, k := range sec.Keys() {
			m[k.Name()] = k.Value()
		}
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, Error("string map is not valid JSON")
	}
	m := make(map[string]string)
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			m[k.String()] = v.String()
		}
		return true
	})
	return m, nil
}

// resolveLangSectionName picks the section to read for a logical section
// name, honouring language prefixes.
func resolveLangSectionName(f *ini.File, section, lang string) string {
	if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
		if _, err := f.GetSection(lang + "." + section); err == nil {
			return lang + "." + section
		}
	}
	if _, err := f.GetSection(section); err == nil {
		return section
	}
	if _, err := f.GetSection("en." + section); err == nil {
		return "en." + section
	}
	return section
}

func removeString(list []string, s string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// escapeJSONPath escapes the characters gjson/sjson treat as path syntax.
func escapeJSONPath(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(key)
}
