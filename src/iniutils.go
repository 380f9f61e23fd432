package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// -------------------------------------------------------------------
// Helper Functions
// -------------------------------------------------------------------

// queryPart represents a single part of a query path
type queryPart struct {
	name  string
	index *string
}

// parseQueryPath parses a query string such as "Sound.Volume" or
// "Video.Size[1]" into a slice of queryPart
func parseQueryPath(query string) []queryPart {
	var parts []queryPart
	for _, part := range strings.Split(query, ".") {
		if strings.Contains(part, "[") && strings.HasSuffix(part, "]") {
			name := part[:strings.Index(part, "[")]
			index := part[strings.Index(part, "[")+1 : len(part)-1]
			parts = append(parts, queryPart{name: name, index: &index})
		} else {
			parts = append(parts, queryPart{name: part, index: nil})
		}
	}
	return parts
}

// findFieldByINITag finds the exported field whose ini tag matches tag,
// ignoring case and treating spaces as underscores.
func findFieldByINITag(v reflect.Value, tag string) (reflect.Value, reflect.StructField, bool) {
	norm := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	}
	needle := norm(tag)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if iniTag := f.Tag.Get("ini"); iniTag != "" && norm(iniTag) == needle {
			return v.Field(i), f, true
		}
	}
	return reflect.Value{}, reflect.StructField{}, false
}

// setFieldValue converts value into the field's kind. Strings are parsed;
// values of a matching Go type are assigned directly.
func setFieldValue(fieldVal reflect.Value, value interface{}, keyPath string) error {
	if !fieldVal.CanSet() {
		return fmt.Errorf("cannot set field %s", keyPath)
	}
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Type().ConvertibleTo(fieldVal.Type()) &&
		rv.Kind() != reflect.String {
		fieldVal.Set(rv.Convert(fieldVal.Type()))
		return nil
	}
	str := strings.TrimSpace(fmt.Sprintf("%v", value))
	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(str)
	case reflect.Bool:
		switch strings.ToLower(str) {
		case "1", "true", "yes", "on":
			fieldVal.SetBool(true)
		case "0", "false", "no", "off", "":
			fieldVal.SetBool(false)
		default:
			return fmt.Errorf("invalid boolean %q for %s", str, keyPath)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fieldVal.Type() == reflect.TypeOf(time.Duration(0)) {
			ms, err := strconv.ParseFloat(str, 64)
			if err != nil {
				return fmt.Errorf("invalid duration %q for %s", str, keyPath)
			}
			fieldVal.SetInt(int64(ms * float64(time.Millisecond)))
			return nil
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(str, 64)
			if ferr != nil {
				return fmt.Errorf("invalid integer %q for %s", str, keyPath)
			}
			n = int64(f)
		}
		fieldVal.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q for %s", str, keyPath)
		}
		fieldVal.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q for %s", str, keyPath)
		}
		fieldVal.SetFloat(f)
	case reflect.Slice:
		items := strings.Split(str, ",")
		s := reflect.MakeSlice(fieldVal.Type(), 0, len(items))
		for _, it := range items {
			it = strings.TrimSpace(it)
			if it == "" {
				continue
			}
			e := reflect.New(fieldVal.Type().Elem()).Elem()
			if err := setFieldValue(e, it, keyPath); err != nil {
				return err
			}
			s = reflect.Append(s, e)
		}
		fieldVal.Set(s)
	case reflect.Array:
		items := strings.Split(str, ",")
		for i := 0; i < fieldVal.Len() && i < len(items); i++ {
			if err := setFieldValue(fieldVal.Index(i), strings.TrimSpace(items[i]), keyPath); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s for %s", fieldVal.Kind(), keyPath)
	}
	return nil
}

// assignField assigns a value to a struct field based on query parts
func assignField(structPtr interface{}, parts []queryPart, value interface{}) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("structPtr must be a non-nil pointer")
	}
	v = v.Elem()
	for i, part := range parts {
		if v.Kind() != reflect.Struct {
			return fmt.Errorf("'%s' is not a section", part.name)
		}
		fieldVal, _, found := findFieldByINITag(v, part.name)
		if !found {
			return fmt.Errorf("field '%s' not found", part.name)
		}
		if part.index != nil {
			idx, err := strconv.Atoi(*part.index)
			if err != nil || (fieldVal.Kind() != reflect.Array && fieldVal.Kind() != reflect.Slice) ||
				idx < 0 || idx >= fieldVal.Len() {
				return fmt.Errorf("invalid index '%s' for field '%s'", *part.index, part.name)
			}
			fieldVal = fieldVal.Index(idx)
		}
		if i == len(parts)-1 {
			return setFieldValue(fieldVal, value, part.name)
		}
		v = fieldVal
	}
	return nil
}

// GetValue retrieves a value from the struct based on the query and returns it as an interface{}
func GetValue(structPtr interface{}, query string) (interface{}, error) {
	parts := parseQueryPath(query)
	current := reflect.ValueOf(structPtr)
	for _, part := range parts {
		if current.Kind() == reflect.Ptr {
			if current.IsNil() {
				return nil, fmt.Errorf("value not set for query: '%s'", query)
			}
			current = current.Elem()
		}
		if current.Kind() != reflect.Struct {
			return nil, fmt.Errorf("unsupported kind '%s' in query '%s'", current.Kind(), query)
		}
		fieldVal, _, found := findFieldByINITag(current, part.name)
		if !found {
			return nil, fmt.Errorf("field '%s' not found for query '%s'", part.name, query)
		}
		current = fieldVal
		if part.index != nil {
			idx, err := strconv.Atoi(*part.index)
			if err != nil || idx < 0 || idx >= current.Len() {
				return nil, fmt.Errorf("invalid index '%s' for field '%s' in query '%s'", *part.index, part.name, query)
			}
			current = current.Index(idx)
		}
	}
	switch current.Kind() {
	case reflect.Int32, reflect.Int, reflect.Int64:
		return current.Int(), nil
	case reflect.Float32, reflect.Float64:
		return current.Float(), nil
	case reflect.String:
		return current.String(), nil
	case reflect.Bool:
		return current.Bool(), nil
	default:
		return current.Interface(), nil
	}
}

// SetValue assigns a value to a struct field based on the query
func SetValue(structPtr interface{}, query string, val interface{}) error {
	parts := parseQueryPath(query)
	if len(parts) == 0 {
		return fmt.Errorf("invalid query: '%s'", query)
	}
	return assignField(structPtr, parts, val)
}

// SetValueUpdate sets a value and updates the INI file accordingly
func SetValueUpdate(obj interface{}, iniFile *ini.File, query string, value interface{}) error {
	if err := SetValue(obj, query, value); err != nil {
		return err
	}
	var valStr string
	switch v := value.(type) {
	case nil:
		valStr = ""
	case bool:
		if v {
			valStr = "1"
		} else {
			valStr = "0"
		}
	case []string:
		valStr = strings.Join(v, ", ")
	default:
		valStr = fmt.Sprintf("%v", v)
	}
	return updateINIFile(iniFile, query, valStr)
}

// updateINIFile writes section.key = value, creating either if needed.
func updateINIFile(iniFile *ini.File, query string, value string) error {
	if iniFile == nil {
		return fmt.Errorf("iniFile is not initialized")
	}
	i := strings.LastIndex(query, ".")
	if i < 0 {
		return fmt.Errorf("query '%s' has no section", query)
	}
	section, key := query[:i], query[i+1:]
	if j := strings.Index(key, "["); j >= 0 {
		return fmt.Errorf("cannot write indexed key '%s' to the INI file", key)
	}
	iniFile.Section(section).Key(key).SetValue(value)
	return nil
}

// SaveINI saves the INI file to the specified path
func SaveINI(iniFile *ini.File, filePath string) error {
	if iniFile == nil {
		return fmt.Errorf("iniFile is not initialized")
	}
	// Normalize all true/false to 1/0
	for _, section := range iniFile.Sections() {
		for _, key := range section.Keys() {
			if key.Value() == "true" {
				key.SetValue("1")
			} else if key.Value() == "false" {
				key.SetValue("0")
			}
		}
	}
	return iniFile.SaveTo(filePath)
}
