//go:build darwin

package main

import (
	"os/exec"
	"strings"
)

// osPreferredLanguage returns the first entry of AppleLanguages, e.g. "en-US".
func osPreferredLanguage() string {
	out, err := exec.Command("/usr/bin/defaults", "read", "-g", "AppleLanguages").Output()
	if err != nil {
		return ""
	}
	// The output is a plist array: ( "en-US", "fr-FR" )
	for _, f := range strings.FieldsFunc(string(out), func(r rune) bool {
		return r == '(' || r == ')' || r == ',' || r == '"' || r == ' ' || r == '\n' || r == '\t'
	}) {
		return f
	}
	return ""
}
