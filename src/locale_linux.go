//go:build linux

package main

import (
	"os"
	"strings"
)

// osPreferredLanguage returns the first usable locale from the environment,
// e.g. "en_GB.UTF-8". LANGUAGE may list several, separated by colons.
func osPreferredLanguage() string {
	for _, k := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		for _, v := range strings.Split(os.Getenv(k), ":") {
			v = strings.TrimSpace(v)
			if v != "" && v != "C" && v != "POSIX" {
				return v
			}
		}
	}
	return ""
}
