//go:build windows

package main

import (
	"syscall"
	"unicode/utf16"
	"unsafe"
)

const localeNameMaxLength = 85

var procGetUserDefaultLocaleName = syscall.NewLazyDLL("kernel32.dll").NewProc("GetUserDefaultLocaleName")

// osPreferredLanguage asks Win32 for the user locale, e.g. "en-US".
func osPreferredLanguage() string {
	if procGetUserDefaultLocaleName.Find() != nil {
		return ""
	}
	buf := make([]uint16, localeNameMaxLength)
	n, _, _ := procGetUserDefaultLocaleName.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	// n counts the terminating NUL.
	if n <= 1 || int(n) > len(buf) {
		return ""
	}
	return string(utf16.Decode(buf[:n-1]))
}
