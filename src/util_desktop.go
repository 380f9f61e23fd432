package main

import (
	"io"
	"os"

	"github.com/sqweek/dialog"
)

// Log writer implementation
func NewLogWriter() io.Writer {
	return os.Stderr
}

// Message box implementation
func ShowErrorDialog(message string) {
	if sys.headless {
		os.Stderr.WriteString(message + "\n")
		return
	}
	dialog.Message("%s", message).Title("Computer Wars Error").Error()
}
