package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger. Report text never goes through it.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "handstats",
	})
}
