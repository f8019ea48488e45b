// Package logging builds the service logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// New returns a logger writing to stderr at the given level. Unknown
// levels fall back to info. In gin release mode the output is logfmt.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	if gin.Mode() == gin.ReleaseMode {
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "todo-api",
	})
}
