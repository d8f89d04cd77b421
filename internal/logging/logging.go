// Package logging configures the hclog logger shared by the rbfviz packages.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

const Name = "rbfviz"

// New returns a named logger at the given level ("trace" through "error",
// "off"). Unknown levels fall back to info. A nil writer means stderr.
func New(level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  lvl,
		Output: w,
	})
}

// OrNull returns l, or a logger that discards everything when l is nil.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
