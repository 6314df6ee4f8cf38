// Package logger wraps logrus so the rest of the codebase does not depend
// on the logging library directly.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger
type Entry = logrus.Entry
type Fields = logrus.Fields

var root = logrus.StandardLogger()

// Configure sets the global log level and output. When the MCP server runs
// over stdio, output must go to stderr so the JSON-RPC stream on stdout is
// not corrupted.
func Configure(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	root.SetOutput(out)
	root.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	root.SetLevel(lvl)
}

// Root returns the shared logger.
func Root() *Logger {
	return root
}

// Named returns an entry tagged with a component field.
func Named(component string) *Entry {
	entry := logrus.NewEntry(root)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}
