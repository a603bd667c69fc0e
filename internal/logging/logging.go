// Package logging builds the logrus logger shared by every mode.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger at the given level writing to out.
// An unknown level falls back to info.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// NewForTUI logs to path, or discards when path is empty, because the
// terminal belongs to the TUI. The returned closer closes the file.
func NewForTUI(level, path string) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		return New(level, io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(level, f), f, nil
}
