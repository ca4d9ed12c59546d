// Package logger hands out module loggers that share one leveled backend.
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"golang.org/x/term"
)

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{module} %{shortfunc} ▶ %{level:.4s}%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{module} %{shortfunc} %{level:.4s} %{message}`,
	)

	once    sync.Once
	leveled logging.LeveledBackend
)

// DefaultLevel is used until SetLevel is called.
const DefaultLevel = logging.INFO

func setup() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := plainFormat
	if term.IsTerminal(int(os.Stderr.Fd())) {
		format = colorFormat
	}
	leveled = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveled.SetLevel(DefaultLevel, "")
	logging.SetBackend(leveled)
}

// NewLogger returns the logger for the given module name, e.g. "[evm]".
func NewLogger(module string) *logging.Logger {
	once.Do(setup)
	return logging.MustGetLogger(module)
}

// SetLevel changes the level of every module logger. Accepted names are the
// go-logging ones (critical, error, warning, notice, info, debug), case-insensitive.
func SetLevel(name string) error {
	once.Do(setup)
	level, err := logging.LogLevel(strings.ToUpper(name))
	if err != nil {
		return err
	}
	leveled.SetLevel(level, "")
	return nil
}

// IsDebug reports whether debug records are currently emitted.
func IsDebug() bool {
	once.Do(setup)
	return leveled.IsEnabledFor(logging.DEBUG, "")
}
