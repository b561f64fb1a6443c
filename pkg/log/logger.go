package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// Verbosity levels, most verbose first.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var ErrUnknownLevel = errors.New("log: unknown level")

var loggingLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

// The logger format. No color codes: the sink is often a file or a pipe.
var format = logging.MustStringFormatter(
	`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var (
	// The formatted sink and the leveled backend wrapping it
	formattedBackend logging.Backend
	leveledBackend   logging.LeveledBackend

	// Per-module overrides, re-applied whenever the sink changes
	moduleLevels = map[string]logging.Level{}
)

// Logger is the subset of *logging.Logger the tracer logs through.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for module. Its output follows the module level, if set.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// Override the backend output sink. The default and per-module levels are preserved.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	formattedBackend = logging.NewBackendFormatter(backend, format)
	applyLevels(level)
}

// applyLevels rebuilds the leveled backend from the default level and the overrides
func applyLevels(level logging.Level) {
	leveledBackend = logging.AddModuleLevel(formattedBackend)
	leveledBackend.SetLevel(level, "")
	for module, moduleLevel := range moduleLevels {
		leveledBackend.SetLevel(moduleLevel, module)
	}
	logging.SetBackend(leveledBackend)
}

// Set logger verbosity for every module without an override.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// SetModuleLevel overrides the verbosity of a single named logger.
func SetModuleLevel(module string, level Level) {
	moduleLevels[module] = toLoggingLevel(level)
	leveledBackend.SetLevel(moduleLevels[module], module)
}

// ResetModuleLevels drops every per-module override.
func ResetModuleLevels() {
	moduleLevels = map[string]logging.Level{}
	applyLevels(leveledBackend.GetLevel(""))
}

// Enabled reports whether messages from module at level reach the sink.
func Enabled(module string, level Level) bool {
	return leveledBackend.IsEnabledFor(toLoggingLevel(level), module)
}

// ParseLevel converts a case-insensitive level name such as "debug" to a Level.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if name == levelName {
			return level, nil
		}
	}
	return Notice, fmt.Errorf("%w %q", ErrUnknownLevel, name)
}

// ParseModuleLevel parses a "module=level" override.
func ParseModuleLevel(spec string) (string, Level, error) {
	module, levelName, ok := strings.Cut(spec, "=")
	module = strings.TrimSpace(module)
	if !ok || module == "" {
		return "", Notice, fmt.Errorf("log: module override %q is not of the form module=level", spec)
	}
	level, err := ParseLevel(levelName)
	if err != nil {
		return "", Notice, err
	}
	return module, level, nil
}

func (level Level) String() string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(level))
}

func toLoggingLevel(level Level) logging.Level {
	if l, ok := loggingLevels[level]; ok {
		return l
	}
	return logging.NOTICE
}

// Stdout carries rendered images, so logs go to stderr.
func init() {
	SetSink(os.Stderr)
}
