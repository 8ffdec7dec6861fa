package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Dir   string
	Level string
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile *os.File
	logPath string
)

// Setup points the global logger at <Dir>/abook.log. The terminal belongs
// to the UI, so nothing is ever logged to stdout or stderr.
func Setup(cfg Config) (func() error, error) {
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		setDiscard()
		return nil, err
	}

	path := filepath.Join(cfg.Dir, "abook.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		setDiscard()
		return nil, err
	}

	level := ParseLevel(cfg.Level)
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})

	mu.Lock()
	global = slog.New(h)
	logFile = f
	logPath = path
	mu.Unlock()

	L().Info("logger.initialized", "path", path, "level", level.String())

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return cerr
	}

	return cleanup, nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile = nil
	logPath = ""
}
