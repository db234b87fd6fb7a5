package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func init() {
	level := slog.LevelInfo
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			panic(fmt.Sprintf("invalid log level: %s", s))
		}
	}

	if level == slog.LevelDebug {
		slog.SetDefault(newDevLogger(os.Stdout, modulePrefix()))
		slog.Debug("debug logging enabled")
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("app", "medprice-web"))
}

// newDevLogger writes colored, source-annotated lines for local work.
func newDevLogger(w io.Writer, prefix string) *slog.Logger {
	replacer := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = cleanSourcePath(source.File, prefix)
			}
		}
		if err, ok := a.Value.Any().(error); ok {
			aErr := tint.Err(err)
			aErr.Key = a.Key
			return aErr
		}
		return a
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       slog.LevelDebug,
		TimeFormat:  time.TimeOnly,
		ReplaceAttr: replacer,
		AddSource:   true,
	}))
}

// modulePrefix returns "/<last module path element>/", used to trim source paths.
func modulePrefix() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		return "/" + filepath.Base(info.Main.Path) + "/"
	}
	if wd, err := os.Getwd(); err == nil {
		return "/" + filepath.Base(wd) + "/"
	}
	return "/medprice-web/"
}

// cleanSourcePath keeps the part of filePath after the module directory.
func cleanSourcePath(filePath, prefix string) string {
	if _, rest, ok := strings.Cut(filePath, prefix); ok {
		return rest
	}
	if idx := strings.LastIndex(filePath, "/src/"); idx != -1 {
		return filePath[idx+len("/src/"):]
	}
	return filePath
}
