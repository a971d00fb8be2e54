package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE = "pkg"
	EVENT   = "event"
	USER    = "user"
	STATUS  = "status"
	METHOD  = "method"
	PATH    = "path"
	LATENCY = "latency"
	CLIENT  = "client"
)

// output is shared by every logger derived from log.Logger, including the
// package loggers created before Configure runs
var output = &switchWriter{out: os.Stderr}

type switchWriter struct {
	mu  sync.RWMutex
	out io.Writer
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.out.Write(p)
}

func (w *switchWriter) set(out io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.out = out
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// Configure sets the global log level and writes logs to stderr. format
// "console" produces human readable output, anything else JSON.
func Configure(level, format string) error {
	return ConfigureOutput(level, format, os.Stderr)
}

// ConfigureOutput is Configure writing to out
func ConfigureOutput(level, format string, out io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stderr}
	}
	output.set(out)
	return nil
}

// NewPackageLogger returns a new logger with pkg={pkg}
func NewPackageLogger(pkg string) zerolog.Logger {
	return log.With().Str(PACKAGE, pkg).Logger()
}

// RequestLogger logs one event per request once the handler chain has completed.
// userOf extracts the requesting user's name, if any.
func RequestLogger(userOf func(c *gin.Context) string) gin.HandlerFunc {
	logger := NewPackageLogger("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str(METHOD, c.Request.Method).
			Str(PATH, path).
			Int(STATUS, status).
			Dur(LATENCY, time.Since(start)).
			Str(CLIENT, c.ClientIP()).
			Str(USER, userOf(c)).
			Msg("request")
	}
}
