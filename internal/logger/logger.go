package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init and writes text
// at info level until then.
var Log = logrus.New()

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT
// ("json" or text). Call it once from main.
func Init() {
	Log = New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(out)
	return l
}

func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Discard is a logger for tests and callers that do not care about output.
func Discard() *logrus.Logger {
	return New("panic", "text", io.Discard)
}
