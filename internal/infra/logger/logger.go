package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance.
var Log = logrus.New()

// Init configures the global logger. Production and staging log JSON,
// everything else logs human readable text.
func Init(level, environment string) {
	Log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", level, err)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	switch strings.ToLower(environment) {
	case "production", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("Logger initialized (level=%s, environment=%s)", Log.GetLevel(), environment)
}

// SetOutput redirects the global logger, e.g. to stderr for the CLI.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// GooseLogger adapts logrus to the logger interface of the migration tool.
type GooseLogger struct{}

func (GooseLogger) Fatalf(format string, v ...any) {
	Log.Fatalf(strings.TrimSpace(format), v...)
}

func (GooseLogger) Printf(format string, v ...any) {
	Log.Infof(strings.TrimSpace(format), v...)
}
