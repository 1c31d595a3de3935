package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable before InitLogger runs so packages can log from tests.
var Log = logrus.New()

// InitLogger configures Log and the package-level logrus logger with the
// same output, format and level.
func InitLogger(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	for _, l := range []*logrus.Logger{Log, logrus.StandardLogger()} {
		// Output to stdout instead of the default stderr
		l.SetOutput(os.Stdout)
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(lvl)
	}
}

// Silence discards all output. Used by tests.
func Silence() {
	Log.SetOutput(io.Discard)
	logrus.SetOutput(io.Discard)
}
