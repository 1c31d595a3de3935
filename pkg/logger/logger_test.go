package logger

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"warn", "warn", logrus.WarnLevel},
		{"unknown falls back to info", "nonsense", logrus.InfoLevel},
	}

	std := logrus.StandardLogger()
	t.Cleanup(func() {
		std.SetOutput(os.Stderr)
		std.SetFormatter(&logrus.TextFormatter{})
		std.SetLevel(logrus.InfoLevel)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level)

			for _, l := range []*logrus.Logger{Log, std} {
				assert.Equal(t, tt.want, l.GetLevel())
				_, ok := l.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok)
				assert.Equal(t, os.Stdout, l.Out)
			}
		})
	}
}

func TestSilence(t *testing.T) {
	InitLogger("info")
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	Silence()
	assert.Equal(t, io.Discard, Log.Out)
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
}
