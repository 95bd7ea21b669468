package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_CachedPerComponent(t *testing.T) {
	a := NewLogger("tracker-test")
	b := NewLogger("tracker-test")
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, "tracker-test", a.Data["component"])
}

func TestConfigure_AppliesLevelToExistingLoggers(t *testing.T) {
	t.Setenv("TRADE_OVERLAY_LOG_LEVEL", "")
	logger := NewLogger("configure-test")

	Configure(Config{Level: "debug", Format: FormatConfig{StructuredToStderr: "never"}})
	assert.Equal(t, logrus.DebugLevel, logger.Logger.GetLevel())

	Configure(Config{Level: "warn", Format: FormatConfig{StructuredToStderr: "never"}})
	assert.Equal(t, logrus.WarnLevel, logger.Logger.GetLevel())
}

func TestEnvLevelOverridesConfig(t *testing.T) {
	t.Setenv("TRADE_OVERLAY_LOG_LEVEL", "error")
	logger := logrus.New()
	apply(logger, Config{Level: "debug", Format: FormatConfig{StructuredToStderr: "never"}})
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "game window detected",
				Data: logrus.Fields{
					"component": "tracker",
					"pid":       4242,
				},
			},
			want: []string{"[INFO]", "[tracker]", "game window detected", "pid=4242"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "settings malformed",
				Data:    logrus.Fields{"component": "settings"},
			},
			want:    []string{"[WARN]", "settings malformed"},
			notWant: []string{"[settings]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, string(out), nw)
			}
		})
	}
}

func TestTextFormatter_SortedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{DisableTimestamp: true}})

	logger.WithFields(logrus.Fields{"b": 2, "a": 1, "component": "x"}).Info("m")

	line := buf.String()
	assert.True(t, strings.Index(line, "a=1") < strings.Index(line, "b=2"), line)
}
