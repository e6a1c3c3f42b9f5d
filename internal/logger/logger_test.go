package logger_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/symtab/internal/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.DebugLevel, logger.ParseLevel("DEBUG"))
	require.Equal(t, logger.WarnLevel, logger.ParseLevel("warn"))
	require.Equal(t, logger.ErrorLevel, logger.ParseLevel("Error"))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel(""))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("verbose"))

	require.Equal(t, "WARN", logger.WarnLevel.String())
	require.Equal(t, "UNKNOWN", logger.Level(42).String())
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.InfoLevel)

	l.Debug("hidden")
	l.Infof("loaded %d symbols", 3)
	l.Warn("careful")

	require.Equal(t, "[INFO] loaded 3 symbols\n[WARN] careful\n", buf.String())
}

func TestLoggerZapFields(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.DebugLevel)

	l.Zap().Debug("symbol defined", zap.String("key", "foo"))

	require.Equal(t, "[DEBUG] symbol defined {\"key\": \"foo\"}\n", buf.String())
}
