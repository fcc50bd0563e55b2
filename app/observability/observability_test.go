package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "warn", LogFormat: "json", Environment: "test"}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "game_id", "g-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "g-1", entry["game_id"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "debug", LogFormat: "text"}, &buf)
	require.NoError(t, err)

	logger.Debug("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=tenpin")
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger(config.ObservabilityConfig{LogLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewLogger(config.ObservabilityConfig{LogFormat: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	obs, err := New(config.ObservabilityConfig{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.NotNil(t, obs.Logger)
	assert.NotNil(t, obs.Tracer)

	families, err := obs.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
