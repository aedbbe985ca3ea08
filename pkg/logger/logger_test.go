package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json", Output: &buf})

	l.Info().Msg("hidden")
	l.Warn().Str("slug", "hydrafacial").Msg("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "hydrafacial", entry["slug"])
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "loud", Format: "json", Output: &buf})

	l.Debug().Msg("debug")
	assert.Zero(t, buf.Len())

	l.Info().Msg("info")
	assert.Contains(t, buf.String(), `"message":"info"`)
}
