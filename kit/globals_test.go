package kit

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, zerolog.WarnLevel)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Str("path", "a/b").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "a/b", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestGetLogger(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, GetLogger(zerolog.ErrorLevel).GetLevel())
	assert.NotEmpty(t, DefaultConfigPath)
}
