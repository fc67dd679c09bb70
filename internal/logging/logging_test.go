package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beastly713/hashira/internal/config"
)

func TestSetup_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(config.LoggingConfig{Level: "info", Format: "json"}, &buf))

	log.Debug().Msg("hidden")
	log.Info().Str("file", "a.json").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "a.json", line["file"])
	assert.Equal(t, "info", line["level"])
}

func TestSetup_Console(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(config.LoggingConfig{Level: "warn", Format: "console"}, &buf))

	log.Warn().Msg("careful")
	assert.Contains(t, buf.String(), "careful")
}

func TestSetup_BadLevel(t *testing.T) {
	err := Setup(config.LoggingConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Error(t, err)
}
