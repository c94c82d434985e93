package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zerolog.Disabled, ParseLevel("off"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestJSONLoggerCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "info", false, true)

	log.Debug().Msg("hidden")
	log.Info().Str("email", "ana@example.com").Msg("Progress log created")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, serviceName, line["service"])
	require.Equal(t, "Progress log created", line["message"])
	require.Equal(t, "ana@example.com", line["email"])
}
