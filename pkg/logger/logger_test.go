package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jhoicas/tiendas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("descartado")
	log.Named("retail").Warn().Int("store_code", 10000).Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "debe haber una sola línea JSON")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "retail", entry["component"])
	assert.Equal(t, "visible", entry["message"])
	assert.EqualValues(t, 10000, entry["store_code"])
}

func TestNop_NoEscribe(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Error().Msg("nada") })
}
