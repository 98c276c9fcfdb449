package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := With(&buf, "author-service")
	log.Info().Str("author_id", "abc").Msg("registered")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "author-service", line["service"])
	assert.Equal(t, "registered", line["message"])
	assert.Equal(t, "abc", line["author_id"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}
