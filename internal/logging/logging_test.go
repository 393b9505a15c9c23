package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logrus.DebugLevel, New("debug", "text", nil).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("chatty", "text", nil).GetLevel())
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New("info", "json", &buf).WithField("table", "orders").Info("table cleaned")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "table cleaned", entry["msg"])
	assert.Equal(t, "orders", entry["table"])
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New("warn", "text", &buf)
	log.Info("hidden")
	log.WithField("table", "stocks").Warn("table skipped")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, `msg="table skipped"`) && strings.Contains(out, "table=stocks"), out)
}
