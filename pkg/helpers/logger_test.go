package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("app", "development").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("app", "test").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("app", "production").GetLevel())
}

func TestLogError_ProductionFields(t *testing.T) {
	logger := NewLogger("app", "production")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	LogError(logger, "purchase failed", errors.New("boom"), logrus.Fields{"artwork_id": "a1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "purchase failed", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "a1", line["artwork_id"])
	assert.Contains(t, line, "ts")
}
