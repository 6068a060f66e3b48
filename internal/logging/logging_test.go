package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("shown", "term", "git")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "term=git")
}

func TestNewFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	NewFormat(&buf, "JSON", false).Info("served", "status", 200)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "served", rec["msg"])
	assert.EqualValues(t, 200, rec["status"])
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
