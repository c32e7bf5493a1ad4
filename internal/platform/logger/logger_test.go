package logger

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type bufSyncer struct {
	strings.Builder
}

func (b *bufSyncer) Sync() error { return nil }

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestZapLogger_JSONIncludesFieldsAndApp(t *testing.T) {
	out := &bufSyncer{}
	l := &ZapLogger{z: newZap(Options{Level: Info, Format: FormatJSON, App: "symptom-tracker"}, out)}

	l.With(map[string]any{"request_id": "req-1"}).Info("analysis finished", map[string]any{
		"count": 3,
		"err":   errors.New("boom"),
		"":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &entry))
	assert.Equal(t, "analysis finished", entry["msg"])
	assert.Equal(t, "symptom-tracker", entry["app"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 3, entry["count"])
	assert.Equal(t, "boom", entry["err"])
	assert.NotContains(t, entry, "")
}

func TestZapLogger_FiltersBelowLevel(t *testing.T) {
	out := &bufSyncer{}
	l := &ZapLogger{z: newZap(Options{Level: Warn, Format: FormatText}, zapcore.AddSync(out))}

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}
