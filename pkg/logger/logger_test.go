package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSplitsErrorsToSecondWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	l, err := build("info", "json", &out, &errOut)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("employee created")
	l.Error("commit transaction failed")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "employee created", entry["message"])
	assert.Equal(t, AppName, entry["app"])
	assert.NotContains(t, out.String(), "hidden")
	assert.NotContains(t, out.String(), "commit transaction failed")
	assert.Contains(t, errOut.String(), "commit transaction failed")
}

func TestBuildRejectsUnknownSettings(t *testing.T) {
	var buf bytes.Buffer
	_, err := build("loud", "json", &buf, &buf)
	assert.Error(t, err)
	_, err = build("info", "xml", &buf, &buf)
	assert.Error(t, err)
}

func TestLPanicsBeforeInit(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	global = nil
	assert.Panics(t, func() { L() })
	Nop()
	assert.NotPanics(t, func() { L().Info("ok") })
}
