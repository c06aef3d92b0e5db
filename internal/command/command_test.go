package command_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/config"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	command.SetupLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	slog.Info("hidden")
	slog.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"key":"value"`)

	buf.Reset()
	command.SetupLogger(config.LogConfig{Level: "bogus", Format: "text"}, &buf)
	slog.Debug("debug")
	slog.Info("info")

	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "msg=info")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), command.Defaults)
	assert.Len(t, command.ExpandFlags(), 4)
	assert.Len(t, command.LogFlags(), 2)
}
