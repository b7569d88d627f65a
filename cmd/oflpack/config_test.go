package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.False(t, c.Log.File.Enabled)
	assert.Equal(t, 10, c.Log.File.MaxSize)
	assert.Equal(t, "hex", c.Output.Format)
	assert.NoError(t, c.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oflpack.yaml")
	content := `
log:
  level: debug
  format: json
  file:
    enabled: true
    filename: /tmp/oflpack-test.log
    max_backups: 1
output:
  format: dump
metrics:
  report: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.True(t, c.Log.File.Enabled)
	assert.Equal(t, "/tmp/oflpack-test.log", c.Log.File.Filename)
	assert.Equal(t, 1, c.Log.File.MaxBackups)
	assert.Equal(t, 7, c.Log.File.MaxAge)
	assert.Equal(t, "dump", c.Output.Format)
	assert.True(t, c.Metrics.Report)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("OFLPACK_OUTPUT_FORMAT", "raw")
	t.Setenv("OFLPACK_LOG_LEVEL", "error")

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "raw", c.Output.Format)
	assert.Equal(t, "error", c.Log.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)

	c.Output.Format = "base64"
	assert.True(t, errors.Is(c.Validate(), errBadOutputFormat))

	c.Output.Format = "hex"
	c.Log.Format = "xml"
	assert.True(t, errors.Is(c.Validate(), errBadLogFormat))
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	l, err := NewLogger(LogConfig{Level: "debug", Format: "json"}, &out)
	require.NoError(t, err)
	assert.True(t, l.IsLevelEnabled(logrus.DebugLevel))
	l.Debug("hello")
	assert.Contains(t, out.String(), `"msg":"hello"`)

	_, err = NewLogger(LogConfig{Level: "loud"}, &out)
	assert.Error(t, err)
}
