package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WithRunTagsLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	l := New("manager").WithRun("abc123")
	l.Info("proxies loaded", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "manager")
	assert.Contains(t, out, "proxies loaded")
	assert.Contains(t, out, "run=abc123")
	assert.Contains(t, out, "count=3")
	assert.Equal(t, "manager", l.Component())
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	require.NoError(t, SetLevel("debug"))
	assert.Error(t, SetLevel("verbose"))

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	require.NoError(t, SetLevel("error"))
	New("test").Warn("hidden")
	assert.Empty(t, buf.String())
}
