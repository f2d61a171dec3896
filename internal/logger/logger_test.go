package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects the logger to a buffer with colors disabled and
// restores text/INFO afterwards.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "text", false)
	t.Cleanup(func() {
		InitWithWriter(&bytes.Buffer{}, "INFO", "text", false)
	})
	return buf
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
		hidden  []string
	}{
		{"DEBUG", []string{"debug msg", "info msg", "warn msg", "error msg"}, nil},
		{"INFO", []string{"info msg", "warn msg", "error msg"}, []string{"debug msg"}},
		{"WARN", []string{"warn msg", "error msg"}, []string{"debug msg", "info msg"}},
		{"error", []string{"error msg"}, []string{"debug msg", "info msg", "warn msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := captureOutput(t)
			require.NoError(t, SetLevel(tt.level))

			Debug("debug msg")
			Info("info msg")
			Warn("warn msg")
			Error("error msg")

			out := buf.String()
			for _, s := range tt.visible {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.hidden {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	_ = captureOutput(t)
	assert.Error(t, SetLevel("TRACE"))
}

func TestSetFormatRejectsUnknown(t *testing.T) {
	_ = captureOutput(t)
	assert.Error(t, SetFormat("xml"))
}

func TestTextFormat(t *testing.T) {
	buf := captureOutput(t)

	Info("Server on 8888", KeyPort, 8888, KeyRoot, "/srv/my site", "ok", true)

	line := buf.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "Server on 8888")
	assert.Contains(t, line, "port=8888")
	assert.Contains(t, line, `root="/srv/my site"`)
	assert.Contains(t, line, "ok=true")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.NotContains(t, line, "\033[")
}

func TestTextFormatWithGroupsAndAttrs(t *testing.T) {
	buf := captureOutput(t)

	With("component", "server").WithGroup("req").Info("done", "status", 404)

	line := buf.String()
	assert.Contains(t, line, "component=server")
	assert.Contains(t, line, "req.status=404")
}

func TestColorOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "text", true)
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, "INFO", "text", false) })

	Warn("colored", "k", "v")
	assert.Contains(t, buf.String(), ansiYellow)
	assert.Contains(t, buf.String(), ansiCyan)
}

func TestJSONFormat(t *testing.T) {
	buf := captureOutput(t)
	require.NoError(t, SetFormat("json"))

	Info("Ready", KeyRunID, "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Ready", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "abc", rec[KeyRunID])
}

func TestContextFields(t *testing.T) {
	buf := captureOutput(t)

	lc := NewLogContext("req-1", "GET", "/index.html", "127.0.0.1").WithTrace("t1", "")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "served", KeyStatus, 200)

	line := buf.String()
	assert.Contains(t, line, "request_id=req-1")
	assert.Contains(t, line, "trace_id=t1")
	assert.NotContains(t, line, "span_id")
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "path=/index.html")
	assert.Contains(t, line, "client_ip=127.0.0.1")
	assert.Contains(t, line, "status=200")
}

func TestContextFieldsAbsent(t *testing.T) {
	buf := captureOutput(t)

	WarnCtx(context.Background(), "no context")
	assert.Contains(t, buf.String(), "no context")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestDebugCtxFiltered(t *testing.T) {
	buf := captureOutput(t)

	DebugCtx(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestLogContextNilSafe(t *testing.T) {
	var lc *LogContext
	assert.Nil(t, lc.WithTrace("a", "b"))
	assert.Zero(t, lc.DurationMs())
	assert.Nil(t, FromContext(nil)) //nolint:staticcheck
}

func TestConcurrentLogging(t *testing.T) {
	buf := captureOutput(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Info("concurrent", "n", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "concurrent"))
}

func TestInitWithFileOutput(t *testing.T) {
	path := t.TempDir() + "/out.log"
	require.NoError(t, Init(Config{Level: "INFO", Format: "text", Output: path}))
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, "INFO", "text", false) })

	Info("to file")
	assert.FileExists(t, path)
}
