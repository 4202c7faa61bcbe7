package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(&Config{Level: level, Format: "json", Output: buf}), buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNew_NilConfig(t *testing.T) {
	assert.NotNil(t, New(nil))
	assert.NotNil(t, New(&Config{Format: "console", Output: io.Discard}))
}

func TestEntries(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*Logger)
		level string
		want  map[string]any
	}{
		{
			name:  "plain",
			log:   func(l *Logger) { l.Info("connected") },
			level: "info",
			want:  map[string]any{"message": "connected"},
		},
		{
			name:  "formatted",
			log:   func(l *Logger) { l.Debugf("%d tables", 3) },
			level: "debug",
			want:  map[string]any{"message": "3 tables"},
		},
		{
			name: "warning fields",
			log: func(l *Logger) {
				l.WarnWith("enum has no values", Fields{"table": "requests", "column": "state"})
			},
			level: "warn",
			want:  map[string]any{"table": "requests", "column": "state"},
		},
		{
			name: "error with cause",
			log: func(l *Logger) {
				l.ErrorWith("connect", errors.New("connection refused"), Fields{"port": 3306})
			},
			level: "error",
			want:  map[string]any{"error": "connection refused", "port": float64(3306)},
		},
		{
			name:  "child fields",
			log:   func(l *Logger) { l.With(Fields{"table": "agreements", "columns": 4}).Info("table inferred") },
			level: "info",
			want:  map[string]any{"table": "agreements", "columns": float64(4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := jsonLogger("debug")
			tt.log(l)

			entry := lastEntry(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.NotEmpty(t, entry["time"])
			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level  string
		log    func(*Logger)
		logged bool
	}{
		{"debug", func(l *Logger) { l.Debug("x") }, true},
		{"info", func(l *Logger) { l.Debug("x") }, false},
		{"warn", func(l *Logger) { l.Info("x") }, false},
		{"warning", func(l *Logger) { l.Warn("x") }, true},
		{"error", func(l *Logger) { l.Errorf("x %d", 1) }, true},
		{"off", func(l *Logger) { l.Error("x") }, false},
		{"bogus", func(l *Logger) { l.Info("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, buf := jsonLogger(tt.level)
			tt.log(l)
			assert.Equal(t, tt.logged, buf.Len() > 0)
		})
	}
}

func TestFromContext(t *testing.T) {
	l, buf := jsonLogger("info")
	FromContext(l.WithContext(context.Background())).Info("attached")
	assert.Equal(t, "attached", lastEntry(t, buf)["message"])

	prev := Global()
	g, gbuf := jsonLogger("info")
	SetGlobal(g)
	t.Cleanup(func() { SetGlobal(prev) })

	FromContext(context.Background()).Info("global")
	assert.Equal(t, "global", lastEntry(t, gbuf)["message"])
}

func TestConsoleNoColorWhenNotTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	New(&Config{Level: "info", Format: "console", Output: buf}).
		InfoWith("declarations written", Fields{"target": "stdout"})

	out := buf.String()
	assert.Contains(t, out, "declarations written")
	assert.Contains(t, out, "target=stdout")
	assert.NotContains(t, out, "\x1b[")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().ErrorWith("dropped", errors.New("x"), nil) })
}

func BenchmarkInfoWith(b *testing.B) {
	l := New(&Config{Level: "info", Format: "json", Output: io.Discard})
	fields := Fields{"table": "users", "columns": 12}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.InfoWith("table inferred", fields)
	}
}
