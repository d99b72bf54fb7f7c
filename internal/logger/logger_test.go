package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultIsSilent(t *testing.T) {
	Set(nil)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if L().Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestNewVerbose(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.verbose)
			l.Debug("arc", "steps", 12)
			l.Info("routed", "layers", 4)

			out := buf.String()
			if got := strings.Contains(out, "msg=arc"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "layers=4") {
				t.Errorf("info record missing:\n%s", out)
			}
		})
	}
}

func TestSetRoundTrip(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	var buf bytes.Buffer
	Set(New(&buf, false))
	L().Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("installed logger not used: %q", buf.String())
	}
}
